package stateview

import (
	"encoding/json"
	"testing"

	"dungeoncore/internal/domain/progression"
)

func TestProjectUsesContractKeys(t *testing.T) {
	g := progression.Game{ID: 3, Status: progression.StatusClosed}
	v := Project(g, progression.NewRules(progression.NewCatalog(nil, nil)))

	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{
		"id", "mana", "maxMana", "manaRegen", "gold", "souls", "day", "hour", "status",
		"unlockedMonsterSpecies", "speciesExperience", "monsterExperience",
		"activeAdventurerParties", "canModifyDungeon", "speciesProgress",
	} {
		if _, ok := got[key]; !ok {
			t.Fatalf("missing key %q in %s", key, string(b))
		}
	}
	if _, ok := got["unlockedMonsterSpecies"].([]any); !ok {
		t.Fatalf("expected species to encode as array, got %v", got["unlockedMonsterSpecies"])
	}
	if got["canModifyDungeon"] != true {
		t.Fatalf("expected closed empty dungeon to be modifiable")
	}
}

func TestProjectSpeciesProgress(t *testing.T) {
	g := progression.NewGame(1, "s")
	g.AddSpeciesExperience("Undead", 1600)
	v := Project(g, progression.NewRules(progression.NewCatalog(nil, nil)))
	if v.SpeciesProgress["Undead"].UnlockedTier != 2 {
		t.Fatalf("expected tier 2, got %d", v.SpeciesProgress["Undead"].UnlockedTier)
	}
}
