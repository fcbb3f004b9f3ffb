package stateview

import "dungeoncore/internal/domain/progression"

// View is the public projection of a game. Collections are never nil so they
// always encode as JSON arrays and objects.
type View struct {
	ID                      int64                                  `json:"id"`
	Mana                    int                                    `json:"mana"`
	MaxMana                 int                                    `json:"maxMana"`
	ManaRegen               int                                    `json:"manaRegen"`
	Gold                    int                                    `json:"gold"`
	Souls                   int                                    `json:"souls"`
	Day                     int                                    `json:"day"`
	Hour                    int                                    `json:"hour"`
	Status                  progression.Status                     `json:"status"`
	UnlockedMonsterSpecies  []string                               `json:"unlockedMonsterSpecies"`
	SpeciesExperience       map[string]int                         `json:"speciesExperience"`
	MonsterExperience       map[string]int                         `json:"monsterExperience"`
	ActiveAdventurerParties int                                    `json:"activeAdventurerParties"`
	CanModifyDungeon        bool                                   `json:"canModifyDungeon"`
	SpeciesProgress         map[string]progression.SpeciesProgress `json:"speciesProgress"`
}

func Project(game progression.Game, rules progression.Rules) View {
	g := game.Clone()
	g.EnsureCollections()
	return View{
		ID:                      g.ID,
		Mana:                    g.Mana,
		MaxMana:                 g.MaxMana,
		ManaRegen:               g.ManaRegen,
		Gold:                    g.Gold,
		Souls:                   g.Souls,
		Day:                     g.Day,
		Hour:                    g.Hour,
		Status:                  g.Status,
		UnlockedMonsterSpecies:  g.UnlockedSpecies,
		SpeciesExperience:       g.SpeciesExperience,
		MonsterExperience:       g.MonsterExperience,
		ActiveAdventurerParties: g.ActivePartyCount,
		CanModifyDungeon:        g.CanModifyDungeon(),
		SpeciesProgress:         rules.SpeciesProgress(g.SpeciesExperience),
	}
}
