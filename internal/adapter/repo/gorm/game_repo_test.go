package gormrepo

import (
	"math"
	"testing"

	"dungeoncore/internal/domain/progression"
)

func TestToModel_ClampsCountersToColumnRange(t *testing.T) {
	g := progression.NewGame(1, "s1")
	g.Gold = math.MaxInt32 + 10
	g.Souls = math.MaxInt
	g.Day = math.MinInt32 - 1

	row, err := toModel(g)
	if err != nil {
		t.Fatalf("toModel error: %v", err)
	}
	if row.Gold != math.MaxInt32 || row.Souls != math.MaxInt32 {
		t.Fatalf("expected gold and souls clamped to MaxInt32, got gold=%d souls=%d", row.Gold, row.Souls)
	}
	if row.Day != math.MinInt32 {
		t.Fatalf("expected day clamped to MinInt32, got %d", row.Day)
	}
	if row.Mana != 50 || row.Hour != 6 {
		t.Fatalf("expected in-range counters untouched, got mana=%d hour=%d", row.Mana, row.Hour)
	}
}

func TestDecodeCounts_MalformedBecomesEmpty(t *testing.T) {
	if got := decodeCounts(1, "species_experience", "{not json"); got == nil || len(got) != 0 {
		t.Fatalf("expected empty map, got %#v", got)
	}
	if got := decodeList(1, "unlocked_species", ""); got == nil || len(got) != 0 {
		t.Fatalf("expected empty list, got %#v", got)
	}
}
