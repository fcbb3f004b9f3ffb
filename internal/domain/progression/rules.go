package progression

import (
	"sort"
	"strings"
)

const (
	defaultSpeciesUnlockCost = 1000
	globalUnlockCostKey      = "SPECIES_UNLOCK_COST"
	speciesCostKeyPrefix     = "SPECIES_COST_"

	roomBaseCost      = 20
	roomCostPerRoom   = 5
	bossRoomSurcharge = 30
	roomCostStep      = 5

	maxTier = 5
)

var tierThresholds = [...]int{0, 500, 1500, 3000, 5000}

// Rules computes costs, tier unlocks and placement checks from a fixed catalog.
// It holds no mutable state and is safe for concurrent use.
type Rules struct {
	catalog Catalog
}

func NewRules(catalog Catalog) Rules {
	return Rules{catalog: catalog}
}

func (r Rules) Catalog() Catalog {
	return r.catalog
}

// MonsterCost is ceil(baseCost * (1 + 0.5*(floor-1)) * (2 if boss)).
// An unknown type prices at the default base cost.
func (r Rules) MonsterCost(monsterType string, floor int, boss bool) int {
	base := DefaultMonsterBaseCost
	if m, ok := r.catalog.Monster(monsterType); ok {
		base = m.BaseCost
	}
	floor = atLeastOne(floor)
	num := base * (floor + 1)
	if boss {
		num *= 2
	}
	return ceilDiv(num, 2)
}

func (r Rules) RoomCost(totalRooms int, roomType string) int {
	if totalRooms < 0 {
		totalRooms = 0
	}
	raw := roomBaseCost + roomCostPerRoom*totalRooms
	if roomType == "boss" {
		raw += bossRoomSurcharge
	}
	cost := ceilDiv(raw, roomCostStep) * roomCostStep
	if cost < roomCostStep {
		cost = roomCostStep
	}
	return cost
}

func (r Rules) RoomCapacity(position, tier int) int {
	return atLeastOne(position) * 2 / atLeastOne(tier)
}

func (r Rules) MonsterStats(monsterType string) (MonsterDefinition, bool) {
	return r.catalog.Monster(monsterType)
}

// SpeciesUnlockCost resolves the gold price of a species. The global
// SPECIES_UNLOCK_COST constant, when configured, shadows per-species
// SPECIES_COST_<NAME> overrides. The bool is false when the species is
// unknown to the catalog.
func (r Rules) SpeciesUnlockCost(species string) (int, bool) {
	species = strings.TrimSpace(species)
	if species == "" {
		return 0, false
	}
	perSpecies, hasOverride := r.catalog.Constant(speciesCostKeyPrefix + strings.ToUpper(species))
	if !hasOverride && !r.hasSpecies(species) {
		return 0, false
	}
	if cost, ok := r.catalog.Constant(globalUnlockCostKey); ok {
		return cost, true
	}
	if hasOverride {
		return perSpecies, true
	}
	return defaultSpeciesUnlockCost, true
}

func (r Rules) hasSpecies(species string) bool {
	_, ok := r.CanonicalSpecies(species)
	return ok
}

// CanonicalSpecies returns the catalog spelling of a species name matched
// case-insensitively. Ties resolve to the alphabetically first monster.
func (r Rules) CanonicalSpecies(species string) (string, bool) {
	species = strings.TrimSpace(species)
	best, found := "", false
	var bestMonster string
	for name, m := range r.catalog.monsters {
		if !strings.EqualFold(m.Species, species) {
			continue
		}
		if !found || name < bestMonster {
			best, bestMonster, found = m.Species, name, true
		}
	}
	return best, found
}

// UnlockedTier maps cumulative species experience to the highest usable tier.
// Zero means no monster of the species is available yet.
func (r Rules) UnlockedTier(totalExperience int) int {
	met := 0
	for _, threshold := range tierThresholds {
		if totalExperience >= threshold {
			met++
		}
	}
	tier := met - 1
	if tier < 0 {
		return 0
	}
	if tier > maxTier {
		return maxTier
	}
	return tier
}

// MonstersForSpeciesAndTier lists the species' monsters at or below maxTier,
// ordered by tier then name.
func (r Rules) MonstersForSpeciesAndTier(species string, maxTier int) []MonsterDefinition {
	out := make([]MonsterDefinition, 0)
	for _, m := range r.catalog.monsters {
		if !strings.EqualFold(m.Species, species) || m.Tier > maxTier {
			continue
		}
		m.Traits = append([]string{}, m.Traits...)
		out = append(out, m)
	}
	SortByTier(out)
	return out
}

func SortByTier(monsters []MonsterDefinition) {
	sort.SliceStable(monsters, func(i, j int) bool {
		if monsters[i].Tier != monsters[j].Tier {
			return monsters[i].Tier < monsters[j].Tier
		}
		return monsters[i].Name < monsters[j].Name
	})
}

// ScaleStats applies ceil(v * (1 + 0.2*(floor-1)) * (1.5 if boss)) to each stat.
func (r Rules) ScaleStats(base MonsterDefinition, floor int, boss bool) ScaledStats {
	floor = atLeastOne(floor)
	scale := func(v int) int {
		num, den := v*(floor+4), 5
		if boss {
			num, den = num*3, den*2
		}
		return ceilDiv(num, den)
	}
	return ScaledStats{
		HP:      scale(base.HP),
		Attack:  scale(base.Attack),
		Defense: scale(base.Defense),
	}
}

// FloorScale is the set of multipliers MonsterCost and ScaleStats apply on one floor.
type FloorScale struct {
	Floor              int     `json:"floor"`
	CostMultiplier     float64 `json:"costMultiplier"`
	StatMultiplier     float64 `json:"statMultiplier"`
	BossCostMultiplier float64 `json:"bossCostMultiplier"`
	BossStatMultiplier float64 `json:"bossStatMultiplier"`
}

func (r Rules) FloorScaling(floor int) FloorScale {
	floor = atLeastOne(floor)
	cost := float64(floor+1) / 2
	stat := float64(floor+4) / 5
	return FloorScale{
		Floor:              floor,
		CostMultiplier:     cost,
		StatMultiplier:     stat,
		BossCostMultiplier: cost * 2,
		BossStatMultiplier: stat * 1.5,
	}
}

// Traits returns every distinct trait in the catalog, sorted.
func (r Rules) Traits() []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, m := range r.catalog.monsters {
		for _, t := range m.Traits {
			if _, ok := seen[t]; ok || t == "" {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

// ValidatePlacement checks that the room still has space for one more
// monster of the candidate's tier. Existing monsters of unknown type are ignored.
func (r Rules) ValidatePlacement(floor, position int, monsterType string, existing []string) error {
	candidate, ok := r.catalog.Monster(monsterType)
	if !ok {
		return ErrUnknownMonster
	}
	capacity := r.RoomCapacity(position, candidate.Tier)
	sameTier := 0
	for _, name := range existing {
		m, ok := r.catalog.Monster(name)
		if ok && m.Tier == candidate.Tier {
			sameTier++
		}
	}
	if sameTier >= capacity {
		return &RoomFullError{Position: position, Capacity: capacity, Tier: candidate.Tier}
	}
	return nil
}

func (r Rules) SpeciesProgress(experience map[string]int) map[string]SpeciesProgress {
	out := make(map[string]SpeciesProgress, len(experience))
	for species, exp := range experience {
		out[species] = SpeciesProgress{Experience: exp, UnlockedTier: r.UnlockedTier(exp)}
	}
	return out
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

// ceilDiv assumes a positive divisor.
func ceilDiv(num, den int) int {
	q := num / den
	if num%den != 0 && num > 0 {
		q++
	}
	return q
}
