package progression

import (
	"math"
	"strings"
)

const hoursPerDay = 24

// addCapped saturates at math.MaxInt instead of wrapping.
func addCapped(cur, amount int) int {
	if amount > math.MaxInt-cur {
		return math.MaxInt
	}
	return cur + amount
}

// SpendMana reports false and leaves the pool untouched when the balance is short.
func (g *Game) SpendMana(amount int) bool {
	if amount <= 0 {
		return true
	}
	if g.Mana < amount {
		return false
	}
	g.Mana -= amount
	return true
}

func (g *Game) SpendGold(amount int) bool {
	if amount <= 0 {
		return true
	}
	if g.Gold < amount {
		return false
	}
	g.Gold -= amount
	return true
}

func (g *Game) AddMana(amount int) {
	if amount > 0 {
		g.Mana = addCapped(g.Mana, amount)
	} else {
		g.Mana += amount
	}
	if g.Mana > g.MaxMana {
		g.Mana = g.MaxMana
	}
	if g.Mana < 0 {
		g.Mana = 0
	}
}

func (g *Game) RegenerateMana() {
	g.AddMana(g.ManaRegen)
}

func (g *Game) AddGold(amount int) {
	if amount <= 0 {
		return
	}
	g.Gold = addCapped(g.Gold, amount)
}

func (g *Game) AddSouls(amount int) {
	if amount <= 0 {
		return
	}
	g.Souls = addCapped(g.Souls, amount)
}

func (g *Game) AdvanceTime() {
	g.Hour++
	if g.Hour >= hoursPerDay {
		g.Hour = 0
		g.Day++
	}
}

func (g *Game) HasUnlockedSpecies(name string) bool {
	for _, s := range g.UnlockedSpecies {
		if s == name {
			return true
		}
	}
	return false
}

func (g *Game) UnlockSpecies(name string) {
	name = strings.TrimSpace(name)
	if name == "" || g.HasUnlockedSpecies(name) {
		return
	}
	g.UnlockedSpecies = append(g.UnlockedSpecies, name)
}

func (g *Game) SpeciesTotalExperience(species string) int {
	return g.SpeciesExperience[species]
}

func (g *Game) AddSpeciesExperience(species string, amount int) {
	if species == "" || amount <= 0 {
		return
	}
	if g.SpeciesExperience == nil {
		g.SpeciesExperience = map[string]int{}
	}
	g.SpeciesExperience[species] = addCapped(g.SpeciesExperience[species], amount)
}

func (g *Game) MonsterExperienceOf(monster string) int {
	return g.MonsterExperience[monster]
}

// AddMonsterExperience returns the cumulative total after the gain.
func (g *Game) AddMonsterExperience(monster string, amount int) int {
	if g.MonsterExperience == nil {
		g.MonsterExperience = map[string]int{}
	}
	if monster != "" && amount > 0 {
		g.MonsterExperience[monster] = addCapped(g.MonsterExperience[monster], amount)
	}
	return g.MonsterExperience[monster]
}

func (g *Game) SetStatus(status Status) {
	g.Status = status
}

func (g *Game) SetActivePartyCount(n int) {
	if n < 0 {
		n = 0
	}
	g.ActivePartyCount = n
}

func (g Game) CanModifyDungeon() bool {
	return g.Status == StatusClosed && g.ActivePartyCount == 0
}

// Reset restores every progression field to its new-session value.
// Identity and the concurrency version are kept.
func (g *Game) Reset() {
	g.applyDefaults()
}

func (g Game) Clone() Game {
	out := g
	out.UnlockedSpecies = append([]string{}, g.UnlockedSpecies...)
	out.SpeciesExperience = copyCounts(g.SpeciesExperience)
	out.MonsterExperience = copyCounts(g.MonsterExperience)
	return out
}

// EnsureCollections replaces nil collections with empty ones.
func (g *Game) EnsureCollections() {
	if g.UnlockedSpecies == nil {
		g.UnlockedSpecies = []string{}
	}
	if g.SpeciesExperience == nil {
		g.SpeciesExperience = map[string]int{}
	}
	if g.MonsterExperience == nil {
		g.MonsterExperience = map[string]int{}
	}
}

func copyCounts(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
