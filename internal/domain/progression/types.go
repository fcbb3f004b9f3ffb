package progression

import (
	"strings"
	"time"
)

type Status string

const (
	StatusOpen        Status = "Open"
	StatusClosed      Status = "Closed"
	StatusClosing     Status = "Closing"
	StatusMaintenance Status = "Maintenance"
)

var statusByName = map[string]Status{
	"open":        StatusOpen,
	"closed":      StatusClosed,
	"closing":     StatusClosing,
	"maintenance": StatusMaintenance,
}

// ParseStatus matches text case-insensitively against the fixed status set
// and returns the canonical capitalized form.
func ParseStatus(text string) (Status, bool) {
	s, ok := statusByName[strings.ToLower(strings.TrimSpace(text))]
	return s, ok
}

type Game struct {
	ID                int64          `json:"id"`
	SessionID         string         `json:"session_id"`
	Mana              int            `json:"mana"`
	MaxMana           int            `json:"max_mana"`
	ManaRegen         int            `json:"mana_regen"`
	Gold              int            `json:"gold"`
	Souls             int            `json:"souls"`
	Day               int            `json:"day"`
	Hour              int            `json:"hour"`
	Status            Status         `json:"status"`
	UnlockedSpecies   []string       `json:"unlocked_species"`
	SpeciesExperience map[string]int `json:"species_experience"`
	MonsterExperience map[string]int `json:"monster_experience"`
	ActivePartyCount  int            `json:"active_party_count"`
	Version           int64          `json:"version"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

const (
	DefaultMana      = 50
	DefaultMaxMana   = 100
	DefaultManaRegen = 1
	DefaultGold      = 100
	DefaultSouls     = 0
	DefaultDay       = 1
	DefaultHour      = 6
)

// NewGame returns a game carrying the new-session defaults.
func NewGame(id int64, sessionID string) Game {
	g := Game{ID: id, SessionID: sessionID}
	g.applyDefaults()
	return g
}

// Defaults returns an unidentified game holding only the new-session values.
func Defaults() Game {
	return NewGame(0, "")
}

func (g *Game) applyDefaults() {
	g.Mana = DefaultMana
	g.MaxMana = DefaultMaxMana
	g.ManaRegen = DefaultManaRegen
	g.Gold = DefaultGold
	g.Souls = DefaultSouls
	g.Day = DefaultDay
	g.Hour = DefaultHour
	g.Status = StatusOpen
	g.UnlockedSpecies = []string{}
	g.SpeciesExperience = map[string]int{}
	g.MonsterExperience = map[string]int{}
	g.ActivePartyCount = 0
}

type MonsterDefinition struct {
	Name     string   `json:"name"`
	HP       int      `json:"hp"`
	Attack   int      `json:"attack"`
	Defense  int      `json:"defense"`
	Tier     int      `json:"tier"`
	Species  string   `json:"species"`
	BaseCost int      `json:"baseCost"`
	Traits   []string `json:"traits"`
}

const (
	DefaultMonsterHP       = 20
	DefaultMonsterAttack   = 5
	DefaultMonsterDefense  = 2
	DefaultMonsterTier     = 1
	DefaultMonsterSpecies  = "Unknown"
	DefaultMonsterBaseCost = 10
)

// MonsterRecord is a loosely populated catalog entry as stored by a provider.
// Nil fields take the catalog defaults in Definition.
type MonsterRecord struct {
	HP       *int     `json:"hp,omitempty"`
	Attack   *int     `json:"attack,omitempty"`
	Defense  *int     `json:"defense,omitempty"`
	Tier     *int     `json:"tier,omitempty"`
	Species  *string  `json:"species,omitempty"`
	BaseCost *int     `json:"baseCost,omitempty"`
	Traits   []string `json:"traits,omitempty"`
}

func (r MonsterRecord) Definition(name string) MonsterDefinition {
	m := MonsterDefinition{
		Name:     name,
		HP:       intOr(r.HP, DefaultMonsterHP),
		Attack:   intOr(r.Attack, DefaultMonsterAttack),
		Defense:  intOr(r.Defense, DefaultMonsterDefense),
		Tier:     intOr(r.Tier, DefaultMonsterTier),
		BaseCost: intOr(r.BaseCost, DefaultMonsterBaseCost),
		Traits:   append([]string(nil), r.Traits...),
	}
	if r.Species != nil {
		m.Species = *r.Species
	}
	return m.Normalize()
}

// Normalize clamps a definition into its valid ranges.
func (m MonsterDefinition) Normalize() MonsterDefinition {
	if m.Tier < 1 {
		m.Tier = DefaultMonsterTier
	}
	if strings.TrimSpace(m.Species) == "" {
		m.Species = DefaultMonsterSpecies
	}
	if m.BaseCost < 0 {
		m.BaseCost = 0
	}
	if m.Traits == nil {
		m.Traits = []string{}
	}
	return m
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

type ScaledStats struct {
	HP      int `json:"hp"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
}

type SpeciesProgress struct {
	Experience   int `json:"experience"`
	UnlockedTier int `json:"unlockedTier"`
}

type TierUnlock struct {
	Species string `json:"species"`
	Tier    int    `json:"tier"`
}
