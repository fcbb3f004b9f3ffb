package experience

import (
	"dungeoncore/internal/app/rejection"
	"dungeoncore/internal/domain/progression"
)

type Request struct {
	SessionID   string
	MonsterName string
	Experience  int
}

type Response struct {
	rejection.Outcome
	MonsterName       string                   `json:"monsterName"`
	PreviousExp       int                      `json:"previousExp"`
	NewExp            int                      `json:"newExp"`
	ExpGained         int                      `json:"expGained"`
	TierUnlocks       []progression.TierUnlock `json:"tierUnlocks"`
	SpeciesExperience map[string]int           `json:"speciesExperience"`
	MonsterExperience map[string]int           `json:"monsterExperience"`
}

func (r Response) MarshalJSON() ([]byte, error) {
	type payload Response
	return rejection.Encode(r.Outcome, payload(r))
}
