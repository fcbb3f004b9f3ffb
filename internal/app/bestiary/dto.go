package bestiary

import (
	"dungeoncore/internal/app/rejection"
	"dungeoncore/internal/domain/progression"
)

type Request struct {
	SessionID string
}

type SpeciesEntry struct {
	Experience   int                             `json:"experience"`
	UnlockedTier int                             `json:"unlockedTier"`
	Monsters     []progression.MonsterDefinition `json:"monsters"`
}

type Response struct {
	rejection.Outcome
	Monsters []progression.MonsterDefinition `json:"monsters"`
	Species  map[string]SpeciesEntry         `json:"species"`
}

func (r Response) MarshalJSON() ([]byte, error) {
	type payload Response
	return rejection.Encode(r.Outcome, payload(r))
}
