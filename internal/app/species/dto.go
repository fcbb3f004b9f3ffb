package species

import (
	"encoding/json"

	"dungeoncore/internal/app/rejection"
)

type Request struct {
	SessionID   string
	SpeciesName string
}

type Response struct {
	rejection.Outcome
	SpeciesName       string         `json:"speciesName"`
	CostPaid          int            `json:"costPaid"`
	RemainingGold     int            `json:"remainingGold"`
	IsFirstSpecies    bool           `json:"isFirstSpecies"`
	UnlockedSpecies   []string       `json:"unlockedSpecies"`
	SpeciesExperience map[string]int `json:"speciesExperience"`
	// Required is the unmet price on an InsufficientGold rejection.
	Required int `json:"-"`
}

func (r Response) MarshalJSON() ([]byte, error) {
	if r.Code == rejection.CodeInsufficientGold {
		return json.Marshal(struct {
			rejection.Outcome
			Required int `json:"required"`
		}{r.Outcome, r.Required})
	}
	type payload Response
	return rejection.Encode(r.Outcome, payload(r))
}
