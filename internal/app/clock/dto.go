package clock

import "dungeoncore/internal/app/rejection"

type Request struct {
	SessionID string
	// Hours defaults to one when zero.
	Hours int
}

type Response struct {
	rejection.Outcome
	Day     int `json:"day"`
	Hour    int `json:"hour"`
	Mana    int `json:"mana"`
	MaxMana int `json:"maxMana"`
}

func (r Response) MarshalJSON() ([]byte, error) {
	type payload Response
	return rejection.Encode(r.Outcome, payload(r))
}
