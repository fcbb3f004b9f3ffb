package gamestate

import (
	"dungeoncore/internal/app/rejection"
	"dungeoncore/internal/app/shared/stateview"
)

type Request struct {
	SessionID string
	// CreateIfMissing turns a plain fetch into InitializeOrFetch.
	CreateIfMissing bool
}

type Response struct {
	rejection.Outcome
	Game    *stateview.View `json:"game"`
	Created bool            `json:"created"`
}

func (r Response) MarshalJSON() ([]byte, error) {
	type payload Response
	return rejection.Encode(r.Outcome, payload(r))
}
