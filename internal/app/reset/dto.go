package reset

import (
	"dungeoncore/internal/app/rejection"
	"dungeoncore/internal/app/shared/stateview"
)

type Request struct {
	SessionID string
}

type Response struct {
	rejection.Outcome
	Game *stateview.View `json:"game"`
}

func (r Response) MarshalJSON() ([]byte, error) {
	type payload Response
	return rejection.Encode(r.Outcome, payload(r))
}
