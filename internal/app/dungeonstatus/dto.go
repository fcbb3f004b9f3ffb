package dungeonstatus

import (
	"dungeoncore/internal/app/rejection"
	"dungeoncore/internal/domain/progression"
)

type Request struct {
	SessionID string
	Status    string
}

type Response struct {
	rejection.Outcome
	Status                  progression.Status `json:"status"`
	ActiveAdventurerParties int                `json:"activeAdventurerParties"`
	CanModifyDungeon        bool               `json:"canModifyDungeon"`
}

func (r Response) MarshalJSON() ([]byte, error) {
	type payload Response
	return rejection.Encode(r.Outcome, payload(r))
}
