package dungeonstatus

import (
	"context"
	"errors"
	"strings"
	"time"

	"dungeoncore/internal/app/ports"
	"dungeoncore/internal/app/rejection"
	"dungeoncore/internal/app/shared/cmdmetrics"
	"dungeoncore/internal/app/shared/mutate"
	"dungeoncore/internal/domain/progression"
)

const Command = "update_status"

var ErrInvalidRequest = errors.New("invalid dungeon status request")

type UseCase struct {
	TxManager ports.TxManager
	Games     ports.GameRepository
	Metrics   ports.CommandMetrics
	Now       func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	out, err := u.execute(ctx, req)
	cmdmetrics.Record(u.Metrics, Command, out.Outcome, err)
	return out, err
}

func (u UseCase) execute(ctx context.Context, req Request) (Response, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID == "" {
		return Response{}, ErrInvalidRequest
	}

	var out Response
	runner := mutate.Runner{TxManager: u.TxManager, Games: u.Games, Now: u.Now}
	_, err := runner.Apply(ctx, req.SessionID, func(g *progression.Game) (bool, error) {
		status, ok := progression.ParseStatus(req.Status)
		if !ok {
			r, _ := rejection.From(progression.ErrInvalidStatus)
			out = Response{Outcome: r.Outcome()}
			return false, nil
		}
		g.SetStatus(status)
		out = Response{
			Outcome:                 rejection.OK(),
			Status:                  g.Status,
			ActiveAdventurerParties: g.ActivePartyCount,
			CanModifyDungeon:        g.CanModifyDungeon(),
		}
		return true, nil
	})
	if errors.Is(err, ports.ErrNotFound) {
		return Response{Outcome: rejection.New(rejection.CodeGameNotFound, rejection.MsgGameNotFound).Outcome()}, nil
	}
	if err != nil {
		return Response{}, err
	}
	return out, nil
}
