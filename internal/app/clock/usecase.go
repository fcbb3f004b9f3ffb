package clock

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

const (
	Command  = "advance_time"
	MaxHours = 24
)

var ErrInvalidRequest = errors.New("invalid advance time request")

// UseCase moves the game clock forward hour by hour. Each hour regenerates
// mana at the game's regen rate.
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
	if req.Hours == 0 {
		req.Hours = 1
	}
	if req.Hours < 0 || req.Hours > MaxHours {
		return Response{Outcome: rejection.New(rejection.CodeInvalidRequest, "Hours must be between 1 and 24").Outcome()}, nil
	}

	runner := mutate.Runner{TxManager: u.TxManager, Games: u.Games, Now: u.Now}
	game, err := runner.Apply(ctx, req.SessionID, func(g *progression.Game) (bool, error) {
		for i := 0; i < req.Hours; i++ {
			g.AdvanceTime()
			g.RegenerateMana()
		}
		return true, nil
	})
	if errors.Is(err, ports.ErrNotFound) {
		return Response{Outcome: rejection.New(rejection.CodeGameNotFound, rejection.MsgGameNotFound).Outcome()}, nil
	}
	if err != nil {
		return Response{}, err
	}
	return Response{
		Outcome: rejection.OK(),
		Day:     game.Day,
		Hour:    game.Hour,
		Mana:    game.Mana,
		MaxMana: game.MaxMana,
	}, nil
}
