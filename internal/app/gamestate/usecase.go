package gamestate

import (
	"context"
	"errors"
	"strings"

	"dungeoncore/internal/app/ports"
	"dungeoncore/internal/app/rejection"
	"dungeoncore/internal/app/shared/cmdmetrics"
	"dungeoncore/internal/app/shared/stateview"
	"dungeoncore/internal/domain/progression"
)

const (
	CommandInitialize = "initialize"
	CommandFetch      = "get_state"
)

var ErrInvalidRequest = errors.New("invalid game state request")

type UseCase struct {
	Games   ports.GameRepository
	Catalog ports.CatalogSource
	Metrics ports.CommandMetrics
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	command := CommandFetch
	if req.CreateIfMissing {
		command = CommandInitialize
	}
	out, err := u.execute(ctx, req)
	cmdmetrics.Record(u.Metrics, command, out.Outcome, err)
	return out, err
}

func (u UseCase) execute(ctx context.Context, req Request) (Response, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID == "" {
		return Response{}, ErrInvalidRequest
	}

	created := false
	game, err := u.Games.FindBySessionID(ctx, req.SessionID)
	if errors.Is(err, ports.ErrNotFound) {
		if !req.CreateIfMissing {
			return Response{Outcome: rejection.New(rejection.CodeGameNotFound, rejection.MsgGameNotFound).Outcome()}, nil
		}
		game, created, err = u.create(ctx, req.SessionID)
	}
	if err != nil {
		return Response{}, err
	}

	catalog, err := u.Catalog.Catalog(ctx)
	if err != nil {
		return Response{}, err
	}
	view := stateview.Project(game, progression.NewRules(catalog))
	return Response{Outcome: rejection.OK(), Game: &view, Created: created}, nil
}

// create falls back to a fetch when a concurrent initialize for the same
// session won the insert.
func (u UseCase) create(ctx context.Context, sessionID string) (progression.Game, bool, error) {
	game, err := u.Games.Create(ctx, sessionID)
	if err == nil {
		return game, true, nil
	}
	if !errors.Is(err, ports.ErrConflict) {
		return progression.Game{}, false, err
	}
	game, err = u.Games.FindBySessionID(ctx, sessionID)
	return game, false, err
}
