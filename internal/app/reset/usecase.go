package reset

import (
	"context"
	"errors"
	"strings"
	"time"

	"dungeoncore/internal/app/ports"
	"dungeoncore/internal/app/rejection"
	"dungeoncore/internal/app/shared/cmdmetrics"
	"dungeoncore/internal/app/shared/mutate"
	"dungeoncore/internal/app/shared/stateview"
	"dungeoncore/internal/domain/progression"
)

const Command = "reset"

var ErrInvalidRequest = errors.New("invalid reset request")

// UseCase puts every progression field of a game back to its new-session
// value. The game keeps its id and session.
type UseCase struct {
	TxManager ports.TxManager
	Games     ports.GameRepository
	Catalog   ports.CatalogSource
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
	catalog, err := u.Catalog.Catalog(ctx)
	if err != nil {
		return Response{}, err
	}

	runner := mutate.Runner{TxManager: u.TxManager, Games: u.Games, Now: u.Now}
	game, err := runner.Apply(ctx, req.SessionID, func(g *progression.Game) (bool, error) {
		parties := g.ActivePartyCount
		g.Reset()
		g.SetActivePartyCount(parties)
		return true, nil
	})
	if errors.Is(err, ports.ErrNotFound) {
		return Response{Outcome: rejection.New(rejection.CodeGameNotFound, rejection.MsgGameNotFound).Outcome()}, nil
	}
	if err != nil {
		return Response{}, err
	}
	view := stateview.Project(game, progression.NewRules(catalog))
	return Response{Outcome: rejection.OK(), Game: &view}, nil
}
