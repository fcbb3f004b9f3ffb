package mutate

import (
	"context"
	"errors"
	"time"

	"dungeoncore/internal/app/ports"
	"dungeoncore/internal/domain/progression"
)

const MaxAttempts = 3

// Func changes game in place. Returning false leaves the stored game as it was.
type Func func(game *progression.Game) (commit bool, err error)

type Runner struct {
	TxManager ports.TxManager
	Games     ports.GameRepository
	Now       func() time.Time
}

// Apply runs one read-modify-write over the session's game inside a
// transaction and saves it with a version check. A version conflict reruns
// the whole sequence, up to MaxAttempts times, and then surfaces
// ports.ErrConflict. fn may run more than once.
func (r Runner) Apply(ctx context.Context, sessionID string, fn Func) (progression.Game, error) {
	nowFn := r.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	for i := 0; i < MaxAttempts; i++ {
		var out progression.Game
		err := r.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
			game, err := r.Games.FindBySessionID(txCtx, sessionID)
			if err != nil {
				return err
			}
			game.EnsureCollections()
			expected := game.Version
			commit, err := fn(&game)
			if err != nil {
				return err
			}
			if commit {
				game.Version = expected + 1
				game.UpdatedAt = nowFn().UTC()
				if err := r.Games.SaveWithVersion(txCtx, game, expected); err != nil {
					return err
				}
			}
			out = game
			return nil
		})
		if errors.Is(err, ports.ErrConflict) {
			continue
		}
		if err != nil {
			return progression.Game{}, err
		}
		return out, nil
	}
	return progression.Game{}, ports.ErrConflict
}
