package ports

import (
	"context"
	"errors"

	"dungeoncore/internal/domain/progression"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrConflict reports a lost optimistic-version race or a duplicate create.
	ErrConflict = errors.New("version conflict")
)

// TxManager runs fn in one storage transaction. Repositories called with the
// ctx passed to fn join that transaction.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type GameRepository interface {
	FindBySessionID(ctx context.Context, sessionID string) (progression.Game, error)
	// Create stores a new game with the default values. It returns ErrConflict
	// when the session already has one.
	Create(ctx context.Context, sessionID string) (progression.Game, error)
	SaveWithVersion(ctx context.Context, game progression.Game, expectedVersion int64) error
	// ResetGame restores the numeric and status defaults of a stored game,
	// leaving species and experience untouched.
	ResetGame(ctx context.Context, gameID int64) error
}
