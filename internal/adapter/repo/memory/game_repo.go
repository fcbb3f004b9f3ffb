package memory

import (
	"context"

	"dungeoncore/internal/app/ports"
	"dungeoncore/internal/domain/progression"
)

type GameRepo struct {
	store *Store
}

func NewGameRepo(store *Store) GameRepo {
	return GameRepo{store: store}
}

func (r GameRepo) FindBySessionID(_ context.Context, sessionID string) (progression.Game, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	game, ok := r.store.games[sessionID]
	if !ok {
		return progression.Game{}, ports.ErrNotFound
	}
	out := game.Clone()
	out.SetActivePartyCount(r.store.parties[game.ID])
	return out, nil
}

func (r GameRepo) Create(_ context.Context, sessionID string) (progression.Game, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.games[sessionID]; ok {
		return progression.Game{}, ports.ErrConflict
	}
	r.store.nextID++
	game := progression.NewGame(r.store.nextID, sessionID)
	game.Version = 1
	r.store.games[sessionID] = game
	r.store.byID[game.ID] = sessionID
	return game.Clone(), nil
}

func (r GameRepo) SaveWithVersion(_ context.Context, game progression.Game, expectedVersion int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.games[game.SessionID]
	if !ok || current.Version != expectedVersion || current.ID != game.ID {
		return ports.ErrConflict
	}
	r.store.games[game.SessionID] = game.Clone()
	return nil
}

func (r GameRepo) ResetGame(_ context.Context, gameID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	sessionID, ok := r.store.byID[gameID]
	if !ok {
		return ports.ErrNotFound
	}
	game := r.store.games[sessionID]
	defaults := progression.Defaults()
	game.Mana = defaults.Mana
	game.MaxMana = defaults.MaxMana
	game.ManaRegen = defaults.ManaRegen
	game.Gold = defaults.Gold
	game.Souls = defaults.Souls
	game.Day = defaults.Day
	game.Hour = defaults.Hour
	game.Status = defaults.Status
	game.Version++
	r.store.games[sessionID] = game
	return nil
}
