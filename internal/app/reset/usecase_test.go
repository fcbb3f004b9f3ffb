package reset

import (
	"context"
	"errors"
	"testing"

	"dungeoncore/internal/app/ports"
	"dungeoncore/internal/app/rejection"
	"dungeoncore/internal/domain/progression"
)

func TestUseCase_ResetsProgression(t *testing.T) {
	g := progression.NewGame(42, "s1")
	g.Version = 7
	g.Gold = 5
	g.Mana = 3
	g.Souls = 90
	g.Day = 14
	g.Hour = 22
	g.SetStatus(progression.StatusMaintenance)
	g.UnlockSpecies("Undead")
	g.AddSpeciesExperience("Undead", 2000)
	g.AddMonsterExperience("Skeleton", 2000)
	repo := &gameRepo{game: g}

	resp, err := UseCase{TxManager: passTx{}, Games: repo, Catalog: emptyCatalog{}}.Execute(context.Background(), Request{SessionID: "s1"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !resp.Success || resp.Game == nil {
		t.Fatalf("expected success, got %+v", resp.Outcome)
	}
	v := resp.Game
	if v.ID != 42 {
		t.Fatalf("expected identity kept, got id=%d", v.ID)
	}
	if v.Gold != 100 || v.Mana != 50 || v.Souls != 0 || v.Day != 1 || v.Hour != 6 || v.Status != progression.StatusOpen {
		t.Fatalf("expected defaults, got %+v", v)
	}
	if len(v.UnlockedMonsterSpecies) != 0 || len(v.SpeciesExperience) != 0 || len(v.MonsterExperience) != 0 {
		t.Fatalf("expected cleared progression, got %+v", v)
	}
	if repo.game.Version != 8 || repo.game.SessionID != "s1" {
		t.Fatalf("expected versioned save keeping session, got version=%d session=%q", repo.game.Version, repo.game.SessionID)
	}
}

func TestUseCase_GameNotFound(t *testing.T) {
	resp, err := UseCase{TxManager: passTx{}, Games: &gameRepo{missing: true}, Catalog: emptyCatalog{}}.Execute(context.Background(), Request{SessionID: "s1"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if resp.Code != rejection.CodeGameNotFound {
		t.Fatalf("expected GameNotFound, got %+v", resp.Outcome)
	}
}

func TestUseCase_RejectsEmptySession(t *testing.T) {
	if _, err := (UseCase{}).Execute(context.Background(), Request{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

type emptyCatalog struct{}

func (emptyCatalog) Catalog(context.Context) (progression.Catalog, error) {
	return progression.NewCatalog(nil, nil), nil
}

type passTx struct{}

func (passTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type gameRepo struct {
	game    progression.Game
	missing bool
}

func (r *gameRepo) FindBySessionID(context.Context, string) (progression.Game, error) {
	if r.missing {
		return progression.Game{}, ports.ErrNotFound
	}
	return r.game.Clone(), nil
}

func (r *gameRepo) Create(_ context.Context, sessionID string) (progression.Game, error) {
	return progression.NewGame(1, sessionID), nil
}

func (r *gameRepo) SaveWithVersion(_ context.Context, g progression.Game, expected int64) error {
	if expected != r.game.Version {
		return ports.ErrConflict
	}
	r.game = g.Clone()
	return nil
}

func (r *gameRepo) ResetGame(context.Context, int64) error {
	return nil
}
