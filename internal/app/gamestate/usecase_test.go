package gamestate

import (
	"context"
	"errors"
	"testing"

	"dungeoncore/internal/app/ports"
	"dungeoncore/internal/app/rejection"
	"dungeoncore/internal/domain/progression"
)

func TestUseCase_InitializeCreatesDefaults(t *testing.T) {
	repo := &stateRepo{games: map[string]progression.Game{}}
	uc := UseCase{Games: repo, Catalog: staticCatalog{}}

	resp, err := uc.Execute(context.Background(), Request{SessionID: "s1", CreateIfMissing: true})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !resp.Success || resp.Game == nil || !resp.Created {
		t.Fatalf("expected created game, got %+v", resp)
	}
	g := resp.Game
	if g.Mana != 50 || g.MaxMana != 100 || g.ManaRegen != 1 || g.Gold != 100 || g.Souls != 0 {
		t.Fatalf("unexpected resource defaults: %+v", g)
	}
	if g.Day != 1 || g.Hour != 6 || g.Status != progression.StatusOpen || g.CanModifyDungeon {
		t.Fatalf("unexpected clock/status defaults: %+v", g)
	}
	if g.UnlockedMonsterSpecies == nil || g.SpeciesProgress == nil {
		t.Fatalf("expected non-nil collections")
	}
}

func TestUseCase_InitializeReturnsExisting(t *testing.T) {
	existing := progression.NewGame(4, "s1")
	existing.Gold = 321
	existing.AddSpeciesExperience("Undead", 600)
	repo := &stateRepo{games: map[string]progression.Game{"s1": existing}}
	uc := UseCase{Games: repo, Catalog: staticCatalog{}}

	resp, err := uc.Execute(context.Background(), Request{SessionID: "s1", CreateIfMissing: true})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if resp.Created || resp.Game.Gold != 321 || resp.Game.ID != 4 {
		t.Fatalf("expected existing game, got %+v", resp.Game)
	}
	if repo.creates != 0 {
		t.Fatalf("expected no create, got %d", repo.creates)
	}
	if resp.Game.SpeciesProgress["Undead"].UnlockedTier != 1 {
		t.Fatalf("expected undead tier 1, got %+v", resp.Game.SpeciesProgress)
	}
}

func TestUseCase_InitializeLosesCreateRace(t *testing.T) {
	winner := progression.NewGame(9, "s1")
	repo := &stateRepo{games: map[string]progression.Game{}, raceWinner: &winner}
	uc := UseCase{Games: repo, Catalog: staticCatalog{}}

	resp, err := uc.Execute(context.Background(), Request{SessionID: "s1", CreateIfMissing: true})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if resp.Created || resp.Game.ID != 9 {
		t.Fatalf("expected winner's game, got %+v", resp)
	}
}

func TestUseCase_FetchMissingGame(t *testing.T) {
	uc := UseCase{Games: &stateRepo{games: map[string]progression.Game{}}, Catalog: staticCatalog{}}
	resp, err := uc.Execute(context.Background(), Request{SessionID: "s1"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if resp.Success || resp.Code != rejection.CodeGameNotFound || resp.Error != "Game not found" {
		t.Fatalf("expected GameNotFound, got %+v", resp.Outcome)
	}
}

func TestUseCase_RejectsEmptySession(t *testing.T) {
	uc := UseCase{}
	if _, err := uc.Execute(context.Background(), Request{SessionID: "  "}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestUseCase_PropagatesRepoError(t *testing.T) {
	wantErr := errors.New("db down")
	uc := UseCase{Games: &stateRepo{err: wantErr}, Catalog: staticCatalog{}}
	if _, err := uc.Execute(context.Background(), Request{SessionID: "s1"}); !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
}

type staticCatalog struct{}

func (staticCatalog) Catalog(context.Context) (progression.Catalog, error) {
	return progression.NewCatalog(map[string]progression.MonsterDefinition{
		"Skeleton": {Tier: 1, Species: "Undead"},
	}, nil), nil
}

type stateRepo struct {
	games      map[string]progression.Game
	err        error
	creates    int
	raceWinner *progression.Game
}

func (r *stateRepo) FindBySessionID(_ context.Context, sessionID string) (progression.Game, error) {
	if r.err != nil {
		return progression.Game{}, r.err
	}
	g, ok := r.games[sessionID]
	if !ok {
		return progression.Game{}, ports.ErrNotFound
	}
	return g.Clone(), nil
}

func (r *stateRepo) Create(_ context.Context, sessionID string) (progression.Game, error) {
	r.creates++
	if r.raceWinner != nil {
		r.games[sessionID] = *r.raceWinner
		return progression.Game{}, ports.ErrConflict
	}
	g := progression.NewGame(int64(len(r.games)+1), sessionID)
	r.games[sessionID] = g
	return g.Clone(), nil
}

func (r *stateRepo) SaveWithVersion(context.Context, progression.Game, int64) error {
	return nil
}

func (r *stateRepo) ResetGame(context.Context, int64) error {
	return nil
}
