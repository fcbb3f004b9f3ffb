package planner

import (
	"context"
	"errors"
	"testing"

	"dungeoncore/internal/app/ports"
	"dungeoncore/internal/app/rejection"
	"dungeoncore/internal/domain/progression"
)

func TestUseCase_QuotePlacement(t *testing.T) {
	g := progression.NewGame(1, "s1")
	g.Mana = 20
	uc := UseCase{Games: readRepo{game: g}, Catalog: fixedCatalog{}}

	resp, err := uc.QuotePlacement(context.Background(), PlacementRequest{
		SessionID:    "s1",
		FloorNumber:  2,
		RoomPosition: 2,
		MonsterType:  "Skeleton",
	})
	if err != nil {
		t.Fatalf("QuotePlacement error: %v", err)
	}
	if !resp.Success || resp.Cost != 15 || resp.RoomCapacity != 4 {
		t.Fatalf("unexpected quote: %+v", resp)
	}
	if resp.ScaledStats != (progression.ScaledStats{HP: 24, Attack: 6, Defense: 3}) {
		t.Fatalf("unexpected stats: %+v", resp.ScaledStats)
	}
	if !resp.Affordable || resp.CanModifyDungeon {
		t.Fatalf("expected affordable and not modifiable while open, got %+v", resp)
	}
}

func TestUseCase_QuotePlacementRoomFull(t *testing.T) {
	uc := UseCase{Games: readRepo{game: progression.NewGame(1, "s1")}, Catalog: fixedCatalog{}}
	resp, err := uc.QuotePlacement(context.Background(), PlacementRequest{
		SessionID:        "s1",
		FloorNumber:      1,
		RoomPosition:     1,
		MonsterType:      "Skeleton",
		ExistingMonsters: []string{"Skeleton", "Skeleton"},
	})
	if err != nil {
		t.Fatalf("QuotePlacement error: %v", err)
	}
	if resp.Success || resp.Code != rejection.CodeRoomFull {
		t.Fatalf("expected RoomFull, got %+v", resp.Outcome)
	}
	if resp.Error != "Room 1 can only hold 2 Tier 1 monsters!" {
		t.Fatalf("unexpected message %q", resp.Error)
	}
	if resp.Details["capacity"] != 2 {
		t.Fatalf("expected capacity detail, got %v", resp.Details)
	}
}

func TestUseCase_QuotePlacementUnknownMonster(t *testing.T) {
	uc := UseCase{Games: readRepo{game: progression.NewGame(1, "s1")}, Catalog: fixedCatalog{}}
	resp, err := uc.QuotePlacement(context.Background(), PlacementRequest{SessionID: "s1", MonsterType: "Dragon"})
	if err != nil {
		t.Fatalf("QuotePlacement error: %v", err)
	}
	if resp.Code != rejection.CodeUnknownMonster {
		t.Fatalf("expected UnknownMonster, got %+v", resp.Outcome)
	}
}

func TestUseCase_QuotePlacementNeedsSession(t *testing.T) {
	if _, err := (UseCase{}).QuotePlacement(context.Background(), PlacementRequest{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestUseCase_QuoteRoom(t *testing.T) {
	uc := UseCase{}
	cases := []struct {
		rooms int
		kind  string
		want  int
	}{
		{0, "normal", 20},
		{10, "", 70},
		{0, "BOSS", 50},
	}
	for _, tc := range cases {
		resp, err := uc.QuoteRoom(context.Background(), RoomRequest{TotalRooms: tc.rooms, RoomType: tc.kind})
		if err != nil {
			t.Fatalf("QuoteRoom error: %v", err)
		}
		if resp.Cost != tc.want {
			t.Fatalf("rooms=%d type=%q: expected %d, got %d", tc.rooms, tc.kind, tc.want, resp.Cost)
		}
	}
}

type fixedCatalog struct{}

func (fixedCatalog) Catalog(context.Context) (progression.Catalog, error) {
	return progression.NewCatalog(map[string]progression.MonsterDefinition{
		"Skeleton": {HP: 20, Attack: 5, Defense: 2, Tier: 1, Species: "Undead", BaseCost: 10},
	}, nil), nil
}

type readRepo struct {
	game progression.Game
}

func (r readRepo) FindBySessionID(context.Context, string) (progression.Game, error) {
	return r.game.Clone(), nil
}

func (r readRepo) Create(context.Context, string) (progression.Game, error) {
	return progression.Game{}, errors.New("read-only")
}

func (r readRepo) SaveWithVersion(context.Context, progression.Game, int64) error {
	return errors.New("read-only")
}

func (r readRepo) ResetGame(context.Context, int64) error {
	return ports.ErrNotFound
}
