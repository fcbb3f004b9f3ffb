package planner

import (
	"context"
	"errors"
	"strings"

	"dungeoncore/internal/app/ports"
	"dungeoncore/internal/app/rejection"
	"dungeoncore/internal/domain/progression"
)

var ErrInvalidRequest = errors.New("invalid placement quote request")

// UseCase prices and validates dungeon edits without applying them.
type UseCase struct {
	Games   ports.GameRepository
	Catalog ports.CatalogSource
}

func (u UseCase) QuotePlacement(ctx context.Context, req PlacementRequest) (PlacementResponse, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.MonsterType = strings.TrimSpace(req.MonsterType)
	if req.SessionID == "" {
		return PlacementResponse{}, ErrInvalidRequest
	}
	game, err := u.Games.FindBySessionID(ctx, req.SessionID)
	if errors.Is(err, ports.ErrNotFound) {
		return PlacementResponse{Outcome: rejection.New(rejection.CodeGameNotFound, rejection.MsgGameNotFound).Outcome()}, nil
	}
	if err != nil {
		return PlacementResponse{}, err
	}
	catalog, err := u.Catalog.Catalog(ctx)
	if err != nil {
		return PlacementResponse{}, err
	}
	rules := progression.NewRules(catalog)

	if err := rules.ValidatePlacement(req.FloorNumber, req.RoomPosition, req.MonsterType, req.ExistingMonsters); err != nil {
		r, ok := rejection.From(err)
		if !ok {
			return PlacementResponse{}, err
		}
		return PlacementResponse{Outcome: r.Outcome()}, nil
	}

	def, _ := rules.MonsterStats(req.MonsterType)
	cost := rules.MonsterCost(req.MonsterType, req.FloorNumber, req.IsBossRoom)
	return PlacementResponse{
		Outcome:          rejection.OK(),
		MonsterType:      def.Name,
		Cost:             cost,
		ScaledStats:      rules.ScaleStats(def, req.FloorNumber, req.IsBossRoom),
		RoomCapacity:     rules.RoomCapacity(req.RoomPosition, def.Tier),
		Affordable:       game.Mana >= cost,
		CanModifyDungeon: game.CanModifyDungeon(),
	}, nil
}

func (u UseCase) QuoteRoom(_ context.Context, req RoomRequest) (RoomResponse, error) {
	roomType := strings.ToLower(strings.TrimSpace(req.RoomType))
	if roomType == "" {
		roomType = "normal"
	}
	rules := progression.NewRules(progression.Catalog{})
	return RoomResponse{
		Outcome:  rejection.OK(),
		RoomType: roomType,
		Cost:     rules.RoomCost(req.TotalRooms, roomType),
	}, nil
}
