package bestiary

import (
	"context"
	"errors"
	"strings"

	"dungeoncore/internal/app/ports"
	"dungeoncore/internal/app/rejection"
	"dungeoncore/internal/domain/progression"
)

var ErrInvalidRequest = errors.New("invalid available monsters request")

// UseCase lists the monsters a player can field. It never writes.
type UseCase struct {
	Games   ports.GameRepository
	Catalog ports.CatalogSource
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID == "" {
		return Response{}, ErrInvalidRequest
	}
	game, err := u.Games.FindBySessionID(ctx, req.SessionID)
	if errors.Is(err, ports.ErrNotFound) {
		return Response{Outcome: rejection.New(rejection.CodeGameNotFound, rejection.MsgGameNotFound).Outcome()}, nil
	}
	if err != nil {
		return Response{}, err
	}
	catalog, err := u.Catalog.Catalog(ctx)
	if err != nil {
		return Response{}, err
	}
	rules := progression.NewRules(catalog)

	all := make([]progression.MonsterDefinition, 0)
	perSpecies := make(map[string]SpeciesEntry, len(game.UnlockedSpecies))
	for _, species := range game.UnlockedSpecies {
		exp := game.SpeciesTotalExperience(species)
		tier := rules.UnlockedTier(exp)
		monsters := rules.MonstersForSpeciesAndTier(species, tier)
		all = append(all, monsters...)
		perSpecies[species] = SpeciesEntry{
			Experience:   exp,
			UnlockedTier: tier,
			Monsters:     monsters,
		}
	}
	progression.SortByTier(all)

	return Response{Outcome: rejection.OK(), Monsters: all, Species: perSpecies}, nil
}
