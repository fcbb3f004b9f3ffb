package catalogdata

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"dungeoncore/internal/app/ports"
	"dungeoncore/internal/app/rejection"
	"dungeoncore/internal/domain/progression"
)

// MaxFloors bounds a floor-scaling table.
const MaxFloors = 100

var ErrInvalidRequest = errors.New("invalid catalog data request")

type MonsterTypesResponse struct {
	rejection.Outcome
	MonsterTypes map[string]progression.MonsterDefinition `json:"monsterTypes"`
}

type GameConstantsResponse struct {
	rejection.Outcome
	Constants map[string]int `json:"constants"`
}

type MonsterTraitsResponse struct {
	rejection.Outcome
	Traits    []string            `json:"traits"`
	ByMonster map[string][]string `json:"byMonster"`
}

type FloorScalingResponse struct {
	rejection.Outcome
	Floors []progression.FloorScale `json:"floors"`
}

// UseCase exposes the public catalog data.
type UseCase struct {
	Catalog ports.CatalogSource
}

func (u UseCase) MonsterTypes(ctx context.Context) (MonsterTypesResponse, error) {
	c, err := u.Catalog.Catalog(ctx)
	if err != nil {
		return MonsterTypesResponse{}, err
	}
	return MonsterTypesResponse{Outcome: rejection.OK(), MonsterTypes: c.Monsters()}, nil
}

func (u UseCase) GameConstants(ctx context.Context) (GameConstantsResponse, error) {
	c, err := u.Catalog.Catalog(ctx)
	if err != nil {
		return GameConstantsResponse{}, err
	}
	return GameConstantsResponse{Outcome: rejection.OK(), Constants: c.Constants()}, nil
}

func (u UseCase) MonsterTraits(ctx context.Context) (MonsterTraitsResponse, error) {
	c, err := u.Catalog.Catalog(ctx)
	if err != nil {
		return MonsterTraitsResponse{}, err
	}
	byMonster := map[string][]string{}
	for name, m := range c.Monsters() {
		traits := append([]string{}, m.Traits...)
		sort.Strings(traits)
		byMonster[name] = traits
	}
	return MonsterTraitsResponse{
		Outcome:   rejection.OK(),
		Traits:    progression.NewRules(c).Traits(),
		ByMonster: byMonster,
	}, nil
}

// FloorScaling lists the multipliers for floors 1 through floors.
func (u UseCase) FloorScaling(_ context.Context, floors int) (FloorScalingResponse, error) {
	if floors < 1 || floors > MaxFloors {
		return FloorScalingResponse{}, fmt.Errorf("%w: floors must be between 1 and %d", ErrInvalidRequest, MaxFloors)
	}
	rules := progression.NewRules(progression.Catalog{})
	out := make([]progression.FloorScale, 0, floors)
	for f := 1; f <= floors; f++ {
		out = append(out, rules.FloorScaling(f))
	}
	return FloorScalingResponse{Outcome: rejection.OK(), Floors: out}, nil
}
