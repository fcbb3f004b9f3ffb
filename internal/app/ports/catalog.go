package ports

import (
	"context"

	"dungeoncore/internal/domain/progression"
)

// CatalogProvider reads raw catalog data from its backing store.
type CatalogProvider interface {
	MonsterTypes(ctx context.Context) (map[string]progression.MonsterDefinition, error)
	GameConstants(ctx context.Context) (map[string]int, error)
}

// CatalogSource hands out a ready catalog snapshot.
type CatalogSource interface {
	Catalog(ctx context.Context) (progression.Catalog, error)
}
