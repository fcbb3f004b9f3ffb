package catalogcache

import (
	"context"
	"fmt"
	"sync"

	"dungeoncore/internal/app/ports"
	"dungeoncore/internal/domain/progression"

	"golang.org/x/sync/singleflight"
)

const flightKey = "catalog"

// Source memoizes one catalog snapshot for the process lifetime. Concurrent
// first callers share a single provider load. Invalidate drops the snapshot
// so the next caller reloads it.
type Source struct {
	provider ports.CatalogProvider
	group    singleflight.Group

	mu         sync.RWMutex
	catalog    progression.Catalog
	loaded     bool
	generation uint64
}

func NewSource(provider ports.CatalogProvider) *Source {
	return &Source{provider: provider}
}

func (s *Source) Catalog(ctx context.Context) (progression.Catalog, error) {
	s.mu.RLock()
	if s.loaded {
		c := s.catalog
		s.mu.RUnlock()
		return c, nil
	}
	gen := s.generation
	s.mu.RUnlock()

	v, err, _ := s.group.Do(flightKey, func() (any, error) {
		return s.load(ctx, gen)
	})
	if err != nil {
		return progression.Catalog{}, err
	}
	return v.(progression.Catalog), nil
}

func (s *Source) load(ctx context.Context, gen uint64) (progression.Catalog, error) {
	monsters, err := s.provider.MonsterTypes(ctx)
	if err != nil {
		return progression.Catalog{}, fmt.Errorf("load monster types: %w", err)
	}
	constants, err := s.provider.GameConstants(ctx)
	if err != nil {
		return progression.Catalog{}, fmt.Errorf("load game constants: %w", err)
	}
	c := progression.NewCatalog(monsters, constants)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation == gen {
		s.catalog = c
		s.loaded = true
	}
	return c, nil
}

func (s *Source) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.loaded = false
	s.catalog = progression.Catalog{}
	s.group.Forget(flightKey)
}
