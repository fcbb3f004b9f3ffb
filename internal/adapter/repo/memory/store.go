package memory

import (
	"sync"

	"dungeoncore/internal/domain/progression"
)

type Store struct {
	mu      sync.RWMutex
	txMu    sync.Mutex
	nextID  int64
	games   map[string]progression.Game
	byID    map[int64]string
	parties map[int64]int
}

func NewStore() *Store {
	return &Store{
		games:   make(map[string]progression.Game),
		byID:    make(map[int64]string),
		parties: make(map[int64]int),
	}
}

func (s *Store) SeedGame(game progression.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if game.ID == 0 {
		s.nextID++
		game.ID = s.nextID
	} else if game.ID > s.nextID {
		s.nextID = game.ID
	}
	game.EnsureCollections()
	s.games[game.SessionID] = game.Clone()
	s.byID[game.ID] = game.SessionID
}

// SetActiveParties stands in for the adventurer party table.
func (s *Store) SetActiveParties(gameID int64, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parties[gameID] = n
}
