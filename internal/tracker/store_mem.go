package tracker

import (
	"context"
	"sync"

	"github.com/ferrin/discord-puzzles-bot/internal/games"
)

// MemoryStore keeps latest indexes in process memory. It backs the tracker
// when no Redis URL is configured; state is lost on restart and the tracker
// reseeds itself from the repository.
type MemoryStore struct {
	mu     sync.Mutex
	latest map[games.ID]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{latest: make(map[games.ID]int)}
}

func (s *MemoryStore) LatestIndex(ctx context.Context, game games.ID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest[game], nil
}

func (s *MemoryStore) SetLatestIndex(ctx context.Context, game games.ID, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest[game] = index
	return nil
}
