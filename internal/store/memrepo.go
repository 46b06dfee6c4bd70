package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ferrin/discord-puzzles-bot/internal/domain"
	"github.com/ferrin/discord-puzzles-bot/internal/games"
)

// memrepo is a development-only in-memory repository implementation used when
// no DB is configured, and the fixture for pipeline tests.
type memrepo struct {
	mu sync.RWMutex

	nextID  int64
	results []*domain.PlayerResult
}

func NewMemoryRepository() Repository {
	return &memrepo{}
}

func (m *memrepo) SaveResult(ctx context.Context, res *domain.PlayerResult, policy games.Resubmission) error {
	if res == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if policy == games.ResubmitReplace {
		kept := m.results[:0]
		for _, r := range m.results {
			if r.UserID == res.UserID && r.Game == res.Game && r.PuzzleIndex == res.PuzzleIndex {
				continue
			}
			kept = append(kept, r)
		}
		m.results = kept
	}

	m.nextID++
	copy := *res
	copy.ID = m.nextID
	m.results = append(m.results, &copy)
	return nil
}

func (m *memrepo) MaxPuzzleIndex(ctx context.Context, game games.ID) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	max := 0
	for _, r := range m.results {
		if r.Game == game && r.PuzzleIndex > max {
			max = r.PuzzleIndex
		}
	}
	return max, nil
}

func (m *memrepo) RecentResults(ctx context.Context, userID string, game games.ID, limit int) ([]*domain.PlayerResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]*domain.PlayerResult, 0)
	for _, r := range m.results {
		if r.UserID == userID && r.Game == game {
			copy := *r
			items = append(items, &copy)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (m *memrepo) Leaderboard(ctx context.Context, game games.ID, agg Aggregation, since time.Time, limit int) ([]*domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	m.mu.RLock()
	type bucket struct {
		best   int
		total  int
		secs   int
		played int
		timed  int
	}
	buckets := make(map[string]*bucket)
	for _, r := range m.results {
		if r.Game != game || r.CreatedAt.Before(since) {
			continue
		}
		b := buckets[r.DisplayName]
		if b == nil {
			b = &bucket{best: r.TotalScore}
			buckets[r.DisplayName] = b
		}
		if r.TotalScore > b.best {
			b.best = r.TotalScore
		}
		b.total += r.TotalScore
		b.played++
		if r.CompletionSeconds > 0 {
			b.secs += r.CompletionSeconds
			b.timed++
		}
	}
	m.mu.RUnlock()

	entries := make([]*domain.LeaderboardEntry, 0, len(buckets))
	for name, b := range buckets {
		e := &domain.LeaderboardEntry{DisplayName: name, Played: b.played}
		switch agg {
		case AggBest:
			e.Score = float64(b.best)
		case AggAverageTime:
			if b.timed == 0 {
				continue
			}
			e.Score = float64(b.secs) / float64(b.timed)
		default:
			e.Score = float64(b.total)
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if agg == AggAverageTime {
			if a.Score != b.Score {
				return a.Score < b.Score
			}
			if a.Played != b.Played {
				return a.Played > b.Played
			}
		} else if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.DisplayName < b.DisplayName
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
