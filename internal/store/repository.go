package store

import (
	"context"
	"time"

	"github.com/ferrin/discord-puzzles-bot/internal/domain"
	"github.com/ferrin/discord-puzzles-bot/internal/games"
)

// Aggregation selects how a game's leaderboard is computed.
type Aggregation string

const (
	// AggBest ranks by the best single score (Wordle).
	AggBest Aggregation = "best"
	// AggTotal ranks by the score sum over the window.
	AggTotal Aggregation = "total"
	// AggAverageTime ranks by average completion time ascending, more games
	// played breaking ties.
	AggAverageTime Aggregation = "avg_time"
)

// AggregationFor maps a game definition to its leaderboard aggregation.
func AggregationFor(def games.Definition) Aggregation {
	switch {
	case def.Scoring == games.ScoringTime:
		return AggAverageTime
	case def.ID == games.Wordle:
		return AggBest
	default:
		return AggTotal
	}
}

type Repository interface {
	// SaveResult persists one submission. Under ResubmitReplace a second post
	// for the same (user, game, puzzle) replaces the first; under
	// ResubmitAppend every post is kept.
	SaveResult(ctx context.Context, res *domain.PlayerResult, policy games.Resubmission) error
	// MaxPuzzleIndex returns the highest persisted puzzle index for a game,
	// 0 when nothing was recorded yet.
	MaxPuzzleIndex(ctx context.Context, game games.ID) (int, error)
	RecentResults(ctx context.Context, userID string, game games.ID, limit int) ([]*domain.PlayerResult, error)
	// Leaderboard aggregates per display name over results not older than
	// since (zero time means all-time).
	Leaderboard(ctx context.Context, game games.ID, agg Aggregation, since time.Time, limit int) ([]*domain.LeaderboardEntry, error)
}
