package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ferrin/discord-puzzles-bot/internal/domain"
	"github.com/ferrin/discord-puzzles-bot/internal/games"
)

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// EnsureSchema creates the results table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS puzzle_results (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			display_name TEXT NOT NULL,
			game TEXT NOT NULL,
			puzzle_index INTEGER NOT NULL,
			attempts INTEGER NOT NULL DEFAULT 0,
			solved BOOLEAN NOT NULL DEFAULT FALSE,
			total_score INTEGER NOT NULL DEFAULT 0,
			skill INTEGER NOT NULL DEFAULT 0,
			luck INTEGER NOT NULL DEFAULT 0,
			hard_mode BOOLEAN NOT NULL DEFAULT FALSE,
			guesses INTEGER NOT NULL DEFAULT 0,
			solved_purple_first BOOLEAN NOT NULL DEFAULT FALSE,
			solved_blue_first BOOLEAN NOT NULL DEFAULT FALSE,
			finished BOOLEAN NOT NULL DEFAULT FALSE,
			bonus_completed INTEGER NOT NULL DEFAULT 0,
			bonus_total INTEGER NOT NULL DEFAULT 0,
			completion_seconds INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure puzzle_results: %w", err)
	}
	const idx = `
		CREATE INDEX IF NOT EXISTS puzzle_results_game_user
		ON puzzle_results (game, user_id, created_at DESC)`
	if _, err := db.ExecContext(ctx, idx); err != nil {
		return fmt.Errorf("ensure puzzle_results index: %w", err)
	}
	return nil
}

func (r *repository) SaveResult(ctx context.Context, res *domain.PlayerResult, policy games.Resubmission) error {
	if res == nil {
		return fmt.Errorf("nil result payload")
	}

	const insert = `
		INSERT INTO puzzle_results (
			user_id,
			display_name,
			game,
			puzzle_index,
			attempts,
			solved,
			total_score,
			skill,
			luck,
			hard_mode,
			guesses,
			solved_purple_first,
			solved_blue_first,
			finished,
			bonus_completed,
			bonus_total,
			completion_seconds,
			created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	args := []any{
		res.UserID,
		res.DisplayName,
		string(res.Game),
		res.PuzzleIndex,
		res.Attempts,
		res.Solved,
		res.TotalScore,
		res.Skill,
		res.Luck,
		res.HardMode,
		res.Guesses,
		res.SolvedPurpleFirst,
		res.SolvedBlueFirst,
		res.Finished,
		res.BonusCompleted,
		res.BonusTotal,
		res.CompletionSeconds,
		res.CreatedAt,
	}

	if policy != games.ResubmitReplace {
		if _, err := r.db.ExecContext(ctx, insert, args...); err != nil {
			return fmt.Errorf("insert result: %w", err)
		}
		return nil
	}

	// Replace policy: drop the previous submission for the same puzzle inside
	// one transaction so readers never see both.
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace tx: %w", err)
	}
	defer tx.Rollback()

	const del = `
		DELETE FROM puzzle_results
		WHERE user_id = $1 AND game = $2 AND puzzle_index = $3`
	if _, err := tx.ExecContext(ctx, del, res.UserID, string(res.Game), res.PuzzleIndex); err != nil {
		return fmt.Errorf("delete superseded result: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
		return fmt.Errorf("insert replacement result: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace tx: %w", err)
	}
	return nil
}

func (r *repository) MaxPuzzleIndex(ctx context.Context, game games.ID) (int, error) {
	const query = `
		SELECT COALESCE(MAX(puzzle_index), 0)
		FROM puzzle_results
		WHERE game = $1`

	var max int
	if err := r.db.QueryRowContext(ctx, query, string(game)).Scan(&max); err != nil {
		return 0, fmt.Errorf("select max puzzle index: %w", err)
	}
	return max, nil
}

func (r *repository) RecentResults(ctx context.Context, userID string, game games.ID, limit int) ([]*domain.PlayerResult, error) {
	if limit <= 0 {
		limit = 5
	}
	const query = `
		SELECT
			id,
			user_id,
			display_name,
			game,
			puzzle_index,
			attempts,
			solved,
			total_score,
			skill,
			luck,
			hard_mode,
			guesses,
			solved_purple_first,
			solved_blue_first,
			finished,
			bonus_completed,
			bonus_total,
			completion_seconds,
			created_at
		FROM puzzle_results
		WHERE user_id = $1 AND game = $2
		ORDER BY created_at DESC
		LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, userID, string(game), limit)
	if err != nil {
		return nil, fmt.Errorf("select recent results: %w", err)
	}
	defer rows.Close()

	results := make([]*domain.PlayerResult, 0, limit)
	for rows.Next() {
		var res domain.PlayerResult
		if err := rows.Scan(
			&res.ID,
			&res.UserID,
			&res.DisplayName,
			&res.Game,
			&res.PuzzleIndex,
			&res.Attempts,
			&res.Solved,
			&res.TotalScore,
			&res.Skill,
			&res.Luck,
			&res.HardMode,
			&res.Guesses,
			&res.SolvedPurpleFirst,
			&res.SolvedBlueFirst,
			&res.Finished,
			&res.BonusCompleted,
			&res.BonusTotal,
			&res.CompletionSeconds,
			&res.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, &res)
	}
	return results, rows.Err()
}

func (r *repository) Leaderboard(ctx context.Context, game games.ID, agg Aggregation, since time.Time, limit int) ([]*domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	var query string
	switch agg {
	case AggBest:
		query = `
			SELECT display_name, MAX(total_score)::float8 AS score, COUNT(*) AS played
			FROM puzzle_results
			WHERE game = $1 AND created_at >= $2
			GROUP BY display_name
			ORDER BY score DESC
			LIMIT $3`
	case AggAverageTime:
		query = `
			SELECT display_name, AVG(completion_seconds)::float8 AS score, COUNT(*) AS played
			FROM puzzle_results
			WHERE game = $1 AND created_at >= $2 AND completion_seconds > 0
			GROUP BY display_name
			ORDER BY score ASC, played DESC
			LIMIT $3`
	default:
		query = `
			SELECT display_name, SUM(total_score)::float8 AS score, COUNT(*) AS played
			FROM puzzle_results
			WHERE game = $1 AND created_at >= $2
			GROUP BY display_name
			ORDER BY score DESC
			LIMIT $3`
	}

	rows, err := r.db.QueryContext(ctx, query, string(game), since, limit)
	if err != nil {
		return nil, fmt.Errorf("select leaderboard: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.LeaderboardEntry, 0, limit)
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.DisplayName, &e.Score, &e.Played); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
