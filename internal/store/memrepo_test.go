package store

import (
	"context"
	"testing"
	"time"

	"github.com/ferrin/discord-puzzles-bot/internal/domain"
	"github.com/ferrin/discord-puzzles-bot/internal/games"
)

func wordleResult(user, name string, puzzle, score int, at time.Time) *domain.PlayerResult {
	return &domain.PlayerResult{
		UserID:      user,
		DisplayName: name,
		Game:        games.Wordle,
		PuzzleIndex: puzzle,
		Attempts:    3,
		Solved:      true,
		TotalScore:  score,
		CreatedAt:   at,
	}
}

func TestSaveReplacePolicy(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	now := time.Now()

	if err := repo.SaveResult(ctx, wordleResult("u1", "Alice", 100, 50, now), games.ResubmitReplace); err != nil { t.Fatalf("save: %v", err) }
	if err := repo.SaveResult(ctx, wordleResult("u1", "Alice", 100, 90, now.Add(time.Minute)), games.ResubmitReplace); err != nil { t.Fatalf("resave: %v", err) }

	recent, err := repo.RecentResults(ctx, "u1", games.Wordle, 10)
	if err != nil { t.Fatalf("recent: %v", err) }
	if len(recent) != 1 { t.Fatalf("replace policy kept %d rows, want 1", len(recent)) }
	if recent[0].TotalScore != 90 { t.Fatalf("kept the old row: score %d", recent[0].TotalScore) }
}

func TestSaveAppendPolicy(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	now := time.Now()

	res := &domain.PlayerResult{UserID: "u1", DisplayName: "Alice", Game: games.Connections, PuzzleIndex: 50, TotalScore: 10, CreatedAt: now}
	if err := repo.SaveResult(ctx, res, games.ResubmitAppend); err != nil { t.Fatalf("save: %v", err) }
	if err := repo.SaveResult(ctx, res, games.ResubmitAppend); err != nil { t.Fatalf("resave: %v", err) }

	recent, err := repo.RecentResults(ctx, "u1", games.Connections, 10)
	if err != nil { t.Fatalf("recent: %v", err) }
	if len(recent) != 2 { t.Fatalf("append policy kept %d rows, want 2", len(recent)) }
}

func TestMaxPuzzleIndex(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	now := time.Now()

	if max, err := repo.MaxPuzzleIndex(ctx, games.Wordle); err != nil || max != 0 { t.Fatalf("empty max: %d, %v", max, err) }
	_ = repo.SaveResult(ctx, wordleResult("u1", "Alice", 149, 50, now), games.ResubmitReplace)
	_ = repo.SaveResult(ctx, wordleResult("u2", "Bob", 150, 60, now), games.ResubmitReplace)
	max, err := repo.MaxPuzzleIndex(ctx, games.Wordle)
	if err != nil { t.Fatalf("max: %v", err) }
	if max != 150 { t.Fatalf("max: got %d, want 150", max) }
}

func TestLeaderboardBestVsTotal(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	now := time.Now()

	_ = repo.SaveResult(ctx, wordleResult("u1", "Alice", 1, 50, now), games.ResubmitReplace)
	_ = repo.SaveResult(ctx, wordleResult("u1", "Alice", 2, 90, now), games.ResubmitReplace)
	_ = repo.SaveResult(ctx, wordleResult("u2", "Bob", 1, 80, now), games.ResubmitReplace)

	best, err := repo.Leaderboard(ctx, games.Wordle, AggBest, time.Time{}, 10)
	if err != nil { t.Fatalf("best: %v", err) }
	if best[0].DisplayName != "Alice" || best[0].Score != 90 { t.Fatalf("best leader: %+v", best[0]) }

	total, err := repo.Leaderboard(ctx, games.Wordle, AggTotal, time.Time{}, 10)
	if err != nil { t.Fatalf("total: %v", err) }
	if total[0].DisplayName != "Alice" || total[0].Score != 140 { t.Fatalf("total leader: %+v", total[0]) }
}

func TestLeaderboardAverageTimeAscending(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	now := time.Now()

	save := func(user, name string, secs int) {
		res := &domain.PlayerResult{UserID: user, DisplayName: name, Game: games.Gisnep, PuzzleIndex: 1, Solved: true, CompletionSeconds: secs, CreatedAt: now}
		if err := repo.SaveResult(ctx, res, games.ResubmitAppend); err != nil { t.Fatalf("save: %v", err) }
	}
	save("u1", "Alice", 120)
	save("u2", "Bob", 45)

	entries, err := repo.Leaderboard(ctx, games.Gisnep, AggAverageTime, time.Time{}, 10)
	if err != nil { t.Fatalf("leaderboard: %v", err) }
	if entries[0].DisplayName != "Bob" { t.Fatalf("fastest first, got %s", entries[0].DisplayName) }
}

func TestLeaderboardWindow(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	now := time.Now()

	_ = repo.SaveResult(ctx, wordleResult("u1", "Alice", 1, 100, now.Add(-30*24*time.Hour)), games.ResubmitReplace)
	_ = repo.SaveResult(ctx, wordleResult("u2", "Bob", 2, 10, now), games.ResubmitReplace)

	entries, err := repo.Leaderboard(ctx, games.Wordle, AggTotal, now.Add(-7*24*time.Hour), 10)
	if err != nil { t.Fatalf("leaderboard: %v", err) }
	if len(entries) != 1 || entries[0].DisplayName != "Bob" { t.Fatalf("window leaked old rows: %+v", entries) }
}
