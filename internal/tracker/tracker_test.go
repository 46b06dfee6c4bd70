package tracker

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"

	"github.com/ferrin/discord-puzzles-bot/internal/domain"
	"github.com/ferrin/discord-puzzles-bot/internal/games"
	"github.com/ferrin/discord-puzzles-bot/internal/store"
)

func newTestTracker(t *testing.T) (*Tracker, store.Repository, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil { t.Fatalf("miniredis: %v", err) }
	cleanup := func() { mr.Close() }

	url := fmt.Sprintf("redis://%s/0", mr.Addr())
	rs, err := NewRedisStore(url)
	if err != nil { t.Fatalf("NewRedisStore: %v", err) }

	repo := store.NewMemoryRepository()
	return New(rs, repo), repo, cleanup
}

func TestTransitionStateMachine(t *testing.T) {
	trk, _, cleanup := newTestTracker(t)
	defer cleanup()
	ctx := context.Background()

	oc, err := trk.Transition(ctx, games.Wordle, 149)
	if err != nil { t.Fatalf("Transition: %v", err) }
	if oc != OutcomeNewRecord { t.Fatalf("first submission: got %s, want NEW_RECORD", oc) }

	oc, err = trk.Transition(ctx, games.Wordle, 150)
	if err != nil { t.Fatalf("Transition: %v", err) }
	if oc != OutcomeNewRecord { t.Fatalf("149→150: got %s, want NEW_RECORD", oc) }

	oc, err = trk.Transition(ctx, games.Wordle, 150)
	if err != nil { t.Fatalf("Transition: %v", err) }
	if oc != OutcomeCurrent { t.Fatalf("repeat 150: got %s, want CURRENT", oc) }

	oc, err = trk.Transition(ctx, games.Wordle, 148)
	if err != nil { t.Fatalf("Transition: %v", err) }
	if oc != OutcomeStale { t.Fatalf("old 148: got %s, want STALE", oc) }

	latest, err := trk.Latest(ctx, games.Wordle)
	if err != nil { t.Fatalf("Latest: %v", err) }
	if latest != 150 { t.Fatalf("stale submission moved the index: %d", latest) }
}

func TestPerGameIsolation(t *testing.T) {
	trk, _, cleanup := newTestTracker(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := trk.Transition(ctx, games.Wordle, 500); err != nil { t.Fatalf("Transition: %v", err) }
	oc, err := trk.Transition(ctx, games.Bandle, 3)
	if err != nil { t.Fatalf("Transition: %v", err) }
	if oc != OutcomeNewRecord { t.Fatalf("bandle must track independently, got %s", oc) }
}

func TestReconcileAgainstRepository(t *testing.T) {
	trk, repo, cleanup := newTestTracker(t)
	defer cleanup()
	ctx := context.Background()

	// Repository already holds index 200, state store is empty.
	res := &domain.PlayerResult{UserID: "u1", DisplayName: "Alice", Game: games.Framed, PuzzleIndex: 200, CreatedAt: time.Now()}
	if err := repo.SaveResult(ctx, res, games.ResubmitAppend); err != nil { t.Fatalf("save: %v", err) }

	latest, err := trk.Latest(ctx, games.Framed)
	if err != nil { t.Fatalf("Latest: %v", err) }
	if latest != 200 { t.Fatalf("reconciled latest: got %d, want 200", latest) }

	oc, err := trk.Transition(ctx, games.Framed, 199)
	if err != nil { t.Fatalf("Transition: %v", err) }
	if oc != OutcomeStale { t.Fatalf("below repo max: got %s, want STALE", oc) }
}

func TestTransitionAfterPersistedSubmission(t *testing.T) {
	trk, repo, cleanup := newTestTracker(t)
	defer cleanup()
	ctx := context.Background()

	// The pipeline persists before it transitions, so the repository max
	// already equals the incoming index. The submission must not block its
	// own advance.
	save := func(user, name string, idx int) {
		t.Helper()
		res := &domain.PlayerResult{UserID: user, DisplayName: name, Game: games.Wordle, PuzzleIndex: idx, CreatedAt: time.Now()}
		if err := repo.SaveResult(ctx, res, games.ResubmitAppend); err != nil { t.Fatalf("save: %v", err) }
	}

	save("u1", "Alice", 150)
	oc, err := trk.Transition(ctx, games.Wordle, 150)
	if err != nil { t.Fatalf("Transition: %v", err) }
	if oc != OutcomeNewRecord { t.Fatalf("first persisted 150: got %s, want NEW_RECORD", oc) }

	save("u2", "Bob", 150)
	oc, err = trk.Transition(ctx, games.Wordle, 150)
	if err != nil { t.Fatalf("Transition: %v", err) }
	if oc != OutcomeCurrent { t.Fatalf("second persisted 150: got %s, want CURRENT", oc) }

	save("u3", "Carol", 148)
	oc, err = trk.Transition(ctx, games.Wordle, 148)
	if err != nil { t.Fatalf("Transition: %v", err) }
	if oc != OutcomeStale { t.Fatalf("persisted 148 below 150: got %s, want STALE", oc) }
}

func TestConcurrentTransitionsMonotonic(t *testing.T) {
	trk, _, cleanup := newTestTracker(t)
	defer cleanup()
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	records := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			oc, err := trk.Transition(ctx, games.Gisnep, 42)
			if err != nil { t.Errorf("Transition: %v", err) }
			if oc == OutcomeNewRecord {
				mu.Lock()
				records++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if records != 1 { t.Fatalf("same index advanced %d times, want exactly 1", records) }
	latest, err := trk.Latest(ctx, games.Gisnep)
	if err != nil { t.Fatalf("Latest: %v", err) }
	if latest != 42 { t.Fatalf("latest: got %d, want 42", latest) }
}
