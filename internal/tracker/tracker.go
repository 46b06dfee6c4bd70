package tracker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/ferrin/discord-puzzles-bot/internal/games"
	"github.com/ferrin/discord-puzzles-bot/internal/obslog"
)

// Outcome classifies a submission against the latest known puzzle index.
type Outcome string

const (
	// OutcomeNewRecord advanced the latest known index.
	OutcomeNewRecord Outcome = "NEW_RECORD"
	// OutcomeCurrent equals the latest known index.
	OutcomeCurrent Outcome = "CURRENT"
	// OutcomeStale is older than the latest known index.
	OutcomeStale Outcome = "STALE"
)

// IndexSource exposes the highest persisted puzzle index, used to reconcile
// the state store against what the repository has actually seen.
type IndexSource interface {
	MaxPuzzleIndex(ctx context.Context, game games.ID) (int, error)
}

// Tracker is the per-game latest-puzzle state machine. The latest index is
// monotonic: it only moves forward, never back.
type Tracker struct {
	store   StateStore
	results IndexSource

	mu    sync.Mutex
	locks map[games.ID]*sync.Mutex
}

func New(store StateStore, results IndexSource) *Tracker {
	return &Tracker{
		store:   store,
		results: results,
		locks:   make(map[games.ID]*sync.Mutex),
	}
}

// lockFor returns the mutex guarding one game's read→compare→write section.
func (t *Tracker) lockFor(game games.ID) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.locks[game]
	if !ok {
		l = &sync.Mutex{}
		t.locks[game] = l
	}
	return l
}

// Latest returns the reconciled latest known index: the state store's value,
// or the repository's max persisted index when that is higher (the store may
// lag after a restore from backup).
func (t *Tracker) Latest(ctx context.Context, game games.ID) (int, error) {
	l := t.lockFor(game)
	l.Lock()
	defer l.Unlock()
	return t.reconciled(ctx, game)
}

func (t *Tracker) reconciled(ctx context.Context, game games.ID) (int, error) {
	latest, err := t.store.LatestIndex(ctx, game)
	if err != nil {
		return 0, err
	}
	if t.results != nil {
		persisted, err := t.results.MaxPuzzleIndex(ctx, game)
		if err != nil {
			return 0, err
		}
		if persisted > latest {
			latest = persisted
		}
	}
	return latest, nil
}

// Transition compares a freshly persisted submission against the latest known
// index and advances it when the submission is newer. Callers must only invoke
// this after the result was persisted, which means the repository max already
// includes the submission itself: it raises the comparison baseline only when
// some other record is strictly higher, so a submission never blocks its own
// advance. Exactly one outcome is returned.
func (t *Tracker) Transition(ctx context.Context, game games.ID, puzzleIndex int) (Outcome, error) {
	l := t.lockFor(game)
	l.Lock()
	defer l.Unlock()

	latest, err := t.store.LatestIndex(ctx, game)
	if err != nil {
		return "", err
	}
	if t.results != nil {
		persisted, err := t.results.MaxPuzzleIndex(ctx, game)
		if err != nil {
			return "", err
		}
		if persisted > puzzleIndex && persisted > latest {
			latest = persisted
		}
	}

	switch {
	case puzzleIndex > latest:
		if err := t.store.SetLatestIndex(ctx, game, puzzleIndex); err != nil {
			return "", err
		}
		obslog.L().Info("tracker_advance",
			zap.String("game", string(game)),
			zap.Int("from", latest),
			zap.Int("to", puzzleIndex))
		return OutcomeNewRecord, nil
	case puzzleIndex == latest:
		return OutcomeCurrent, nil
	default:
		return OutcomeStale, nil
	}
}
