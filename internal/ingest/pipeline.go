package ingest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ferrin/discord-puzzles-bot/internal/domain"
	"github.com/ferrin/discord-puzzles-bot/internal/games"
	"github.com/ferrin/discord-puzzles-bot/internal/obslog"
	"github.com/ferrin/discord-puzzles-bot/internal/store"
	"github.com/ferrin/discord-puzzles-bot/internal/tracker"
)

// Outcome is the pipeline's classification of one chat message.
type Outcome struct {
	// Matched is false for plain chat; everything else is zero then.
	Matched bool
	Game    games.ID
	Result  *games.ScoredResult
	Tracker tracker.Outcome
}

// PersistenceError wraps a storage failure. The tracker is never advanced
// when one occurs, so no partial state is left behind.
type PersistenceError struct{ Err error }

func (e *PersistenceError) Error() string { return "persist result: " + e.Err.Error() }
func (e *PersistenceError) Unwrap() error { return e.Err }

// Pipeline runs match → score → persist → tracker for incoming messages.
type Pipeline struct {
	registry *games.Registry
	repo     store.Repository
	tracker  *tracker.Tracker
	now      func() time.Time
}

func New(registry *games.Registry, repo store.Repository, trk *tracker.Tracker) *Pipeline {
	return &Pipeline{registry: registry, repo: repo, tracker: trk, now: time.Now}
}

// Process classifies one message. A non-match returns an empty Outcome and no
// error. A matched share is scored, persisted under the game's resubmission
// policy and then run through the tracker; the tracker is skipped entirely
// when persistence fails.
func (p *Pipeline) Process(ctx context.Context, userID, displayName, text string) (*Outcome, error) {
	corr := uuid.NewString()

	g, m, err := p.registry.Match(text)
	if err != nil {
		var id games.ID
		if g != nil {
			id = g.Definition().ID
		}
		obslog.L().Warn("ingest_format_error",
			zap.String("corr", corr),
			zap.String("game", string(id)),
			zap.String("user", userID),
			zap.Error(err))
		return &Outcome{Matched: true, Game: id}, err
	}
	if m == nil {
		return &Outcome{}, nil
	}

	def := g.Definition()
	scored := g.Score(m)
	obslog.L().Info("ingest_match",
		zap.String("corr", corr),
		zap.String("game", string(def.ID)),
		zap.String("user", userID),
		zap.Int("puzzle", scored.PuzzleIndex),
		zap.Int("score", scored.TotalScore))

	res := domain.FromScored(userID, displayName, scored, p.now().UTC())
	if err := p.repo.SaveResult(ctx, res, def.Resubmission); err != nil {
		obslog.L().Error("ingest_persist_failed",
			zap.String("corr", corr),
			zap.String("game", string(def.ID)),
			zap.Error(err))
		return &Outcome{Matched: true, Game: def.ID, Result: scored}, &PersistenceError{Err: err}
	}

	oc, err := p.tracker.Transition(ctx, def.ID, scored.PuzzleIndex)
	if err != nil {
		obslog.L().Error("ingest_tracker_failed",
			zap.String("corr", corr),
			zap.String("game", string(def.ID)),
			zap.Error(err))
		return &Outcome{Matched: true, Game: def.ID, Result: scored}, err
	}

	obslog.L().Info("ingest_recorded",
		zap.String("corr", corr),
		zap.String("game", string(def.ID)),
		zap.Int("puzzle", scored.PuzzleIndex),
		zap.String("outcome", string(oc)))
	return &Outcome{Matched: true, Game: def.ID, Result: scored, Tracker: oc}, nil
}
