package announce

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ferrin/discord-puzzles-bot/internal/games"
	"github.com/ferrin/discord-puzzles-bot/internal/obslog"
	"github.com/ferrin/discord-puzzles-bot/internal/presenter"
	"github.com/ferrin/discord-puzzles-bot/internal/render"
	"github.com/ferrin/discord-puzzles-bot/internal/store"
)

// Announcer posts the weekly and monthly leaderboards to each game's score
// channel. Weekly boards go out late Sunday evening, monthly boards on the
// first of the month, both in the bot's home timezone.
type Announcer struct {
	repo     store.Repository
	registry *games.Registry
	fmtr     *presenter.Formatter
	pres     *presenter.Presenter
	renderer render.CardRenderer
	limit    int
	loc      *time.Location
	now      func() time.Time
	interval time.Duration

	lastWeekly  string
	lastMonthly string
}

func New(repo store.Repository, registry *games.Registry, fmtr *presenter.Formatter, pres *presenter.Presenter, renderer render.CardRenderer, limit int) *Announcer {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		loc = time.UTC
	}
	return &Announcer{
		repo:     repo,
		registry: registry,
		fmtr:     fmtr,
		pres:     pres,
		renderer: renderer,
		limit:    limit,
		loc:      loc,
		now:      time.Now,
		interval: 15 * time.Second,
	}
}

// Run blocks until ctx is cancelled, firing due announcements as they come up.
func (a *Announcer) Run(ctx context.Context) {
	t := time.NewTicker(a.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			a.tick(ctx, a.now())
		}
	}
}

func (a *Announcer) tick(ctx context.Context, now time.Time) {
	local := now.In(a.loc)

	if local.Weekday() == time.Sunday && local.Hour() == 23 && local.Minute() == 59 {
		stamp := local.Format("2006-01-02")
		if stamp != a.lastWeekly {
			a.lastWeekly = stamp
			a.postWeekly(ctx, now)
		}
	}

	if local.Day() == 1 && local.Hour() == 0 && local.Minute() >= 1 {
		stamp := local.Format("2006-01")
		if stamp != a.lastMonthly {
			a.lastMonthly = stamp
			a.postMonthly(ctx, now)
		}
	}
}

func (a *Announcer) postWeekly(ctx context.Context, now time.Time) {
	since := now.Add(-7 * 24 * time.Hour)
	for _, g := range a.registry.All() {
		def := g.Definition()
		a.postBoard(ctx, def, a.fmtr.WeeklyTitle(def), since, "weekly")
	}
}

func (a *Announcer) postMonthly(ctx context.Context, now time.Time) {
	local := now.In(a.loc)
	firstOfMonth := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, a.loc)
	since := firstOfMonth.AddDate(0, -1, 0)
	for _, g := range a.registry.All() {
		def := g.Definition()
		a.postBoard(ctx, def, a.fmtr.MonthlyTitle(def), since, "monthly")
	}
}

func (a *Announcer) postBoard(ctx context.Context, def games.Definition, title string, since time.Time, period string) {
	agg := store.AggregationFor(def)
	entries, err := a.repo.Leaderboard(ctx, def.ID, agg, since, a.limit)
	if err != nil {
		obslog.L().Error("announce_query_failed",
			zap.String("game", string(def.ID)),
			zap.String("period", period),
			zap.Error(err))
		return
	}
	if len(entries) == 0 {
		obslog.L().Info("announce_skipped_empty",
			zap.String("game", string(def.ID)),
			zap.String("period", period))
		return
	}

	text := title + "\n" + a.fmtr.Leaderboard(def, entries)
	if err := a.pres.Reply(ctx, def.ScoreChannel, text); err != nil {
		obslog.L().Error("announce_post_failed",
			zap.String("game", string(def.ID)),
			zap.String("channel", def.ScoreChannel),
			zap.String("period", period),
			zap.Error(err))
		return
	}

	if a.renderer != nil {
		card, err := a.renderer.RenderPNG(ctx, title, presenter.ScoreUnit(def), entries)
		if err != nil {
			obslog.L().Warn("announce_render_failed",
				zap.String("game", string(def.ID)),
				zap.Error(err))
		} else if err := a.pres.Card(ctx, def.ScoreChannel, card); err != nil {
			obslog.L().Warn("announce_card_failed",
				zap.String("game", string(def.ID)),
				zap.String("channel", def.ScoreChannel),
				zap.Error(err))
		}
	}

	obslog.L().Info("announce_posted",
		zap.String("game", string(def.ID)),
		zap.String("channel", def.ScoreChannel),
		zap.String("period", period),
		zap.Int("entries", len(entries)))
}
