package main

import (
	"context"
	"database/sql"
	"log"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/ferrin/discord-puzzles-bot/internal/announce"
	appcfg "github.com/ferrin/discord-puzzles-bot/internal/config"
	"github.com/ferrin/discord-puzzles-bot/internal/games"
	"github.com/ferrin/discord-puzzles-bot/internal/gateway"
	"github.com/ferrin/discord-puzzles-bot/internal/ingest"
	"github.com/ferrin/discord-puzzles-bot/internal/msgcat"
	"github.com/ferrin/discord-puzzles-bot/internal/obslog"
	"github.com/ferrin/discord-puzzles-bot/internal/presenter"
	"github.com/ferrin/discord-puzzles-bot/internal/render"
	"github.com/ferrin/discord-puzzles-bot/internal/roles"
	"github.com/ferrin/discord-puzzles-bot/internal/store"
	"github.com/ferrin/discord-puzzles-bot/internal/tracker"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer obslog.Sync()
	logger := obslog.L()

	cat, err := msgcat.New(cfg.MsgTemplateDir)
	if err != nil {
		log.Fatalf("message catalog error: %v", err)
	}

	// An ambiguous game sample is a programming error; refuse to start.
	registry, err := games.NewRegistry()
	if err != nil {
		log.Fatalf("game registry error: %v", err)
	}

	headers := func() map[string]string {
		h := map[string]string{}
		if cfg.GatewayToken != "" {
			h["Authorization"] = "Bearer " + cfg.GatewayToken
		}
		return h
	}

	client := gateway.NewClient(cfg.GatewayBaseURL, gateway.WithHeaderProvider(headers))

	ws := gateway.NewWebSocket(cfg.GatewayWSURL, 5, time.Second)
	ws.SetHeaderProvider(headers)
	ws.OnStateChange(func(state gateway.WebSocketState) {
		logger.Info("ws_state", zap.String("state", string(state)))
	})

	var (
		repo store.Repository
		db   *sql.DB
	)
	if cfg.DatabaseURL != "" {
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db open error: %v", err)
		}
		dctx, dcancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := db.PingContext(dctx); err != nil {
			dcancel()
			log.Fatalf("db ping error: %v", err)
		}
		if err := store.EnsureSchema(dctx, db); err != nil {
			dcancel()
			log.Fatalf("db schema error: %v", err)
		}
		dcancel()
		repo = store.NewRepository(db)
	} else {
		logger.Warn("database_url_empty", zap.String("fallback", "memory repository"))
		repo = store.NewMemoryRepository()
	}

	var (
		state      tracker.StateStore
		redisStore *tracker.RedisStore
	)
	if cfg.RedisURL != "" {
		redisStore, err = tracker.NewRedisStore(cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis error: %v", err)
		}
		state = redisStore
	} else {
		logger.Warn("redis_url_empty", zap.String("fallback", "memory state store"))
		state = tracker.NewMemoryStore()
	}
	trk := tracker.New(state, repo)

	egress := gateway.NewEgress(cfg.EgressMode, cfg.Dryrun, client, ws, logger)
	fmtr := presenter.NewFormatter(cat)
	pres := presenter.NewPresenter(egress)

	a := &app{
		cfg:      cfg,
		registry: registry,
		repo:     repo,
		pipeline: ingest.New(registry, repo, trk),
		roles:    roles.NewManager(client),
		fmtr:     fmtr,
		pres:     pres,
	}

	announcer := announce.New(repo, registry, fmtr, pres, render.NewCardRenderer(), cfg.LeaderboardLimit)

	ws.OnMessage(func(msg *gateway.Message) {
		if msg == nil || msg.Bot || strings.TrimSpace(msg.Content) == "" {
			return
		}
		if len(cfg.AllowedChannels) > 0 && !channelAllowed(cfg.AllowedChannels, msg.ChannelName) {
			return
		}
		// Avoid blocking the WS loop
		go a.handleMessage(msg)
	})

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cctx, cancel := context.WithTimeout(rootCtx, 10*time.Second)
	if err := ws.Connect(cctx); err != nil {
		cancel()
		log.Fatalf("ws connect error: %v", err)
	}
	cancel()

	go announcer.Run(rootCtx)

	<-rootCtx.Done()

	_ = ws.Close(context.Background())
	if redisStore != nil {
		_ = redisStore.Close()
	}
	if db != nil {
		_ = db.Close()
	}
}

type app struct {
	cfg      *appcfg.AppConfig
	registry *games.Registry
	repo     store.Repository
	pipeline *ingest.Pipeline
	roles    *roles.Manager
	fmtr     *presenter.Formatter
	pres     *presenter.Presenter
}

func (a *app) handleMessage(msg *gateway.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	text := strings.TrimSpace(msg.Content)
	if strings.HasPrefix(text, a.cfg.BotPrefix) {
		a.handleCommand(ctx, msg, strings.TrimPrefix(text, a.cfg.BotPrefix))
		return
	}

	oc, err := a.pipeline.Process(ctx, msg.UserID, msg.DisplayName, msg.Content)
	if err != nil {
		// Format errors and persistence failures alike get the short game-named
		// failure reply; plain chat never reaches here.
		if g, ok := a.registry.Lookup(oc.Game); ok {
			_ = a.pres.Reply(ctx, msg.ChannelName, a.fmtr.Failure(g.Definition()))
		}
		return
	}
	if !oc.Matched {
		return
	}

	g, ok := a.registry.Lookup(oc.Game)
	if !ok {
		return
	}
	def := g.Definition()

	ack := a.fmtr.Acknowledgement(msg.DisplayName, def, oc.Result)

	granted, rerr := a.roles.Apply(ctx, def, msg.UserID, oc.Tracker)
	if rerr != nil {
		obslog.L().Warn("role_apply_failed",
			zap.String("game", string(def.ID)),
			zap.String("user", msg.UserID),
			zap.Error(rerr))
	}
	if granted {
		ack += a.fmtr.RoleNotice(msg.UserID, def)
	}

	_ = a.pres.Reply(ctx, msg.ChannelName, ack)

	if granted {
		_ = a.pres.Reply(ctx, def.ChatChannel, a.fmtr.Introduction(msg.DisplayName, def, oc.Result))
	}
}

func (a *app) handleCommand(ctx context.Context, msg *gateway.Message, raw string) {
	parts := strings.Fields(strings.TrimSpace(raw))
	if len(parts) == 0 {
		return
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "leaderboard":
		if len(args) < 1 {
			_ = a.pres.Reply(ctx, msg.ChannelName, a.fmtr.InvalidGame())
			return
		}
		g, ok := a.registry.Lookup(games.ID(strings.ToLower(args[0])))
		if !ok {
			_ = a.pres.Reply(ctx, msg.ChannelName, a.fmtr.InvalidGame())
			return
		}
		def := g.Definition()
		entries, err := a.repo.Leaderboard(ctx, def.ID, store.AggregationFor(def), time.Time{}, a.cfg.LeaderboardLimit)
		if err != nil {
			obslog.L().Error("leaderboard_query_failed", zap.String("game", string(def.ID)), zap.Error(err))
			return
		}
		_ = a.pres.Reply(ctx, msg.ChannelName, a.fmtr.Leaderboard(def, entries))

	case "myscore":
		results, err := a.repo.RecentResults(ctx, msg.UserID, games.Wordle, 5)
		if err != nil {
			obslog.L().Error("myscore_query_failed", zap.String("user", msg.UserID), zap.Error(err))
			return
		}
		_ = a.pres.Reply(ctx, msg.ChannelName, a.fmtr.MyScores(msg.DisplayName, results))
	}
}

func channelAllowed(allowed []string, channel string) bool {
	for _, c := range allowed {
		if c == channel {
			return true
		}
	}
	return false
}
