package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pressly/goose/v3"
	"github.com/subosito/gotenv"

	"github.com/Spok95/community-bot/internal/bot"
	"github.com/Spok95/community-bot/internal/cache"
	"github.com/Spok95/community-bot/internal/config"
	"github.com/Spok95/community-bot/internal/domain/content"
	"github.com/Spok95/community-bot/internal/domain/files"
	"github.com/Spok95/community-bot/internal/domain/invites"
	"github.com/Spok95/community-bot/internal/domain/users"
	"github.com/Spok95/community-bot/internal/identity"
	"github.com/Spok95/community-bot/internal/infra/db"
	httpx "github.com/Spok95/community-bot/internal/infra/http"
	"github.com/Spok95/community-bot/internal/infra/logger"
	"github.com/Spok95/community-bot/internal/scheduler"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	_ = gotenv.Load()

	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Warn("bad timezone, falling back to UTC", "tz", cfg.App.Timezone)
		loc = time.UTC
	}

	if err := runMigrations(cfg.Postgres.DSN); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	usersRepo := users.NewRepo(pool)
	invitesRepo := invites.NewRepo(pool)
	contentRepo := content.NewRepo(pool)
	filesRepo := files.NewRepo(pool)

	// кэши живут весь процесс и передаются явно, без глобалов
	userCache := cache.NewUserCache(cfg.Cache.TTL)
	limiter := cache.NewAttemptLimiter(cfg.Invites.AttemptReset, cfg.Invites.AttemptsTTL)

	inviteMgr := invites.NewManager(invites.NewPgStore(pool), limiter, userCache,
		cfg.Invites, logger.Component(log, "invites"))
	resolver := identity.NewResolver(usersRepo, userCache, logger.Component(log, "identity"))

	if err := seedOwners(ctx, usersRepo, cfg.Owners); err != nil {
		log.Error("seed owners failed", "err", err)
		return
	}

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, pool.Ping)
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	sched := scheduler.New(contentRepo, logger.Component(log, "scheduler"), loc)
	if err := sched.Start(); err != nil {
		log.Error("scheduler start failed", "err", err)
		return
	}
	defer sched.Stop()

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error("telegram auth failed", "err", err)
		return
	}
	log.Info("telegram authorized", "username", api.Self.UserName)

	b := bot.New(api, logger.Component(log, "bot"), resolver, inviteMgr,
		invitesRepo, contentRepo, filesRepo, usersRepo, cfg.Invites)

	if err := b.Run(ctx, cfg.Telegram.PollTimeoutSec); err != nil && ctx.Err() == nil {
		log.Error("bot stopped", "err", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}

func seedOwners(ctx context.Context, repo *users.Repo, owners []config.InitialAdmin) error {
	for _, o := range owners {
		id := users.Identity{
			ID:        o.UserID,
			FirstName: o.FirstName,
			LastName:  o.LastName,
			Username:  o.Username,
		}
		if err := repo.Seed(ctx, id, users.RoleOwner); err != nil {
			return err
		}
	}
	return nil
}
