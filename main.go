package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrstudio/internal/config"
	"github.com/cristianadrielbraun/qrstudio/internal/handlers"
	"github.com/cristianadrielbraun/qrstudio/internal/logger"
	"github.com/cristianadrielbraun/qrstudio/internal/render"
	"github.com/cristianadrielbraun/qrstudio/internal/server"
	"github.com/cristianadrielbraun/qrstudio/internal/session"
)

func main() {
	if err := run(); err != nil {
		slog.Error("qrstudio stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(
		logger.WithLevel(cfg.SlogLevel()),
		logger.WithFormat(logger.Format(cfg.LogFormat)),
		logger.WithAttr(slog.String("service", "qrstudio")),
	)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := render.NewEngine(cfg.QREngine)
	if err != nil {
		return err
	}
	pipeline := render.New(engine, render.WithLogger(log))

	store, closeStore, err := sessionStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	sessions := session.NewManager(store,
		session.WithCookieName(cfg.Session.CookieName),
		session.WithTTL(cfg.Session.TTL),
		session.WithSecureCookie(cfg.Session.SecureCookie),
		session.WithLogger(log),
	)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(logger.Middleware(log))
	r.Use(gin.Recovery())

	handlers.New(pipeline, handlers.WithLogger(log)).Register(r, sessions.Middleware())

	log.Info("qrstudio starting",
		slog.String("addr", cfg.Addr()),
		slog.String("engine", engine.Name()),
		slog.String("session_backend", cfg.Session.Backend),
	)
	srv := server.New(
		server.WithAddr(cfg.Addr()),
		server.WithShutdownTimeout(cfg.ShutdownTimeout),
		server.WithLogger(log),
	)
	return srv.Run(ctx, r)
}

func sessionStore(ctx context.Context, cfg config.Config, log *slog.Logger) (session.Store, func(), error) {
	switch cfg.Session.Backend {
	case config.BackendRedis:
		client, err := session.ConnectRedis(ctx, session.RedisConfig{
			URL:            cfg.Redis.URL,
			RetryAttempts:  cfg.Redis.RetryAttempts,
			RetryInterval:  cfg.Redis.RetryInterval,
			ConnectTimeout: cfg.Redis.ConnectTimeout,
		})
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				log.Error("failed to close redis client", slog.String("error", err.Error()))
			}
		}
		return session.NewRedisStore(client, cfg.Redis.KeyPrefix, cfg.Session.TTL), closeFn, nil
	case config.BackendMemory:
		store := session.NewMemoryStore(cfg.Session.TTL, cfg.Session.CleanupInterval)
		return store, func() { _ = store.Close() }, nil
	}
	return nil, nil, errors.Join(config.ErrInvalidConfig, errors.New("unknown session backend "+cfg.Session.Backend))
}
