package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/iliyamo/bookshop/internal/catalog"
	"github.com/iliyamo/bookshop/internal/config"
	"github.com/iliyamo/bookshop/internal/handler"
	"github.com/iliyamo/bookshop/internal/metrics"
	"github.com/iliyamo/bookshop/internal/middleware"
	"github.com/iliyamo/bookshop/internal/queue"
	"github.com/iliyamo/bookshop/internal/repository"
	"github.com/iliyamo/bookshop/internal/router"
	"github.com/iliyamo/bookshop/internal/service"
	"github.com/iliyamo/bookshop/web"
)

func main() {
	cfg := config.Load()
	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	books, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return err
	}
	bookRepo := repository.NewBookRepo(books)
	logger.Info("catalog loaded", "books", len(books), "source", catalogSource(cfg.CatalogPath))

	var publisher service.EventPublisher = service.NopPublisher{}
	if cfg.EventsEnabled {
		publisher = service.NewAMQPPublisher(cfg.AMQPURL, logger)
		consumer := queue.NewReviewConsumer(cfg.AMQPURL, cfg.ReviewLogDir, logger)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("review consumer exited", "err", err)
			}
		}()
		logger.Info("review events enabled", "queue", queue.ReviewQueueName, "log_dir", cfg.ReviewLogDir)
	}

	auth := service.NewAuthService(repository.NewMemoryUserRepo(), service.AuthConfig{
		Secret:     cfg.JWTSecret,
		TokenTTL:   cfg.TokenTTL,
		BcryptCost: cfg.BcryptCost,
	})
	bookSvc := service.NewBookService(bookRepo)
	reviewSvc := service.NewReviewService(repository.NewMemoryReviewRepo(), bookRepo, publisher, logger)

	cache := middleware.NewRedisCache(config.CacheConfig{}, nil, logger)
	if cc := config.LoadCacheConfig(); cc.Enabled {
		rdb := config.NewRedisClient(config.LoadRedisConfig())
		if rdb == nil {
			logger.Warn("redis unreachable, catalog cache disabled")
		} else {
			defer func() { _ = rdb.Close() }()
			cache = middleware.NewRedisCache(cc, rdb, logger)
			logger.Info("catalog cache enabled", "ttl", cc.TTL)
		}
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	e := router.New(router.Deps{
		Books:    handler.NewBookHandler(bookSvc),
		Reviews:  handler.NewReviewHandler(reviewSvc),
		Users:    handler.NewUserHandler(auth),
		Verifier: auth,
		Cache:    cache,
		Assets:   web.Assets(),
		Metrics:  m,
		Logger:   logger,
	})

	addr := ":" + cfg.Port
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr, "env", cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newLogger(level string) *slog.Logger {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(level)); err != nil {
		lv = slog.LevelInfo
	}
	return slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      lv,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
}

func catalogSource(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
