package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"sfc-bus-schedule/internal/adapters/cache"
	"sfc-bus-schedule/internal/adapters/remote"
	"sfc-bus-schedule/internal/api"
	"sfc-bus-schedule/internal/config"
	"sfc-bus-schedule/internal/platform/obs"
	"sfc-bus-schedule/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (remote API, KV store) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := obs.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := cache.OpenStore(ctx, cache.StoreOptions{
		Backend:       cfg.CacheBackend,
		SQLitePath:    cfg.SQLitePath,
		DatabaseURL:   cfg.DatabaseURL,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	})
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	source, err := remote.NewScheduleAPI(
		remote.NewClient(&http.Client{Timeout: cfg.HTTPTimeout()}),
		cfg.BaseURL,
	)
	if err != nil {
		return err
	}

	svc, err := services.NewScheduleService(
		source,
		cache.NewScheduleCache(store, cfg.CachePrefix, logger),
		cfg.Location,
		logger,
	)
	if err != nil {
		return err
	}

	router := api.NewRouter(api.RouterConfig{
		Service:            svc,
		Location:           cfg.Location,
		Log:                logger,
		AllowedOrigins:     cfg.CORSAllowedOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	})

	// Write timeout covers a cold fetch of both the calendar and a dataset.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      2*cfg.HTTPTimeout() + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("cache_backend", cfg.CacheBackend),
			zap.String("base_url", source.BaseURL()),
			zap.String("timezone", cfg.Location.String()),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
