// Package main is the entry point for the Kigaku API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zapponejosh/kigaku-api/internal/api"
	"github.com/zapponejosh/kigaku-api/internal/cache"
	"github.com/zapponejosh/kigaku-api/internal/config"
	"github.com/zapponejosh/kigaku-api/internal/database"
	"github.com/zapponejosh/kigaku-api/internal/logger"
	"github.com/zapponejosh/kigaku-api/internal/reading"
	"github.com/zapponejosh/kigaku-api/internal/sekki"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Setup structured logging
	log, logCloser := logger.Setup(cfg)
	defer logCloser.Close()

	log.Info("starting kigaku API",
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
		slog.String("log_level", cfg.LogLevel),
		slog.String("sekki_source", cfg.SekkiSource),
	)

	if err := run(cfg, log); err != nil {
		log.Error("server failed", slog.Any("error", err))
		logCloser.Close()
		os.Exit(1)
	}

	log.Info("server exited")
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx := context.Background()

	db, err := database.Open(database.DefaultConfig(cfg.DatabasePath), log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	applied, err := db.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	log.Info("migrations complete", slog.Int("applied", applied))

	table := loadTable(ctx, cfg, db, log)
	log.Info("sekki table ready",
		slog.Int("years", len(table.Years())),
		slog.Int("terms", table.Len()),
	)

	readingCache := openCache(ctx, cfg, log)
	generator := reading.NewOpenAI(reading.OpenAIConfig{
		APIKey: cfg.OpenAIAPIKey,
		URL:    cfg.OpenAIURL,
		Model:  cfg.OpenAIModel,
	})
	if !generator.Enabled() {
		log.Info("OPENAI_API_KEY not set, readings use the built-in template")
	}
	readings := reading.NewService(generator, readingCache, cfg.ReadingCacheTTL, log)

	handlers := api.NewHandlers(db, table, readings, cfg, log)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.SetupRoutes(handlers, cfg, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second, // reading generation calls OpenAI
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		log.Info("shutting down", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("error during server shutdown", slog.Any("error", err))
	}
	if closer, ok := readingCache.(*cache.Redis); ok {
		closer.Close()
	}
	return nil
}

// loadTable builds the solar term table from the configured source. A
// failing source leaves the server running on approximate boundaries.
func loadTable(ctx context.Context, cfg *config.Config, db *database.DB, log *slog.Logger) *sekki.Table {
	switch cfg.SekkiSource {
	case config.SekkiFile:
		return sekki.Load(cfg.SekkiDataPath, log)

	case config.SekkiDatabase:
		src, err := db.LoadSolarTerms(ctx)
		if err != nil {
			log.Warn("failed to load solar terms from database, using approximate boundaries",
				slog.Any("error", err))
			return sekki.NewTable(nil, log)
		}
		if len(src) == 0 {
			log.Warn("solar_terms table is empty, run cmd/import first")
		}
		return sekki.NewTable(src, log)

	default:
		return sekki.Default()
	}
}

// openCache prefers Redis when configured and falls back to memory.
func openCache(ctx context.Context, cfg *config.Config, log *slog.Logger) cache.Cache {
	if cfg.RedisAddr == "" {
		return cache.NewMemory()
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rc, err := cache.NewRedis(pingCtx, cfg.RedisAddr, "kigaku:reading:")
	if err != nil {
		log.Warn("redis unavailable, using in-memory reading cache",
			slog.String("addr", cfg.RedisAddr),
			slog.Any("error", err))
		return cache.NewMemory()
	}
	log.Info("reading cache on redis", slog.String("addr", cfg.RedisAddr))
	return rc
}
