// Package main is the entry point for the tablefront theme service.
// It loads configuration, connects to Postgres and Valkey, wires the
// stores and handlers, and starts the HTTP server with graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tablefront/internal/cache"
	"tablefront/internal/config"
	"tablefront/internal/database"
	"tablefront/internal/handlers"
	"tablefront/internal/middleware"
	"tablefront/internal/preview"
	"tablefront/internal/router"
	"tablefront/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if themes already exist).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	themeStore := store.NewThemeStore(db)
	sectionStore := store.NewSectionStore(db)

	previewCache := cache.NewPreviewCache(valkeyClient, cache.DefaultPreviewTTL)
	builder := preview.NewBuilder(themeStore, sectionStore, previewCache)

	themeHandlers := handlers.NewThemes(themeStore, builder)
	sectionHandlers := handlers.NewSections(sectionStore, themeStore, builder)
	previewHandlers := handlers.NewPreview(builder)

	// 60 writes per minute per IP is generous for a theme editor and still
	// blunts scripted abuse.
	limiter := middleware.NewRateLimiter(60, time.Minute)
	defer limiter.Stop()

	r := router.New(themeHandlers, sectionHandlers, previewHandlers, limiter)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
