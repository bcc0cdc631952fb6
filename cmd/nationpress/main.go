// Package main is the entry point for the NationPress server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nationpress/internal/cache"
	"nationpress/internal/config"
	"nationpress/internal/database"
	"nationpress/internal/handlers"
	"nationpress/internal/render"
	"nationpress/internal/router"
	"nationpress/internal/session"
	"nationpress/internal/storage"
	"nationpress/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (Redis-compatible cache + session store).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Session store and full-page cache, both backed by Valkey.
	sessionStore := session.NewStore(valkeyClient)
	pageCache := cache.NewPageCache(valkeyClient, cfg.PageCacheTTL)

	// Initialize the HTML template renderer.
	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Initialize data stores.
	staffStore := store.NewStaffUserStore(db)
	pressReleaseStore := store.NewPressReleaseStore(db)
	homeCardStore := store.NewHomeCardStore(db)
	tabSettingsStore := store.NewTabSettingsStore(db)
	elementStore := store.NewEditableElementStore(db)
	pageStore := store.NewDynamicPageStore(db)
	badgeStore := store.NewBadgeStore(db)
	mediaStore := store.NewMediaStore(db)

	// Connect to S3-compatible object storage (optional; uploads are
	// disabled without it).
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured, editor uploads disabled")
	}

	// Create handler groups with their dependencies.
	fieldRegistry := handlers.NewFieldRegistry(pressReleaseStore, homeCardStore, pageStore)
	adminHandlers := handlers.NewAdmin(renderer, pressReleaseStore, homeCardStore,
		tabSettingsStore, badgeStore, pageStore, mediaStore, pageCache)
	authHandlers := handlers.NewAuth(renderer, sessionStore, staffStore)
	publicHandlers := handlers.NewPublic(renderer, pressReleaseStore, homeCardStore,
		tabSettingsStore, elementStore, pageStore, badgeStore, pageCache)
	editorHandlers := handlers.NewEditor(fieldRegistry, elementStore, pageStore,
		pressReleaseStore, mediaStore, storageClient, pageCache)

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, adminHandlers, authHandlers, publicHandlers,
		editorHandlers, cfg.BadgeRateLimit)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
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

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
