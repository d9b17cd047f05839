// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the GoGevgelija API server.
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

	"gogevgelija/internal/auth"
	"gogevgelija/internal/cache"
	"gogevgelija/internal/config"
	"gogevgelija/internal/database"
	"gogevgelija/internal/handlers"
	"gogevgelija/internal/hours"
	"gogevgelija/internal/mailer"
	"gogevgelija/internal/router"
	"gogevgelija/internal/session"
	"gogevgelija/internal/storage"
	"gogevgelija/internal/store"
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
		"timezone", cfg.Timezone,
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

	// Connect to Valkey (payload cache + guest sessions).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	guestSessions := session.NewStore(valkeyClient)
	payloadCache := cache.NewPayloadCache(valkeyClient, cache.DefaultPayloadTTL)

	// Working-hours evaluator pinned to the city's timezone.
	hoursEval, err := hours.NewEvaluator(cfg.Timezone)
	if err != nil {
		slog.Error("failed to load timezone", "error", err, "timezone", cfg.Timezone)
		os.Exit(1)
	}

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	categoryStore := store.NewCategoryStore(db)
	listingStore := store.NewListingStore(db)
	eventStore := store.NewEventStore(db)
	promotionStore := store.NewPromotionStore(db)
	blogStore := store.NewBlogStore(db)
	wishlistStore := store.NewWishlistStore(db)
	permissionStore := store.NewPermissionStore(db)
	supportStore := store.NewSupportStore(db)
	collabStore := store.NewCollaborationStore(db)
	mediaStore := store.NewMediaStore(db)
	cacheLogStore := store.NewCacheLogStore(db)

	// Connect to S3-compatible object storage (optional; media uploads
	// are disabled without it).
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
		slog.Warn("s3 storage not configured, media uploads disabled")
	}

	// Transactional mail (optional; nil when no API key is set).
	mail := mailer.New(cfg.ResendAPIKey, cfg.MailFrom)
	if mail == nil {
		slog.Warn("resend not configured, admin notifications disabled")
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	// Create handler groups with their dependencies.
	publicHandlers := handlers.NewPublic(categoryStore, listingStore, eventStore, promotionStore, blogStore, hoursEval, payloadCache)
	authHandlers := handlers.NewAuth(userStore, guestSessions, tokens)
	wishlistHandlers := handlers.NewWishlist(wishlistStore)
	supportHandlers := handlers.NewSupport(supportStore, collabStore, mail, cfg.MailAdminTo)
	ownerHandlers := handlers.NewOwner(listingStore, permissionStore, payloadCache, cacheLogStore)
	adminHandlers := handlers.NewAdmin(userStore, categoryStore, listingStore, eventStore, promotionStore, blogStore, permissionStore, supportStore, collabStore, mediaStore, cacheLogStore, tokens, payloadCache, storageClient)

	// Set up the chi router with all middleware and routes.
	r := router.New(userStore, guestSessions, tokens, publicHandlers, authHandlers, wishlistHandlers, supportHandlers, ownerHandlers, adminHandlers)

	// Create the HTTP server with sensible timeouts. WriteTimeout covers
	// multipart image uploads plus variant processing.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
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
