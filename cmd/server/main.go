// Package main initializes and starts the bookmarking API server, setting
// up configuration, logging, the database connection, repositories,
// services and HTTP handlers.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"bookmarker/internal/config"
	"bookmarker/internal/db"
	"bookmarker/internal/logger"
	"bookmarker/internal/repository"
	"bookmarker/internal/server/handler/http"
	"bookmarker/internal/service"
	"bookmarker/internal/token"

	"go.uber.org/zap"
)

// shutdownTimeout bounds connection draining on exit.
const shutdownTimeout = 10 * time.Second

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line, config-file and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log, err := logger.New("info")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize PostgreSQL connection and apply migrations.
	postgresDB, err := db.InitPostgres(ctx, options.DatabaseDSN)
	if err != nil {
		log.Fatal("cannot init database", zap.Error(err))
	}
	defer func() { _ = postgresDB.Close() }()

	// Initialize the bearer token manager.
	tokens, err := token.NewJWTManager(options.JWTSecret, options.TokenTTL)
	if err != nil {
		log.Fatal("cannot init token manager", zap.Error(err))
	}

	// Initialize repositories for users and bookmarks.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	bookmarkRepo := repository.NewPostgresBookmarkRepository(postgresDB)

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo, tokens)
	profileService := service.NewProfileService(userRepo)
	bookmarkService := service.NewBookmarkService(bookmarkRepo)

	// Create HTTP handlers for the auth, user and bookmark endpoints.
	authHandler := &http.AuthHandler{AuthService: authService}
	userHandler := &http.UserHandler{ProfileService: profileService}
	bookmarkHandler := &http.BookmarkHandler{BookmarkService: bookmarkService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, userHandler, bookmarkHandler, authService, log)

	server := &nethttp.Server{
		Addr:    options.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting HTTP server", zap.String("addr", options.Address))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatal("failed to start HTTP server", zap.Error(err))
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", zap.Error(err))
		}
	}
}
