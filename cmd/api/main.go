// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Askora HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
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

	"github.com/taibuivan/askora/internal/admin"
	"github.com/taibuivan/askora/internal/api"
	"github.com/taibuivan/askora/internal/platform/config"
	"github.com/taibuivan/askora/internal/platform/constants"
	"github.com/taibuivan/askora/internal/platform/migration"
	pgstore "github.com/taibuivan/askora/internal/platform/postgres"
	redisstore "github.com/taibuivan/askora/internal/platform/redis"
	"github.com/taibuivan/askora/internal/qna/answer"
	"github.com/taibuivan/askora/internal/qna/comment"
	"github.com/taibuivan/askora/internal/qna/question"
	"github.com/taibuivan/askora/internal/qna/tag"
	"github.com/taibuivan/askora/internal/qna/vote"
	"github.com/taibuivan/askora/internal/users/auth"
	"github.com/taibuivan/askora/internal/users/profile"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "askora"))
	slog.SetDefault(log)

	log.Info("[Askora] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "askora"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	profileRepository := profile.NewPostgresRepository(pool)
	profileService := profile.NewService(profileRepository, log)
	profileHandler := profile.NewHandler(profileService)

	userRepository := auth.NewUserRepository(pool)
	tokenRepository := auth.NewTokenRepository(pool)
	tokenCache := auth.NewTokenCache(rdb)
	authService := auth.NewService(userRepository, tokenRepository, tokenCache)
	authHandler := auth.NewHandler(authService)

	tagRepository := tag.NewPostgresRepository(pool)
	tagService := tag.NewService(tagRepository)
	tagHandler := tag.NewHandler(tagService)

	answerRepository := answer.NewPostgresRepository(pool)
	answerService := answer.NewService(answerRepository)
	answerHandler := answer.NewHandler(answerService)

	commentRepository := comment.NewPostgresRepository(pool)
	commentService := comment.NewService(commentRepository)
	commentHandler := comment.NewHandler(commentService)

	questionRepository := question.NewPostgresRepository(pool)
	questionService := question.NewService(questionRepository)
	questionHandler := question.NewHandler(questionService,
		answerHandler.QuestionRoutes(), commentHandler.QuestionRoutes())

	voteRepository := vote.NewPostgresRepository(pool)
	voteService := vote.NewService(voteRepository)
	voteHandler := vote.NewHandler(voteService)

	adminRepository := admin.NewPostgresRepository(pool)
	adminHandler := admin.NewHandler(adminRepository)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Profile:   profileHandler,
		Question:  questionHandler,
		Answer:    answerHandler,
		Comment:   commentHandler,
		Vote:      voteHandler,
		Tag:       tagHandler,
		Admin:     adminHandler,
	}

	server := api.NewServer(context.Background(), cfg, log, authService, handlers)

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
