// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/askora/internal/admin"
	"github.com/taibuivan/askora/internal/platform/config"
	"github.com/taibuivan/askora/internal/platform/constants"
	"github.com/taibuivan/askora/internal/platform/middleware"
	"github.com/taibuivan/askora/internal/qna/answer"
	"github.com/taibuivan/askora/internal/qna/comment"
	"github.com/taibuivan/askora/internal/qna/question"
	"github.com/taibuivan/askora/internal/qna/tag"
	"github.com/taibuivan/askora/internal/qna/vote"
	"github.com/taibuivan/askora/internal/users/auth"
	"github.com/taibuivan/askora/internal/users/profile"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles authentication routes (login, register).
	Auth *auth.Handler

	// Profile handles public profiles and reputation.
	Profile *profile.Handler

	// Question handles the question catalogue, including the unauthenticated
	// compact listing under /api.
	Question *question.Handler

	// Answer handles answers and acceptance.
	Answer *answer.Handler

	// Comment handles remarks on questions and answers.
	Comment *comment.Handler

	// Vote handles vote casting, changing, and retraction.
	Vote *vote.Handler

	// Tag manages topic labels.
	Tag *tag.Handler

	// Admin exposes the operator browsing surface.
	Admin *admin.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, resolver middleware.TokenResolver, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(resolver))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Observed Surface
	// Flat routes kept stable for existing API consumers: token issuance
	// plus the unauthenticated read-only question listing.
	r.Route("/api", func(flat chi.Router) {
		flat.Post("/register", h.Auth.Register)
		flat.Post("/login", h.Auth.Login)
		flat.Get("/questions", h.Question.CompactList)
		flat.Get("/questions/{questionID}", h.Question.CompactDetail)
	})

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/profiles", h.Profile.Routes())
		api.Mount("/questions", h.Question.Routes())
		api.Mount("/answers", h.Answer.Routes())
		api.Mount("/comments", h.Comment.Routes())
		api.Mount("/votes", h.Vote.Routes())
		api.Mount("/tags", h.Tag.Routes())
		api.Mount("/admin", h.Admin.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
