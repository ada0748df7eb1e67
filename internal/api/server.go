// Copyright (c) 2026 Yomira. All rights reserved.
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

	"github.com/taibuivan/folio/internal/core/article"
	"github.com/taibuivan/folio/internal/core/category"
	"github.com/taibuivan/folio/internal/core/project"
	"github.com/taibuivan/folio/internal/platform/config"
	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/middleware"
	"github.com/taibuivan/folio/internal/users/account"
	"github.com/taibuivan/folio/internal/users/auth"
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
type Handlers struct {
	// Liveness is the /health handler; 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler; 200 when Postgres and Redis answer.
	Readiness http.HandlerFunc

	// Auth handles login, logout, refresh, password reset and sessions.
	Auth *auth.Handler

	Users      *account.Handler
	Categories *category.Handler
	Articles   *article.Handler
	Projects   *project.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups. verifier backs the Authorize middleware of
// protected routes; ctx bounds the rate limiter's background sweeper.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.SessionVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.RateLimit(ctx))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	authorize := middleware.Authorize(verifier)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/"+constants.APIVersion, func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes(authorize))
		api.Mount("/sessions", h.Auth.SessionRoutes(authorize))
		api.Mount("/users", h.Users.Routes(authorize))
		api.Mount("/categories", h.Categories.Routes(authorize))
		api.Mount("/articles", h.Articles.Routes(authorize))
		api.Mount("/projects", h.Projects.Routes(authorize))
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

// Handler exposes the router, for tests.
func (s *Server) Handler() http.Handler { return s.router }

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
