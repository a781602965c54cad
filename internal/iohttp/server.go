// Package iohttp serves the reward engine over HTTP. Handlers parse
// and validate input, delegate to the game coordinator and map policy
// outcomes to status codes; no game rule lives here.
package iohttp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/leafdex/leafdex/pkg/config"
	"github.com/leafdex/leafdex/pkg/leafdex"
)

// shutdownGrace bounds how long in-flight requests may finish after a
// termination signal.
const shutdownGrace = 10 * time.Second

// Server is the HTTP front of the reward engine.
type Server struct {
	cfg    *config.Config
	game   leafdex.Game
	auth   leafdex.TokenVerifier
	logger *slog.Logger
}

// NewServer wires the game coordinator and token verifier into an
// HTTP server.
func NewServer(
	cfg *config.Config,
	game leafdex.Game,
	auth leafdex.TokenVerifier,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{cfg: cfg, game: game, auth: auth, logger: logger}
}

// Router builds the route table.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Post("/discover", s.handleDiscover)
			r.Get("/discover/mine", s.handleMyDiscoveries)
			r.Post("/care/verify", s.handleVerifyCare)
			r.Post("/care/adopt", s.handleAdopt)
			r.Get("/user/garden", s.handleGarden)
			r.Post("/auth/login", s.handleLogin)
			r.Post("/auth/register", s.handleRegister)
		})

		r.Get("/discover", s.handleFeed)
		r.Get("/user/leaderboard", s.handleLeaderboard)
	})

	return r
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return StartError(s.cfg.Server.Port, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(), shutdownGrace,
	)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return StartError(s.cfg.Server.Port, err)
	}
	s.logger.Info("server stopped")
	return nil
}
