package server

import (
	"log/slog"
	"net/http"
	"time"

	"mindful/internal/config"
	"mindful/internal/database"
	"mindful/internal/metrics"
	"mindful/internal/sessions"
	"mindful/internal/users"
)

// Server holds the dependencies for the HTTP server
type Server struct {
	cfg *config.Config

	db       database.Provider
	users    users.Service
	sessions sessions.Service
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// Dependencies are the wired components the routes serve.
type Dependencies struct {
	DB       database.Provider
	Users    users.Service
	Sessions sessions.Service
	Metrics  *metrics.Metrics
}

// New builds a Server. A nil Metrics disables instrumentation and /metrics.
func New(cfg *config.Config, deps Dependencies, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:      cfg,
		db:       deps.DB,
		users:    deps.Users,
		sessions: deps.Sessions,
		metrics:  deps.Metrics,
		logger:   logger,
	}
}

// NewServer creates and configures a new HTTP server
func NewServer(cfg *config.Config, deps Dependencies, logger *slog.Logger) *http.Server {
	appServer := New(cfg, deps, logger)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           appServer.RegisterRoutes(),
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	appServer.logger.Info("HTTP server configured", "addr", server.Addr)
	return server
}
