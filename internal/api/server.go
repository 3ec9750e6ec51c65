// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package api implements the HTTP conversion service: it exposes parse,
// export, normalize and best-source selection over raw playlist request
// bodies.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/ManuGH/m3uplus/internal/api/middleware"
	"github.com/ManuGH/m3uplus/internal/config"
	xglog "github.com/ManuGH/m3uplus/internal/log"
	"github.com/ManuGH/m3uplus/internal/telemetry"
)

// ConfigSource supplies the current configuration. *config.Holder
// implements it, so reloaded request defaults apply without a restart.
type ConfigSource interface {
	Get() config.Config
}

// StaticConfig is a ConfigSource that never changes.
type StaticConfig config.Config

// Get returns the wrapped configuration.
func (c StaticConfig) Get() config.Config { return config.Config(c) }

// Server serves the conversion API.
type Server struct {
	cfg    ConfigSource
	router *chi.Mux
	logger zerolog.Logger

	// collapses identical concurrent normalize and best requests
	flight singleflight.Group
}

// New builds the server and its router. The middleware stack (rate limit,
// tracing) is fixed at construction; body limits and request defaults are
// read from cfg on every request.
func New(cfg ConfigSource) *Server {
	s := &Server{
		cfg:    cfg,
		logger: xglog.WithComponent("api"),
	}

	current := cfg.Get()
	stack := middleware.StackConfig{
		EnableSecurityHeaders: true,
		EnableMetrics:         true,
		EnableLogging:         true,
		RateLimit:             current.Server.RateLimit,
		RateWindow:            current.Server.RateWindow,
	}
	if current.Telemetry.Enabled {
		stack.TracingService = telemetry.ServiceName
	}
	s.router = middleware.NewRouter(stack)
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, codeNotFound, "no such endpoint")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, codeMethodNotAllowed, r.Method+" is not allowed here")
	})

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/parse", s.handleParse)
		r.Post("/export", s.handleExport)
		r.Post("/normalize", s.handleNormalize)
		r.Post("/best", s.handleBest)
	})
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}
