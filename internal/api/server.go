// internal/api/server.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/newthinker/pulse/internal/api/handler"
	"github.com/newthinker/pulse/internal/api/middleware"
	"github.com/newthinker/pulse/internal/bridge"
	"github.com/newthinker/pulse/internal/metrics"
	"github.com/newthinker/pulse/internal/scheduler"
	"github.com/newthinker/pulse/internal/source"
	"github.com/newthinker/pulse/internal/state"
	"github.com/newthinker/pulse/internal/stats"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server is the HTTP server for the dashboard API.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
}

// Config holds server configuration.
type Config struct {
	Host             string
	Port             int
	APIKey           string
	SeriesCount      int
	SeriesStartPrice float64
	MetricsEnabled   bool
	MetricsPath      string
}

// Dependencies are the components the handlers serve from.
type Dependencies struct {
	Store     *state.Store
	Tracker   *stats.Tracker
	Adapter   *source.Adapter
	Scheduler *scheduler.Scheduler
	Bridge    *bridge.Bridge
	Metrics   *metrics.Registry
}

// NewServer creates a new HTTP server.
func NewServer(cfg Config, deps Dependencies, logger *zap.Logger) (*Server, error) {
	if deps.Store == nil || deps.Tracker == nil || deps.Adapter == nil ||
		deps.Scheduler == nil || deps.Bridge == nil {
		return nil, fmt.Errorf("missing server dependencies")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
		mux:    mux,
	}

	s.setupRoutes(cfg, deps)

	return s, nil
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes(cfg Config, deps Dependencies) {
	signals := handler.NewSignalsHandler(deps.Store)
	statsH := handler.NewStatsHandler(deps.Tracker, deps.Store, deps.Metrics)
	seriesH := handler.NewSeriesHandler(cfg.SeriesCount, cfg.SeriesStartPrice)
	connection := handler.NewConnectionHandler(deps.Store)
	technical := handler.NewTechnicalHandler(deps.Adapter, deps.Scheduler)
	execute := handler.NewExecuteHandler(deps.Store, deps.Bridge, deps.Metrics, s.logger)
	settings := handler.NewSettingsHandler(deps.Scheduler)

	apiMux := http.NewServeMux()
	apiMux.HandleFunc("/api/signal/latest", methodGet(signals.Latest))
	apiMux.HandleFunc("/api/signals", methodGet(signals.List))
	apiMux.HandleFunc("/api/signals/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/api/signals/")
		signals.GetByID(w, r, id)
	})
	apiMux.HandleFunc("/api/stats", methodGet(statsH.Get))
	apiMux.HandleFunc("/api/outcomes", methodPost(statsH.RecordOutcome))
	apiMux.HandleFunc("/api/series", methodGet(seriesH.Get))
	apiMux.HandleFunc("/api/connection", methodGet(connection.Get))
	apiMux.HandleFunc("/api/technical", methodGet(technical.Get))
	apiMux.HandleFunc("/api/execute", methodPost(execute.Execute))
	apiMux.HandleFunc("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			settings.Get(w, r)
		case http.MethodPost:
			settings.Update(w, r)
		default:
			methodNotAllowed(w)
		}
	})

	var apiHandler http.Handler = apiMux
	if deps.Metrics != nil {
		apiHandler = metrics.HTTPMiddleware(deps.Metrics)(apiHandler)
	}
	apiHandler = middleware.APIKeyAuth(cfg.APIKey)(apiHandler)
	s.mux.Handle("/api/", apiHandler)

	// Health and metrics stay outside auth so probes and scrapers work
	// without credentials.
	s.mux.HandleFunc("/api/health", s.handleHealth)
	if cfg.MetricsEnabled && deps.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		s.mux.Handle(path, promhttp.HandlerFor(deps.Metrics.Registry,
			promhttp.HandlerOpts{}))
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func methodGet(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		h(w, r)
	}
}

func methodPost(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		h(w, r)
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	w.Write([]byte(`{"error":{"code":"METHOD_NOT_ALLOWED","message":"method not allowed"}}`))
}
