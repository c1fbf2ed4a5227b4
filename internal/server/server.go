// Package server exposes the engine over HTTP: optimization, the
// framework catalog, and health. Input is validated and rate limited
// before it reaches the engine; the engine itself guarantees every
// 200 response carries a valid structured prompt.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"promptc/internal/config"
	"promptc/internal/optimize"
)

// Server is the HTTP front end.
type Server struct {
	system   *optimize.System
	logger   *zap.Logger
	limiters *clientLimiters

	mu  sync.RWMutex
	cfg *config.Config

	httpServer *http.Server
}

// New creates a Server around an engine and its configuration.
func New(system *optimize.System, cfg *config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		system:   system,
		logger:   logger,
		limiters: newClientLimiters(cfg.Server.RateLimitPerMinute, cfg.Server.RateLimitBurst),
		cfg:      cfg,
	}
}

// ApplyConfig swaps in a reloaded configuration. Limits and origins
// take effect on the next request; the listen address does not change
// while running.
func (s *Server) ApplyConfig(cfg *config.Config) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}

func (s *Server) limits() config.LimitsConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Limits
}

// Handler builds the route table with the middleware chain applied.
// The chain wraps the mux itself rather than the individual routes:
// the routes use method patterns, so an OPTIONS preflight would
// otherwise be answered 405 by the mux before CORS ever ran.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /optimize", s.handleOptimize)
	mux.HandleFunc("GET /frameworks", s.handleFrameworks)
	mux.HandleFunc("GET /frameworks/{id}", s.handleFramework)
	mux.HandleFunc("GET /health", s.handleHealth)

	return s.loggingMiddleware(s.corsMiddleware(s.rateLimitMiddleware(mux.ServeHTTP)))
}

// ListenAndServe runs the server until the context is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.mu.RLock()
	cfg := s.cfg
	s.mu.RUnlock()

	s.httpServer = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", cfg.Server.Addr))
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-errCh
	return nil
}

type optimizeRequest struct {
	Prompt    string `json:"prompt"`
	Framework string `json:"framework,omitempty"`
	Static    bool   `json:"static,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type healthResponse struct {
	Status           string `json:"status"`
	DynamicAvailable bool   `json:"dynamic_available"`
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Request body must be JSON", "")
		return
	}

	prompt, fw, err := validatePromptInput(req.Prompt, req.Framework, s.limits())
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Message, verr.Field)
			return
		}
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	resp, err := s.system.Process(r.Context(), prompt, fw, req.Static)
	if err != nil {
		switch {
		case errors.Is(err, optimize.ErrEmptyInput):
			writeError(w, http.StatusBadRequest, "Prompt is required", "prompt")
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			writeError(w, http.StatusServiceUnavailable, "Request cancelled", "")
		default:
			s.logger.Error("optimization failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Internal error", "")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFrameworks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"frameworks": s.system.ListFrameworks(),
	})
}

func (s *Server) handleFramework(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	summary, ok := s.system.GetFramework(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown framework", "id")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:           "ok",
		DynamicAvailable: s.system.DynamicAvailable(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message, field string) {
	writeJSON(w, status, errorResponse{Error: message, Field: field})
}
