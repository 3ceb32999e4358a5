// Package health serves the client's operational endpoints: Prometheus
// metrics, a liveness probe and a readiness probe that turns unhealthy while
// the API circuit breaker is open.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Breaker is the circuit breaker state the readiness probe reports.
type Breaker interface {
	Name() string
	IsOpen() bool
}

// Server provides the HTTP endpoints:
//   - GET /metrics: Prometheus metrics
//   - GET /health: Liveness probe (always 200 OK)
//   - GET /health/ready: Readiness probe (200 when ready and no breaker is open, 503 otherwise)
//
// Example usage:
//
//	srv := health.NewServer(":9091", logger, client.CircuitBreaker())
//	go func() {
//	    if err := srv.Start(ctx); err != nil && err != http.ErrServerClosed {
//	        logger.Error("health server failed", slog.Any("error", err))
//	    }
//	}()
//	srv.SetReady(true) // after the first page is loaded
type Server struct {
	addr     string
	logger   *slog.Logger
	breakers []Breaker
	isReady  atomic.Bool
	server   *http.Server
}

// Response is the JSON body of the health endpoints.
type Response struct {
	Status   string          `json:"status"`
	Breakers []BreakerStatus `json:"breakers,omitempty"`
}

// BreakerStatus is one circuit breaker in a readiness response.
type BreakerStatus struct {
	Name string `json:"name"`
	Open bool   `json:"open"`
}

// NewServer creates a server listening on addr. It starts not ready.
func NewServer(addr string, logger *slog.Logger, breakers ...Breaker) *Server {
	return &Server{
		addr:     addr,
		logger:   logger,
		breakers: breakers,
	}
}

// Handler returns the endpoint mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", s.handleLiveness)
	mux.HandleFunc("/health/ready", s.handleReadiness)
	return mux
}

// Start serves until ctx is canceled, then shuts down within 5 seconds.
// It returns http.ErrServerClosed after a graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("health server starting", slog.String("addr", s.addr))
		if err := s.server.ListenAndServe(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("health server shutting down")
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("health server shutdown failed", slog.Any("error", err))
			return err
		}
		s.logger.Info("health server stopped")
		return http.ErrServerClosed

	case err := <-errChan:
		if !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("health server failed", slog.Any("error", err))
		}
		return err
	}
}

// SetReady sets the readiness state.
func (s *Server) SetReady(ready bool) {
	if s.isReady.Swap(ready) != ready {
		s.logger.Info("health server readiness changed", slog.Bool("ready", ready))
	}
}

func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	s.write(w, http.StatusOK, Response{Status: "ok"})
}

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	resp := Response{Status: "ok"}
	status := http.StatusOK

	for _, b := range s.breakers {
		open := b.IsOpen()
		resp.Breakers = append(resp.Breakers, BreakerStatus{Name: b.Name(), Open: open})
		if open {
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
	}
	if !s.isReady.Load() {
		resp.Status = "not ready"
		status = http.StatusServiceUnavailable
	}

	s.write(w, status, resp)
}

func (s *Server) write(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode health response", slog.Any("error", err))
	}
}
