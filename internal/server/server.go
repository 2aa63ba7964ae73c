// Package server implements the backend proxy for web and mobile
// clients: it forwards photo transcription and category verification
// requests to the AI provider so clients avoid CORS restrictions and
// never hold the API key.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nstrayer/aisle-list/internal/service"
)

// Server wires the proxy handlers into an http.Server.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates the proxy server listening on addr.
func New(addr string, verifier service.Verifier, extractor service.Extractor, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	h := &handlers{
		verifier:  verifier,
		extractor: extractor,
		logger:    logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/scan", h.handleScan)
	mux.HandleFunc("POST /api/verify", h.handleVerify)
	mux.HandleFunc("GET /healthz", h.handleHealth)

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           corsHeaders(mux),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// corsHeaders allows browser clients on other origins to reach the
// proxy, which is its reason for existing.
func corsHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run starts the server and blocks until the context is canceled or a
// SIGINT/SIGTERM arrives, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("proxy server listening", "addr", s.httpServer.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-sigCh:
	case <-ctx.Done():
	}

	s.logger.Info("shutting down proxy server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
