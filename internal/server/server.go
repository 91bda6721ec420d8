package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dkaplan/chartlist/internal/chart"
	"github.com/dkaplan/chartlist/internal/genre"
	"github.com/dkaplan/chartlist/internal/playlist"
	"github.com/dkaplan/chartlist/internal/server/ratelimit"
)

// ChartProvider serves genre charts (cache-fronted).
type ChartProvider interface {
	Chart(ctx context.Context, rawGenre string) (*chart.Response, error)
}

// GenreLister serves the genre directory for autocomplete.
type GenreLister interface {
	Genres(ctx context.Context) []genre.Link
}

// PlaylistBuilder builds a playlist from chart entries.
type PlaylistBuilder interface {
	Build(ctx context.Context, name, description string, albums []chart.AlbumEntry) (*playlist.BuildResult, error)
}

// Pinger checks a dependency's health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	charts      ChartProvider
	genres      GenreLister
	playlists   PlaylistBuilder
	db          Pinger
	rateLimiter *ratelimit.Limiter
	validate    *validator.Validate
}

// Config holds server configuration
type Config struct {
	Port      int
	Charts    ChartProvider
	Genres    GenreLister
	Playlists PlaylistBuilder
	DB        Pinger
}

// New creates a new server instance
func New(cfg Config) *Server {
	s := &Server{
		charts:      cfg.Charts,
		genres:      cfg.Genres,
		playlists:   cfg.Playlists,
		db:          cfg.DB,
		rateLimiter: ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		validate:    validator.New(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/genres", s.handleGenres)
	// Chart and playlist requests can launch a headless browser on a
	// cache miss, so they sit behind the rate limiter.
	mux.HandleFunc("GET /api/chart/{genre}", s.limited(s.handleChart))
	mux.HandleFunc("POST /api/playlist", s.limited(s.handleCreatePlaylist))

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	defer s.rateLimiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[SERVER] listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Printf("[SERVER] received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// limited wraps a handler with per-client rate limiting.
func (s *Server) limited(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.rateLimiter.Allow(clientID(r)) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, slow down")
			return
		}
		next(w, r)
	}
}

// clientID identifies a client for rate limiting, preferring the
// forwarded address when behind a proxy.
func clientID(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	return r.RemoteAddr
}
