// Package server exposes the converter over HTTP.
//
// Routes:
//
//	POST /v1/convert?shape=&title=   Lexical JSON body -> JSON result
//	GET  /v1/styles.css              prepared stylesheet
//	GET  /v1/script.js               interaction script
//	GET  /healthz                    liveness
//	GET  /metrics                    Prometheus metrics
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	lexical2html "github.com/alnah/go-lexical2html"
)

// Converter is the subset of *lexical2html.Converter the server needs.
type Converter interface {
	Convert(ctx context.Context, input lexical2html.Input) (*lexical2html.ConvertResult, error)
	CSS() string
	Script() string
}

var _ Converter = (*lexical2html.Converter)(nil)

// Defaults applied to a zero Config.
const (
	DefaultMaxBodyBytes = 32 << 20
	DefaultReadTimeout  = 10 * time.Second
	shutdownTimeout     = 5 * time.Second
)

// Config configures a Server.
type Config struct {
	Addr         string
	CacheSize    int           // converted results kept in memory (0 = no cache)
	ReadTimeout  time.Duration // whole-request read budget
	MaxBodyBytes int64         // larger bodies get 413
}

// Server serves conversions over HTTP.
type Server struct {
	cfg     Config
	conv    Converter
	logger  *zap.Logger
	metrics *metrics
	cache   *lru.Cache[uint64, convertResponse] // nil when disabled
	router  chi.Router
}

// New creates a Server. A nil logger discards logs.
func New(conv Converter, cfg Config, logger *zap.Logger) (*Server, error) {
	if conv == nil {
		return nil, errors.New("server: nil converter")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}

	s := &Server{
		cfg:     cfg,
		conv:    conv,
		logger:  logger,
		metrics: newMetrics(),
	}

	if cfg.CacheSize > 0 {
		cache, err := lru.New[uint64, convertResponse](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("creating result cache: %w", err)
		}
		s.cache = cache
	}

	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.healthz)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/convert", s.metrics.instrument("convert", s.convert))
		r.Get("/styles.css", s.metrics.instrument("styles", s.styles))
		r.Get("/script.js", s.metrics.instrument("script", s.script))
	})

	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
