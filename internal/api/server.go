// Package api serves a loaded family tree over HTTP.
//
// The family is loaded once at startup and shared read-only by every
// request. Layouts and artifacts go through the pipeline runner and its
// cache, so a redis-backed runner lets several server processes share work.
//
// Routes:
//
//	GET /healthz
//	GET /api/tree                       layout document (?mode=)
//	GET /api/tree/export.{format}       svg, png, pdf, json or dot
//	GET /api/people                     every person (?q= narrows by name)
//	GET /api/people/{id}                one person
//	GET /api/people/{id}/relations      relationship detail (?extended=true)
//	GET /api/search                     ids matching ?q=
//	GET /api/filter                     match-set and weights for a structural filter
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/kintree/pkg/pipeline"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// Server handles API requests for one family.
type Server struct {
	family   *pipeline.Family
	runner   *pipeline.Runner
	defaults pipeline.Options
	logger   *log.Logger
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithDefaults sets the options requests start from, e.g. the layout sizes
// and style from the config file.
func WithDefaults(o pipeline.Options) Option { return func(s *Server) { s.defaults = o } }

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// New creates a server for fam. A nil runner means an uncached runner.
func New(fam *pipeline.Family, runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{family: fam, runner: runner}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, s.logger)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/tree", s.handleTree)
		r.Get("/tree/export.{format}", s.handleExport)
		r.Get("/people", s.handlePeople)
		r.Get("/people/{id}", s.handlePerson)
		r.Get("/people/{id}/relations", s.handleRelations)
		r.Get("/search", s.handleSearch)
		r.Get("/filter", s.handleFilter)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errNotFound(r))
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "people", s.family.Len())
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
