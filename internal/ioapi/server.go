// Package ioapi serves read-only HTTP lookups over the loaded indicator
// tables and the regions and sectors reference tables.
package ioapi

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ConsumptionLimit caps the number of rows returned for the
// consumption lens.
const ConsumptionLimit = 10

// BindVar renders the placeholder of the n-th (1-based) query argument.
type BindVar func(n int) string

// DollarBindVar renders PostgreSQL placeholders: $1, $2...
func DollarBindVar(n int) string {
	return "$" + strconv.Itoa(n)
}

// QuestionBindVar renders positional placeholders used by SQLite.
func QuestionBindVar(int) string {
	return "?"
}

// Server is the query service.
type Server struct {
	db       *sql.DB
	bindVar  BindVar
	registry *prometheus.Registry
	metrics  *metrics
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// OptBindVar sets the placeholder style of the database driver.
func OptBindVar(bv BindVar) Option {
	return func(s *Server) {
		if bv != nil {
			s.bindVar = bv
		}
	}
}

// OptRegistry sets the prometheus registry used for metrics.
func OptRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// New creates a query service on top of db. The db handle is shared by
// all requests and is not closed by the server.
func New(db *sql.DB, opts ...Option) *Server {
	res := &Server{
		db:       db,
		bindVar:  DollarBindVar,
		registry: prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(res)
	}
	res.metrics = newMetrics(res.registry)
	res.router = res.routes()
	return res
}

// Handler returns the HTTP handler of the service.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.NotFound(s.notFound)
	r.MethodNotAllowed(s.methodNotAllowed)

	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Get("/sectors", s.sectors)
	r.Get("/regions", s.regions)
	r.Get("/{lens}/{region}", s.indicators)
	return r
}

// Run serves requests on the given port until ctx is cancelled.
func (s *Server) Run(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Query service listening", "port", port)
		if err := srv.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return ServeError(port, err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down query service")
	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		return ServeError(port, err)
	}
	return nil
}
