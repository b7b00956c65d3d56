package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/agbru/rootcalc/internal/config"
	"github.com/agbru/rootcalc/internal/logging"
	"github.com/agbru/rootcalc/internal/metrics"
	"github.com/agbru/rootcalc/internal/rootfind"
)

// Server timeouts.
const (
	readHeaderTimeout = 5 * time.Second
	writeTimeout      = 60 * time.Second
	idleTimeout       = 120 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Server serves the comparison API.
type Server struct {
	addr     string
	factory  rootfind.SolverFactory
	defaults config.AppConfig
	security SecurityConfig
	logger   logging.Logger
	metrics  *metrics.Recorder
	mux      *http.ServeMux
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithMetrics replaces the metrics recorder.
func WithMetrics(m *metrics.Recorder) Option {
	return func(s *Server) { s.metrics = m }
}

// WithSecurity replaces the security configuration.
func WithSecurity(c SecurityConfig) Option {
	return func(s *Server) { s.security = c }
}

// WithDefaults sets the solver parameters used when a request omits them.
func WithDefaults(cfg config.AppConfig) Option {
	return func(s *Server) { s.defaults = cfg }
}

// New creates a server listening on addr.
func New(addr string, factory rootfind.SolverFactory, opts ...Option) *Server {
	s := &Server{
		addr:     addr,
		factory:  factory,
		defaults: config.Default(),
		security: DefaultSecurityConfig(),
		logger:   logging.NopLogger{},
		metrics:  metrics.NewRecorder(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mux = http.NewServeMux()
	s.route("/compare", s.handleCompare)
	s.route("/scenarios", s.handleScenarios)
	s.route("/health", s.handleHealth)
	s.route("/metrics", s.handleMetrics)
	return s
}

func (s *Server) route(path string, h http.HandlerFunc) {
	s.mux.HandleFunc(path, SecurityMiddleware(s.security, s.metricsMiddleware(s.loggingMiddleware(h))))
}

// Handler returns the root handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.mux,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", logging.String("addr", s.addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.metrics.ObserveRequest(r.URL.Path, rec.status, time.Since(start))
	}
}

func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		s.logger.Debug("request served",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Duration("duration", time.Since(start)),
		)
	}
}
