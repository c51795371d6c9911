// Package http exposes the compiler pipeline as a read-only preview API.
// Nothing served here writes to the application tree.
package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/strogmv/dtogen/compiler"
	"github.com/strogmv/dtogen/internal/pkg/logger"
	"github.com/strogmv/dtogen/internal/pkg/metrics"
)

// MaxBodyBytes caps preview request bodies.
const MaxBodyBytes = 1 << 20

type Server struct {
	pipeline *compiler.Pipeline
	metrics  *metrics.Metrics
	validate *validator.Validate
	handler  http.Handler
}

func NewServer(p *compiler.Pipeline, m *metrics.Metrics) *Server {
	s := &Server{
		pipeline: p,
		metrics:  m,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	s.handler = otelhttp.NewHandler(s.routes(), "dtogen.http")
	return s
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))
	if s.metrics != nil {
		r.Use(MetricsMiddleware(s.metrics))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": compiler.Version})
	})
	if s.metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/models", s.listModels)
		r.Get("/models/{name}", s.getModel)
		r.Get("/models/{name}/dto", s.getArtifact(artifactDto))
		r.Get("/models/{name}/validator", s.getArtifact(artifactValidator))
		r.With(MaxBodySizeMiddleware(MaxBodyBytes)).Post("/preview", s.preview)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, r, http.StatusNotFound, fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, r, http.StatusMethodNotAllowed, fmt.Sprintf("%s not allowed on %s", r.Method, r.URL.Path))
	})
	return r
}

// requestLogger stores a request-scoped logger in the context and logs one
// line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		l := logger.From(r.Context()).With("request_id", middleware.GetReqID(r.Context()))
		r = r.WithContext(logger.WithContext(r.Context(), l))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		l.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.From(ctx).Info("starting preview server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.From(ctx).Info("shutting down preview server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
