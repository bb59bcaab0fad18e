// Package api implements the HTTP API for swapstack.
//
// The server exposes the enumeration pipeline over a small JSON API:
//
//	GET  /healthz            - liveness probe
//	GET  /v1/counts?n=       - per-level plan counts for n elements
//	GET  /v1/plans?n=&l=     - the level-l plan set for n elements
//	POST /v1/apply           - apply a plan to a list of items
//
// Errors are returned as JSON envelopes containing the application error
// code and a human-readable message:
//
//	{"error": {"code": "INVALID_DIMENSION", "message": "..."}}
//
// Every response carries an X-Request-ID header for correlation with the
// structured request log.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/swapstack/pkg/observability"
	"github.com/matzehuels/swapstack/pkg/pipeline"
)

// Server handles HTTP requests by delegating to a pipeline runner.
// It holds no per-request state; one Server serves all connections.
type Server struct {
	Runner *pipeline.Runner
	Logger *log.Logger
}

// NewServer creates a server around the given runner.
// If logger is nil, the default logger is used.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		Runner: runner,
		Logger: logger,
	}
}

// Router builds the chi router with all routes and middleware attached.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/counts", s.handleCounts)
		r.Get("/plans", s.handlePlans)
		r.Post("/apply", s.handleApply)
	})

	return r
}

type ctxKey int

const requestIDKey ctxKey = 0

// RequestID returns the request ID assigned by the middleware, or ""
// outside a request context.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestID assigns each request a UUID, honoring an inbound X-Request-ID
// so upstream proxies can correlate. The ID is echoed on the response and
// stored in the request context for log lines.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// logRequests emits one structured log line per request and feeds the
// HTTP observability hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, rec.status, duration)
		s.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", duration,
			"request_id", RequestID(r.Context()))
	})
}
