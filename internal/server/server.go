package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/osse101/AssignmentSync_Go/docs"
	"github.com/osse101/AssignmentSync_Go/internal/database"
	"github.com/osse101/AssignmentSync_Go/internal/domain"
	"github.com/osse101/AssignmentSync_Go/internal/logger"
	"github.com/osse101/AssignmentSync_Go/internal/metrics"
	"github.com/osse101/AssignmentSync_Go/internal/repository"
)

// SyncTrigger queues sync runs and reports on them
type SyncTrigger interface {
	Trigger() bool
	Running() bool
	Last() *domain.RunSummary
}

// RunHistory lists recorded runs
type RunHistory interface {
	Recent(ctx context.Context, limit int) ([]repository.RunLogEntry, error)
}

// Config configures the HTTP listener
type Config struct {
	Port           int
	APIKey         string
	TrustedProxies []string
}

// Deps are the services behind the routes. History and DB are optional.
type Deps struct {
	Sync    SyncTrigger
	History RunHistory
	DB      database.Pool
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates the serve-mode HTTP server
func NewServer(cfg Config, deps Deps) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           NewRouter(cfg, deps),
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// NewRouter builds the route tree. Middleware runs in the order added.
func NewRouter(cfg Config, deps Deps) http.Handler {
	r := chi.NewRouter()
	detector := NewSuspiciousActivityDetector()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(cfg.APIKey, cfg.TrustedProxies, detector))
	r.Use(RateLimitMiddleware(cfg.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(maxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get(PathHealthz, handleHealthz())
	r.Get(PathReadyz, handleReadyz(deps.DB))
	r.Handle(PathMetrics, promhttp.Handler())

	r.Route(PathAPI, func(r chi.Router) {
		r.Post(PathSync, handleTriggerSync(deps.Sync))
		r.Get(PathLastRun, handleLastRun(deps.Sync))
		r.Get(PathRuns, handleListRuns(deps.History))
	})

	// Swagger documentation
	r.Get(PathSwagger, httpSwagger.WrapHandler)

	return r
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublic(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		log := logger.FromContext(r.Context()).With("request_id", middleware.GetReqID(r.Context()))

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent())
		log.Debug(LogMsgRequestHeaders, "headers", redactHeaders(r.Header))

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", duration.Milliseconds())
	})
}

func redactHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
			out[k] = []string{RedactedValue}
			continue
		}
		out[k] = v
	}
	return out
}

// Start serves until Stop is called
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
