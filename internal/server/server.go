package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/intervals/internal/config"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	log    *slog.Logger
	apiKey string
	limits config.LimitsConfig
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(apiKey string, limits config.LimitsConfig, log *slog.Logger) *Server {
	s := &Server{
		log:    log,
		apiKey: apiKey,
		limits: limits,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestID)
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/api/v1/examples", s.handleExamples)

	// Evaluate endpoints (API key required when configured)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/evaluate", s.handleEvaluate)
		r.Post("/api/v1/evaluate/batch", s.handleEvaluateBatch)
	})
}
