package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/yourusername/match-point/internal/config"
	"github.com/yourusername/match-point/internal/metrics"
)

// NewRouter wires the API routes with the shared middleware stack.
func NewRouter(h *Handler, cfg config.ServerConfig, enableMetrics bool) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health)
	r.Post("/prediction", h.Predict)
	r.Get("/player_statistics/{playerID}", h.PlayerStatistics)

	if enableMetrics {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	return r
}
