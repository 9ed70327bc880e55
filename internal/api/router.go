package api

import (
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig holds settings for the API router.
// Passed from main.go so the router can configure CORS and rate limiting
// from env vars.
type RouterConfig struct {
	// CorsAllowedOrigins is a comma-separated list of allowed origins.
	// If empty, defaults to "*" (development mode).
	CorsAllowedOrigins string

	// Limiter throttles the generation endpoints. Nil disables limiting.
	Limiter Limiter

	// Sessions keys the rate limit by caller identity.
	Sessions SessionResolver

	// GenerationRateLimit is the per-caller, per-minute generation budget.
	// Zero disables limiting even when a Limiter is set.
	GenerationRateLimit int
}

func NewRouter(h *Handler, cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (applied to all routes including /health)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// CORS: restrict origins when configured, otherwise allow all (dev mode)
	allowedOrigins := []string{"*"}
	if cfg.CorsAllowedOrigins != "" {
		origins := strings.Split(cfg.CorsAllowedOrigins, ",")
		trimmed := make([]string, 0, len(origins))
		for _, o := range origins {
			if s := strings.TrimSpace(o); s != "" {
				trimmed = append(trimmed, s)
			}
		}
		if len(trimmed) > 0 {
			allowedOrigins = trimmed
		}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check — public
	r.Get("/health", h.Health)

	r.Route("/v1", func(r chi.Router) {
		// Generation endpoints — rate limited when Redis is configured
		r.Group(func(r chi.Router) {
			if cfg.Limiter != nil && cfg.GenerationRateLimit > 0 {
				r.Use(RateLimit(cfg.Limiter, cfg.Sessions, cfg.GenerationRateLimit, time.Minute))
			}
			r.Post("/analyze", h.Analyze)
			r.Post("/text-analyze", h.TextAnalyze)
		})

		// Cards
		r.Post("/cards/message", h.UpdateCardMessage)
		r.Get("/cards", h.ListMyCards)
		r.Get("/cards/{id}", h.GetSharedCard)
	})

	return r
}
