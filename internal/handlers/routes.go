package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes builds the HTTP surface: health, metrics, the JSON API under
// /api/v1 and the MCP endpoint.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(h.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID", "Mcp-Session-Id"},
		ExposedHeaders: []string{"X-Request-ID", "Mcp-Session-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))

		r.Get("/seasons", h.GetSeasons)
		r.Route("/seasons/{season}", func(r chi.Router) {
			r.Get("/weeks/{week}/optimization", h.GetWeekOptimization)
			r.Get("/efficiency", h.GetSeasonEfficiency)
			r.Get("/allpro", h.GetAllPro)
			r.Get("/notable", h.GetNotableGames)
			r.Get("/standings", h.GetStandings)
		})
		r.Get("/rivalry", h.GetHeadToHead)
		r.Get("/teams/{team}/rivalries", h.GetRivalries)
		r.Get("/games", h.SearchGames)
		r.Get("/players", h.FindPlayers)
	})

	if h.mcp != nil {
		r.Handle("/mcp", h.mcp)
		r.Handle("/mcp/*", h.mcp)
	}

	return r
}
