package presentation

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/bimakw/meme-swap/internal/domain/services"
	"github.com/bimakw/meme-swap/internal/presentation/handlers"
	"github.com/bimakw/meme-swap/internal/presentation/middleware"
)

// RouterConfig carries everything the HTTP layer is built from
type RouterConfig struct {
	Version          string
	AllowedOrigins   []string
	TokenService     *services.TokenService
	SelectionService *services.SelectionService
	Logger           zerolog.Logger

	// Gatherer serves /metrics when set
	Gatherer prometheus.Gatherer
}

// NewRouter builds the API router
func NewRouter(cfg RouterConfig) http.Handler {
	healthHandler := handlers.NewHealthHandler(cfg.Version)
	tokenHandler := handlers.NewTokenHandler(cfg.TokenService)
	selectionHandler := handlers.NewSelectionHandler(cfg.SelectionService)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recoverer(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.Get("/health", healthHandler.Health)
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/tokens", tokenHandler.ListTokens)
		r.Post("/tokens/detail", tokenHandler.GetTokenDetail)
		r.Post("/tokens/select", selectionHandler.SelectToken)
	})

	return r
}
