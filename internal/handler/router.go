package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vaultpass/passgen-go/internal/metrics"
	"github.com/vaultpass/passgen-go/internal/middleware"
	"github.com/vaultpass/passgen-go/internal/service"
)

// RouterConfig collects what the HTTP API needs.
type RouterConfig struct {
	Generator      *service.GeneratorService
	History        *service.HistoryService
	Metrics        *metrics.Metrics
	JWTSecret      string
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter builds the passgen HTTP API. ctx bounds background work such as
// rate limiter cleanup.
func NewRouter(ctx context.Context, cfg RouterConfig) http.Handler {
	genHandler := NewGeneratorHandler(cfg.Generator)
	historyHandler := NewHistoryHandler(cfg.History)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst))
		r.Use(middleware.JWTAuth(cfg.JWTSecret))

		r.Post("/generate", genHandler.HandleGenerate)
		r.Get("/history", historyHandler.HandleHistory)
	})

	return r
}
