package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rogerio-castellano/product-report/internal/http/handlers"
	rl "github.com/rogerio-castellano/product-report/internal/http/rate_limiter"
	"github.com/rogerio-castellano/product-report/internal/telemetry"
)

func NewRouter(h *handlers.ProductHandler, limiter *rl.Limiter, metrics *telemetry.HTTPMetrics) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(MetricsMiddleware(metrics))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Get("/products", h.GetProducts)
		r.Get("/products/contains", h.GetProductsByNameContains)
		r.Get("/products/search", h.SearchProducts)
		r.Get("/products/price/{price}", h.SearchProductsByPrice)
		r.Get("/products/{id}", h.GetProductByID)
	})
	return r
}
