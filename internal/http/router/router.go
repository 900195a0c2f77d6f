package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/rogerio-castellano/warehouse-inventory/docs"
	"github.com/rogerio-castellano/warehouse-inventory/internal/http/ban"
	"github.com/rogerio-castellano/warehouse-inventory/internal/http/handlers"
	mw "github.com/rogerio-castellano/warehouse-inventory/internal/http/middleware"
	rl "github.com/rogerio-castellano/warehouse-inventory/internal/http/rate_limiter"
)

// Config tunes the middleware around the handlers. The zero value serves
// every origin, does not rate limit and uses a private metrics registry.
type Config struct {
	CORSOrigins []string
	// Limiter throttles /api routes when set.
	Limiter *rl.Limiter
	// Bans escalates repeated throttling to a temporary ban. Ignored without Limiter.
	Bans     ban.Tracker
	Registry *prometheus.Registry
}

func NewRouter(srv *handlers.Server, cfg Config) http.Handler {
	reg := cfg.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	metrics := mw.NewMetrics(reg)

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{mw.RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
	})

	r := chi.NewRouter()
	r.Use(mw.RequestID, mw.Recovery, mw.Logging, metrics.Middleware, c.Handler)

	r.Get("/health", srv.HealthHandler)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	requireAuth := mw.Auth(srv.Auth)

	r.Route("/api", func(r chi.Router) {
		if cfg.Limiter != nil {
			r.Use(mw.RateLimit(cfg.Limiter, cfg.Bans))
		}

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", srv.LoginHandler)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/logout", srv.LogoutHandler)
				r.Post("/refresh", srv.RefreshHandler)
				r.Get("/me", srv.MeHandler)
			})
		})

		r.Mount("/products", productRoutes(srv, requireAuth))
		r.Mount("/inventory/products", productRoutes(srv, requireAuth))
		r.Get("/dashboard", srv.GetDashboardMetricsHandler)
	})

	return r
}

func productRoutes(srv *handlers.Server, requireAuth func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", srv.GetProductsHandler)
	r.Get("/sku/{sku}", srv.GetProductBySKUHandler)
	r.Get("/{id}", srv.GetProductByIDHandler)
	r.Get("/{id}/adjustments", srv.GetAdjustmentsHandler)
	r.Get("/{id}/adjustments/export", srv.ExportAdjustmentsHandler)
	r.With(requireAuth).Post("/{id}/adjustments", srv.CreateAdjustmentHandler)
	return r
}
