package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/frogody/isyncso-backend/api/controllers"
	"github.com/frogody/isyncso-backend/api/middleware"
	"github.com/frogody/isyncso-backend/internal/catalog"
	invoicesvc "github.com/frogody/isyncso-backend/internal/invoices"
	"github.com/frogody/isyncso-backend/pkg/config"
	"github.com/frogody/isyncso-backend/pkg/db"
	"github.com/frogody/isyncso-backend/pkg/logger"
	"github.com/frogody/isyncso-backend/pkg/metrics"
	"github.com/frogody/isyncso-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	pricingMetrics *metrics.PricingMetrics,
	catalogService catalog.Service,
	invoiceService invoicesvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(redisClient, cfg.Invoicing.IdempotencyTTL, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(catalogService, logg))
			r.Get("/{productId}", controllers.GetProduct(catalogService, logg))
		})

		r.Post("/pricing/quote", controllers.Quote(catalogService, pricingMetrics, logg))

		r.Route("/invoices", func(r chi.Router) {
			r.Post("/", controllers.CreateInvoice(invoiceService, logg))
			r.Get("/{invoiceId}", controllers.GetInvoice(invoiceService, logg))
			r.Post("/{invoiceId}/line-items", controllers.AddLineItem(invoiceService, logg))
		})
	})

	return r
}
