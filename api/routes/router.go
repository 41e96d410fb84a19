package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aufaa4aaaaa/kasir-app/api/controllers"
	"github.com/aufaa4aaaaa/kasir-app/api/middleware"
	"github.com/aufaa4aaaaa/kasir-app/internal/pos"
	"github.com/aufaa4aaaaa/kasir-app/internal/report"
	"github.com/aufaa4aaaaa/kasir-app/pkg/config"
	"github.com/aufaa4aaaaa/kasir-app/pkg/enums"
	"github.com/aufaa4aaaaa/kasir-app/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	svc *pos.Service,
	formatter *report.Formatter,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, svc))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Role(logg))

		r.Get("/products", controllers.ProductList(svc, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(svc, logg))
			r.Delete("/", controllers.CartClear(svc, logg))
			r.Post("/items/{productId}", controllers.CartAddItem(svc, logg))
			r.Put("/items/{productId}", controllers.CartSetQuantity(svc, logg))
			r.Patch("/items/{productId}", controllers.CartChangeQuantity(svc, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(svc, logg))
		})

		r.Post("/checkout", controllers.Checkout(svc, logg))
		r.Get("/transactions/today", controllers.TodayTransactions(svc, logg))

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.RoleAdmin, logg))

			r.Post("/products", controllers.AdminCreateProduct(svc, logg))
			r.Put("/products/{productId}", controllers.AdminUpdateProduct(svc, logg))
			r.Delete("/products/{productId}", controllers.AdminDeleteProduct(svc, logg))

			r.Get("/reports/daily", controllers.AdminDailyReport(svc, logg))
			r.Get("/reports/daily/export", controllers.AdminExportDailyReport(svc, formatter, svc.Engine().TaxRate(), logg))

			r.Post("/reset", controllers.AdminReset(svc, logg))
			r.Post("/sample-transactions", controllers.AdminSampleTransactions(svc, logg))
		})
	})

	return r
}
