package routes

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arkodas/banglamart-backend/api/controllers"
	"github.com/arkodas/banglamart-backend/api/middleware"
	"github.com/arkodas/banglamart-backend/internal/delivery"
	"github.com/arkodas/banglamart-backend/internal/deliveryconfig"
	"github.com/arkodas/banglamart-backend/pkg/config"
	"github.com/arkodas/banglamart-backend/pkg/db"
	"github.com/arkodas/banglamart-backend/pkg/logger"
	"github.com/arkodas/banglamart-backend/pkg/metrics"
	"github.com/arkodas/banglamart-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	deliveryService delivery.Service,
	configService deliveryconfig.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/delivery", func(r chi.Router) {
		r.Post("/estimate", controllers.DeliveryEstimate(deliveryService, logg))
		r.Get("/location", controllers.DeliveryLocation(deliveryService, logg))
		r.Delete("/location", controllers.DeliveryLocationClear(deliveryService, logg))
	})

	r.Route("/api/admin/v1/delivery", func(r chi.Router) {
		r.Use(middleware.AdminAuth(cfg.AdminJWT, logg))

		r.Get("/ping", controllers.AdminPing())

		r.Route("/tiers", func(r chi.Router) {
			r.Get("/", controllers.AdminTierList(configService, logg))
			r.Post("/", controllers.AdminTierCreate(configService, logg))
			r.Put("/{tierID}", controllers.AdminTierUpdate(configService, logg))
			r.Delete("/{tierID}", controllers.AdminTierDelete(configService, logg))
		})

		r.Route("/rules", func(r chi.Router) {
			r.Get("/", controllers.AdminRuleList(configService, logg))
			r.Post("/", controllers.AdminRuleCreate(configService, logg))
			r.Put("/{ruleID}", controllers.AdminRuleUpdate(configService, logg))
			r.Delete("/{ruleID}", controllers.AdminRuleDelete(configService, logg))
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", controllers.AdminSettingsGet(configService, logg))
			r.Put("/", controllers.AdminSettingsUpdate(configService, logg))
		})

		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", controllers.AdminHolidayList(configService, logg))
			r.Post("/", controllers.AdminHolidayCreate(configService, logg))
			r.Put("/{holidayID}", controllers.AdminHolidayUpdate(configService, logg))
			r.Delete("/{holidayID}", controllers.AdminHolidayDelete(configService, logg))
		})

		r.Post("/preview", controllers.AdminDeliveryPreview(deliveryService, logg))
	})

	return r
}
