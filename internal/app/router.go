package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/insight-backend/internal/config"
	"github.com/heartmarshall/insight-backend/internal/transport/middleware"
	"github.com/heartmarshall/insight-backend/internal/transport/rest"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

type httpObserver interface {
	ObserveHTTP(method, route string, status int, d time.Duration)
}

// routerDeps is everything NewRouter mounts.
type routerDeps struct {
	cfg       *config.Config
	log       *slog.Logger
	auth      *rest.AuthHandler
	insight   *rest.InsightHandler
	export    *rest.ExportHandler
	health    *rest.HealthHandler
	validator tokenValidator
	observer  httpObserver
	gatherer  prometheus.Gatherer
	limiter   *middleware.RateLimiter
}

func newRouter(d routerDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Chain(
		middleware.RequestID,
		middleware.RealIP(d.cfg.Server.TrustProxy),
		middleware.Recovery(d.log),
		middleware.Logger(d.log),
		middleware.Metrics(d.observer),
		middleware.CORS(d.cfg.CORS),
		middleware.Auth(d.validator),
	))

	r.Get("/live", d.health.Live)
	r.Get("/ready", d.health.Ready)
	r.Get("/health", d.health.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(d.limiter.Limit(d.cfg.RateLimit.AuthPerMinute))

		r.Post("/login", d.auth.Login)
		r.Post("/register", d.auth.Register)
		r.Post("/refresh", d.auth.Refresh)
		r.With(middleware.RequireUser).Post("/logout", d.auth.Logout)
		r.Post("/reset/email", d.auth.ResetEmail)
		r.Post("/reset/password", d.auth.ResetPassword)
	})

	r.Route("/api/v1/insight", func(r chi.Router) {
		r.With(middleware.RequireUser).Get("/user", d.auth.Me)

		r.Group(func(r chi.Router) {
			if d.cfg.Insight.RequireAuth {
				r.Use(middleware.RequireUser)
			}

			r.Get("/dashboard-summary", d.insight.DashboardSummary)
			r.Get("/advanced-insights", d.insight.AdvancedInsights)
			r.Get("/engagement-heatmap", d.insight.EngagementHeatmap)
			r.Get("/content-performance", d.insight.ContentPerformance)
			r.Get("/top-engagements", d.insight.TopEngagements)
			r.Get("/engagement-trend", d.insight.EngagementTrend)
			r.Get("/engagement-trend-author-category", d.insight.EngagementTrendAuthorCategory)
			r.Get("/authors", d.insight.Authors)
			r.Get("/posts", d.insight.Posts)
			r.Get("/categories", d.insight.Categories)
			r.Get("/opportunity-areas", d.insight.OpportunityAreas)
			r.Get("/advanced-patterns", d.insight.AdvancedPatterns)
			r.Get("/scatter-performance", d.insight.ScatterPerformance)
			r.Get("/download-data", d.export.DownloadData)
			r.Get("/download-report", d.export.DownloadReport)
		})
	})

	return r
}
