package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"immotrust/internal/domain/badge"
	"immotrust/internal/domain/lead"
	"immotrust/internal/domain/plan"
	"immotrust/internal/domain/project"
	"immotrust/internal/domain/promoteur"
	"immotrust/internal/domain/quota"
	"immotrust/internal/domain/team"
	"immotrust/internal/domain/trustscore"
	"immotrust/internal/middleware"
)

// Router mounts every route under /api/v1. gatherer serves /metrics when
// metrics are enabled; nil uses the default registry.
func (a *App) Router(gatherer prometheus.Gatherer) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorLogger(a.Log))
	r.Use(middleware.CORS(a.Config.CORSOrigins))
	r.Use(middleware.Metrics(a.Metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if a.Config.MetricsEnabled {
		if gatherer == nil {
			gatherer = prometheus.DefaultGatherer
		}
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	planHandler := plan.NewHandler(a.Plans)
	promoteurHandler := promoteur.NewHandler(a.PromoteurService)
	projectHandler := project.NewHandler(a.ProjectService)
	quotaHandler := quota.NewHandler(a.Quota)
	scoreHandler := trustscore.NewHandler(a.TrustScores)
	badgeHandler := badge.NewHandler(a.BadgeService)
	teamHandler := team.NewHandler(a.TeamService)
	leadHandler := lead.NewHandler(a.LeadService)

	v1 := r.Group("/api/v1")
	{
		plan.RegisterPublicRoutes(v1, planHandler)
		trustscore.RegisterPublicRoutes(v1, scoreHandler)
		badge.RegisterPublicRoutes(v1, badgeHandler)
		lead.RegisterPublicRoutes(v1, leadHandler)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(a.JWT))
		{
			access := a.TeamResolver.RequireAccess()
			promoteur.RegisterRoutes(protected, promoteurHandler, access, a.TeamResolver.Guard)
			project.RegisterPromoteurRoutes(protected, projectHandler, a.TeamResolver.Guard)
			quota.RegisterRoutes(protected, quotaHandler, access)
			trustscore.RegisterPromoteurRoutes(protected, scoreHandler, access)
			badge.RegisterPromoteurRoutes(protected, badgeHandler, access)
			team.RegisterRoutes(protected, teamHandler, a.TeamResolver)
			lead.RegisterPromoteurRoutes(protected, leadHandler, a.TeamResolver)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.JWTAuth(a.JWT), middleware.AdminOnly())
		{
			promoteur.RegisterAdminRoutes(admin, promoteurHandler)
			project.RegisterAdminRoutes(admin, projectHandler)
			badge.RegisterAdminRoutes(admin, badgeHandler)
		}
	}

	return r
}
