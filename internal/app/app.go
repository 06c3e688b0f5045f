package app

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"immotrust/internal/config"
	"immotrust/internal/domain/badge"
	"immotrust/internal/domain/lead"
	"immotrust/internal/domain/plan"
	"immotrust/internal/domain/project"
	"immotrust/internal/domain/promoteur"
	"immotrust/internal/domain/quota"
	"immotrust/internal/domain/team"
	"immotrust/internal/domain/trustscore"
	"immotrust/internal/metrics"
	"immotrust/internal/pkg/jwt"
)

// App holds the wired services shared by the binaries.
type App struct {
	Config  *config.AppConfig
	Log     *zap.Logger
	Metrics *metrics.Metrics
	JWT     *jwt.Service

	Plans *plan.Catalog

	Promoteurs   promoteur.Repository
	Projects     *project.Repository
	Leads        *lead.Repository
	TeamRoles    *team.Repository
	BadgeCatalog *badge.Repository

	PromoteurService *promoteur.Service
	ProjectService   *project.Service
	Quota            *quota.Resolver
	TrustScores      *trustscore.Service
	BadgeService     *badge.Service
	Refresher        *badge.Refresher
	TeamResolver     *team.Resolver
	TeamService      *team.Service
	LeadService      *lead.Service
}

// New builds the dependency graph. Invalid plan overrides or trust score
// weights are logged and replaced by the built-in defaults.
func New(cfg *config.AppConfig, db *gorm.DB, m *metrics.Metrics, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		Config:  cfg,
		Log:     log,
		Metrics: m,
		JWT:     jwt.New(cfg.JWTSecret, cfg.JWTTTL),
		Plans:   plan.NewCatalog(planConfig(cfg, log)),
	}

	a.Promoteurs = promoteur.NewRepository(db)
	a.Projects = project.NewRepository(db)
	a.Leads = lead.NewRepository(db)
	a.TeamRoles = team.NewRepository(db)
	a.BadgeCatalog = badge.NewRepository(db)

	a.PromoteurService = promoteur.NewService(a.Promoteurs, a.Plans, log.Named("promoteur"))
	a.Quota = quota.NewResolver(a.Promoteurs, a.Projects, a.Plans, m, log.Named("quota"))

	calc := trustscore.NewCalculator(trustScoreConfig(cfg, log))
	a.TrustScores = trustscore.NewService(calc, a.Promoteurs, a.Projects, a.Leads, m, log.Named("trustscore"))

	a.BadgeService = badge.NewService(a.BadgeCatalog, a.Promoteurs, a.TrustScores, badge.NewLogNotifier(log.Named("badge")), m, log.Named("badge"))
	a.BadgeService.SetRevokeStale(cfg.BadgeRevokeStale)
	a.Refresher = badge.NewRefresher(a.TrustScores, a.BadgeService, log.Named("refresher"))
	a.PromoteurService.SetRefresher(a.Refresher)

	a.ProjectService = project.NewService(a.Projects, a.Quota, a.PromoteurService, a.Refresher, log.Named("project"))

	a.TeamResolver = team.NewResolver(a.Promoteurs, a.TeamRoles, m, log.Named("team"))
	a.TeamService = team.NewService(a.Promoteurs, a.TeamRoles, a.Quota, a.PromoteurService, a.TeamResolver, log.Named("team"))

	a.LeadService = lead.NewService(a.Leads, a.Projects, a.Quota, a.Refresher, m, log.Named("lead"))
	return a
}

// Seed inserts the default badge catalog.
func (a *App) Seed(ctx context.Context) error {
	_, err := a.BadgeService.InitializeDefaultBadges(ctx)
	return err
}

// SweepReputation refreshes scores and badges for every promoteur and project.
func (a *App) SweepReputation(ctx context.Context) (badge.SweepReport, error) {
	promoteurIDs, err := a.Promoteurs.ListIDs(ctx)
	if err != nil {
		return badge.SweepReport{}, err
	}
	projectIDs, err := a.Projects.ListIDs(ctx)
	if err != nil {
		return badge.SweepReport{}, err
	}

	var total badge.SweepReport
	batch := a.Config.SweepBatchSize
	for len(projectIDs) > 0 || len(promoteurIDs) > 0 {
		var pj, pr []uint
		pj, projectIDs = take(projectIDs, batch)
		pr, promoteurIDs = take(promoteurIDs, batch)

		rep := a.Refresher.Sweep(ctx, pr, pj)
		total.Promoteurs += rep.Promoteurs
		total.Projects += rep.Projects
		total.Failures += rep.Failures
		if err := ctx.Err(); err != nil {
			return total, err
		}
		a.Log.Debug("sweep batch done", zap.Int("projects", rep.Projects), zap.Int("promoteurs", rep.Promoteurs))
	}
	return total, nil
}

func take(ids []uint, n int) ([]uint, []uint) {
	if n <= 0 || n >= len(ids) {
		return ids, nil
	}
	return ids[:n], ids[n:]
}

func planConfig(cfg *config.AppConfig, log *zap.Logger) plan.Config {
	base := plan.DefaultConfig()
	if cfg.PlanLimitsOverride == "" {
		return base
	}
	merged, err := plan.ApplyOverrides(base, []byte(cfg.PlanLimitsOverride))
	if err != nil {
		log.Warn("plan limit override ignored", zap.Error(err))
		return base
	}
	log.Info("plan limit override applied")
	return merged
}

func trustScoreConfig(cfg *config.AppConfig, log *zap.Logger) trustscore.Config {
	if cfg.TrustScoreConfigPath == "" {
		return trustscore.DefaultConfig()
	}
	tc, err := trustscore.LoadConfigFile(cfg.TrustScoreConfigPath)
	if err != nil {
		log.Warn("trust score config ignored", zap.String("path", cfg.TrustScoreConfigPath), zap.Error(err))
		return trustscore.DefaultConfig()
	}
	return tc
}
