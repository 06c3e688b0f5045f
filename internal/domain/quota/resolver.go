package quota

import (
	"context"
	"time"

	"go.uber.org/zap"

	"immotrust/internal/domain/plan"
	"immotrust/internal/domain/promoteur"
	"immotrust/internal/metrics"
)

const (
	ResourceProjects       = "projects"
	ResourceActiveProjects = "active_projects"
	ResourceMonthlyUpdates = "monthly_updates"
	ResourceDocuments      = "documents"
	ResourceMedia          = "media"
	ResourceVideos         = "videos"
	ResourceTeamMembers    = "team_members"
	ResourceCapability     = "capability"
)

// PromoteurFinder returns (nil, nil) when the promoteur does not exist.
type PromoteurFinder interface {
	GetByID(ctx context.Context, id uint) (*promoteur.Promoteur, error)
}

// UsageCounter reads current usage. Counts are best effort: there is no
// reservation, so concurrent requests can overshoot a limit by the number in flight.
type UsageCounter interface {
	CountByPromoteur(ctx context.Context, promoteurID uint) (int, error)
	CountPublishedByPromoteur(ctx context.Context, promoteurID uint) (int, error)
	CountUpdatesSince(ctx context.Context, promoteurID uint, since time.Time) (int, error)
	CountDocuments(ctx context.Context, projectID uint) (int, error)
	CountMedia(ctx context.Context, projectID uint, videos bool) (int, error)
}

// Decision is the {allowed, limit, current} triple shown in quota displays.
// Limit is plan.Unlimited (-1) when the tier has no ceiling.
type Decision struct {
	Allowed bool      `json:"allowed"`
	Limit   int       `json:"limit"`
	Current int       `json:"current"`
	Plan    plan.Tier `json:"plan"`
	Blocked bool      `json:"blocked,omitempty"`
}

type Resolver struct {
	promoteurs PromoteurFinder
	usage      UsageCounter
	catalog    *plan.Catalog
	metrics    *metrics.Metrics
	log        *zap.Logger
	now        func() time.Time
}

func NewResolver(promoteurs PromoteurFinder, usage UsageCounter, catalog *plan.Catalog, m *metrics.Metrics, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{
		promoteurs: promoteurs,
		usage:      usage,
		catalog:    catalog,
		metrics:    m,
		log:        log,
		now:        time.Now,
	}
}

// SetClock replaces the time source. The monthly window follows the clock's location.
func (r *Resolver) SetClock(now func() time.Time) {
	r.now = now
}

func (r *Resolver) load(ctx context.Context, op string, promoteurID uint) (*promoteur.Promoteur, plan.Tier, error) {
	p, err := r.promoteurs.GetByID(ctx, promoteurID)
	if err != nil {
		r.metrics.RecordQuota(op, "error")
		return nil, "", &EvaluationError{Op: op, Err: err}
	}
	if p == nil {
		return nil, "", promoteur.ErrPromoteurNotFound
	}
	return p, r.catalog.ResolvePlan(p.Plan), nil
}

// CheckCapability reports whether the promoteur's tier enables the named capability.
// Unknown names evaluate to false.
func (r *Resolver) CheckCapability(ctx context.Context, promoteurID uint, name string) (bool, error) {
	_, tier, err := r.load(ctx, ResourceCapability, promoteurID)
	if err != nil {
		return false, err
	}
	ok := r.catalog.HasCapability(tier, plan.Capability(name))
	r.record(ResourceCapability, ok)
	return ok, nil
}

// CheckProjectLimit compares non-deleted projects with maxProjects.
func (r *Resolver) CheckProjectLimit(ctx context.Context, promoteurID uint) (Decision, error) {
	return r.check(ctx, ResourceProjects, promoteurID,
		func(l plan.Limits) int { return l.MaxProjects },
		func(ctx context.Context, _ *promoteur.Promoteur) (int, error) {
			return r.usage.CountByPromoteur(ctx, promoteurID)
		})
}

// CheckActiveProjectLimit compares published projects with maxActiveProjects.
func (r *Resolver) CheckActiveProjectLimit(ctx context.Context, promoteurID uint) (Decision, error) {
	return r.check(ctx, ResourceActiveProjects, promoteurID,
		func(l plan.Limits) int { return l.MaxActiveProjects },
		func(ctx context.Context, _ *promoteur.Promoteur) (int, error) {
			return r.usage.CountPublishedByPromoteur(ctx, promoteurID)
		})
}

// CheckMonthlyUpdateLimit counts updates across all projects since the start
// of the current calendar month.
func (r *Resolver) CheckMonthlyUpdateLimit(ctx context.Context, promoteurID uint) (Decision, error) {
	return r.check(ctx, ResourceMonthlyUpdates, promoteurID,
		func(l plan.Limits) int { return l.MaxUpdatesPerMonth },
		func(ctx context.Context, _ *promoteur.Promoteur) (int, error) {
			return r.usage.CountUpdatesSince(ctx, promoteurID, monthStart(r.now()))
		})
}

func (r *Resolver) CheckProjectDocumentLimit(ctx context.Context, promoteurID, projectID uint) (Decision, error) {
	return r.check(ctx, ResourceDocuments, promoteurID,
		func(l plan.Limits) int { return l.MaxDocuments },
		func(ctx context.Context, _ *promoteur.Promoteur) (int, error) {
			return r.usage.CountDocuments(ctx, projectID)
		})
}

// CheckProjectMediaLimit applies maxVideos to videos and maxMediaPerProject to
// every other kind.
func (r *Resolver) CheckProjectMediaLimit(ctx context.Context, promoteurID, projectID uint, mediaType string) (Decision, error) {
	videos := mediaType == "video"
	resource := ResourceMedia
	if videos {
		resource = ResourceVideos
	}
	return r.check(ctx, resource, promoteurID,
		func(l plan.Limits) int {
			if videos {
				return l.MaxVideos
			}
			return l.MaxMediaPerProject
		},
		func(ctx context.Context, _ *promoteur.Promoteur) (int, error) {
			return r.usage.CountMedia(ctx, projectID, videos)
		})
}

func (r *Resolver) CheckTeamMemberLimit(ctx context.Context, promoteurID uint) (Decision, error) {
	return r.check(ctx, ResourceTeamMembers, promoteurID,
		func(l plan.Limits) int { return l.MaxTeamMembers },
		func(_ context.Context, p *promoteur.Promoteur) (int, error) {
			return len(p.TeamMembers), nil
		})
}

func (r *Resolver) check(
	ctx context.Context,
	resource string,
	promoteurID uint,
	limitOf func(plan.Limits) int,
	count func(context.Context, *promoteur.Promoteur) (int, error),
) (Decision, error) {
	p, tier, err := r.load(ctx, resource, promoteurID)
	if err != nil {
		return Decision{}, err
	}

	current, err := count(ctx, p)
	if err != nil {
		r.metrics.RecordQuota(resource, "error")
		return Decision{}, &EvaluationError{Op: resource, Err: err}
	}

	d := Decision{
		Limit:   limitOf(r.catalog.Limits(tier)),
		Current: current,
		Plan:    tier,
	}
	if p.IsSuspended() {
		d.Blocked = true
	} else {
		d.Allowed = plan.Within(current, d.Limit)
	}
	r.record(resource, d.Allowed)
	return d, nil
}

func (r *Resolver) record(resource string, allowed bool) {
	outcome := "allowed"
	if !allowed {
		outcome = "denied"
	}
	r.metrics.RecordQuota(resource, outcome)
}

func monthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
