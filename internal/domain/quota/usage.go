package quota

import (
	"context"

	"immotrust/internal/domain/plan"
)

type Counts struct {
	Projects         int `json:"projects"`
	ActiveProjects   int `json:"activeProjects"`
	UpdatesThisMonth int `json:"updatesThisMonth"`
	TeamMembers      int `json:"teamMembers"`
}

// Usage is the plan overview rendered on the promoteur dashboard.
type Usage struct {
	Plan              plan.Tier                `json:"plan"`
	Rank              int                      `json:"rank"`
	UpgradeTo         plan.Tier                `json:"upgradeTo,omitempty"`
	Limits            plan.Limits              `json:"limits"`
	Capabilities      map[plan.Capability]bool `json:"capabilities"`
	Counts            Counts                   `json:"counts"`
	ComplianceBlocked bool                     `json:"complianceBlocked"`
}

func (r *Resolver) Usage(ctx context.Context, promoteurID uint) (*Usage, error) {
	p, tier, err := r.load(ctx, "usage", promoteurID)
	if err != nil {
		return nil, err
	}

	u := &Usage{
		Plan:              tier,
		Rank:              r.catalog.Rank(tier),
		UpgradeTo:         r.catalog.NextTier(tier),
		Limits:            r.catalog.Limits(tier),
		Capabilities:      r.catalog.Capabilities(tier),
		ComplianceBlocked: p.IsSuspended(),
	}
	u.Counts.TeamMembers = len(p.TeamMembers)

	if u.Counts.Projects, err = r.usage.CountByPromoteur(ctx, promoteurID); err != nil {
		return nil, &EvaluationError{Op: "usage", Err: err}
	}
	if u.Counts.ActiveProjects, err = r.usage.CountPublishedByPromoteur(ctx, promoteurID); err != nil {
		return nil, &EvaluationError{Op: "usage", Err: err}
	}
	if u.Counts.UpdatesThisMonth, err = r.usage.CountUpdatesSince(ctx, promoteurID, monthStart(r.now())); err != nil {
		return nil, &EvaluationError{Op: "usage", Err: err}
	}
	return u, nil
}
