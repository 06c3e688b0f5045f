package quota

import (
	"context"

	"go.uber.org/zap"

	"immotrust/internal/domain/plan"
)

// The Require* helpers turn a denial into *LimitError, or ErrComplianceBlocked
// for a suspended promoteur. Evaluation failures pass through unchanged.

func (r *Resolver) RequireProjectSlot(ctx context.Context, promoteurID uint) error {
	d, err := r.CheckProjectLimit(ctx, promoteurID)
	return r.enforce(promoteurID, ResourceProjects, ErrProjectLimitReached, d, err)
}

func (r *Resolver) RequireActiveProjectSlot(ctx context.Context, promoteurID uint) error {
	d, err := r.CheckActiveProjectLimit(ctx, promoteurID)
	return r.enforce(promoteurID, ResourceActiveProjects, ErrActiveProjectLimitReached, d, err)
}

func (r *Resolver) RequireMonthlyUpdate(ctx context.Context, promoteurID uint) error {
	d, err := r.CheckMonthlyUpdateLimit(ctx, promoteurID)
	return r.enforce(promoteurID, ResourceMonthlyUpdates, ErrMonthlyUpdateLimitReached, d, err)
}

func (r *Resolver) RequireDocumentSlot(ctx context.Context, promoteurID, projectID uint) error {
	d, err := r.CheckProjectDocumentLimit(ctx, promoteurID, projectID)
	return r.enforce(promoteurID, ResourceDocuments, ErrDocumentLimitReached, d, err)
}

func (r *Resolver) RequireMediaSlot(ctx context.Context, promoteurID, projectID uint, kind string) error {
	d, err := r.CheckProjectMediaLimit(ctx, promoteurID, projectID, kind)
	if kind == "video" {
		return r.enforce(promoteurID, ResourceVideos, ErrVideoLimitReached, d, err)
	}
	return r.enforce(promoteurID, ResourceMedia, ErrMediaLimitReached, d, err)
}

func (r *Resolver) RequireTeamSlot(ctx context.Context, promoteurID uint) error {
	d, err := r.CheckTeamMemberLimit(ctx, promoteurID)
	return r.enforce(promoteurID, ResourceTeamMembers, ErrTeamMemberLimitReached, d, err)
}

// RequireCapability fails with a LimitError naming the first tier that would unlock it.
func (r *Resolver) RequireCapability(ctx context.Context, promoteurID uint, capability plan.Capability) error {
	_, tier, err := r.load(ctx, ResourceCapability, promoteurID)
	if err != nil {
		return err
	}
	if r.catalog.HasCapability(tier, capability) {
		r.record(ResourceCapability, true)
		return nil
	}
	r.record(ResourceCapability, false)

	upgrade := plan.Tier("")
	for _, t := range r.catalog.Tiers() {
		if r.catalog.Compare(t, tier) > 0 && r.catalog.HasCapability(t, capability) {
			upgrade = t
			break
		}
	}
	r.log.Info("capability denied",
		zap.Uint("promoteur_id", promoteurID),
		zap.String("capability", string(capability)),
		zap.String("plan", string(tier)),
	)
	return &LimitError{
		Err:       ErrFeatureNotAvailable,
		Resource:  string(capability),
		Plan:      tier,
		UpgradeTo: upgrade,
	}
}

func (r *Resolver) enforce(promoteurID uint, resource string, sentinel error, d Decision, err error) error {
	if err != nil {
		return err
	}
	if d.Blocked {
		r.log.Warn("quota blocked by compliance", zap.Uint("promoteur_id", promoteurID), zap.String("resource", resource))
		return ErrComplianceBlocked
	}
	if d.Allowed {
		return nil
	}
	r.log.Info("quota denied",
		zap.Uint("promoteur_id", promoteurID),
		zap.String("resource", resource),
		zap.Int("current", d.Current),
		zap.Int("limit", d.Limit),
		zap.String("plan", string(d.Plan)),
	)
	return &LimitError{
		Err:       sentinel,
		Resource:  resource,
		Current:   d.Current,
		Limit:     d.Limit,
		Plan:      d.Plan,
		UpgradeTo: r.catalog.NextTier(d.Plan),
	}
}
