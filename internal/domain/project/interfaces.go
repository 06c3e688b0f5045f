package project

import (
	"context"

	"immotrust/internal/domain/promoteur"
)

// QuotaGuard returns nil when the plan allows one more unit of the resource.
type QuotaGuard interface {
	RequireProjectSlot(ctx context.Context, promoteurID uint) error
	RequireActiveProjectSlot(ctx context.Context, promoteurID uint) error
	RequireMonthlyUpdate(ctx context.Context, promoteurID uint) error
	RequireDocumentSlot(ctx context.Context, promoteurID, projectID uint) error
	RequireMediaSlot(ctx context.Context, promoteurID, projectID uint, kind string) error
}

// OnboardingMarker completes checklist items triggered by project activity.
type OnboardingMarker interface {
	CompleteOnboardingStep(ctx context.Context, id uint, codeOrIndex string) (*promoteur.Promoteur, error)
}

// ReputationRefresher recomputes promoteur and project reputation after a mutation.
type ReputationRefresher interface {
	Refresh(ctx context.Context, promoteurID uint) error
	RefreshProject(ctx context.Context, projectID uint) error
}
