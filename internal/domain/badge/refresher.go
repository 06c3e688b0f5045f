package badge

import (
	"context"

	"go.uber.org/zap"
)

// ScoreRecalculator is satisfied by *trustscore.Service.
type ScoreRecalculator interface {
	RecalculatePromoteur(ctx context.Context, promoteurID uint) (int, error)
	RecalculateProject(ctx context.Context, projectID uint) (int, error)
}

// Refresher recomputes derived reputation after a mutation: the trust score
// first, then badges. New badges move the score, so it is recomputed once more.
type Refresher struct {
	scores ScoreRecalculator
	badges *Service
	log    *zap.Logger
}

func NewRefresher(scores ScoreRecalculator, badges *Service, log *zap.Logger) *Refresher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Refresher{scores: scores, badges: badges, log: log}
}

func (r *Refresher) Refresh(ctx context.Context, promoteurID uint) error {
	if _, err := r.scores.RecalculatePromoteur(ctx, promoteurID); err != nil {
		return err
	}
	res, err := r.badges.CheckAndAward(ctx, promoteurID)
	if err != nil {
		return err
	}
	if len(res.Awarded) > 0 || len(res.Revoked) > 0 {
		if _, err := r.scores.RecalculatePromoteur(ctx, promoteurID); err != nil {
			return err
		}
	}
	return nil
}

func (r *Refresher) RefreshProject(ctx context.Context, projectID uint) error {
	_, err := r.scores.RecalculateProject(ctx, projectID)
	return err
}

// SweepReport summarises a batch recomputation.
type SweepReport struct {
	Promoteurs int
	Projects   int
	Failures   int
}

// Sweep refreshes every project then every promoteur. Failures are logged and
// counted; the sweep goes on.
func (r *Refresher) Sweep(ctx context.Context, promoteurIDs, projectIDs []uint) SweepReport {
	var rep SweepReport
	for _, id := range projectIDs {
		if err := ctx.Err(); err != nil {
			return rep
		}
		if err := r.RefreshProject(ctx, id); err != nil {
			rep.Failures++
			r.log.Warn("project refresh failed", zap.Uint("project_id", id), zap.Error(err))
			continue
		}
		rep.Projects++
	}
	for _, id := range promoteurIDs {
		if err := ctx.Err(); err != nil {
			return rep
		}
		if err := r.Refresh(ctx, id); err != nil {
			rep.Failures++
			r.log.Warn("promoteur refresh failed", zap.Uint("promoteur_id", id), zap.Error(err))
			continue
		}
		rep.Promoteurs++
	}
	return rep
}
