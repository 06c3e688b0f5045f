package lead

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Repository handles lead persistence. Lookups return (nil, nil) on a miss.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, l *Lead) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *Repository) GetByID(ctx context.Context, id uint) (*Lead, error) {
	var l Lead
	err := r.db.WithContext(ctx).First(&l, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// ListByPromoteur returns newest first. status "" means any.
func (r *Repository) ListByPromoteur(ctx context.Context, promoteurID uint, status Status, limit, offset int) ([]Lead, int, error) {
	q := r.db.WithContext(ctx).Model(&Lead{}).Where("promoteur_id = ?", promoteurID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var leads []Lead
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Order("created_at DESC, id DESC").Find(&leads).Error; err != nil {
		return nil, 0, err
	}
	return leads, int(total), nil
}

// MarkResponded sets responded_at only if it is still null, and reports
// whether this call recorded it.
func (r *Repository) MarkResponded(ctx context.Context, id uint, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&Lead{}).
		Where("id = ? AND responded_at IS NULL", id).
		Updates(map[string]any{"responded_at": at, "status": StatusContacted, "updated_at": at})
	return res.RowsAffected > 0, res.Error
}

func (r *Repository) UpdateStatus(ctx context.Context, id uint, status Status) error {
	return r.db.WithContext(ctx).Model(&Lead{}).Where("id = ?", id).Update("status", status).Error
}

// AvgResponseHours averages first-response delay over responded leads.
// ok is false when no lead has been responded to.
func (r *Repository) AvgResponseHours(ctx context.Context, promoteurID uint) (float64, bool, error) {
	var rows []struct {
		CreatedAt   time.Time
		RespondedAt time.Time
	}
	err := r.db.WithContext(ctx).Model(&Lead{}).
		Select("created_at", "responded_at").
		Where("promoteur_id = ? AND responded_at IS NOT NULL", promoteurID).
		Scan(&rows).Error
	if err != nil {
		return 0, false, err
	}
	if len(rows) == 0 {
		return 0, false, nil
	}

	var total time.Duration
	for _, row := range rows {
		if d := row.RespondedAt.Sub(row.CreatedAt); d > 0 {
			total += d
		}
	}
	return total.Hours() / float64(len(rows)), true, nil
}

func (r *Repository) CountByProject(ctx context.Context, projectID uint) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Lead{}).Where("project_id = ?", projectID).Count(&n).Error
	return int(n), err
}
