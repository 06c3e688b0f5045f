package promoteur

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository handles persistence for promoteur profiles.
// Lookups return (nil, nil) when no record matches.
type Repository interface {
	Create(ctx context.Context, p *Promoteur) error
	GetByID(ctx context.Context, id uint) (*Promoteur, error)
	GetByOwnerUserID(ctx context.Context, userID int64) (*Promoteur, error)
	Save(ctx context.Context, p *Promoteur) error
	UpdateBadges(ctx context.Context, id uint, badges []BadgeAward) error
	UpdateTrustScore(ctx context.Context, id uint, score int) error
	ListIDs(ctx context.Context) ([]uint, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Promoteur) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Promoteur, error) {
	var p Promoteur
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetByOwnerUserID(ctx context.Context, userID int64) (*Promoteur, error) {
	var p Promoteur
	err := r.db.WithContext(ctx).Where("owner_user_id = ?", userID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) Save(ctx context.Context, p *Promoteur) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) UpdateBadges(ctx context.Context, id uint, badges []BadgeAward) error {
	return r.db.WithContext(ctx).
		Model(&Promoteur{ID: id}).
		Select("badges", "updated_at").
		Updates(&Promoteur{Badges: badges}).Error
}

func (r *repository) UpdateTrustScore(ctx context.Context, id uint, score int) error {
	return r.db.WithContext(ctx).
		Model(&Promoteur{}).
		Where("id = ?", id).
		Update("trust_score", score).Error
}

func (r *repository) ListIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&Promoteur{}).Order("id ASC").Pluck("id", &ids).Error
	return ids, err
}
