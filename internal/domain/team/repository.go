package team

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByName returns (nil, nil) when the promoteur has no override for name.
func (r *Repository) GetByName(ctx context.Context, promoteurID uint, name string) (*TeamRole, error) {
	var role TeamRole
	err := r.db.WithContext(ctx).
		Where("promoteur_id = ? AND name = ?", promoteurID, name).
		First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *Repository) List(ctx context.Context, promoteurID uint) ([]TeamRole, error) {
	var roles []TeamRole
	err := r.db.WithContext(ctx).
		Where("promoteur_id = ?", promoteurID).
		Order("name ASC").
		Find(&roles).Error
	return roles, err
}

func (r *Repository) Create(ctx context.Context, role *TeamRole) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *Repository) UpdatePermissions(ctx context.Context, id uint, perms map[string]bool) error {
	return r.db.WithContext(ctx).
		Model(&TeamRole{ID: id}).
		Select("permissions", "updated_at").
		Updates(&TeamRole{Permissions: perms}).Error
}

// Delete reports whether a row was removed.
func (r *Repository) Delete(ctx context.Context, promoteurID uint, name string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("promoteur_id = ? AND name = ?", promoteurID, name).
		Delete(&TeamRole{})
	return res.RowsAffected > 0, res.Error
}
