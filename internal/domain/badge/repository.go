package badge

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

func (r *Repository) List(ctx context.Context) ([]Badge, error) {
	var badges []Badge
	err := r.db.WithContext(ctx).Order("id ASC").Find(&badges).Error
	return badges, err
}

func (r *Repository) GetByID(ctx context.Context, id uint) (*Badge, error) {
	var b Badge
	err := r.db.WithContext(ctx).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *Repository) GetByCode(ctx context.Context, code string) (*Badge, error) {
	var b Badge
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *Repository) Create(ctx context.Context, b *Badge) error {
	return r.db.WithContext(ctx).Create(b).Error
}
