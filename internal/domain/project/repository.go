package project

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, p *Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// GetByID returns (nil, nil) when the project does not exist or was deleted.
func (r *Repository) GetByID(ctx context.Context, id uint) (*Project, error) {
	var p Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repository) Save(ctx context.Context, p *Project) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Project{}, id).Error
}

func (r *Repository) UpdateTrustScore(ctx context.Context, id uint, score int) error {
	return r.db.WithContext(ctx).Model(&Project{}).Where("id = ?", id).Update("trust_score", score).Error
}

func (r *Repository) ListByPromoteur(ctx context.Context, promoteurID uint) ([]Project, error) {
	var projects []Project
	err := r.db.WithContext(ctx).
		Where("promoteur_id = ?", promoteurID).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

func (r *Repository) ListIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&Project{}).Order("id ASC").Pluck("id", &ids).Error
	return ids, err
}

// CountByPromoteur counts non-deleted projects.
func (r *Repository) CountByPromoteur(ctx context.Context, promoteurID uint) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Project{}).Where("promoteur_id = ?", promoteurID).Count(&n).Error
	return int(n), err
}

func (r *Repository) CountPublishedByPromoteur(ctx context.Context, promoteurID uint) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Project{}).
		Where("promoteur_id = ? AND publication_status = ?", promoteurID, StatusPublished).
		Count(&n).Error
	return int(n), err
}

// CountUpdatesSince counts updates across every project of the promoteur.
func (r *Repository) CountUpdatesSince(ctx context.Context, promoteurID uint, since time.Time) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Update{}).
		Where("promoteur_id = ? AND created_at >= ?", promoteurID, since).
		Count(&n).Error
	return int(n), err
}

func (r *Repository) ListProjectUpdatesSince(ctx context.Context, projectID uint, since time.Time) ([]Update, error) {
	var updates []Update
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND created_at >= ?", projectID, since).
		Order("created_at DESC").
		Find(&updates).Error
	return updates, err
}

func (r *Repository) CreateUpdate(ctx context.Context, u *Update) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *Repository) CreateDocument(ctx context.Context, d *Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *Repository) CountDocuments(ctx context.Context, projectID uint) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Document{}).Where("project_id = ?", projectID).Count(&n).Error
	return int(n), err
}

// DocumentKinds returns the distinct document kinds attached to a project.
func (r *Repository) DocumentKinds(ctx context.Context, projectID uint) ([]string, error) {
	var kinds []string
	err := r.db.WithContext(ctx).
		Model(&Document{}).
		Where("project_id = ?", projectID).
		Distinct().
		Pluck("kind", &kinds).Error
	return kinds, err
}

func (r *Repository) CreateMedia(ctx context.Context, m *Media) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// CountMedia counts media of a project. With videos=true only videos are counted,
// otherwise every non-video kind.
func (r *Repository) CountMedia(ctx context.Context, projectID uint, videos bool) (int, error) {
	q := r.db.WithContext(ctx).Model(&Media{}).Where("project_id = ?", projectID)
	if videos {
		q = q.Where("kind = ?", MediaVideo)
	} else {
		q = q.Where("kind <> ?", MediaVideo)
	}
	var n int64
	err := q.Count(&n).Error
	return int(n), err
}

func (r *Repository) CountMediaByKind(ctx context.Context, projectID uint, kind MediaKind) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Media{}).
		Where("project_id = ? AND kind = ?", projectID, kind).
		Count(&n).Error
	return int(n), err
}

func (r *Repository) CreateChanges(ctx context.Context, changes []Change) error {
	if len(changes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&changes).Error
}

func (r *Repository) CountUnexplainedChanges(ctx context.Context, projectID uint) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Change{}).
		Where("project_id = ? AND (reason IS NULL OR reason = '')", projectID).
		Count(&n).Error
	return int(n), err
}
