package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rehabfolio/portfolio-api/internal/modules/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("project not found")
	ErrConflict = errors.New("project slug already exists")
)

// ProjectRepo stores projects keyed by (id, status). Lookups by id or slug
// query across statuses; writes address the row through both key parts.
type ProjectRepo interface {
	GetByID(ctx context.Context, id string) (*model.Project, error)
	GetBySlug(ctx context.Context, slug string) (*model.Project, error)
	SlugExists(ctx context.Context, slug string, excludeID string) (bool, error)
	List(ctx context.Context, status string) ([]*model.Project, error)
	ListRecent(ctx context.Context, limit int) ([]*model.Project, error)
	Create(ctx context.Context, p *model.Project) error
	Update(ctx context.Context, p *model.Project, prevStatus string) error
	Delete(ctx context.Context, id string) (*model.Project, error)
	Stats(ctx context.Context) (*model.ProjectStats, error)
}

type projectRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewProjectRepo(db *gorm.DB) ProjectRepo {
	return &projectRepo{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// GetByID returns nil, nil when no project has the id.
func (r *projectRepo) GetByID(ctx context.Context, id string) (*model.Project, error) {
	var p model.Project
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}
	return &p, nil
}

// GetBySlug only sees published projects and returns nil, nil otherwise.
func (r *projectRepo) GetBySlug(ctx context.Context, slug string) (*model.Project, error) {
	var p model.Project
	err := r.db.WithContext(ctx).Where("slug = ? AND status = ?", slug, model.StatusPublished).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project by slug %s: %w", slug, err)
	}
	return &p, nil
}

func (r *projectRepo) SlugExists(ctx context.Context, slug string, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&model.Project{}).Where("slug = ?", slug)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, fmt.Errorf("check slug %s: %w", slug, err)
	}
	return n > 0, nil
}

// List returns projects newest-updated first; an empty status means any.
func (r *projectRepo) List(ctx context.Context, status string) ([]*model.Project, error) {
	q := r.db.WithContext(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	items := make([]*model.Project, 0)
	if err := q.Order("updated_at DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return items, nil
}

func (r *projectRepo) ListRecent(ctx context.Context, limit int) ([]*model.Project, error) {
	items := make([]*model.Project, 0, limit)
	if err := r.db.WithContext(ctx).Order("updated_at DESC").Limit(limit).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list recent projects: %w", err)
	}
	return items, nil
}

func (r *projectRepo) Create(ctx context.Context, p *model.Project) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := r.now()
	p.CreatedAt = now
	p.UpdatedAt = now
	normalizeImages(p)

	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return translate("create project", err)
	}
	return nil
}

// Update replaces the stored document. Because status is part of the key, a
// status change deletes the row under prevStatus and inserts it again under
// the new one inside a single transaction.
func (r *projectRepo) Update(ctx context.Context, p *model.Project, prevStatus string) error {
	p.UpdatedAt = r.now()
	normalizeImages(p)

	if prevStatus != p.Status {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			res := tx.Where("id = ? AND status = ?", p.ID, prevStatus).Delete(&model.Project{})
			if res.Error != nil {
				return fmt.Errorf("move project %s out of %s: %w", p.ID, prevStatus, res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrNotFound
			}
			if err := tx.Create(p).Error; err != nil {
				return translate("move project into "+p.Status, err)
			}
			return nil
		})
	}

	res := r.db.WithContext(ctx).Model(p).
		Where("id = ? AND status = ?", p.ID, p.Status).
		Select("*").
		Updates(p)
	if res.Error != nil {
		return translate("update project", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete resolves the current status first since the row is addressed by
// (id, status). It returns the deleted project.
func (r *projectRepo) Delete(ctx context.Context, id string) (*model.Project, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNotFound
	}

	res := r.db.WithContext(ctx).Where("id = ? AND status = ?", id, current.Status).Delete(&model.Project{})
	if res.Error != nil {
		return nil, fmt.Errorf("delete project %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return current, nil
}

func (r *projectRepo) Stats(ctx context.Context) (*model.ProjectStats, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&model.Project{}).
		Select("status, count(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("project stats: %w", err)
	}

	stats := &model.ProjectStats{}
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case model.StatusPublished:
			stats.Published = row.Count
		case model.StatusDraft:
			stats.Draft = row.Count
		}
	}
	return stats, nil
}

func normalizeImages(p *model.Project) {
	if p.BeforeImages == nil {
		p.BeforeImages = datatypes.JSONSlice[model.ProjectImage]{}
	}
	if p.AfterImages == nil {
		p.AfterImages = datatypes.JSONSlice[model.ProjectImage]{}
	}
}

func translate(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	return fmt.Errorf("%s: %w", op, err)
}
