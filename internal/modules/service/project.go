package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rehabfolio/portfolio-api/internal/infra/queue"
	"github.com/rehabfolio/portfolio-api/internal/modules/model"
	"github.com/rehabfolio/portfolio-api/internal/modules/repo"
	"github.com/rehabfolio/portfolio-api/internal/pkg/utils"
	"go.uber.org/zap"
)

const dashboardRecentLimit = 5

const (
	EventProjectCreated = "project.created"
	EventProjectUpdated = "project.updated"
	EventProjectDeleted = "project.deleted"
)

// ProjectEvent is published after every successful write.
type ProjectEvent struct {
	Type   string    `json:"type"`
	ID     string    `json:"id"`
	Slug   string    `json:"slug"`
	Status string    `json:"status"`
	At     time.Time `json:"at"`
}

type Dashboard struct {
	Stats          model.ProjectStats `json:"stats"`
	RecentProjects []*model.Project   `json:"recentProjects"`
}

type AttachImageInput struct {
	Group        string `json:"group" validate:"oneof=before after"`
	URL          string `json:"url" validate:"required"`
	ThumbnailURL string `json:"thumbnailUrl"`
	AltText      string `json:"altText"`
}

type ProjectService interface {
	List(ctx context.Context, status string) ([]*model.Project, error)
	GetBySlug(ctx context.Context, slug string) (*model.Project, error)
	GetByID(ctx context.Context, id string) (*model.Project, error)
	Create(ctx context.Context, in ProjectInput) (*model.Project, error)
	Update(ctx context.Context, id string, in ProjectInput) (*model.Project, error)
	Delete(ctx context.Context, id string) error
	Dashboard(ctx context.Context) (*Dashboard, error)
	AttachImage(ctx context.Context, id string, in AttachImageInput) (*model.ProjectImage, error)
	DetachImage(ctx context.Context, id string, imageID string) error
}

type projectService struct {
	r      repo.ProjectRepo
	images ImageService
	pub    queue.Publisher
	log    *zap.Logger
}

func NewProjectService(r repo.ProjectRepo, images ImageService, pub queue.Publisher, log *zap.Logger) ProjectService {
	return &projectService{r: r, images: images, pub: pub, log: log}
}

// List returns projects in the given status, or in any status when empty.
func (s *projectService) List(ctx context.Context, status string) ([]*model.Project, error) {
	if status != "" && !model.IsValidStatus(status) {
		return nil, newValidationError(statusMessage)
	}
	return s.r.List(ctx, status)
}

func (s *projectService) GetBySlug(ctx context.Context, slug string) (*model.Project, error) {
	p, err := s.r.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *projectService) GetByID(ctx context.Context, id string) (*model.Project, error) {
	p, err := s.r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *projectService) Create(ctx context.Context, in ProjectInput) (*model.Project, error) {
	in.Normalize()
	if in.Status == "" {
		in.Status = model.StatusDraft
	}
	if errs := Validate(in); len(errs) > 0 {
		return nil, newValidationError(errs...)
	}

	slug, err := s.slugFor(in.Title)
	if err != nil {
		return nil, err
	}
	taken, err := s.r.SlugExists(ctx, slug, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrConflict
	}

	p := &model.Project{ID: uuid.NewString(), Slug: slug}
	in.applyTo(p)

	if err := s.r.Create(ctx, p); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.publish(ctx, EventProjectCreated, p)
	return p, nil
}

// Update replaces the non-image fields of an existing project, status
// included, so a missing status is rejected. A title that slugifies to
// nothing keeps the current slug.
func (s *projectService) Update(ctx context.Context, id string, in ProjectInput) (*model.Project, error) {
	in.Normalize()
	if errs := Validate(in); len(errs) > 0 {
		return nil, newValidationError(errs...)
	}

	slug := utils.Slugify(in.Title)
	if slug != "" {
		taken, err := s.r.SlugExists(ctx, slug, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrConflict
		}
	}

	existing, err := s.r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	prevStatus := existing.Status
	in.applyTo(existing)
	if slug != "" {
		existing.Slug = slug
	}

	if err := s.save(ctx, existing, prevStatus); err != nil {
		return nil, err
	}

	s.publish(ctx, EventProjectUpdated, existing)
	return existing, nil
}

// Delete removes the project, then its image blobs on a best-effort basis.
func (s *projectService) Delete(ctx context.Context, id string) error {
	p, err := s.r.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if urls := imageURLs(p); len(urls) > 0 {
		s.images.DeleteImages(ctx, urls)
	}

	s.publish(ctx, EventProjectDeleted, p)
	return nil
}

func (s *projectService) Dashboard(ctx context.Context) (*Dashboard, error) {
	stats, err := s.r.Stats(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.r.ListRecent(ctx, dashboardRecentLimit)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Stats: *stats, RecentProjects: recent}, nil
}

// AttachImage links an uploaded blob to a project. The first image of a
// group becomes its primary image.
func (s *projectService) AttachImage(ctx context.Context, id string, in AttachImageInput) (*model.ProjectImage, error) {
	in.Group = strings.ToLower(strings.TrimSpace(in.Group))
	in.URL = strings.TrimSpace(in.URL)
	in.ThumbnailURL = strings.TrimSpace(in.ThumbnailURL)

	errs := validationDetails(validate.Struct(in))
	if in.URL != "" && !s.images.OwnsURL(in.URL) {
		errs = append(errs, "Image URL must point to the project image container")
	}
	if in.ThumbnailURL != "" && !s.images.OwnsURL(in.ThumbnailURL) {
		errs = append(errs, "Thumbnail URL must point to the project image container")
	}
	if len(errs) > 0 {
		return nil, newValidationError(errs...)
	}

	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	images, primary := imageGroup(p, in.Group)
	img := model.ProjectImage{
		ID:           uuid.NewString(),
		URL:          in.URL,
		ThumbnailURL: in.ThumbnailURL,
		AltText:      strings.TrimSpace(in.AltText),
		Order:        len(*images),
	}
	*images = append(*images, img)
	if *primary == "" {
		*primary = img.URL
	}

	if err := s.save(ctx, p, p.Status); err != nil {
		return nil, err
	}

	s.publish(ctx, EventProjectUpdated, p)
	return &img, nil
}

// DetachImage unlinks an image and deletes its blobs on a best-effort basis.
func (s *projectService) DetachImage(ctx context.Context, id string, imageID string) error {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	var removed *model.ProjectImage
	for _, group := range []string{model.ImageGroupBefore, model.ImageGroupAfter} {
		images, primary := imageGroup(p, group)
		for i, img := range *images {
			if img.ID != imageID {
				continue
			}
			removed = &img
			*images = append((*images)[:i], (*images)[i+1:]...)
			for j := range *images {
				(*images)[j].Order = j
			}
			if *primary == img.URL {
				*primary = ""
				if len(*images) > 0 {
					*primary = (*images)[0].URL
				}
			}
			break
		}
		if removed != nil {
			break
		}
	}
	if removed == nil {
		return ErrNotFound
	}

	if err := s.save(ctx, p, p.Status); err != nil {
		return err
	}

	urls := []string{removed.URL}
	if removed.ThumbnailURL != "" {
		urls = append(urls, removed.ThumbnailURL)
	}
	s.images.DeleteImages(ctx, urls)

	s.publish(ctx, EventProjectUpdated, p)
	return nil
}

func (s *projectService) save(ctx context.Context, p *model.Project, prevStatus string) error {
	err := s.r.Update(ctx, p, prevStatus)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repo.ErrConflict):
		return ErrConflict
	}
	return err
}

func (s *projectService) slugFor(title string) (string, error) {
	if slug := utils.Slugify(title); slug != "" {
		return slug, nil
	}
	id, err := utils.RandomString(8)
	if err != nil {
		return "", fmt.Errorf("generate placeholder slug: %w", err)
	}
	return "draft-" + id, nil
}

func (s *projectService) publish(ctx context.Context, typ string, p *model.Project) {
	ev := ProjectEvent{Type: typ, ID: p.ID, Slug: p.Slug, Status: p.Status, At: time.Now().UTC()}
	if err := s.pub.PublishJSON(ctx, ev); err != nil {
		s.log.Sugar().Warnw("publish project event failed", "type", typ, "projectId", p.ID, "err", err)
	}
}

func imageGroup(p *model.Project, group string) (*[]model.ProjectImage, *string) {
	if group == model.ImageGroupAfter {
		return (*[]model.ProjectImage)(&p.AfterImages), &p.PrimaryAfterImage
	}
	return (*[]model.ProjectImage)(&p.BeforeImages), &p.PrimaryBeforeImage
}

func imageURLs(p *model.Project) []string {
	var urls []string
	for _, list := range [][]model.ProjectImage{p.BeforeImages, p.AfterImages} {
		for _, img := range list {
			if img.URL != "" {
				urls = append(urls, img.URL)
			}
			if img.ThumbnailURL != "" {
				urls = append(urls, img.ThumbnailURL)
			}
		}
	}
	return urls
}
