package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rehabfolio/portfolio-api/internal/modules/model"
	"github.com/rehabfolio/portfolio-api/internal/modules/repo"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// memRepo keeps projects in memory, keyed like the real table by (id, status).
type memRepo struct {
	mu    sync.Mutex
	rows  map[[2]string]model.Project
	clock time.Time
}

func newMemRepo() *memRepo {
	return &memRepo{rows: map[[2]string]model.Project{}, clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memRepo) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memRepo) find(id string) (model.Project, bool) {
	for k, p := range m.rows {
		if k[0] == id {
			return p, true
		}
	}
	return model.Project{}, false
}

func (m *memRepo) GetByID(_ context.Context, id string) (*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.find(id)
	if !ok {
		return nil, nil
	}
	return cloneProject(p), nil
}

func (m *memRepo) GetBySlug(_ context.Context, slug string) (*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.rows {
		if p.Slug == slug && p.Status == model.StatusPublished {
			return cloneProject(p), nil
		}
	}
	return nil, nil
}

func (m *memRepo) SlugExists(_ context.Context, slug string, excludeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.rows {
		if p.Slug == slug && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) List(_ context.Context, status string) ([]*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]*model.Project, 0)
	for _, p := range m.rows {
		if status == "" || p.Status == status {
			items = append(items, cloneProject(p))
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].UpdatedAt.After(items[j].UpdatedAt) })
	return items, nil
}

func (m *memRepo) ListRecent(ctx context.Context, limit int) ([]*model.Project, error) {
	items, _ := m.List(ctx, "")
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (m *memRepo) Create(_ context.Context, p *model.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.Slug == p.Slug {
			return repo.ErrConflict
		}
	}
	now := m.tick()
	p.CreatedAt, p.UpdatedAt = now, now
	m.rows[[2]string{p.ID, p.Status}] = *cloneProject(*p)
	return nil
}

func (m *memRepo) Update(_ context.Context, p *model.Project, prevStatus string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old := [2]string{p.ID, prevStatus}
	if _, ok := m.rows[old]; !ok {
		return repo.ErrNotFound
	}
	p.UpdatedAt = m.tick()
	delete(m.rows, old)
	m.rows[[2]string{p.ID, p.Status}] = *cloneProject(*p)
	return nil
}

func (m *memRepo) Delete(_ context.Context, id string) (*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.find(id)
	if !ok {
		return nil, repo.ErrNotFound
	}
	delete(m.rows, [2]string{p.ID, p.Status})
	return cloneProject(p), nil
}

func (m *memRepo) Stats(_ context.Context) (*model.ProjectStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := &model.ProjectStats{}
	for _, p := range m.rows {
		stats.Total++
		switch p.Status {
		case model.StatusPublished:
			stats.Published++
		case model.StatusDraft:
			stats.Draft++
		}
	}
	return stats, nil
}

func cloneProject(p model.Project) *model.Project {
	p.BeforeImages = append(p.BeforeImages[:0:0], p.BeforeImages...)
	p.AfterImages = append(p.AfterImages[:0:0], p.AfterImages...)
	return &p
}

// MockImageService is a mock implementation of ImageService
type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) IssueUploadToken(ctx context.Context, fileName, contentType string) (*UploadToken, error) {
	args := m.Called(ctx, fileName, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*UploadToken), args.Error(1)
}

func (m *MockImageService) DeleteImages(ctx context.Context, urls []string) []DeleteResult {
	args := m.Called(ctx, urls)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]DeleteResult)
}

func (m *MockImageService) OwnsURL(raw string) bool {
	args := m.Called(raw)
	return args.Bool(0)
}

// MockPublisher records published events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishJSON(ctx context.Context, v any) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

// MockObjectStore is a mock implementation of ObjectStore
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) PresignPut(ctx context.Context, key, contentType string, expire time.Duration) (string, error) {
	args := m.Called(ctx, key, contentType, expire)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStore) ObjectURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

func (m *MockObjectStore) KeyFromURL(raw string) (string, bool) {
	args := m.Called(raw)
	return args.String(0), args.Bool(1)
}

func (m *MockObjectStore) DeleteObject(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func newTestProjectService(r repo.ProjectRepo) (ProjectService, *MockImageService, *MockPublisher) {
	images := &MockImageService{}
	pub := &MockPublisher{}
	pub.On("PublishJSON", mock.Anything, mock.Anything).Return(nil).Maybe()
	return NewProjectService(r, images, pub, zap.NewNop()), images, pub
}
