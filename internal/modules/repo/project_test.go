package repo

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rehabfolio/portfolio-api/internal/modules/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func setupMockRepo(t *testing.T) (*projectRepo, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return &projectRepo{db: db, now: func() time.Time { return fixedNow }}, mock
}

// uniqueViolation is what postgres reports when uq_projects_slug is hit.
func uniqueViolation() error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "uq_projects_slug"`,
		ConstraintName: "uq_projects_slug",
	}
}

func projectColumns() []string {
	return []string{"id", "status", "slug", "title", "location", "before_images", "after_images", "created_at", "updated_at"}
}

func TestProjectRepo_GetByID(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		want    *model.Project
		wantErr bool
	}{
		{
			name: "found in any status",
			setup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(projectColumns()).
					AddRow("p1", "draft", "oak-street-flip", "Oak Street Flip", "Austin, TX", []byte("[]"), []byte("[]"), fixedNow, fixedNow)
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "projects" WHERE id = $1`)).WillReturnRows(rows)
			},
			want: &model.Project{ID: "p1", Status: "draft", Slug: "oak-street-flip", Title: "Oak Street Flip", Location: "Austin, TX"},
		},
		{
			name: "missing resolves to nil",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "projects" WHERE id = $1`)).
					WillReturnRows(sqlmock.NewRows(projectColumns()))
			},
		},
		{
			name: "store failure propagates",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "projects"`)).WillReturnError(errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, mock := setupMockRepo(t)
			tt.setup(mock)

			got, err := r.GetByID(context.Background(), "p1")
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				if tt.want == nil {
					assert.Nil(t, got)
				} else {
					require.NotNil(t, got)
					assert.Equal(t, tt.want.ID, got.ID)
					assert.Equal(t, tt.want.Status, got.Status)
					assert.Equal(t, tt.want.Slug, got.Slug)
					assert.Equal(t, tt.want.Title, got.Title)
					assert.Equal(t, tt.want.Location, got.Location)
				}
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProjectRepo_GetBySlug_OnlyPublished(t *testing.T) {
	r, mock := setupMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "projects" WHERE slug = $1 AND status = $2`)).
		WillReturnRows(sqlmock.NewRows(projectColumns()))

	got, err := r.GetBySlug(context.Background(), "oak-street-flip")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepo_SlugExists(t *testing.T) {
	tests := []struct {
		name      string
		excludeID string
		query     string
		args      []driver.Value
		count     int64
		want      bool
	}{
		{
			name:  "taken",
			query: `SELECT count(*) FROM "projects" WHERE slug = $1`,
			args:  []driver.Value{"oak-street-flip"},
			count: 1,
			want:  true,
		},
		{
			name:      "only the excluded project has it",
			excludeID: "p1",
			query:     `SELECT count(*) FROM "projects" WHERE slug = $1 AND id <> $2`,
			args:      []driver.Value{"oak-street-flip", "p1"},
			count:     0,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, mock := setupMockRepo(t)
			mock.ExpectQuery(regexp.QuoteMeta(tt.query)).
				WithArgs(tt.args...).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			got, err := r.SlugExists(context.Background(), "oak-street-flip", tt.excludeID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProjectRepo_List(t *testing.T) {
	r, mock := setupMockRepo(t)

	rows := sqlmock.NewRows(projectColumns()).
		AddRow("p2", "published", "b", "B", "", []byte("[]"), []byte("[]"), fixedNow, fixedNow).
		AddRow("p1", "published", "a", "A", "", []byte("[]"), []byte("[]"), fixedNow, fixedNow.Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "projects" WHERE status = $1 ORDER BY updated_at DESC`)).
		WithArgs("published").
		WillReturnRows(rows)

	got, err := r.List(context.Background(), model.StatusPublished)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p2", got[0].ID)
	assert.Equal(t, "p1", got[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepo_List_EmptyIsNotNil(t *testing.T) {
	r, mock := setupMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "projects" ORDER BY updated_at DESC`)).
		WillReturnRows(sqlmock.NewRows(projectColumns()))

	got, err := r.List(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepo_Create(t *testing.T) {
	r, mock := setupMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "projects"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	p := &model.Project{Status: model.StatusDraft, Slug: "oak-street-flip", Title: "Oak Street Flip"}
	require.NoError(t, r.Create(context.Background(), p))

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, fixedNow, p.CreatedAt)
	assert.Equal(t, fixedNow, p.UpdatedAt)
	assert.NotNil(t, p.BeforeImages)
	assert.NotNil(t, p.AfterImages)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepo_Create_DuplicateSlug(t *testing.T) {
	r, mock := setupMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "projects"`)).
		WillReturnError(uniqueViolation())

	err := r.Create(context.Background(), &model.Project{Status: model.StatusDraft, Slug: "dup", Title: "Dup"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepo_Update_SameStatusReplacesInPlace(t *testing.T) {
	r, mock := setupMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "projects" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	p := &model.Project{ID: "p1", Status: model.StatusDraft, Slug: "a", Title: "A", CreatedAt: fixedNow.Add(-time.Hour)}
	require.NoError(t, r.Update(context.Background(), p, model.StatusDraft))

	assert.Equal(t, fixedNow, p.UpdatedAt)
	assert.Equal(t, fixedNow.Add(-time.Hour), p.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepo_Update_SameStatusMissing(t *testing.T) {
	r, mock := setupMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "projects" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := r.Update(context.Background(), &model.Project{ID: "p1", Status: model.StatusDraft, Title: "A"}, model.StatusDraft)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepo_Update_SameStatusSlugTaken(t *testing.T) {
	r, mock := setupMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "projects" SET`)).
		WillReturnError(uniqueViolation())

	err := r.Update(context.Background(), &model.Project{ID: "p1", Status: model.StatusDraft, Slug: "taken", Title: "A"}, model.StatusDraft)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepo_Update_StatusChangeMovesRow(t *testing.T) {
	r, mock := setupMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "projects" WHERE`)).
		WithArgs("p1", "draft").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "projects"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	p := &model.Project{ID: "p1", Status: model.StatusPublished, Slug: "a", Title: "A"}
	require.NoError(t, r.Update(context.Background(), p, model.StatusDraft))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepo_Update_StatusChangeRollsBack(t *testing.T) {
	r, mock := setupMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "projects" WHERE`)).
		WithArgs("p1", "draft").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "projects"`)).
		WillReturnError(uniqueViolation())
	mock.ExpectRollback()

	p := &model.Project{ID: "p1", Status: model.StatusPublished, Slug: "a", Title: "A"}
	err := r.Update(context.Background(), p, model.StatusDraft)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepo_Delete(t *testing.T) {
	t.Run("resolves status then deletes", func(t *testing.T) {
		r, mock := setupMockRepo(t)

		rows := sqlmock.NewRows(projectColumns()).
			AddRow("p1", "published", "a", "A", "", []byte("[]"), []byte("[]"), fixedNow, fixedNow)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "projects" WHERE id = $1`)).WillReturnRows(rows)
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "projects" WHERE`)).
			WithArgs("p1", "published").
			WillReturnResult(sqlmock.NewResult(0, 1))

		got, err := r.Delete(context.Background(), "p1")
		require.NoError(t, err)
		assert.Equal(t, "published", got.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		r, mock := setupMockRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "projects" WHERE id = $1`)).
			WillReturnRows(sqlmock.NewRows(projectColumns()))

		_, err := r.Delete(context.Background(), "p1")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProjectRepo_Stats(t *testing.T) {
	r, mock := setupMockRepo(t)

	rows := sqlmock.NewRows([]string{"status", "count"}).
		AddRow("draft", int64(2)).
		AddRow("published", int64(3)).
		AddRow("archived", int64(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status, count(*) AS count FROM "projects" GROUP BY`)).
		WillReturnRows(rows)

	got, err := r.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &model.ProjectStats{Total: 6, Published: 3, Draft: 2}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
