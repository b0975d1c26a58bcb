package blog

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupService(t *testing.T) (Service, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	return New(db), mock
}

func blogColumns() []string {
	return []string{
		"id", "created_at", "updated_at", "title", "slug", "excerpt",
		"body", "cover_image", "published", "published_at",
	}
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Knee Pain: Causes & Treatment  ", "knee-pain-causes-treatment"},
		{"already-a-slug", "already-a-slug"},
		{"UPPER case 123", "upper-case-123"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCreateDerivesSlugFromTitle(t *testing.T) {
	svc, mock := setupService(t)

	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectExec(`INSERT INTO "blogs"`).
		WithArgs(
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			"Knee Pain Explained", "knee-pain-explained", nil, "", nil, false, nil,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "blogs" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(blogColumns()).
			AddRow(id.String(), now, now, "Knee Pain Explained", "knee-pain-explained", nil, "", nil, false, nil))

	got, err := svc.Create(context.Background(), CreateRequest{Title: "Knee Pain Explained"})
	require.NoError(t, err)

	assert.Equal(t, "knee-pain-explained", got.Slug)
	assert.False(t, got.Published)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEmptySlugRejected(t *testing.T) {
	svc, mock := setupService(t)

	_, err := svc.Create(context.Background(), CreateRequest{Title: "!!!"})
	assert.ErrorIs(t, err, ErrEmptySlug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePublishTogglesTimestamp(t *testing.T) {
	svc, mock := setupService(t)

	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT \* FROM "blogs" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(blogColumns()).
			AddRow(id.String(), now, now, "Post", "post", nil, "", nil, false, nil))
	mock.ExpectExec(`UPDATE "blogs" SET`).
		WithArgs(
			sqlmock.AnyArg(), sqlmock.AnyArg(),
			"Post", "post", nil, "", nil, true, sqlmock.AnyArg(), id,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "blogs" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(blogColumns()).
			AddRow(id.String(), now, now, "Post", "post", nil, "", nil, true, now))

	got, err := svc.Update(context.Background(), id, UpdateRequest{Published: boolPtr(true)})
	require.NoError(t, err)

	assert.True(t, got.Published)
	assert.NotNil(t, got.PublishedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSlugNormalized(t *testing.T) {
	svc, mock := setupService(t)

	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT \* FROM "blogs" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(blogColumns()).
			AddRow(id.String(), now, now, "Post", "post", nil, "", nil, false, nil))
	mock.ExpectExec(`UPDATE "blogs" SET`).
		WithArgs(
			sqlmock.AnyArg(), sqlmock.AnyArg(),
			"Post", "new-url-here", nil, "", nil, false, nil, id,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "blogs" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(blogColumns()).
			AddRow(id.String(), now, now, "Post", "new-url-here", nil, "", nil, false, nil))

	got, err := svc.Update(context.Background(), id, UpdateRequest{Slug: strPtr("  New URL here ")})
	require.NoError(t, err)

	assert.Equal(t, "new-url-here", got.Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteNotFound(t *testing.T) {
	svc, mock := setupService(t)

	mock.ExpectExec(`DELETE FROM "blogs"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, svc.Delete(context.Background(), uuid.New()), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
