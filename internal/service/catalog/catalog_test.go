package catalog

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

func serviceColumns() []string {
	return []string{
		"id", "created_at", "updated_at", "name", "description",
		"short_description", "duration_minutes", "priority", "active",
		"images", "parent_id",
	}
}

func TestCreateDefaults(t *testing.T) {
	svc, mock := setupService(t)
	mock.MatchExpectationsInOrder(false)

	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectExec(`INSERT INTO "services"`).
		WithArgs(
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			"Physiotherapy", "", nil, nil, 100, true, "[]", nil,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(`SELECT \* FROM "services" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(serviceColumns()).
			AddRow(id.String(), now, now, "Physiotherapy", "", nil, nil, 100, true, "[]", nil))
	mock.ExpectQuery(`SELECT \* FROM "services" WHERE "services"\."parent_id" = \$1`).
		WillReturnRows(sqlmock.NewRows(serviceColumns()))

	got, err := svc.Create(context.Background(), CreateRequest{Name: "  Physiotherapy  "})
	require.NoError(t, err)

	assert.Equal(t, "Physiotherapy", got.Name)
	assert.Equal(t, 100, got.Priority)
	assert.True(t, got.Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateParentMustExist(t *testing.T) {
	svc, mock := setupService(t)

	mock.ExpectQuery(`SELECT "id","parent_id" FROM "services"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "parent_id"}))

	parentID := uuid.New()
	_, err := svc.Create(context.Background(), CreateRequest{
		Name:     "Sports Massage",
		ParentID: &parentID,
	})
	assert.ErrorIs(t, err, ErrParentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSelfParentRejected(t *testing.T) {
	svc, mock := setupService(t)

	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT \* FROM "services" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(serviceColumns()).
			AddRow(id.String(), now, now, "Physiotherapy", "", nil, nil, 100, true, "[]", nil))

	_, err := svc.Update(context.Background(), id, UpdateRequest{
		ParentIDSet: true,
		ParentID:    &id,
	})
	assert.ErrorIs(t, err, ErrSelfParent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateParentMustBeRoot(t *testing.T) {
	svc, mock := setupService(t)

	id := uuid.New()
	parentID := uuid.New()
	grandparentID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT \* FROM "services" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(serviceColumns()).
			AddRow(id.String(), now, now, "Physiotherapy", "", nil, nil, 100, true, "[]", nil))
	mock.ExpectQuery(`SELECT "id","parent_id" FROM "services"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "parent_id"}).
			AddRow(parentID.String(), grandparentID.String()))

	_, err := svc.Update(context.Background(), id, UpdateRequest{
		ParentIDSet: true,
		ParentID:    &parentID,
	})
	assert.ErrorIs(t, err, ErrParentNotRoot)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteDetachesChildren(t *testing.T) {
	svc, mock := setupService(t)

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "services" SET "parent_id"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "services"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.Delete(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteNotFound(t *testing.T) {
	svc, mock := setupService(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "services" SET "parent_id"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "services"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	assert.ErrorIs(t, svc.Delete(context.Background(), uuid.New()), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListFilters(t *testing.T) {
	svc, mock := setupService(t)

	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT \* FROM "services" WHERE active = \$1 AND parent_id IS NULL ORDER BY priority ASC, name ASC`).
		WillReturnRows(sqlmock.NewRows(serviceColumns()).
			AddRow(uuid.New().String(), now, now, "Physiotherapy", "", nil, nil, 10, true, "[]", nil).
			AddRow(uuid.New().String(), now, now, "Massage", "", nil, nil, 20, true, "[]", nil))

	got, err := svc.List(context.Background(), ListRequest{ActiveOnly: true, RootOnly: true})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "Physiotherapy", got[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
