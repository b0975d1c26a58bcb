package patient

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

func patientColumns() []string {
	return []string{
		"id", "created_at", "updated_at", "first_name", "last_name",
		"phone", "email", "date_of_birth", "notes",
	}
}

func usageColumns() []string {
	return []string{"patient_id", "service_id", "used_at"}
}

func strPtr(s string) *string { return &s }

func TestCreateWithServiceUsages(t *testing.T) {
	svc, mock := setupService(t)
	mock.MatchExpectationsInOrder(false)

	patientID := uuid.New()
	svc1 := uuid.New()
	svc2 := uuid.New()
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "services"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectExec(`INSERT INTO "patients"`).
		WithArgs(
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			"Jane", "Doe", nil, nil, nil, "",
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Duplicate ids in the request collapse to one row each.
	mock.ExpectExec(`INSERT INTO "patient_service_usages" .+ ON CONFLICT DO NOTHING`).
		WithArgs(
			sqlmock.AnyArg(), svc1, sqlmock.AnyArg(),
			sqlmock.AnyArg(), svc2, sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(patientColumns()).
			AddRow(patientID.String(), now, now, "Jane", "Doe", nil, nil, nil, ""))
	mock.ExpectQuery(`SELECT \* FROM "patient_service_usages"`).
		WillReturnRows(sqlmock.NewRows(usageColumns()).
			AddRow(patientID.String(), svc1.String(), now).
			AddRow(patientID.String(), svc2.String(), now))
	mock.ExpectQuery(`SELECT \* FROM "services"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(svc1.String(), "Physiotherapy").
			AddRow(svc2.String(), "Massage"))

	got, err := svc.Create(context.Background(), CreateRequest{
		FirstName:  " Jane ",
		LastName:   "Doe",
		ServiceIDs: []uuid.UUID{svc1, svc2, svc1},
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane", got.FirstName)
	assert.Len(t, got.ServiceUsages, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUnknownService(t *testing.T) {
	svc, mock := setupService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "services"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), CreateRequest{
		FirstName:  "Jane",
		LastName:   "Doe",
		ServiceIDs: []uuid.UUID{uuid.New(), uuid.New()},
	})
	assert.ErrorIs(t, err, ErrServiceUnknown)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateReconcilesUsages(t *testing.T) {
	svc, mock := setupService(t)
	mock.MatchExpectationsInOrder(false)

	patientID := uuid.New()
	svc1 := uuid.New()
	svc2 := uuid.New()
	svc3 := uuid.New()
	kept := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(patientColumns()).
			AddRow(patientID.String(), now, now, "Jane", "Doe", nil, nil, nil, ""))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "services"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectExec(`UPDATE "patients" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "patient_service_usages" WHERE patient_id = \$1`).
		WillReturnRows(sqlmock.NewRows(usageColumns()).
			AddRow(patientID.String(), svc1.String(), now).
			AddRow(patientID.String(), svc2.String(), kept))
	// svc1 dropped, svc3 added, svc2 untouched (its UsedAt survives).
	mock.ExpectExec(`DELETE FROM "patient_service_usages" WHERE patient_id = \$1 AND service_id IN \(\$2\)`).
		WithArgs(patientID, svc1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "patient_service_usages" .+ ON CONFLICT DO NOTHING`).
		WithArgs(patientID, svc3, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(patientColumns()).
			AddRow(patientID.String(), now, now, "Jane", "Doe", nil, nil, nil, ""))
	mock.ExpectQuery(`SELECT \* FROM "patient_service_usages"`).
		WillReturnRows(sqlmock.NewRows(usageColumns()).
			AddRow(patientID.String(), svc2.String(), kept).
			AddRow(patientID.String(), svc3.String(), now))
	mock.ExpectQuery(`SELECT \* FROM "services"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(svc2.String(), "Massage").
			AddRow(svc3.String(), "Acupuncture"))

	desired := []uuid.UUID{svc2, svc3}
	got, err := svc.Update(context.Background(), patientID, UpdateRequest{ServiceIDs: &desired})
	require.NoError(t, err)

	require.Len(t, got.ServiceUsages, 2)
	for _, u := range got.ServiceUsages {
		if u.ServiceID == svc2 {
			assert.True(t, u.UsedAt.Equal(kept), "retained usage must keep its original timestamp")
		}
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateClearsPhone(t *testing.T) {
	svc, mock := setupService(t)
	mock.MatchExpectationsInOrder(false)

	patientID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(patientColumns()).
			AddRow(patientID.String(), now, now, "Jane", "Doe", "+447911123456", nil, nil, ""))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "patients" SET`).
		WithArgs(
			sqlmock.AnyArg(), sqlmock.AnyArg(),
			"Jane", "Doe", nil, nil, nil, "", patientID,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(patientColumns()).
			AddRow(patientID.String(), now, now, "Jane", "Doe", nil, nil, nil, ""))
	mock.ExpectQuery(`SELECT \* FROM "patient_service_usages"`).
		WillReturnRows(sqlmock.NewRows(usageColumns()))

	got, err := svc.Update(context.Background(), patientID, UpdateRequest{Phone: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, got.Phone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNotFound(t *testing.T) {
	svc, mock := setupService(t)

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(patientColumns()))

	_, err := svc.Update(context.Background(), uuid.New(), UpdateRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRemovesDependents(t *testing.T) {
	svc, mock := setupService(t)

	patientID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "patient_service_usages"`).
		WithArgs(patientID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "patient_accounts"`).
		WithArgs(patientID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "patients"`).
		WithArgs(patientID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.Delete(context.Background(), patientID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteNotFound(t *testing.T) {
	svc, mock := setupService(t)

	patientID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "patient_service_usages"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "patient_accounts"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "patients"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	assert.ErrorIs(t, svc.Delete(context.Background(), patientID), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListSearch(t *testing.T) {
	svc, mock := setupService(t)

	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "patients" WHERE first_name ILIKE \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE first_name ILIKE \$1 .+ ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows(patientColumns()).
			AddRow(uuid.New().String(), now, now, "Jane", "Doe", nil, nil, nil, ""))

	got, err := svc.List(context.Background(), ListRequest{Search: "jane"})
	require.NoError(t, err)

	assert.Equal(t, 1, got.Total)
	assert.Equal(t, 1, got.TotalPages)
	require.Len(t, got.Data, 1)
	assert.Equal(t, "Jane", got.Data[0].FirstName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
