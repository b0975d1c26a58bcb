package settings

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Mahsabeigi33/AdminKingsCare/internal/model"
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

func settingsColumns() []string {
	return []string{
		"key", "clinic_name", "tagline", "phone", "email",
		"address", "opening_hours", "social_links", "hero_image", "updated_at",
	}
}

func TestGetReturnsEmptyDocumentWhenMissing(t *testing.T) {
	svc, mock := setupService(t)

	mock.ExpectQuery(`SELECT \* FROM "site_settings" WHERE key = \$1`).
		WillReturnRows(sqlmock.NewRows(settingsColumns()))

	got, err := svc.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.SiteSettingsKey, got.Key)
	assert.Empty(t, got.ClinicName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUpsertsSingletonRow(t *testing.T) {
	svc, mock := setupService(t)

	now := time.Now().UTC()
	tagline := "Care that comes to you"

	mock.ExpectExec(`INSERT INTO "site_settings" .+ ON CONFLICT \("key"\) DO UPDATE SET`).
		WithArgs(
			model.SiteSettingsKey, "Kings Care Clinic", &tagline, "+442071234567",
			"hello@kingscare.example", "1 High St", "Mon-Fri 9-17",
			`{"instagram":"https://instagram.com/kingscare"}`, nil, sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "site_settings" WHERE key = \$1`).
		WillReturnRows(sqlmock.NewRows(settingsColumns()).
			AddRow(model.SiteSettingsKey, "Kings Care Clinic", tagline, "+442071234567",
				"hello@kingscare.example", "1 High St", "Mon-Fri 9-17",
				`{"instagram":"https://instagram.com/kingscare"}`, nil, now))

	got, err := svc.Update(context.Background(), UpdateRequest{
		ClinicName:   "Kings Care Clinic",
		Tagline:      &tagline,
		Phone:        "+442071234567",
		Email:        "hello@kingscare.example",
		Address:      "1 High St",
		OpeningHours: "Mon-Fri 9-17",
		SocialLinks:  map[string]string{"instagram": "https://instagram.com/kingscare"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Kings Care Clinic", got.ClinicName)
	assert.JSONEq(t, `{"instagram":"https://instagram.com/kingscare"}`, string(got.SocialLinks))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNilLinksBecomeEmptyObject(t *testing.T) {
	svc, mock := setupService(t)

	now := time.Now().UTC()

	mock.ExpectExec(`INSERT INTO "site_settings" .+ ON CONFLICT \("key"\) DO UPDATE SET`).
		WithArgs(
			model.SiteSettingsKey, "Kings Care Clinic", nil, "", "", "", "",
			`{}`, nil, sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "site_settings" WHERE key = \$1`).
		WillReturnRows(sqlmock.NewRows(settingsColumns()).
			AddRow(model.SiteSettingsKey, "Kings Care Clinic", nil, "", "", "", "", `{}`, nil, now))

	got, err := svc.Update(context.Background(), UpdateRequest{ClinicName: "Kings Care Clinic"})
	require.NoError(t, err)

	assert.JSONEq(t, `{}`, string(got.SocialLinks))
	assert.NoError(t, mock.ExpectationsWereMet())
}
