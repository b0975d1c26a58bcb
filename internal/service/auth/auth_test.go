package auth

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Mahsabeigi33/AdminKingsCare/config"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/database"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/session"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/util/password"
)

func setupService(t *testing.T) (Service, sqlmock.Sqlmock, *session.Manager) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	sessions := session.NewManager(config.SessionConfig{Secret: "test-secret", TTLMinutes: 60}, rdb)

	return New(db, sessions, &config.Config{}), mock, sessions
}

func userColumns() []string {
	return []string{"id", "created_at", "updated_at", "email", "name", "role", "password_hash"}
}

func TestLoginIssuesVerifiableSession(t *testing.T) {
	svc, mock, sessions := setupService(t)

	ctx := context.Background()
	id := uuid.New()
	now := time.Now().UTC()

	hash, err := password.Hash("correct-horse-1")
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WithArgs("admin@clinic.example", 1).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(id.String(), now, now, "admin@clinic.example", nil, "ADMIN", hash))

	res, err := svc.Login(ctx, LoginRequest{
		Email:    "  Admin@Clinic.example ",
		Password: "correct-horse-1",
	})
	require.NoError(t, err)

	assert.Equal(t, id, res.User.ID)
	assert.Equal(t, "ADMIN", res.Claims.Role)

	claims, err := sessions.Verify(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginWrongPassword(t *testing.T) {
	svc, mock, _ := setupService(t)

	id := uuid.New()
	now := time.Now().UTC()

	hash, err := password.Hash("the-real-password")
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(id.String(), now, now, "admin@clinic.example", nil, "ADMIN", hash))

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "admin@clinic.example",
		Password: "a-guess",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, mock, _ := setupService(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns()))

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@clinic.example",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _, sessions := setupService(t)

	ctx := context.Background()
	token, claims, err := sessions.Start(ctx, uuid.New(), "STAFF")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims))

	_, err = sessions.Verify(ctx, token)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestRegisterPortalAccountCreatesPatientAndLogin(t *testing.T) {
	svc, mock, _ := setupService(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "patients"`).
		WithArgs(
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			"Amina", "Khan", "+447911123456", "amina@example.com", nil, "",
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "patient_accounts"`).
		WithArgs(
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), "amina@example.com", sqlmock.AnyArg(), nil,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	phone := "+447911123456"
	patient, err := svc.RegisterPortalAccount(context.Background(), RegisterPortalRequest{
		FirstName: " Amina ",
		LastName:  "Khan",
		Email:     "Amina@Example.com",
		Phone:     &phone,
		Password:  "portal-pass-123",
	})
	require.NoError(t, err)

	assert.Equal(t, "Amina", patient.FirstName)
	require.NotNil(t, patient.Email)
	assert.Equal(t, "amina@example.com", *patient.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterPortalDuplicateEmail(t *testing.T) {
	svc, mock, _ := setupService(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "patients"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "patient_accounts"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_patient_accounts_email"})
	mock.ExpectRollback()

	_, err := svc.RegisterPortalAccount(context.Background(), RegisterPortalRequest{
		FirstName: "Amina",
		LastName:  "Khan",
		Email:     "amina@example.com",
		Password:  "portal-pass-123",
	})
	require.Error(t, err)

	assert.True(t, database.IsConflict(err))
	assert.Equal(t, "Email already in use.", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}
