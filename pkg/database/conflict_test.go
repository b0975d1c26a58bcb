package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestTranslateUniqueViolation(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		wantField  string
		wantMsg    string
	}{
		{"users email", "uq_users_email", "email", "Email already in use."},
		{"patients email", "uq_patients_email", "email", "Email already in use."},
		{"patients phone", "uq_patients_phone", "phone", "Phone number already in use."},
		{"doctors phone", "uq_doctors_phone", "phone", "Phone number already in use."},
		{"blogs slug", "uq_blogs_slug", "slug", "Slug already in use."},
		{"usage pair", "patient_service_usages_pkey", "serviceIds", "Duplicate service usage."},
		{"unknown constraint", "uq_some_future_table", "", "A record with this value already exists."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Translate(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: tt.constraint})

			var ce *ConflictError
			if !errors.As(err, &ce) {
				t.Fatalf("Translate() = %v, want ConflictError", err)
			}
			if ce.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ce.Field, tt.wantField)
			}
			if ce.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", ce.Message, tt.wantMsg)
			}
		})
	}
}

func TestTranslateForeignKeyViolation(t *testing.T) {
	err := Translate(&pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "fk_appointments_service"})

	var ie *IntegrityError
	if !errors.As(err, &ie) {
		t.Fatalf("Translate() = %v, want IntegrityError", err)
	}
	if ie.Field != "serviceId" {
		t.Errorf("Field = %q, want %q", ie.Field, "serviceId")
	}
	if ie.Constraint != "fk_appointments_service" {
		t.Errorf("Constraint = %q, want %q", ie.Constraint, "fk_appointments_service")
	}
}

func TestTranslateWrapped(t *testing.T) {
	inner := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "uq_users_email"}
	err := Translate(fmt.Errorf("create user: %w", inner))

	if !IsConflict(err) {
		t.Fatalf("Translate() = %v, want conflict", err)
	}
}

func TestTranslatePassthrough(t *testing.T) {
	plain := errors.New("connection reset")
	if got := Translate(plain); !errors.Is(got, plain) {
		t.Errorf("Translate() = %v, want original error", got)
	}
	if got := Translate(nil); got != nil {
		t.Errorf("Translate(nil) = %v, want nil", got)
	}

	other := &pgconn.PgError{Code: "42P01", Message: "relation does not exist"}
	if got := Translate(other); !errors.Is(got, other) {
		t.Errorf("Translate() = %v, want original pg error", got)
	}
}
