package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// ConflictError is a unique-constraint violation translated to the
// field it concerns.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// IntegrityError is a foreign-key violation: either a referenced row
// does not exist, or the row being deleted is still referenced.
type IntegrityError struct {
	Constraint string
	Field      string
	Message    string
}

func (e *IntegrityError) Error() string { return e.Message }

// conflictFields maps unique constraint names to user-facing field
// errors. Constraint names come from the uniqueIndex tags on the models.
var conflictFields = map[string]ConflictError{
	"uq_users_email":              {Field: "email", Message: "Email already in use."},
	"uq_patients_email":           {Field: "email", Message: "Email already in use."},
	"uq_patients_phone":           {Field: "phone", Message: "Phone number already in use."},
	"uq_doctors_email":            {Field: "email", Message: "Email already in use."},
	"uq_doctors_phone":            {Field: "phone", Message: "Phone number already in use."},
	"uq_blogs_slug":               {Field: "slug", Message: "Slug already in use."},
	"uq_patient_accounts_email":   {Field: "email", Message: "Email already in use."},
	"uq_patient_accounts_patient": {Field: "patientId", Message: "Patient already has an account."},
	"patient_service_usages_pkey": {Field: "serviceIds", Message: "Duplicate service usage."},
}

// integrityFields maps foreign-key constraint names to the request field
// they usually correspond to.
var integrityFields = map[string]string{
	"fk_appointments_service":           "serviceId",
	"fk_appointments_patient":           "patientId",
	"fk_appointments_staff":             "staffId",
	"fk_patient_service_usages_service": "serviceIds",
	"fk_patients_service_usages":        "patientId",
	"fk_patients_account":               "patientId",
	"fk_services_parent":                "parentId",
}

// Translate converts storage-level constraint violations into domain
// errors. Anything else comes back unchanged.
func Translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		if ce, ok := conflictFields[pgErr.ConstraintName]; ok {
			return &ce
		}
		return &ConflictError{Message: "A record with this value already exists."}
	case pgForeignKeyViolation:
		return &IntegrityError{
			Constraint: pgErr.ConstraintName,
			Field:      integrityFields[pgErr.ConstraintName],
			Message:    "Operation references a record that does not exist or is still in use.",
		}
	}

	return err
}

// IsConflict reports whether err is a translated unique violation.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsIntegrity reports whether err is a translated foreign-key violation.
func IsIntegrity(err error) bool {
	var ie *IntegrityError
	return errors.As(err, &ie)
}
