package appointment

import "errors"

var (
	ErrNotFound               = errors.New("appointment not found")
	ErrPatientIdentityMissing = errors.New("either patientId or patientName is required")
	ErrInvalidStatus          = errors.New("invalid appointment status")
	ErrServiceNotFound        = errors.New("service does not exist")
	ErrPatientNotFound        = errors.New("patient does not exist")
	ErrStaffNotFound          = errors.New("staff user does not exist")
)
