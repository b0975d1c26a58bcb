package clinicpage

import "errors"

var (
	// ErrNotFound is returned when no specialty clinic matches the given id.
	ErrNotFound = errors.New("specialty clinic not found")
)
