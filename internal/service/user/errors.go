package user

import "errors"

var (
	// ErrNotFound is returned when no user matches the given id.
	ErrNotFound = errors.New("user not found")

	// ErrInvalidRole is returned for roles other than ADMIN or STAFF.
	ErrInvalidRole = errors.New("role must be ADMIN or STAFF")

	// ErrLastAdmin is returned when demoting or deleting the only
	// remaining ADMIN account.
	ErrLastAdmin = errors.New("cannot remove the last admin account")
)
