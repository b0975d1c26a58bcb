package auth

import "errors"

var (
	// ErrInvalidCredentials is returned for both unknown emails and
	// wrong passwords, so responses never reveal which one failed.
	ErrInvalidCredentials = errors.New("email or password is incorrect")

	// ErrUserNotFound is returned when a session references an account
	// that no longer exists.
	ErrUserNotFound = errors.New("user not found")
)
