package file

import "errors"

var (
	// ErrEmptyFile is returned for uploads with no content.
	ErrEmptyFile = errors.New("uploaded file is empty")

	// ErrTooLarge is returned when the upload exceeds the configured
	// size limit.
	ErrTooLarge = errors.New("uploaded file exceeds the size limit")

	// ErrUnsupportedType is returned for content types outside the
	// configured whitelist.
	ErrUnsupportedType = errors.New("uploaded file type is not allowed")

	// ErrInvalidURL is returned when a delete request carries no url.
	ErrInvalidURL = errors.New("file url is required")
)
