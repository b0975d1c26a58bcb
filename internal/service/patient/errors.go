package patient

import "errors"

var (
	ErrNotFound       = errors.New("patient not found")
	ErrServiceUnknown = errors.New("one or more service ids do not exist")
)
