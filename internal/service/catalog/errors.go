package catalog

import "errors"

var (
	ErrNotFound       = errors.New("service not found")
	ErrSelfParent     = errors.New("a service cannot be its own parent")
	ErrParentNotFound = errors.New("parent service does not exist")
	ErrParentNotRoot  = errors.New("parent service is itself a child")
	ErrHasChildren    = errors.New("a service with children cannot be nested")
)
