package blog

import "errors"

var (
	ErrNotFound  = errors.New("blog post not found")
	ErrEmptySlug = errors.New("slug is empty after normalization")
)
