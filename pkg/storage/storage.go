package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Backend stores uploaded files and serves them back by URL. Callers
// are expected to have validated size and content type before Store.
type Backend interface {
	// Store writes the object and returns its public URL.
	Store(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	// Delete removes a previously stored object by the URL Store returned.
	Delete(ctx context.Context, url string) error
}

// NewKey builds a unique object key under prefix, preserving the
// original file extension. Uploads never collide, so no locking is
// needed around writes.
func NewKey(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	name := uuid.New().String() + ext
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}
