package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalBackend writes uploads to a directory served as static files.
type LocalBackend struct {
	dir     string
	baseURL string
}

func NewLocalBackend(dir, baseURL string) (*LocalBackend, error) {
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create upload dir: %w", err)
	}
	return &LocalBackend{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir is the directory to mount as a static route.
func (b *LocalBackend) Dir() string { return b.dir }

func (b *LocalBackend) Store(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	full, err := b.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("storage: create dir for %q: %w", key, err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("storage: create %q: %w", key, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(full)
		return "", fmt.Errorf("storage: write %q: %w", key, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("storage: close %q: %w", key, err)
	}

	return b.baseURL + "/" + key, nil
}

func (b *LocalBackend) Delete(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, b.baseURL+"/")
	if !ok || key == "" {
		return fmt.Errorf("storage: url %q is not served from the local backend", url)
	}

	full, err := b.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: remove %q: %w", key, err)
	}
	return nil
}

// resolve joins key under the upload dir and rejects path escapes.
func (b *LocalBackend) resolve(key string) (string, error) {
	full := filepath.Join(b.dir, filepath.FromSlash(key))
	rel, err := filepath.Rel(b.dir, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("storage: invalid key %q", key)
	}
	return full, nil
}
