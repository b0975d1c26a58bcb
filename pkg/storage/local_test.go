package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStoreAndDelete(t *testing.T) {
	dir := t.TempDir()
	b, err := NewLocalBackend(dir, "/uploads/")
	if err != nil {
		t.Fatalf("NewLocalBackend() error = %v", err)
	}

	ctx := context.Background()
	url, err := b.Store(ctx, "images/photo.jpg", "image/jpeg", strings.NewReader("jpeg-bytes"), 10)
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if url != "/uploads/images/photo.jpg" {
		t.Errorf("Store() url = %q, want %q", url, "/uploads/images/photo.jpg")
	}

	data, err := os.ReadFile(filepath.Join(dir, "images", "photo.jpg"))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Errorf("stored content = %q, want %q", data, "jpeg-bytes")
	}

	if err := b.Delete(ctx, url); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "images", "photo.jpg")); !os.IsNotExist(err) {
		t.Errorf("file still exists after Delete()")
	}

	// Deleting again is a no-op, not an error.
	if err := b.Delete(ctx, url); err != nil {
		t.Errorf("second Delete() error = %v, want nil", err)
	}
}

func TestLocalDeleteForeignURL(t *testing.T) {
	b, err := NewLocalBackend(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("NewLocalBackend() error = %v", err)
	}

	if err := b.Delete(context.Background(), "https://elsewhere.example/file.png"); err == nil {
		t.Error("Delete() with foreign url should fail")
	}
}

func TestLocalRejectsPathEscape(t *testing.T) {
	b, err := NewLocalBackend(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("NewLocalBackend() error = %v", err)
	}

	if _, err := b.Store(context.Background(), "../outside.txt", "text/plain", strings.NewReader("x"), 1); err == nil {
		t.Error("Store() with escaping key should fail")
	}
	if err := b.Delete(context.Background(), "/uploads/../../etc/passwd"); err == nil {
		t.Error("Delete() with escaping key should fail")
	}
}

func TestNewKey(t *testing.T) {
	k1 := NewKey("images", "Photo.JPG")
	k2 := NewKey("images", "Photo.JPG")

	if k1 == k2 {
		t.Errorf("NewKey() produced identical keys %q", k1)
	}
	if !strings.HasPrefix(k1, "images/") {
		t.Errorf("NewKey() = %q, want images/ prefix", k1)
	}
	if !strings.HasSuffix(k1, ".jpg") {
		t.Errorf("NewKey() = %q, want lowercased .jpg suffix", k1)
	}

	if k := NewKey("", "doc.pdf"); strings.Contains(k, "/") {
		t.Errorf("NewKey() without prefix = %q, want bare name", k)
	}
	if k := NewKey("f", "noext"); strings.Contains(k, ".") {
		t.Errorf("NewKey() with extensionless name = %q, want no dot", k)
	}
}
