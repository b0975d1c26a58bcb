package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mahsabeigi33/AdminKingsCare/config"
	"github.com/Mahsabeigi33/AdminKingsCare/pkg/storage"
)

const baseURL = "http://localhost:8080/static"

func setupService(t *testing.T) (Service, string) {
	dir := t.TempDir()
	backend, err := storage.NewLocalBackend(dir, baseURL)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Uploads.MaxSizeBytes = 1024
	cfg.Uploads.AllowedTypes = []string{"image/png", "image/jpeg"}

	return New(backend, cfg), dir
}

func storedPath(dir, url string) string {
	key := strings.TrimPrefix(url, baseURL+"/")
	return filepath.Join(dir, filepath.FromSlash(key))
}

func TestUploadStoresAndReturnsURL(t *testing.T) {
	svc, dir := setupService(t)

	body := strings.NewReader("png-bytes")
	res, err := svc.Upload(context.Background(), UploadRequest{
		Filename:    "photo.PNG",
		ContentType: "image/png",
		Size:        int64(body.Len()),
		Body:        body,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.URL, baseURL+"/uploads/"))
	assert.True(t, strings.HasSuffix(res.URL, ".png"))

	data, err := os.ReadFile(storedPath(dir, res.URL))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestUploadRejectsOversizeBeforeWrite(t *testing.T) {
	svc, dir := setupService(t)

	body := strings.NewReader(strings.Repeat("x", 2048))
	_, err := svc.Upload(context.Background(), UploadRequest{
		Filename:    "big.png",
		ContentType: "image/png",
		Size:        2048,
		Body:        body,
	})
	assert.ErrorIs(t, err, ErrTooLarge)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUploadRejectsUnknownTypeBeforeWrite(t *testing.T) {
	svc, dir := setupService(t)

	_, err := svc.Upload(context.Background(), UploadRequest{
		Filename:    "script.sh",
		ContentType: "application/x-sh",
		Size:        10,
		Body:        strings.NewReader("echo hello"),
	})
	assert.ErrorIs(t, err, ErrUnsupportedType)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUploadNormalizesContentTypeParameters(t *testing.T) {
	svc, _ := setupService(t)

	body := strings.NewReader("jpeg-bytes")
	res, err := svc.Upload(context.Background(), UploadRequest{
		Filename:    "photo.jpg",
		ContentType: "IMAGE/JPEG; charset=binary",
		Size:        int64(body.Len()),
		Body:        body,
	})
	require.NoError(t, err)

	assert.Equal(t, "image/jpeg", res.ContentType)
}

func TestUploadEmptyFile(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Upload(context.Background(), UploadRequest{
		Filename:    "empty.png",
		ContentType: "image/png",
		Size:        0,
		Body:        strings.NewReader(""),
	})
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestDeleteRemovesStoredFile(t *testing.T) {
	svc, dir := setupService(t)

	body := strings.NewReader("to-remove")
	res, err := svc.Upload(context.Background(), UploadRequest{
		Filename:    "gone.png",
		ContentType: "image/png",
		Size:        int64(body.Len()),
		Body:        body,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), res.URL))

	_, err = os.Stat(storedPath(dir, res.URL))
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteBlankURL(t *testing.T) {
	svc, _ := setupService(t)

	assert.ErrorIs(t, svc.Delete(context.Background(), "  "), ErrInvalidURL)
}
