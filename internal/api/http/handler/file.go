package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Mahsabeigi33/AdminKingsCare/internal/service/file"
)

type FileHandler struct {
	svc file.Service
}

func NewFileHandler(svc file.Service) *FileHandler {
	return &FileHandler{svc: svc}
}

// POST /api/v1/files
func (h *FileHandler) Upload(c fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required")
	}

	f, err := fh.Open()
	if err != nil {
		return internalError(c, err)
	}
	defer f.Close()

	res, err := h.svc.Upload(c.Context(), file.UploadRequest{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		return mapFileError(c, err)
	}
	return created(c, res)
}

// DELETE /api/v1/files
func (h *FileHandler) Delete(c fiber.Ctx) error {
	url := c.Query("url")
	if url == "" {
		var body struct {
			URL string `json:"url"`
		}
		if err := c.Bind().JSON(&body); err == nil {
			url = body.URL
		}
	}

	if err := h.svc.Delete(c.Context(), url); err != nil {
		return mapFileError(c, err)
	}
	return deleted(c)
}

func mapFileError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, file.ErrTooLarge):
		return payloadTooLarge(c, err.Error())
	case errors.Is(err, file.ErrEmptyFile),
		errors.Is(err, file.ErrUnsupportedType),
		errors.Is(err, file.ErrInvalidURL):
		return badRequest(c, err.Error())
	default:
		// Backend writes are the only other failure mode here.
		return serviceUnavailable(c, "file storage unavailable")
	}
}
