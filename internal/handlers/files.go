// Photo upload and download endpoints backed by the local file store.
package handlers

import (
	"errors"
	"io"
	"os"

	"github.com/avissapr/facilitycheck/internal/middleware"
	"github.com/avissapr/facilitycheck/internal/security"
	"github.com/avissapr/facilitycheck/internal/storage"
	"github.com/gofiber/fiber/v2"
)

// FileHandler handles photo upload and retrieval HTTP requests.
type FileHandler struct {
	store          *storage.FileStore
	securityLogger *security.Logger
}

// NewFileHandler creates a new instance of FileHandler.
func NewFileHandler(store *storage.FileStore, securityLogger *security.Logger) *FileHandler {
	return &FileHandler{
		store:          store,
		securityLogger: securityLogger,
	}
}

// Upload accepts a multipart image under the "file" field.
//
// Returns:
//   - 201 {"url": "/api/files/<name>", "filename": <name>} on success
//   - 400 "File is empty" / "Only image files are allowed" / "File size
//     exceeds 5MB limit" for validation failures
//   - 500 "Failed to upload file" for storage faults
func (h *FileHandler) Upload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "File is empty")
	}

	file, err := header.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to upload file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to upload file")
	}

	name, err := h.store.Save(header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrEmptyFile),
			errors.Is(err, storage.ErrNotImage),
			errors.Is(err, storage.ErrTooLarge):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to upload file")
		}
	}

	h.securityLogger.SecurityEvent(security.EventFileUpload, middleware.ActorID(c), "", c.IP(), c.Get("User-Agent"), map[string]interface{}{
		"filename": name,
		"size":     len(data),
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"url":      "/api/files/" + name,
		"filename": name,
	})
}

// Download serves a stored photo with its sniffed content type.
//
// Returns: 200 with the file bytes, or 404 with an empty body for unknown or
// malformed names.
func (h *FileHandler) Download(c *fiber.Ctx) error {
	data, contentType, err := h.store.Read(c.Params("filename"))
	if err != nil {
		if errors.Is(err, storage.ErrBadName) || errors.Is(err, os.ErrNotExist) {
			return c.SendStatus(fiber.StatusNotFound)
		}
		return err
	}

	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(data)
}
