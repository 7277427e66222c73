// Upload endpoint tests covering the validation messages and the returned
// download URL.
package handlers_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/avissapr/facilitycheck/internal/handlers"
	"github.com/avissapr/facilitycheck/internal/security"
	"github.com/avissapr/facilitycheck/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFilesApp(t *testing.T, maxSize int64) *fiber.App {
	t.Helper()

	store, err := storage.NewFileStore(t.TempDir(), maxSize)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{
		// Same headroom as production: the store's check decides, not fiber's.
		BodyLimit: int(maxSize) + 1024*1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal server error"
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
				message = fe.Message
			}
			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})

	fileHandler := handlers.NewFileHandler(store, security.NewLogger())
	app.Post("/api/files/upload", fileHandler.Upload)
	app.Get("/api/files/:filename", fileHandler.Download)
	return app
}

// multipartUpload builds a request with one "file" part carrying the given
// content type and payload.
func multipartUpload(t *testing.T, filename, contentType string, data []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/files/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// TestUpload verifies the validation messages and the success payload.
func TestUpload(t *testing.T) {
	pngData := []byte("\x89PNG\r\n\x1a\n" + strings.Repeat("\x00", 16))

	tests := []struct {
		name            string
		filename        string
		contentType     string
		data            []byte
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:           "successful upload",
			filename:       "photo.png",
			contentType:    "image/png",
			data:           pngData,
			expectedStatus: fiber.StatusCreated,
		},
		{
			name:            "empty file",
			filename:        "photo.png",
			contentType:     "image/png",
			data:            nil,
			expectedStatus:  fiber.StatusBadRequest,
			expectedMessage: "File is empty",
		},
		{
			name:            "non-image file",
			filename:        "notes.txt",
			contentType:     "text/plain",
			data:            []byte("hello"),
			expectedStatus:  fiber.StatusBadRequest,
			expectedMessage: "Only image files are allowed",
		},
		{
			name:            "oversized file",
			filename:        "big.png",
			contentType:     "image/png",
			data:            make([]byte, 128),
			expectedStatus:  fiber.StatusBadRequest,
			expectedMessage: "File size exceeds 5MB limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newFilesApp(t, 64)

			resp, err := app.Test(multipartUpload(t, tt.filename, tt.contentType, tt.data))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			body := jsonBody(t, resp)

			if tt.expectedMessage != "" {
				assert.Equal(t, tt.expectedMessage, body["error"])
				return
			}

			filename, ok := body["filename"].(string)
			require.True(t, ok)
			assert.True(t, strings.HasSuffix(filename, ".png"), "Stored name keeps the extension")
			assert.Equal(t, "/api/files/"+filename, body["url"])

			// The returned URL must serve the bytes back.
			getResp, err := app.Test(httptest.NewRequest(http.MethodGet, body["url"].(string), nil))
			require.NoError(t, err)
			defer getResp.Body.Close()
			assert.Equal(t, fiber.StatusOK, getResp.StatusCode)
			served, err := io.ReadAll(getResp.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.data, served)
		})
	}
}

// TestUpload_LargeImageWithinCap verifies that an image between fiber's
// default 4MB body limit and the 5MB upload cap is accepted: the configured
// body limit must leave headroom so the store's size check decides.
func TestUpload_LargeImageWithinCap(t *testing.T) {
	app := newFilesApp(t, 5*1024*1024)

	data := make([]byte, 4*1024*1024+512*1024) // 4.5MB
	copy(data, "\xff\xd8\xff\xe0")             // JPEG magic for sniffing

	resp, err := app.Test(multipartUpload(t, "site.jpg", "image/jpeg", data), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := jsonBody(t, resp)
	assert.True(t, strings.HasSuffix(body["filename"].(string), ".jpg"))
}

// TestDownload_NotFoundAndTraversal verifies the 404 contract for unknown and
// malformed names.
func TestDownload_NotFoundAndTraversal(t *testing.T) {
	app := newFilesApp(t, 64)

	for _, path := range []string{"/api/files/nonexistent.png", "/api/files/..%2Fsecret"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, "path %s", path)
		resp.Body.Close()
	}
}
