package storage_test

import (
	"os"
	"strings"
	"testing"

	"github.com/avissapr/facilitycheck/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough of a real PNG for content-type sniffing to recognize it.
var pngHeader = []byte("\x89PNG\r\n\x1a\n" + strings.Repeat("\x00", 16))

// TestFileStore_Save verifies the upload validation order and the generated
// filename shape.
func TestFileStore_Save(t *testing.T) {
	tests := []struct {
		name          string
		originalName  string
		declaredType  string
		data          []byte
		expectedError error
		expectedExt   string
	}{
		{
			name:         "png upload keeps its extension",
			originalName: "photo.png",
			declaredType: "image/png",
			data:         pngHeader,
			expectedExt:  ".png",
		},
		{
			name:         "missing extension defaults to jpg",
			originalName: "photo",
			declaredType: "image/jpeg",
			data:         pngHeader,
			expectedExt:  ".jpg",
		},
		{
			name:         "missing declared type falls back to sniffing",
			originalName: "photo.png",
			declaredType: "",
			data:         pngHeader,
			expectedExt:  ".png",
		},
		{
			name:          "empty file",
			originalName:  "photo.png",
			declaredType:  "image/png",
			data:          nil,
			expectedError: storage.ErrEmptyFile,
		},
		{
			name:          "non-image content type",
			originalName:  "notes.txt",
			declaredType:  "text/plain",
			data:          []byte("not a picture"),
			expectedError: storage.ErrNotImage,
		},
		{
			name:          "oversized upload",
			originalName:  "big.png",
			declaredType:  "image/png",
			data:          make([]byte, 64+1),
			expectedError: storage.ErrTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := storage.NewFileStore(t.TempDir(), 64)
			require.NoError(t, err)

			name, err := store.Save(tt.originalName, tt.declaredType, tt.data)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, name)
				return
			}

			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(name, tt.expectedExt), "Stored name should keep extension %s, got %s", tt.expectedExt, name)
			assert.NotEqual(t, tt.originalName, name, "Stored name must be generated, not caller-controlled")

			// Round trip through Read.
			data, contentType, err := store.Read(name)
			require.NoError(t, err)
			assert.Equal(t, tt.data, data)
			assert.True(t, strings.HasPrefix(contentType, "image/"), "Detected type should be an image, got %s", contentType)
		})
	}
}

// TestFileStore_Read_RejectsTraversal verifies that lookup names cannot
// escape the upload directory.
func TestFileStore_Read_RejectsTraversal(t *testing.T) {
	store, err := storage.NewFileStore(t.TempDir(), 64)
	require.NoError(t, err)

	for _, name := range []string{"", "../secret", "a/../../secret", "sub/photo.png"} {
		_, _, err := store.Read(name)
		assert.ErrorIs(t, err, storage.ErrBadName, "name %q must be rejected", name)
	}
}

// TestFileStore_Read_Missing verifies the not-found path.
func TestFileStore_Read_Missing(t *testing.T) {
	store, err := storage.NewFileStore(t.TempDir(), 64)
	require.NoError(t, err)

	_, _, err = store.Read("nonexistent.png")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
