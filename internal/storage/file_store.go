// Package storage implements photo upload persistence on the local
// filesystem. Stored names are generated UUIDs so uploads can never collide
// or overwrite each other.
package storage

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Validation errors for uploads. Handlers surface the messages verbatim.
var (
	ErrEmptyFile = errors.New("File is empty")
	ErrNotImage  = errors.New("Only image files are allowed")
	ErrTooLarge  = errors.New("File size exceeds 5MB limit")

	// ErrBadName covers lookups whose name is not a plain filename:
	// anything with a path separator or traversal component.
	ErrBadName = errors.New("invalid filename")
)

// FileStore saves and serves uploaded inspection photos under one directory.
type FileStore struct {
	dir     string
	maxSize int64
}

// NewFileStore creates the upload directory if needed and returns a store.
//
// Parameters:
//   - dir: Directory for stored files, created with 0755 if absent
//   - maxSize: Upload size cap in bytes
//
// Returns:
//   - *FileStore: Ready store
//   - error: Filesystem error if the directory cannot be created
func NewFileStore(dir string, maxSize int64) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &FileStore{dir: dir, maxSize: maxSize}, nil
}

// Save validates and persists one upload.
//
// Validation order: emptiness, then content type, then size. The declared
// content type is trusted when present; otherwise it is sniffed from the
// first bytes. Only image/* passes.
//
// The stored name is a fresh UUID keeping the original extension, ".jpg"
// when the original had none.
//
// Returns:
//   - string: Stored filename for building the download URL
//   - error: ErrEmptyFile, ErrNotImage, ErrTooLarge, or a filesystem error
func (s *FileStore) Save(originalName, declaredType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}

	contentType := declaredType
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotImage
	}

	if int64(len(data)) > s.maxSize {
		return "", ErrTooLarge
	}

	ext := filepath.Ext(originalName)
	if ext == "" {
		ext = ".jpg"
	}
	name := uuid.New().String() + ext

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return name, nil
}

// Read returns a stored file's bytes and its sniffed content type.
//
// Names carrying path separators or traversal components are rejected before
// touching the filesystem.
//
// Returns:
//   - []byte: File contents
//   - string: Detected content type
//   - error: ErrBadName, os.ErrNotExist, or a filesystem error
func (s *FileStore) Read(name string) ([]byte, string, error) {
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		return nil, "", ErrBadName
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, "", err
	}
	return data, http.DetectContentType(data), nil
}
