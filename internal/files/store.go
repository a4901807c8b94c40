// Package files manages task attachments: metadata rows in the database
// and the bytes on local disk.
package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pinboardhq/pinboard/internal/apperr"
)

// Store writes uploads to a directory with collision-free names.
type Store struct {
	Dir         string
	MaxSize     int64
	AllowedExts map[string]bool
}

// NewStore builds a Store from config values, creating the directory if
// needed.
func NewStore(dir string, maxSizeMB int, allowedExts []string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("files: create upload dir %s: %w", dir, err)
	}
	allowed := make(map[string]bool, len(allowedExts))
	for _, ext := range allowedExts {
		allowed[strings.ToLower(ext)] = true
	}
	return &Store{
		Dir:         dir,
		MaxSize:     int64(maxSizeMB) * 1024 * 1024,
		AllowedExts: allowed,
	}, nil
}

// Save streams an upload to disk under a uuid-suffixed name and returns
// the stored filename, its path, and the byte count.
func (s *Store) Save(originalName string, size int64, r io.Reader) (filename, path string, written int64, err error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !s.AllowedExts[ext] {
		return "", "", 0, fmt.Errorf("files: %w: file type %q is not allowed", apperr.ErrValidation, ext)
	}
	if size > s.MaxSize {
		return "", "", 0, fmt.Errorf("files: %w: file exceeds %d bytes", apperr.ErrValidation, s.MaxSize)
	}

	filename = fmt.Sprintf("file-%s%s", uuid.NewString(), ext)
	path = filepath.Join(s.Dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", "", 0, fmt.Errorf("files: create %s: %w", path, err)
	}
	defer f.Close()

	written, err = io.Copy(f, io.LimitReader(r, s.MaxSize+1))
	if err != nil {
		os.Remove(path)
		return "", "", 0, fmt.Errorf("files: write %s: %w", path, err)
	}
	if written > s.MaxSize {
		os.Remove(path)
		return "", "", 0, fmt.Errorf("files: %w: file exceeds %d bytes", apperr.ErrValidation, s.MaxSize)
	}
	return filename, path, written, nil
}

// Remove deletes a stored file from disk. A missing file is not an error:
// the metadata row is the source of truth.
func (s *Store) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("files: remove %s: %w", path, err)
	}
	return nil
}

// IsImage reports whether the name has an image extension, for profile
// picture validation.
func IsImage(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpeg", ".jpg", ".png", ".gif":
		return true
	}
	return false
}
