// Package upload stores document files on local disk. Files are written to
// a temp file first and renamed into place so a failed upload never leaves
// a partial file under a served name.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrFileTooLarge is returned when an upload exceeds the configured limit.
var ErrFileTooLarge = errors.New("file exceeds maximum allowed size")

// ErrExtensionNotAllowed is returned for file types outside the allowlist.
var ErrExtensionNotAllowed = errors.New("file extension not allowed")

// allowedExtensions is the set of document types the hub accepts.
var allowedExtensions = map[string]bool{
	".pdf": true, ".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".txt": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".csv": true, ".heic": true, ".webp": true,
}

// Saver writes uploaded files under Dir, using random stored names.
type Saver struct {
	Dir     string
	MaxSize int64 // bytes
}

// NewSaver creates a Saver rooted at dir and ensures the directory exists.
func NewSaver(dir string, maxSize int64) (*Saver, error) {
	if err := os.MkdirAll(filepath.Join(dir, "tmp"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Saver{Dir: dir, MaxSize: maxSize}, nil
}

// Save streams a multipart upload to disk and returns the stored name
// (uuid + original extension). The write goes to Dir/tmp first and is
// renamed into Dir only after it completes.
func (s *Saver) Save(fh *multipart.FileHeader) (string, error) {
	if s.MaxSize > 0 && fh.Size > s.MaxSize {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return "", ErrExtensionNotAllowed
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	storedName := uuid.New().String() + ext
	tmpPath := filepath.Join(s.Dir, "tmp", storedName)

	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to sync upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, filepath.Join(s.Dir, storedName)); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to move upload into place: %w", err)
	}
	return storedName, nil
}

// Path returns the on-disk path for a stored name.
func (s *Saver) Path(storedName string) string {
	return filepath.Join(s.Dir, filepath.Base(storedName))
}

// Remove deletes a stored file if it exists. A missing file is not an
// error: the goal state is "file gone" either way.
func (s *Saver) Remove(storedName string) error {
	err := os.Remove(s.Path(storedName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
