package imagestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Store writes uploaded product images into a local directory and
// removes them when their product goes away.
type Store struct {
	dir string
}

// New creates a Store rooted at dir. The directory is created lazily
// on the first Save.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the root directory of the store.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the uploaded content under a time-qualified name derived
// from the original filename and returns the generated name. Any
// directory components in the original name are stripped.
func (s *Store) Save(originalName string, content io.Reader) (string, error) {
	name := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), filepath.Base(originalName))

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory %s: %w", s.dir, err)
	}

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create image file %s: %w", name, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, content); err != nil {
		return "", fmt.Errorf("failed to write image file %s: %w", name, err)
	}

	return name, nil
}

// Remove deletes a stored image by its generated name. A missing file
// is not an error.
func (s *Store) Remove(name string) error {
	path := filepath.Join(s.dir, filepath.Base(name))
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete image file %s: %w", name, err)
	}
	return nil
}
