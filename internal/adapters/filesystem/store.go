package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gitlabtree/internal/ports"
)

// SnapshotStore implements ports.SnapshotStore with a single JSON file
type SnapshotStore struct {
	path string
}

var _ ports.SnapshotStore = (*SnapshotStore)(nil)

// NewSnapshotStore creates a store backed by the file at path
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: ExpandHome(path)}
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// Location returns the file path
func (s *SnapshotStore) Location() string {
	return s.path
}

// Read returns the file contents. A missing file wraps fs.ErrNotExist.
func (s *SnapshotStore) Read() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return data, nil
}

// Write replaces the file atomically: the data lands in a temp file in the
// same directory which is then renamed over the target
func (s *SnapshotStore) Write(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// Clear deletes the file. Clearing a missing file is not an error.
func (s *SnapshotStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove snapshot: %w", err)
	}
	return nil
}
