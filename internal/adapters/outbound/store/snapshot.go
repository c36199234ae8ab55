package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/archlint/archlint/internal/domain"
)

// SnapshotStore is a file-based implementation of domain.SnapshotStore.
// Writes go to a temp file in the same directory and are renamed into
// place, so a crashed write never corrupts the previous snapshot.
type SnapshotStore struct{}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Load reads the stored snapshot. Returns (nil, nil) if none exists.
func (s *SnapshotStore) Load(projectPath string) (*domain.Snapshot, error) {
	path := snapshotPath(projectPath)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no snapshot is not an error
		}
		return nil, &domain.SnapshotIOError{Path: path, Op: "read", Err: err}
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, &domain.SnapshotIOError{Path: path, Op: "decode", Err: err}
	}
	return &snap, nil
}

// Save writes the snapshot, creating directories as needed.
func (s *SnapshotStore) Save(projectPath string, snap *domain.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(snapshotPath(projectPath), data)
}

// writeAtomic writes data next to the target and renames it into place.
func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &domain.SnapshotIOError{Path: path, Op: "mkdir", Err: err}
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return &domain.SnapshotIOError{Path: path, Op: "create", Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &domain.SnapshotIOError{Path: path, Op: "write", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &domain.SnapshotIOError{Path: path, Op: "close", Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &domain.SnapshotIOError{Path: path, Op: "rename", Err: err}
	}
	return nil
}

func snapshotPath(projectPath string) string {
	return filepath.Join(projectPath, ".archlint", "snapshot.json")
}

var _ domain.SnapshotStore = (*SnapshotStore)(nil)
