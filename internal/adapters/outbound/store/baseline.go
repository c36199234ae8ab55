package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/archlint/archlint/internal/domain"
)

// BaselineStore is a file-based implementation of domain.BaselineStore.
type BaselineStore struct{}

func NewBaselineStore() *BaselineStore {
	return &BaselineStore{}
}

// Load reads the stored baseline. Returns (nil, nil) if none exists.
func (s *BaselineStore) Load(projectPath string) (*domain.Baseline, error) {
	path := baselinePath(projectPath)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no baseline is not an error
		}
		return nil, &domain.UnknownBaselineError{Path: path, Err: err}
	}

	var b domain.Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, &domain.UnknownBaselineError{Path: path, Err: err}
	}
	return &b, nil
}

// Save writes the baseline atomically.
func (s *BaselineStore) Save(projectPath string, b domain.Baseline) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(baselinePath(projectPath), data)
}

func baselinePath(projectPath string) string {
	return filepath.Join(projectPath, ".archlint", "baseline.json")
}

var _ domain.BaselineStore = (*BaselineStore)(nil)
