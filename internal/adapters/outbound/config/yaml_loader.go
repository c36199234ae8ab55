package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/archlint/archlint/internal/domain"
)

const fileName = ".archlint.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .archlint.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .archlint.yaml from projectPath. Returns DefaultConfig if the
// file does not exist.
func (l *YAMLLoader) Load(projectPath string) (domain.Config, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}
	if cfg.SourceRoot == "" {
		cfg.SourceRoot = domain.DefaultConfig().SourceRoot
	}

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}
	return cfg, nil
}

var _ domain.ConfigLoader = (*YAMLLoader)(nil)
