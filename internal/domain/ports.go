package domain

import "context"

// SourceFile is one discovered source file, addressed relative to the
// project root with forward slashes.
type SourceFile struct {
	RelPath string `json:"rel_path"`
	AbsPath string `json:"abs_path"`
}

// SourceWalker discovers the source files of a project tree.
type SourceWalker interface {
	Walk(root string, exclude []string) ([]SourceFile, error)
}

// ModuleExtractor parses one source file into its module descriptor.
// Unparseable files yield a degraded descriptor together with a *ParseError.
type ModuleExtractor interface {
	Extract(ctx context.Context, file SourceFile) (*ModuleDescriptor, error)
}

// ConfigLoader reads project configuration. A missing file returns defaults.
type ConfigLoader interface {
	Load(projectPath string) (Config, error)
}

// SnapshotStore persists project snapshots.
type SnapshotStore interface {
	Save(projectPath string, snap *Snapshot) error
	Load(projectPath string) (*Snapshot, error)
}

// BaselineStore persists the accepted-violation baseline.
type BaselineStore interface {
	Save(projectPath string, b Baseline) error
	Load(projectPath string) (*Baseline, error)
}

// ChangeProvider reports repository state for snapshot provenance and
// incremental runs.
type ChangeProvider interface {
	CommitHash(projectPath string) string
	Branch(projectPath string) string
	ChangedFiles(projectPath string) ([]string, error)
}
