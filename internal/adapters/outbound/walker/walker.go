package walker

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/archlint/archlint/internal/domain"
)

var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".tox":         true,
	".venv":        true,
	"venv":         true,
	"node_modules": true,
	"__pycache__":  true,
	".archlint":    true,
}

// FileWalker implements domain.SourceWalker by walking the filesystem for
// Python sources.
type FileWalker struct{}

func New() *FileWalker {
	return &FileWalker{}
}

// Walk returns every .py file under root in sorted relative-path order.
// Exclude entries match a directory by name or by project-relative path.
func (w *FileWalker) Walk(root string, exclude []string) ([]domain.SourceFile, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	excluded := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		excluded[strings.Trim(filepath.ToSlash(e), "/")] = true
	}

	var files []domain.SourceFile
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(absRoot, path)
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if skipDirs[d.Name()] || excluded[d.Name()] || excluded[rel] {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".py") || excluded[rel] {
			return nil
		}
		files = append(files, domain.SourceFile{RelPath: rel, AbsPath: path})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

var _ domain.SourceWalker = (*FileWalker)(nil)
