package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"path"
	"strings"
)

// ImportKind classifies how an import reference was written in source.
type ImportKind string

const (
	ImportAbsolute ImportKind = "absolute"
	ImportRelative ImportKind = "relative"
	ImportWildcard ImportKind = "wildcard"
)

// ImportRef is a single import reference as extracted from one file.
// Target is always a dotted module path; relative imports are resolved
// against the declaring module before the descriptor is built.
type ImportRef struct {
	Target string     `json:"target"`
	Kind   ImportKind `json:"kind"`
	Line   int        `json:"line"`
}

// ClassDescriptor records one class declaration.
type ClassDescriptor struct {
	Name       string   `json:"name"`
	Bases      []string `json:"bases,omitempty"`
	Decorators []string `json:"decorators,omitempty"`
	Line       int      `json:"line"`
}

// ModuleDescriptor is the extraction result for one source file.
// Immutable after creation; a rescan replaces it wholesale.
type ModuleDescriptor struct {
	Path     string            `json:"path"`
	File     string            `json:"file"`
	Checksum string            `json:"checksum"`
	Imports  []ImportRef       `json:"imports,omitempty"`
	Classes  []ClassDescriptor `json:"classes,omitempty"`
	Degraded bool              `json:"degraded,omitempty"`
}

// ContentChecksum returns the content-addressed digest used for module
// identity and change detection.
func ContentChecksum(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// ModulePathFor converts a project-relative file path into the canonical
// dotted module path. "app/service/api.py" becomes "app.service.api" and a
// package marker "app/service/__init__.py" becomes "app.service".
func ModulePathFor(relFile string) string {
	p := strings.TrimSuffix(path.Clean(strings.ReplaceAll(relFile, "\\", "/")), ".py")
	p = strings.TrimSuffix(p, "/__init__")
	if p == "__init__" || p == "." {
		return ""
	}
	return strings.ReplaceAll(strings.TrimPrefix(p, "./"), "/", ".")
}

// ResolveRelativeImport resolves a relative reference like "..models" or
// ".helpers" against the importing module's path. One leading dot refers to
// the importing module's package, each further dot climbs one package up.
// Returns "" when the reference climbs past the project root.
func ResolveRelativeImport(fromModule, ref string) string {
	dots := 0
	for dots < len(ref) && ref[dots] == '.' {
		dots++
	}
	rest := ref[dots:]

	parts := strings.Split(fromModule, ".")
	// Drop the module's own name, then one more segment per extra dot.
	up := dots // first dot = containing package
	if up > len(parts) {
		return ""
	}
	base := parts[:len(parts)-up]

	switch {
	case rest == "" && len(base) == 0:
		return ""
	case rest == "":
		return strings.Join(base, ".")
	case len(base) == 0:
		return rest
	default:
		return strings.Join(base, ".") + "." + rest
	}
}

// DegradedDescriptor builds the stub recorded for a file that failed to
// parse. The module keeps its identity and checksum but contributes no
// imports or classes.
func DegradedDescriptor(relFile string, content []byte) *ModuleDescriptor {
	return &ModuleDescriptor{
		Path:     ModulePathFor(relFile),
		File:     relFile,
		Checksum: ContentChecksum(content),
		Degraded: true,
	}
}
