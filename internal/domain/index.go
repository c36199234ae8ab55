package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
)

// LayerPattern binds a layer name to a module glob. Declaration order is the
// precedence order: a module belongs to the first pattern it matches.
type LayerPattern struct {
	Name    string `json:"name"    yaml:"name"`
	Pattern string `json:"pattern" yaml:"pattern"`
}

// LayerMapping is the ordered layer declaration list.
type LayerMapping struct {
	Layers []LayerPattern
}

// ImportEdge is one directed import in the finished index. To holds the
// canonical target path when the target is inside the scanned tree,
// otherwise the raw reference string with External set.
type ImportEdge struct {
	From     string     `json:"from"`
	To       string     `json:"to"`
	Kind     ImportKind `json:"kind"`
	Line     int        `json:"line"`
	External bool       `json:"external,omitempty"`
}

// ProjectIndex is the frozen snapshot of one scan: every module descriptor,
// the resolved import graph, the layer assignment, and a checksum over the
// canonical serialization. Built once per invocation, never mutated.
type ProjectIndex struct {
	Modules  map[string]*ModuleDescriptor
	Edges    []ImportEdge
	Layers   map[string]string
	Checksum string
}

// BuildIndex aggregates extraction results into a ProjectIndex. Fails only
// on duplicate canonical module paths; everything else degrades gracefully.
func BuildIndex(descriptors []*ModuleDescriptor, mapping LayerMapping) (*ProjectIndex, error) {
	modules := make(map[string]*ModuleDescriptor, len(descriptors))
	for _, d := range descriptors {
		if prev, ok := modules[d.Path]; ok {
			return nil, &DuplicateModuleError{Path: d.Path, FileA: prev.File, FileB: d.File}
		}
		modules[d.Path] = d
	}

	layerPatterns := make([]Pattern, len(mapping.Layers))
	for i, lp := range mapping.Layers {
		p, err := CompilePattern(lp.Pattern)
		if err != nil {
			return nil, fmt.Errorf("layer %s: %w", lp.Name, err)
		}
		layerPatterns[i] = p
	}

	idx := &ProjectIndex{
		Modules: modules,
		Layers:  make(map[string]string),
	}

	for _, path := range idx.SortedPaths() {
		mod := modules[path]
		for _, ref := range mod.Imports {
			_, internal := modules[ref.Target]
			idx.Edges = append(idx.Edges, ImportEdge{
				From:     path,
				To:       ref.Target,
				Kind:     ref.Kind,
				Line:     ref.Line,
				External: !internal,
			})
		}
		for i, lp := range mapping.Layers {
			if layerPatterns[i].Matches(path) {
				idx.Layers[path] = lp.Name
				break
			}
		}
	}

	sortEdges(idx.Edges)
	idx.Checksum = idx.computeChecksum()
	return idx, nil
}

// SortedPaths returns the module paths in canonical order.
func (idx *ProjectIndex) SortedPaths() []string {
	paths := make([]string, 0, len(idx.Modules))
	for p := range idx.Modules {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// OutEdges returns the module's outbound edges in canonical order.
func (idx *ProjectIndex) OutEdges(module string) []ImportEdge {
	var out []ImportEdge
	for _, e := range idx.Edges {
		if e.From == module {
			out = append(out, e)
		}
	}
	return out
}

// ModuleForFile maps a project-relative file path back to its canonical
// module path, or "" when the file is not indexed.
func (idx *ProjectIndex) ModuleForFile(relFile string) string {
	for path, mod := range idx.Modules {
		if mod.File == relFile {
			return path
		}
	}
	return ""
}

func sortEdges(edges []ImportEdge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		if edges[i].Line != edges[j].Line {
			return edges[i].Line < edges[j].Line
		}
		return edges[i].To < edges[j].To
	})
}

// computeChecksum digests the path-sorted canonical serialization so the
// result is independent of enumeration and extraction-completion order.
func (idx *ProjectIndex) computeChecksum() string {
	type layerEntry struct {
		Module string `json:"module"`
		Layer  string `json:"layer"`
	}
	canon := struct {
		Modules []*ModuleDescriptor `json:"modules"`
		Edges   []ImportEdge        `json:"edges"`
		Layers  []layerEntry        `json:"layers"`
	}{}

	for _, p := range idx.SortedPaths() {
		canon.Modules = append(canon.Modules, idx.Modules[p])
		if layer, ok := idx.Layers[p]; ok {
			canon.Layers = append(canon.Layers, layerEntry{Module: p, Layer: layer})
		}
	}
	canon.Edges = idx.Edges

	data, err := json.Marshal(canon)
	if err != nil {
		// Only unmarshalable types reach here; the canon struct has none.
		panic(err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
