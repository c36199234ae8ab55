package domain

import "time"

// SnapshotVersion is the persisted snapshot schema version.
const SnapshotVersion = 1

// SnapshotMeta records when and from what the snapshot was produced.
type SnapshotMeta struct {
	CreatedAt   string `json:"created_at"`
	ToolVersion string `json:"tool_version,omitempty"`
	Commit      string `json:"commit,omitempty"`
	Branch      string `json:"branch,omitempty"`
}

// Snapshot is the persisted form of a ProjectIndex. Modules and edges are
// stored path-sorted and layers as a map (encoding/json emits map keys
// sorted), so serialize→deserialize→serialize is byte-identical.
type Snapshot struct {
	Version       int                 `json:"version"`
	Meta          SnapshotMeta        `json:"meta"`
	Modules       []*ModuleDescriptor `json:"modules"`
	Edges         []ImportEdge        `json:"edges"`
	Layers        map[string]string   `json:"layers"`
	IndexChecksum string              `json:"index_checksum"`
}

// ToSnapshot freezes the index into its persisted form.
func (idx *ProjectIndex) ToSnapshot(meta SnapshotMeta) *Snapshot {
	s := &Snapshot{
		Version:       SnapshotVersion,
		Meta:          meta,
		Edges:         idx.Edges,
		Layers:        make(map[string]string, len(idx.Layers)),
		IndexChecksum: idx.Checksum,
	}
	for _, path := range idx.SortedPaths() {
		s.Modules = append(s.Modules, idx.Modules[path])
	}
	for module, layer := range idx.Layers {
		s.Layers[module] = layer
	}
	return s
}

// ToIndex rehydrates the frozen index.
func (s *Snapshot) ToIndex() *ProjectIndex {
	idx := &ProjectIndex{
		Modules:  make(map[string]*ModuleDescriptor, len(s.Modules)),
		Edges:    s.Edges,
		Layers:   make(map[string]string, len(s.Layers)),
		Checksum: s.IndexChecksum,
	}
	for _, m := range s.Modules {
		idx.Modules[m.Path] = m
	}
	for module, layer := range s.Layers {
		idx.Layers[module] = layer
	}
	return idx
}

// NewSnapshotMeta stamps snapshot provenance.
func NewSnapshotMeta(toolVersion, commit, branch string, now time.Time) SnapshotMeta {
	return SnapshotMeta{
		CreatedAt:   now.UTC().Format(time.RFC3339),
		ToolVersion: toolVersion,
		Commit:      commit,
		Branch:      branch,
	}
}

// SnapshotDiff is the structural difference between two snapshots. Factual
// and rule-agnostic.
type SnapshotDiff struct {
	ModulesAdded   []string `json:"modules_added,omitempty"`
	ModulesRemoved []string `json:"modules_removed,omitempty"`
	EdgesAdded     int      `json:"edges_added"`
	EdgesRemoved   int      `json:"edges_removed"`
}

// IsEmpty reports whether the snapshots are structurally identical.
func (d SnapshotDiff) IsEmpty() bool {
	return len(d.ModulesAdded) == 0 && len(d.ModulesRemoved) == 0 &&
		d.EdgesAdded == 0 && d.EdgesRemoved == 0
}

// CompareSnapshots computes the structural diff from old to new.
func CompareSnapshots(oldSnap, newSnap *Snapshot) SnapshotDiff {
	var d SnapshotDiff

	oldModules := make(map[string]bool, len(oldSnap.Modules))
	for _, m := range oldSnap.Modules {
		oldModules[m.Path] = true
	}
	newModules := make(map[string]bool, len(newSnap.Modules))
	for _, m := range newSnap.Modules {
		newModules[m.Path] = true
		if !oldModules[m.Path] {
			d.ModulesAdded = append(d.ModulesAdded, m.Path)
		}
	}
	for _, m := range oldSnap.Modules {
		if !newModules[m.Path] {
			d.ModulesRemoved = append(d.ModulesRemoved, m.Path)
		}
	}

	edgeKey := func(e ImportEdge) string { return e.From + "\x00" + e.To + "\x00" + string(e.Kind) }
	oldEdges := make(map[string]bool, len(oldSnap.Edges))
	for _, e := range oldSnap.Edges {
		oldEdges[edgeKey(e)] = true
	}
	newEdges := make(map[string]bool, len(newSnap.Edges))
	for _, e := range newSnap.Edges {
		key := edgeKey(e)
		if !newEdges[key] {
			newEdges[key] = true
			if !oldEdges[key] {
				d.EdgesAdded++
			}
		}
	}
	for key := range oldEdges {
		if !newEdges[key] {
			d.EdgesRemoved++
		}
	}
	return d
}
