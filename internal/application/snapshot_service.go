package application

import (
	"context"
	"fmt"
	"time"

	"github.com/archlint/archlint/internal/domain"
)

// SnapshotService persists project snapshots and diffs them structurally.
type SnapshotService struct {
	scans       *ScanService
	store       domain.SnapshotStore
	changes     domain.ChangeProvider
	toolVersion string
	now         func() time.Time
}

func NewSnapshotService(
	scans *ScanService,
	store domain.SnapshotStore,
	changes domain.ChangeProvider,
	toolVersion string,
) *SnapshotService {
	return &SnapshotService{
		scans:       scans,
		store:       store,
		changes:     changes,
		toolVersion: toolVersion,
		now:         time.Now,
	}
}

// Write scans the project and persists the resulting snapshot, stamped with
// git provenance when available.
func (s *SnapshotService) Write(ctx context.Context, projectPath string) (*domain.Snapshot, error) {
	out, err := s.scans.Scan(ctx, projectPath)
	if err != nil {
		return nil, err
	}

	meta := domain.NewSnapshotMeta(
		s.toolVersion,
		s.changes.CommitHash(projectPath),
		s.changes.Branch(projectPath),
		s.now(),
	)
	snap := out.Index.ToSnapshot(meta)
	if err := s.store.Save(projectPath, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// Diff compares the stored snapshot against the current tree.
func (s *SnapshotService) Diff(ctx context.Context, projectPath string) (domain.SnapshotDiff, error) {
	stored, err := s.store.Load(projectPath)
	if err != nil {
		return domain.SnapshotDiff{}, err
	}
	if stored == nil {
		return domain.SnapshotDiff{}, fmt.Errorf("no snapshot saved for %s; run `archlint snapshot` first", projectPath)
	}

	out, err := s.scans.Scan(ctx, projectPath)
	if err != nil {
		return domain.SnapshotDiff{}, err
	}
	current := out.Index.ToSnapshot(domain.SnapshotMeta{})
	return domain.CompareSnapshots(stored, current), nil
}

// ImpactFromWorktree runs an impact-restricted evaluation seeded by the
// files git reports as changed.
func (s *SnapshotService) ImpactFromWorktree(ctx context.Context, projectPath string, depth int) (*ScanOutput, error) {
	changed, err := s.changes.ChangedFiles(projectPath)
	if err != nil {
		return nil, err
	}
	return s.scans.Impact(ctx, projectPath, changed, depth)
}
