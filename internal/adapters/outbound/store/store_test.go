package store_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archlint/archlint/internal/adapters/outbound/store"
	"github.com/archlint/archlint/internal/domain"
)

func sampleSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Version: domain.SnapshotVersion,
		Meta:    domain.NewSnapshotMeta("1.0.0", "abc", "main", time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)),
		Modules: []*domain.ModuleDescriptor{
			{Path: "app.main", File: "app/main.py", Checksum: "c1"},
		},
		Edges:         []domain.ImportEdge{{From: "app.main", To: "os", Kind: domain.ImportAbsolute, Line: 1, External: true}},
		Layers:        map[string]string{"app.main": "app"},
		IndexChecksum: "deadbeef",
	}
}

func TestSnapshotStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := store.NewSnapshotStore()

	require.NoError(t, s.Save(dir, sampleSnapshot()))

	loaded, err := s.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, sampleSnapshot(), loaded)
}

func TestSnapshotStore_SaveIsByteStable(t *testing.T) {
	dir := t.TempDir()
	s := store.NewSnapshotStore()

	require.NoError(t, s.Save(dir, sampleSnapshot()))
	first, err := os.ReadFile(filepath.Join(dir, ".archlint", "snapshot.json"))
	require.NoError(t, err)

	loaded, err := s.Load(dir)
	require.NoError(t, err)
	require.NoError(t, s.Save(dir, loaded))
	second, err := os.ReadFile(filepath.Join(dir, ".archlint", "snapshot.json"))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestSnapshotStore_MissingIsNil(t *testing.T) {
	loaded, err := store.NewSnapshotStore().Load(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSnapshotStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".archlint"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".archlint", "snapshot.json"), []byte("{not json"), 0644))

	_, err := store.NewSnapshotStore().Load(dir)
	var ioErr *domain.SnapshotIOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "decode", ioErr.Op)
}

func TestSnapshotStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, store.NewSnapshotStore().Save(dir, sampleSnapshot()))

	entries, err := os.ReadDir(filepath.Join(dir, ".archlint"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "snapshot.json", entries[0].Name())
}

func TestBaselineStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := store.NewBaselineStore()

	b := domain.NewBaseline("chk", []domain.Violation{
		{RuleID: "r", Module: "a", Target: "b", Severity: domain.SeverityError},
	}, time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))
	require.NoError(t, s.Save(dir, b))

	loaded, err := s.Load(dir)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, b, *loaded)
}

func TestBaselineStore_MissingIsNil(t *testing.T) {
	loaded, err := store.NewBaselineStore().Load(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestBaselineStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".archlint"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".archlint", "baseline.json"), []byte("{oops"), 0644))

	_, err := store.NewBaselineStore().Load(dir)
	var bErr *domain.UnknownBaselineError
	assert.ErrorAs(t, err, &bErr)
}
