package domain_test

import (
	"testing"

	"github.com/archlint/archlint/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureDescriptors models a small layered project: a view that reaches
// both through and around its application layer.
func fixtureDescriptors() []*domain.ModuleDescriptor {
	return []*domain.ModuleDescriptor{
		{
			Path: "app.presentation.view", File: "app/presentation/view.py", Checksum: "v1",
			Imports: []domain.ImportRef{
				{Target: "app.application.handlers", Kind: domain.ImportAbsolute, Line: 1},
				{Target: "app.infrastructure.db", Kind: domain.ImportAbsolute, Line: 3},
			},
		},
		{
			Path: "app.application.handlers", File: "app/application/handlers.py", Checksum: "h1",
			Imports: []domain.ImportRef{
				{Target: "app.domain.models", Kind: domain.ImportAbsolute, Line: 2},
			},
			Classes: []domain.ClassDescriptor{
				{Name: "OrderHandler", Decorators: []string{"dataclass"}, Line: 5},
			},
		},
		{
			Path: "app.domain.models", File: "app/domain/models.py", Checksum: "m1",
			Classes: []domain.ClassDescriptor{
				{Name: "Order", Line: 4},
				{Name: "order_record", Line: 9},
			},
		},
		{
			Path: "app.infrastructure.db", File: "app/infrastructure/db.py", Checksum: "d1",
			Imports: []domain.ImportRef{
				{Target: "sqlalchemy", Kind: domain.ImportAbsolute, Line: 1},
			},
		},
	}
}

func fixtureLayers() domain.LayerMapping {
	return domain.LayerMapping{Layers: []domain.LayerPattern{
		{Name: "presentation", Pattern: "app.presentation.."},
		{Name: "application", Pattern: "app.application.."},
		{Name: "domain", Pattern: "app.domain.."},
		{Name: "infrastructure", Pattern: "app.infrastructure.."},
	}}
}

func fixtureIndex(t *testing.T) *domain.ProjectIndex {
	t.Helper()
	idx, err := domain.BuildIndex(fixtureDescriptors(), fixtureLayers())
	require.NoError(t, err)
	return idx
}

func TestBuildIndex_Basics(t *testing.T) {
	idx := fixtureIndex(t)

	assert.Len(t, idx.Modules, 4)
	assert.Len(t, idx.Edges, 4)
	assert.Equal(t, "presentation", idx.Layers["app.presentation.view"])
	assert.Equal(t, "infrastructure", idx.Layers["app.infrastructure.db"])
	assert.NotEmpty(t, idx.Checksum)
}

func TestBuildIndex_ExternalEdges(t *testing.T) {
	idx := fixtureIndex(t)

	edges := idx.OutEdges("app.infrastructure.db")
	require.Len(t, edges, 1)
	assert.Equal(t, "sqlalchemy", edges[0].To)
	assert.True(t, edges[0].External)

	edges = idx.OutEdges("app.presentation.view")
	require.Len(t, edges, 2)
	assert.False(t, edges[0].External)
	assert.False(t, edges[1].External)
}

func TestBuildIndex_ChecksumIgnoresInputOrder(t *testing.T) {
	descriptors := fixtureDescriptors()
	idx1, err := domain.BuildIndex(descriptors, fixtureLayers())
	require.NoError(t, err)

	reversed := make([]*domain.ModuleDescriptor, len(descriptors))
	for i, d := range descriptors {
		reversed[len(descriptors)-1-i] = d
	}
	idx2, err := domain.BuildIndex(reversed, fixtureLayers())
	require.NoError(t, err)

	assert.Equal(t, idx1.Checksum, idx2.Checksum)
	assert.Equal(t, idx1.Edges, idx2.Edges)
}

func TestBuildIndex_ChecksumTracksContent(t *testing.T) {
	idx1 := fixtureIndex(t)

	descriptors := fixtureDescriptors()
	descriptors[2].Checksum = "m2" // models.py changed
	idx2, err := domain.BuildIndex(descriptors, fixtureLayers())
	require.NoError(t, err)

	assert.NotEqual(t, idx1.Checksum, idx2.Checksum)
}

func TestBuildIndex_DuplicateModulePath(t *testing.T) {
	descriptors := fixtureDescriptors()
	descriptors = append(descriptors, &domain.ModuleDescriptor{
		Path: "app.domain.models", File: "app/domain/models/__init__.py", Checksum: "m9",
	})

	_, err := domain.BuildIndex(descriptors, fixtureLayers())
	require.Error(t, err)

	var dup *domain.DuplicateModuleError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "app.domain.models", dup.Path)
}

func TestBuildIndex_FirstLayerPatternWins(t *testing.T) {
	mapping := domain.LayerMapping{Layers: []domain.LayerPattern{
		{Name: "everything", Pattern: "app.."},
		{Name: "domain", Pattern: "app.domain.."},
	}}
	idx, err := domain.BuildIndex(fixtureDescriptors(), mapping)
	require.NoError(t, err)

	assert.Equal(t, "everything", idx.Layers["app.domain.models"])
}

func TestModuleForFile(t *testing.T) {
	idx := fixtureIndex(t)

	assert.Equal(t, "app.domain.models", idx.ModuleForFile("app/domain/models.py"))
	assert.Equal(t, "", idx.ModuleForFile("app/unknown.py"))
}
