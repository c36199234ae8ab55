package domain_test

import (
	"testing"

	"github.com/archlint/archlint/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainIndex builds a -> b -> c -> d (a imports b, and so on), so reverse
// reachability from d climbs back toward a.
func chainIndex(t *testing.T) *domain.ProjectIndex {
	t.Helper()
	mod := func(path string, imports ...string) *domain.ModuleDescriptor {
		d := &domain.ModuleDescriptor{Path: path, File: path + ".py", Checksum: path}
		for i, imp := range imports {
			d.Imports = append(d.Imports, domain.ImportRef{Target: imp, Kind: domain.ImportAbsolute, Line: i + 1})
		}
		return d
	}
	idx, err := domain.BuildIndex([]*domain.ModuleDescriptor{
		mod("a", "b"),
		mod("b", "c"),
		mod("c", "d"),
		mod("d"),
		mod("lone"),
	}, domain.LayerMapping{})
	require.NoError(t, err)
	return idx
}

func TestPropagate_Depths(t *testing.T) {
	idx := chainIndex(t)

	zero := domain.Propagate(idx, []string{"d"}, 0)
	assert.Equal(t, []string{"d"}, zero.Expanded)

	one := domain.Propagate(idx, []string{"d"}, 1)
	assert.Equal(t, []string{"c", "d"}, one.Expanded)

	full := domain.Propagate(idx, []string{"d"}, domain.UnboundedDepth)
	assert.Equal(t, []string{"a", "b", "c", "d"}, full.Expanded)
	assert.False(t, full.Contains("lone"))
}

func TestPropagate_TerminatesOnCycles(t *testing.T) {
	idx, err := domain.BuildIndex(cyclicDescriptors(), domain.LayerMapping{})
	require.NoError(t, err)

	set := domain.Propagate(idx, []string{"a"}, domain.UnboundedDepth)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, set.Expanded)
}

func TestPropagate_UnknownSeedIsIgnored(t *testing.T) {
	idx := chainIndex(t)
	set := domain.Propagate(idx, []string{"deleted.module"}, domain.UnboundedDepth)
	assert.Empty(t, set.Expanded)
}

func TestSelectRules_KeepsOverlappingSelectors(t *testing.T) {
	idx := fixtureIndex(t)
	impact := domain.Propagate(idx, []string{"app.infrastructure.db"}, domain.UnboundedDepth)

	touching := mustImportRule(t, "touching", domain.SeverityError, domain.ImportRule{
		Source: "app.presentation..", Mode: domain.ImportDeny, Forbidden: "app.infrastructure..",
	})
	disjoint := mustImportRule(t, "disjoint", domain.SeverityError, domain.ImportRule{
		Source: "app.application..", Mode: domain.ImportDeny, Forbidden: "app.infrastructure..",
	})

	selected := domain.SelectRules(idx, []domain.Rule{touching, disjoint}, impact)
	require.Len(t, selected, 1)
	assert.Equal(t, "touching", selected[0].ID)
}

// Restricting evaluation to the selected rules must reproduce the full run's
// verdict for every selected rule.
func TestSelectRules_SoundForSelectedRules(t *testing.T) {
	idx := fixtureIndex(t)
	rules := []domain.Rule{
		mustImportRule(t, "no-db-from-views", domain.SeverityError, domain.ImportRule{
			Source: "app.presentation..", Mode: domain.ImportDeny, Forbidden: "app.infrastructure..",
		}),
		mustNamingRule(t, "domain-naming", domain.SeverityError, domain.NamingRule{
			ResideIn: "app.domain..", NameMatch: "^[A-Z]",
		}),
		mustLayerRule(t, "sealed-infra", domain.SeverityError, domain.LayerRule{
			Layer: "infrastructure", Access: domain.LayerNoInbound,
		}),
	}

	impact := domain.Propagate(idx, []string{"app.presentation.view"}, domain.UnboundedDepth)
	selected := domain.SelectRules(idx, rules, impact)

	full := domain.Evaluate(idx, rules, domain.EvalOptions{})
	restricted := domain.Evaluate(idx, selected, domain.EvalOptions{})

	selectedIDs := make(map[string]bool, len(selected))
	for _, r := range selected {
		selectedIDs[r.ID] = true
	}
	var expected []domain.Violation
	for _, v := range full.Violations {
		if selectedIDs[v.RuleID] {
			expected = append(expected, v)
		}
	}
	assert.Equal(t, expected, restricted.Violations)
}

func TestSelectRules_KeepsBrokenPatternsForReporting(t *testing.T) {
	idx := fixtureIndex(t)
	impact := domain.Propagate(idx, []string{"app.domain.models"}, 0)

	bad := mustImportRule(t, "bad", domain.SeverityError, domain.ImportRule{
		Source: "app...x", Mode: domain.ImportDeny, Forbidden: "y",
	})
	selected := domain.SelectRules(idx, []domain.Rule{bad}, impact)
	require.Len(t, selected, 1)
}

func TestImpactSet_SubsetMap(t *testing.T) {
	set := domain.ImpactSet{Expanded: []string{"a", "b"}}
	m := set.SubsetMap()
	assert.True(t, m["a"])
	assert.True(t, m["b"])
	assert.False(t, m["c"])
}
