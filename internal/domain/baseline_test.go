package domain_test

import (
	"testing"
	"time"

	"github.com/archlint/archlint/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func TestNewBaseline_DedupesSignatures(t *testing.T) {
	v := domain.Violation{RuleID: "r", Module: "a", Target: "b", Line: 1}
	dup := v
	dup.Line = 99 // same signature

	b := domain.NewBaseline("chk", []domain.Violation{v, dup}, fixedNow)
	require.Len(t, b.Accepted["r"], 1)
	assert.Equal(t, "chk", b.ProjectChecksum)
}

func TestDiff_PartitionsAgainstBaseline(t *testing.T) {
	accepted := domain.Violation{RuleID: "r", Module: "a", Target: "b", Severity: domain.SeverityError}
	b := domain.NewBaseline("chk", []domain.Violation{accepted}, fixedNow)

	fresh := domain.Violation{RuleID: "r", Module: "a", Target: "c", Severity: domain.SeverityError}
	d := domain.Diff([]domain.Violation{accepted, fresh}, b)

	require.Len(t, d.Existing, 1)
	assert.Equal(t, "b", d.Existing[0].Target)
	require.Len(t, d.New, 1)
	assert.Equal(t, "c", d.New[0].Target)
	assert.Empty(t, d.Resolved)
	assert.True(t, d.Failed())
}

func TestDiff_ReportsResolved(t *testing.T) {
	gone := domain.Violation{RuleID: "r", Module: "a", Target: "b", Severity: domain.SeverityError}
	b := domain.NewBaseline("chk", []domain.Violation{gone}, fixedNow)

	d := domain.Diff(nil, b)
	assert.Empty(t, d.New)
	assert.Empty(t, d.Existing)
	require.Len(t, d.Resolved, 1)
	assert.Equal(t, "r", d.Resolved[0].RuleID)
	assert.Equal(t, domain.SignatureFor(gone), d.Resolved[0].Signature)
	assert.False(t, d.Failed(), "resolved entries never fail a run")
}

func TestDiff_LineShiftStaysExisting(t *testing.T) {
	v := domain.Violation{RuleID: "r", Module: "a", Target: "b", Line: 3, Severity: domain.SeverityError}
	b := domain.NewBaseline("chk", []domain.Violation{v}, fixedNow)

	moved := v
	moved.Line = 120
	d := domain.Diff([]domain.Violation{moved}, b)

	assert.Empty(t, d.New)
	assert.Len(t, d.Existing, 1)
	assert.False(t, d.Failed())
}

func TestDiff_NewWarningDoesNotFail(t *testing.T) {
	b := domain.NewBaseline("chk", nil, fixedNow)
	warn := domain.Violation{RuleID: "r", Module: "a", Target: "b", Severity: domain.SeverityWarning}

	d := domain.Diff([]domain.Violation{warn}, b)
	require.Len(t, d.New, 1)
	assert.False(t, d.Failed())
}

func TestDiff_NewBlockingCountIgnoresWarnings(t *testing.T) {
	b := domain.NewBaseline("chk", nil, fixedNow)
	blocking := domain.Violation{RuleID: "r1", Module: "a", Target: "b", Severity: domain.SeverityError}
	warn := domain.Violation{RuleID: "r2", Module: "a", Target: "b", Severity: domain.SeverityWarning}

	d := domain.Diff([]domain.Violation{blocking, warn}, b)
	require.Len(t, d.New, 2)
	assert.Equal(t, 1, d.NewBlockingCount())
	assert.True(t, d.Failed())
}

func TestDiff_SameRuleDifferentSubject(t *testing.T) {
	// A baseline entry for one subject never masks the same rule firing on
	// another subject.
	old := domain.Violation{RuleID: "r", Module: "a", Target: "b", Severity: domain.SeverityError}
	b := domain.NewBaseline("chk", []domain.Violation{old}, fixedNow)

	other := domain.Violation{RuleID: "r", Module: "x", Target: "y", Severity: domain.SeverityError}
	d := domain.Diff([]domain.Violation{other}, b)

	require.Len(t, d.New, 1)
	assert.True(t, d.Failed())
}

func TestBaselineMatchesChecksum(t *testing.T) {
	b := domain.NewBaseline("chk", nil, fixedNow)
	assert.True(t, b.MatchesChecksum("chk"))
	assert.False(t, b.MatchesChecksum("other"))

	anyB := domain.NewBaseline(domain.BaselineAnyChecksum, nil, fixedNow)
	assert.True(t, anyB.MatchesChecksum("whatever"))
}
