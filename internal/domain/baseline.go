package domain

import (
	"sort"
	"time"
)

// BaselineAnyChecksum marks a baseline valid against any project state.
const BaselineAnyChecksum = "any"

// Baseline is the persisted set of accepted violation signatures, grouped by
// rule id. Created only by an explicit save from a full (never
// impact-restricted) evaluation; consumed read-only afterwards.
type Baseline struct {
	ProjectChecksum string                 `json:"project_checksum"`
	Accepted        map[string][]Signature `json:"accepted"`
	CreatedAt       time.Time              `json:"created_at"`
}

// NewBaseline accepts the given violations as the new baseline.
func NewBaseline(projectChecksum string, violations []Violation, now time.Time) Baseline {
	accepted := make(map[string][]Signature)
	seen := make(map[Signature]bool)
	for _, v := range violations {
		sig := SignatureFor(v)
		if seen[sig] {
			continue
		}
		seen[sig] = true
		accepted[v.RuleID] = append(accepted[v.RuleID], sig)
	}
	for id := range accepted {
		sort.Slice(accepted[id], func(i, j int) bool { return accepted[id][i] < accepted[id][j] })
	}
	return Baseline{
		ProjectChecksum: projectChecksum,
		Accepted:        accepted,
		CreatedAt:       now.UTC(),
	}
}

// MatchesChecksum reports whether the baseline applies to the given index
// checksum.
func (b Baseline) MatchesChecksum(checksum string) bool {
	return b.ProjectChecksum == BaselineAnyChecksum || b.ProjectChecksum == checksum
}

// ResolvedFinding identifies a baseline entry with no matching current
// violation. Informational only under the default policy.
type ResolvedFinding struct {
	RuleID    string    `json:"rule_id"`
	Signature Signature `json:"signature"`
}

// DiffResult partitions a current violation set against a baseline.
type DiffResult struct {
	New      []Violation       `json:"new"`
	Existing []Violation       `json:"existing"`
	Resolved []ResolvedFinding `json:"resolved"`
}

// Failed reports the default decision policy: a check fails iff any new
// violation carries a blocking severity. Resolved entries never fail a run.
func (d DiffResult) Failed() bool {
	return d.NewBlockingCount() > 0
}

// NewBlockingCount counts the new violations that carry a blocking severity.
func (d DiffResult) NewBlockingCount() int {
	n := 0
	for _, v := range d.New {
		if v.Severity.IsBlocking() {
			n++
		}
	}
	return n
}

// Diff classifies current violations as new or existing against the
// baseline, and reports baseline entries that no longer occur as resolved.
func Diff(current []Violation, baseline Baseline) DiffResult {
	acceptedByRule := make(map[string]map[Signature]bool, len(baseline.Accepted))
	for ruleID, sigs := range baseline.Accepted {
		set := make(map[Signature]bool, len(sigs))
		for _, s := range sigs {
			set[s] = true
		}
		acceptedByRule[ruleID] = set
	}

	var d DiffResult
	currentSigs := make(map[Signature]bool, len(current))
	for _, v := range current {
		sig := SignatureFor(v)
		currentSigs[sig] = true
		if acceptedByRule[v.RuleID][sig] {
			d.Existing = append(d.Existing, v)
		} else {
			d.New = append(d.New, v)
		}
	}

	ruleIDs := make([]string, 0, len(baseline.Accepted))
	for id := range baseline.Accepted {
		ruleIDs = append(ruleIDs, id)
	}
	sort.Strings(ruleIDs)
	for _, id := range ruleIDs {
		for _, sig := range baseline.Accepted[id] {
			if !currentSigs[sig] {
				d.Resolved = append(d.Resolved, ResolvedFinding{RuleID: id, Signature: sig})
			}
		}
	}
	return d
}
