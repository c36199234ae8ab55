package domain

import "sort"

// UnboundedDepth expands the impact set to the full transitive reverse
// closure of the changed modules.
const UnboundedDepth = -1

// ImpactSet is the module subset requiring re-evaluation after a partial
// change. Computed per invocation; never persisted.
type ImpactSet struct {
	Changed  []string `json:"changed"`
	Expanded []string `json:"expanded"`
	Depth    int      `json:"depth"`
}

// Contains reports whether the module is in the expanded set.
func (s ImpactSet) Contains(module string) bool {
	for _, m := range s.Expanded {
		if m == module {
			return true
		}
	}
	return false
}

// SubsetMap returns the expanded set keyed for EvalOptions.Subset.
func (s ImpactSet) SubsetMap() map[string]bool {
	m := make(map[string]bool, len(s.Expanded))
	for _, mod := range s.Expanded {
		m[mod] = true
	}
	return m
}

// Propagate runs a breadth-first traversal over reverse import edges from
// the changed modules. Depth 0 keeps only the changed modules; depth N adds
// everything that imports them within N hops; UnboundedDepth closes the set.
//
// Changed modules absent from the index contribute no reverse edges: a
// module that was deleted no longer anchors its former importers, whose
// edges to it are now external. Callers handling deletions must seed with
// the surviving importers as well, or fall back to a full evaluation.
func Propagate(idx *ProjectIndex, changed []string, depth int) ImpactSet {
	g := NewGraph(idx)
	return ImpactSet{
		Changed:  dedupeSorted(changed),
		Expanded: g.reverseReachable(changed, depth),
		Depth:    depth,
	}
}

// SelectRules returns the rules whose verdict could change given the impact
// set: selector overlap for import and naming rules, an affected layer
// endpoint for layer rules. The selection is a conservative
// over-approximation; a rule whose pattern fails to compile is kept so the
// evaluation surfaces its PatternError. Excluded rules keep their previous
// snapshot's violations, which the caller merges from cached results.
func SelectRules(idx *ProjectIndex, rules []Rule, impact ImpactSet) []Rule {
	subset := impact.SubsetMap()

	impactedLayers := make(map[string]bool)
	for module := range subset {
		if layer, ok := idx.Layers[module]; ok {
			impactedLayers[layer] = true
		}
	}

	var selected []Rule
	for _, rule := range rules {
		if ruleTouchesSubset(idx, rule, subset, impactedLayers) {
			selected = append(selected, rule)
		}
	}
	return selected
}

func ruleTouchesSubset(idx *ProjectIndex, rule Rule, subset map[string]bool, layers map[string]bool) bool {
	switch rule.Kind {
	case RuleImport:
		p, err := CompilePattern(rule.Import.Source)
		if err != nil {
			return true
		}
		for module := range subset {
			if p.Matches(module) {
				return true
			}
		}
		return false

	case RuleNaming:
		r := rule.Naming
		var resideIn, notResideIn Pattern
		var err error
		if r.ResideIn != "" {
			if resideIn, err = CompilePattern(r.ResideIn); err != nil {
				return true
			}
		}
		if r.NotResideIn != "" {
			if notResideIn, err = CompilePattern(r.NotResideIn); err != nil {
				return true
			}
		}
		for module := range subset {
			if r.ResideIn != "" && !resideIn.Matches(module) {
				continue
			}
			if r.NotResideIn != "" && notResideIn.Matches(module) {
				continue
			}
			return true
		}
		return false

	case RuleLayer:
		// Any layer-assigned module in the impact set can be an endpoint of
		// a governed edge, so keep the rule whenever one exists. Over-broad
		// but never unsound.
		return len(layers) > 0
	}
	return true
}

func dedupeSorted(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
