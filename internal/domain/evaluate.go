package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/camelcase"
	"golang.org/x/sync/errgroup"
)

// EvalOptions tunes one evaluation pass.
type EvalOptions struct {
	// Subset restricts selector sets to the given module paths. Nil means
	// the whole index. Callers using a subset must merge results with the
	// prior run's cached violations for unrestricted correctness.
	Subset map[string]bool
	// MatchExternalGlob controls whether external import targets are
	// matched by pattern (true) or by exact raw string (false).
	MatchExternalGlob bool
	// Parallel caps concurrent rule evaluations; <= 0 means sequential.
	Parallel int
}

// EvalResult is the evaluator's output: violations in stable order plus the
// per-rule pattern failures that were skipped, never silently dropped.
type EvalResult struct {
	Violations []Violation
	Errors     []*PatternError
}

// Evaluate applies the rules to the immutable index. Rules run independently
// against shared read-only state; a malformed pattern skips only its own
// rule. Output order is rule declaration order, then offending module path.
func Evaluate(idx *ProjectIndex, rules []Rule, opts EvalOptions) EvalResult {
	perRule := make([][]Violation, len(rules))
	perErr := make([]*PatternError, len(rules))

	run := func(i int) {
		vs, err := evaluateRule(idx, rules[i], opts)
		sortViolations(vs)
		perRule[i] = vs
		perErr[i] = err
	}

	if opts.Parallel > 1 {
		var g errgroup.Group
		g.SetLimit(opts.Parallel)
		for i := range rules {
			g.Go(func() error {
				run(i)
				return nil
			})
		}
		_ = g.Wait() // workers never return errors; failures land in perErr
	} else {
		for i := range rules {
			run(i)
		}
	}

	var res EvalResult
	for i := range rules {
		res.Violations = append(res.Violations, perRule[i]...)
		if perErr[i] != nil {
			res.Errors = append(res.Errors, perErr[i])
		}
	}
	return res
}

func evaluateRule(idx *ProjectIndex, rule Rule, opts EvalOptions) ([]Violation, *PatternError) {
	switch rule.Kind {
	case RuleImport:
		return evalImportRule(idx, rule, opts)
	case RuleNaming:
		return evalNamingRule(idx, rule, opts)
	case RuleLayer:
		return evalLayerRule(idx, rule, opts)
	}
	return nil, &PatternError{RuleID: rule.ID, Pattern: string(rule.Kind), Err: fmt.Errorf("unknown rule kind")}
}

func evalImportRule(idx *ProjectIndex, rule Rule, opts EvalOptions) ([]Violation, *PatternError) {
	r := rule.Import

	source, err := CompilePattern(r.Source)
	if err != nil {
		return nil, &PatternError{RuleID: rule.ID, Pattern: r.Source, Err: err}
	}
	var forbidden Pattern
	if r.Mode == ImportDeny {
		if forbidden, err = CompilePattern(r.Forbidden); err != nil {
			return nil, &PatternError{RuleID: rule.ID, Pattern: r.Forbidden, Err: err}
		}
	}
	allowed := make([]Pattern, len(r.Allowed))
	for i, a := range r.Allowed {
		if allowed[i], err = CompilePattern(a); err != nil {
			return nil, &PatternError{RuleID: rule.ID, Pattern: a, Err: err}
		}
	}

	var out []Violation
	for _, path := range idx.SortedPaths() {
		if !source.Matches(path) || skipped(opts.Subset, path) {
			continue
		}
		for _, edge := range idx.OutEdges(path) {
			target := edge.To
			switch r.Mode {
			case ImportDeny:
				if !targetMatches(forbidden, r.Forbidden, edge, opts) {
					continue
				}
				out = append(out, Violation{
					RuleID:   rule.ID,
					Severity: rule.Severity,
					Module:   path,
					Target:   target,
					Line:     edge.Line,
					Message:  fmt.Sprintf("%s imports forbidden %s", path, target),
				})
			case ImportAllow:
				if anyTargetMatches(allowed, r.Allowed, edge, opts) {
					continue
				}
				out = append(out, Violation{
					RuleID:   rule.ID,
					Severity: rule.Severity,
					Module:   path,
					Target:   target,
					Line:     edge.Line,
					Message:  fmt.Sprintf("%s imports %s, which no allowed pattern covers", path, target),
				})
			}
		}
	}
	return out, nil
}

// targetMatches applies the configured external-matching policy: internal
// edges always match by pattern; external edges match by pattern or by the
// exact recorded raw string.
func targetMatches(p Pattern, raw string, edge ImportEdge, opts EvalOptions) bool {
	if edge.External && !opts.MatchExternalGlob {
		return edge.To == raw
	}
	return p.Matches(edge.To)
}

func anyTargetMatches(ps []Pattern, raws []string, edge ImportEdge, opts EvalOptions) bool {
	for i, p := range ps {
		if targetMatches(p, raws[i], edge, opts) {
			return true
		}
	}
	return false
}

func evalNamingRule(idx *ProjectIndex, rule Rule, opts EvalOptions) ([]Violation, *PatternError) {
	r := rule.Naming

	compile := func(raw string) (Pattern, *PatternError) {
		p, err := CompilePattern(raw)
		if err != nil {
			return Pattern{}, &PatternError{RuleID: rule.ID, Pattern: raw, Err: err}
		}
		return p, nil
	}

	var (
		resideIn, notResideIn, residency Pattern
		perr                             *PatternError
	)
	if r.ResideIn != "" {
		if resideIn, perr = compile(r.ResideIn); perr != nil {
			return nil, perr
		}
	}
	if r.NotResideIn != "" {
		if notResideIn, perr = compile(r.NotResideIn); perr != nil {
			return nil, perr
		}
	}
	if r.RequiredResidency != "" {
		if residency, perr = compile(r.RequiredResidency); perr != nil {
			return nil, perr
		}
	}
	nameRe, err := compileNameRegexp(r.NameMatch)
	if err != nil {
		return nil, &PatternError{RuleID: rule.ID, Pattern: r.NameMatch, Err: err}
	}

	var out []Violation
	for _, path := range idx.SortedPaths() {
		if skipped(opts.Subset, path) {
			continue
		}
		if r.ResideIn != "" && !resideIn.Matches(path) {
			continue
		}
		if r.NotResideIn != "" && notResideIn.Matches(path) {
			continue
		}
		for _, cls := range idx.Modules[path].Classes {
			qualName := path + "." + cls.Name

			if nameRe != nil && !nameRe.MatchString(cls.Name) {
				out = append(out, Violation{
					RuleID:   rule.ID,
					Severity: rule.Severity,
					Module:   path,
					Target:   qualName,
					Line:     cls.Line,
					Message:  nameMessage(cls.Name, r.NameMatch),
				})
			}
			for _, dec := range r.RequiredDecorators {
				if !hasDecorator(cls, dec) {
					out = append(out, Violation{
						RuleID:   rule.ID,
						Severity: rule.Severity,
						Module:   path,
						Target:   qualName,
						Line:     cls.Line,
						Message:  fmt.Sprintf("class %s is missing required decorator @%s", cls.Name, dec),
					})
				}
			}
			if r.RequiredResidency != "" && !residency.Matches(path) {
				out = append(out, Violation{
					RuleID:   rule.ID,
					Severity: rule.Severity,
					Module:   path,
					Target:   qualName,
					Line:     cls.Line,
					Message:  fmt.Sprintf("class %s resides in %s, expected `%s`", cls.Name, path, r.RequiredResidency),
				})
			}
		}
	}
	return dedupeViolations(out), nil
}

// nameMessage explains a failed name constraint, splitting the identifier so
// the suggestion reads naturally in reports.
func nameMessage(name, pattern string) string {
	words := camelcase.Split(name)
	if len(words) > 1 {
		return fmt.Sprintf("class %s (%s) does not match %q", name, strings.Join(words, " "), pattern)
	}
	return fmt.Sprintf("class %s does not match %q", name, pattern)
}

func hasDecorator(cls ClassDescriptor, dec string) bool {
	for _, d := range cls.Decorators {
		if d == dec {
			return true
		}
	}
	return false
}

func evalLayerRule(idx *ProjectIndex, rule Rule, opts EvalOptions) ([]Violation, *PatternError) {
	r := rule.Layer

	allowed := make(map[string]bool, len(r.AllowedLayers))
	for _, l := range r.AllowedLayers {
		allowed[l] = true
	}

	var out []Violation
	for _, edge := range idx.Edges {
		if edge.External {
			continue
		}
		srcLayer, srcOK := idx.Layers[edge.From]
		dstLayer, dstOK := idx.Layers[edge.To]
		if !srcOK || !dstOK || srcLayer == dstLayer {
			// Unassigned modules are outside layer governance.
			continue
		}
		if skipped(opts.Subset, edge.From) {
			continue
		}

		switch r.Access {
		case LayerAllowOnly:
			if srcLayer != r.Layer || allowed[dstLayer] {
				continue
			}
			out = append(out, Violation{
				RuleID:   rule.ID,
				Severity: rule.Severity,
				Module:   edge.From,
				Target:   edge.To,
				Line:     edge.Line,
				Message: fmt.Sprintf("layer %s may not access layer %s (%s imports %s)",
					srcLayer, dstLayer, edge.From, edge.To),
			})
		case LayerNoInbound:
			if dstLayer != r.Layer {
				continue
			}
			out = append(out, Violation{
				RuleID:   rule.ID,
				Severity: rule.Severity,
				Module:   edge.From,
				Target:   edge.To,
				Line:     edge.Line,
				Message: fmt.Sprintf("layer %s may not be accessed by any layer (%s imports %s)",
					r.Layer, edge.From, edge.To),
			})
		}
	}
	return out, nil
}

func skipped(subset map[string]bool, path string) bool {
	return subset != nil && !subset[path]
}

func sortViolations(vs []Violation) {
	sort.Slice(vs, func(i, j int) bool {
		if vs[i].Module != vs[j].Module {
			return vs[i].Module < vs[j].Module
		}
		if vs[i].Target != vs[j].Target {
			return vs[i].Target < vs[j].Target
		}
		if vs[i].Line != vs[j].Line {
			return vs[i].Line < vs[j].Line
		}
		return vs[i].Message < vs[j].Message
	})
}

// dedupeViolations drops exact repeats so one class fails each condition at
// most once even when a module is reachable through overlapping selectors.
func dedupeViolations(vs []Violation) []Violation {
	seen := make(map[string]bool, len(vs))
	out := vs[:0]
	for _, v := range vs {
		key := v.RuleID + "\x00" + v.Target + "\x00" + v.Message
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}
