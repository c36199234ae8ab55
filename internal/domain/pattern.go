package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Pattern matches dotted module paths. Within a segment, "*" matches any run
// of characters; ".." matches any number of intermediate segments, including
// none. "app.presentation.." selects app.presentation and everything below
// it; "app..db" selects app.db, app.infra.db, and so on.
type Pattern struct {
	raw string
	re  *regexp.Regexp
}

// CompilePattern translates a dotted glob into an anchored regexp.
func CompilePattern(raw string) (Pattern, error) {
	if raw == "" {
		return Pattern{}, fmt.Errorf("empty pattern")
	}
	if strings.Contains(raw, "...") {
		return Pattern{}, fmt.Errorf("malformed wildcard in %q", raw)
	}
	if raw == ".." {
		return Pattern{raw: raw, re: regexp.MustCompile(`^.+$`)}, nil
	}

	parts := strings.Split(raw, "..")
	pieces := make([]string, len(parts))
	for i, part := range parts {
		if part == "" {
			continue
		}
		if strings.HasPrefix(part, ".") || strings.HasSuffix(part, ".") {
			return Pattern{}, fmt.Errorf("malformed segment %q in %q", part, raw)
		}
		pieces[i] = segmentRegexp(part)
	}

	var b strings.Builder
	b.WriteString("^")
	for i, piece := range pieces {
		switch {
		case i == 0 && piece == "":
			// Leading "..": any ancestor prefix.
			b.WriteString(`(?:[^.]+\.)*`)
		case i == 0:
			b.WriteString(piece)
		case piece == "":
			// Trailing "..": the prefix itself or any descendant.
			b.WriteString(`(?:\.[^.]+)*`)
		case pieces[i-1] == "":
			// The leading gap already emitted the separating dot.
			b.WriteString(piece)
		default:
			b.WriteString(`\.(?:[^.]+\.)*`)
			b.WriteString(piece)
		}
	}
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return Pattern{}, fmt.Errorf("compiling %q: %w", raw, err)
	}
	return Pattern{raw: raw, re: re}, nil
}

func segmentRegexp(part string) string {
	segs := strings.Split(part, ".")
	out := make([]string, len(segs))
	for i, seg := range segs {
		toks := strings.Split(seg, "*")
		for j := range toks {
			toks[j] = regexp.QuoteMeta(toks[j])
		}
		out[i] = strings.Join(toks, `[^.]*`)
	}
	return strings.Join(out, `\.`)
}

// Matches reports whether the dotted path satisfies the pattern.
func (p Pattern) Matches(path string) bool {
	return p.re != nil && p.re.MatchString(path)
}

func (p Pattern) String() string { return p.raw }

// compileNameRegexp compiles the class-name constraint of a naming rule.
// An empty pattern means no name constraint.
func compileNameRegexp(raw string) (*regexp.Regexp, error) {
	if raw == "" {
		return nil, nil
	}
	return regexp.Compile(raw)
}

// matchAny reports whether any of the compiled patterns matches the path.
func matchAny(patterns []Pattern, path string) bool {
	for _, p := range patterns {
		if p.Matches(path) {
			return true
		}
	}
	return false
}
