package domain

import "fmt"

// ParseError records a per-file extraction failure. Recoverable: the file is
// indexed as a degraded module and the scan continues.
type ParseError struct {
	File    string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %s", e.File, e.Message)
}

// DuplicateModuleError is fatal: two files resolve to the same canonical
// module path, so no consistent index can be built.
type DuplicateModuleError struct {
	Path  string
	FileA string
	FileB string
}

func (e *DuplicateModuleError) Error() string {
	return fmt.Sprintf("duplicate module %s: %s and %s", e.Path, e.FileA, e.FileB)
}

// PatternError records a rule whose selector or constraint pattern failed to
// compile. Recoverable: only that rule is skipped.
type PatternError struct {
	RuleID  string
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("rule %s: invalid pattern %q: %v", e.RuleID, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// UnknownBaselineError is returned when a check explicitly requires a
// baseline that cannot be read. Absent baselines in the default flow are not
// errors; they mean "no prior violations accepted".
type UnknownBaselineError struct {
	Path string
	Err  error
}

func (e *UnknownBaselineError) Error() string {
	return fmt.Sprintf("baseline %s: %v", e.Path, e.Err)
}

func (e *UnknownBaselineError) Unwrap() error { return e.Err }

// SnapshotIOError is fatal on read of a required persisted snapshot. Writes
// use write-to-temp-then-rename, so a failed write leaves the prior snapshot
// intact.
type SnapshotIOError struct {
	Path string
	Op   string
	Err  error
}

func (e *SnapshotIOError) Error() string {
	return fmt.Sprintf("snapshot %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *SnapshotIOError) Unwrap() error { return e.Err }

// Diagnostic is the JSON-renderable form of a recoverable error carried in a
// scan result.
type Diagnostic struct {
	Kind    string `json:"kind"`
	File    string `json:"file,omitempty"`
	RuleID  string `json:"rule_id,omitempty"`
	Message string `json:"message"`
}

// DiagnosticFor maps a collected error onto its result-contract form.
func DiagnosticFor(err error) Diagnostic {
	switch e := err.(type) {
	case *ParseError:
		return Diagnostic{Kind: "parse_error", File: e.File, Message: e.Message}
	case *PatternError:
		return Diagnostic{Kind: "pattern_error", RuleID: e.RuleID, Message: e.Error()}
	default:
		return Diagnostic{Kind: "error", Message: err.Error()}
	}
}
