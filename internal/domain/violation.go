package domain

// Violation is one rule finding. Produced fresh each evaluation, never
// mutated. Target is the offending module path, layer name, or qualified
// class name depending on the rule kind.
type Violation struct {
	RuleID   string   `json:"rule_id"`
	Severity Severity `json:"severity"`
	Module   string   `json:"module"`
	Target   string   `json:"target"`
	Line     int      `json:"line,omitempty"`
	Message  string   `json:"message"`
}
