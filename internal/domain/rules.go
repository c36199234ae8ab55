package domain

import (
	"fmt"
	"strings"
)

// Severity grades a rule's violations.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsBlocking reports whether violations at this severity should fail a check.
func (s Severity) IsBlocking() bool { return s == SeverityError }

// RuleKind tags the rule variant.
type RuleKind string

const (
	RuleImport RuleKind = "import"
	RuleNaming RuleKind = "naming"
	RuleLayer  RuleKind = "layer"
)

// ImportMode selects deny-listed or allow-listed import checking.
type ImportMode string

const (
	ImportDeny  ImportMode = "deny"
	ImportAllow ImportMode = "allow"
)

// LayerAccess selects the layer-rule access policy.
type LayerAccess string

const (
	LayerAllowOnly LayerAccess = "allow-only"
	LayerNoInbound LayerAccess = "deny-all-inbound"
)

// ImportRule restricts what the modules selected by Source may import.
type ImportRule struct {
	Source    string     `json:"source"`
	Mode      ImportMode `json:"mode"`
	Forbidden string     `json:"forbidden,omitempty"`
	Allowed   []string   `json:"allowed,omitempty"`
}

// NamingRule constrains classes declared in the selected modules.
type NamingRule struct {
	ResideIn           string   `json:"reside_in,omitempty"`
	NotResideIn        string   `json:"not_reside_in,omitempty"`
	NameMatch          string   `json:"name_match,omitempty"`
	RequiredDecorators []string `json:"required_decorators,omitempty"`
	RequiredResidency  string   `json:"required_residency,omitempty"`
}

// LayerRule governs edges between assigned layers.
type LayerRule struct {
	Layer         string      `json:"layer"`
	Access        LayerAccess `json:"access"`
	AllowedLayers []string    `json:"allowed_layers,omitempty"`
}

// Rule is the immutable tagged-union rule value the evaluator consumes.
// Exactly one of Import, Naming, Layer is set, per Kind.
type Rule struct {
	ID       string      `json:"id"`
	Kind     RuleKind    `json:"kind"`
	Severity Severity    `json:"severity"`
	Import   *ImportRule `json:"import,omitempty"`
	Naming   *NamingRule `json:"naming,omitempty"`
	Layer    *LayerRule  `json:"layer,omitempty"`
}

// NewImportRule assembles and validates an import rule.
func NewImportRule(id string, sev Severity, r ImportRule) (Rule, error) {
	if err := validateCommon(id, &sev); err != nil {
		return Rule{}, err
	}
	if r.Source == "" {
		return Rule{}, fmt.Errorf("rule %s: source selector is required", id)
	}
	switch r.Mode {
	case ImportDeny:
		if r.Forbidden == "" {
			return Rule{}, fmt.Errorf("rule %s: deny mode requires a forbidden pattern", id)
		}
	case ImportAllow:
		if len(r.Allowed) == 0 {
			return Rule{}, fmt.Errorf("rule %s: allow mode requires allowed patterns", id)
		}
	default:
		return Rule{}, fmt.Errorf("rule %s: unknown import mode %q", id, r.Mode)
	}
	return Rule{ID: id, Kind: RuleImport, Severity: sev, Import: &r}, nil
}

// NewNamingRule assembles and validates a naming rule.
func NewNamingRule(id string, sev Severity, r NamingRule) (Rule, error) {
	if err := validateCommon(id, &sev); err != nil {
		return Rule{}, err
	}
	if r.ResideIn != "" && r.NotResideIn != "" {
		return Rule{}, fmt.Errorf("rule %s: reside_in and not_reside_in are mutually exclusive", id)
	}
	if r.NameMatch == "" && len(r.RequiredDecorators) == 0 && r.RequiredResidency == "" {
		return Rule{}, fmt.Errorf("rule %s: naming rule has no constraint", id)
	}
	return Rule{ID: id, Kind: RuleNaming, Severity: sev, Naming: &r}, nil
}

// NewLayerRule assembles and validates a layer rule.
func NewLayerRule(id string, sev Severity, r LayerRule) (Rule, error) {
	if err := validateCommon(id, &sev); err != nil {
		return Rule{}, err
	}
	if r.Layer == "" {
		return Rule{}, fmt.Errorf("rule %s: layer name is required", id)
	}
	switch r.Access {
	case LayerAllowOnly:
		if len(r.AllowedLayers) == 0 {
			return Rule{}, fmt.Errorf("rule %s: allow-only requires allowed layers", id)
		}
	case LayerNoInbound:
	default:
		return Rule{}, fmt.Errorf("rule %s: unknown layer access %q", id, r.Access)
	}
	return Rule{ID: id, Kind: RuleLayer, Severity: sev, Layer: &r}, nil
}

func validateCommon(id string, sev *Severity) error {
	if id == "" {
		return fmt.Errorf("rule id is required")
	}
	switch *sev {
	case "":
		*sev = SeverityError
	case SeverityError, SeverityWarning, SeverityInfo:
	default:
		return fmt.Errorf("rule %s: unknown severity %q", id, *sev)
	}
	return nil
}

// Describe renders the rule as the sentence shown by `archlint explain`.
func (r Rule) Describe() string {
	switch r.Kind {
	case RuleImport:
		subject := fmt.Sprintf("modules that reside in `%s`", r.Import.Source)
		if r.Import.Mode == ImportDeny {
			return fmt.Sprintf("%s should not import from `%s`", subject, r.Import.Forbidden)
		}
		quoted := make([]string, len(r.Import.Allowed))
		for i, a := range r.Import.Allowed {
			quoted[i] = "`" + a + "`"
		}
		return fmt.Sprintf("%s should import only from %s", subject, strings.Join(quoted, ", "))
	case RuleNaming:
		subject := "classes"
		switch {
		case r.Naming.ResideIn != "":
			subject = fmt.Sprintf("classes that reside in `%s`", r.Naming.ResideIn)
		case r.Naming.NotResideIn != "":
			subject = fmt.Sprintf("classes that do not reside in `%s`", r.Naming.NotResideIn)
		}
		var preds []string
		if r.Naming.NameMatch != "" {
			preds = append(preds, fmt.Sprintf("should have names matching `%s`", r.Naming.NameMatch))
		}
		if len(r.Naming.RequiredDecorators) > 0 {
			preds = append(preds, fmt.Sprintf("should have decorators %s", strings.Join(r.Naming.RequiredDecorators, ", ")))
		}
		if r.Naming.RequiredResidency != "" {
			preds = append(preds, fmt.Sprintf("should reside in `%s`", r.Naming.RequiredResidency))
		}
		return subject + " " + strings.Join(preds, " and ")
	case RuleLayer:
		if r.Layer.Access == LayerNoInbound {
			return fmt.Sprintf("layer `%s` may not be accessed by any layer", r.Layer.Layer)
		}
		return fmt.Sprintf("layer `%s` may only access %s", r.Layer.Layer, strings.Join(r.Layer.AllowedLayers, ", "))
	}
	return r.ID
}
