package domain

import "fmt"

// MatchExternal values for Options.MatchExternal.
const (
	MatchExternalExact = "exact"
	MatchExternalGlob  = "glob"
)

// Config holds project-level configuration loaded from .archlint.yaml.
type Config struct {
	SourceRoot string         `yaml:"source_root"      json:"source_root,omitempty"`
	Exclude    []string       `yaml:"exclude"          json:"exclude,omitempty"`
	Layers     []LayerPattern `yaml:"layers"           json:"layers,omitempty"`
	Rules      []RuleSpec     `yaml:"rules"            json:"rules,omitempty"`
	Options    Options        `yaml:"options"          json:"options,omitempty"`
}

// Options tunes evaluation behavior.
type Options struct {
	// MatchExternal controls how external import targets are matched by
	// import rules: "exact" (default) or "glob".
	MatchExternal string `yaml:"match_external"   json:"match_external,omitempty"`
	// ImpactDepth bounds impact propagation; -1 (default) is unbounded.
	ImpactDepth *int `yaml:"impact_depth"     json:"impact_depth,omitempty"`
	// Parallel caps concurrent rule evaluations; <= 1 runs sequentially.
	Parallel int `yaml:"parallel"         json:"parallel,omitempty"`
}

// RuleSpec is the declarative rule form as written in configuration. It
// compiles to a Rule through the kind-specific constructors.
type RuleSpec struct {
	ID       string   `yaml:"id"        json:"id"`
	Type     RuleKind `yaml:"type"      json:"type"`
	Severity Severity `yaml:"severity"  json:"severity,omitempty"`

	// import
	Source    string     `yaml:"source,omitempty"    json:"source,omitempty"`
	Mode      ImportMode `yaml:"mode,omitempty"      json:"mode,omitempty"`
	Forbidden string     `yaml:"forbidden,omitempty" json:"forbidden,omitempty"`
	Allowed   []string   `yaml:"allowed,omitempty"   json:"allowed,omitempty"`

	// naming
	ResideIn           string   `yaml:"reside_in,omitempty"           json:"reside_in,omitempty"`
	NotResideIn        string   `yaml:"not_reside_in,omitempty"       json:"not_reside_in,omitempty"`
	NameMatch          string   `yaml:"name_match,omitempty"          json:"name_match,omitempty"`
	RequiredDecorators []string `yaml:"required_decorators,omitempty" json:"required_decorators,omitempty"`
	RequiredResidency  string   `yaml:"required_residency,omitempty"  json:"required_residency,omitempty"`

	// layer
	Layer         string      `yaml:"layer,omitempty"          json:"layer,omitempty"`
	Access        LayerAccess `yaml:"access,omitempty"         json:"access,omitempty"`
	AllowedLayers []string    `yaml:"allowed_layers,omitempty" json:"allowed_layers,omitempty"`
}

// Compile builds the evaluator rule from the declarative form.
func (s RuleSpec) Compile() (Rule, error) {
	switch s.Type {
	case RuleImport:
		mode := s.Mode
		if mode == "" && s.Forbidden != "" {
			mode = ImportDeny
		}
		if mode == "" && len(s.Allowed) > 0 {
			mode = ImportAllow
		}
		return NewImportRule(s.ID, s.Severity, ImportRule{
			Source:    s.Source,
			Mode:      mode,
			Forbidden: s.Forbidden,
			Allowed:   s.Allowed,
		})
	case RuleNaming:
		return NewNamingRule(s.ID, s.Severity, NamingRule{
			ResideIn:           s.ResideIn,
			NotResideIn:        s.NotResideIn,
			NameMatch:          s.NameMatch,
			RequiredDecorators: s.RequiredDecorators,
			RequiredResidency:  s.RequiredResidency,
		})
	case RuleLayer:
		return NewLayerRule(s.ID, s.Severity, LayerRule{
			Layer:         s.Layer,
			Access:        s.Access,
			AllowedLayers: s.AllowedLayers,
		})
	}
	return Rule{}, fmt.Errorf("rule %s: unknown type %q", s.ID, s.Type)
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{SourceRoot: "."}
}

// CompiledRules compiles every rule spec, failing on the first invalid one.
// Pattern syntax errors inside valid specs surface later, per rule, during
// evaluation.
func (c Config) CompiledRules() ([]Rule, error) {
	rules := make([]Rule, 0, len(c.Rules))
	seen := make(map[string]bool, len(c.Rules))
	for _, spec := range c.Rules {
		r, err := spec.Compile()
		if err != nil {
			return nil, err
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("duplicate rule id %q", r.ID)
		}
		seen[r.ID] = true
		rules = append(rules, r)
	}
	return rules, nil
}

// LayerMapping returns the ordered layer assignment table.
func (c Config) LayerMapping() LayerMapping {
	return LayerMapping{Layers: c.Layers}
}

// ImpactDepth returns the configured propagation depth or the unbounded
// default.
func (c Config) ImpactDepth() int {
	if c.Options.ImpactDepth == nil {
		return UnboundedDepth
	}
	return *c.Options.ImpactDepth
}

// MatchExternalGlob reports whether external targets are glob-matched.
func (c Config) MatchExternalGlob() bool {
	return c.Options.MatchExternal == MatchExternalGlob
}

// Validate checks the config for invalid values and returns a descriptive
// error.
func (c Config) Validate() error {
	switch c.Options.MatchExternal {
	case "", MatchExternalExact, MatchExternalGlob:
	default:
		return fmt.Errorf("unknown options.match_external %q (valid: exact, glob)", c.Options.MatchExternal)
	}
	if c.Options.ImpactDepth != nil && *c.Options.ImpactDepth < UnboundedDepth {
		return fmt.Errorf("options.impact_depth must be >= -1 (got %d)", *c.Options.ImpactDepth)
	}
	if c.Options.Parallel < 0 {
		return fmt.Errorf("options.parallel must be >= 0 (got %d)", c.Options.Parallel)
	}
	for i, l := range c.Layers {
		if l.Name == "" {
			return fmt.Errorf("layers[%d]: name must not be empty", i)
		}
		if l.Pattern == "" {
			return fmt.Errorf("layers[%d] (%s): pattern must not be empty", i, l.Name)
		}
		if _, err := CompilePattern(l.Pattern); err != nil {
			return fmt.Errorf("layers[%d] (%s): %w", i, l.Name, err)
		}
	}
	if _, err := c.CompiledRules(); err != nil {
		return err
	}
	return nil
}
