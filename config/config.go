// Package config loads optional YAML overrides for the compile-time
// xmlreader.Limits of spec.md §6, per SPEC_FULL.md §2's "Configuration"
// ambient-stack addition: a -config file overrides any subset of the
// limits; fields left unset in the file keep their compiled-in default.
package config

import (
	"os"

	"github.com/haraldrudell/parl/perrors"
	"gopkg.in/yaml.v2"

	"github.com/xmlpull/xmlschema/xmlreader"
)

// Overrides is the YAML shape a -config file may provide. Every field
// is a pointer so an absent key leaves the corresponding Limits field
// untouched.
type Overrides struct {
	EscLength     *int `yaml:"max_esc_length"`
	AttrsSize     *int `yaml:"max_attrs_size"`
	BoundSize     *int `yaml:"max_bound_size"`
	StackSize     *int `yaml:"max_stack_size"`
	TextSize      *int `yaml:"max_text_size"`
	BoundTextSize *int `yaml:"max_bound_text_size"`
	IOBufSize     *int `yaml:"io_buf_size"`
}

// Load reads path and applies any overrides it names on top of
// xmlreader.DefaultLimits. An empty path returns the defaults
// untouched, matching "an absent -config flag uses the compiled-in
// defaults" (SPEC_FULL.md §2).
func Load(path string) (xmlreader.Limits, error) {
	limits := xmlreader.DefaultLimits()
	if path == "" {
		return limits, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return limits, perrors.Errorf("config: reading %q: %w", path, err)
	}

	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return limits, perrors.Errorf("config: parsing %q: %w", path, err)
	}
	o.apply(&limits)
	return limits, nil
}

func (o *Overrides) apply(limits *xmlreader.Limits) {
	if o.EscLength != nil {
		limits.EscLength = *o.EscLength
	}
	if o.AttrsSize != nil {
		limits.AttrsSize = *o.AttrsSize
	}
	if o.BoundSize != nil {
		limits.BoundSize = *o.BoundSize
	}
	if o.StackSize != nil {
		limits.StackSize = *o.StackSize
	}
	if o.TextSize != nil {
		limits.TextSize = *o.TextSize
	}
	if o.BoundTextSize != nil {
		limits.BoundTextSize = *o.BoundTextSize
	}
	if o.IOBufSize != nil {
		limits.IOBufSize = *o.IOBufSize
	}
}
