package menufig

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ParamType identifies the kind of control a parameter materializes as.
// The set is closed: Validate rejects anything else at construction time.
type ParamType string

const (
	TypeDropdown ParamType = "dropdown"
	TypeCheckbox ParamType = "checkbox"
	TypeSelector ParamType = "selector"
	TypeSlider   ParamType = "slider"
	TypeInput    ParamType = "input"
)

// knownType reports whether t is one of the supported parameter types.
func knownType(t ParamType) bool {
	switch t {
	case TypeDropdown, TypeCheckbox, TypeSelector, TypeSlider, TypeInput:
		return true
	}
	return false
}

// Checked is the sentinel value a checkbox control holds when ticked.
// A checkbox value is a list containing Checked, or an empty list.
const Checked = "CHECKED"

// Option is a single choice in a dropdown or selector.
// In schema documents it may be written as a bare scalar, which is
// shorthand for {label: v, value: v}.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value any    `json:"value" yaml:"value"`
	Show  *bool  `json:"show,omitempty" yaml:"show,omitempty"`
}

// Shown reports whether the option should appear in the rendered control.
// A hidden option is still a valid value for a pre-set default.
func (o Option) Shown() bool {
	return o.Show == nil || *o.Show
}

// UnmarshalYAML accepts either a scalar or a {label, value, show} mapping.
func (o *Option) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var v any
		if err := node.Decode(&v); err != nil {
			return err
		}
		o.Label = fmt.Sprint(v)
		o.Value = v
		return nil
	}
	type rawOption Option
	var raw rawOption
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*o = Option(raw)
	return nil
}

// RuleClause names the parameter a visibility rule observes and the set
// of values that satisfy it.
type RuleClause struct {
	Target string `json:"target" yaml:"target"`
	Values []any  `json:"value" yaml:"value"`
}

// RuleMode distinguishes show_if from hide_if.
type RuleMode int

const (
	// ShowIf makes the container visible iff the target value is in the set.
	ShowIf RuleMode = iota
	// HideIf makes the container visible iff the target value is not in the set.
	HideIf
)

// VisibilityRule is the normalized form of a ParamItem's show_if/hide_if.
type VisibilityRule struct {
	Mode   RuleMode
	Target string
	Values []any
}

// ParamItem describes one input control inside a menu.
type ParamItem struct {
	ElemID string    `json:"elem_id" yaml:"elem_id"`
	Type   ParamType `json:"type" yaml:"type"`
	Label  string    `json:"label" yaml:"label"`

	// Value is the default, used when no initial override is supplied.
	Value any `json:"value,omitempty" yaml:"value,omitempty"`

	// Dropdown / selector choices.
	Options []Option `json:"options,omitempty" yaml:"options,omitempty"`

	// Slider bounds and tick suffix.
	MinVal float64 `json:"min_val,omitempty" yaml:"min_val,omitempty"`
	MaxVal float64 `json:"max_val,omitempty" yaml:"max_val,omitempty"`
	Step   float64 `json:"step,omitempty" yaml:"step,omitempty"`
	Suffix string  `json:"suffix,omitempty" yaml:"suffix,omitempty"`

	// Input kind for free-form inputs ("text", "number", ...).
	InputType string `json:"input_type,omitempty" yaml:"input_type,omitempty"`

	// Show=false drops the item from the live control set entirely.
	Show *bool `json:"show,omitempty" yaml:"show,omitempty"`

	// KeepWithPrevious pins the item to its predecessor when splitting
	// a menu into columns.
	KeepWithPrevious bool `json:"keep_with_previous,omitempty" yaml:"keep_with_previous,omitempty"`

	// At most one of ShowIf/HideIf may be set.
	ShowIf *RuleClause `json:"show_if,omitempty" yaml:"show_if,omitempty"`
	HideIf *RuleClause `json:"hide_if,omitempty" yaml:"hide_if,omitempty"`
}

// Shown reports whether the item enters the live control set.
func (p ParamItem) Shown() bool {
	return p.Show == nil || *p.Show
}

// Rule returns the normalized visibility rule, or nil if the item has none.
// Call only on validated schemas; an item with both clauses set is a
// configuration error caught by Validate.
func (p ParamItem) Rule() *VisibilityRule {
	if p.ShowIf != nil {
		return &VisibilityRule{Mode: ShowIf, Target: p.ShowIf.Target, Values: p.ShowIf.Values}
	}
	if p.HideIf != nil {
		return &VisibilityRule{Mode: HideIf, Target: p.HideIf.Target, Values: p.HideIf.Values}
	}
	return nil
}

// Menu is a labelled group of parameters opened from the navbar.
type Menu struct {
	Label  string      `json:"label" yaml:"label"`
	Params []ParamItem `json:"params" yaml:"params"`
}

// MenuID returns the stable index-derived identifier for menu ix.
func MenuID(ix int) string {
	return fmt.Sprintf("menu-%d", ix)
}

// HeaderMenuID identifies the always-visible menu above the figure.
const HeaderMenuID = "header"

// Schema is the full declarative description of the parameter menus.
// Header is optional; when empty the header menu is omitted from the
// widget tree.
type Schema struct {
	Menus  []Menu      `json:"menus" yaml:"menus"`
	Header []ParamItem `json:"header,omitempty" yaml:"header,omitempty"`
}

// ConfigError is a fatal schema configuration problem. It is surfaced
// at construction time and aborts startup; nothing recovers from it.
type ConfigError struct {
	Detail string
}

func (e *ConfigError) Error() string {
	return "menu config: " + e.Detail
}

func configErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{Detail: fmt.Sprintf(format, args...)}
}

// eachItem visits every parameter item in the schema, header included.
func (s *Schema) eachItem(fn func(item *ParamItem)) {
	for mi := range s.Menus {
		for pi := range s.Menus[mi].Params {
			fn(&s.Menus[mi].Params[pi])
		}
	}
	for pi := range s.Header {
		fn(&s.Header[pi])
	}
}

// Validate checks the schema invariants:
//   - every parameter type is recognized
//   - no item declares both show_if and hide_if
//   - every visibility rule target resolves to another item's elem_id
//   - elem_id is unique across the whole schema
//
// Any violation is returned as a *ConfigError.
func (s *Schema) Validate() error {
	ids := make(map[string]bool)
	var err error
	s.eachItem(func(item *ParamItem) {
		if err != nil {
			return
		}
		switch {
		case item.ElemID == "":
			err = configErrorf("parameter %q has no elem_id", item.Label)
		case !knownType(item.Type):
			err = configErrorf("parameter type not recognized: %q (elem_id %q)", item.Type, item.ElemID)
		case ids[item.ElemID]:
			err = configErrorf("duplicate elem_id %q", item.ElemID)
		case item.ShowIf != nil && item.HideIf != nil:
			err = configErrorf("cannot combine show_if and hide_if (elem_id %q)", item.ElemID)
		}
		ids[item.ElemID] = true
	})
	if err != nil {
		return err
	}
	s.eachItem(func(item *ParamItem) {
		if err != nil {
			return
		}
		rule := item.Rule()
		if rule == nil {
			return
		}
		if rule.Target == "" {
			err = configErrorf("visibility rule on %q has no target", item.ElemID)
		} else if rule.Target == item.ElemID {
			err = configErrorf("visibility rule on %q targets itself", item.ElemID)
		} else if !ids[rule.Target] {
			err = configErrorf("visibility rule target %q (on %q) does not exist", rule.Target, item.ElemID)
		}
	})
	return err
}

// LoadSchema reads a YAML schema document (JSON is a YAML subset) and
// validates it.
func LoadSchema(r io.Reader) (*Schema, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	var s Schema
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
