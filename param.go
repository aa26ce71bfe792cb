package pointillism

import (
	"errors"
	"fmt"
	"math"
)

// Kind is the control type of a tunable parameter.
type Kind string

// Parameter kinds.
const (
	KindSlider   Kind = "slider"
	KindSelect   Kind = "select"
	KindCheckbox Kind = "checkbox"
)

// Option is one choice of a select parameter.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// ParameterSpec describes one tunable knob of an algorithm.
//
// Default holds a float64 for sliders, a string for selects and a bool for
// checkboxes. Min, Max and Step only apply to sliders; Options only to selects.
type ParameterSpec struct {
	Name        string   `json:"name" yaml:"name"`
	Kind        Kind     `json:"type" yaml:"type"`
	Label       string   `json:"label" yaml:"label"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Default     any      `json:"default" yaml:"default"`
	Min         float64  `json:"min,omitempty" yaml:"min,omitempty"`
	Max         float64  `json:"max,omitempty" yaml:"max,omitempty"`
	Step        float64  `json:"step,omitempty" yaml:"step,omitempty"`
	Options     []Option `json:"options,omitempty" yaml:"options,omitempty"`
}

// Slider declares a numeric parameter.
func Slider(name, label string, lo, hi, step, def float64) ParameterSpec {
	return ParameterSpec{Name: name, Kind: KindSlider, Label: label, Min: lo, Max: hi, Step: step, Default: def}
}

// Select declares a choice parameter.
func Select(name, label, def string, options ...Option) ParameterSpec {
	return ParameterSpec{Name: name, Kind: KindSelect, Label: label, Default: def, Options: options}
}

// Checkbox declares a boolean parameter.
func Checkbox(name, label string, def bool) ParameterSpec {
	return ParameterSpec{Name: name, Kind: KindCheckbox, Label: label, Default: def}
}

// Describe returns a copy of p with the description set.
func (p ParameterSpec) Describe(text string) ParameterSpec {
	p.Description = text
	return p
}

// StepOrDefault returns the slider step, or 1 if none was declared.
func (p ParameterSpec) StepOrDefault() float64 {
	if p.Step > 0 {
		return p.Step
	}
	return 1
}

// HasOption reports whether value is one of the select's option values.
func (p ParameterSpec) HasOption(value string) bool {
	for _, o := range p.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Validate checks the kind-specific invariants of the spec.
func (p ParameterSpec) Validate() error {
	if p.Name == "" {
		return errors.New("parameter has no name")
	}
	switch p.Kind {
	case KindSlider:
		if math.IsNaN(p.Min) || math.IsNaN(p.Max) || p.Min > p.Max {
			return fmt.Errorf("slider %q: min %v > max %v", p.Name, p.Min, p.Max)
		}
		if p.Step < 0 || math.IsNaN(p.Step) {
			return fmt.Errorf("slider %q: step %v must be positive", p.Name, p.Step)
		}
		def, ok := toFloat(p.Default)
		if !ok {
			return fmt.Errorf("slider %q: default %v is not numeric", p.Name, p.Default)
		}
		if def < p.Min || def > p.Max {
			return fmt.Errorf("slider %q: default %v outside [%v, %v]", p.Name, def, p.Min, p.Max)
		}
	case KindSelect:
		if len(p.Options) == 0 {
			return fmt.Errorf("select %q: no options", p.Name)
		}
		seen := make(map[string]bool, len(p.Options))
		for _, o := range p.Options {
			if seen[o.Value] {
				return fmt.Errorf("select %q: duplicate option %q", p.Name, o.Value)
			}
			seen[o.Value] = true
		}
		def, ok := p.Default.(string)
		if !ok || !seen[def] {
			return fmt.Errorf("select %q: default %v is not an option", p.Name, p.Default)
		}
	case KindCheckbox:
		if _, ok := p.Default.(bool); !ok {
			return fmt.Errorf("checkbox %q: default %v is not a bool", p.Name, p.Default)
		}
	default:
		return fmt.Errorf("parameter %q: unknown kind %q", p.Name, p.Kind)
	}
	return nil
}

// ValidateSchema validates every spec and checks that names are unique.
func ValidateSchema(specs []ParameterSpec) error {
	seen := make(map[string]bool, len(specs))
	for _, s := range specs {
		if err := s.Validate(); err != nil {
			return err
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate parameter %q", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// toFloat converts Go numeric kinds to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
