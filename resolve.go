package pointillism

import (
	"math"
)

// Resolve merges raw caller values with the defaults declared in schema and
// coerces each declared value to its kind.
//
// The policy is deliberately lenient so UI controls stay forgiving:
//   - missing parameters take their default;
//   - slider values outside [Min, Max] are clamped to the nearest bound;
//   - select values that are not a declared option fall back to the default;
//   - keys without a ParameterSpec are passed through unchanged.
//
// Only values that cannot be coerced at all (a word where a number is
// expected, an unrecognised boolean) produce a *ValidationError.
// raw is never modified.
func Resolve(schema []ParameterSpec, raw map[string]any) (Params, error) {
	values := make(map[string]any, len(schema)+len(raw))

	declared := make(map[string]bool, len(schema))
	for _, spec := range schema {
		declared[spec.Name] = true

		v, ok := raw[spec.Name]
		if !ok {
			values[spec.Name] = defaultValue(spec)
			continue
		}
		resolved, err := coerce(spec, v)
		if err != nil {
			return Params{}, err
		}
		values[spec.Name] = resolved
	}

	for k, v := range raw {
		if !declared[k] {
			values[k] = v
		}
	}

	return Params{values: values}, nil
}

// defaultValue returns the spec's default in its resolved type.
func defaultValue(spec ParameterSpec) any {
	switch spec.Kind {
	case KindSlider:
		f, _ := toFloat(spec.Default)
		return f
	case KindSelect:
		s, _ := spec.Default.(string)
		return s
	case KindCheckbox:
		b, _ := spec.Default.(bool)
		return b
	default:
		return spec.Default
	}
}

func coerce(spec ParameterSpec, v any) (any, error) {
	switch spec.Kind {
	case KindSlider:
		if _, isBool := v.(bool); isBool {
			return nil, &ValidationError{Field: spec.Name, Value: v, Reason: "expected a number"}
		}
		f, ok := coerceFloat(v)
		if !ok || math.IsNaN(f) {
			return nil, &ValidationError{Field: spec.Name, Value: v, Reason: "expected a number"}
		}
		return math.Min(math.Max(f, spec.Min), spec.Max), nil

	case KindSelect:
		s := stringOf(v)
		if !spec.HasOption(s) {
			return defaultValue(spec), nil
		}
		return s, nil

	case KindCheckbox:
		b, ok := coerceBool(v)
		if !ok {
			return nil, &ValidationError{Field: spec.Name, Value: v, Reason: "expected a boolean"}
		}
		return b, nil

	default:
		return v, nil
	}
}
