package pointillism

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Names of the parameters every algorithm accepts, declared or not.
const (
	ParamDotSize  = "dot_size"
	ParamDotCount = "dot_count"
)

// Defaults substituted when the shared parameters are absent.
const (
	DefaultDotSize  = 5
	DefaultDotCount = 1000
)

// Params is a resolved, immutable parameter set for one render call.
// Declared parameters hold float64 (slider), string (select) or bool
// (checkbox); undeclared keys keep the caller's raw value.
//
// The zero value is an empty parameter set.
type Params struct {
	values  map[string]any
	ceiling int
}

// NewParams builds a Params from already-typed values. It is mostly useful
// in tests and when calling an Algorithm directly.
func NewParams(values map[string]any) Params {
	return Params{values: maps.Clone(values)}
}

// Len returns the number of parameters.
func (p Params) Len() int { return len(p.values) }

// Has reports whether name is present.
func (p Params) Has(name string) bool {
	_, ok := p.values[name]
	return ok
}

// Value returns the raw stored value.
func (p Params) Value(name string) (any, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Keys returns the parameter names in lexicographic order.
func (p Params) Keys() []string {
	return slices.Sorted(maps.Keys(p.values))
}

// Map returns a copy of the values.
func (p Params) Map() map[string]any {
	return maps.Clone(p.values)
}

// With returns a copy of p with name set to value.
func (p Params) With(name string, value any) Params {
	values := maps.Clone(p.values)
	if values == nil {
		values = make(map[string]any, 1)
	}
	values[name] = value
	return Params{values: values, ceiling: p.ceiling}
}

// WithCeiling returns a copy of p whose primitive budget is capped at n.
// n <= 0 removes the cap.
func (p Params) WithCeiling(n int) Params {
	return Params{values: p.values, ceiling: n}
}

// Ceiling returns the primitive cap, or 0 if there is none.
func (p Params) Ceiling() int { return p.ceiling }

// Budget caps a requested primitive count at the ceiling.
func (p Params) Budget(requested int) int {
	if requested < 0 {
		requested = 0
	}
	if p.ceiling > 0 && requested > p.ceiling {
		return p.ceiling
	}
	return requested
}

// Float returns name as a float64. Passed-through strings are parsed;
// missing or unparsable values yield def.
func (p Params) Float(name string, def float64) float64 {
	v, ok := p.values[name]
	if !ok {
		return def
	}
	if f, ok := coerceFloat(v); ok && !math.IsNaN(f) {
		return f
	}
	return def
}

// Int returns name rounded to the nearest integer.
func (p Params) Int(name string, def int) int {
	f := p.Float(name, float64(def))
	if math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return def
	}
	return int(math.Round(f))
}

// Bool returns name as a bool.
func (p Params) Bool(name string, def bool) bool {
	v, ok := p.values[name]
	if !ok {
		return def
	}
	if b, ok := coerceBool(v); ok {
		return b
	}
	return def
}

// String returns name in its string form.
func (p Params) String(name string, def string) string {
	v, ok := p.values[name]
	if !ok {
		return def
	}
	return stringOf(v)
}

// DotSize returns the shared primitive size parameter.
func (p Params) DotSize() float64 {
	s := p.Float(ParamDotSize, DefaultDotSize)
	if s <= 0 {
		return DefaultDotSize
	}
	return s
}

// DotCount returns the shared primitive count parameter, capped at the ceiling.
func (p Params) DotCount() int {
	n := p.Int(ParamDotCount, DefaultDotCount)
	if n < 0 {
		n = DefaultDotCount
	}
	return p.Budget(n)
}

func coerceFloat(v any) (float64, bool) {
	if f, ok := toFloat(v); ok {
		return f, true
	}
	if s, ok := v.(string); ok {
		// Out-of-range strings parse to ±Inf or 0 with ErrRange; keep them
		// so sliders clamp them like any other extreme number.
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil || errors.Is(err, strconv.ErrRange) {
			return f, true
		}
	}
	return 0, false
}

func coerceBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "1", "t", "true", "yes", "y", "on":
			return true, true
		case "0", "f", "false", "no", "n", "off", "":
			return false, true
		}
		return false, false
	}
	if f, ok := toFloat(v); ok {
		return f != 0, true
	}
	return false, false
}

func stringOf(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}
