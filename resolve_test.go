package pointillism

import (
	"errors"
	"testing"

	"pgregory.net/rapid"
)

func testSchema() []ParameterSpec {
	return []ParameterSpec{
		Slider("dot_size", "Dot Size", 1, 20, 1, 5),
		Slider("intensity", "Intensity", 0.5, 2.0, 0.1, 1.2),
		Select("style", "Style", "soft",
			Option{Value: "soft", Label: "Soft"},
			Option{Value: "bold", Label: "Bold"},
		),
		Checkbox("blur", "Blur", false),
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want map[string]any
	}{
		{
			name: "defaults",
			raw:  nil,
			want: map[string]any{"dot_size": 5.0, "intensity": 1.2, "style": "soft", "blur": false},
		},
		{
			name: "clamped above",
			raw:  map[string]any{"intensity": 5.0},
			want: map[string]any{"intensity": 2.0},
		},
		{
			name: "clamped below",
			raw:  map[string]any{"dot_size": -3},
			want: map[string]any{"dot_size": 1.0},
		},
		{
			name: "numeric string",
			raw:  map[string]any{"dot_size": " 7 "},
			want: map[string]any{"dot_size": 7.0},
		},
		{
			name: "overflowing string clamps above",
			raw:  map[string]any{"intensity": "1e400"},
			want: map[string]any{"intensity": 2.0},
		},
		{
			name: "overflowing string clamps below",
			raw:  map[string]any{"dot_size": "-1e400"},
			want: map[string]any{"dot_size": 1.0},
		},
		{
			name: "unknown option falls back",
			raw:  map[string]any{"style": "neon"},
			want: map[string]any{"style": "soft"},
		},
		{
			name: "checkbox from string",
			raw:  map[string]any{"blur": "yes"},
			want: map[string]any{"blur": true},
		},
		{
			name: "checkbox from number",
			raw:  map[string]any{"blur": 0},
			want: map[string]any{"blur": false},
		},
		{
			name: "undeclared passes through",
			raw:  map[string]any{"dot_count": "250", "extra": []int{1}},
			want: map[string]any{"dot_count": "250"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Resolve(testSchema(), tt.raw)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			for k, want := range tt.want {
				got, ok := p.Value(k)
				if !ok || got != want {
					t.Errorf("%s = %v (%T), want %v (%T)", k, got, got, want, want)
				}
			}
			for _, spec := range testSchema() {
				if !p.Has(spec.Name) {
					t.Errorf("declared parameter %q missing", spec.Name)
				}
			}
		})
	}
}

func TestResolveValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		raw   map[string]any
		field string
	}{
		{"word for slider", map[string]any{"dot_size": "big"}, "dot_size"},
		{"bool for slider", map[string]any{"intensity": true}, "intensity"},
		{"nil for slider", map[string]any{"intensity": nil}, "intensity"},
		{"word for checkbox", map[string]any{"blur": "maybe"}, "blur"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(testSchema(), tt.raw)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("Field = %q, want %q", ve.Field, tt.field)
			}
			if !errors.Is(err, ErrValidation) {
				t.Error("should unwrap to ErrValidation")
			}
		})
	}
}

func TestResolveDoesNotModifyRaw(t *testing.T) {
	raw := map[string]any{"intensity": 9.0, "style": "neon"}
	if _, err := Resolve(testSchema(), raw); err != nil {
		t.Fatal(err)
	}
	if raw["intensity"] != 9.0 || raw["style"] != "neon" || len(raw) != 2 {
		t.Errorf("raw modified: %v", raw)
	}
}

func TestResolveSliderClampProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Float64Range(-1000, 1000).Draw(t, "a")
		b := rapid.Float64Range(-1000, 1000).Draw(t, "b")
		lo, hi := min(a, b), max(a, b)
		def := rapid.Float64Range(lo, hi).Draw(t, "default")
		v := rapid.Float64Range(-1e9, 1e9).Draw(t, "value")

		schema := []ParameterSpec{Slider("x", "X", lo, hi, 0, def)}
		if err := ValidateSchema(schema); err != nil {
			t.Fatalf("schema: %v", err)
		}
		p, err := Resolve(schema, map[string]any{"x": v})
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		got := p.Float("x", -1)
		if got < lo || got > hi {
			t.Fatalf("resolved %v outside [%v, %v]", got, lo, hi)
		}
		if v >= lo && v <= hi && got != v {
			t.Fatalf("in-range value %v changed to %v", v, got)
		}
	})
}

func TestParamsAccessors(t *testing.T) {
	p := NewParams(map[string]any{
		"f":         "2.5",
		"i":         2.6,
		"b":         "on",
		"s":         1.5,
		"dot_size":  -1.0,
		"dot_count": 300,
	})

	if got := p.Float("f", 0); got != 2.5 {
		t.Errorf("Float = %v", got)
	}
	if got := p.Int("i", 0); got != 3 {
		t.Errorf("Int = %v, want 3", got)
	}
	if !p.Bool("b", false) {
		t.Error("Bool(on) = false")
	}
	if got := p.String("s", ""); got != "1.5" {
		t.Errorf("String = %q", got)
	}
	if got := p.Float("missing", 7); got != 7 {
		t.Errorf("missing Float = %v, want default", got)
	}
	if got := p.DotSize(); got != DefaultDotSize {
		t.Errorf("non-positive dot size should fall back, got %v", got)
	}
	if got := p.DotCount(); got != 300 {
		t.Errorf("DotCount = %d", got)
	}

	capped := p.WithCeiling(100)
	if capped.DotCount() != 100 || capped.Budget(40) != 40 || capped.Budget(-5) != 0 {
		t.Errorf("ceiling not applied: DotCount %d", capped.DotCount())
	}
	if p.DotCount() != 300 {
		t.Error("WithCeiling should not change the receiver")
	}

	q := capped.With("dot_count", 50)
	if q.DotCount() != 50 || q.Ceiling() != 100 || p.Has("x") {
		t.Error("With should copy and keep the ceiling")
	}

	var zero Params
	if zero.DotCount() != DefaultDotCount || zero.DotSize() != DefaultDotSize || zero.Len() != 0 {
		t.Error("zero Params should use the shared defaults")
	}
}
