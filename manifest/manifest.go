// Package manifest loads preset algorithms declared in YAML files.
//
// A preset wraps a base algorithm, overrides its identity and forces some
// of its parameters:
//
//	key: bold-impressionist
//	name: Bold Impressionist
//	description: Impressionist strokes with boosted colour
//	author: Studio
//	version: 1.0.0
//	base: styled
//	fixed:
//	  style: impressionist
//
// Presets are served by a Dir source and can be kept live with Watch.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/pointillism"
)

// Manifest errors.
var (
	// ErrUnknownBase is returned when a manifest names a base algorithm the
	// base source does not provide.
	ErrUnknownBase = errors.New("manifest: unknown base algorithm")

	// ErrNoBase is returned when a manifest has no base key.
	ErrNoBase = errors.New("manifest: missing base")
)

// Manifest is the YAML form of a preset.
type Manifest struct {
	Key         string `yaml:"key"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Author      string `yaml:"author"`
	Version     string `yaml:"version"`
	Base        string `yaml:"base"`
	Hidden      bool   `yaml:"hidden"`

	// Fixed values are applied on every render and are not tunable.
	Fixed map[string]any `yaml:"fixed"`

	// Parameters replaces the schema offered to callers. When empty the
	// base schema is used, minus the fixed names.
	Parameters []pointillism.ParameterSpec `yaml:"parameters"`
}

// Parse decodes a manifest. Unknown fields are rejected.
func Parse(data []byte) (Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return Manifest{}, fmt.Errorf("manifest: parse: %w", err)
	}
	if m.Base == "" {
		return Manifest{}, ErrNoBase
	}
	return m, nil
}

// Preset is an algorithm built from a Manifest and its base.
type Preset struct {
	m      Manifest
	base   pointillism.Algorithm
	schema []pointillism.ParameterSpec
	fixed  pointillism.Params
}

// NewPreset binds m to base. Fixed values are resolved against the base
// schema, so a value the base cannot accept fails here rather than at
// render time.
func NewPreset(m Manifest, base pointillism.Algorithm) (*Preset, error) {
	if base == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownBase, m.Base)
	}
	baseSchema := base.Parameters()

	fixed, err := pointillism.Resolve(baseSchema, m.Fixed)
	if err != nil {
		return nil, fmt.Errorf("manifest: fixed values: %w", err)
	}

	schema := slices.Clone(m.Parameters)
	if len(schema) == 0 {
		schema = slices.DeleteFunc(slices.Clone(baseSchema), func(s pointillism.ParameterSpec) bool {
			_, ok := m.Fixed[s.Name]
			return ok
		})
	}

	return &Preset{m: m, base: base, schema: schema, fixed: fixed}, nil
}

// Manifest returns the manifest the preset was built from.
func (p *Preset) Manifest() Manifest { return p.m }

// Base returns the wrapped algorithm.
func (p *Preset) Base() pointillism.Algorithm { return p.base }

// Info implements pointillism.Algorithm.
func (p *Preset) Info() pointillism.Info {
	return pointillism.Info{
		Key:         p.m.Key,
		Name:        p.m.Name,
		Description: p.m.Description,
		Author:      p.m.Author,
		Version:     p.m.Version,
		Hidden:      p.m.Hidden,
	}
}

// Parameters implements pointillism.Algorithm.
func (p *Preset) Parameters() []pointillism.ParameterSpec {
	return slices.Clone(p.schema)
}

// Render resolves params against the base schema, forces the fixed values
// and delegates to the base algorithm.
func (p *Preset) Render(src *pointillism.Image, params pointillism.Params, rng *rand.Rand) (*pointillism.Rendering, error) {
	merged, err := pointillism.Resolve(p.base.Parameters(), params.Map())
	if err != nil {
		return nil, pointillism.StageErr(pointillism.StageResolve, err)
	}
	for _, name := range slices.Sorted(maps.Keys(p.m.Fixed)) {
		v, _ := p.fixed.Value(name)
		merged = merged.With(name, v)
	}
	return p.base.Render(src, merged.WithCeiling(params.Ceiling()), rng)
}
