// Package pointillism renders images as fields of small coloured marks.
//
// # Overview
//
// A caller hands the package encoded image bytes, an algorithm key and a
// set of raw parameters, and gets back a rendered image or a typed error.
// The work is split into three parts:
//
//   - Registry: discovers, validates and indexes algorithms. A malformed
//     algorithm is skipped and recorded, never fatal to the others.
//   - Resolve: merges raw parameters with an algorithm's declared defaults,
//     clamping sliders and falling back on unknown select values.
//   - Pipeline: decode → render (analyze, place, composite, filter) →
//     verify → encode, with typed errors for every stage.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/pointillism"
//	    _ "github.com/gogpu/pointillism/algorithms"
//	)
//
//	p := pointillism.NewPipeline(pointillism.DefaultRegistry())
//	res, err := p.Render(ctx, pointillism.Request{
//	    Key:    "adaptive",
//	    Image:  pngBytes,
//	    Params: map[string]any{"dot_count": 5000, "adaptivity": 1.5},
//	})
//
// # Algorithms
//
// An algorithm implements [Algorithm]: an [Info] identity, an ordered
// [ParameterSpec] schema and a Render entry point. Built-in algorithms
// register themselves with [Register] from an init function, the same way
// gg backends do; additional ones can be served by any [Source].
//
// # Determinism
//
// Every render draws randomness from one *rand.Rand built from a seed.
// Passing Request.Seed reproduces the output bit for bit; otherwise a fresh
// seed is drawn and reported in Result.Seed.
//
// # Limits
//
// The pipeline imposes no wall-clock timeout. Use [WithMaxDimension] and
// [WithMaxPrimitives] to bound the work a single request can cause.
package pointillism
