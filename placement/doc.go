// Package placement decides where primitives go and which colour they take
// from the source image.
//
// Three families are provided:
//   - Uniform: independent uniformly random positions.
//   - Adaptive: a per-cell budget proportional to cell area and a power of
//     local detail, so detailed regions receive more, smaller primitives.
//   - Grid: one jittered position per grid cell, shuffled.
//
// Every function draws from the caller's *rand.Rand and never from a
// global source.
package placement
