// Package analysis derives the per-image data that placement and colouring
// rely on: a normalised detail map, a k-means colour palette and a smoothed
// gradient vector field.
//
// All functions read a *pointillism.Image without modifying it. Functions
// that need randomness take an explicit *rand.Rand so results are
// reproducible for a fixed seed.
package analysis
