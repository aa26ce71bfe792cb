// Package filter provides the post-composition passes of the pipeline.
//
// This package contains:
//   - Gaussian blur (separable, O(n) per radius)
//   - Median blur (sliding histogram, O(size) per pixel)
//   - Unsharp-mask sharpening
//   - Paper texture (seeded luminance grain)
//   - Colour matrix toning
//
// Every filter returns a new image with exactly the dimensions of its
// input; the input is never modified.
package filter
