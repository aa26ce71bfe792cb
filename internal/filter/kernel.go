package filter

import (
	"math"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Kernel cache expiry. Kernels are pure functions of the radius, so a long
// lifetime is safe; expiry only bounds memory for rarely used radii.
const (
	kernelExpiration      = 30 * time.Minute
	kernelCleanupInterval = 10 * time.Minute
)

// GaussianKernel generates a 1D Gaussian kernel for the given radius.
// The kernel is normalized so all values sum to 1.0.
//
// The kernel size is computed as 2 * ceil(radius * 3) + 1, which covers
// 99.7% of the Gaussian distribution (3 standard deviations).
//
// For radius <= 0, returns a single-element kernel [1.0] (identity).
func GaussianKernel(radius float64) []float32 {
	if radius <= 0 {
		return []float32{1.0}
	}

	// Using radius as sigma
	sigma := radius
	size := OptimalKernelSize(sigma)
	halfSize := size / 2

	kernel := make([]float32, size)

	// G(x) = exp(-x²/(2σ²)); the constant factor cancels in normalisation.
	twoSigmaSq := 2 * sigma * sigma
	sum := float64(0)

	for i := 0; i < size; i++ {
		x := float64(i - halfSize)
		val := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(val)
		sum += val
	}

	if sum > 0 {
		invSum := float32(1.0 / sum)
		for i := range kernel {
			kernel[i] *= invSum
		}
	}

	return kernel
}

// kernelCache memoises Gaussian kernels. Keys are the radius quantised to
// 0.01 so nearby float values share an entry. go-cache is safe for
// concurrent use, so parallel renders can share it.
var kernelCache = gocache.New(kernelExpiration, kernelCleanupInterval)

// CachedGaussianKernel returns a cached Gaussian kernel for the radius.
// The returned slice is shared and must not be modified.
func CachedGaussianKernel(radius float64) []float32 {
	key := strconv.Itoa(int(radius * 100))
	if k, ok := kernelCache.Get(key); ok {
		return k.([]float32)
	}
	kernel := GaussianKernel(float64(int(radius*100)) / 100)
	kernelCache.SetDefault(key, kernel)
	return kernel
}

// OptimalKernelSize returns the kernel size used for a given radius.
func OptimalKernelSize(radius float64) int {
	if radius <= 0 {
		return 1
	}
	halfSize := int(math.Ceil(radius * 3))
	return halfSize*2 + 1
}
