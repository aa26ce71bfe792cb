package filter

// BlurPlane blurs a single-channel float plane in place with a separable
// Gaussian of the given sigma. Edges are extended.
func BlurPlane(data []float32, width, height int, sigma float64) {
	if sigma <= 0 || width <= 0 || height <= 0 {
		return
	}
	kernel := CachedGaussianKernel(sigma)
	half := len(kernel) / 2

	tmp := make([]float32, len(data))

	for y := 0; y < height; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			var sum float32
			for k, w := range kernel {
				kx := clampInt(x+k-half, 0, width-1)
				sum += data[row+kx] * w
			}
			tmp[row+x] = sum
		}
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float32
			for k, w := range kernel {
				ky := clampInt(y+k-half, 0, height-1)
				sum += tmp[ky*width+x] * w
			}
			data[y*width+x] = sum
		}
	}
}

// SigmaForSize returns the conventional sigma for a Gaussian kernel of
// side 2*radius+1: 0.3*((size-1)/2 - 1) + 0.8.
func SigmaForSize(radius int) float64 {
	if radius <= 0 {
		return 0
	}
	size := float64(2*radius + 1)
	return 0.3*((size-1)*0.5-1) + 0.8
}
