package pointillism

import (
	"go.opentelemetry.io/otel/trace"

	"github.com/gogpu/pointillism/internal/parallel"
)

// PipelineOption configures a Pipeline during creation.
//
// Example:
//
//	// Built-in algorithms, no limits
//	p := pointillism.NewPipeline(pointillism.DefaultRegistry())
//
//	// Bounded work per request
//	p := pointillism.NewPipeline(reg,
//	    pointillism.WithMaxDimension(4096),
//	    pointillism.WithMaxPrimitives(200000))
type PipelineOption func(*pipelineOptions)

// pipelineOptions holds optional configuration for Pipeline creation.
type pipelineOptions struct {
	maxDimension  int
	maxPrimitives int
	format        string
	tracer        trace.Tracer
}

// defaultOptions returns the default pipeline options.
func defaultOptions() pipelineOptions {
	return pipelineOptions{
		maxDimension:  0, // unlimited
		maxPrimitives: 0, // unlimited
		format:        FormatPNG,
		tracer:        nil, // resolved from the global provider per request
	}
}

// WithMaxDimension rejects images whose width or height exceeds n pixels.
// The check runs on the image header, before pixels are decoded.
// n <= 0 disables the limit.
func WithMaxDimension(n int) PipelineOption {
	return func(o *pipelineOptions) {
		o.maxDimension = n
	}
}

// WithMaxPrimitives caps the number of primitives any algorithm may place.
// Requests asking for more are served at the cap rather than rejected.
// n <= 0 disables the limit.
func WithMaxPrimitives(n int) PipelineOption {
	return func(o *pipelineOptions) {
		o.maxPrimitives = n
	}
}

// WithDefaultFormat sets the encoding used when a request names none.
func WithDefaultFormat(format string) PipelineOption {
	return func(o *pipelineOptions) {
		o.format = NormalizeFormat(format)
	}
}

// WithTracer sets the tracer used for pipeline spans. By default the
// tracer comes from the global OpenTelemetry provider.
func WithTracer(t trace.Tracer) PipelineOption {
	return func(o *pipelineOptions) {
		o.tracer = t
	}
}

// SetParallelism sets how many goroutines the per-pixel analysis passes
// (detail maps, gradient fields, median blur) may use, process-wide.
// n <= 0 uses GOMAXPROCS; n == 1 keeps every render on its calling
// goroutine. Output for a fixed seed is the same at any setting.
func SetParallelism(n int) {
	parallel.SetWorkers(n)
}
