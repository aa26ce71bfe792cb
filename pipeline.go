package pointillism

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation scope of pipeline spans.
const tracerName = "github.com/gogpu/pointillism"

// Request is one render call from the caller's point of view.
type Request struct {
	// Key selects the algorithm.
	Key string
	// Image holds the encoded source image.
	Image []byte
	// Params holds raw caller values; see Resolve for the coercion policy.
	Params map[string]any
	// Seed fixes the random sequence. Nil draws a fresh seed per call.
	Seed *int64
	// Format is the output encoding; empty uses the pipeline default.
	Format string
}

// Result is a completed render. The pipeline keeps no reference to it.
type Result struct {
	// ID identifies this render in logs and traces.
	ID         string
	Key        string
	Image      *Image
	Encoded    []byte
	Format     string
	Primitives int
	Seed       int64
	Elapsed    time.Duration
}

// Pipeline turns encoded images into pointillism renderings using the
// algorithms of a Registry. A Pipeline holds no per-request state and is
// safe for concurrent use.
type Pipeline struct {
	registry *Registry
	opts     pipelineOptions
}

// NewPipeline creates a pipeline over reg.
func NewPipeline(reg *Registry, opts ...PipelineOption) *Pipeline {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return &Pipeline{registry: reg, opts: options}
}

// Registry returns the registry the pipeline reads from.
func (p *Pipeline) Registry() *Registry { return p.registry }

// Algorithms lists the available algorithms sorted by key.
func (p *Pipeline) Algorithms() []Descriptor { return p.registry.List() }

func (p *Pipeline) tracer() trace.Tracer {
	if p.opts.tracer != nil {
		return p.opts.tracer
	}
	return otel.Tracer(tracerName)
}

// Render runs decode → resolve → render → verify → encode for one request.
// Any failure aborts the run; no partial image is ever returned.
//
// Errors are typed: *NotFoundError, *DecodeError, *ValidationError or
// *RenderError.
func (p *Pipeline) Render(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	res := &Result{ID: uuid.NewString(), Key: req.Key}

	ctx, span := p.tracer().Start(ctx, "pointillism.Render", trace.WithAttributes(
		attribute.String("pointillism.key", req.Key),
		attribute.String("pointillism.id", res.ID),
	))
	defer span.End()

	out, err := p.render(ctx, req, res)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		Logger().Debug("pointillism: render failed", "id", res.ID, "key", req.Key, "error", err)
		return nil, err
	}

	out.Elapsed = time.Since(start)
	span.SetAttributes(attribute.Int("pointillism.primitives", out.Primitives))
	Logger().Info("pointillism: rendered",
		"id", out.ID,
		"key", out.Key,
		"width", out.Image.Width(),
		"height", out.Image.Height(),
		"primitives", out.Primitives,
		"seed", out.Seed,
		"elapsed", out.Elapsed)
	return out, nil
}

func (p *Pipeline) render(ctx context.Context, req Request, res *Result) (*Result, error) {
	desc, err := p.registry.Get(req.Key)
	if err != nil {
		return nil, err
	}

	var src *Image
	if err := p.stage(ctx, StageDecode, func() error {
		src, err = DecodeLimit(req.Image, p.opts.maxDimension)
		return err
	}); err != nil {
		return nil, err
	}

	var params Params
	if err := p.stage(ctx, StageResolve, func() error {
		params, err = Resolve(desc.Parameters, req.Params)
		return err
	}); err != nil {
		return nil, err
	}
	params = params.WithCeiling(p.opts.maxPrimitives)

	res.Seed = RandomSeed()
	if req.Seed != nil {
		res.Seed = *req.Seed
	}

	var out *Rendering
	if err := p.stage(ctx, StageRender, func() error {
		out, err = invoke(desc, src, params, NewRand(res.Seed))
		return err
	}); err != nil {
		return nil, err
	}

	if err := p.stage(ctx, StageVerify, func() error {
		return verify(desc.Key, src, out)
	}); err != nil {
		return nil, err
	}

	res.Image = out.Image
	res.Primitives = out.Primitives
	res.Format = req.Format
	if res.Format == "" {
		res.Format = p.opts.format
	}
	res.Format = NormalizeFormat(res.Format)

	if res.Format != FormatRaw {
		if err := p.stage(ctx, StageEncode, func() error {
			res.Encoded, err = EncodeBytes(out.Image, res.Format)
			if err != nil {
				return &RenderError{Key: desc.Key, Stage: StageEncode, Err: err}
			}
			return nil
		}); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// stage runs fn inside a child span named after the stage.
func (p *Pipeline) stage(ctx context.Context, stage Stage, fn func() error) error {
	_, span := p.tracer().Start(ctx, "pointillism."+string(stage))
	defer span.End()

	err := fn()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// invoke calls the algorithm, turning panics and stage-tagged errors into
// *RenderError.
func invoke(desc Descriptor, src *Image, params Params, rng *rand.Rand) (out *Rendering, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = &RenderError{Key: desc.Key, Stage: StageRender, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	out, err = desc.Algorithm().Render(src, params, rng)
	if err != nil {
		var re *RenderError
		if errors.As(err, &re) {
			return nil, err
		}
		return nil, &RenderError{Key: desc.Key, Stage: StageOf(err, StageRender), Err: unwrapStage(err)}
	}
	return out, nil
}

// verify enforces the output invariants at the pipeline boundary.
func verify(key string, src *Image, out *Rendering) error {
	if out == nil || out.Image == nil {
		return &RenderError{Key: key, Stage: StageVerify, Err: errors.New("algorithm returned no image")}
	}
	if !src.SameSize(out.Image) {
		return &RenderError{Key: key, Stage: StageVerify, Err: fmt.Errorf("%w: got %dx%d, want %dx%d",
			ErrDimensionMismatch, out.Image.Width(), out.Image.Height(), src.Width(), src.Height())}
	}
	return nil
}

// unwrapStage drops a top-level stage tag once it has been lifted into
// RenderError.Stage.
func unwrapStage(err error) error {
	if se, ok := err.(*stageError); ok { //nolint:errorlint // only the outermost tag is lifted
		return se.err
	}
	return err
}
