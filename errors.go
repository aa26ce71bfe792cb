package pointillism

import (
	"errors"
	"fmt"
)

// Sentinel errors. The typed errors below unwrap to these, so callers can
// use errors.Is without caring about the concrete type.
var (
	// ErrNotFound is returned when an algorithm key is not registered.
	ErrNotFound = errors.New("pointillism: algorithm not found")

	// ErrPluginLoad marks a candidate algorithm that was rejected during a scan.
	ErrPluginLoad = errors.New("pointillism: algorithm rejected")

	// ErrValidation is returned when a raw parameter cannot be coerced.
	ErrValidation = errors.New("pointillism: invalid parameter")

	// ErrDecode is returned when input bytes are not a decodable image.
	ErrDecode = errors.New("pointillism: cannot decode image")

	// ErrRender is returned when an algorithm fails during rendering.
	ErrRender = errors.New("pointillism: render failed")

	// ErrDimensionMismatch is wrapped by RenderError when an algorithm
	// returns an image whose size differs from its input.
	ErrDimensionMismatch = errors.New("pointillism: output dimensions differ from input")

	// ErrEmptyImage is returned for zero-sized images.
	ErrEmptyImage = errors.New("pointillism: image has no pixels")
)

// Stage names a step of the rendering pipeline.
type Stage string

// Pipeline stages, in execution order.
const (
	StageDecode    Stage = "decode"
	StageResolve   Stage = "resolve"
	StageAnalyze   Stage = "analyze"
	StagePlace     Stage = "place"
	StageComposite Stage = "composite"
	StageFilter    Stage = "filter"
	StageRender    Stage = "render"
	StageVerify    Stage = "verify"
	StageEncode    Stage = "encode"
)

// PluginLoadError records why a candidate algorithm was skipped during a scan.
type PluginLoadError struct {
	// Origin identifies where the candidate came from (source name, file path).
	Origin string
	// Key is the candidate's key when it could be read.
	Key    string
	Reason string
	Err    error
}

func (e *PluginLoadError) Error() string {
	name := e.Origin
	if e.Key != "" {
		name = e.Origin + ":" + e.Key
	}
	if e.Err != nil {
		return fmt.Sprintf("pointillism: skip %s: %s: %v", name, e.Reason, e.Err)
	}
	return fmt.Sprintf("pointillism: skip %s: %s", name, e.Reason)
}

func (e *PluginLoadError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrPluginLoad, e.Err}
	}
	return []error{ErrPluginLoad}
}

// NotFoundError is returned by Registry.Get for unknown keys.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("pointillism: algorithm %q not found", e.Key)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ValidationError reports a raw parameter value that could not be coerced
// to the type its ParameterSpec declares.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("pointillism: parameter %q: %s (got %v)", e.Field, e.Reason, e.Value)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// DecodeError wraps a failure to turn input bytes into an Image.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("pointillism: decode: %v", e.Err)
}

func (e *DecodeError) Unwrap() []error { return []error{ErrDecode, e.Err} }

// RenderError reports a failure inside an algorithm or a later pipeline stage.
type RenderError struct {
	Key   string
	Stage Stage
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("pointillism: %s: %s: %v", e.Key, e.Stage, e.Err)
}

func (e *RenderError) Unwrap() []error { return []error{ErrRender, e.Err} }

// stageError tags an error with the stage that produced it. Algorithms
// return these through StageErr; the pipeline lifts the stage into RenderError.
type stageError struct {
	stage Stage
	err   error
}

func (e *stageError) Error() string { return string(e.stage) + ": " + e.err.Error() }
func (e *stageError) Unwrap() error { return e.err }

// StageErr annotates err with the stage it happened in. It returns nil for
// a nil error, so it can wrap calls directly.
func StageErr(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	var se *stageError
	if errors.As(err, &se) {
		return err
	}
	return &stageError{stage: stage, err: err}
}

// StageOf reports the stage recorded by StageErr, or fallback if none.
func StageOf(err error, fallback Stage) Stage {
	var se *stageError
	if errors.As(err, &se) {
		return se.stage
	}
	return fallback
}
