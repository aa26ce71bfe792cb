package pointillism

import (
	"slices"
	"sync"
)

// Candidate is one algorithm offered by a Source, or the reason the source
// could not produce it.
type Candidate struct {
	// Origin identifies the candidate within its source, e.g. a file path.
	Origin    string
	Algorithm Algorithm
	// Err is set when the candidate failed to load.
	Err error
}

// Source enumerates candidate algorithms for a registry scan.
type Source interface {
	// Name identifies the source in skip records and logs.
	Name() string

	// Candidates returns every candidate the source knows about. A non-nil
	// error means the source as a whole is unusable; per-candidate
	// failures belong in Candidate.Err.
	Candidates() ([]Candidate, error)
}

// builtins holds algorithms registered at init time.
var (
	builtinMu sync.RWMutex
	builtins  []Algorithm
)

// Register adds an algorithm to the built-in source.
// This is typically called from init() functions in algorithm packages.
// Validation is deferred to the next registry scan.
func Register(a Algorithm) {
	builtinMu.Lock()
	defer builtinMu.Unlock()
	builtins = append(builtins, a)
}

// Unregister removes every built-in algorithm with the given key.
// This is useful for testing.
func Unregister(key string) {
	builtinMu.Lock()
	defer builtinMu.Unlock()
	builtins = slices.DeleteFunc(builtins, func(a Algorithm) bool {
		return a != nil && safeKey(a) == key
	})
}

// Builtin returns the source of algorithms added through Register, in
// registration order.
func Builtin() Source { return builtinSource{} }

type builtinSource struct{}

func (builtinSource) Name() string { return "builtin" }

func (builtinSource) Candidates() ([]Candidate, error) {
	builtinMu.RLock()
	defer builtinMu.RUnlock()

	out := make([]Candidate, 0, len(builtins))
	for _, a := range builtins {
		out = append(out, Candidate{Origin: "builtin", Algorithm: a})
	}
	return out, nil
}

// Static returns a source serving a fixed list of algorithms.
func Static(name string, algs ...Algorithm) Source {
	return staticSource{name: name, algs: slices.Clone(algs)}
}

type staticSource struct {
	name string
	algs []Algorithm
}

func (s staticSource) Name() string { return s.name }

func (s staticSource) Candidates() ([]Candidate, error) {
	out := make([]Candidate, 0, len(s.algs))
	for _, a := range s.algs {
		out = append(out, Candidate{Origin: s.name, Algorithm: a})
	}
	return out, nil
}

// safeKey reads a key without letting a faulty Info bring down the caller.
func safeKey(a Algorithm) (key string) {
	defer func() {
		if recover() != nil {
			key = ""
		}
	}()
	return a.Info().Key
}
