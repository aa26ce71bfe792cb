package pointillism

import (
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
)

// fakeAlgorithm is a configurable Algorithm for registry and pipeline tests.
type fakeAlgorithm struct {
	info      Info
	params    []ParameterSpec
	panicInfo bool
	render    func(src *Image, p Params, rng *rand.Rand) (*Rendering, error)
}

func (f *fakeAlgorithm) Info() Info {
	if f.panicInfo {
		panic("info exploded")
	}
	return f.info
}

func (f *fakeAlgorithm) Parameters() []ParameterSpec { return f.params }

func (f *fakeAlgorithm) Render(src *Image, p Params, rng *rand.Rand) (*Rendering, error) {
	if f.render != nil {
		return f.render(src, p, rng)
	}
	return &Rendering{Image: src.Clone()}, nil
}

func validInfo(key string) Info {
	return Info{Key: key, Name: "Name " + key, Description: "desc", Author: "tester", Version: "1.0.0"}
}

func fake(key string, params ...ParameterSpec) *fakeAlgorithm {
	return &fakeAlgorithm{info: validInfo(key), params: params}
}

// funcSource is a Source backed by a function.
type funcSource struct {
	name string
	fn   func() ([]Candidate, error)
}

func (s funcSource) Name() string                     { return s.name }
func (s funcSource) Candidates() ([]Candidate, error) { return s.fn() }

func failingSource(name string) Source {
	return funcSource{name: name, fn: func() ([]Candidate, error) {
		return nil, errors.New("directory unreadable")
	}}
}

func panickingSource(name string) Source {
	return funcSource{name: name, fn: func() ([]Candidate, error) {
		panic("source exploded")
	}}
}

// mutableSource serves a list that tests can change between scans.
type mutableSource struct {
	mu   sync.Mutex
	algs []Algorithm
}

func (s *mutableSource) Name() string { return "mutable" }

func (s *mutableSource) Candidates() ([]Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Candidate, len(s.algs))
	for i, a := range s.algs {
		out[i] = Candidate{Origin: "mutable", Algorithm: a}
	}
	return out, nil
}

func (s *mutableSource) add(a Algorithm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.algs = append(s.algs, a)
}

func keysOf(descs []Descriptor) []string {
	keys := make([]string, len(descs))
	for i, d := range descs {
		keys[i] = d.Key
	}
	return keys
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// encodedImage returns w×h PNG bytes of a single colour.
func encodedImage(t *testing.T, w, h int, c RGB) []byte {
	t.Helper()
	img, err := NewImage(w, h)
	if err != nil {
		t.Fatal(err)
	}
	img.Fill(c)
	data, err := EncodeBytes(img, FormatPNG)
	if err != nil {
		t.Fatal(err)
	}
	return data
}
