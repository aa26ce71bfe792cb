package pointillism

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
)

// Skip reasons recorded in PluginLoadError.Reason.
const (
	ReasonSourceFailed    = "source failed"
	ReasonLoadError       = "load error"
	ReasonMissingEntry    = "missing entry point"
	ReasonLoadFault       = "load-time fault"
	ReasonMissingMetadata = "missing metadata"
	ReasonInvalidKey      = "invalid key"
	ReasonInvalidSchema   = "invalid parameter schema"
	ReasonDuplicateKey    = "duplicate key"
)

// Snapshot is an immutable, validated view of the available algorithms.
// It is safe for concurrent use.
type Snapshot struct {
	descriptors []Descriptor
	byKey       map[string]int
	skipped     []*PluginLoadError
	hidden      []string
}

// List returns the descriptors sorted by key.
func (s *Snapshot) List() []Descriptor {
	out := make([]Descriptor, len(s.descriptors))
	for i, d := range s.descriptors {
		out[i] = d.clone()
	}
	return out
}

// Get returns the descriptor for key or a *NotFoundError.
func (s *Snapshot) Get(key string) (Descriptor, error) {
	i, ok := s.byKey[key]
	if !ok {
		return Descriptor{}, &NotFoundError{Key: key}
	}
	return s.descriptors[i].clone(), nil
}

// Len returns the number of listed algorithms.
func (s *Snapshot) Len() int { return len(s.descriptors) }

// Skipped returns the candidates rejected by the scan, in scan order.
func (s *Snapshot) Skipped() []*PluginLoadError {
	return slices.Clone(s.skipped)
}

// Hidden returns the keys of valid algorithms that asked not to be listed.
func (s *Snapshot) Hidden() []string {
	return slices.Clone(s.hidden)
}

// Scan loads every candidate from the sources, in order, and returns the
// resulting snapshot. A malformed candidate or a failing source is recorded
// as a skip and never aborts the scan. When two candidates share a key the
// first one wins.
func Scan(sources ...Source) *Snapshot {
	snap := &Snapshot{byKey: make(map[string]int)}
	seen := make(map[string]bool)
	log := Logger()

	for _, src := range sources {
		if src == nil {
			continue
		}
		cands, err := candidatesOf(src)
		if err != nil {
			snap.skip(&PluginLoadError{Origin: src.Name(), Reason: ReasonSourceFailed, Err: err})
			continue
		}

		for _, c := range cands {
			d, hidden, skip := admit(c)
			switch {
			case skip != nil:
				snap.skip(skip)
			case seen[d.Key]:
				snap.skip(&PluginLoadError{Origin: c.Origin, Key: d.Key, Reason: ReasonDuplicateKey})
			case hidden:
				seen[d.Key] = true
				snap.hidden = append(snap.hidden, d.Key)
				log.Debug("pointillism: hidden algorithm", "key", d.Key, "origin", c.Origin)
			default:
				seen[d.Key] = true
				snap.descriptors = append(snap.descriptors, d)
			}
		}
	}

	slices.SortFunc(snap.descriptors, func(a, b Descriptor) int {
		return strings.Compare(a.Key, b.Key)
	})
	for i, d := range snap.descriptors {
		snap.byKey[d.Key] = i
	}

	log.Info("pointillism: registry scanned",
		"algorithms", len(snap.descriptors),
		"skipped", len(snap.skipped),
		"hidden", len(snap.hidden))
	return snap
}

func (s *Snapshot) skip(e *PluginLoadError) {
	s.skipped = append(s.skipped, e)
	Logger().Warn("pointillism: algorithm skipped",
		"origin", e.Origin, "key", e.Key, "reason", e.Reason, "error", e.Err)
}

// candidatesOf calls src.Candidates, converting a panic into an error.
func candidatesOf(src Source) (cands []Candidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return src.Candidates()
}

// admit validates one candidate and builds its descriptor.
func admit(c Candidate) (d Descriptor, hidden bool, skip *PluginLoadError) {
	if c.Err != nil {
		return d, false, &PluginLoadError{Origin: c.Origin, Reason: ReasonLoadError, Err: c.Err}
	}
	if c.Algorithm == nil {
		return d, false, &PluginLoadError{Origin: c.Origin, Reason: ReasonMissingEntry}
	}

	var info Info
	if err := guard(func() {
		info = c.Algorithm.Info()
		d = newDescriptor(c.Algorithm, c.Origin)
	}); err != nil {
		return d, false, &PluginLoadError{Origin: c.Origin, Key: info.Key, Reason: ReasonLoadFault, Err: err}
	}

	if missing := missingFields(info); len(missing) > 0 {
		return d, false, &PluginLoadError{
			Origin: c.Origin,
			Key:    info.Key,
			Reason: ReasonMissingMetadata,
			Err:    fmt.Errorf("empty %s", strings.Join(missing, ", ")),
		}
	}
	if err := ValidateKey(info.Key); err != nil {
		return d, false, &PluginLoadError{Origin: c.Origin, Key: info.Key, Reason: ReasonInvalidKey, Err: err}
	}
	if err := ValidateSchema(d.Parameters); err != nil {
		return d, false, &PluginLoadError{Origin: c.Origin, Key: info.Key, Reason: ReasonInvalidSchema, Err: err}
	}
	return d, info.Hidden, nil
}

// guard runs fn and converts a panic into an error.
func guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	fn()
	return nil
}

func missingFields(info Info) []string {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"key", info.Key},
		{"name", info.Name},
		{"description", info.Description},
		{"author", info.Author},
		{"version", info.Version},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// ValidateKey checks that key only uses lowercase letters, digits, '-' and '_'.
func ValidateKey(key string) error {
	if key == "" {
		return errors.New("empty key")
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("key %q contains %q", key, r)
		}
	}
	return nil
}

// Registry publishes snapshots of the algorithms found in its sources.
//
// Reads never block: they load the current snapshot atomically. Rescan
// builds a complete snapshot before swapping it in, so renders in flight
// keep a consistent view.
type Registry struct {
	sources []Source
	snap    atomic.Pointer[Snapshot]
	scanMu  sync.Mutex
}

// NewRegistry creates a registry over the given sources and scans them.
func NewRegistry(sources ...Source) *Registry {
	r := &Registry{sources: slices.Clone(sources)}
	r.Rescan()
	return r
}

// DefaultRegistry creates a registry over the built-in algorithms.
func DefaultRegistry() *Registry {
	return NewRegistry(Builtin())
}

// Rescan re-reads every source and publishes the new snapshot.
func (r *Registry) Rescan() *Snapshot {
	r.scanMu.Lock()
	defer r.scanMu.Unlock()

	snap := Scan(r.sources...)
	r.snap.Store(snap)
	return snap
}

// Snapshot returns the current snapshot.
func (r *Registry) Snapshot() *Snapshot { return r.snap.Load() }

// List returns the current descriptors sorted by key.
func (r *Registry) List() []Descriptor { return r.Snapshot().List() }

// Get returns the descriptor for key or a *NotFoundError.
func (r *Registry) Get(key string) (Descriptor, error) { return r.Snapshot().Get(key) }

// Skipped returns the skips recorded by the last scan.
func (r *Registry) Skipped() []*PluginLoadError { return r.Snapshot().Skipped() }
