package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gogpu/pointillism"
)

// Source serves the presets found in one directory. Every *.yaml and
// *.yml file is one candidate; subdirectories are ignored.
type Source struct {
	dir  string
	base pointillism.Source
}

// Dir returns a source over the manifests in dir. Base keys are looked up
// in base, typically pointillism.Builtin().
func Dir(dir string, base pointillism.Source) *Source {
	return &Source{dir: dir, base: base}
}

// Path returns the watched directory.
func (s *Source) Path() string { return s.dir }

// Name implements pointillism.Source.
func (s *Source) Name() string { return "manifest:" + s.dir }

// Candidates implements pointillism.Source. The directory is read fresh on
// every call, so a registry rescan picks up edits.
func (s *Source) Candidates() ([]pointillism.Candidate, error) {
	files, err := manifestFiles(s.dir)
	if err != nil {
		return nil, err
	}

	bases, err := s.bases()
	if err != nil {
		return nil, fmt.Errorf("manifest: base source: %w", err)
	}

	out := make([]pointillism.Candidate, 0, len(files))
	for _, path := range files {
		c := pointillism.Candidate{Origin: path}
		c.Algorithm, c.Err = load(path, bases)
		out = append(out, c)
	}
	return out, nil
}

func (s *Source) bases() (map[string]pointillism.Algorithm, error) {
	bases := make(map[string]pointillism.Algorithm)
	if s.base == nil {
		return bases, nil
	}
	cands, err := s.base.Candidates()
	if err != nil {
		return nil, err
	}
	for _, c := range cands {
		if c.Err != nil || c.Algorithm == nil {
			continue
		}
		key := c.Algorithm.Info().Key
		if _, dup := bases[key]; !dup {
			bases[key] = c.Algorithm
		}
	}
	return bases, nil
}

// load reads one manifest file and binds it to its base.
func load(path string, bases map[string]pointillism.Algorithm) (pointillism.Algorithm, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Parse(data)
	if err != nil {
		return nil, err
	}
	base, ok := bases[m.Base]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownBase, m.Base)
	}
	return NewPreset(m, base)
}

// manifestFiles lists the manifest files of dir in name order.
func manifestFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("manifest: read dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !isManifest(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	slices.Sort(files)
	return files, nil
}

func isManifest(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
