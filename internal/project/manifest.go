package project

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest lists program files with the language to state in each Aim.
// It stands in for several upload rounds made with different selections.
type Manifest struct {
	Entries []ManifestEntry `yaml:"entries"`
}

// ManifestEntry is one file in a manifest. An empty Language means the
// caller's default.
type ManifestEntry struct {
	Path     string `yaml:"path"`
	Language string `yaml:"language,omitempty"`
}

// LoadManifest reads a YAML manifest. Relative entry paths are resolved
// against the manifest's directory and every language is validated.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: manifest %s: %w", ErrRead, path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	base := filepath.Dir(path)
	for i := range m.Entries {
		e := &m.Entries[i]
		if e.Path == "" {
			return nil, fmt.Errorf("manifest %s: entry %d has no path", path, i+1)
		}
		if !filepath.IsAbs(e.Path) {
			e.Path = filepath.Join(base, e.Path)
		}
		if e.Language != "" {
			if _, err := ParseLanguage(e.Language); err != nil {
				return nil, fmt.Errorf("manifest %s: entry %d: %w", path, i+1, err)
			}
		}
	}
	return &m, nil
}

// AddManifest adds every manifest entry in order, stopping at the first
// read failure.
func (c *Collector) AddManifest(m *Manifest, defaultLang Language) ([]Entry, error) {
	added := make([]Entry, 0, len(m.Entries))
	for _, me := range m.Entries {
		lang := defaultLang
		if me.Language != "" {
			parsed, err := ParseLanguage(me.Language)
			if err != nil {
				return added, err
			}
			lang = parsed
		}
		e, err := c.AddFile(me.Path, lang)
		if err != nil {
			return added, err
		}
		added = append(added, e)
	}
	return added, nil
}
