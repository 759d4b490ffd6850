package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/beat2scene/internal/stage"
)

// VoiceProfile describes how a character's lines are voiced.
type VoiceProfile struct {
	Voice string  `json:"voice" yaml:"voice"`
	Pitch float64 `json:"pitch" yaml:"pitch"`
	Rate  float64 `json:"rate" yaml:"rate"`
}

// Character is a directory entry.
type Character struct {
	ID     string        `json:"id" yaml:"id"`
	Name   string        `json:"name" yaml:"name"`
	Gender stage.Gender  `json:"gender" yaml:"gender"`
	Voice  *VoiceProfile `json:"voice,omitempty" yaml:"voice,omitempty"`
}

// Directory resolves character ids. Implementations must be safe for
// concurrent reads.
type Directory interface {
	Lookup(id string) (Character, bool)
}

// Resolver maps symbolic resource names to opaque handles.
type Resolver interface {
	Lookup(name string) (string, bool)
}

// MapDirectory is an in-memory Directory.
type MapDirectory map[string]Character

func NewMapDirectory(chars ...Character) MapDirectory {
	d := make(MapDirectory, len(chars))
	for _, c := range chars {
		d[c.ID] = c
	}
	return d
}

func (d MapDirectory) Lookup(id string) (Character, bool) {
	c, ok := d[id]
	return c, ok
}

// MapResolver is an in-memory Resolver.
type MapResolver map[string]string

func (r MapResolver) Lookup(name string) (string, bool) {
	h, ok := r[name]
	return h, ok
}

// Catalog is the on-disk form of the directory and the resource table.
type Catalog struct {
	Characters []Character       `yaml:"characters"`
	Resources  map[string]string `yaml:"resources"`
}

func (c *Catalog) Directory() MapDirectory {
	return NewMapDirectory(c.Characters...)
}

func (c *Catalog) Resolver() MapResolver {
	return MapResolver(c.Resources)
}

// ReadCatalog reads a catalog from a YAML file.
func ReadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	seen := make(map[string]bool, len(c.Characters))
	for i, ch := range c.Characters {
		if ch.ID == "" {
			return nil, fmt.Errorf("catalog %s: character %d has no id", path, i)
		}
		if seen[ch.ID] {
			return nil, fmt.Errorf("catalog %s: duplicate character id %q", path, ch.ID)
		}
		seen[ch.ID] = true
	}

	return &c, nil
}
