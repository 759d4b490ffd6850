package wire

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/beat2scene/internal/beat"
)

// Kind tags the payload of a document.
type Kind string

const (
	KindBeat    Kind = "beat"
	KindLayered Kind = "layered"
)

type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// FormatOf picks the format from a file extension. Anything that is not
// .json is read as YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Collection is a decoded document: *BeatCollection or *LayeredCollection.
type Collection interface {
	Kind() Kind
	Len() int
}

type BeatCollection struct {
	Beats []beat.Beat
}

func (*BeatCollection) Kind() Kind { return KindBeat }
func (c *BeatCollection) Len() int { return len(c.Beats) }

type LayeredCollection struct {
	Beats []beat.LayeredBeat
}

func (*LayeredCollection) Kind() Kind { return KindLayered }
func (c *LayeredCollection) Len() int { return len(c.Beats) }

// BeatDocument is the serialized form of a BeatCollection.
type BeatDocument struct {
	Type  Kind        `json:"type" yaml:"type" jsonschema:"required,enum=beat"`
	Beats []beat.Beat `json:"beats" yaml:"beats" jsonschema:"required"`
}

// LayeredDocument is the serialized form of a LayeredCollection.
type LayeredDocument struct {
	Type  Kind               `json:"type" yaml:"type" jsonschema:"required,enum=layered"`
	Beats []beat.LayeredBeat `json:"beats" yaml:"beats" jsonschema:"required"`
}

type jsonEnvelope struct {
	Type  Kind            `json:"type"`
	Beats json.RawMessage `json:"beats"`
}

type yamlEnvelope struct {
	Type  Kind      `yaml:"type"`
	Beats yaml.Node `yaml:"beats"`
}

// Decode reads a tagged document. Every failure matches ErrConversionFailed.
func Decode(data []byte, format Format) (Collection, error) {
	if format == FormatJSON {
		return decodeJSON(data)
	}
	return decodeYAML(data)
}

func decodeJSON(data []byte) (Collection, error) {
	var env jsonEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, failed("malformed JSON", err)
	}
	if len(env.Beats) == 0 || string(env.Beats) == "null" {
		return nil, failed("missing beats", nil)
	}

	switch env.Type {
	case KindBeat:
		var c BeatCollection
		if err := json.Unmarshal(env.Beats, &c.Beats); err != nil {
			return nil, failed("malformed beats", err)
		}
		return checked(&c)
	case KindLayered:
		var c LayeredCollection
		if err := json.Unmarshal(env.Beats, &c.Beats); err != nil {
			return nil, failed("malformed layered beats", err)
		}
		return checked(&c)
	case "":
		return nil, failed("missing type tag", nil)
	default:
		return nil, failed(fmt.Sprintf("unknown type tag %q", env.Type), nil)
	}
}

func decodeYAML(data []byte) (Collection, error) {
	var env yamlEnvelope
	if err := yaml.Unmarshal(data, &env); err != nil {
		return nil, failed("malformed YAML", err)
	}
	if env.Beats.Kind == 0 || env.Beats.Tag == "!!null" {
		return nil, failed("missing beats", nil)
	}

	switch env.Type {
	case KindBeat:
		var c BeatCollection
		if err := env.Beats.Decode(&c.Beats); err != nil {
			return nil, failed("malformed beats", err)
		}
		return checked(&c)
	case KindLayered:
		var c LayeredCollection
		if err := env.Beats.Decode(&c.Beats); err != nil {
			return nil, failed("malformed layered beats", err)
		}
		return checked(&c)
	case "":
		return nil, failed("missing type tag", nil)
	default:
		return nil, failed(fmt.Sprintf("unknown type tag %q", env.Type), nil)
	}
}

func checked(c Collection) (Collection, error) {
	switch c := c.(type) {
	case *BeatCollection:
		for i := range c.Beats {
			if err := c.Beats[i].CheckVocabulary(); err != nil {
				return nil, failed(fmt.Sprintf("beat %d (%s)", i, c.Beats[i].ID), err)
			}
		}
	case *LayeredCollection:
		for i := range c.Beats {
			if err := c.Beats[i].CheckVocabulary(); err != nil {
				return nil, failed(fmt.Sprintf("layered beat %d (%s)", i, c.Beats[i].ID), err)
			}
		}
	}
	return c, nil
}

// Encode writes c as a tagged document.
func Encode(c Collection, format Format) ([]byte, error) {
	var doc any
	switch c := c.(type) {
	case *BeatCollection:
		doc = BeatDocument{Type: KindBeat, Beats: nonNil(c.Beats)}
	case *LayeredCollection:
		doc = LayeredDocument{Type: KindLayered, Beats: nonNil(c.Beats)}
	default:
		return nil, fmt.Errorf("unsupported collection %T", c)
	}

	if format == FormatJSON {
		return json.MarshalIndent(doc, "", "  ")
	}
	return yaml.Marshal(doc)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// ReadFile decodes the document at path, choosing the format by extension.
func ReadFile(path string) (Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data, FormatOf(path))
}
