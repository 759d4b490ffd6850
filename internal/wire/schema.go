package wire

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON Schema of a beat collection document.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}

	beats := reflector.Reflect(&BeatDocument{})
	beats.Version = ""
	beats.Title = "Beat collection"

	layered := reflector.Reflect(&LayeredDocument{})
	layered.Version = ""
	layered.Title = "Layered beat collection"

	schema := &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       "Beat document",
		Description: "Tagged collection of beats, either flattened (type=beat) or layered (type=layered).",
		OneOf:       []*jsonschema.Schema{beats, layered},
	}

	return json.MarshalIndent(schema, "", "  ")
}
