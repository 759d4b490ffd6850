package director

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// WriteScript writes a script to a YAML file, or JSON when the path ends in .json
func WriteScript(script *TheaterScript, path string) error {
	var data []byte
	var err error
	if isJSON(path) {
		data, err = json.MarshalIndent(script, "", "  ")
	} else {
		data, err = yaml.Marshal(script)
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadScript reads a script written by WriteScript
func ReadScript(path string) (*TheaterScript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var script TheaterScript
	if isJSON(path) {
		err = json.Unmarshal(data, &script)
	} else {
		err = yaml.Unmarshal(data, &script)
	}
	if err != nil {
		return nil, err
	}

	return &script, nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
