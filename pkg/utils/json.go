package utils

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/afero"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func SaveJSONToFile(fs afero.Fs, data any, path string) error {
	jsonData, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return fmt.Errorf("error marshalling JSON: %w", err)
	}

	if err := WriteFile(fs, path, jsonData); err != nil {
		return fmt.Errorf("error writing JSON data: %w", err)
	}

	return nil
}

// MarshalIndent is json.MarshalIndent with the package's JSON config.
func MarshalIndent(data any) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}
