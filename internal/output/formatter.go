package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Write serializes v to w in the given format.
func Write(w io.Writer, v interface{}, format Format) error {
	switch format {
	case FormatJSON:
		encoded, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(encoded))
		return err
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			encoder.Close()
			return fmt.Errorf("marshal yaml: %w", err)
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unknown format: %q", format)
	}
}

// Marshal serializes v to a string in the given format.
func Marshal(v interface{}, format Format) (string, error) {
	switch format {
	case FormatJSON:
		encoded, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal json: %w", err)
		}
		return string(encoded), nil
	case FormatYAML:
		encoded, err := yaml.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("marshal yaml: %w", err)
		}
		return string(encoded), nil
	default:
		return "", fmt.Errorf("unknown format: %q", format)
	}
}
