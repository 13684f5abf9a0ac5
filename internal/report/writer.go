package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Artifact file names per format.
const (
	FileJSON   = "traceability.json"
	FileYAML   = "traceability.yaml"
	FileHTML   = "traceability.html"
	FileSQLite = "traceability.db"
)

// Generator writes report artifacts for one run.
type Generator struct {
	outputDir string
	formats   []string
}

// NewGenerator creates a generator writing the given formats into outputDir.
// Valid formats are json, yaml, html, and sqlite.
func NewGenerator(outputDir string, formats []string) *Generator {
	return &Generator{outputDir: outputDir, formats: formats}
}

// Generate writes one artifact per configured format. The output directory
// is created if absent; a failure to set it up is an InitializationError,
// and any write failure is a GenerationError naming the artifact.
func (g *Generator) Generate(data *Data) error {
	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return &InitializationError{Path: g.outputDir, Err: err}
	}

	for _, format := range g.formats {
		var err error
		switch format {
		case "json":
			err = g.writeJSON(data)
		case "yaml":
			err = g.writeYAML(data)
		case "html":
			err = g.writeHTML(data)
		case "sqlite":
			err = g.writeSQLite(data)
		default:
			err = &GenerationError{Artifact: format, Err: errUnknownFormat(format)}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

type errUnknownFormat string

func (e errUnknownFormat) Error() string {
	return "unknown report format: " + string(e)
}

func (g *Generator) writeJSON(data *Data) error {
	path := filepath.Join(g.outputDir, FileJSON)

	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return &GenerationError{Artifact: path, Err: err}
	}
	if err := os.WriteFile(path, append(encoded, '\n'), 0644); err != nil {
		return &GenerationError{Artifact: path, Err: err}
	}
	return nil
}

func (g *Generator) writeYAML(data *Data) error {
	path := filepath.Join(g.outputDir, FileYAML)

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		encoder.Close()
		return &GenerationError{Artifact: path, Err: err}
	}
	if err := encoder.Close(); err != nil {
		return &GenerationError{Artifact: path, Err: err}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return &GenerationError{Artifact: path, Err: err}
	}
	return nil
}
