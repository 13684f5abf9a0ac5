package report

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestGenerateJSONAndYAML(t *testing.T) {
	tr := buildTestTracker(t)
	data := Build(tr, "0.1.0")
	outDir := t.TempDir()

	gen := NewGenerator(outDir, []string{"json", "yaml"})
	if err := gen.Generate(data); err != nil {
		t.Fatalf("generate: %v", err)
	}

	jsonBytes, err := os.ReadFile(filepath.Join(outDir, FileJSON))
	if err != nil {
		t.Fatalf("read json artifact: %v", err)
	}
	var fromJSON Data
	if err := json.Unmarshal(jsonBytes, &fromJSON); err != nil {
		t.Fatalf("parse json artifact: %v", err)
	}
	if fromJSON.Summary.TotalRequirements != 2 {
		t.Errorf("json TotalRequirements = %d, want 2", fromJSON.Summary.TotalRequirements)
	}
	if fromJSON.Report.Tool != "trq" {
		t.Errorf("json tool = %q, want trq", fromJSON.Report.Tool)
	}

	yamlBytes, err := os.ReadFile(filepath.Join(outDir, FileYAML))
	if err != nil {
		t.Fatalf("read yaml artifact: %v", err)
	}
	var fromYAML map[string]interface{}
	if err := yaml.Unmarshal(yamlBytes, &fromYAML); err != nil {
		t.Fatalf("parse yaml artifact: %v", err)
	}
	if _, ok := fromYAML["traceability_matrix"]; !ok {
		t.Error("yaml artifact missing traceability_matrix section")
	}
}

func TestGenerateHTML(t *testing.T) {
	tr := buildTestTracker(t)
	data := Build(tr, "0.1.0")
	outDir := t.TempDir()

	gen := NewGenerator(outDir, []string{"html"})
	if err := gen.Generate(data); err != nil {
		t.Fatalf("generate: %v", err)
	}

	htmlBytes, err := os.ReadFile(filepath.Join(outDir, FileHTML))
	if err != nil {
		t.Fatalf("read html artifact: %v", err)
	}
	html := string(htmlBytes)

	for _, want := range []string{"<html", "REQ-001", "TC-001", "US-001"} {
		if !strings.Contains(html, want) {
			t.Errorf("html artifact missing %q", want)
		}
	}
}

func TestGenerateSQLite(t *testing.T) {
	tr := buildTestTracker(t)
	data := Build(tr, "0.1.0")
	outDir := t.TempDir()

	gen := NewGenerator(outDir, []string{"sqlite"})
	if err := gen.Generate(data); err != nil {
		t.Fatalf("generate: %v", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(outDir, FileSQLite))
	if err != nil {
		t.Fatalf("open artifact: %v", err)
	}
	defer db.Close()

	var reqCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM requirements").Scan(&reqCount); err != nil {
		t.Fatalf("query requirements: %v", err)
	}
	if reqCount != 2 {
		t.Errorf("requirements rows = %d, want 2", reqCount)
	}

	var covered int
	err = db.QueryRow("SELECT covered FROM requirements WHERE id = ?", "REQ-001").Scan(&covered)
	if err != nil {
		t.Fatalf("query REQ-001: %v", err)
	}
	if covered != 1 {
		t.Errorf("REQ-001 covered = %d, want 1", covered)
	}

	var linkCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM requirement_coverage").Scan(&linkCount); err != nil {
		t.Fatalf("query coverage links: %v", err)
	}
	if linkCount != 1 {
		t.Errorf("requirement_coverage rows = %d, want 1", linkCount)
	}

	var gapKind string
	err = db.QueryRow("SELECT kind FROM critical_gaps WHERE requirement_id = ?", "REQ-002").Scan(&gapKind)
	if err != nil {
		t.Fatalf("query gaps: %v", err)
	}
	if gapKind != "untested_security_requirement" {
		t.Errorf("gap kind = %q, want untested_security_requirement", gapKind)
	}
}

func TestGenerateSQLiteOverwritesPrior(t *testing.T) {
	tr := buildTestTracker(t)
	data := Build(tr, "0.1.0")
	outDir := t.TempDir()

	gen := NewGenerator(outDir, []string{"sqlite"})
	if err := gen.Generate(data); err != nil {
		t.Fatalf("first generate: %v", err)
	}
	if err := gen.Generate(data); err != nil {
		t.Fatalf("second generate: %v", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(outDir, FileSQLite))
	if err != nil {
		t.Fatalf("open artifact: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM test_cases").Scan(&count); err != nil {
		t.Fatalf("query: %v", err)
	}
	if count != 1 {
		t.Errorf("test_cases rows = %d after regeneration, want 1", count)
	}
}

func TestGenerateUnknownFormat(t *testing.T) {
	tr := buildTestTracker(t)
	data := Build(tr, "0.1.0")

	gen := NewGenerator(t.TempDir(), []string{"pdf"})
	err := gen.Generate(data)

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("got %v, want GenerationError", err)
	}
	if genErr.Code() != CodeReportGeneration {
		t.Errorf("code = %q, want %q", genErr.Code(), CodeReportGeneration)
	}
}

func TestGenerateUnwritableDir(t *testing.T) {
	tr := buildTestTracker(t)
	data := Build(tr, "0.1.0")

	// A file where the output directory should be.
	base := t.TempDir()
	blocked := filepath.Join(base, "out")
	if err := os.WriteFile(blocked, []byte("x"), 0644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	gen := NewGenerator(blocked, []string{"json"})
	err := gen.Generate(data)

	var initErr *InitializationError
	if !errors.As(err, &initErr) {
		t.Fatalf("got %v, want InitializationError", err)
	}
	if initErr.Code() != CodeInitialization {
		t.Errorf("code = %q, want %q", initErr.Code(), CodeInitialization)
	}
}
