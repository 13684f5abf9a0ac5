// Package report assembles the end-of-run traceability report payload and
// renders it to the configured artifacts: JSON, YAML, HTML, and a queryable
// SQLite database. Report generation reads the tracker exactly once, after
// all mutation is complete; write failures are reported, not retried.
package report

import (
	"time"

	"github.com/hargabyte/trq/internal/coverage"
	"github.com/hargabyte/trq/internal/schema"
)

// Header contains the common metadata at the top of every report.
type Header struct {
	// Tool identifies the generator.
	Tool string `json:"tool" yaml:"tool"`

	// Version is the generator version.
	Version string `json:"version" yaml:"version"`

	// GeneratedAt is the timestamp when the report was generated.
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
}

// CoverageData groups the per-dimension coverage breakdowns.
type CoverageData struct {
	// ByRequirementType breaks coverage down by requirement type.
	ByRequirementType map[schema.RequirementType]coverage.TypeCoverage `json:"by_requirement_type" yaml:"by_requirement_type"`

	// ByTestType breaks accepted test cases down by test type.
	ByTestType map[schema.TestType]coverage.TestTypeCoverage `json:"by_test_type" yaml:"by_test_type"`

	// ByPriority breaks requirement coverage down by priority level.
	ByPriority map[schema.RequirementPriority]coverage.PriorityCoverage `json:"by_priority" yaml:"by_priority"`
}

// EntityCoverage is the coverage sub-object embedded in detail records.
type EntityCoverage struct {
	Tests   []string `json:"tests" yaml:"tests"`
	Count   int      `json:"count" yaml:"count"`
	Covered bool     `json:"covered" yaml:"covered"`
}

// RequirementDetail is a requirement record with its coverage attached.
type RequirementDetail struct {
	*schema.Requirement `yaml:",inline"`
	Coverage            EntityCoverage `json:"coverage" yaml:"coverage"`
}

// UserStoryDetail is a user story record with its coverage attached.
type UserStoryDetail struct {
	*schema.UserStory `yaml:",inline"`
	Coverage          EntityCoverage `json:"coverage" yaml:"coverage"`
}

// Details holds the per-entity-kind detail arrays.
type Details struct {
	Requirements []RequirementDetail `json:"requirements" yaml:"requirements"`
	UserStories  []UserStoryDetail   `json:"user_stories" yaml:"user_stories"`
	TestCases    []*schema.TestCase  `json:"test_cases" yaml:"test_cases"`
	Suites       []*schema.Suite     `json:"suites" yaml:"suites"`
}

// Data is the complete traceability report payload. It is a plain
// aggregated-data structure: renderers serialize it without recomputing
// anything.
type Data struct {
	Report             Header             `json:"report" yaml:"report"`
	Summary            coverage.Summary   `json:"summary" yaml:"summary"`
	Coverage           CoverageData       `json:"coverage" yaml:"coverage"`
	TraceabilityMatrix coverage.Matrix    `json:"traceability_matrix" yaml:"traceability_matrix"`
	Uncovered          coverage.Uncovered `json:"uncovered" yaml:"uncovered"`
	CriticalGaps       []coverage.Gap     `json:"critical_gaps" yaml:"critical_gaps"`
	Details            Details            `json:"details" yaml:"details"`
}
