// Package schema defines the entity types tracked during a test run
// (requirements, user stories, test cases, suites), their enumerated
// field values, and the pure validation predicates used to accept or
// reject candidate records.
package schema

import (
	"fmt"
	"strings"
)

// RequirementType classifies what kind of capability a requirement describes.
type RequirementType string

const (
	// RequirementFunctional covers user-visible behavior.
	RequirementFunctional RequirementType = "functional"
	// RequirementSecurity covers security constraints and controls.
	RequirementSecurity RequirementType = "security"
	// RequirementPerformance covers latency, throughput, and capacity targets.
	RequirementPerformance RequirementType = "performance"
	// RequirementAccessibility covers accessibility standards compliance.
	RequirementAccessibility RequirementType = "accessibility"
	// RequirementCompliance covers regulatory and policy obligations.
	RequirementCompliance RequirementType = "compliance"
	// RequirementTechnical covers internal technical constraints.
	RequirementTechnical RequirementType = "technical"
	// RequirementInfrastructure covers deployment and platform constraints.
	RequirementInfrastructure RequirementType = "infrastructure"
)

// RequirementTypes lists all valid requirement types in display order.
var RequirementTypes = []RequirementType{
	RequirementFunctional,
	RequirementSecurity,
	RequirementPerformance,
	RequirementAccessibility,
	RequirementCompliance,
	RequirementTechnical,
	RequirementInfrastructure,
}

// String returns the string representation of the requirement type.
func (t RequirementType) String() string {
	return string(t)
}

// Valid reports whether t is a known requirement type.
func (t RequirementType) Valid() bool {
	switch t {
	case RequirementFunctional, RequirementSecurity, RequirementPerformance,
		RequirementAccessibility, RequirementCompliance, RequirementTechnical,
		RequirementInfrastructure:
		return true
	default:
		return false
	}
}

// ParseRequirementType parses a string into a RequirementType.
// Returns an error for values outside the enum.
func ParseRequirementType(s string) (RequirementType, error) {
	t := RequirementType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("invalid requirement type: %q", s)
	}
	return t, nil
}

// RequirementPriority ranks how critical a requirement is.
type RequirementPriority string

const (
	// PriorityP0Critical must be satisfied before release.
	PriorityP0Critical RequirementPriority = "p0-critical"
	// PriorityP1High should be satisfied before release.
	PriorityP1High RequirementPriority = "p1-high"
	// PriorityP2Medium is planned but can slip.
	PriorityP2Medium RequirementPriority = "p2-medium"
	// PriorityP3Low is desirable but optional.
	PriorityP3Low RequirementPriority = "p3-low"
)

// RequirementPriorities lists all valid requirement priorities, highest first.
var RequirementPriorities = []RequirementPriority{
	PriorityP0Critical,
	PriorityP1High,
	PriorityP2Medium,
	PriorityP3Low,
}

// String returns the string representation of the requirement priority.
func (p RequirementPriority) String() string {
	return string(p)
}

// Valid reports whether p is a known requirement priority.
func (p RequirementPriority) Valid() bool {
	switch p {
	case PriorityP0Critical, PriorityP1High, PriorityP2Medium, PriorityP3Low:
		return true
	default:
		return false
	}
}

// ParseRequirementPriority parses a string into a RequirementPriority.
func ParseRequirementPriority(s string) (RequirementPriority, error) {
	p := RequirementPriority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("invalid requirement priority: %q", s)
	}
	return p, nil
}

// TestType classifies the level or flavor of a test case.
type TestType string

const (
	// TestUnit is an isolated unit test.
	TestUnit TestType = "unit"
	// TestIntegration exercises multiple components together.
	TestIntegration TestType = "integration"
	// TestE2E drives the system end to end.
	TestE2E TestType = "e2e"
	// TestAPI exercises an external API surface.
	TestAPI TestType = "api"
	// TestPerformance measures latency or throughput.
	TestPerformance TestType = "performance"
	// TestSecurity probes security controls.
	TestSecurity TestType = "security"
	// TestAccessibility checks accessibility compliance.
	TestAccessibility TestType = "accessibility"
	// TestSmoke is a fast sanity check.
	TestSmoke TestType = "smoke"
)

// TestTypes lists all valid test types in display order.
var TestTypes = []TestType{
	TestUnit,
	TestIntegration,
	TestE2E,
	TestAPI,
	TestPerformance,
	TestSecurity,
	TestAccessibility,
	TestSmoke,
}

// String returns the string representation of the test type.
func (t TestType) String() string {
	return string(t)
}

// Valid reports whether t is a known test type.
func (t TestType) Valid() bool {
	switch t {
	case TestUnit, TestIntegration, TestE2E, TestAPI,
		TestPerformance, TestSecurity, TestAccessibility, TestSmoke:
		return true
	default:
		return false
	}
}

// ParseTestType parses a string into a TestType.
func ParseTestType(s string) (TestType, error) {
	t := TestType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("invalid test type: %q", s)
	}
	return t, nil
}

// TestPriority ranks how important it is to run a test case.
type TestPriority string

const (
	// TestPriorityMustRun tests run in every cycle.
	TestPriorityMustRun TestPriority = "p1-must-run"
	// TestPriorityHighValue tests run in most cycles.
	TestPriorityHighValue TestPriority = "p2-high-value"
	// TestPriorityNiceToHave tests run when time permits.
	TestPriorityNiceToHave TestPriority = "p3-nice-to-have"
	// TestPriorityEdgeCases tests cover rare edge conditions.
	TestPriorityEdgeCases TestPriority = "p4-edge-cases"
)

// TestPriorities lists all valid test priorities, highest first.
var TestPriorities = []TestPriority{
	TestPriorityMustRun,
	TestPriorityHighValue,
	TestPriorityNiceToHave,
	TestPriorityEdgeCases,
}

// String returns the string representation of the test priority.
func (p TestPriority) String() string {
	return string(p)
}

// Valid reports whether p is a known test priority.
func (p TestPriority) Valid() bool {
	switch p {
	case TestPriorityMustRun, TestPriorityHighValue,
		TestPriorityNiceToHave, TestPriorityEdgeCases:
		return true
	default:
		return false
	}
}

// ParseTestPriority parses a string into a TestPriority.
func ParseTestPriority(s string) (TestPriority, error) {
	p := TestPriority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("invalid test priority: %q", s)
	}
	return p, nil
}

// ExecutionStatus is the recorded outcome of a test case execution.
type ExecutionStatus string

const (
	// StatusPassed means the test ran and succeeded.
	StatusPassed ExecutionStatus = "passed"
	// StatusFailed means the test ran and failed.
	StatusFailed ExecutionStatus = "failed"
	// StatusSkipped means the test was not executed.
	StatusSkipped ExecutionStatus = "skipped"
)

// String returns the string representation of the execution status.
func (s ExecutionStatus) String() string {
	return string(s)
}

// Valid reports whether s is a known execution status.
// The empty status is valid: it means the outcome was never recorded.
func (s ExecutionStatus) Valid() bool {
	switch s {
	case "", StatusPassed, StatusFailed, StatusSkipped:
		return true
	default:
		return false
	}
}
