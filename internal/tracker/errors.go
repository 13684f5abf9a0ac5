package tracker

import "fmt"

// Stable machine-readable error codes carried by tracker errors.
const (
	CodeInvalidTestCase   = "INVALID_TEST_CASE"
	CodeDuplicateTestCase = "DUPLICATE_TEST_CASE"
	CodeInvalidSuite      = "INVALID_SUITE"
	CodeSuiteNotFound     = "SUITE_NOT_FOUND"
)

// InvalidTestCaseError is returned when a candidate test case fails schema
// or referential validation. The candidate is rejected and the store is
// unchanged.
type InvalidTestCaseError struct {
	ID string
}

// Error implements the error interface.
func (e *InvalidTestCaseError) Error() string {
	return fmt.Sprintf("invalid test case %q: schema or reference validation failed", e.ID)
}

// Code returns the stable error code.
func (e *InvalidTestCaseError) Code() string {
	return CodeInvalidTestCase
}

// DuplicateTestCaseError is returned when a test case id was already
// registered in this run.
type DuplicateTestCaseError struct {
	ID string
}

// Error implements the error interface.
func (e *DuplicateTestCaseError) Error() string {
	return fmt.Sprintf("test case %q already registered", e.ID)
}

// Code returns the stable error code.
func (e *DuplicateTestCaseError) Code() string {
	return CodeDuplicateTestCase
}

// InvalidSuiteError is returned when a suite record lacks an id or carries
// an out-of-enum type or priority.
type InvalidSuiteError struct {
	ID string
}

// Error implements the error interface.
func (e *InvalidSuiteError) Error() string {
	if e.ID == "" {
		return "invalid suite: missing id"
	}
	return fmt.Sprintf("invalid suite %q", e.ID)
}

// Code returns the stable error code.
func (e *InvalidSuiteError) Code() string {
	return CodeInvalidSuite
}

// SuiteNotFoundError is returned when suite propagation is requested for an
// unknown suite id.
type SuiteNotFoundError struct {
	ID string
}

// Error implements the error interface.
func (e *SuiteNotFoundError) Error() string {
	return fmt.Sprintf("suite %q not found", e.ID)
}

// Code returns the stable error code.
func (e *SuiteNotFoundError) Code() string {
	return CodeSuiteNotFound
}
