package report

import "fmt"

// Stable machine-readable error codes carried by report errors.
const (
	CodeInitialization   = "INITIALIZATION_ERROR"
	CodeReportGeneration = "REPORT_GENERATION_ERROR"
)

// InitializationError is returned when the output location cannot be set up.
type InitializationError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *InitializationError) Error() string {
	return fmt.Sprintf("initialize output %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *InitializationError) Unwrap() error {
	return e.Err
}

// Code returns the stable error code.
func (e *InitializationError) Code() string {
	return CodeInitialization
}

// GenerationError wraps an I/O failure while writing a report artifact.
type GenerationError struct {
	Artifact string
	Err      error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate report %s: %v", e.Artifact, e.Err)
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Code returns the stable error code.
func (e *GenerationError) Code() string {
	return CodeReportGeneration
}
