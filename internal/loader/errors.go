package loader

import "fmt"

// Stable machine-readable error codes carried by loader errors.
const (
	CodeRequirementsLoad = "REQUIREMENTS_LOAD_ERROR"
	CodeUserStoriesLoad  = "USER_STORIES_LOAD_ERROR"
	CodeManifestLoad     = "MANIFEST_LOAD_ERROR"
)

// RequirementsLoadError is returned when a requirements document is missing,
// malformed, or contains a record that fails validation.
type RequirementsLoadError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *RequirementsLoadError) Error() string {
	return fmt.Sprintf("load requirements %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *RequirementsLoadError) Unwrap() error {
	return e.Err
}

// Code returns the stable error code.
func (e *RequirementsLoadError) Code() string {
	return CodeRequirementsLoad
}

// UserStoriesLoadError is returned when a user stories document is missing,
// malformed, or contains a record that fails validation.
type UserStoriesLoadError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *UserStoriesLoadError) Error() string {
	return fmt.Sprintf("load user stories %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *UserStoriesLoadError) Unwrap() error {
	return e.Err
}

// Code returns the stable error code.
func (e *UserStoriesLoadError) Code() string {
	return CodeUserStoriesLoad
}

// ManifestLoadError is returned when a test manifest document is missing or
// malformed.
type ManifestLoadError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ManifestLoadError) Error() string {
	return fmt.Sprintf("load manifest %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ManifestLoadError) Unwrap() error {
	return e.Err
}

// Code returns the stable error code.
func (e *ManifestLoadError) Code() string {
	return CodeManifestLoad
}
