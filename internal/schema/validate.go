package schema

// ReferenceChecker reports whether a requirement or user story id exists.
// The entity store satisfies this interface.
type ReferenceChecker interface {
	HasRequirement(id string) bool
	HasUserStory(id string) bool
}

// ValidateRequirement reports whether a candidate requirement record is
// acceptable: id, title, type, and priority must be present, and type and
// priority must be members of their enums. Pure predicate, no side effects.
func ValidateRequirement(r *Requirement) bool {
	if r == nil {
		return false
	}
	if r.ID == "" || r.Title == "" {
		return false
	}
	return r.Type.Valid() && r.Priority.Valid()
}

// ValidateUserStory reports whether a candidate user story record is
// acceptable: id and title must be present. Linked requirement ids are not
// resolved here; stories may reference requirements loaded later.
func ValidateUserStory(s *UserStory) bool {
	if s == nil {
		return false
	}
	return s.ID != "" && s.Title != ""
}

// ValidateTestCase reports whether a candidate test case is acceptable
// against the current store contents: id, title, type, and priority must be
// present and within their enums, and every referenced requirement and user
// story id must already exist. Absent reference lists are valid; no linkage
// is required. Pure predicate of its inputs.
func ValidateTestCase(tc *TestCase, refs ReferenceChecker) bool {
	if tc == nil {
		return false
	}
	if tc.ID == "" || tc.Title == "" {
		return false
	}
	if !tc.Type.Valid() || !tc.Priority.Valid() {
		return false
	}
	if !tc.Status.Valid() {
		return false
	}
	for _, id := range tc.Requirements {
		if !refs.HasRequirement(id) {
			return false
		}
	}
	for _, id := range tc.UserStories {
		if !refs.HasUserStory(id) {
			return false
		}
	}
	return true
}

// ValidateSuite reports whether a candidate suite record is acceptable.
// Suites have a looser schema than test cases: only the id is required,
// but type and priority must be within their enums when present.
func ValidateSuite(s *Suite) bool {
	if s == nil || s.ID == "" {
		return false
	}
	if s.Type != "" && !s.Type.Valid() {
		return false
	}
	if s.Priority != "" && !s.Priority.Valid() {
		return false
	}
	return true
}
