// Package loader reads requirement, user story, and test manifest files.
// Requirement and story documents are JSON mappings from id to record; a
// manifest is a JSON document listing suites and test cases declared by a
// run. Loads are fail-fast: one bad record rejects the whole file so the
// store is never partially populated.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/hargabyte/trq/internal/schema"
)

// LoadRequirements reads and validates a requirements document. Records are
// returned in id order; a record's id field defaults to its document key.
func LoadRequirements(path string) ([]*schema.Requirement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &RequirementsLoadError{Path: path, Err: err}
	}

	byID := make(map[string]*schema.Requirement)
	if err := json.Unmarshal(data, &byID); err != nil {
		return nil, &RequirementsLoadError{Path: path, Err: err}
	}

	reqs := make([]*schema.Requirement, 0, len(byID))
	for id, req := range byID {
		if req == nil {
			return nil, &RequirementsLoadError{Path: path, Err: fmt.Errorf("requirement %q: null record", id)}
		}
		if req.ID == "" {
			req.ID = id
		}
		if !schema.ValidateRequirement(req) {
			return nil, &RequirementsLoadError{Path: path, Err: fmt.Errorf("requirement %q: failed validation", id)}
		}
		reqs = append(reqs, req)
	}
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].ID < reqs[j].ID })
	return reqs, nil
}

// LoadUserStories reads and validates a user stories document.
func LoadUserStories(path string) ([]*schema.UserStory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &UserStoriesLoadError{Path: path, Err: err}
	}

	byID := make(map[string]*schema.UserStory)
	if err := json.Unmarshal(data, &byID); err != nil {
		return nil, &UserStoriesLoadError{Path: path, Err: err}
	}

	stories := make([]*schema.UserStory, 0, len(byID))
	for id, us := range byID {
		if us == nil {
			return nil, &UserStoriesLoadError{Path: path, Err: fmt.Errorf("user story %q: null record", id)}
		}
		if us.ID == "" {
			us.ID = id
		}
		if !schema.ValidateUserStory(us) {
			return nil, &UserStoriesLoadError{Path: path, Err: fmt.Errorf("user story %q: failed validation", id)}
		}
		stories = append(stories, us)
	}
	sort.Slice(stories, func(i, j int) bool { return stories[i].ID < stories[j].ID })
	return stories, nil
}

// Manifest is what a test run declares: the suites it ran and the test
// cases it registered, in declaration order.
type Manifest struct {
	Suites    []*schema.Suite    `json:"suites,omitempty"`
	TestCases []*schema.TestCase `json:"test_cases"`
}

// LoadManifest reads a test manifest document. Test cases are not validated
// here: referential validation needs the populated store, so it happens as
// each case is registered with the tracker.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ManifestLoadError{Path: path, Err: err}
	}

	m := &Manifest{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, &ManifestLoadError{Path: path, Err: err}
	}
	return m, nil
}
