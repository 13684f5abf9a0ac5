// Package tracker provides the run-scoped coordinator that owns the entity
// store and coverage index for one test run. All mutation goes through the
// tracker; the store and index are never written by any other component.
// A mutex guards both so the tracker stays correct under parallel test
// workers, which register results concurrently in some host runners.
package tracker

import (
	"fmt"
	"sync"
	"time"

	"github.com/hargabyte/trq/internal/coverage"
	"github.com/hargabyte/trq/internal/schema"
	"github.com/hargabyte/trq/internal/store"
)

// Options configures tracker behavior.
type Options struct {
	// ValidateLinks controls whether test case requirement and story
	// references must resolve against the store. Disabling it accepts test
	// cases whose links point at entities that were never loaded.
	ValidateLinks bool
}

// DefaultOptions returns the default tracker options.
func DefaultOptions() Options {
	return Options{ValidateLinks: true}
}

// Tracker coordinates the entity store and coverage index for one run.
type Tracker struct {
	mu    sync.RWMutex
	store *store.Store
	index *coverage.Index
	opts  Options
	now   func() time.Time
}

// New creates a tracker with default options.
func New() *Tracker {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a tracker with explicit options.
func NewWithOptions(opts Options) *Tracker {
	return &Tracker{
		store: store.New(),
		index: coverage.NewIndex(),
		opts:  opts,
		now:   time.Now,
	}
}

// permissiveRefs accepts every reference. Used when link validation is off.
type permissiveRefs struct{}

func (permissiveRefs) HasRequirement(string) bool { return true }
func (permissiveRefs) HasUserStory(string) bool   { return true }

// ImportRequirements loads requirement records into the store. Every record
// is validated before any is stored: if one fails, the whole import is
// rejected and the store is left unchanged.
func (t *Tracker) ImportRequirements(reqs []*schema.Requirement) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, req := range reqs {
		if !schema.ValidateRequirement(req) {
			return fmt.Errorf("invalid requirement record %q", req.ID)
		}
	}
	for _, req := range reqs {
		t.store.PutRequirement(req)
	}
	return nil
}

// ImportUserStories loads user story records into the store, with the same
// all-or-nothing semantics as ImportRequirements.
func (t *Tracker) ImportUserStories(stories []*schema.UserStory) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, us := range stories {
		if !schema.ValidateUserStory(us) {
			return fmt.Errorf("invalid user story record %q", us.ID)
		}
	}
	for _, us := range stories {
		t.store.PutUserStory(us)
	}
	return nil
}

// AddTestCase validates and registers a test case. On success the store and
// coverage index mutate together; a rejected candidate leaves both
// untouched. Validation runs first, so an invalid candidate is reported as
// invalid even when its id is already taken; re-registering a valid id
// fails with DuplicateTestCaseError.
func (t *Tracker) AddTestCase(tc *schema.TestCase) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var refs schema.ReferenceChecker = t.store
	if !t.opts.ValidateLinks {
		refs = permissiveRefs{}
	}
	if !schema.ValidateTestCase(tc, refs) {
		id := ""
		if tc != nil {
			id = tc.ID
		}
		return &InvalidTestCaseError{ID: id}
	}

	if t.store.HasTestCase(tc.ID) {
		return &DuplicateTestCaseError{ID: tc.ID}
	}

	if tc.CreatedAt.IsZero() {
		tc.CreatedAt = t.now()
	}
	t.store.PutTestCase(tc)
	t.index.Record(tc, t.store)
	return nil
}

// AddSuite registers a suite, stamping a creation timestamp. Only the
// presence of an id is required beyond enum membership of optional fields.
func (t *Tracker) AddSuite(su *schema.Suite) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !schema.ValidateSuite(su) {
		id := ""
		if su != nil {
			id = su.ID
		}
		return &InvalidSuiteError{ID: id}
	}
	if su.CreatedAt.IsZero() {
		su.CreatedAt = t.now()
	}
	t.store.PutSuite(su)
	return nil
}

// ApplySuiteToTests merges the suite's requirements, user stories, and tags
// into every test case registered under that suite id. List fields become
// the deduplicated union with the test case's own values first and the
// suite's values appended, preserving first occurrence. Coverage recording
// re-runs for each mutated test case so the index reflects the merged links.
func (t *Tracker) ApplySuiteToTests(suiteID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	su, ok := t.store.Suite(suiteID)
	if !ok {
		return &SuiteNotFoundError{ID: suiteID}
	}

	for tc := range t.store.TestCases() {
		if tc.SuiteID != suiteID {
			continue
		}
		tc.Requirements = mergeUnique(tc.Requirements, su.Requirements)
		tc.UserStories = mergeUnique(tc.UserStories, su.UserStories)
		tc.Tags = mergeUnique(tc.Tags, su.Tags)
		t.index.Record(tc, t.store)
	}
	return nil
}

// mergeUnique appends additions to existing, dropping duplicates while
// preserving first occurrence order.
func mergeUnique(existing, additions []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(additions))
	merged := make([]string, 0, len(existing)+len(additions))
	for _, lists := range [][]string{existing, additions} {
		for _, v := range lists {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			merged = append(merged, v)
		}
	}
	return merged
}

// ValidateRequirementRef reports whether a requirement id exists. On success
// it seeds an empty coverage entry so the requirement stays enumerable in
// reports even if no test ever links to it. Never returns an error.
func (t *Tracker) ValidateRequirementRef(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.store.HasRequirement(id) {
		return false
	}
	t.index.SeedRequirement(id)
	return true
}

// ValidateStoryRef reports whether a user story id exists, seeding an empty
// coverage entry on success.
func (t *Tracker) ValidateStoryRef(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.store.HasUserStory(id) {
		return false
	}
	t.index.SeedStory(id)
	return true
}

// Summary derives the run summary.
func (t *Tracker) Summary() coverage.Summary {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return coverage.Summarize(t.store, t.index)
}

// CoverageByRequirementType derives per-requirement-type coverage.
func (t *Tracker) CoverageByRequirementType() map[schema.RequirementType]coverage.TypeCoverage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return coverage.ByRequirementType(t.store, t.index)
}

// CoverageByTestType derives per-test-type coverage.
func (t *Tracker) CoverageByTestType() map[schema.TestType]coverage.TestTypeCoverage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return coverage.ByTestType(t.store, t.index)
}

// CoverageByPriority derives per-priority coverage.
func (t *Tracker) CoverageByPriority() map[schema.RequirementPriority]coverage.PriorityCoverage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return coverage.ByPriority(t.store, t.index)
}

// Matrix derives the traceability matrix.
func (t *Tracker) Matrix() coverage.Matrix {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return coverage.BuildMatrix(t.store, t.index)
}

// Uncovered lists requirements and stories with no covering test case.
func (t *Tracker) Uncovered() coverage.Uncovered {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return coverage.FindUncovered(t.store, t.index)
}

// CriticalGaps lists critical coverage gaps.
func (t *Tracker) CriticalGaps() []coverage.Gap {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return coverage.FindCriticalGaps(t.store, t.index)
}

// Verify recomputes the coverage index from the store and reports an error
// if the incremental index has diverged from the derivable state.
func (t *Tracker) Verify() error {
	t.mu.RLock()
	defer t.mu.RUnlock()

	derived := coverage.Recompute(t.store)
	if !t.index.Equal(derived) {
		return fmt.Errorf("coverage index diverged from entity store contents")
	}
	return nil
}

// Store exposes the entity store for read-only access. Intended for report
// generation after all mutation is complete; callers must not write to it.
func (t *Tracker) Store() *store.Store {
	return t.store
}
