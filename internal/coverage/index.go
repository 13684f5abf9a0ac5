// Package coverage maintains the incremental coverage index for a test run
// and derives aggregate statistics from it: summary counts, per-type and
// per-priority coverage, the traceability matrix, and critical-gap lists.
//
// The index is a performance convenience, not an independent source of
// truth: at any point it must equal what a full scan of the entity store
// would produce. Recompute verifies that property.
package coverage

import (
	"github.com/hargabyte/trq/internal/schema"
	"github.com/hargabyte/trq/internal/store"
)

// idSet is an insertion-ordered set of test case ids.
// Sets only grow within a run.
type idSet struct {
	seen map[string]struct{}
	ids  []string
}

func newIDSet() *idSet {
	return &idSet{seen: make(map[string]struct{})}
}

func (s *idSet) add(id string) {
	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.ids = append(s.ids, id)
}

func (s *idSet) contains(id string) bool {
	_, ok := s.seen[id]
	return ok
}

func (s *idSet) size() int {
	return len(s.ids)
}

// list returns a copy so callers cannot mutate the set.
func (s *idSet) list() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Index maps requirement ids, user story ids, requirement types, and test
// types to the set of covering test case ids. Entries are unioned in exactly
// once per accepted test case and never shrink within a run.
type Index struct {
	byRequirement     map[string]*idSet
	byStory           map[string]*idSet
	byRequirementType map[schema.RequirementType]*idSet
	byTestType        map[schema.TestType]*idSet
}

// NewIndex creates an empty coverage index.
func NewIndex() *Index {
	return &Index{
		byRequirement:     make(map[string]*idSet),
		byStory:           make(map[string]*idSet),
		byRequirementType: make(map[schema.RequirementType]*idSet),
		byTestType:        make(map[schema.TestType]*idSet),
	}
}

func (ix *Index) requirementSet(id string) *idSet {
	set, ok := ix.byRequirement[id]
	if !ok {
		set = newIDSet()
		ix.byRequirement[id] = set
	}
	return set
}

func (ix *Index) storySet(id string) *idSet {
	set, ok := ix.byStory[id]
	if !ok {
		set = newIDSet()
		ix.byStory[id] = set
	}
	return set
}

func (ix *Index) requirementTypeSet(t schema.RequirementType) *idSet {
	set, ok := ix.byRequirementType[t]
	if !ok {
		set = newIDSet()
		ix.byRequirementType[t] = set
	}
	return set
}

func (ix *Index) testTypeSet(t schema.TestType) *idSet {
	set, ok := ix.byTestType[t]
	if !ok {
		set = newIDSet()
		ix.byTestType[t] = set
	}
	return set
}

// Record unions a test case into the coverage sets of every requirement and
// user story it references, into the set for each referenced requirement's
// declared type, and into the set for the test case's own type. Called
// exactly once per accepted test case; the caller must not invoke it for a
// candidate that failed validation.
func (ix *Index) Record(tc *schema.TestCase, st *store.Store) {
	for _, reqID := range tc.Requirements {
		ix.requirementSet(reqID).add(tc.ID)
		if req, ok := st.Requirement(reqID); ok {
			ix.requirementTypeSet(req.Type).add(tc.ID)
		}
	}
	for _, storyID := range tc.UserStories {
		ix.storySet(storyID).add(tc.ID)
	}
	ix.testTypeSet(tc.Type).add(tc.ID)
}

// SeedRequirement ensures a coverage entry exists for a requirement id,
// creating an empty set if absent. Called when a standalone existence check
// succeeds, so a requirement that was validated but never linked still shows
// up as "covered by 0 tests" rather than being absent from reports.
func (ix *Index) SeedRequirement(id string) {
	ix.requirementSet(id)
}

// SeedStory ensures a coverage entry exists for a user story id.
func (ix *Index) SeedStory(id string) {
	ix.storySet(id)
}

// TestsForRequirement returns the covering test case ids for a requirement
// in recording order, and whether the requirement has a coverage entry.
func (ix *Index) TestsForRequirement(id string) ([]string, bool) {
	set, ok := ix.byRequirement[id]
	if !ok {
		return nil, false
	}
	return set.list(), true
}

// TestsForStory returns the covering test case ids for a user story.
func (ix *Index) TestsForStory(id string) ([]string, bool) {
	set, ok := ix.byStory[id]
	if !ok {
		return nil, false
	}
	return set.list(), true
}

// TestsForRequirementType returns the test case ids covering any requirement
// of the given type.
func (ix *Index) TestsForRequirementType(t schema.RequirementType) []string {
	set, ok := ix.byRequirementType[t]
	if !ok {
		return nil
	}
	return set.list()
}

// TestsForTestType returns the accepted test case ids of the given type.
func (ix *Index) TestsForTestType(t schema.TestType) []string {
	set, ok := ix.byTestType[t]
	if !ok {
		return nil
	}
	return set.list()
}

// RequirementCovered reports whether a requirement has at least one
// covering test case.
func (ix *Index) RequirementCovered(id string) bool {
	set, ok := ix.byRequirement[id]
	return ok && set.size() > 0
}

// StoryCovered reports whether a user story has at least one covering
// test case.
func (ix *Index) StoryCovered(id string) bool {
	set, ok := ix.byStory[id]
	return ok && set.size() > 0
}

// Recompute builds a fresh index by scanning every test case in the store.
// Seeded-but-empty entries are not reconstructed; Recompute captures only
// the coverage that is derivable from stored test cases.
func Recompute(st *store.Store) *Index {
	ix := NewIndex()
	for tc := range st.TestCases() {
		ix.Record(tc, st)
	}
	return ix
}

// Equal reports whether two indexes hold the same non-empty coverage sets.
// Empty (seeded) entries are ignored: they carry no coverage information.
func (ix *Index) Equal(other *Index) bool {
	return equalSets(ix.byRequirement, other.byRequirement) &&
		equalSets(ix.byStory, other.byStory) &&
		equalSets(ix.byRequirementType, other.byRequirementType) &&
		equalSets(ix.byTestType, other.byTestType)
}

func equalSets[K comparable](a, b map[K]*idSet) bool {
	for key, set := range a {
		if set.size() == 0 {
			continue
		}
		bset, ok := b[key]
		if !ok || bset.size() != set.size() {
			return false
		}
		for _, id := range set.ids {
			if !bset.contains(id) {
				return false
			}
		}
	}
	for key, set := range b {
		if set.size() == 0 {
			continue
		}
		aset, ok := a[key]
		if !ok || aset.size() == 0 {
			return false
		}
	}
	return true
}
