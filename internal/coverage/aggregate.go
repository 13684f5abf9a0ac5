package coverage

import (
	"github.com/hargabyte/trq/internal/schema"
	"github.com/hargabyte/trq/internal/store"
)

// Summary holds run-wide entity counts, execution results, and coverage
// percentages.
type Summary struct {
	TotalRequirements int     `json:"total_requirements" yaml:"total_requirements"`
	TotalUserStories  int     `json:"total_user_stories" yaml:"total_user_stories"`
	TotalTestCases    int     `json:"total_test_cases" yaml:"total_test_cases"`
	TotalSuites       int     `json:"total_suites" yaml:"total_suites"`
	Passed            int     `json:"passed" yaml:"passed"`
	Failed            int     `json:"failed" yaml:"failed"`
	Skipped           int     `json:"skipped" yaml:"skipped"`
	PassRate          float64 `json:"pass_rate" yaml:"pass_rate"`

	CoveredRequirements int     `json:"covered_requirements" yaml:"covered_requirements"`
	RequirementCoverage float64 `json:"requirement_coverage" yaml:"requirement_coverage"`
	CoveredStories      int     `json:"covered_stories" yaml:"covered_stories"`
	StoryCoverage       float64 `json:"story_coverage" yaml:"story_coverage"`
}

// TypeCoverage describes coverage of one requirement type: how many
// requirements of that type exist, the size of the type's coverage set,
// and the resulting percentage.
type TypeCoverage struct {
	Total      int     `json:"total" yaml:"total"`
	Covered    int     `json:"covered" yaml:"covered"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// TestTypeCoverage describes one test type: how many test cases of that
// type ran, and how many distinct requirements they reference.
type TestTypeCoverage struct {
	Total        int `json:"total" yaml:"total"`
	Requirements int `json:"requirements" yaml:"requirements"`
}

// PriorityCoverage describes coverage of one requirement priority level.
// Covered counts requirements of that priority with at least one covering
// test case.
type PriorityCoverage struct {
	Total      int     `json:"total" yaml:"total"`
	Covered    int     `json:"covered" yaml:"covered"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// Matrix is the full set of traceability linkage tables.
type Matrix struct {
	// RequirementTests maps requirement id to covering test case ids
	// in recording order.
	RequirementTests map[string][]string `json:"requirement_tests" yaml:"requirement_tests"`

	// StoryRequirements maps user story id to its declared linked
	// requirement ids, taken from the story record, not derived.
	StoryRequirements map[string][]string `json:"story_requirements" yaml:"story_requirements"`

	// StoryTests maps user story id to covering test case ids.
	StoryTests map[string][]string `json:"story_tests" yaml:"story_tests"`
}

// Uncovered lists requirement and user story ids with no covering test case.
// Ids with a seeded-but-empty coverage entry count as uncovered.
type Uncovered struct {
	Requirements []string `json:"requirements" yaml:"requirements"`
	Stories      []string `json:"stories" yaml:"stories"`
}

// GapKind identifies why a requirement is reported as a critical gap.
type GapKind string

const (
	// GapUncoveredCritical is a P0 requirement with no covering test case.
	GapUncoveredCritical GapKind = "uncovered_critical_requirement"
	// GapUntestedSecurity is a security requirement whose covering tests
	// include no security-typed test case.
	GapUntestedSecurity GapKind = "untested_security_requirement"
)

// Gap is one critical coverage gap.
type Gap struct {
	Kind          GapKind `json:"kind" yaml:"kind"`
	RequirementID string  `json:"requirement_id" yaml:"requirement_id"`
	Title         string  `json:"title" yaml:"title"`
}

// Percentage computes (x/y)*100 as an unrounded float, returning 0 when
// y is zero so empty stores never produce NaN or a division panic.
func Percentage(x, y int) float64 {
	if y == 0 {
		return 0
	}
	return float64(x) / float64(y) * 100
}

// Summarize derives the run summary from the store and index. Stateless and
// idempotent; safe to call at any point in the run.
func Summarize(st *store.Store, ix *Index) Summary {
	s := Summary{
		TotalRequirements: st.RequirementCount(),
		TotalUserStories:  st.UserStoryCount(),
		TotalTestCases:    st.TestCaseCount(),
		TotalSuites:       st.SuiteCount(),
	}

	executed := 0
	for tc := range st.TestCases() {
		switch tc.Status {
		case schema.StatusPassed:
			s.Passed++
			executed++
		case schema.StatusFailed:
			s.Failed++
			executed++
		case schema.StatusSkipped:
			s.Skipped++
		}
	}
	s.PassRate = Percentage(s.Passed, executed)

	for req := range st.Requirements() {
		if ix.RequirementCovered(req.ID) {
			s.CoveredRequirements++
		}
	}
	s.RequirementCoverage = Percentage(s.CoveredRequirements, s.TotalRequirements)

	for us := range st.UserStories() {
		if ix.StoryCovered(us.ID) {
			s.CoveredStories++
		}
	}
	s.StoryCoverage = Percentage(s.CoveredStories, s.TotalUserStories)

	return s
}

// ByRequirementType computes coverage per requirement type present in the
// index. Total counts requirements of that type in the store; Covered is the
// size of the type's coverage set.
func ByRequirementType(st *store.Store, ix *Index) map[schema.RequirementType]TypeCoverage {
	result := make(map[schema.RequirementType]TypeCoverage, len(ix.byRequirementType))
	for reqType, set := range ix.byRequirementType {
		total := 0
		for req := range st.Requirements() {
			if req.Type == reqType {
				total++
			}
		}
		result[reqType] = TypeCoverage{
			Total:      total,
			Covered:    set.size(),
			Percentage: Percentage(set.size(), total),
		}
	}
	return result
}

// ByTestType computes, per test type present in the index, the number of
// test cases of that type and the distinct requirements they reference.
func ByTestType(st *store.Store, ix *Index) map[schema.TestType]TestTypeCoverage {
	result := make(map[schema.TestType]TestTypeCoverage, len(ix.byTestType))
	for testType, set := range ix.byTestType {
		reqs := make(map[string]struct{})
		for _, tcID := range set.ids {
			tc, ok := st.TestCase(tcID)
			if !ok {
				continue
			}
			for _, reqID := range tc.Requirements {
				reqs[reqID] = struct{}{}
			}
		}
		result[testType] = TestTypeCoverage{
			Total:        set.size(),
			Requirements: len(reqs),
		}
	}
	return result
}

// ByPriority computes coverage per requirement priority level present among
// stored requirements. Covered counts requirements of that priority with a
// non-empty coverage entry.
func ByPriority(st *store.Store, ix *Index) map[schema.RequirementPriority]PriorityCoverage {
	result := make(map[schema.RequirementPriority]PriorityCoverage)
	for req := range st.Requirements() {
		pc := result[req.Priority]
		pc.Total++
		if ix.RequirementCovered(req.ID) {
			pc.Covered++
		}
		result[req.Priority] = pc
	}
	for priority, pc := range result {
		pc.Percentage = Percentage(pc.Covered, pc.Total)
		result[priority] = pc
	}
	return result
}

// BuildMatrix constructs the traceability matrix. Every stored requirement
// and user story appears, with empty lists where nothing links to it.
func BuildMatrix(st *store.Store, ix *Index) Matrix {
	m := Matrix{
		RequirementTests:  make(map[string][]string, st.RequirementCount()),
		StoryRequirements: make(map[string][]string, st.UserStoryCount()),
		StoryTests:        make(map[string][]string, st.UserStoryCount()),
	}
	for req := range st.Requirements() {
		tests, _ := ix.TestsForRequirement(req.ID)
		if tests == nil {
			tests = []string{}
		}
		m.RequirementTests[req.ID] = tests
	}
	for us := range st.UserStories() {
		linked := us.Requirements
		if linked == nil {
			linked = []string{}
		}
		m.StoryRequirements[us.ID] = linked
		tests, _ := ix.TestsForStory(us.ID)
		if tests == nil {
			tests = []string{}
		}
		m.StoryTests[us.ID] = tests
	}
	return m
}

// FindUncovered lists stored requirement and user story ids with no
// covering test case, in insertion order.
func FindUncovered(st *store.Store, ix *Index) Uncovered {
	u := Uncovered{Requirements: []string{}, Stories: []string{}}
	for req := range st.Requirements() {
		if !ix.RequirementCovered(req.ID) {
			u.Requirements = append(u.Requirements, req.ID)
		}
	}
	for us := range st.UserStories() {
		if !ix.StoryCovered(us.ID) {
			u.Stories = append(u.Stories, us.ID)
		}
	}
	return u
}

// FindCriticalGaps reports P0 requirements without coverage and security
// requirements whose covering tests include no security-typed test case.
// A requirement can appear once per gap kind.
func FindCriticalGaps(st *store.Store, ix *Index) []Gap {
	gaps := []Gap{}
	for req := range st.Requirements() {
		if req.Priority == schema.PriorityP0Critical && !ix.RequirementCovered(req.ID) {
			gaps = append(gaps, Gap{
				Kind:          GapUncoveredCritical,
				RequirementID: req.ID,
				Title:         req.Title,
			})
		}
		if req.Type == schema.RequirementSecurity && !hasSecurityTest(st, ix, req.ID) {
			gaps = append(gaps, Gap{
				Kind:          GapUntestedSecurity,
				RequirementID: req.ID,
				Title:         req.Title,
			})
		}
	}
	return gaps
}

// hasSecurityTest reports whether any test case covering the requirement is
// itself of security type.
func hasSecurityTest(st *store.Store, ix *Index, reqID string) bool {
	tests, ok := ix.TestsForRequirement(reqID)
	if !ok {
		return false
	}
	for _, tcID := range tests {
		if tc, ok := st.TestCase(tcID); ok && tc.Type == schema.TestSecurity {
			return true
		}
	}
	return false
}
