package coverage

import (
	"testing"

	"github.com/hargabyte/trq/internal/schema"
	"github.com/hargabyte/trq/internal/store"
)

func TestPercentage(t *testing.T) {
	tests := []struct {
		x, y int
		want float64
	}{
		{0, 0, 0}, // zero denominator never divides
		{5, 0, 0},
		{0, 10, 0},
		{10, 10, 100},
		{1, 3, float64(1) / float64(3) * 100}, // unrounded, same association as the implementation
		{3, 4, 75},
	}

	for _, tt := range tests {
		if got := Percentage(tt.x, tt.y); got != tt.want {
			t.Errorf("Percentage(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

// populate builds the two-requirement, two-story, two-test fixture used by
// most aggregate tests: both requirements and both stories fully covered.
func populate(t *testing.T) (*store.Store, *Index) {
	t.Helper()

	st := store.New()
	ix := NewIndex()

	st.PutRequirement(&schema.Requirement{
		ID: "REQ-001", Title: "Authentication",
		Type: schema.RequirementFunctional, Priority: schema.PriorityP0Critical,
	})
	st.PutRequirement(&schema.Requirement{
		ID: "REQ-002", Title: "Session hardening",
		Type: schema.RequirementSecurity, Priority: schema.PriorityP1High,
	})
	st.PutUserStory(&schema.UserStory{
		ID: "US-001", Title: "Log in", Requirements: []string{"REQ-001"},
	})
	st.PutUserStory(&schema.UserStory{
		ID: "US-002", Title: "Stay logged in", Requirements: []string{"REQ-001", "REQ-002"},
	})

	for _, tc := range []*schema.TestCase{
		{ID: "TC-001", Title: "Login works", Type: schema.TestE2E,
			Priority: schema.TestPriorityMustRun,
			Requirements: []string{"REQ-001"}, UserStories: []string{"US-001"},
			Status: schema.StatusPassed},
		{ID: "TC-002", Title: "Session fixation rejected", Type: schema.TestSecurity,
			Priority: schema.TestPriorityMustRun,
			Requirements: []string{"REQ-002"}, UserStories: []string{"US-002"},
			Status: schema.StatusFailed},
	} {
		st.PutTestCase(tc)
		ix.Record(tc, st)
	}

	return st, ix
}

func TestSummarize(t *testing.T) {
	st, ix := populate(t)
	s := Summarize(st, ix)

	if s.TotalRequirements != 2 {
		t.Errorf("TotalRequirements = %d, want 2", s.TotalRequirements)
	}
	if s.TotalUserStories != 2 {
		t.Errorf("TotalUserStories = %d, want 2", s.TotalUserStories)
	}
	if s.TotalTestCases != 2 {
		t.Errorf("TotalTestCases = %d, want 2", s.TotalTestCases)
	}
	if s.RequirementCoverage != 100 {
		t.Errorf("RequirementCoverage = %v, want 100", s.RequirementCoverage)
	}
	if s.StoryCoverage != 100 {
		t.Errorf("StoryCoverage = %v, want 100", s.StoryCoverage)
	}
	if s.Passed != 1 || s.Failed != 1 || s.Skipped != 0 {
		t.Errorf("results = %d/%d/%d, want 1/1/0", s.Passed, s.Failed, s.Skipped)
	}
	if s.PassRate != 50 {
		t.Errorf("PassRate = %v, want 50", s.PassRate)
	}
}

func TestSummarizeEmptyStore(t *testing.T) {
	st := store.New()
	ix := NewIndex()
	s := Summarize(st, ix)

	if s.RequirementCoverage != 0 || s.StoryCoverage != 0 || s.PassRate != 0 {
		t.Errorf("empty store coverage = %v/%v/%v, want 0/0/0",
			s.RequirementCoverage, s.StoryCoverage, s.PassRate)
	}
}

func TestSummarizeSkippedExcludedFromPassRate(t *testing.T) {
	st := store.New()
	ix := NewIndex()
	for _, tc := range []*schema.TestCase{
		{ID: "TC-001", Title: "a", Type: schema.TestUnit, Priority: schema.TestPriorityMustRun, Status: schema.StatusPassed},
		{ID: "TC-002", Title: "b", Type: schema.TestUnit, Priority: schema.TestPriorityMustRun, Status: schema.StatusSkipped},
		{ID: "TC-003", Title: "c", Type: schema.TestUnit, Priority: schema.TestPriorityMustRun},
	} {
		st.PutTestCase(tc)
		ix.Record(tc, st)
	}

	s := Summarize(st, ix)
	if s.PassRate != 100 {
		t.Errorf("PassRate = %v, want 100 (skipped and unrecorded are not executed)", s.PassRate)
	}
	if s.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", s.Skipped)
	}
}

func TestByRequirementType(t *testing.T) {
	st, ix := populate(t)
	byType := ByRequirementType(st, ix)

	sec, ok := byType[schema.RequirementSecurity]
	if !ok {
		t.Fatal("no entry for security requirement type")
	}
	if sec.Total != 1 || sec.Covered != 1 || sec.Percentage != 100 {
		t.Errorf("security = %+v, want Total=1 Covered=1 Percentage=100", sec)
	}

	fn := byType[schema.RequirementFunctional]
	if fn.Total != 1 || fn.Covered != 1 {
		t.Errorf("functional = %+v, want Total=1 Covered=1", fn)
	}
}

func TestByTestType(t *testing.T) {
	st, ix := populate(t)
	byType := ByTestType(st, ix)

	e2e, ok := byType[schema.TestE2E]
	if !ok {
		t.Fatal("no entry for e2e test type")
	}
	if e2e.Total != 1 || e2e.Requirements != 1 {
		t.Errorf("e2e = %+v, want Total=1 Requirements=1", e2e)
	}
	if _, ok := byType[schema.TestUnit]; ok {
		t.Error("unit should be absent: no unit test was recorded")
	}
}

func TestByPriority(t *testing.T) {
	st, ix := populate(t)
	st.PutRequirement(&schema.Requirement{
		ID: "REQ-003", Title: "Uncovered critical",
		Type: schema.RequirementFunctional, Priority: schema.PriorityP0Critical,
	})

	byPriority := ByPriority(st, ix)
	p0 := byPriority[schema.PriorityP0Critical]
	if p0.Total != 2 || p0.Covered != 1 || p0.Percentage != 50 {
		t.Errorf("p0 = %+v, want Total=2 Covered=1 Percentage=50", p0)
	}
	if _, ok := byPriority[schema.PriorityP3Low]; ok {
		t.Error("p3-low should be absent: no such requirement stored")
	}
}

func TestBuildMatrix(t *testing.T) {
	st, ix := populate(t)
	st.PutRequirement(&schema.Requirement{
		ID: "REQ-003", Title: "Unlinked",
		Type: schema.RequirementTechnical, Priority: schema.PriorityP2Medium,
	})

	m := BuildMatrix(st, ix)

	if got := m.RequirementTests["REQ-001"]; len(got) != 1 || got[0] != "TC-001" {
		t.Errorf("RequirementTests[REQ-001] = %v, want [TC-001]", got)
	}
	// Every stored requirement appears, with an empty (non-nil) list when
	// nothing links to it.
	got, ok := m.RequirementTests["REQ-003"]
	if !ok {
		t.Fatal("REQ-003 missing from matrix")
	}
	if got == nil || len(got) != 0 {
		t.Errorf("RequirementTests[REQ-003] = %v, want []", got)
	}

	if got := m.StoryRequirements["US-002"]; len(got) != 2 {
		t.Errorf("StoryRequirements[US-002] = %v, want 2 linked requirements", got)
	}
	if got := m.StoryTests["US-001"]; len(got) != 1 || got[0] != "TC-001" {
		t.Errorf("StoryTests[US-001] = %v, want [TC-001]", got)
	}
}

func TestFindUncovered(t *testing.T) {
	st, ix := populate(t)
	st.PutRequirement(&schema.Requirement{
		ID: "REQ-003", Title: "Unlinked",
		Type: schema.RequirementTechnical, Priority: schema.PriorityP2Medium,
	})
	st.PutUserStory(&schema.UserStory{ID: "US-003", Title: "Unlinked story"})
	// A seeded-but-empty entry still counts as uncovered.
	ix.SeedRequirement("REQ-003")

	u := FindUncovered(st, ix)
	if len(u.Requirements) != 1 || u.Requirements[0] != "REQ-003" {
		t.Errorf("uncovered requirements = %v, want [REQ-003]", u.Requirements)
	}
	if len(u.Stories) != 1 || u.Stories[0] != "US-003" {
		t.Errorf("uncovered stories = %v, want [US-003]", u.Stories)
	}
}

func TestFindCriticalGaps(t *testing.T) {
	st := store.New()
	ix := NewIndex()

	st.PutRequirement(&schema.Requirement{
		ID: "REQ-001", Title: "Critical uncovered",
		Type: schema.RequirementFunctional, Priority: schema.PriorityP0Critical,
	})
	st.PutRequirement(&schema.Requirement{
		ID: "REQ-002", Title: "Security without security test",
		Type: schema.RequirementSecurity, Priority: schema.PriorityP1High,
	})

	// REQ-002 is covered, but only by a unit test.
	tc := &schema.TestCase{
		ID: "TC-001", Title: "unit check", Type: schema.TestUnit,
		Priority: schema.TestPriorityMustRun, Requirements: []string{"REQ-002"},
	}
	st.PutTestCase(tc)
	ix.Record(tc, st)

	gaps := FindCriticalGaps(st, ix)
	if len(gaps) != 2 {
		t.Fatalf("got %d gaps, want 2: %+v", len(gaps), gaps)
	}

	byKind := make(map[GapKind]Gap)
	for _, g := range gaps {
		byKind[g.Kind] = g
	}
	if g := byKind[GapUncoveredCritical]; g.RequirementID != "REQ-001" {
		t.Errorf("uncovered critical gap = %+v, want REQ-001", g)
	}
	if g := byKind[GapUntestedSecurity]; g.RequirementID != "REQ-002" {
		t.Errorf("untested security gap = %+v, want REQ-002", g)
	}
}

func TestCriticalGapClearsOnCoverage(t *testing.T) {
	st := store.New()
	ix := NewIndex()

	st.PutRequirement(&schema.Requirement{
		ID: "REQ-001", Title: "Critical",
		Type: schema.RequirementFunctional, Priority: schema.PriorityP0Critical,
	})

	gaps := FindCriticalGaps(st, ix)
	if len(gaps) != 1 || gaps[0].Kind != GapUncoveredCritical {
		t.Fatalf("got %+v, want one uncovered_critical_requirement gap", gaps)
	}

	tc := &schema.TestCase{
		ID: "TC-001", Title: "covers it", Type: schema.TestE2E,
		Priority: schema.TestPriorityMustRun, Requirements: []string{"REQ-001"},
	}
	st.PutTestCase(tc)
	ix.Record(tc, st)

	if gaps := FindCriticalGaps(st, ix); len(gaps) != 0 {
		t.Errorf("gap should clear once covered, got %+v", gaps)
	}
}

func TestSecurityRequirementWithSecurityTest(t *testing.T) {
	st := store.New()
	ix := NewIndex()

	st.PutRequirement(&schema.Requirement{
		ID: "REQ-001", Title: "Input sanitization",
		Type: schema.RequirementSecurity, Priority: schema.PriorityP1High,
	})
	tc := &schema.TestCase{
		ID: "TC-001", Title: "injection probe", Type: schema.TestSecurity,
		Priority: schema.TestPriorityMustRun, Requirements: []string{"REQ-001"},
	}
	st.PutTestCase(tc)
	ix.Record(tc, st)

	if gaps := FindCriticalGaps(st, ix); len(gaps) != 0 {
		t.Errorf("security requirement with a security test is not a gap, got %+v", gaps)
	}
}
