package report

import (
	"testing"

	"github.com/hargabyte/trq/internal/schema"
	"github.com/hargabyte/trq/internal/tracker"
)

func buildTestTracker(t *testing.T) *tracker.Tracker {
	t.Helper()

	tr := tracker.New()
	err := tr.ImportRequirements([]*schema.Requirement{
		{ID: "REQ-001", Title: "Authentication",
			Type: schema.RequirementFunctional, Priority: schema.PriorityP0Critical},
		{ID: "REQ-002", Title: "Session hardening",
			Type: schema.RequirementSecurity, Priority: schema.PriorityP1High},
	})
	if err != nil {
		t.Fatalf("import requirements: %v", err)
	}
	err = tr.ImportUserStories([]*schema.UserStory{
		{ID: "US-001", Title: "Log in", Requirements: []string{"REQ-001"}},
	})
	if err != nil {
		t.Fatalf("import user stories: %v", err)
	}
	if err := tr.AddSuite(&schema.Suite{ID: "TS-001", Title: "Regression"}); err != nil {
		t.Fatalf("add suite: %v", err)
	}
	err = tr.AddTestCase(&schema.TestCase{
		ID: "TC-001", Title: "Login works", Type: schema.TestE2E,
		Priority:     schema.TestPriorityMustRun,
		Requirements: []string{"REQ-001"}, UserStories: []string{"US-001"},
		SuiteID: "TS-001", Status: schema.StatusPassed, Automated: true,
	})
	if err != nil {
		t.Fatalf("add test case: %v", err)
	}
	return tr
}

func TestBuild(t *testing.T) {
	tr := buildTestTracker(t)
	data := Build(tr, "0.1.0")

	if data.Report.Tool != "trq" {
		t.Errorf("tool = %q, want trq", data.Report.Tool)
	}
	if data.Report.Version != "0.1.0" {
		t.Errorf("version = %q, want 0.1.0", data.Report.Version)
	}
	if data.Report.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not set")
	}

	if data.Summary.TotalRequirements != 2 || data.Summary.TotalTestCases != 1 {
		t.Errorf("summary totals = %d/%d, want 2/1",
			data.Summary.TotalRequirements, data.Summary.TotalTestCases)
	}

	if len(data.Details.Requirements) != 2 {
		t.Fatalf("requirement details = %d, want 2", len(data.Details.Requirements))
	}
	covered := data.Details.Requirements[0]
	if covered.ID != "REQ-001" || !covered.Coverage.Covered || covered.Coverage.Count != 1 {
		t.Errorf("REQ-001 detail = %+v, want covered by 1 test", covered)
	}
	uncovered := data.Details.Requirements[1]
	if uncovered.ID != "REQ-002" || uncovered.Coverage.Covered {
		t.Errorf("REQ-002 detail = %+v, want uncovered", uncovered)
	}
	if uncovered.Coverage.Tests == nil {
		t.Error("uncovered detail should carry an empty test list, not nil")
	}

	if len(data.Details.UserStories) != 1 || data.Details.UserStories[0].Coverage.Count != 1 {
		t.Errorf("story details = %+v, want US-001 covered by 1 test", data.Details.UserStories)
	}
	if len(data.Details.TestCases) != 1 || len(data.Details.Suites) != 1 {
		t.Errorf("details carry %d test cases and %d suites, want 1 and 1",
			len(data.Details.TestCases), len(data.Details.Suites))
	}

	// REQ-002 is a security requirement with no security test.
	if len(data.CriticalGaps) != 1 || data.CriticalGaps[0].RequirementID != "REQ-002" {
		t.Errorf("critical gaps = %+v, want one for REQ-002", data.CriticalGaps)
	}
	if len(data.Uncovered.Requirements) != 1 || data.Uncovered.Requirements[0] != "REQ-002" {
		t.Errorf("uncovered = %+v, want [REQ-002]", data.Uncovered.Requirements)
	}
}
