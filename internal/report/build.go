package report

import (
	"time"

	"github.com/hargabyte/trq/internal/schema"
	"github.com/hargabyte/trq/internal/tracker"
)

// Build assembles the report payload from a tracker. Safe to call any
// number of times; it reads aggregates and entity records without mutating
// run state.
func Build(t *tracker.Tracker, version string) *Data {
	matrix := t.Matrix()

	data := &Data{
		Report: Header{
			Tool:        "trq",
			Version:     version,
			GeneratedAt: time.Now(),
		},
		Summary: t.Summary(),
		Coverage: CoverageData{
			ByRequirementType: t.CoverageByRequirementType(),
			ByTestType:        t.CoverageByTestType(),
			ByPriority:        t.CoverageByPriority(),
		},
		TraceabilityMatrix: matrix,
		Uncovered:          t.Uncovered(),
		CriticalGaps:       t.CriticalGaps(),
	}

	st := t.Store()
	data.Details.Requirements = make([]RequirementDetail, 0, st.RequirementCount())
	for req := range st.Requirements() {
		tests := matrix.RequirementTests[req.ID]
		data.Details.Requirements = append(data.Details.Requirements, RequirementDetail{
			Requirement: req,
			Coverage:    entityCoverage(tests),
		})
	}

	data.Details.UserStories = make([]UserStoryDetail, 0, st.UserStoryCount())
	for us := range st.UserStories() {
		tests := matrix.StoryTests[us.ID]
		data.Details.UserStories = append(data.Details.UserStories, UserStoryDetail{
			UserStory: us,
			Coverage:  entityCoverage(tests),
		})
	}

	data.Details.TestCases = make([]*schema.TestCase, 0, st.TestCaseCount())
	for tc := range st.TestCases() {
		data.Details.TestCases = append(data.Details.TestCases, tc)
	}

	data.Details.Suites = make([]*schema.Suite, 0, st.SuiteCount())
	for su := range st.Suites() {
		data.Details.Suites = append(data.Details.Suites, su)
	}

	return data
}

func entityCoverage(tests []string) EntityCoverage {
	if tests == nil {
		tests = []string{}
	}
	return EntityCoverage{
		Tests:   tests,
		Count:   len(tests),
		Covered: len(tests) > 0,
	}
}
