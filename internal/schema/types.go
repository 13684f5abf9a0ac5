package schema

import "time"

// Requirement is a tracked system capability or constraint.
// Requirements are immutable once loaded; coverage is derived externally.
type Requirement struct {
	ID                  string              `json:"id" yaml:"id"`
	Title               string              `json:"title" yaml:"title"`
	Type                RequirementType     `json:"type" yaml:"type"`
	Priority            RequirementPriority `json:"priority" yaml:"priority"`
	Description         string              `json:"description,omitempty" yaml:"description,omitempty"`
	AcceptanceCriteria  []string            `json:"acceptance_criteria,omitempty" yaml:"acceptance_criteria,omitempty"`
	RelatedRequirements []string            `json:"related_requirements,omitempty" yaml:"related_requirements,omitempty"`
	Tags                []string            `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// UserStory is a narrative grouping of requirements.
// Stories are immutable once loaded.
type UserStory struct {
	ID           string   `json:"id" yaml:"id"`
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
	Requirements []string `json:"requirements,omitempty" yaml:"requirements,omitempty"` // linked requirement ids
}

// TestCase is a concrete check declared by a test as it runs.
// A test case is created once, and may later be mutated exactly once by
// suite propagation, which merges the owning suite's requirement, story,
// and tag lists into it.
type TestCase struct {
	ID           string          `json:"id" yaml:"id"`
	Title        string          `json:"title" yaml:"title"`
	Type         TestType        `json:"type" yaml:"type"`
	Priority     TestPriority    `json:"priority" yaml:"priority"`
	Requirements []string        `json:"requirements,omitempty" yaml:"requirements,omitempty"`
	UserStories  []string        `json:"user_stories,omitempty" yaml:"user_stories,omitempty"`
	Automated    bool            `json:"automated" yaml:"automated"`
	Tags         []string        `json:"tags,omitempty" yaml:"tags,omitempty"`
	Dependencies []string        `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Description  string          `json:"description,omitempty" yaml:"description,omitempty"`
	SuiteID      string          `json:"suite_id,omitempty" yaml:"suite_id,omitempty"`
	Status       ExecutionStatus `json:"status,omitempty" yaml:"status,omitempty"`
	CreatedAt    time.Time       `json:"created_at" yaml:"created_at"`
}

// Suite is a named grouping of test cases sharing default metadata.
// Suites are immutable after creation.
type Suite struct {
	ID           string       `json:"id" yaml:"id"`
	Title        string       `json:"title" yaml:"title"`
	Type         TestType     `json:"type,omitempty" yaml:"type,omitempty"`
	Priority     TestPriority `json:"priority,omitempty" yaml:"priority,omitempty"`
	Requirements []string     `json:"requirements,omitempty" yaml:"requirements,omitempty"`
	UserStories  []string     `json:"user_stories,omitempty" yaml:"user_stories,omitempty"`
	Tags         []string     `json:"tags,omitempty" yaml:"tags,omitempty"`
	Description  string       `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt    time.Time    `json:"created_at" yaml:"created_at"`
}
