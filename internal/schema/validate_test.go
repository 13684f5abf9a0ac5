package schema

import "testing"

// fakeRefs is a ReferenceChecker backed by fixed id sets.
type fakeRefs struct {
	requirements map[string]bool
	stories      map[string]bool
}

func (f fakeRefs) HasRequirement(id string) bool { return f.requirements[id] }
func (f fakeRefs) HasUserStory(id string) bool   { return f.stories[id] }

func validTestCase() *TestCase {
	return &TestCase{
		ID:       "TC-001",
		Title:    "Login succeeds with valid credentials",
		Type:     TestE2E,
		Priority: TestPriorityMustRun,
	}
}

func TestValidateRequirement(t *testing.T) {
	tests := []struct {
		name string
		req  *Requirement
		want bool
	}{
		{"valid", &Requirement{ID: "REQ-001", Title: "Auth", Type: RequirementFunctional, Priority: PriorityP0Critical}, true},
		{"nil", nil, false},
		{"missing id", &Requirement{Title: "Auth", Type: RequirementFunctional, Priority: PriorityP1High}, false},
		{"missing title", &Requirement{ID: "REQ-001", Type: RequirementFunctional, Priority: PriorityP1High}, false},
		{"bad type", &Requirement{ID: "REQ-001", Title: "Auth", Type: "ux", Priority: PriorityP1High}, false},
		{"bad priority", &Requirement{ID: "REQ-001", Title: "Auth", Type: RequirementFunctional, Priority: "urgent"}, false},
		{"empty type", &Requirement{ID: "REQ-001", Title: "Auth", Priority: PriorityP1High}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateRequirement(tt.req); got != tt.want {
				t.Errorf("ValidateRequirement = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateUserStory(t *testing.T) {
	tests := []struct {
		name  string
		story *UserStory
		want  bool
	}{
		{"valid", &UserStory{ID: "US-001", Title: "As a user I can log in"}, true},
		{"nil", nil, false},
		{"missing id", &UserStory{Title: "As a user"}, false},
		{"missing title", &UserStory{ID: "US-001"}, false},
		// Linked requirement ids are not resolved at story validation time.
		{"dangling links ok", &UserStory{ID: "US-001", Title: "Login", Requirements: []string{"REQ-404"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateUserStory(tt.story); got != tt.want {
				t.Errorf("ValidateUserStory = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateTestCase(t *testing.T) {
	refs := fakeRefs{
		requirements: map[string]bool{"REQ-001": true, "REQ-002": true},
		stories:      map[string]bool{"US-001": true},
	}

	t.Run("valid without links", func(t *testing.T) {
		if !ValidateTestCase(validTestCase(), refs) {
			t.Error("test case with no links should validate")
		}
	})

	t.Run("valid with resolving links", func(t *testing.T) {
		tc := validTestCase()
		tc.Requirements = []string{"REQ-001", "REQ-002"}
		tc.UserStories = []string{"US-001"}
		if !ValidateTestCase(tc, refs) {
			t.Error("test case with resolving links should validate")
		}
	})

	t.Run("dangling requirement", func(t *testing.T) {
		tc := validTestCase()
		tc.Requirements = []string{"REQ-001", "REQ-404"}
		if ValidateTestCase(tc, refs) {
			t.Error("test case with dangling requirement ref should fail")
		}
	})

	t.Run("dangling story", func(t *testing.T) {
		tc := validTestCase()
		tc.UserStories = []string{"US-404"}
		if ValidateTestCase(tc, refs) {
			t.Error("test case with dangling story ref should fail")
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		for _, mutate := range []func(*TestCase){
			func(tc *TestCase) { tc.ID = "" },
			func(tc *TestCase) { tc.Title = "" },
			func(tc *TestCase) { tc.Type = "" },
			func(tc *TestCase) { tc.Type = "manual" },
			func(tc *TestCase) { tc.Priority = "" },
			func(tc *TestCase) { tc.Status = "errored" },
		} {
			tc := validTestCase()
			mutate(tc)
			if ValidateTestCase(tc, refs) {
				t.Errorf("mutated test case %+v should fail validation", tc)
			}
		}
	})

	t.Run("nil", func(t *testing.T) {
		if ValidateTestCase(nil, refs) {
			t.Error("nil test case should fail")
		}
	})
}

func TestValidateSuite(t *testing.T) {
	tests := []struct {
		name  string
		suite *Suite
		want  bool
	}{
		{"id only", &Suite{ID: "SUITE-001"}, true},
		{"full", &Suite{ID: "SUITE-001", Title: "Checkout", Type: TestE2E, Priority: TestPriorityMustRun}, true},
		{"nil", nil, false},
		{"missing id", &Suite{Title: "Checkout"}, false},
		{"bad type", &Suite{ID: "SUITE-001", Type: "manual"}, false},
		{"bad priority", &Suite{ID: "SUITE-001", Priority: "urgent"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateSuite(tt.suite); got != tt.want {
				t.Errorf("ValidateSuite = %v, want %v", got, tt.want)
			}
		})
	}
}
