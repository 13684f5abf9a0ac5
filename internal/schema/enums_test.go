package schema

import "testing"

func TestParseRequirementType(t *testing.T) {
	tests := []struct {
		input   string
		want    RequirementType
		wantErr bool
	}{
		{"functional", RequirementFunctional, false},
		{"security", RequirementSecurity, false},
		{"SECURITY", RequirementSecurity, false},
		{"  performance  ", RequirementPerformance, false},
		{"accessibility", RequirementAccessibility, false},
		{"compliance", RequirementCompliance, false},
		{"technical", RequirementTechnical, false},
		{"infrastructure", RequirementInfrastructure, false},
		{"", "", true},
		{"ux", "", true},
		{"functionality", "", true},
	}

	for _, tt := range tests {
		got, err := ParseRequirementType(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseRequirementType(%q): expected error, got %q", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRequirementType(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRequirementType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseRequirementPriority(t *testing.T) {
	tests := []struct {
		input   string
		want    RequirementPriority
		wantErr bool
	}{
		{"p0-critical", PriorityP0Critical, false},
		{"P1-HIGH", PriorityP1High, false},
		{"p2-medium", PriorityP2Medium, false},
		{"p3-low", PriorityP3Low, false},
		{"p4-low", "", true},
		{"critical", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseRequirementPriority(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseRequirementPriority(%q): expected error, got %q", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRequirementPriority(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRequirementPriority(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseTestType(t *testing.T) {
	for _, valid := range TestTypes {
		got, err := ParseTestType(string(valid))
		if err != nil {
			t.Errorf("ParseTestType(%q): unexpected error: %v", valid, err)
		}
		if got != valid {
			t.Errorf("ParseTestType(%q) = %q, want %q", valid, got, valid)
		}
	}

	for _, invalid := range []string{"", "regression", "Unit Test", "end-to-end"} {
		if _, err := ParseTestType(invalid); err == nil {
			t.Errorf("ParseTestType(%q): expected error", invalid)
		}
	}
}

func TestParseTestPriority(t *testing.T) {
	got, err := ParseTestPriority("P2-High-Value")
	if err != nil {
		t.Fatalf("ParseTestPriority: unexpected error: %v", err)
	}
	if got != TestPriorityHighValue {
		t.Errorf("ParseTestPriority = %q, want %q", got, TestPriorityHighValue)
	}

	if _, err := ParseTestPriority("p5-never"); err == nil {
		t.Error("ParseTestPriority(p5-never): expected error")
	}
}

func TestExecutionStatusValid(t *testing.T) {
	tests := []struct {
		status ExecutionStatus
		want   bool
	}{
		{"", true}, // never recorded
		{StatusPassed, true},
		{StatusFailed, true},
		{StatusSkipped, true},
		{"pass", false},
		{"errored", false},
	}

	for _, tt := range tests {
		if got := tt.status.Valid(); got != tt.want {
			t.Errorf("ExecutionStatus(%q).Valid() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestEnumListsMatchValid(t *testing.T) {
	for _, rt := range RequirementTypes {
		if !rt.Valid() {
			t.Errorf("RequirementTypes contains invalid value %q", rt)
		}
	}
	for _, rp := range RequirementPriorities {
		if !rp.Valid() {
			t.Errorf("RequirementPriorities contains invalid value %q", rp)
		}
	}
	for _, tt := range TestTypes {
		if !tt.Valid() {
			t.Errorf("TestTypes contains invalid value %q", tt)
		}
	}
	for _, tp := range TestPriorities {
		if !tp.Valid() {
			t.Errorf("TestPriorities contains invalid value %q", tp)
		}
	}
}
