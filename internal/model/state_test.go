package model

import "testing"

func TestRepositoryStateReturnCode(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		status IssueStatus
		want   int
	}{
		{name: "pending", status: StatusPending, want: 0},
		{name: "fixed", status: StatusFixed, want: 0},
		{name: "failed", status: StatusFailed, want: 1},
		{name: "manual_fix_required", status: StatusManualFixRequired, want: 1},
		{name: "unfixable", status: StatusUnfixable, want: 1},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			state := &RepositoryState{}
			issue := NewValidationIssue("t", SeverityError, "msg", "v1.0.0", nil)
			issue.Status = tc.status
			state.AddIssue(issue)
			if got := state.ReturnCode(); got != tc.want {
				t.Fatalf("ReturnCode()=%d want=%d", got, tc.want)
			}
		})
	}
}

func TestRepositoryStateFindRelease(t *testing.T) {
	t.Parallel()
	state := &RepositoryState{Releases: []ReleaseInfo{{TagName: "v1.0.0"}}}
	if _, ok := state.FindRelease("v1.0.0"); !ok {
		t.Fatal("expected to find v1.0.0")
	}
	if _, ok := state.FindRelease("v9.9.9"); ok {
		t.Fatal("expected not to find v9.9.9")
	}
}

func TestRepositoryStateAllVersionRefs(t *testing.T) {
	t.Parallel()
	state := &RepositoryState{
		Tags:     []VersionRef{{Raw: "v1.0.0"}},
		Branches: []VersionRef{{Raw: "v1"}},
	}
	if got := len(state.AllVersionRefs()); got != 2 {
		t.Fatalf("AllVersionRefs()=%d want=2", got)
	}
}
