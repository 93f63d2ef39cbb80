package remediation

import (
	"context"
	"errors"
	"testing"

	"si/tools/si/internal/model"
)

type fakeAction struct {
	name     string
	priority int
	result   model.ActionResult
	err      error
	executed *[]string
}

func (a *fakeAction) Name() string                                   { return a.name }
func (a *fakeAction) PriorityClass() int                             { return a.priority }
func (a *fakeAction) ManualCommands(*model.RepositoryState) []string { return nil }

func (a *fakeAction) Execute(context.Context, *model.RepositoryState) (model.ActionResult, error) {
	if a.executed != nil {
		*a.executed = append(*a.executed, a.name)
	}
	return a.result, a.err
}

func issueWithAction(action model.RemediationAction) *model.ValidationIssue {
	return model.NewValidationIssue("t", model.SeverityError, "msg", "v1.0.0", action)
}

func TestExecutorRunDryRunMarksPendingUnfixable(t *testing.T) {
	t.Parallel()
	state := &model.RepositoryState{
		Issues: []*model.ValidationIssue{
			issueWithAction(&fakeAction{name: "a", result: model.ActionSuccess}),
		},
	}
	Executor{}.Run(context.Background(), state, false)
	if state.Issues[0].Status != model.StatusUnfixable {
		t.Fatalf("dry-run status=%v want=unfixable", state.Issues[0].Status)
	}
}

func TestExecutorRunOrdersByPriorityClass(t *testing.T) {
	t.Parallel()
	var executed []string
	state := &model.RepositoryState{
		Issues: []*model.ValidationIssue{
			issueWithAction(&fakeAction{name: "publish", priority: 40, result: model.ActionSuccess, executed: &executed}),
			issueWithAction(&fakeAction{name: "delete", priority: 10, result: model.ActionSuccess, executed: &executed}),
			issueWithAction(&fakeAction{name: "create_ref", priority: 20, result: model.ActionSuccess, executed: &executed}),
		},
	}
	Executor{}.Run(context.Background(), state, true)
	want := []string{"delete", "create_ref", "publish"}
	if len(executed) != len(want) {
		t.Fatalf("executed=%v want=%v", executed, want)
	}
	for i := range want {
		if executed[i] != want[i] {
			t.Fatalf("executed=%v want=%v", executed, want)
		}
	}
}

func TestExecutorRunStatusMapping(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name       string
		result     model.ActionResult
		err        error
		wantStatus model.IssueStatus
	}{
		{name: "success", result: model.ActionSuccess, wantStatus: model.StatusFixed},
		{name: "manual_fix_required", result: model.ActionManualFixRequired, wantStatus: model.StatusManualFixRequired},
		{name: "unfixable", result: model.ActionUnfixable, wantStatus: model.StatusUnfixable},
		{name: "failure", result: model.ActionFailure, err: errors.New("boom"), wantStatus: model.StatusFailed},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			state := &model.RepositoryState{
				Issues: []*model.ValidationIssue{
					issueWithAction(&fakeAction{name: "a", result: tc.result, err: tc.err}),
				},
			}
			Executor{}.Run(context.Background(), state, true)
			if got := state.Issues[0].Status; got != tc.wantStatus {
				t.Fatalf("status=%v want=%v", got, tc.wantStatus)
			}
		})
	}
}

func TestExecutorRunLeavesNonActionableIssuesUnfixable(t *testing.T) {
	t.Parallel()
	state := &model.RepositoryState{
		Issues: []*model.ValidationIssue{
			model.NewValidationIssue("t", model.SeverityWarning, "no fix available", "v1.0.0", nil),
		},
	}
	Executor{}.Run(context.Background(), state, true)
	if state.Issues[0].Status != model.StatusUnfixable {
		t.Fatalf("status=%v want=unfixable", state.Issues[0].Status)
	}
}

func TestExecutorRunOneFailureDoesNotBlockOthers(t *testing.T) {
	t.Parallel()
	state := &model.RepositoryState{
		Issues: []*model.ValidationIssue{
			issueWithAction(&fakeAction{name: "fails", priority: 10, result: model.ActionFailure, err: errors.New("boom")}),
			issueWithAction(&fakeAction{name: "succeeds", priority: 20, result: model.ActionSuccess}),
		},
	}
	Executor{}.Run(context.Background(), state, true)
	if state.Issues[0].Status != model.StatusFailed {
		t.Fatalf("first issue status=%v want=failed", state.Issues[0].Status)
	}
	if state.Issues[1].Status != model.StatusFixed {
		t.Fatalf("second issue status=%v want=fixed", state.Issues[1].Status)
	}
}

func TestExecutorRunStopsOnCancelledContextBetweenActions(t *testing.T) {
	t.Parallel()
	var executed []string
	state := &model.RepositoryState{
		Issues: []*model.ValidationIssue{
			issueWithAction(&fakeAction{name: "first", priority: 10, result: model.ActionSuccess, executed: &executed}),
			issueWithAction(&fakeAction{name: "second", priority: 20, result: model.ActionSuccess, executed: &executed}),
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	Executor{}.Run(ctx, state, true)
	if len(executed) != 0 {
		t.Fatalf("expected no action to execute once the context was already cancelled, got %v", executed)
	}
	for _, issue := range state.Issues {
		if issue.Status != model.StatusUnfixable {
			t.Fatalf("expected cancelled-before-execution issues to sweep to unfixable, got %v", issue.Status)
		}
	}
}
