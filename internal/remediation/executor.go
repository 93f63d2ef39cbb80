package remediation

import (
	"context"
	"fmt"
	"sort"

	"si/tools/si/internal/model"
)

// Executor runs pending, auto-fixable issues through their remediation
// actions in priority order (spec §4.4).
type Executor struct{}

type orderedIssue struct {
	issue *model.ValidationIssue
	index int
}

// Run executes the remediation pass. With autoFix=false every pending issue
// transitions straight to unfixable (the manual-report path). With
// autoFix=true, actionable issues execute in (priorityClass,
// insertionOrder) order; one failure never blocks the rest.
func (Executor) Run(ctx context.Context, state *model.RepositoryState, autoFix bool) {
	if !autoFix {
		for _, issue := range state.Issues {
			if issue.Status == model.StatusPending {
				issue.Status = model.StatusUnfixable
			}
		}
		return
	}

	var actionable []orderedIssue
	for i, issue := range state.Issues {
		if issue.Status != model.StatusPending {
			continue
		}
		if issue.RemediationAction == nil {
			continue
		}
		actionable = append(actionable, orderedIssue{issue: issue, index: i})
	}

	sort.SliceStable(actionable, func(i, j int) bool {
		return actionable[i].issue.RemediationAction.PriorityClass() < actionable[j].issue.RemediationAction.PriorityClass()
	})

	for _, oi := range actionable {
		if ctx.Err() != nil {
			break
		}
		issue := oi.issue
		result, err := issue.RemediationAction.Execute(ctx, state)
		switch result {
		case model.ActionSuccess:
			issue.Status = model.StatusFixed
		case model.ActionManualFixRequired:
			issue.Status = model.StatusManualFixRequired
			issue.Message = fmt.Sprintf("%s (manual fix required: insufficient permissions)", issue.Message)
		case model.ActionUnfixable:
			issue.Status = model.StatusUnfixable
		default:
			issue.Status = model.StatusFailed
			if err != nil {
				issue.Message = fmt.Sprintf("%s (remediation failed: %v)", issue.Message, err)
			}
		}
	}

	for _, issue := range state.Issues {
		if issue.Status == model.StatusPending {
			issue.Status = model.StatusUnfixable
		}
	}
}
