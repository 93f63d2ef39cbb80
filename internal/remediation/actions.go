// Package remediation implements the closed 11-variant remediation action
// family (spec §4.3) and the priority-ordered executor (spec §4.4).
package remediation

import (
	"context"
	"fmt"

	"si/tools/si/internal/model"
)

// Transport is the subset of the transport boundary the remediation actions
// invoke. Concrete actions never talk to the network directly; they only
// ever call through this interface, so the executor and action set stay
// testable with a fake.
type Transport interface {
	UpsertRef(ctx context.Context, owner, repo, ref, sha string, force bool) (UpsertRefResult, error)
	DeleteRef(ctx context.Context, owner, repo, ref string) error
	CreateRelease(ctx context.Context, owner, repo string, in CreateReleaseInput) (CreateReleaseResult, error)
	UpdateRelease(ctx context.Context, owner, repo string, releaseID int64, in UpdateReleaseInput) (UpdateReleaseResult, error)
	DeleteRelease(ctx context.Context, owner, repo string, releaseID int64) error
}

type UpsertRefResult struct {
	Success          bool
	RequiresManualFix bool
	ErrorText        string
}

type CreateReleaseInput struct {
	TagName  string
	SHA      string
	Draft    bool
	Latest   bool
	Name     string
	Body     string
}

type CreateReleaseResult struct {
	Success     bool
	ReleaseID   int64
	IsUnfixable bool
	ErrorText   string
}

type UpdateReleaseInput struct {
	Draft  *bool
	Latest *bool
}

type UpdateReleaseResult struct {
	Success     bool
	IsUnfixable bool
	ErrorText   string
}

// Priority classes per spec §4.3.
const (
	PriorityDelete           = 10
	PriorityCreateUpdateRef  = 20
	PriorityCreateRelease    = 30
	PriorityPublish          = 40
	PriorityRepublishLatest  = 45
)

func classifyRefResult(res UpsertRefResult, err error) (model.ActionResult, error) {
	if err != nil {
		return model.ActionFailure, err
	}
	if res.Success {
		return model.ActionSuccess, nil
	}
	if res.RequiresManualFix {
		return model.ActionManualFixRequired, fmt.Errorf("%s", res.ErrorText)
	}
	return model.ActionFailure, fmt.Errorf("%s", res.ErrorText)
}

func classifyCreateReleaseResult(res CreateReleaseResult, err error) (model.ActionResult, error) {
	if err != nil {
		return model.ActionFailure, err
	}
	if res.Success {
		return model.ActionSuccess, nil
	}
	if res.IsUnfixable {
		return model.ActionUnfixable, fmt.Errorf("%s", res.ErrorText)
	}
	return model.ActionFailure, fmt.Errorf("%s", res.ErrorText)
}

func classifyUpdateReleaseResult(res UpdateReleaseResult, err error) (model.ActionResult, error) {
	if err != nil {
		return model.ActionFailure, err
	}
	if res.Success {
		return model.ActionSuccess, nil
	}
	if res.IsUnfixable {
		return model.ActionUnfixable, fmt.Errorf("%s", res.ErrorText)
	}
	return model.ActionFailure, fmt.Errorf("%s", res.ErrorText)
}
