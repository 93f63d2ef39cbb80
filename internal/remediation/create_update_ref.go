package remediation

import (
	"context"
	"fmt"

	"si/tools/si/internal/model"
)

// CreateTag upserts a tag ref to sha, without force. Priority 20.
type CreateTag struct {
	Transport Transport
	Target    refTarget
}

func (a *CreateTag) Name() string       { return "CreateTag" }
func (a *CreateTag) PriorityClass() int { return PriorityCreateUpdateRef }

func (a *CreateTag) Execute(ctx context.Context, _ *model.RepositoryState) (model.ActionResult, error) {
	res, err := a.Transport.UpsertRef(ctx, a.Target.Owner, a.Target.Repo, a.Target.Ref, a.Target.SHA, false)
	return classifyRefResult(res, err)
}

func (a *CreateTag) ManualCommands(_ *model.RepositoryState) []string {
	return []string{fmt.Sprintf("git tag %s %s && git push origin %s", tagName(a.Target.Ref), a.Target.SHA, tagName(a.Target.Ref))}
}

// UpdateTag upserts a tag ref to sha, force=true. Priority 20.
type UpdateTag struct {
	Transport Transport
	Target    refTarget
}

func (a *UpdateTag) Name() string       { return "UpdateTag" }
func (a *UpdateTag) PriorityClass() int { return PriorityCreateUpdateRef }

func (a *UpdateTag) Execute(ctx context.Context, _ *model.RepositoryState) (model.ActionResult, error) {
	res, err := a.Transport.UpsertRef(ctx, a.Target.Owner, a.Target.Repo, a.Target.Ref, a.Target.SHA, true)
	return classifyRefResult(res, err)
}

func (a *UpdateTag) ManualCommands(_ *model.RepositoryState) []string {
	return []string{fmt.Sprintf("git tag -f %s %s && git push --force origin %s", tagName(a.Target.Ref), a.Target.SHA, tagName(a.Target.Ref))}
}

// CreateBranch upserts a branch ref to sha, without force. Priority 20.
type CreateBranch struct {
	Transport Transport
	Target    refTarget
}

func (a *CreateBranch) Name() string       { return "CreateBranch" }
func (a *CreateBranch) PriorityClass() int { return PriorityCreateUpdateRef }

func (a *CreateBranch) Execute(ctx context.Context, _ *model.RepositoryState) (model.ActionResult, error) {
	res, err := a.Transport.UpsertRef(ctx, a.Target.Owner, a.Target.Repo, a.Target.Ref, a.Target.SHA, false)
	return classifyRefResult(res, err)
}

func (a *CreateBranch) ManualCommands(_ *model.RepositoryState) []string {
	return []string{fmt.Sprintf("git branch %s %s && git push origin %s", branchName(a.Target.Ref), a.Target.SHA, branchName(a.Target.Ref))}
}

// UpdateBranch upserts a branch ref to sha, force=true. Priority 20.
type UpdateBranch struct {
	Transport Transport
	Target    refTarget
}

func (a *UpdateBranch) Name() string       { return "UpdateBranch" }
func (a *UpdateBranch) PriorityClass() int { return PriorityCreateUpdateRef }

func (a *UpdateBranch) Execute(ctx context.Context, _ *model.RepositoryState) (model.ActionResult, error) {
	res, err := a.Transport.UpsertRef(ctx, a.Target.Owner, a.Target.Repo, a.Target.Ref, a.Target.SHA, true)
	return classifyRefResult(res, err)
}

func (a *UpdateBranch) ManualCommands(_ *model.RepositoryState) []string {
	return []string{fmt.Sprintf("git branch -f %s %s && git push --force origin %s", branchName(a.Target.Ref), a.Target.SHA, branchName(a.Target.Ref))}
}
