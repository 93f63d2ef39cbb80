package remediation

import (
	"context"
	"fmt"

	"si/tools/si/internal/model"
)

type releaseTarget struct {
	Owner   string
	Repo    string
	TagName string
	SHA     string
}

// CreateRelease creates a release (draft or published), optionally marking
// it latest. Priority 30: a new release cannot be published before it
// exists, so creation always precedes publish/republish/set-latest.
type CreateRelease struct {
	Transport Transport
	Target    releaseTarget
	Draft     bool
	Latest    bool
}

func (a *CreateRelease) Name() string       { return "CreateRelease" }
func (a *CreateRelease) PriorityClass() int { return PriorityCreateRelease }

func (a *CreateRelease) Execute(ctx context.Context, _ *model.RepositoryState) (model.ActionResult, error) {
	res, err := a.Transport.CreateRelease(ctx, a.Target.Owner, a.Target.Repo, CreateReleaseInput{
		TagName: a.Target.TagName,
		SHA:     a.Target.SHA,
		Draft:   a.Draft,
		Latest:  a.Latest,
		Name:    a.Target.TagName,
	})
	return classifyCreateReleaseResult(res, err)
}

func (a *CreateRelease) ManualCommands(_ *model.RepositoryState) []string {
	cmd := fmt.Sprintf("gh release create %s --target %s", a.Target.TagName, a.Target.SHA)
	if a.Draft {
		cmd += " --draft"
	}
	if a.Latest {
		cmd += " --latest"
	}
	return []string{cmd}
}

// PublishRelease transitions draft->published, optionally marking latest.
// Priority 40.
type PublishRelease struct {
	Transport Transport
	Target    releaseTarget
	ReleaseID int64
	Latest    bool
}

func (a *PublishRelease) Name() string       { return "PublishRelease" }
func (a *PublishRelease) PriorityClass() int { return PriorityPublish }

func (a *PublishRelease) Execute(ctx context.Context, _ *model.RepositoryState) (model.ActionResult, error) {
	draft := false
	in := UpdateReleaseInput{Draft: &draft}
	if a.Latest {
		latest := true
		in.Latest = &latest
	}
	res, err := a.Transport.UpdateRelease(ctx, a.Target.Owner, a.Target.Repo, a.ReleaseID, in)
	return classifyUpdateReleaseResult(res, err)
}

func (a *PublishRelease) ManualCommands(_ *model.RepositoryState) []string {
	return []string{fmt.Sprintf("gh release edit %s --draft=false", a.Target.TagName)}
}

// RepublishRelease transitions published->draft->published to seal
// immutability. Priority 45: must follow any publication of the same tag.
type RepublishRelease struct {
	Transport Transport
	Target    releaseTarget
	ReleaseID int64
}

func (a *RepublishRelease) Name() string       { return "RepublishRelease" }
func (a *RepublishRelease) PriorityClass() int { return PriorityRepublishLatest }

func (a *RepublishRelease) Execute(ctx context.Context, _ *model.RepositoryState) (model.ActionResult, error) {
	draft := true
	if res, err := a.Transport.UpdateRelease(ctx, a.Target.Owner, a.Target.Repo, a.ReleaseID, UpdateReleaseInput{Draft: &draft}); err != nil || !res.Success {
		return classifyUpdateReleaseResult(res, err)
	}
	published := false
	res, err := a.Transport.UpdateRelease(ctx, a.Target.Owner, a.Target.Repo, a.ReleaseID, UpdateReleaseInput{Draft: &published})
	return classifyUpdateReleaseResult(res, err)
}

func (a *RepublishRelease) ManualCommands(_ *model.RepositoryState) []string {
	return []string{
		fmt.Sprintf("gh release edit %s --draft=true", a.Target.TagName),
		fmt.Sprintf("gh release edit %s --draft=false", a.Target.TagName),
	}
}

// SetReleaseLatest marks an existing release as latest. Priority 45.
type SetReleaseLatest struct {
	Transport Transport
	Target    releaseTarget
	ReleaseID int64
}

func (a *SetReleaseLatest) Name() string       { return "SetReleaseLatest" }
func (a *SetReleaseLatest) PriorityClass() int { return PriorityRepublishLatest }

func (a *SetReleaseLatest) Execute(ctx context.Context, _ *model.RepositoryState) (model.ActionResult, error) {
	latest := true
	res, err := a.Transport.UpdateRelease(ctx, a.Target.Owner, a.Target.Repo, a.ReleaseID, UpdateReleaseInput{Latest: &latest})
	return classifyUpdateReleaseResult(res, err)
}

func (a *SetReleaseLatest) ManualCommands(_ *model.RepositoryState) []string {
	return []string{fmt.Sprintf("gh release edit %s --latest", a.Target.TagName)}
}

// DeleteRelease removes a release by id. Priority 10, same rationale as the
// ref deletes: must precede any create that reuses the tag.
type DeleteRelease struct {
	Transport Transport
	Target    releaseTarget
	ReleaseID int64
}

func (a *DeleteRelease) Name() string       { return "DeleteRelease" }
func (a *DeleteRelease) PriorityClass() int { return PriorityDelete }

func (a *DeleteRelease) Execute(ctx context.Context, _ *model.RepositoryState) (model.ActionResult, error) {
	if err := a.Transport.DeleteRelease(ctx, a.Target.Owner, a.Target.Repo, a.ReleaseID); err != nil {
		return model.ActionFailure, err
	}
	return model.ActionSuccess, nil
}

func (a *DeleteRelease) ManualCommands(_ *model.RepositoryState) []string {
	return []string{fmt.Sprintf("gh release delete %s --yes", a.Target.TagName)}
}
