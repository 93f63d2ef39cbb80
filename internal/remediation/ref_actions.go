package remediation

import (
	"context"
	"fmt"

	"si/tools/si/internal/model"
)

type refTarget struct {
	Owner string
	Repo  string
	Ref   string // e.g. "tags/v1" or "heads/v1"
	SHA   string
}

// DeleteTag removes a tag ref. Priority 10: deletes must precede creates on
// the same ref to avoid transient conflicts.
type DeleteTag struct {
	Transport Transport
	Target    refTarget
}

func (a *DeleteTag) Name() string       { return "DeleteTag" }
func (a *DeleteTag) PriorityClass() int { return PriorityDelete }

func (a *DeleteTag) Execute(ctx context.Context, _ *model.RepositoryState) (model.ActionResult, error) {
	if err := a.Transport.DeleteRef(ctx, a.Target.Owner, a.Target.Repo, a.Target.Ref); err != nil {
		return model.ActionFailure, err
	}
	return model.ActionSuccess, nil
}

func (a *DeleteTag) ManualCommands(_ *model.RepositoryState) []string {
	return []string{fmt.Sprintf("git push --delete origin %s", tagName(a.Target.Ref))}
}

// DeleteBranch removes a branch ref. Priority 10, same rationale as DeleteTag.
type DeleteBranch struct {
	Transport Transport
	Target    refTarget
}

func (a *DeleteBranch) Name() string       { return "DeleteBranch" }
func (a *DeleteBranch) PriorityClass() int { return PriorityDelete }

func (a *DeleteBranch) Execute(ctx context.Context, _ *model.RepositoryState) (model.ActionResult, error) {
	if err := a.Transport.DeleteRef(ctx, a.Target.Owner, a.Target.Repo, a.Target.Ref); err != nil {
		return model.ActionFailure, err
	}
	return model.ActionSuccess, nil
}

func (a *DeleteBranch) ManualCommands(_ *model.RepositoryState) []string {
	return []string{fmt.Sprintf("git push --delete origin %s", branchName(a.Target.Ref))}
}

func tagName(ref string) string    { return trimPrefix(ref, "tags/") }
func branchName(ref string) string { return trimPrefix(ref, "heads/") }

func trimPrefix(s, prefix string) string {
	if len(s) >= len(prefix) && s[:len(prefix)] == prefix {
		return s[len(prefix):]
	}
	return s
}
