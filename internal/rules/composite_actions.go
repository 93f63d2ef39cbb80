package rules

import (
	"context"

	"si/tools/si/internal/model"
	"si/tools/si/internal/remediation"
)

// The ref_type rules fix a ref-kind mismatch as delete-then-create rather
// than a single remediation variant; both halves are themselves closed-set
// actions (remediation.DeleteTag, remediation.CreateBranch, ...), this is
// just the glue that runs them back to back under one issue.

type compositeDeleteThenCreateBranch struct {
	delete *remediation.DeleteTag
	create *remediation.CreateBranch
}

func (c *compositeDeleteThenCreateBranch) Name() string       { return "TagToBranch" }
func (c *compositeDeleteThenCreateBranch) PriorityClass() int { return c.delete.PriorityClass() }

func (c *compositeDeleteThenCreateBranch) Execute(ctx context.Context, state *model.RepositoryState) (model.ActionResult, error) {
	if res, err := c.delete.Execute(ctx, state); err != nil || res != model.ActionSuccess {
		return res, err
	}
	return c.create.Execute(ctx, state)
}

func (c *compositeDeleteThenCreateBranch) ManualCommands(state *model.RepositoryState) []string {
	return append(c.delete.ManualCommands(state), c.create.ManualCommands(state)...)
}

type compositeDeleteThenCreateTag struct {
	delete *remediation.DeleteBranch
	create *remediation.CreateTag
}

func (c *compositeDeleteThenCreateTag) Name() string       { return "BranchToTag" }
func (c *compositeDeleteThenCreateTag) PriorityClass() int { return c.delete.PriorityClass() }

func (c *compositeDeleteThenCreateTag) Execute(ctx context.Context, state *model.RepositoryState) (model.ActionResult, error) {
	if res, err := c.delete.Execute(ctx, state); err != nil || res != model.ActionSuccess {
		return res, err
	}
	return c.create.Execute(ctx, state)
}

func (c *compositeDeleteThenCreateTag) ManualCommands(state *model.RepositoryState) []string {
	return append(c.delete.ManualCommands(state), c.create.ManualCommands(state)...)
}
