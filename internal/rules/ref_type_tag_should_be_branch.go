package rules

import (
	"fmt"

	"si/tools/si/internal/model"
	"si/tools/si/internal/remediation"
)

// TagShouldBeBranchRule: when floatingVersionsUse=branches, any semver tag
// whose level is major or minor is a structural violation. Fix: delete the
// tag, create the equivalent branch at the same sha.
func TagShouldBeBranchRule(owner, repo string, transport remediation.Transport) ValidationRule {
	return ValidationRule{
		Name:        "tag_should_be_branch",
		Description: "floating versions configured to use branches must not exist as tags",
		Priority:    5,
		Category:    CategoryRefType,
		Condition: func(state *model.RepositoryState, cfg model.Config) []Candidate {
			if cfg.FloatingVersionsUse != model.FloatingUseBranches {
				return nil
			}
			var out []Candidate
			for _, ref := range state.Tags {
				if applyIgnore(ref.Raw, cfg) {
					continue
				}
				if ref.Level == model.LevelMajor || ref.Level == model.LevelMinor {
					out = append(out, ref)
				}
			}
			return out
		},
		Check: func(Candidate, *model.RepositoryState, model.Config) bool { return false },
		CreateIssue: func(c Candidate, state *model.RepositoryState, cfg model.Config) *model.ValidationIssue {
			ref := c.(model.VersionRef)
			action := &compositeDeleteThenCreateBranch{
				delete: remediation.NewDeleteTag(transport, owner, repo, refPath(model.RefKindTag, ref.Raw)),
				create: remediation.NewCreateBranch(transport, owner, repo, refPath(model.RefKindBranch, ref.Raw), ref.SHA),
			}
			return model.NewValidationIssue(
				"tag_should_be_branch",
				model.SeverityError,
				fmt.Sprintf("%s is configured to track branches but exists as a tag", ref.Raw),
				ref.Raw,
				action,
			)
		},
	}
}
