package rules

import (
	"fmt"

	"si/tools/si/internal/model"
	"si/tools/si/internal/remediation"
)

// BranchShouldBeTagRule is the symmetric case of TagShouldBeBranchRule when
// floatingVersionsUse=tags.
func BranchShouldBeTagRule(owner, repo string, transport remediation.Transport) ValidationRule {
	return ValidationRule{
		Name:        "branch_should_be_tag",
		Description: "floating versions configured to use tags must not exist as branches",
		Priority:    5,
		Category:    CategoryRefType,
		Condition: func(state *model.RepositoryState, cfg model.Config) []Candidate {
			if cfg.FloatingVersionsUse != model.FloatingUseTags {
				return nil
			}
			var out []Candidate
			for _, ref := range state.Branches {
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
			action := &compositeDeleteThenCreateTag{
				delete: remediation.NewDeleteBranch(transport, owner, repo, refPath(model.RefKindBranch, ref.Raw)),
				create: remediation.NewCreateTag(transport, owner, repo, refPath(model.RefKindTag, ref.Raw), ref.SHA),
			}
			return model.NewValidationIssue(
				"branch_should_be_tag",
				model.SeverityError,
				fmt.Sprintf("%s is configured to track tags but exists as a branch", ref.Raw),
				ref.Raw,
				action,
			)
		},
	}
}
