package rules

import (
	"fmt"

	"si/tools/si/internal/model"
	"si/tools/si/internal/remediation"
)

// duplicateRefRule builds the three duplicate_*_ref rules: the same version
// name appears as both a tag and a branch, which is always a structural
// violation. The fix deletes whichever kind contradicts
// floatingVersionsUse.
func duplicateRefRule(name, description string, owner, repo string, transport remediation.Transport, matches func(model.VersionRef) bool) ValidationRule {
	return ValidationRule{
		Name:        name,
		Description: description,
		Priority:    5,
		Category:    CategoryRefType,
		Condition: func(state *model.RepositoryState, cfg model.Config) []Candidate {
			var out []Candidate
			for _, tag := range state.Tags {
				if applyIgnore(tag.Raw, cfg) || !matches(tag) {
					continue
				}
				for _, branch := range state.Branches {
					if branch.Raw == tag.Raw {
						out = append(out, [2]model.VersionRef{tag, branch})
					}
				}
			}
			return out
		},
		Check: func(Candidate, *model.RepositoryState, model.Config) bool { return false },
		CreateIssue: func(c Candidate, state *model.RepositoryState, cfg model.Config) *model.ValidationIssue {
			pair := c.([2]model.VersionRef)
			tag, branch := pair[0], pair[1]
			var action model.RemediationAction
			if cfg.FloatingVersionsUse == model.FloatingUseBranches {
				action = remediation.NewDeleteTag(transport, owner, repo, refPath(model.RefKindTag, tag.Raw))
			} else {
				action = remediation.NewDeleteBranch(transport, owner, repo, refPath(model.RefKindBranch, branch.Raw))
			}
			return model.NewValidationIssue(
				name,
				model.SeverityError,
				fmt.Sprintf("%s exists as both a tag and a branch", tag.Raw),
				tag.Raw,
				action,
			)
		},
	}
}

func DuplicateFloatingVersionRefRule(owner, repo string, transport remediation.Transport) ValidationRule {
	return duplicateRefRule("duplicate_floating_version_ref", "a floating version must not exist as both a tag and a branch", owner, repo, transport, func(v model.VersionRef) bool {
		return v.Level == model.LevelMajor || v.Level == model.LevelMinor
	})
}

func DuplicatePatchVersionRefRule(owner, repo string, transport remediation.Transport) ValidationRule {
	return duplicateRefRule("duplicate_patch_version_ref", "a patch version must not exist as both a tag and a branch", owner, repo, transport, func(v model.VersionRef) bool {
		return v.Level == model.LevelPatch
	})
}

func DuplicateLatestRefRule(owner, repo string, transport remediation.Transport) ValidationRule {
	return duplicateRefRule("duplicate_latest_ref", "latest must not exist as both a tag and a branch", owner, repo, transport, func(v model.VersionRef) bool {
		return v.Raw == "latest"
	})
}
