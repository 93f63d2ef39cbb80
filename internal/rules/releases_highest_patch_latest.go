package rules

import (
	"fmt"

	"si/tools/si/internal/model"
	"si/tools/si/internal/remediation"
)

// HighestPatchReleaseShouldBeLatestRule: the release on the globally-highest
// non-prerelease patch version must have isLatest=true. Always error.
func HighestPatchReleaseShouldBeLatestRule(owner, repo string, transport remediation.Transport) ValidationRule {
	return ValidationRule{
		Name:        "highest_patch_release_should_be_latest",
		Description: "the release on the highest patch version must be marked latest",
		Priority:    13,
		Category:    CategoryReleases,
		Condition: func(state *model.RepositoryState, cfg model.Config) []Candidate {
			highest, ok := globalHighestPatch(state, cfg)
			if !ok {
				return nil
			}
			rel, ok := state.FindRelease(highest.Raw)
			if !ok {
				return nil
			}
			return []Candidate{rel}
		},
		Check: func(c Candidate, _ *model.RepositoryState, _ model.Config) bool {
			return c.(model.ReleaseInfo).IsLatest
		},
		CreateIssue: func(c Candidate, state *model.RepositoryState, cfg model.Config) *model.ValidationIssue {
			rel := c.(model.ReleaseInfo)
			action := remediation.NewSetReleaseLatest(transport, owner, repo, rel.TagName, rel.ID)
			return model.NewValidationIssue(
				"highest_patch_release_should_be_latest",
				model.SeverityError,
				fmt.Sprintf("release %s is the highest patch version and must be marked latest", rel.TagName),
				rel.TagName,
				action,
			)
		},
	}
}
