package rules

import (
	"fmt"

	"si/tools/si/internal/model"
	"si/tools/si/internal/remediation"
)

// DuplicateReleaseRule: when two releases share a patch tag, keep the
// published one (or the oldest-by-id draft if all are drafts); the rest
// are marked for deletion. Only patch versions participate.
func DuplicateReleaseRule(owner, repo string, transport remediation.Transport) ValidationRule {
	return ValidationRule{
		Name:        "duplicate_release",
		Description: "a patch tag must have at most one release",
		Priority:    14,
		Category:    CategoryReleases,
		Condition: func(state *model.RepositoryState, cfg model.Config) []Candidate {
			groups := map[string][]model.ReleaseInfo{}
			for _, ref := range patchTags(state, cfg) {
				for _, rel := range state.Releases {
					if rel.TagName == ref.Raw {
						groups[ref.Raw] = append(groups[ref.Raw], rel)
					}
				}
			}
			var out []Candidate
			for _, releases := range groups {
				if len(releases) < 2 {
					continue
				}
				keeper := pickReleaseKeeper(releases)
				for _, rel := range releases {
					if rel.ID != keeper.ID {
						out = append(out, rel)
					}
				}
			}
			return out
		},
		Check: func(Candidate, *model.RepositoryState, model.Config) bool { return false },
		CreateIssue: func(c Candidate, state *model.RepositoryState, cfg model.Config) *model.ValidationIssue {
			rel := c.(model.ReleaseInfo)
			action := remediation.NewDeleteRelease(transport, owner, repo, rel.TagName, rel.ID)
			return model.NewValidationIssue(
				"duplicate_release",
				model.SeverityError,
				fmt.Sprintf("release %d duplicates tag %s", rel.ID, rel.TagName),
				rel.TagName,
				action,
			)
		},
	}
}

// pickReleaseKeeper prefers a published release; if all are drafts, keeps
// the oldest (lowest id).
func pickReleaseKeeper(releases []model.ReleaseInfo) model.ReleaseInfo {
	for _, rel := range releases {
		if !rel.IsDraft {
			return rel
		}
	}
	keeper := releases[0]
	for _, rel := range releases[1:] {
		if rel.ID < keeper.ID {
			keeper = rel
		}
	}
	return keeper
}
