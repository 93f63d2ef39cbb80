package rules

import (
	"fmt"

	"si/tools/si/internal/model"
	"si/tools/si/internal/remediation"
)

// ReleaseShouldBePublishedRule: draft releases on patch versions must be
// published. Severity is error unless either checkReleases=warning or
// checkImmutability=warning, in which case most-severe-wins applies.
func ReleaseShouldBePublishedRule(owner, repo string, transport remediation.Transport) ValidationRule {
	return ValidationRule{
		Name:        "release_should_be_published",
		Description: "draft releases on patch versions must be published",
		Priority:    11,
		Category:    CategoryReleases,
		Condition: func(state *model.RepositoryState, cfg model.Config) []Candidate {
			if _, enabled := mostSevereWins(cfg.CheckReleases, cfg.CheckImmutability); !enabled {
				return nil
			}
			var out []Candidate
			for _, ref := range patchTags(state, cfg) {
				if rel, ok := state.FindRelease(ref.Raw); ok && rel.IsDraft {
					out = append(out, rel)
				}
			}
			return out
		},
		Check: func(Candidate, *model.RepositoryState, model.Config) bool { return false },
		CreateIssue: func(c Candidate, state *model.RepositoryState, cfg model.Config) *model.ValidationIssue {
			rel := c.(model.ReleaseInfo)
			severity, _ := mostSevereWins(cfg.CheckReleases, cfg.CheckImmutability)
			latest := isHighestPublishedCandidate(state, cfg, rel.TagName)
			action := remediation.NewPublishRelease(transport, owner, repo, rel.TagName, rel.ID, latest)
			return model.NewValidationIssue(
				"release_should_be_published",
				severity,
				fmt.Sprintf("release %s is a draft and must be published", rel.TagName),
				rel.TagName,
				action,
			)
		},
	}
}

// isHighestPublishedCandidate reports whether tag is the globally highest
// non-prerelease patch, so its publish action should also set latest.
func isHighestPublishedCandidate(state *model.RepositoryState, cfg model.Config, tagName string) bool {
	highest, ok := globalHighestPatch(state, cfg)
	return ok && highest.Raw == tagName
}
