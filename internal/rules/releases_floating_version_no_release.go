package rules

import (
	"fmt"

	"si/tools/si/internal/model"
	"si/tools/si/internal/remediation"
)

// FloatingVersionNoReleaseRule: floating tags (major/minor/latest) must not
// have any release. An immutable release on a floating tag is always
// error/unfixable; a mutable one follows most-severe-wins and is fixed by
// deleting the release.
func FloatingVersionNoReleaseRule(owner, repo string, transport remediation.Transport) ValidationRule {
	return ValidationRule{
		Name:        "floating_version_no_release",
		Description: "floating version tags must not carry a release",
		Priority:    15,
		Category:    CategoryReleases,
		Condition: func(state *model.RepositoryState, cfg model.Config) []Candidate {
			var out []Candidate
			for _, ref := range state.Tags {
				if applyIgnore(ref.Raw, cfg) {
					continue
				}
				if ref.Level != model.LevelMajor && ref.Level != model.LevelMinor && ref.Raw != "latest" {
					continue
				}
				if rel, ok := state.FindRelease(ref.Raw); ok {
					out = append(out, rel)
				}
			}
			return out
		},
		Check: func(Candidate, *model.RepositoryState, model.Config) bool { return false },
		CreateIssue: func(c Candidate, state *model.RepositoryState, cfg model.Config) *model.ValidationIssue {
			rel := c.(model.ReleaseInfo)
			if rel.IsImmutable {
				return model.NewValidationIssue(
					"floating_version_no_release",
					model.SeverityError,
					fmt.Sprintf("floating version %s has an immutable release and cannot be repaired automatically", rel.TagName),
					rel.TagName,
					nil,
				)
			}
			severity, enabled := mostSevereWins(cfg.CheckReleases, cfg.CheckImmutability)
			if !enabled {
				return nil
			}
			action := remediation.NewDeleteRelease(transport, owner, repo, rel.TagName, rel.ID)
			return model.NewValidationIssue(
				"floating_version_no_release",
				severity,
				fmt.Sprintf("floating version %s must not have a release", rel.TagName),
				rel.TagName,
				action,
			)
		},
	}
}
