package rules

import (
	"fmt"

	"si/tools/si/internal/model"
	"si/tools/si/internal/remediation"
)

// ReleaseShouldBeImmutableRule: published-but-mutable releases on patch
// versions must be republished to seal immutability. Severity follows
// checkImmutability.
func ReleaseShouldBeImmutableRule(owner, repo string, transport remediation.Transport) ValidationRule {
	return ValidationRule{
		Name:        "release_should_be_immutable",
		Description: "published releases on patch versions must be immutable",
		Priority:    12,
		Category:    CategoryReleases,
		Condition: func(state *model.RepositoryState, cfg model.Config) []Candidate {
			if _, enabled := effectiveSeverity(cfg.CheckImmutability); !enabled {
				return nil
			}
			var out []Candidate
			for _, ref := range patchTags(state, cfg) {
				if rel, ok := state.FindRelease(ref.Raw); ok && !rel.IsDraft && !rel.IsImmutable {
					out = append(out, rel)
				}
			}
			return out
		},
		Check: func(Candidate, *model.RepositoryState, model.Config) bool { return false },
		CreateIssue: func(c Candidate, state *model.RepositoryState, cfg model.Config) *model.ValidationIssue {
			rel := c.(model.ReleaseInfo)
			severity, _ := effectiveSeverity(cfg.CheckImmutability)
			action := remediation.NewRepublishRelease(transport, owner, repo, rel.TagName, rel.ID)
			return model.NewValidationIssue(
				"release_should_be_immutable",
				severity,
				fmt.Sprintf("release %s is published but mutable", rel.TagName),
				rel.TagName,
				action,
			)
		},
	}
}
