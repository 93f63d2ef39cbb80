package rules

import (
	"fmt"

	"si/tools/si/internal/model"
	"si/tools/si/internal/remediation"
)

// PatchReleaseRequiredRule: every non-ignored patch tag must have a
// release. Severity is config-derived from checkReleases.
func PatchReleaseRequiredRule(owner, repo string, transport remediation.Transport) ValidationRule {
	return ValidationRule{
		Name:        "patch_release_required",
		Description: "every patch tag must have a release",
		Priority:    10,
		Category:    CategoryReleases,
		Condition: func(state *model.RepositoryState, cfg model.Config) []Candidate {
			if _, enabled := effectiveSeverity(cfg.CheckReleases); !enabled {
				return nil
			}
			var out []Candidate
			for _, ref := range patchTags(state, cfg) {
				out = append(out, ref)
			}
			return out
		},
		Check: func(c Candidate, state *model.RepositoryState, _ model.Config) bool {
			ref := c.(model.VersionRef)
			_, ok := state.FindRelease(ref.Raw)
			return ok
		},
		CreateIssue: func(c Candidate, state *model.RepositoryState, cfg model.Config) *model.ValidationIssue {
			ref := c.(model.VersionRef)
			severity, _ := effectiveSeverity(cfg.CheckReleases)
			action := remediation.NewCreateRelease(transport, owner, repo, ref.Raw, ref.SHA, false, false)
			return model.NewValidationIssue(
				"patch_release_required",
				severity,
				fmt.Sprintf("%s has no release", ref.Raw),
				ref.Raw,
				action,
			)
		},
	}
}
