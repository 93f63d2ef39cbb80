package rules

import (
	"context"
	"fmt"

	"si/tools/si/internal/model"
)

// Prober is the marketplace publication probe collaborator (spec §1's
// "marketplace publication probe"): it fetches a public listing page and
// reports whether the given version currently appears as the selection.
// Inconclusive=true means the probe could not determine publication (e.g.
// a network error) and the rule must pass rather than false-positive.
type Prober interface {
	IsPublished(ctx context.Context, owner, repo, version string) (published bool, inconclusive bool, err error)
}

// MarketplacePublicationRequiredRule: only runs if metadata is valid and a
// latest release exists.
func MarketplacePublicationRequiredRule(owner, repo string, prober Prober) ValidationRule {
	return ValidationRule{
		Name:        "marketplace_publication_required",
		Description: "the highest patch version must be the published marketplace selection",
		Priority:    50,
		Category:    CategoryMarketplace,
		Condition: func(state *model.RepositoryState, cfg model.Config) []Candidate {
			if _, enabled := effectiveSeverity(cfg.CheckMarketplace); !enabled {
				return nil
			}
			if state.Marketplace == nil || !state.Marketplace.IsValid() {
				return nil
			}
			highest, ok := globalHighestPatch(state, cfg)
			if !ok {
				return nil
			}
			hasLatestRelease := false
			for _, rel := range state.Releases {
				if rel.IsLatest {
					hasLatestRelease = true
					break
				}
			}
			if !hasLatestRelease {
				return nil
			}
			return []Candidate{highest}
		},
		Check: func(c Candidate, _ *model.RepositoryState, _ model.Config) bool {
			ref := c.(model.VersionRef)
			if prober == nil {
				return true
			}
			published, inconclusive, err := prober.IsPublished(context.Background(), owner, repo, ref.Raw)
			if err != nil || inconclusive {
				return true // probe couldn't tell: pass to avoid a false positive
			}
			return published
		},
		CreateIssue: func(c Candidate, _ *model.RepositoryState, cfg model.Config) *model.ValidationIssue {
			ref := c.(model.VersionRef)
			severity, _ := effectiveSeverity(cfg.CheckMarketplace)
			message := fmt.Sprintf(
				"version %s does not appear as the published marketplace selection; "+
					"publish a new listing revision selecting this tag",
				ref.Raw,
			)
			issue := model.NewValidationIssue("marketplace_publication_required", severity, message, ref.Raw, nil)
			issue.Status = model.StatusManualFixRequired
			return issue
		},
	}
}
