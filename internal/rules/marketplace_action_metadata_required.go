package rules

import (
	"si/tools/si/internal/model"
)

// ActionMetadataRequiredRule: requires descriptor presence, the four
// descriptor fields, and a readme. Cannot be auto-fixed.
func ActionMetadataRequiredRule() ValidationRule {
	return ValidationRule{
		Name:        "action_metadata_required",
		Description: "action descriptor and readme metadata must be complete",
		Priority:    40,
		Category:    CategoryMarketplace,
		Condition: func(state *model.RepositoryState, cfg model.Config) []Candidate {
			if _, enabled := effectiveSeverity(cfg.CheckMarketplace); !enabled {
				return nil
			}
			if state.Marketplace == nil {
				return nil
			}
			return []Candidate{*state.Marketplace}
		},
		Check: func(c Candidate, _ *model.RepositoryState, _ model.Config) bool {
			return c.(model.MarketplaceMetadata).IsValid()
		},
		CreateIssue: func(c Candidate, _ *model.RepositoryState, cfg model.Config) *model.ValidationIssue {
			meta := c.(model.MarketplaceMetadata)
			severity, _ := effectiveSeverity(cfg.CheckMarketplace)
			missing := meta.GetMissingRequirements()
			message := "marketplace metadata incomplete:"
			for _, m := range missing {
				message += " " + m + ";"
			}
			issue := model.NewValidationIssue("action_metadata_required", severity, message, "", nil)
			issue.Status = model.StatusManualFixRequired
			return issue
		},
	}
}
