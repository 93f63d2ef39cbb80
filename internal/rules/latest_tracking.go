package rules

import (
	"fmt"

	"si/tools/si/internal/model"
	"si/tools/si/internal/remediation"
)

// LatestTracksGlobalHighestRule: if a ref named "latest" of the configured
// kind exists, it must point to the highest non-prerelease patch across
// all major versions. The rule never creates "latest" when absent.
func LatestTracksGlobalHighestRule(owner, repo string, transport remediation.Transport) ValidationRule {
	return ValidationRule{
		Name:        "latest_tracks_global_highest",
		Description: "a latest ref must track the globally highest patch version",
		Priority:    30,
		Category:    CategoryLatest,
		Condition: func(state *model.RepositoryState, cfg model.Config) []Candidate {
			kind := configuredKind(cfg)
			current, exists := findFloatingRef(state, "latest", kind)
			if !exists {
				return nil
			}
			highest, ok := globalHighestPatch(state, cfg)
			if !ok {
				return nil
			}
			return []Candidate{trackingCandidate{name: "latest", expected: highest, current: current, exists: true}}
		},
		Check: func(c Candidate, _ *model.RepositoryState, _ model.Config) bool {
			t := c.(trackingCandidate)
			return t.current.SHA == t.expected.SHA
		},
		CreateIssue: func(c Candidate, state *model.RepositoryState, cfg model.Config) *model.ValidationIssue {
			t := c.(trackingCandidate)
			kind := configuredKind(cfg)
			ruleName := "latest_tag_tracks_global_highest"
			if kind == model.RefKindBranch {
				ruleName = "latest_branch_tracks_global_highest"
			}
			issue := newVersionTrackingIssue(owner, repo, transport, ruleName, t, kind, true)
			issue.Message = fmt.Sprintf("latest must track %s", t.expected.Raw)
			return issue
		},
	}
}
