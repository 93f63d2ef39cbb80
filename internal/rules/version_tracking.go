package rules

import (
	"fmt"

	"si/tools/si/internal/model"
	"si/tools/si/internal/remediation"
)

type trackingCandidate struct {
	name     string
	expected model.VersionRef // highest patch this floating ref should track
	current  model.VersionRef
	exists   bool
}

// MajorVersionTrackingRule: for each major version M seen anywhere, the
// configured floating kind at name "vM" must exist and point to the sha of
// the highest non-prerelease patch of major M. Always error.
func MajorVersionTrackingRule(owner, repo string, transport remediation.Transport) ValidationRule {
	return ValidationRule{
		Name:        "major_version_tracking",
		Description: "a major floating ref must exist and track the highest patch of that major version",
		Priority:    20,
		Category:    CategoryVersionTracking,
		Condition: func(state *model.RepositoryState, cfg model.Config) []Candidate {
			kind := configuredKind(cfg)
			var out []Candidate
			for _, major := range majorVersionsSeen(state, cfg) {
				highest, ok := highestPatch(state, cfg, major, nil)
				if !ok {
					continue
				}
				name := fmt.Sprintf("v%d", major)
				current, exists := findFloatingRef(state, name, kind)
				out = append(out, trackingCandidate{name: name, expected: highest, current: current, exists: exists})
			}
			return out
		},
		Check: func(c Candidate, _ *model.RepositoryState, _ model.Config) bool {
			t := c.(trackingCandidate)
			return t.exists && t.current.SHA == t.expected.SHA
		},
		CreateIssue: func(c Candidate, state *model.RepositoryState, cfg model.Config) *model.ValidationIssue {
			t := c.(trackingCandidate)
			kind := configuredKind(cfg)
			if !t.exists {
				return newVersionTrackingIssue(owner, repo, transport, "major_tag_missing", t, kind, false)
			}
			return newVersionTrackingIssue(owner, repo, transport, "major_tag_tracks_highest_patch", t, kind, true)
		},
	}
}

// MinorVersionTrackingRule: when minor tracking is enabled, the same
// invariant applies at "vM.N". Severity follows checkMinorVersion.
func MinorVersionTrackingRule(owner, repo string, transport remediation.Transport) ValidationRule {
	return ValidationRule{
		Name:        "minor_version_tracking",
		Description: "a minor floating ref must exist and track the highest patch of that minor version",
		Priority:    25,
		Category:    CategoryVersionTracking,
		Condition: func(state *model.RepositoryState, cfg model.Config) []Candidate {
			if _, enabled := effectiveSeverity(cfg.CheckMinorVersion); !enabled {
				return nil
			}
			kind := configuredKind(cfg)
			var out []Candidate
			for _, major := range majorVersionsSeen(state, cfg) {
				for _, minor := range minorVersionsSeen(state, cfg, major) {
					minorCopy := minor
					highest, ok := highestPatch(state, cfg, major, &minorCopy)
					if !ok {
						continue
					}
					name := fmt.Sprintf("v%d.%d", major, minor)
					current, exists := findFloatingRef(state, name, kind)
					out = append(out, trackingCandidate{name: name, expected: highest, current: current, exists: exists})
				}
			}
			return out
		},
		Check: func(c Candidate, _ *model.RepositoryState, _ model.Config) bool {
			t := c.(trackingCandidate)
			return t.exists && t.current.SHA == t.expected.SHA
		},
		CreateIssue: func(c Candidate, state *model.RepositoryState, cfg model.Config) *model.ValidationIssue {
			t := c.(trackingCandidate)
			kind := configuredKind(cfg)
			severity, _ := effectiveSeverity(cfg.CheckMinorVersion)
			issueType := "minor_tag_tracks_highest_patch"
			if !t.exists {
				issueType = "minor_tag_missing"
			}
			issue := newVersionTrackingIssue(owner, repo, transport, issueType, t, kind, t.exists)
			issue.Severity = severity
			return issue
		},
	}
}

// PatchTagMissingRule is a fallback structural check: patch tag existence
// is otherwise implied by patch_release_required (release existence implies
// tag existence in the hosting API), so this only runs when releases are
// not being checked (checkReleases=none).
func PatchTagMissingRule(owner, repo string, transport remediation.Transport) ValidationRule {
	return ValidationRule{
		Name:        "patch_tag_missing",
		Description: "every release must have a corresponding patch tag, checked when release presence is not otherwise validated",
		Priority:    21,
		Category:    CategoryVersionTracking,
		Condition: func(state *model.RepositoryState, cfg model.Config) []Candidate {
			if cfg.CheckReleases != model.CheckNone {
				return nil
			}
			var out []Candidate
			for _, rel := range state.Releases {
				if rel.IsIgnored {
					continue
				}
				out = append(out, rel)
			}
			return out
		},
		Check: func(c Candidate, state *model.RepositoryState, _ model.Config) bool {
			rel := c.(model.ReleaseInfo)
			for _, ref := range state.Tags {
				if ref.Raw == rel.TagName {
					return true
				}
			}
			return false
		},
		CreateIssue: func(c Candidate, state *model.RepositoryState, cfg model.Config) *model.ValidationIssue {
			rel := c.(model.ReleaseInfo)
			action := remediation.NewCreateTag(transport, owner, repo, refPath(model.RefKindTag, rel.TagName), rel.SHA)
			return model.NewValidationIssue(
				"patch_tag_missing",
				model.SeverityError,
				fmt.Sprintf("release %s has no corresponding tag", rel.TagName),
				rel.TagName,
				action,
			)
		},
	}
}

func newVersionTrackingIssue(owner, repo string, transport remediation.Transport, issueType string, t trackingCandidate, kind model.RefKind, existed bool) *model.ValidationIssue {
	var action model.RemediationAction
	ref := refPath(kind, t.name)
	if kind == model.RefKindBranch {
		if existed {
			action = remediation.NewUpdateBranch(transport, owner, repo, ref, t.expected.SHA)
		} else {
			action = remediation.NewCreateBranch(transport, owner, repo, ref, t.expected.SHA)
		}
	} else {
		if existed {
			action = remediation.NewUpdateTag(transport, owner, repo, ref, t.expected.SHA)
		} else {
			action = remediation.NewCreateTag(transport, owner, repo, ref, t.expected.SHA)
		}
	}
	message := fmt.Sprintf("%s must track %s", t.name, t.expected.Raw)
	issue := model.NewValidationIssue(issueType, model.SeverityError, message, t.name, action)
	issue.CurrentSHA = t.current.SHA
	issue.ExpectedSHA = t.expected.SHA
	return issue
}
