// Package rules implements the rule registry and evaluation engine (spec
// §4.1-4.2), plus the concrete rule set (spec §4.5) spanning five
// categories: ref_type, releases, version_tracking, latest, marketplace.
//
// Each rule lives in its own file so individual rules stay unit-testable in
// isolation, per the source's one-rule-per-unit discoverability property.
package rules

import (
	"si/tools/si/internal/model"
)

type Category string

const (
	CategoryRefType         Category = "ref_type"
	CategoryReleases        Category = "releases"
	CategoryVersionTracking Category = "version_tracking"
	CategoryLatest          Category = "latest"
	CategoryMarketplace     Category = "marketplace"
)

// Candidate is whatever a rule's Condition selects: a VersionRef, a
// ReleaseInfo, or a composite the rule defines for itself.
type Candidate any

// ValidationRule is a descriptor: identity, category, priority, and three
// pure-with-respect-to-state functions.
type ValidationRule struct {
	Name        string
	Description string
	Priority    int
	Category    Category

	Condition   func(state *model.RepositoryState, cfg model.Config) []Candidate
	Check       func(candidate Candidate, state *model.RepositoryState, cfg model.Config) bool
	CreateIssue func(candidate Candidate, state *model.RepositoryState, cfg model.Config) *model.ValidationIssue
}

// effectiveSeverity implements the common "config knob -> severity, none
// disables" mapping (spec §6).
func effectiveSeverity(mode model.CheckMode) (model.Severity, bool) {
	switch mode {
	case model.CheckError:
		return model.SeverityError, true
	case model.CheckWarning:
		return model.SeverityWarning, true
	default:
		return "", false
	}
}

// mostSevereWins implements the "error > warning > disabled" rule used by
// release_should_be_published and floating_version_no_release.
func mostSevereWins(modes ...model.CheckMode) (model.Severity, bool) {
	sawWarning := false
	for _, m := range modes {
		if m == model.CheckError {
			return model.SeverityError, true
		}
		if m == model.CheckWarning {
			sawWarning = true
		}
	}
	if sawWarning {
		return model.SeverityWarning, true
	}
	return "", false
}
