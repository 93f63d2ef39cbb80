package rules

import (
	"si/tools/si/internal/remediation"
)

// BuildRegistry assembles the full rule set (spec §4.5) bound to one
// owner/repo and its remediation transport/marketplace prober.
func BuildRegistry(owner, repo string, transport remediation.Transport, prober Prober) []ValidationRule {
	return []ValidationRule{
		TagShouldBeBranchRule(owner, repo, transport),
		BranchShouldBeTagRule(owner, repo, transport),
		DuplicateFloatingVersionRefRule(owner, repo, transport),
		DuplicatePatchVersionRefRule(owner, repo, transport),
		DuplicateLatestRefRule(owner, repo, transport),

		PatchReleaseRequiredRule(owner, repo, transport),
		ReleaseShouldBePublishedRule(owner, repo, transport),
		ReleaseShouldBeImmutableRule(owner, repo, transport),
		HighestPatchReleaseShouldBeLatestRule(owner, repo, transport),
		DuplicateReleaseRule(owner, repo, transport),
		FloatingVersionNoReleaseRule(owner, repo, transport),

		MajorVersionTrackingRule(owner, repo, transport),
		MinorVersionTrackingRule(owner, repo, transport),
		PatchTagMissingRule(owner, repo, transport),

		LatestTracksGlobalHighestRule(owner, repo, transport),

		ActionMetadataRequiredRule(),
		MarketplacePublicationRequiredRule(owner, repo, prober),
	}
}
