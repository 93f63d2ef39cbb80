package rules

import (
	"si/tools/si/internal/config"
	"si/tools/si/internal/model"
)

func applyIgnore(name string, cfg model.Config) bool {
	return config.MatchesIgnorePattern(name, cfg.IgnoreVersions)
}

// patchTags returns non-ignored patch-level tags, marking IsIgnored as a
// side effect of evaluating the configured patterns.
func patchTags(state *model.RepositoryState, cfg model.Config) []model.VersionRef {
	var out []model.VersionRef
	for i := range state.Tags {
		ref := &state.Tags[i]
		if applyIgnore(ref.Raw, cfg) {
			ref.IsIgnored = true
		}
		if ref.Level == model.LevelPatch && !ref.IsIgnored {
			out = append(out, *ref)
		}
	}
	return out
}

// isReleasePrerelease reports whether the release tied to a patch version
// is marked prerelease, for the ignorePreviewReleases exclusion.
func releaseForTag(state *model.RepositoryState, tag string) (model.ReleaseInfo, bool) {
	return state.FindRelease(tag)
}

// highestPatch finds, among non-ignored patch tags matching (major, minorPtr),
// the one with the greatest (minor, patch), excluding prereleases when
// ignorePreviewReleases is set.
func highestPatch(state *model.RepositoryState, cfg model.Config, major int, minorPtr *int) (model.VersionRef, bool) {
	var best model.VersionRef
	found := false
	for _, ref := range patchTags(state, cfg) {
		if ref.Major != major {
			continue
		}
		if minorPtr != nil && ref.Minor != *minorPtr {
			continue
		}
		if cfg.IgnorePreviewReleases {
			if rel, ok := releaseForTag(state, ref.Raw); ok && rel.IsPrerelease {
				continue
			}
		}
		if !found || ref.Minor > best.Minor || (ref.Minor == best.Minor && ref.Patch > best.Patch) {
			best = ref
			found = true
		}
	}
	return best, found
}

// globalHighestPatch finds the highest non-prerelease patch across all
// major versions.
func globalHighestPatch(state *model.RepositoryState, cfg model.Config) (model.VersionRef, bool) {
	var best model.VersionRef
	found := false
	for _, ref := range patchTags(state, cfg) {
		if cfg.IgnorePreviewReleases {
			if rel, ok := releaseForTag(state, ref.Raw); ok && rel.IsPrerelease {
				continue
			}
		}
		if !found || ref.Major > best.Major ||
			(ref.Major == best.Major && ref.Minor > best.Minor) ||
			(ref.Major == best.Major && ref.Minor == best.Minor && ref.Patch > best.Patch) {
			best = ref
			found = true
		}
	}
	return best, found
}

func findFloatingRef(state *model.RepositoryState, name string, kind model.RefKind) (model.VersionRef, bool) {
	refs := state.Tags
	if kind == model.RefKindBranch {
		refs = state.Branches
	}
	for _, ref := range refs {
		if ref.Raw == name {
			return ref, true
		}
	}
	return model.VersionRef{}, false
}

func configuredKind(cfg model.Config) model.RefKind {
	if cfg.FloatingVersionsUse == model.FloatingUseBranches {
		return model.RefKindBranch
	}
	return model.RefKindTag
}

func refPath(kind model.RefKind, name string) string {
	if kind == model.RefKindBranch {
		return "heads/" + name
	}
	return "tags/" + name
}

// majorVersionsSeen collects every distinct major version appearing
// anywhere in tags, branches, or releases (non-ignored).
func majorVersionsSeen(state *model.RepositoryState, cfg model.Config) []int {
	seen := map[int]bool{}
	var order []int
	add := func(m int) {
		if !seen[m] {
			seen[m] = true
			order = append(order, m)
		}
	}
	for _, ref := range patchTags(state, cfg) {
		add(ref.Major)
	}
	for _, ref := range state.Branches {
		if applyIgnore(ref.Raw, cfg) {
			continue
		}
		if ref.Level == model.LevelPatch {
			add(ref.Major)
		}
	}
	for _, ref := range releasePatchRefs(state, cfg) {
		add(ref.Major)
	}
	return order
}

// minorVersionsSeen collects every distinct (major, minor) pair for a
// given major version, across tags, branches, and releases.
func minorVersionsSeen(state *model.RepositoryState, cfg model.Config, major int) []int {
	seen := map[int]bool{}
	var order []int
	add := func(minor int) {
		if !seen[minor] {
			seen[minor] = true
			order = append(order, minor)
		}
	}
	for _, ref := range patchTags(state, cfg) {
		if ref.Major == major {
			add(ref.Minor)
		}
	}
	for _, ref := range state.Branches {
		if applyIgnore(ref.Raw, cfg) {
			continue
		}
		if ref.Level == model.LevelPatch && ref.Major == major {
			add(ref.Minor)
		}
	}
	for _, ref := range releasePatchRefs(state, cfg) {
		if ref.Major == major {
			add(ref.Minor)
		}
	}
	return order
}

// releasePatchRefs parses each non-ignored release's tag name as a
// VersionRef, for the releases the hosting API may still carry even after
// the underlying patch tag was deleted (spec: "appears anywhere in
// tags+releases+branches").
func releasePatchRefs(state *model.RepositoryState, cfg model.Config) []model.VersionRef {
	var out []model.VersionRef
	for _, rel := range state.Releases {
		if rel.IsIgnored {
			continue
		}
		ref := model.NewVersionRef(rel.TagName, "refs/tags/"+rel.TagName, rel.SHA, model.RefKindTag)
		if ref.Level == model.LevelPatch {
			out = append(out, ref)
		}
	}
	return out
}
