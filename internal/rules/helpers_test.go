package rules

import (
	"testing"

	"si/tools/si/internal/model"
)

func tagRef(raw string) model.VersionRef {
	return model.NewVersionRef(raw, "refs/tags/"+raw, "sha_"+raw, model.RefKindTag)
}

func TestHighestPatchExcludesPrereleaseWhenConfigured(t *testing.T) {
	t.Parallel()
	state := &model.RepositoryState{
		Tags: []model.VersionRef{tagRef("v1.2.3"), tagRef("v1.2.4")},
		Releases: []model.ReleaseInfo{
			{TagName: "v1.2.4", IsPrerelease: true},
		},
	}
	cfg := model.Config{IgnorePreviewReleases: true}
	best, found := highestPatch(state, cfg, 1, nil)
	if !found {
		t.Fatal("expected a highest patch")
	}
	if best.Raw != "v1.2.3" {
		t.Fatalf("best=%q want=v1.2.3 (v1.2.4 is a prerelease and should be excluded)", best.Raw)
	}
}

func TestHighestPatchFiltersByMinor(t *testing.T) {
	t.Parallel()
	state := &model.RepositoryState{
		Tags: []model.VersionRef{tagRef("v1.2.9"), tagRef("v1.3.1")},
	}
	minor := 2
	best, found := highestPatch(state, model.Config{}, 1, &minor)
	if !found || best.Raw != "v1.2.9" {
		t.Fatalf("best=%q found=%v want=v1.2.9", best.Raw, found)
	}
}

func TestGlobalHighestPatchAcrossMajors(t *testing.T) {
	t.Parallel()
	state := &model.RepositoryState{
		Tags: []model.VersionRef{tagRef("v1.9.9"), tagRef("v2.0.1"), tagRef("v1.0.0")},
	}
	best, found := globalHighestPatch(state, model.Config{})
	if !found || best.Raw != "v2.0.1" {
		t.Fatalf("best=%q found=%v want=v2.0.1", best.Raw, found)
	}
}

func TestMajorVersionsSeenIgnoresConfiguredPatterns(t *testing.T) {
	t.Parallel()
	state := &model.RepositoryState{
		Tags: []model.VersionRef{tagRef("v1.0.0"), tagRef("v2.0.0"), tagRef("v3.0.0")},
	}
	cfg := model.Config{IgnoreVersions: []string{"v3.*"}}
	got := majorVersionsSeen(state, cfg)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("majorVersionsSeen=%v want=[1 2]", got)
	}
}

func TestMinorVersionsSeenForMajor(t *testing.T) {
	t.Parallel()
	state := &model.RepositoryState{
		Tags: []model.VersionRef{tagRef("v1.0.0"), tagRef("v1.1.0"), tagRef("v2.0.0")},
	}
	got := minorVersionsSeen(state, model.Config{}, 1)
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Fatalf("minorVersionsSeen=%v want=[0 1]", got)
	}
}

func TestMajorVersionsSeenFindsVersionFromReleaseWithDeletedTag(t *testing.T) {
	t.Parallel()
	// v1.0.0's tag was deleted but its release still exists: the major
	// version must still be tracked.
	state := &model.RepositoryState{
		Tags:     []model.VersionRef{tagRef("v2.0.0")},
		Releases: []model.ReleaseInfo{{TagName: "v1.0.0"}},
	}
	got := majorVersionsSeen(state, model.Config{})
	if len(got) != 2 || got[0] != 2 || got[1] != 1 {
		t.Fatalf("majorVersionsSeen=%v want=[2 1]", got)
	}
}

func TestMajorVersionsSeenIgnoresIgnoredReleases(t *testing.T) {
	t.Parallel()
	state := &model.RepositoryState{
		Releases: []model.ReleaseInfo{{TagName: "v3.0.0", IsIgnored: true}},
	}
	got := majorVersionsSeen(state, model.Config{})
	if len(got) != 0 {
		t.Fatalf("majorVersionsSeen=%v want=[]", got)
	}
}

func TestMinorVersionsSeenFindsVersionFromReleaseWithDeletedTag(t *testing.T) {
	t.Parallel()
	state := &model.RepositoryState{
		Releases: []model.ReleaseInfo{{TagName: "v1.2.0"}},
	}
	got := minorVersionsSeen(state, model.Config{}, 1)
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("minorVersionsSeen=%v want=[2]", got)
	}
}

func TestRefPathByKind(t *testing.T) {
	t.Parallel()
	if got := refPath(model.RefKindTag, "v1"); got != "tags/v1" {
		t.Fatalf("refPath(tag)=%q want=tags/v1", got)
	}
	if got := refPath(model.RefKindBranch, "v1"); got != "heads/v1" {
		t.Fatalf("refPath(branch)=%q want=heads/v1", got)
	}
}

func TestConfiguredKindFollowsFloatingVersionsUse(t *testing.T) {
	t.Parallel()
	if got := configuredKind(model.Config{FloatingVersionsUse: model.FloatingUseBranches}); got != model.RefKindBranch {
		t.Fatalf("configuredKind(branches)=%v want=branch", got)
	}
	if got := configuredKind(model.Config{FloatingVersionsUse: model.FloatingUseTags}); got != model.RefKindTag {
		t.Fatalf("configuredKind(tags)=%v want=tag", got)
	}
}
