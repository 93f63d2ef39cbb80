package materialize

import (
	"context"
	"testing"

	"si/tools/si/internal/model"
	"si/tools/si/internal/remediation"
	"si/tools/si/internal/transport"
)

type fakeTransport struct {
	tags       []model.VersionRef
	branches   []model.VersionRef
	releases   []model.ReleaseInfo
	files      map[string][]byte
	entries    []transport.FileEntry
	immutable  map[string]bool
	checkCalls []string
}

func (f *fakeTransport) ListTags(context.Context, string, string) ([]model.VersionRef, error) {
	return f.tags, nil
}
func (f *fakeTransport) ListBranches(context.Context, string, string) ([]model.VersionRef, error) {
	return f.branches, nil
}
func (f *fakeTransport) ListReleases(context.Context, string, string) ([]model.ReleaseInfo, error) {
	return f.releases, nil
}
func (f *fakeTransport) GetFile(_ context.Context, _, _, path string) ([]byte, error) {
	return f.files[path], nil
}
func (f *fakeTransport) ListDirectory(context.Context, string, string, string) ([]transport.FileEntry, error) {
	return f.entries, nil
}
func (f *fakeTransport) CheckReleaseImmutable(_ context.Context, _, _, tagName string) (bool, bool, error) {
	f.checkCalls = append(f.checkCalls, tagName)
	immutable, known := f.immutable[tagName]
	return immutable, known, nil
}
func (f *fakeTransport) UpsertRef(context.Context, string, string, string, string, bool) (remediation.UpsertRefResult, error) {
	return remediation.UpsertRefResult{}, nil
}
func (f *fakeTransport) DeleteRef(context.Context, string, string, string) error { return nil }
func (f *fakeTransport) CreateRelease(context.Context, string, string, remediation.CreateReleaseInput) (remediation.CreateReleaseResult, error) {
	return remediation.CreateReleaseResult{}, nil
}
func (f *fakeTransport) UpdateRelease(context.Context, string, string, int64, remediation.UpdateReleaseInput) (remediation.UpdateReleaseResult, error) {
	return remediation.UpdateReleaseResult{}, nil
}
func (f *fakeTransport) DeleteRelease(context.Context, string, string, int64) error { return nil }

func TestRepositoryStateSkipsMarketplaceWhenDisabled(t *testing.T) {
	t.Parallel()
	fake := &fakeTransport{tags: []model.VersionRef{{Raw: "v1.0.0"}}}
	state, err := RepositoryState(context.Background(), fake, "acme", "widget", "https://api.github.com", model.Config{CheckMarketplace: model.CheckNone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Marketplace != nil {
		t.Fatal("expected no marketplace metadata fetched when checks are disabled")
	}
}

func TestRepositoryStateParsesDescriptorAndReadme(t *testing.T) {
	t.Parallel()
	fake := &fakeTransport{
		entries: []transport.FileEntry{
			{Name: "action.yml"},
			{Name: "README.md"},
		},
		files: map[string][]byte{
			"action.yml": []byte("name: My Action\ndescription: does things\nbranding:\n  icon: zap\n  color: blue\n"),
		},
	}
	state, err := RepositoryState(context.Background(), fake, "acme", "widget", "https://api.github.com", model.Config{CheckMarketplace: model.CheckError})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Marketplace == nil {
		t.Fatal("expected marketplace metadata to be populated")
	}
	if !state.Marketplace.IsValid() {
		t.Fatalf("expected a fully valid descriptor, missing=%v", state.Marketplace.GetMissingRequirements())
	}
}

func TestRepositoryStateReportsMissingDescriptor(t *testing.T) {
	t.Parallel()
	fake := &fakeTransport{entries: []transport.FileEntry{{Name: "README.md"}}}
	state, err := RepositoryState(context.Background(), fake, "acme", "widget", "https://api.github.com", model.Config{CheckMarketplace: model.CheckWarning})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Marketplace.DescriptorExists {
		t.Fatal("expected no descriptor to be found")
	}
	if !state.Marketplace.ReadmeExists {
		t.Fatal("expected the readme to be found")
	}
}

func TestRepositoryStateAnnotatesReleaseImmutability(t *testing.T) {
	t.Parallel()
	fake := &fakeTransport{
		releases: []model.ReleaseInfo{
			{TagName: "v1.0.0"},
			{TagName: "v1.0.1"},
		},
		immutable: map[string]bool{"v1.0.0": true},
	}
	state, err := RepositoryState(context.Background(), fake, "acme", "widget", "https://api.github.com", model.Config{CheckMarketplace: model.CheckNone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rel, ok := state.FindRelease("v1.0.0")
	if !ok || !rel.IsImmutable {
		t.Fatalf("expected v1.0.0 to be annotated immutable, got %+v ok=%v", rel, ok)
	}
	rel, ok = state.FindRelease("v1.0.1")
	if !ok || rel.IsImmutable {
		t.Fatalf("expected v1.0.1 to remain mutable, got %+v ok=%v", rel, ok)
	}
}

func TestRepositoryStateSkipsImmutabilityCheckForDrafts(t *testing.T) {
	t.Parallel()
	fake := &fakeTransport{
		releases: []model.ReleaseInfo{{TagName: "v2.0.0", IsDraft: true}},
	}
	if _, err := RepositoryState(context.Background(), fake, "acme", "widget", "https://api.github.com", model.Config{CheckMarketplace: model.CheckNone}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fake.checkCalls) != 0 {
		t.Fatalf("expected no immutability check for a draft release, got %v", fake.checkCalls)
	}
}

func TestRepositoryStateMarksReleasesIgnoredByPattern(t *testing.T) {
	t.Parallel()
	fake := &fakeTransport{
		releases: []model.ReleaseInfo{
			{TagName: "v0.9.0"},
			{TagName: "v1.0.0"},
		},
	}
	cfg := model.Config{CheckMarketplace: model.CheckNone, IgnoreVersions: []string{"v0.*"}}
	state, err := RepositoryState(context.Background(), fake, "acme", "widget", "https://api.github.com", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rel, _ := state.FindRelease("v0.9.0")
	if !rel.IsIgnored {
		t.Fatal("expected v0.9.0 to be marked ignored")
	}
	rel, _ = state.FindRelease("v1.0.0")
	if rel.IsIgnored {
		t.Fatal("expected v1.0.0 to remain non-ignored")
	}
}
