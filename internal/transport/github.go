package transport

import (
	"context"
	"fmt"
	"net/http"
	"path"

	"github.com/google/go-github/v66/github"

	"si/tools/si/internal/githubbridge"
	"si/tools/si/internal/model"
	"si/tools/si/internal/netpolicy"
	"si/tools/si/internal/remediation"
)

// GithubTransport is the production Transport backed by a *github.Client.
// Method bodies mirror apps/ReleaseParty/backend/internal/githubops: thin
// wrappers around one or two go-github calls, errors classified through
// githubbridge rather than re-derived locally.
//
// The client's underlying *http.Client already carries the shared
// connection pool (internal/httpx): AuthProvider.Client() builds it that
// way, so New just stores the reference.
type GithubTransport struct {
	Client *github.Client
}

func New(client *github.Client) *GithubTransport {
	return &GithubTransport{Client: client}
}

// sharedLimiter paces every GithubTransport instance's outbound calls
// ahead of GitHub's own rate limit (see internal/netpolicy.Limiter).
var sharedLimiter = netpolicy.NewLimiter(0, 0)

func (t *GithubTransport) ListTags(ctx context.Context, owner, repo string) ([]model.VersionRef, error) {
	var out []model.VersionRef
	opts := &github.ListOptions{PerPage: 100}
	for {
		tags, resp, err := retryList(ctx, func() ([]*github.RepositoryTag, *github.Response, error) {
			return t.Client.Repositories.ListTags(ctx, owner, repo, opts)
		})
		if err != nil {
			return nil, wrapErr("list tags", err)
		}
		for _, tag := range tags {
			name := tag.GetName()
			sha := ""
			if tag.GetCommit() != nil {
				sha = tag.GetCommit().GetSHA()
			}
			out = append(out, model.NewVersionRef(name, "refs/tags/"+name, sha, model.RefKindTag))
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return out, nil
}

func (t *GithubTransport) ListBranches(ctx context.Context, owner, repo string) ([]model.VersionRef, error) {
	var out []model.VersionRef
	opts := &github.BranchListOptions{ListOptions: github.ListOptions{PerPage: 100}}
	for {
		branches, resp, err := retryList(ctx, func() ([]*github.Branch, *github.Response, error) {
			return t.Client.Repositories.ListBranches(ctx, owner, repo, opts)
		})
		if err != nil {
			return nil, wrapErr("list branches", err)
		}
		for _, b := range branches {
			name := b.GetName()
			sha := ""
			if b.GetCommit() != nil {
				sha = b.GetCommit().GetSHA()
			}
			out = append(out, model.NewVersionRef(name, "refs/heads/"+name, sha, model.RefKindBranch))
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return out, nil
}

func (t *GithubTransport) ListReleases(ctx context.Context, owner, repo string) ([]model.ReleaseInfo, error) {
	var out []model.ReleaseInfo
	opts := &github.ListOptions{PerPage: 100}
	for {
		releases, resp, err := retryList(ctx, func() ([]*github.RepositoryRelease, *github.Response, error) {
			return t.Client.Repositories.ListReleases(ctx, owner, repo, opts)
		})
		if err != nil {
			return nil, wrapErr("list releases", err)
		}
		for _, rel := range releases {
			out = append(out, model.NewReleaseInfoFromPayload(payloadFromRelease(rel)))
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	latest, _, err := t.Client.Repositories.GetLatestRelease(ctx, owner, repo)
	if err == nil && latest != nil {
		latestTag := latest.GetTagName()
		for i := range out {
			if out[i].TagName == latestTag {
				out[i].IsLatest = true
			}
		}
	}
	return out, nil
}

// payloadFromRelease maps a go-github release to ReleasePayload. The REST
// release object has no "immutable" field, so ImmutableKnown stays false;
// CheckReleaseImmutable is the only path that can assert immutability.
func payloadFromRelease(rel *github.RepositoryRelease) model.ReleasePayload {
	return model.ReleasePayload{
		ID:           rel.GetID(),
		TagName:      rel.GetTagName(),
		SHA:          rel.GetTargetCommitish(),
		HTMLURL:      rel.GetHTMLURL(),
		IsDraft:      rel.GetDraft(),
		IsPrerelease: rel.GetPrerelease(),
		// ListReleases entries carry no "latest" flag; ListReleases itself
		// cross-references GetLatestRelease's tag name afterward.
		IsLatest: false,
	}
}

func (t *GithubTransport) GetFile(ctx context.Context, owner, repo, path string) ([]byte, error) {
	file, _, _, err := t.Client.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		return nil, wrapErr("get file "+path, err)
	}
	if file == nil {
		return nil, fmt.Errorf("get file %s: not a file", path)
	}
	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decode file %s: %w", path, err)
	}
	return []byte(content), nil
}

func (t *GithubTransport) ListDirectory(ctx context.Context, owner, repo, path string) ([]FileEntry, error) {
	_, dir, _, err := t.Client.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		return nil, wrapErr("list directory "+path, err)
	}
	out := make([]FileEntry, 0, len(dir))
	for _, entry := range dir {
		out = append(out, FileEntry{
			Name:  entry.GetName(),
			Path:  entry.GetPath(),
			IsDir: entry.GetType() == "dir",
		})
	}
	return out, nil
}

// CheckReleaseImmutable reports a release as immutable when its tag matches
// an enabled tag protection rule on the repository: the REST release
// payload itself carries no "immutable" field, but a tag a protection rule
// covers is sealed against the force-push/delete that would otherwise let
// its release be republished in place, which is exactly the invariant
// release_should_be_immutable enforces.
func (t *GithubTransport) CheckReleaseImmutable(ctx context.Context, owner, repo, tagName string) (bool, bool, error) {
	rules, _, err := t.Client.Repositories.ListTagProtection(ctx, owner, repo)
	if err != nil {
		return false, false, wrapErr("check release immutable "+tagName, err)
	}
	for _, rule := range rules {
		if rule.GetEnabled() && tagMatchesProtectionPattern(rule.GetPattern(), tagName) {
			return true, true, nil
		}
	}
	return false, true, nil
}

// tagMatchesProtectionPattern matches a tag protection pattern (plain glob,
// e.g. "v*") against a tag name.
func tagMatchesProtectionPattern(pattern, tagName string) bool {
	matched, err := path.Match(pattern, tagName)
	return err == nil && matched
}

func (t *GithubTransport) UpsertRef(ctx context.Context, owner, repo, ref, sha string, force bool) (remediation.UpsertRefResult, error) {
	fullRef := "refs/" + ref
	existing, _, err := t.Client.Git.GetRef(ctx, owner, repo, fullRef)
	if err == nil && existing != nil {
		_, _, err = t.Client.Git.UpdateRef(ctx, owner, repo, &github.Reference{
			Ref:    github.String(fullRef),
			Object: &github.GitObject{SHA: github.String(sha)},
		}, force)
	} else {
		_, _, err = t.Client.Git.CreateRef(ctx, owner, repo, &github.Reference{
			Ref:    github.String(fullRef),
			Object: &github.GitObject{SHA: github.String(sha)},
		})
	}
	if err == nil {
		return remediation.UpsertRefResult{Success: true}, nil
	}
	details, _, permissionDenied := githubbridge.ClassifyError(err)
	return remediation.UpsertRefResult{
		Success:           false,
		RequiresManualFix: permissionDenied,
		ErrorText:         details.Error(),
	}, err
}

func (t *GithubTransport) DeleteRef(ctx context.Context, owner, repo, ref string) error {
	_, err := t.Client.Git.DeleteRef(ctx, owner, repo, "refs/"+ref)
	if err != nil {
		return wrapErr("delete ref "+ref, err)
	}
	return nil
}

func (t *GithubTransport) CreateRelease(ctx context.Context, owner, repo string, in remediation.CreateReleaseInput) (remediation.CreateReleaseResult, error) {
	rel, _, err := t.Client.Repositories.CreateRelease(ctx, owner, repo, &github.RepositoryRelease{
		TagName:              github.String(in.TagName),
		TargetCommitish:      github.String(in.SHA),
		Name:                 github.String(in.Name),
		Body:                 github.String(in.Body),
		Draft:                github.Bool(in.Draft),
		MakeLatest:           makeLatestValue(in.Latest),
		GenerateReleaseNotes: github.Bool(false),
	})
	if err != nil {
		details, immutableConflict, _ := githubbridge.ClassifyError(err)
		return remediation.CreateReleaseResult{
			Success:     false,
			IsUnfixable: immutableConflict,
			ErrorText:   details.Error(),
		}, err
	}
	return remediation.CreateReleaseResult{Success: true, ReleaseID: rel.GetID()}, nil
}

func (t *GithubTransport) UpdateRelease(ctx context.Context, owner, repo string, releaseID int64, in remediation.UpdateReleaseInput) (remediation.UpdateReleaseResult, error) {
	update := &github.RepositoryRelease{}
	if in.Draft != nil {
		update.Draft = github.Bool(*in.Draft)
	}
	if in.Latest != nil {
		update.MakeLatest = makeLatestValue(*in.Latest)
	}
	_, _, err := t.Client.Repositories.EditRelease(ctx, owner, repo, releaseID, update)
	if err != nil {
		details, immutableConflict, _ := githubbridge.ClassifyError(err)
		return remediation.UpdateReleaseResult{
			Success:     false,
			IsUnfixable: immutableConflict,
			ErrorText:   details.Error(),
		}, err
	}
	return remediation.UpdateReleaseResult{Success: true}, nil
}

func (t *GithubTransport) DeleteRelease(ctx context.Context, owner, repo string, releaseID int64) error {
	_, err := t.Client.Repositories.DeleteRelease(ctx, owner, repo, releaseID)
	if err != nil {
		return wrapErr("delete release", err)
	}
	return nil
}

func makeLatestValue(latest bool) *string {
	if latest {
		return github.String("true")
	}
	return github.String("false")
}

func wrapErr(action string, err error) error {
	details, _, _ := githubbridge.ClassifyError(err)
	return fmt.Errorf("%s: %s", action, details.Error())
}

// retryList runs a paginated go-github call once more after a policy-
// approved backoff when the first attempt hits a retryable condition
// (secondary rate limit, 5xx); GET calls are always safe to retry.
func retryList[T any](ctx context.Context, call func() (T, *github.Response, error)) (T, *github.Response, error) {
	_ = sharedLimiter.Wait(ctx)
	items, resp, err := call()
	if err == nil {
		return items, resp, nil
	}
	statusCode := 0
	if resp != nil && resp.Response != nil {
		statusCode = resp.StatusCode
	}
	if !netpolicy.IsSafeMethod("GET") || !shouldRetryStatus(statusCode) {
		return items, resp, err
	}
	var header http.Header
	if resp != nil && resp.Response != nil {
		header = resp.Header
	}
	_ = netpolicy.SleepForRetry(ctx, 1, header)
	return call()
}

func shouldRetryStatus(code int) bool {
	return code == 403 || code == 429 || (code >= 500 && code < 600)
}
