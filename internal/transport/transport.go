// Package transport adapts *github.Client (google/go-github) to the
// boundary interface the core depends on (spec §1 "out of scope" /
// §6 "external interfaces"): listing tags/branches/releases/files and
// performing the ref/release side effects the remediation actions need.
//
// Retries, backoff, and pagination live here and in internal/netpolicy, not
// in the core.
package transport

import (
	"context"

	"si/tools/si/internal/model"
	"si/tools/si/internal/remediation"
)

// FileEntry is one directory listing entry (spec's ListDirectory).
type FileEntry struct {
	Name  string
	Path  string
	IsDir bool
}

// Transport is the full boundary interface the core depends on. It
// satisfies remediation.Transport for the write operations the
// remediation actions call through.
type Transport interface {
	ListTags(ctx context.Context, owner, repo string) ([]model.VersionRef, error)
	ListBranches(ctx context.Context, owner, repo string) ([]model.VersionRef, error)
	ListReleases(ctx context.Context, owner, repo string) ([]model.ReleaseInfo, error)
	GetFile(ctx context.Context, owner, repo, path string) ([]byte, error)
	ListDirectory(ctx context.Context, owner, repo, path string) ([]FileEntry, error)
	CheckReleaseImmutable(ctx context.Context, owner, repo, tagName string) (bool, bool, error) // (immutable, known, error)

	remediation.Transport
}
