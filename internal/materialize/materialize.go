// Package materialize builds a model.RepositoryState from a
// transport.Transport: the tag/branch/release listing plus, when
// marketplace checks are enabled, the action descriptor and readme probe
// (spec §3's MarketplaceMetadata).
package materialize

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"si/tools/si/internal/config"
	"si/tools/si/internal/model"
	"si/tools/si/internal/transport"
)

// descriptorShape is the subset of action.yml/action.yaml this tool reads.
type descriptorShape struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Branding    struct {
		Icon  string `yaml:"icon"`
		Color string `yaml:"color"`
	} `yaml:"branding"`
}

// RepositoryState fetches tags, branches, and releases for owner/repo, and
// when cfg.CheckMarketplace is not "none", also the marketplace metadata.
func RepositoryState(ctx context.Context, t transport.Transport, owner, repo, apiBase string, cfg model.Config) (*model.RepositoryState, error) {
	tags, err := t.ListTags(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	branches, err := t.ListBranches(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	releases, err := t.ListReleases(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("list releases: %w", err)
	}
	if err := annotateReleases(ctx, t, owner, repo, releases, cfg); err != nil {
		return nil, err
	}

	state := &model.RepositoryState{
		Owner:    owner,
		Name:     repo,
		APIBase:  apiBase,
		Tags:     tags,
		Branches: branches,
		Releases: releases,
		Config:   cfg,
	}

	if cfg.CheckMarketplace != model.CheckNone {
		meta, err := marketplaceMetadata(ctx, t, owner, repo)
		if err != nil {
			return nil, fmt.Errorf("load marketplace metadata: %w", err)
		}
		state.Marketplace = meta
	}

	return state, nil
}

// annotateReleases fills in the two fields ListReleases cannot set on its
// own: IsIgnored (needs the configured ignoreVersions patterns) and
// IsImmutable (needs a per-release CheckReleaseImmutable call, since the
// REST release payload itself carries no immutable field). Drafts are
// skipped: the payload constructor already forces IsImmutable=false for
// them, and immutability is only ever asserted for a published release.
func annotateReleases(ctx context.Context, t transport.Transport, owner, repo string, releases []model.ReleaseInfo, cfg model.Config) error {
	for i := range releases {
		rel := &releases[i]
		if config.MatchesIgnorePattern(rel.TagName, cfg.IgnoreVersions) {
			rel.IsIgnored = true
		}
		if rel.IsDraft {
			continue
		}
		immutable, known, err := t.CheckReleaseImmutable(ctx, owner, repo, rel.TagName)
		if err != nil {
			return fmt.Errorf("check release immutable %s: %w", rel.TagName, err)
		}
		if known {
			rel.IsImmutable = immutable
		}
	}
	return nil
}

var descriptorCandidates = []string{"action.yml", "action.yaml"}
var readmeCandidates = []string{"README.md", "readme.md", "Readme.md", "README.rst", "README"}

func marketplaceMetadata(ctx context.Context, t transport.Transport, owner, repo string) (*model.MarketplaceMetadata, error) {
	entries, err := t.ListDirectory(ctx, owner, repo, "")
	if err != nil {
		return nil, err
	}
	present := map[string]bool{}
	for _, e := range entries {
		if !e.IsDir {
			present[e.Name] = true
		}
	}

	meta := &model.MarketplaceMetadata{}
	for _, candidate := range descriptorCandidates {
		if !present[candidate] {
			continue
		}
		raw, err := t.GetFile(ctx, owner, repo, candidate)
		if err != nil {
			continue
		}
		var descriptor descriptorShape
		if err := yaml.Unmarshal(raw, &descriptor); err != nil {
			continue
		}
		meta.DescriptorExists = true
		meta.DescriptorPath = candidate
		meta.Name = strings.TrimSpace(descriptor.Name)
		meta.HasName = meta.Name != ""
		meta.Description = strings.TrimSpace(descriptor.Description)
		meta.HasDescription = meta.Description != ""
		meta.BrandingIcon = strings.TrimSpace(descriptor.Branding.Icon)
		meta.HasBrandingIcon = meta.BrandingIcon != ""
		meta.BrandingColor = strings.TrimSpace(descriptor.Branding.Color)
		meta.HasBrandingColor = meta.BrandingColor != ""
		break
	}

	for _, candidate := range readmeCandidates {
		if present[candidate] {
			meta.ReadmeExists = true
			break
		}
	}
	return meta, nil
}
