package main

import (
	"fmt"
	"strings"

	"github.com/google/go-github/v66/github"

	"si/tools/si/internal/githubbridge"
)

// githubRuntimeContext is the resolved credential+endpoint state shared by
// every github subcommand: who we're authenticating as and how.
type githubRuntimeContext struct {
	Owner    string
	AuthMode githubbridge.AuthMode
	Source   string
	BaseURL  string
	Provider githubbridge.TokenProvider
}

func buildGithubClient(runtime githubRuntimeContext) (*github.Client, error) {
	switch provider := runtime.Provider.(type) {
	case *githubbridge.AppProvider:
		return provider.Client(), nil
	case *githubbridge.OAuthProvider:
		return provider.Client(), nil
	default:
		return nil, fmt.Errorf("github auth provider not initialized")
	}
}

func formatGithubContext(runtime githubRuntimeContext) string {
	owner := strings.TrimSpace(runtime.Owner)
	if owner == "" {
		owner = "-"
	}
	baseURL := strings.TrimSpace(runtime.BaseURL)
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	mode := runtime.AuthMode
	if mode == "" {
		mode = "-"
	}
	return fmt.Sprintf("owner=%s auth=%s base=%s", owner, mode, baseURL)
}
