// Package githubbridge resolves GitHub credentials (App installation or
// OAuth/PAT) into a ready-to-use *github.Client and redacts secrets from
// anything bound for a log or an error message.
package githubbridge

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type AuthMode string

const (
	AuthModeApp   AuthMode = "app"
	AuthModeOAuth AuthMode = "oauth"
)

func ParseAuthMode(raw string) (AuthMode, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case string(AuthModeApp):
		return AuthModeApp, nil
	case string(AuthModeOAuth):
		return AuthModeOAuth, nil
	case "":
		return "", fmt.Errorf("auth mode required (app|oauth)")
	default:
		return "", fmt.Errorf("invalid auth mode %q (expected app|oauth)", raw)
	}
}

// TokenRequest narrows a token to the installation that can see owner/repo.
type TokenRequest struct {
	Owner string
	Repo  string
}

type Token struct {
	Value     string
	ExpiresAt time.Time
}

// TokenProvider previews the credential backing a *github.Client without
// forcing callers to know whether it is an App installation token or a PAT.
type TokenProvider interface {
	Mode() AuthMode
	Source() string
	Token(ctx context.Context, req TokenRequest) (Token, error)
}
