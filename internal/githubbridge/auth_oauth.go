package githubbridge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"

	"si/tools/si/internal/httpx"
)

type OAuthProviderConfig struct {
	AccessToken string
	TokenSource string
	BaseURL     string
}

type OAuthProvider struct {
	cfg    OAuthProviderConfig
	client *github.Client
}

func NewOAuthProvider(cfg OAuthProviderConfig) (*OAuthProvider, error) {
	value := strings.TrimSpace(cfg.AccessToken)
	value = strings.TrimPrefix(value, "Bearer ")
	value = strings.TrimPrefix(value, "bearer ")
	value = strings.TrimPrefix(value, "token ")
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("github oauth access token is required")
	}
	cfg.AccessToken = value

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: value})
	pooledCtx := context.WithValue(context.Background(), oauth2.HTTPClient, httpx.SharedClient(30*time.Second))
	httpClient := oauth2.NewClient(pooledCtx, ts)
	client := github.NewClient(httpClient)

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL != "" && baseURL != "https://api.github.com" {
		enterpriseClient, err := client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("configure github enterprise base url: %w", err)
		}
		client = enterpriseClient
	}
	return &OAuthProvider{cfg: cfg, client: client}, nil
}

func (p *OAuthProvider) Mode() AuthMode { return AuthModeOAuth }

func (p *OAuthProvider) Source() string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(p.cfg.TokenSource)
}

func (p *OAuthProvider) Client() *github.Client {
	if p == nil {
		return nil
	}
	return p.client
}

func (p *OAuthProvider) Token(_ context.Context, _ TokenRequest) (Token, error) {
	if p == nil {
		return Token{}, fmt.Errorf("oauth provider not initialized")
	}
	return Token{Value: p.cfg.AccessToken}, nil
}
