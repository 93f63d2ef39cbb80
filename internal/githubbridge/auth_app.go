package githubbridge

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v66/github"

	"si/tools/si/internal/httpx"
)

type AppProviderConfig struct {
	AppID          int64
	InstallationID int64
	PrivateKeyPEM  string
	BaseURL        string
	TokenSource    string
	HTTPClient     *http.Client
}

// AppProvider authenticates as a GitHub App installation via ghinstallation,
// which signs the JWT and exchanges it for installation tokens on our behalf.
type AppProvider struct {
	cfg       AppProviderConfig
	transport *ghinstallation.Transport
	client    *github.Client
}

func NewAppProvider(cfg AppProviderConfig) (*AppProvider, error) {
	if cfg.AppID <= 0 {
		return nil, fmt.Errorf("github app id is required")
	}
	if cfg.InstallationID <= 0 {
		return nil, fmt.Errorf("github app installation id is required")
	}
	key := normalizePrivateKey(cfg.PrivateKeyPEM)
	if key == "" {
		return nil, fmt.Errorf("github app private key is required")
	}
	base := httpx.SharedClient(30 * time.Second).Transport
	transport, err := ghinstallation.New(base, cfg.AppID, cfg.InstallationID, []byte(key))
	if err != nil {
		return nil, fmt.Errorf("configure github app transport: %w", err)
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	transport.BaseURL = strings.TrimRight(baseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	httpClient.Transport = transport // wraps ghinstallation's token signing around the pooled base transport

	client := github.NewClient(httpClient)
	if baseURL != "https://api.github.com" {
		enterpriseClient, enterpriseErr := client.WithEnterpriseURLs(baseURL, baseURL)
		if enterpriseErr != nil {
			return nil, fmt.Errorf("configure github enterprise base url: %w", enterpriseErr)
		}
		client = enterpriseClient
	}
	return &AppProvider{cfg: cfg, transport: transport, client: client}, nil
}

func (p *AppProvider) Mode() AuthMode { return AuthModeApp }

func (p *AppProvider) Source() string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(p.cfg.TokenSource)
}

// Client returns the go-github client backed by this installation's transport.
func (p *AppProvider) Client() *github.Client {
	if p == nil {
		return nil
	}
	return p.client
}

func (p *AppProvider) Token(ctx context.Context, _ TokenRequest) (Token, error) {
	if p == nil || p.transport == nil {
		return Token{}, fmt.Errorf("app provider not initialized")
	}
	value, err := p.transport.Token(ctx)
	if err != nil {
		return Token{}, err
	}
	return Token{Value: value, ExpiresAt: p.transport.Expiry}, nil
}

func normalizePrivateKey(value string) string {
	value = strings.TrimSpace(value)
	if strings.Contains(value, "\\n") {
		value = strings.ReplaceAll(value, "\\n", "\n")
	}
	return value
}
