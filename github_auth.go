package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"si/tools/si/internal/githubbridge"
)

// githubAuthOverrides carries the values a subcommand's own flags resolved,
// which always take priority over environment variables.
type githubAuthOverrides struct {
	AppID          int64
	AppKey         string
	InstallationID int64
	AccessToken    string
	AuthMode       string
}

func resolveGithubRuntimeContext(ownerFlag string, baseURLFlag string, overrides githubAuthOverrides) (githubRuntimeContext, error) {
	owner := strings.TrimSpace(ownerFlag)
	if owner == "" {
		owner = strings.TrimSpace(os.Getenv("GITHUB_DEFAULT_OWNER"))
	}

	baseURL := strings.TrimSpace(baseURLFlag)
	if baseURL == "" {
		baseURL = strings.TrimSpace(os.Getenv("GITHUB_API_BASE_URL"))
	}
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}

	mode, modeSource, err := resolveGitHubAuthMode(overrides)
	if err != nil {
		return githubRuntimeContext{}, err
	}

	if mode == githubbridge.AuthModeOAuth {
		accessToken, tokenSource := resolveGitHubOAuthAccessToken(overrides)
		if strings.TrimSpace(accessToken) == "" {
			return githubRuntimeContext{}, fmt.Errorf("github oauth token not found (set --token, GITHUB_TOKEN, GH_TOKEN, or GITHUB_PAT)")
		}
		provider, providerErr := githubbridge.NewOAuthProvider(githubbridge.OAuthProviderConfig{
			AccessToken: accessToken,
			TokenSource: strings.Join(nonEmpty(modeSource, tokenSource), ","),
			BaseURL:     baseURL,
		})
		if providerErr != nil {
			return githubRuntimeContext{}, providerErr
		}
		return githubRuntimeContext{
			Owner:    owner,
			AuthMode: githubbridge.AuthModeOAuth,
			Source:   strings.Join(nonEmpty(modeSource, tokenSource), ","),
			BaseURL:  baseURL,
			Provider: provider,
		}, nil
	}

	appID, appIDSource := resolveGitHubAppID(overrides)
	appKey, appKeySource := resolveGitHubAppKey(overrides)
	installationID, installationSource := resolveGitHubInstallationID(overrides)
	if appID <= 0 || strings.TrimSpace(appKey) == "" || installationID <= 0 {
		return githubRuntimeContext{}, fmt.Errorf("github app auth requires app id, private key and installation id (set --app-id/--app-key/--installation-id or GITHUB_APP_ID/GITHUB_APP_PRIVATE_KEY_PEM/GITHUB_APP_INSTALLATION_ID)")
	}

	provider, err := githubbridge.NewAppProvider(githubbridge.AppProviderConfig{
		AppID:          appID,
		InstallationID: installationID,
		PrivateKeyPEM:  appKey,
		BaseURL:        baseURL,
		TokenSource:    strings.Join(nonEmpty(appIDSource, appKeySource, installationSource), ","),
	})
	if err != nil {
		return githubRuntimeContext{}, err
	}
	source := strings.Join(nonEmpty(modeSource, appIDSource, appKeySource, installationSource), ",")

	return githubRuntimeContext{
		Owner:    owner,
		AuthMode: githubbridge.AuthModeApp,
		Source:   source,
		BaseURL:  baseURL,
		Provider: provider,
	}, nil
}

func resolveGitHubAuthMode(overrides githubAuthOverrides) (githubbridge.AuthMode, string, error) {
	if value := strings.TrimSpace(overrides.AuthMode); value != "" {
		mode, err := githubbridge.ParseAuthMode(value)
		if err != nil {
			return "", "", err
		}
		return mode, "flag:--auth-mode", nil
	}
	if value := strings.TrimSpace(os.Getenv("GITHUB_AUTH_MODE")); value != "" {
		mode, err := githubbridge.ParseAuthMode(value)
		if err != nil {
			return "", "", err
		}
		return mode, "env:GITHUB_AUTH_MODE", nil
	}
	// No explicit mode: infer from whichever credential shape is present.
	if parseInt64(os.Getenv("GITHUB_APP_ID")) > 0 {
		return githubbridge.AuthModeApp, "inferred:GITHUB_APP_ID", nil
	}
	if overrides.AppID > 0 {
		return githubbridge.AuthModeApp, "inferred:--app-id", nil
	}
	return githubbridge.AuthModeOAuth, "inferred:token", nil
}

func resolveGitHubAppID(overrides githubAuthOverrides) (int64, string) {
	if overrides.AppID > 0 {
		return overrides.AppID, "flag:--app-id"
	}
	if parsed := parseInt64(os.Getenv("GITHUB_APP_ID")); parsed > 0 {
		return parsed, "env:GITHUB_APP_ID"
	}
	return 0, ""
}

func resolveGitHubAppKey(overrides githubAuthOverrides) (string, string) {
	if strings.TrimSpace(overrides.AppKey) != "" {
		return strings.TrimSpace(overrides.AppKey), "flag:--app-key"
	}
	if value := strings.TrimSpace(os.Getenv("GITHUB_APP_PRIVATE_KEY_PEM")); value != "" {
		return value, "env:GITHUB_APP_PRIVATE_KEY_PEM"
	}
	if path := strings.TrimSpace(os.Getenv("GITHUB_APP_PRIVATE_KEY_PATH")); path != "" {
		if raw, err := readLocalFile(path); err == nil {
			return string(raw), "env:GITHUB_APP_PRIVATE_KEY_PATH"
		}
	}
	return "", ""
}

func resolveGitHubInstallationID(overrides githubAuthOverrides) (int64, string) {
	if overrides.InstallationID > 0 {
		return overrides.InstallationID, "flag:--installation-id"
	}
	if parsed := parseInt64(os.Getenv("GITHUB_APP_INSTALLATION_ID")); parsed > 0 {
		return parsed, "env:GITHUB_APP_INSTALLATION_ID"
	}
	return 0, ""
}

func resolveGitHubOAuthAccessToken(overrides githubAuthOverrides) (string, string) {
	if value := strings.TrimSpace(overrides.AccessToken); value != "" {
		return value, "flag:--token"
	}
	if value := strings.TrimSpace(os.Getenv("GITHUB_TOKEN")); value != "" {
		return value, "env:GITHUB_TOKEN"
	}
	if value := strings.TrimSpace(os.Getenv("GH_TOKEN")); value != "" {
		return value, "env:GH_TOKEN"
	}
	if value := strings.TrimSpace(os.Getenv("GITHUB_PAT")); value != "" {
		return value, "env:GITHUB_PAT"
	}
	return "", ""
}

func parseInt64(value string) int64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	parsed, _ := strconv.ParseInt(value, 10, 64)
	return parsed
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		out = append(out, value)
	}
	return out
}

func cmdGithubAuth(args []string) {
	routedArgs, routedOK := resolveUsageSubcommandArgs(args, "usage: si github auth status [--owner <owner>] [--auth-mode <app|oauth>] [--json]")
	if !routedOK {
		return
	}
	args = routedArgs
	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "status":
		cmdGithubAuthStatus(args[1:])
	default:
		printUnknown("github auth", args[0])
	}
}

func githubAuthFlags(fs *flag.FlagSet) (*string, *string, *string, *string, *int64, *string, *int64) {
	owner := fs.String("owner", "", "default owner/org")
	baseURL := fs.String("base-url", "", "github api base url")
	authMode := fs.String("auth-mode", "", "auth mode (app|oauth)")
	token := fs.String("token", "", "override oauth access token")
	appID := fs.Int64("app-id", 0, "override app id")
	appKey := fs.String("app-key", "", "override app private key pem")
	installationID := fs.Int64("installation-id", 0, "override installation id")
	return owner, baseURL, authMode, token, appID, appKey, installationID
}

func cmdGithubAuthStatus(args []string) {
	fs := flag.NewFlagSet("github auth status", flag.ExitOnError)
	owner, baseURL, authMode, token, appID, appKey, installationID := githubAuthFlags(fs)
	jsonOut := fs.Bool("json", false, "output json")
	_ = fs.Parse(args)
	if fs.NArg() > 0 {
		printUsage("usage: si github auth status [--owner <owner>] [--auth-mode <app|oauth>] [--json]")
		return
	}
	runtime, err := resolveGithubRuntimeContext(*owner, *baseURL, githubAuthOverrides{
		AuthMode:       *authMode,
		AccessToken:    *token,
		AppID:          *appID,
		AppKey:         *appKey,
		InstallationID: *installationID,
	})
	if err != nil {
		fatal(err)
	}
	tokenPreview := "-"
	source := strings.TrimSpace(runtime.Source)
	if provider := runtime.Provider; provider != nil {
		tok, tokenErr := provider.Token(context.Background(), githubbridge.TokenRequest{Owner: runtime.Owner})
		if tokenErr == nil {
			tokenPreview = previewGitHubSecret(tok.Value)
		}
	}
	payload := map[string]any{
		"owner":         runtime.Owner,
		"auth_mode":     runtime.AuthMode,
		"base_url":      runtime.BaseURL,
		"source":        source,
		"token_preview": tokenPreview,
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			fatal(err)
		}
		return
	}
	fmt.Printf("%s %s\n", styleHeading("GitHub auth:"), styleSuccess("ready"))
	printKeyValueTable([][2]string{
		{"Context", formatGithubContext(runtime)},
		{"Source", orDash(source)},
		{"Token preview", tokenPreview},
	})
}

func cmdGithubDoctor(args []string) {
	fs := flag.NewFlagSet("github doctor", flag.ExitOnError)
	owner, baseURL, authMode, token, appID, appKey, installationID := githubAuthFlags(fs)
	jsonOut := fs.Bool("json", false, "output json")
	_ = fs.Parse(args)
	if fs.NArg() > 0 {
		printUsage("usage: si github doctor [--owner <owner>] [--auth-mode <app|oauth>] [--json]")
		return
	}
	runtime, err := resolveGithubRuntimeContext(*owner, *baseURL, githubAuthOverrides{
		AuthMode:       *authMode,
		AccessToken:    *token,
		AppID:          *appID,
		AppKey:         *appKey,
		InstallationID: *installationID,
	})
	if err != nil {
		fatal(err)
	}
	client, err := buildGithubClient(runtime)
	if err != nil {
		fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	type check struct {
		Name   string `json:"name"`
		OK     bool   `json:"ok"`
		Detail string `json:"detail"`
	}
	checks := make([]check, 0, 1)
	limits, _, rateErr := client.RateLimit.Get(ctx)
	if rateErr != nil {
		details, _, _ := githubbridge.ClassifyError(rateErr)
		checks = append(checks, check{Name: "rate_limit", OK: false, Detail: details.Error()})
	} else {
		core := limits.GetCore()
		checks = append(checks, check{
			Name: "rate_limit",
			OK:   true,
			Detail: fmt.Sprintf("remaining=%d/%d reset=%s",
				core.Remaining, core.Limit, core.Reset.Time.UTC().Format(time.RFC3339)),
		})
	}

	ok := true
	for _, item := range checks {
		ok = ok && item.OK
	}
	payload := map[string]any{"ok": ok, "context": formatGithubContext(runtime), "checks": checks}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			fatal(err)
		}
		if !ok {
			os.Exit(1)
		}
		return
	}
	if ok {
		fmt.Printf("%s %s\n", styleHeading("GitHub doctor:"), styleSuccess("ok"))
	} else {
		fmt.Printf("%s %s\n", styleHeading("GitHub doctor:"), styleError("issues found"))
	}
	fmt.Printf("%s %s\n", styleHeading("Context:"), formatGithubContext(runtime))
	rows := make([][]string, 0, len(checks))
	for _, item := range checks {
		icon := styleSuccess("OK")
		if !item.OK {
			icon = styleError("ERR")
		}
		rows = append(rows, []string{icon, item.Name, strings.TrimSpace(item.Detail)})
	}
	printAlignedRows(rows, 2, "  ")
	if !ok {
		os.Exit(1)
	}
}

func previewGitHubSecret(secret string) string {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return "-"
	}
	secret = githubbridge.RedactSensitive(secret)
	if len(secret) <= 10 {
		return secret
	}
	return secret[:8] + "..."
}
