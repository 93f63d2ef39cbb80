package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"si/tools/si/internal/config"
	"si/tools/si/internal/logging"
	"si/tools/si/internal/marketplaceprobe"
	"si/tools/si/internal/materialize"
	"si/tools/si/internal/model"
	"si/tools/si/internal/rules"
	"si/tools/si/internal/transport"
)

const validateUsageText = "usage: si validate <owner/repo> [--config <file>] [--json] [--fail-on-warning]"

// cmdValidate parses <owner>/<repo>, resolves credentials and config,
// materializes a RepositoryState, and runs the full rule registry against
// it (spec §4.2), printing every issue found.
func cmdValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	owner, baseURL, authMode, token, appID, appKey, installationID := githubAuthFlags(fs)
	configPath := fs.String("config", "", "yaml config file")
	jsonOut := fs.Bool("json", false, "output json")
	failOnWarning := fs.Bool("fail-on-warning", false, "nonzero exit when only warnings are present")
	checkMinorVersion := fs.String("check-minor-version", "", "error|warning|none")
	checkReleases := fs.String("check-releases", "", "error|warning|none")
	checkImmutability := fs.String("check-immutability", "", "error|warning|none")
	checkMarketplace := fs.String("check-marketplace", "", "error|warning|none")
	floatingVersionsUse := fs.String("floating-versions-use", "", "tags|branches")
	ignorePreviewReleases := fs.Bool("ignore-preview-releases", false, "ignore prerelease/draft releases")
	var ignoreVersions multiFlag
	fs.Var(&ignoreVersions, "ignore-version", "ignore-pattern, repeatable")
	if err := fs.Parse(args); err != nil {
		return
	}
	if fs.NArg() != 1 {
		printUsage(validateUsageText)
		return
	}
	ownerRepo := fs.Arg(0)

	var ignorePreview *bool
	if setFlagProvided(fs, "ignore-preview-releases") {
		ignorePreview = ignorePreviewReleases
	}

	state, issues, err := runValidation(ownerRepo, validationFlags{
		owner:                 *owner,
		baseURL:               *baseURL,
		authMode:              *authMode,
		token:                 *token,
		appID:                 *appID,
		appKey:                *appKey,
		installationID:        *installationID,
		configPath:            *configPath,
		checkMinorVersion:     *checkMinorVersion,
		checkReleases:         *checkReleases,
		checkImmutability:     *checkImmutability,
		checkMarketplace:      *checkMarketplace,
		floatingVersionsUse:   *floatingVersionsUse,
		ignorePreviewReleases: ignorePreview,
		ignoreVersions:        ignoreVersions,
	})
	if err != nil {
		fatal(err)
	}

	printValidationReport(state, issues, *jsonOut)

	code := state.ReturnCode()
	if code == 0 && *failOnWarning && hasWarningIssue(issues) {
		code = 1
	}
	os.Exit(code)
}

// validationFlags carries every CLI-resolved input runValidation needs;
// cmdValidate and cmdFix both build one from their own flag sets.
type validationFlags struct {
	owner, baseURL, authMode, token, appKey string
	appID, installationID                   int64
	configPath                              string
	checkMinorVersion                       string
	checkReleases                           string
	checkImmutability                       string
	checkMarketplace                        string
	floatingVersionsUse                     string
	ignorePreviewReleases                   *bool
	ignoreVersions                          []string
}

// runValidation resolves github auth, config, transport, and the rule
// registry, then runs the engine once. Shared by validate and fix.
func runValidation(ownerRepo string, f validationFlags) (*model.RepositoryState, []*model.ValidationIssue, error) {
	owner, repo, err := splitOwnerRepo(ownerRepo)
	if err != nil {
		return nil, nil, err
	}

	runtime, err := resolveGithubRuntimeContext(f.owner, f.baseURL, githubAuthOverrides{
		AuthMode:       f.authMode,
		AccessToken:    f.token,
		AppID:          f.appID,
		AppKey:         f.appKey,
		InstallationID: f.installationID,
	})
	if err != nil {
		return nil, nil, err
	}
	client, err := buildGithubClient(runtime)
	if err != nil {
		return nil, nil, err
	}

	fileConfig, err := config.Load(f.configPath)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.Resolve(fileConfig, config.Overrides{
		CheckMinorVersion:     f.checkMinorVersion,
		CheckReleases:         f.checkReleases,
		CheckImmutability:     f.checkImmutability,
		CheckMarketplace:      f.checkMarketplace,
		FloatingVersionsUse:   f.floatingVersionsUse,
		IgnorePreviewReleases: f.ignorePreviewReleases,
		IgnoreVersions:        f.ignoreVersions,
	})
	if err != nil {
		return nil, nil, err
	}

	tp := transport.New(client)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	state, err := materialize.RepositoryState(ctx, tp, owner, repo, runtime.BaseURL, cfg)
	if err != nil {
		return nil, nil, err
	}

	registry := rules.BuildRegistry(owner, repo, tp, marketplaceprobe.New())
	engine := rules.NewEngine(logging.Select(), registry...)
	issues, err := engine.Run(ctx, state, cfg)
	if err != nil {
		return nil, nil, err
	}
	return state, issues, nil
}

// setFlagProvided reports whether name was explicitly passed on the command
// line, distinguishing "--ignore-preview-releases=false" from "not set" so
// the tri-state file/flag override in config.Overrides stays correct.
func setFlagProvided(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func hasWarningIssue(issues []*model.ValidationIssue) bool {
	for _, issue := range issues {
		if issue.Severity == model.SeverityWarning {
			return true
		}
	}
	return false
}

func splitOwnerRepo(value string) (string, string, error) {
	value = strings.TrimSpace(value)
	parts := strings.SplitN(value, "/", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return "", "", fmt.Errorf("expected <owner>/<repo>, got %q", value)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}

func printValidationReport(state *model.RepositoryState, issues []*model.ValidationIssue, jsonOut bool) {
	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(map[string]any{
			"owner":  state.Owner,
			"repo":   state.Name,
			"issues": issues,
			"counts": map[string]int{
				"pending":             state.CountByStatus(model.StatusPending),
				"fixed":               state.CountByStatus(model.StatusFixed),
				"failed":              state.CountByStatus(model.StatusFailed),
				"manual_fix_required": state.CountByStatus(model.StatusManualFixRequired),
				"unfixable":           state.CountByStatus(model.StatusUnfixable),
			},
		})
		return
	}

	if len(issues) == 0 {
		fmt.Printf("%s %s\n", styleHeading("validate:"), styleSuccess("no issues found"))
		return
	}
	fmt.Printf("%s %s\n", styleHeading("validate:"), fmt.Sprintf("%d issue(s) found", len(issues)))
	rows := make([][]string, 0, len(issues))
	for _, issue := range issues {
		rows = append(rows, []string{
			styleStatus(string(issue.Severity)),
			issue.Type,
			string(issue.Status),
			issue.Message,
		})
	}
	printAlignedTable([]string{"severity", "rule", "status", "message"}, rows, 2)
}
