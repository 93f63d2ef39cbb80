package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"si/tools/si/internal/model"
	"si/tools/si/internal/remediation"
)

const fixUsageText = "usage: si fix <owner/repo> [--config <file>] [--json] [--dry-run]"

// cmdFix runs the same materialization and rule engine as validate, then
// executes the remediation actions attached to auto-fixable issues in
// priority order (spec §4.4). --dry-run runs validation only: every pending
// issue reports as unfixable with its manual-fix instructions.
func cmdFix(args []string) {
	fs := flag.NewFlagSet("fix", flag.ExitOnError)
	owner, baseURL, authMode, token, appID, appKey, installationID := githubAuthFlags(fs)
	configPath := fs.String("config", "", "yaml config file")
	jsonOut := fs.Bool("json", false, "output json")
	dryRun := fs.Bool("dry-run", false, "run validation only; print what would be fixed")
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
		printUsage(fixUsageText)
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var executor remediation.Executor
	executor.Run(ctx, state, !*dryRun)

	printValidationReport(state, issues, *jsonOut)
	if !*jsonOut {
		printRemediationSummary(state)
	}
	os.Exit(state.ReturnCode())
}

func printRemediationSummary(state *model.RepositoryState) {
	fmt.Printf("%s fixed=%d failed=%d manual_fix_required=%d unfixable=%d\n",
		styleHeading("fix summary:"),
		state.CountByStatus(model.StatusFixed),
		state.CountByStatus(model.StatusFailed),
		state.CountByStatus(model.StatusManualFixRequired),
		state.CountByStatus(model.StatusUnfixable),
	)
}
