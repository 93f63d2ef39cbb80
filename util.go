package main

import (
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

func usage() {
	fmt.Print(colorizeHelp(`si [command] [args]

A validator and auto-fixer for GitHub repositories that publish floating-tag
releases: patch tags (vX.Y.Z) carry immutable releases, floating refs (vX,
vX.Y, latest) track the highest compatible patch.

Usage:
  si <command> [args...]
  si help | -h | --help
  si version | --version | -v

Core:
  si validate <owner/repo> [--config <file>] [--json] [--fail-on-warning]
  si fix <owner/repo> [--config <file>] [--json] [--dry-run]
  si github <auth|doctor> ...

Command details
----------------

validate:
  si validate <owner/repo>
    --config <file>          YAML config with the knobs documented below
    --base-url <url>         GitHub API base url (default: https://api.github.com)
    --json                   emit a machine-readable report instead of text
    --fail-on-warning         nonzero exit when only warnings are present

  Loads tags, branches, releases, and (optionally) marketplace metadata for
  <owner/repo>, runs the validation rule registry, and prints every issue
  found with its severity and manual-fix command. Exits nonzero iff any issue
  is failed, manual_fix_required, or unfixable.

fix:
  si fix <owner/repo>
    --config <file>
    --base-url <url>
    --json
    --dry-run                run validation only; print what would be fixed

  Runs the same rule registry as "validate", then executes the remediation
  actions attached to auto-fixable issues in priority order (deletes, then
  ref creates/updates, then release creation, then publish/republish/latest).
  Issues the executor cannot resolve fall back to manual-fix instructions.

github:
  si github auth status [--account <alias>] [--base-url <url>] [--json]
  si github doctor [--base-url <url>] [--json]

  Diagnostics for the credentials validate/fix resolve: which auth mode is
  active (GitHub App installation token or a plain OAuth/PAT token), where it
  came from, and whether the GitHub API is reachable with it.

Configuration knobs (YAML file passed via --config, or inline via --set k=v):
  checkMinorVersion        error | warning | none
  checkReleases            error | warning | none
  checkImmutability        error | warning | none
  checkMarketplace         error | warning | none
  ignorePreviewReleases    bool
  floatingVersionsUse      tags | branches
  ignoreVersions           list of patterns (e.g. "v0.*", "v1.2.3")

Environment:
  GITHUB_TOKEN / GH_TOKEN / GITHUB_PAT          OAuth/PAT access token
  GITHUB_APP_ID, GITHUB_APP_PRIVATE_KEY_PEM,
  GITHUB_APP_INSTALLATION_ID                    GitHub App installation auth
  GITHUB_API_BASE_URL                           GitHub Enterprise base url
  NO_COLOR / SI_NO_COLOR / SI_COLOR / CLICOLOR_FORCE   ANSI color overrides
`))
}

const siVersion = "v1.0.0"

func printVersion() {
	fmt.Println(siVersion)
}

func envOr(key, def string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return def
	}
	return val
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func fatal(err error) {
	_, _ = fmt.Fprintln(os.Stderr, styleError(err.Error()))
	os.Exit(1)
}

var ansiEnabled = initAnsiEnabled()

func initAnsiEnabled() bool {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" || strings.TrimSpace(os.Getenv("SI_NO_COLOR")) != "" {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv("TERM")), "dumb") {
		return false
	}
	if force := strings.TrimSpace(os.Getenv("SI_COLOR")); force != "" {
		return force == "1" || strings.EqualFold(force, "true")
	}
	if force := strings.TrimSpace(os.Getenv("CLICOLOR_FORCE")); force != "" && force != "0" {
		return true
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func ansi(codes ...string) string {
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

func colorize(s string, codes ...string) string {
	if !ansiEnabled || s == "" {
		return s
	}
	return ansi(codes...) + s + ansi("0")
}

func styleHeading(s string) string { return colorize(s, "1", "36") }
func styleSection(s string) string { return colorize(s, "1", "34") }
func styleCmd(s string) string     { return colorize(s, "1", "32") }
func styleFlag(s string) string    { return colorize(s, "33") }
func styleArg(s string) string     { return colorize(s, "35") }
func styleDim(s string) string     { return colorize(s, "90") }
func styleInfo(s string) string    { return colorize(s, "36") }
func styleSuccess(s string) string { return colorize(s, "32") }
func styleWarn(s string) string    { return colorize(s, "33") }
func styleError(s string) string   { return colorize(s, "31") }
func styleUsage(s string) string   { return colorize(s, "1", "33") }

func styleLimitTextByPct(text string, pct float64) string {
	if strings.TrimSpace(text) == "" || pct < 0 {
		return text
	}
	rounded := int(math.Round(pct))
	switch {
	case rounded >= 100:
		return colorize(text, "1", "37")
	case rounded <= 25:
		return colorize(text, "35")
	default:
		return colorize(text, "32")
	}
}

func styleStatus(s string) string {
	val := strings.ToLower(strings.TrimSpace(s))
	switch val {
	case "running", "ok", "ready", "done", "success", "yes", "true", "available", "up":
		return styleSuccess(s)
	case "blocked", "warning", "warn", "pending":
		return styleWarn(s)
	case "failed", "error", "missing", "stopped", "exited", "not found", "no", "false", "down":
		return styleError(s)
	default:
		return styleInfo(s)
	}
}

func printUsage(line string) {
	raw := strings.TrimSpace(line)
	if strings.HasPrefix(raw, "usage:") {
		rest := strings.TrimSpace(strings.TrimPrefix(raw, "usage:"))
		fmt.Printf("%s %s\n", styleUsage("usage:"), rest)
		return
	}
	fmt.Println(styleUsage(raw))
}

func printUnknown(kind, cmd string) {
	kind = strings.TrimSpace(kind)
	if kind != "" {
		kind = kind + " "
	}
	fmt.Fprintf(os.Stderr, "%s %s%s\n", styleError("unknown"), kind+"command:", styleCmd(cmd))
}

func warnf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if containsANSI(msg) {
		fmt.Fprintln(os.Stderr, styleWarn("warning:")+" "+msg)
		return
	}
	fmt.Fprintln(os.Stderr, styleWarn("warning:")+" "+msg)
}

func infof(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if containsANSI(msg) {
		fmt.Println(msg)
		return
	}
	fmt.Println(styleInfo(msg))
}

func successf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if containsANSI(msg) {
		fmt.Println(msg)
		return
	}
	fmt.Println(styleSuccess(msg))
}

func colorizeHelp(text string) string {
	if !ansiEnabled {
		return text
	}
	sectionRe := regexp.MustCompile(`^[A-Za-z][A-Za-z0-9 /-]*:$`)
	cmdRe := regexp.MustCompile(`\\b(si|validate|fix|github)\\b`)
	flagRe := regexp.MustCompile(`--[a-zA-Z0-9-]+`)
	shortFlagRe := regexp.MustCompile(`(^|\\s)(-[a-zA-Z])\\b`)
	argRe := regexp.MustCompile(`<[^>]+>`)
	dividerRe := regexp.MustCompile(`^-{3,}$`)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if dividerRe.MatchString(trimmed) {
			lines[i] = indentLine(line, styleDim(trimmed))
			continue
		}
		if sectionRe.MatchString(trimmed) {
			lines[i] = indentLine(line, styleHeading(trimmed))
			continue
		}
		if strings.HasPrefix(trimmed, "Usage:") || strings.HasPrefix(trimmed, "Features:") || strings.HasPrefix(trimmed, "Core:") || strings.HasPrefix(trimmed, "Build:") || strings.HasPrefix(trimmed, "Profiles:") || strings.HasPrefix(trimmed, "Command details") || strings.HasPrefix(trimmed, "Environment defaults") {
			lines[i] = indentLine(line, styleHeading(trimmed))
			continue
		}
		if strings.HasPrefix(strings.ToLower(trimmed), "usage:") {
			parts := strings.SplitN(trimmed, ":", 2)
			if len(parts) == 2 {
				lines[i] = indentLine(line, styleUsage(parts[0]+":")+" "+strings.TrimSpace(parts[1]))
				continue
			}
		}
		line = flagRe.ReplaceAllStringFunc(line, styleFlag)
		line = shortFlagRe.ReplaceAllStringFunc(line, func(m string) string {
			trim := strings.TrimSpace(m)
			if trim == "" {
				return m
			}
			return strings.Replace(m, trim, styleFlag(trim), 1)
		})
		line = argRe.ReplaceAllStringFunc(line, styleArg)
		line = cmdRe.ReplaceAllStringFunc(line, styleCmd)
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func indentLine(line, replacement string) string {
	prefix := line[:len(line)-len(strings.TrimLeft(line, " "))]
	return prefix + replacement
}

var ansiStripRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSIForPad(s string) string {
	return ansiStripRe.ReplaceAllString(s, "")
}

func displayWidth(s string) int {
	return runewidth.StringWidth(stripANSIForPad(s))
}

func padRightANSI(s string, width int) string {
	visible := displayWidth(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func containsANSI(s string) bool {
	return ansiStripRe.MatchString(s)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func boolString(value bool) string {
	if value {
		return "true"
	}
	return "false"
}

// resolveUsageSubcommandArgs prints the given usage line and returns
// (nil, false) when args has no subcommand to route on.
func resolveUsageSubcommandArgs(args []string, usageLine string) ([]string, bool) {
	if len(args) == 0 {
		printUsage(usageLine)
		return nil, false
	}
	return args, true
}

// multiFlag accumulates repeated --flag values into a string slice.
type multiFlag []string

func (m *multiFlag) String() string {
	if m == nil {
		return ""
	}
	return strings.Join(*m, ",")
}

func (m *multiFlag) Set(value string) error {
	*m = append(*m, value)
	return nil
}

func printAlignedRows(rows [][]string, gutter int, indent string) {
	if len(rows) == 0 {
		return
	}
	widths := map[int]int{}
	for _, row := range rows {
		for i, cell := range row {
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i == len(row)-1 {
				cells[i] = cell
				continue
			}
			cells[i] = padRightANSI(cell, widths[i])
		}
		fmt.Println(indent + strings.Join(cells, strings.Repeat(" ", gutter)))
	}
}
