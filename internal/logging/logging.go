// Package logging provides the two Logger implementations the CLI selects
// between once at startup: a PlainLogger for interactive terminals (built on
// the same ANSI styling as the root command's console helpers) and a
// WorkflowLogger for GitHub Actions runs, which emits the ::warning::/
// ::error:: workflow commands Actions turns into annotations.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Logger is the surface the rule engine (internal/rules.Logger) and the
// remediation executor both depend on, widened with Debug/Error/SafeOutput
// for the rest of the CLI.
type Logger interface {
	Debug(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	SafeOutput(value string) string
}

// Select picks WorkflowLogger when running inside GitHub Actions
// (GITHUB_ACTIONS=true, the same signal actions/toolkit uses), PlainLogger
// otherwise. Called once at startup; nothing in the core switches loggers
// mid-run.
func Select() Logger {
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GITHUB_ACTIONS")), "true") {
		return NewWorkflowLogger(os.Stdout)
	}
	return NewPlainLogger(os.Stderr)
}

// PlainLogger writes human-readable lines with the same warn:/error: prefix
// convention as the top-level CLI helpers.
type PlainLogger struct {
	out io.Writer
}

func NewPlainLogger(out io.Writer) *PlainLogger {
	return &PlainLogger{out: out}
}

func (l *PlainLogger) Debug(format string, args ...any) {
	fmt.Fprintf(l.out, "debug: %s\n", fmt.Sprintf(format, args...))
}

func (l *PlainLogger) Warn(format string, args ...any) {
	fmt.Fprintf(l.out, "warning: %s\n", fmt.Sprintf(format, args...))
}

func (l *PlainLogger) Error(format string, args ...any) {
	fmt.Fprintf(l.out, "error: %s\n", fmt.Sprintf(format, args...))
}

func (l *PlainLogger) SafeOutput(value string) string { return value }

// WorkflowLogger emits GitHub Actions workflow commands so validate/fix
// output surfaces as annotations on the run, per
// https://docs.github.com/actions/using-workflows/workflow-commands-for-github-actions.
type WorkflowLogger struct {
	out io.Writer
}

func NewWorkflowLogger(out io.Writer) *WorkflowLogger {
	return &WorkflowLogger{out: out}
}

func (l *WorkflowLogger) Debug(format string, args ...any) {
	fmt.Fprintf(l.out, "::debug::%s\n", escapeWorkflowData(fmt.Sprintf(format, args...)))
}

func (l *WorkflowLogger) Warn(format string, args ...any) {
	fmt.Fprintf(l.out, "::warning::%s\n", escapeWorkflowData(fmt.Sprintf(format, args...)))
}

func (l *WorkflowLogger) Error(format string, args ...any) {
	fmt.Fprintf(l.out, "::error::%s\n", escapeWorkflowData(fmt.Sprintf(format, args...)))
}

func (l *WorkflowLogger) SafeOutput(value string) string { return escapeWorkflowData(value) }

func escapeWorkflowData(value string) string {
	value = strings.ReplaceAll(value, "%", "%25")
	value = strings.ReplaceAll(value, "\r", "%0D")
	value = strings.ReplaceAll(value, "\n", "%0A")
	return value
}
