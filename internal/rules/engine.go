package rules

import (
	"context"
	"fmt"
	"sort"

	"si/tools/si/internal/model"
)

// Logger is the minimal surface the engine needs to report a rule that
// panicked without aborting the pipeline for it (spec §4.2 point 4).
type Logger interface {
	Warn(format string, args ...any)
}

// Engine runs the registered rules against a RepositoryState in priority
// order, as described in spec §4.2.
type Engine struct {
	Rules  []ValidationRule
	Logger Logger
}

func NewEngine(logger Logger, rules ...ValidationRule) *Engine {
	return &Engine{Rules: rules, Logger: logger}
}

// Run sorts rules ascending by (priority, name), then for each rule calls
// Condition, then Check per candidate, and on a false Check appends the
// issue CreateIssue builds to both state.Issues and the returned slice. A
// rule missing any of the three callables is a programming error and fails
// fast; any other failure (a panicking callable) is logged and skipped.
// Cancellation is cooperative: ctx is checked between rules, never
// mid-rule, so a cancelled run still leaves every issue recorded up to that
// point intact.
func (e *Engine) Run(ctx context.Context, state *model.RepositoryState, cfg model.Config) (issues []*model.ValidationIssue, err error) {
	ordered := make([]ValidationRule, len(e.Rules))
	copy(ordered, e.Rules)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Priority != ordered[j].Priority {
			return ordered[i].Priority < ordered[j].Priority
		}
		return ordered[i].Name < ordered[j].Name
	})

	for _, rule := range ordered {
		if err := ctx.Err(); err != nil {
			return issues, err
		}
		if rule.Condition == nil || rule.Check == nil || rule.CreateIssue == nil {
			return issues, fmt.Errorf("rule %q is missing a required callable", rule.Name)
		}
		if runErr := e.runRule(rule, state, cfg, &issues); runErr != nil {
			e.warn("rule %s: %v", rule.Name, runErr)
		}
	}
	return issues, nil
}

func (e *Engine) runRule(rule ValidationRule, state *model.RepositoryState, cfg model.Config, issues *[]*model.ValidationIssue) (runErr error) {
	defer func() {
		if r := recover(); r != nil {
			runErr = fmt.Errorf("panic: %v", r)
		}
	}()
	candidates := rule.Condition(state, cfg)
	for _, candidate := range candidates {
		if rule.Check(candidate, state, cfg) {
			continue
		}
		issue := rule.CreateIssue(candidate, state, cfg)
		if issue == nil {
			continue
		}
		state.AddIssue(issue)
		*issues = append(*issues, issue)
	}
	return nil
}

func (e *Engine) warn(format string, args ...any) {
	if e.Logger == nil {
		return
	}
	e.Logger.Warn(format, args...)
}
