package rules

import (
	"context"
	"fmt"
	"testing"

	"si/tools/si/internal/model"
)

type fakeLogger struct{ warnings []string }

func (f *fakeLogger) Warn(format string, args ...any) {
	f.warnings = append(f.warnings, fmt.Sprintf(format, args...))
}

func TestEngineRunOrdersByPriorityThenName(t *testing.T) {
	t.Parallel()
	var order []string
	record := func(name string) ValidationRule {
		return ValidationRule{
			Name:     name,
			Priority: 10,
			Category: CategoryRefType,
			Condition: func(*model.RepositoryState, model.Config) []Candidate {
				return []Candidate{struct{}{}}
			},
			Check: func(Candidate, *model.RepositoryState, model.Config) bool {
				order = append(order, name)
				return true
			},
			CreateIssue: func(Candidate, *model.RepositoryState, model.Config) *model.ValidationIssue { return nil },
		}
	}
	engine := NewEngine(&fakeLogger{}, record("zeta"), record("alpha"))
	state := &model.RepositoryState{}
	if _, err := engine.Run(context.Background(), state, model.Config{}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(order) != 2 || order[0] != "alpha" || order[1] != "zeta" {
		t.Fatalf("got order=%v want=[alpha zeta]", order)
	}
}

func TestEngineRunRecoversFromPanic(t *testing.T) {
	t.Parallel()
	panicking := ValidationRule{
		Name:     "panics",
		Priority: 1,
		Category: CategoryRefType,
		Condition: func(*model.RepositoryState, model.Config) []Candidate {
			panic("boom")
		},
		Check:       func(Candidate, *model.RepositoryState, model.Config) bool { return true },
		CreateIssue: func(Candidate, *model.RepositoryState, model.Config) *model.ValidationIssue { return nil },
	}
	logger := &fakeLogger{}
	engine := NewEngine(logger, panicking)
	issues, err := engine.Run(context.Background(), &model.RepositoryState{}, model.Config{})
	if err != nil {
		t.Fatalf("Run should not fail on a panicking rule, got: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %d", len(issues))
	}
	if len(logger.warnings) != 1 {
		t.Fatalf("expected one warning logged, got %d", len(logger.warnings))
	}
}

func TestEngineRunFailsFastOnMissingCallable(t *testing.T) {
	t.Parallel()
	incomplete := ValidationRule{Name: "incomplete", Priority: 1}
	engine := NewEngine(&fakeLogger{}, incomplete)
	if _, err := engine.Run(context.Background(), &model.RepositoryState{}, model.Config{}); err == nil {
		t.Fatal("expected an error for a rule missing Condition/Check/CreateIssue")
	}
}

func TestEngineRunCreatesIssueOnFailedCheck(t *testing.T) {
	t.Parallel()
	rule := ValidationRule{
		Name:     "always_fails",
		Priority: 1,
		Category: CategoryRefType,
		Condition: func(*model.RepositoryState, model.Config) []Candidate {
			return []Candidate{"v1.0.0"}
		},
		Check: func(Candidate, *model.RepositoryState, model.Config) bool { return false },
		CreateIssue: func(c Candidate, _ *model.RepositoryState, _ model.Config) *model.ValidationIssue {
			return model.NewValidationIssue("always_fails", model.SeverityError, "bad", c.(string), nil)
		},
	}
	state := &model.RepositoryState{}
	engine := NewEngine(&fakeLogger{}, rule)
	issues, err := engine.Run(context.Background(), state, model.Config{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(issues) != 1 || len(state.Issues) != 1 {
		t.Fatalf("expected one issue recorded both ways, got issues=%d state.Issues=%d", len(issues), len(state.Issues))
	}
}

func TestEngineRunStopsOnCancelledContextBetweenRules(t *testing.T) {
	t.Parallel()
	var ran []string
	record := func(name string, priority int) ValidationRule {
		return ValidationRule{
			Name:     name,
			Priority: priority,
			Category: CategoryRefType,
			Condition: func(*model.RepositoryState, model.Config) []Candidate {
				ran = append(ran, name)
				return nil
			},
			Check:       func(Candidate, *model.RepositoryState, model.Config) bool { return true },
			CreateIssue: func(Candidate, *model.RepositoryState, model.Config) *model.ValidationIssue { return nil },
		}
	}
	engine := NewEngine(&fakeLogger{}, record("first", 1), record("second", 2))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	issues, err := engine.Run(ctx, &model.RepositoryState{}, model.Config{})
	if err == nil {
		t.Fatal("expected a cancellation error")
	}
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %d", len(issues))
	}
	if len(ran) != 0 {
		t.Fatalf("expected no rule to run once the context was already cancelled, got %v", ran)
	}
}
