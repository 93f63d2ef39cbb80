package model

import "context"

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

type IssueStatus string

const (
	StatusPending           IssueStatus = "pending"
	StatusFixed             IssueStatus = "fixed"
	StatusFailed            IssueStatus = "failed"
	StatusManualFixRequired IssueStatus = "manual_fix_required"
	StatusUnfixable         IssueStatus = "unfixable"
)

// ActionResult is the outcome of executing a RemediationAction.
type ActionResult string

const (
	ActionSuccess           ActionResult = "success"
	ActionFailure           ActionResult = "failure"
	ActionManualFixRequired ActionResult = "manual_fix_required"
	ActionUnfixable         ActionResult = "unfixable"
)

// RemediationAction is the small shared interface every closed-variant
// action (DeleteTag, CreateRelease, PublishRelease, ...) implements.
// PriorityClass fixes execution order independent of the rule that created
// the action (10=delete, 20=create/update ref, 30=create release,
// 40=publish, 45=republish/set-latest).
type RemediationAction interface {
	Name() string
	PriorityClass() int
	Execute(ctx context.Context, state *RepositoryState) (ActionResult, error)
	ManualCommands(state *RepositoryState) []string
}

// ValidationIssue is one detected violation.
type ValidationIssue struct {
	Type              string
	Severity          Severity
	Message           string
	Version           string
	CurrentSHA        string
	ExpectedSHA       string
	ManualFixCommand  string
	RemediationAction RemediationAction
	Dependencies      []string // ordered "type:version" keys this issue waits on
	Status            IssueStatus
}

// NewValidationIssue enforces IsAutoFixable <=> RemediationAction != nil and
// the initial pending status.
func NewValidationIssue(issueType string, severity Severity, message, version string, action RemediationAction) *ValidationIssue {
	return &ValidationIssue{
		Type:              issueType,
		Severity:          severity,
		Message:           message,
		Version:           version,
		RemediationAction: action,
		Status:            StatusPending,
	}
}

func (i *ValidationIssue) IsAutoFixable() bool {
	return i.RemediationAction != nil
}

// terminal statuses are never rewritten once set.
func (i *ValidationIssue) IsTerminal() bool {
	switch i.Status {
	case StatusFixed, StatusFailed, StatusManualFixRequired, StatusUnfixable:
		return true
	default:
		return false
	}
}
