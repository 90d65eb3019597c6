package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// ApplicationStatus – immutable value object
// ---------------------------------------------------------------------------

// ApplicationStatus tells whether an application still awaits a decision.
type ApplicationStatus struct {
	value string
}

const (
	appStatusAnalyzing = "analyzing"
	appStatusDecision  = "decision"
)

var (
	ApplicationStatusAnalyzing = ApplicationStatus{value: appStatusAnalyzing}
	ApplicationStatusDecision  = ApplicationStatus{value: appStatusDecision}
)

var validApplicationStatuses = map[string]ApplicationStatus{
	appStatusAnalyzing: ApplicationStatusAnalyzing,
	appStatusDecision:  ApplicationStatusDecision,
}

// NewApplicationStatus creates an ApplicationStatus from a raw string.
func NewApplicationStatus(s string) (ApplicationStatus, error) {
	v, ok := validApplicationStatuses[s]
	if !ok {
		return ApplicationStatus{}, fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s ApplicationStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s ApplicationStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s ApplicationStatus) Equal(other ApplicationStatus) bool {
	return s.value == other.value
}

// ---------------------------------------------------------------------------
// Decision – immutable value object
// ---------------------------------------------------------------------------

// Decision is the coarse outcome of the rule-based policy.
type Decision struct {
	value string
}

const (
	decisionPending  = "pending"
	decisionApproved = "approved"
	decisionRejected = "rejected"
)

var (
	DecisionPending  = Decision{value: decisionPending}
	DecisionApproved = Decision{value: decisionApproved}
	DecisionRejected = Decision{value: decisionRejected}
)

var validDecisions = map[string]Decision{
	decisionPending:  DecisionPending,
	decisionApproved: DecisionApproved,
	decisionRejected: DecisionRejected,
}

// NewDecision creates a Decision from a raw string.
func NewDecision(s string) (Decision, error) {
	v, ok := validDecisions[s]
	if !ok {
		return Decision{}, fmt.Errorf("%w: %q", ErrInvalidDecision, s)
	}
	return v, nil
}

// String returns the string representation.
func (d Decision) String() string { return d.value }

// IsZero returns true when not initialised.
func (d Decision) IsZero() bool { return d.value == "" }

// Equal returns true when both decisions match.
func (d Decision) Equal(other Decision) bool { return d.value == other.value }

// IsFinal reports whether the decision is approved or rejected.
func (d Decision) IsFinal() bool {
	return d.value == decisionApproved || d.value == decisionRejected
}

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidStatus         = errors.New("invalid application status")
	ErrInvalidDecision       = errors.New("invalid decision")
	ErrInvalidInsightKind    = errors.New("invalid insight kind")
	ErrInvalidRiskGrade      = errors.New("invalid risk grade")
	ErrInvalidRecommendation = errors.New("invalid recommendation")
	ErrApplicationNotFound   = errors.New("credit application not found")
	ErrVersionConflict       = errors.New("credit application was modified concurrently")
)
