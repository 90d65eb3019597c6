package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gagankishoreint-glitch/credai/internal/domain/event"
	"github.com/gagankishoreint-glitch/credai/internal/domain/service"
	"github.com/gagankishoreint-glitch/credai/internal/domain/valueobject"
)

// Sentinel errors returned by state transitions.
var (
	ErrAlreadyDecided     = errors.New("credit application already has a final decision")
	ErrNotScored          = errors.New("credit application has not been scored")
	ErrDecisionNotFinal   = errors.New("manual decision must be approved or rejected")
	ErrMissingUnderwriter = errors.New("underwriter ID is required")
	ErrInvalidApplication = errors.New("invalid credit application")
)

// ---------------------------------------------------------------------------
// CreditApplication aggregate root
// ---------------------------------------------------------------------------

// CreditApplication is an immutable aggregate. Every mutation returns a new copy.
type CreditApplication struct {
	id              uuid.UUID
	userID          uuid.UUID
	businessName    string
	requestedAmount decimal.Decimal
	data            valueobject.RawApplication
	aiScore         int
	insights        []valueobject.Insight
	status          valueobject.ApplicationStatus
	decision        valueobject.Decision
	modelScore      int
	probability     float64
	confidence      float64
	riskGrade       valueobject.RiskGrade
	recommendation  valueobject.Recommendation
	decidedBy       uuid.UUID
	decidedAt       time.Time
	version         int
	createdAt       time.Time
	updatedAt       time.Time
	domainEvents    []event.DomainEvent
}

// Snapshot is the persisted form of a CreditApplication.
type Snapshot struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	BusinessName    string
	RequestedAmount decimal.Decimal
	Data            valueobject.RawApplication
	AIScore         int
	Insights        []valueobject.Insight
	Status          valueobject.ApplicationStatus
	Decision        valueobject.Decision
	ModelScore      int
	Probability     float64
	Confidence      float64
	RiskGrade       valueobject.RiskGrade
	Recommendation  valueobject.Recommendation
	DecidedBy       uuid.UUID
	DecidedAt       time.Time
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewCreditApplication creates an application awaiting analysis. Only the
// caller-owned fields are validated; the financial data is accepted as is.
func NewCreditApplication(
	userID uuid.UUID,
	businessName string,
	requestedAmount decimal.Decimal,
	data valueobject.RawApplication,
	now time.Time,
) (CreditApplication, error) {
	businessName = strings.TrimSpace(businessName)
	if userID == uuid.Nil {
		return CreditApplication{}, fmt.Errorf("%w: user ID is required", ErrInvalidApplication)
	}
	if businessName == "" {
		return CreditApplication{}, fmt.Errorf("%w: business name is required", ErrInvalidApplication)
	}
	if requestedAmount.IsNegative() {
		return CreditApplication{}, fmt.Errorf("%w: requested amount must not be negative", ErrInvalidApplication)
	}

	// The top-level amount backs the scoring input when the data carries
	// no loanAmount of its own.
	data = data.WithAmount(valueobject.Number(requestedAmount.InexactFloat64()))

	id := uuid.New()
	app := CreditApplication{
		id:              id,
		userID:          userID,
		businessName:    businessName,
		requestedAmount: requestedAmount,
		data:            data,
		insights:        []valueobject.Insight{},
		status:          valueobject.ApplicationStatusAnalyzing,
		decision:        valueobject.DecisionPending,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}

	app.domainEvents = append(app.domainEvents, event.NewApplicationSubmitted(
		id.String(), userID.String(), businessName, requestedAmount,
	))
	return app, nil
}

// Reconstruct rebuilds an aggregate from persistence without side-effects.
func Reconstruct(s Snapshot) CreditApplication {
	return CreditApplication{
		id:              s.ID,
		userID:          s.UserID,
		businessName:    s.BusinessName,
		requestedAmount: s.RequestedAmount,
		data:            s.Data,
		aiScore:         s.AIScore,
		insights:        slices.Clone(s.Insights),
		status:          s.Status,
		decision:        s.Decision,
		modelScore:      s.ModelScore,
		probability:     s.Probability,
		confidence:      s.Confidence,
		riskGrade:       s.RiskGrade,
		recommendation:  s.Recommendation,
		decidedBy:       s.DecidedBy,
		decidedAt:       s.DecidedAt,
		version:         s.Version,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions (each returns a new copy)
// ---------------------------------------------------------------------------

// ApplyAssessment records both scoring paths. The rule policy sets status
// and decision; the model result is stored alongside it unreconciled. It
// emits ApplicationScored and, when the policy reached a final decision,
// ApplicationApproved or ApplicationRejected.
func (a CreditApplication) ApplyAssessment(as service.Assessment, now time.Time) (CreditApplication, error) {
	if a.decision.IsFinal() {
		return a, ErrAlreadyDecided
	}

	next := a
	next.aiScore = as.Policy.Score
	next.insights = slices.Clone(as.Policy.Insights)
	next.status = as.Policy.Status
	next.decision = as.Policy.Decision
	next.modelScore = as.Scoring.CreditScore
	next.probability = as.Scoring.Probability
	next.confidence = as.Scoring.Confidence
	next.riskGrade = as.RiskGrade
	next.recommendation = as.Recommendation
	next.updatedAt = now
	if next.decision.IsFinal() {
		next.decidedAt = now
	}

	id, owner := a.id.String(), a.userID.String()
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewApplicationScored(
		id, owner, next.aiScore, next.modelScore, next.probability,
		next.riskGrade.String(), next.status.String(), next.decision.String(),
	))
	next.domainEvents = appendDecisionEvent(next.domainEvents, next, "automatic", fmt.Sprintf("policy score %d", next.aiScore))
	return next, nil
}

// Decide records an underwriter's approval or rejection of an application
// still under analysis.
func (a CreditApplication) Decide(
	decision valueobject.Decision,
	underwriterID uuid.UUID,
	reason string,
	now time.Time,
) (CreditApplication, error) {
	if !decision.IsFinal() {
		return a, ErrDecisionNotFinal
	}
	if underwriterID == uuid.Nil {
		return a, ErrMissingUnderwriter
	}
	if a.decision.IsFinal() {
		return a, ErrAlreadyDecided
	}
	if a.riskGrade.IsZero() {
		return a, ErrNotScored
	}

	next := a
	next.status = valueobject.ApplicationStatusDecision
	next.decision = decision
	next.decidedBy = underwriterID
	next.decidedAt = now
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = appendDecisionEvent(next.domainEvents, next, underwriterID.String(), reason)
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (a CreditApplication) ID() uuid.UUID                              { return a.id }
func (a CreditApplication) UserID() uuid.UUID                          { return a.userID }
func (a CreditApplication) BusinessName() string                       { return a.businessName }
func (a CreditApplication) RequestedAmount() decimal.Decimal           { return a.requestedAmount }
func (a CreditApplication) Data() valueobject.RawApplication           { return a.data }
func (a CreditApplication) AIScore() int                               { return a.aiScore }
func (a CreditApplication) Insights() []valueobject.Insight            { return slices.Clone(a.insights) }
func (a CreditApplication) Status() valueobject.ApplicationStatus      { return a.status }
func (a CreditApplication) Decision() valueobject.Decision             { return a.decision }
func (a CreditApplication) ModelScore() int                            { return a.modelScore }
func (a CreditApplication) Probability() float64                       { return a.probability }
func (a CreditApplication) Confidence() float64                        { return a.confidence }
func (a CreditApplication) RiskGrade() valueobject.RiskGrade           { return a.riskGrade }
func (a CreditApplication) Recommendation() valueobject.Recommendation { return a.recommendation }
func (a CreditApplication) DecidedBy() uuid.UUID                       { return a.decidedBy }
func (a CreditApplication) DecidedAt() time.Time                       { return a.decidedAt }
func (a CreditApplication) Version() int                               { return a.version }
func (a CreditApplication) CreatedAt() time.Time                       { return a.createdAt }
func (a CreditApplication) UpdatedAt() time.Time                       { return a.updatedAt }
func (a CreditApplication) DomainEvents() []event.DomainEvent          { return a.domainEvents }

// OwnedBy reports whether userID submitted the application.
func (a CreditApplication) OwnedBy(userID uuid.UUID) bool { return a.userID == userID }

// ScoreDivergence is the gap between the model credit score and the rule score.
func (a CreditApplication) ScoreDivergence() int {
	d := a.modelScore - a.aiScore
	if d < 0 {
		return -d
	}
	return d
}

// Snapshot returns the persisted form of the aggregate.
func (a CreditApplication) Snapshot() Snapshot {
	return Snapshot{
		ID:              a.id,
		UserID:          a.userID,
		BusinessName:    a.businessName,
		RequestedAmount: a.requestedAmount,
		Data:            a.data,
		AIScore:         a.aiScore,
		Insights:        slices.Clone(a.insights),
		Status:          a.status,
		Decision:        a.decision,
		ModelScore:      a.modelScore,
		Probability:     a.probability,
		Confidence:      a.confidence,
		RiskGrade:       a.riskGrade,
		Recommendation:  a.recommendation,
		DecidedBy:       a.decidedBy,
		DecidedAt:       a.decidedAt,
		Version:         a.version,
		CreatedAt:       a.createdAt,
		UpdatedAt:       a.updatedAt,
	}
}

// ClearEvents returns a copy with an empty event list (call after publishing).
func (a CreditApplication) ClearEvents() CreditApplication {
	next := a
	next.domainEvents = nil
	return next
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func appendDecisionEvent(dst []event.DomainEvent, a CreditApplication, decidedBy, reason string) []event.DomainEvent {
	id, owner := a.id.String(), a.userID.String()
	switch {
	case a.decision.Equal(valueobject.DecisionApproved):
		return append(dst, event.NewApplicationApproved(id, owner, a.aiScore, decidedBy, reason))
	case a.decision.Equal(valueobject.DecisionRejected):
		return append(dst, event.NewApplicationRejected(id, owner, a.aiScore, decidedBy, reason))
	default:
		return dst
	}
}

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if len(src) == 0 {
		return nil
	}
	dst := make([]event.DomainEvent, len(src))
	copy(dst, src)
	return dst
}
