package event

import (
	"github.com/shopspring/decimal"

	"github.com/gagankishoreint-glitch/credai/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const aggregateType = "CreditApplication"

// Event types published by the credit application aggregate.
const (
	TypeApplicationSubmitted = "credai.application.submitted"
	TypeApplicationScored    = "credai.application.scored"
	TypeApplicationApproved  = "credai.application.approved"
	TypeApplicationRejected  = "credai.application.rejected"
	TypeAssessmentCompleted  = "credai.assessment.completed"
)

// ---------------------------------------------------------------------------
// Credit Application Events
// ---------------------------------------------------------------------------

// ApplicationSubmitted is raised when a new application enters the system.
type ApplicationSubmitted struct {
	events.BaseEvent
	BusinessName    string          `json:"business_name"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
}

func NewApplicationSubmitted(applicationID, userID, businessName string, amount decimal.Decimal) ApplicationSubmitted {
	return ApplicationSubmitted{
		BaseEvent:       events.NewBaseEvent(TypeApplicationSubmitted, applicationID, aggregateType, userID),
		BusinessName:    businessName,
		RequestedAmount: amount,
	}
}

// ApplicationScored is raised every time the engine scores an application.
// It carries both the rule score and the model credit score.
type ApplicationScored struct {
	events.BaseEvent
	AIScore     int     `json:"ai_score"`
	ModelScore  int     `json:"model_score"`
	Probability float64 `json:"probability"`
	RiskGrade   string  `json:"risk_grade"`
	Status      string  `json:"status"`
	Decision    string  `json:"decision"`
}

func NewApplicationScored(
	applicationID, userID string,
	aiScore, modelScore int, probability float64,
	riskGrade, status, decision string,
) ApplicationScored {
	return ApplicationScored{
		BaseEvent:   events.NewBaseEvent(TypeApplicationScored, applicationID, aggregateType, userID),
		AIScore:     aiScore,
		ModelScore:  modelScore,
		Probability: probability,
		RiskGrade:   riskGrade,
		Status:      status,
		Decision:    decision,
	}
}

// ApplicationApproved is raised when an application is approved, either
// automatically by the policy or by an underwriter.
type ApplicationApproved struct {
	events.BaseEvent
	AIScore   int    `json:"ai_score"`
	DecidedBy string `json:"decided_by"`
	Reason    string `json:"reason"`
}

func NewApplicationApproved(applicationID, userID string, aiScore int, decidedBy, reason string) ApplicationApproved {
	return ApplicationApproved{
		BaseEvent: events.NewBaseEvent(TypeApplicationApproved, applicationID, aggregateType, userID),
		AIScore:   aiScore,
		DecidedBy: decidedBy,
		Reason:    reason,
	}
}

// ApplicationRejected is raised when an application is rejected.
type ApplicationRejected struct {
	events.BaseEvent
	AIScore   int    `json:"ai_score"`
	DecidedBy string `json:"decided_by"`
	Reason    string `json:"reason"`
}

func NewApplicationRejected(applicationID, userID string, aiScore int, decidedBy, reason string) ApplicationRejected {
	return ApplicationRejected{
		BaseEvent: events.NewBaseEvent(TypeApplicationRejected, applicationID, aggregateType, userID),
		AIScore:   aiScore,
		DecidedBy: decidedBy,
		Reason:    reason,
	}
}

// ---------------------------------------------------------------------------
// Stateless assessment events
// ---------------------------------------------------------------------------

// AssessmentCompleted answers a scoring request received over messaging.
// The aggregate ID is the caller's request ID. Result holds the assessment
// payload as rendered by the application layer.
type AssessmentCompleted struct {
	events.BaseEvent
	Result any `json:"result"`
}

func NewAssessmentCompleted(requestID, ownerID string, result any) AssessmentCompleted {
	return AssessmentCompleted{
		BaseEvent: events.NewBaseEvent(TypeAssessmentCompleted, requestID, "CreditAssessment", ownerID),
		Result:    result,
	}
}
