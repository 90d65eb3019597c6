package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gagankishoreint-glitch/credai/internal/domain/event"
	"github.com/gagankishoreint-glitch/credai/internal/domain/model"
	"github.com/gagankishoreint-glitch/credai/internal/domain/valueobject"
)

// ApplicationFilter narrows a listing. Zero values mean "no filter".
type ApplicationFilter struct {
	// UserID restricts the listing to one applicant.
	UserID uuid.UUID
	Status valueobject.ApplicationStatus
	Limit  int
	Offset int
}

// ApplicationRepository defines the persistence port for CreditApplication aggregates.
type ApplicationRepository interface {
	// Save persists a CreditApplication. If the application already exists, it
	// updates it using optimistic concurrency control via the version field.
	Save(ctx context.Context, app model.CreditApplication) error

	// FindByID retrieves a CreditApplication by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (model.CreditApplication, error)

	// List returns matching applications newest first, with the total count
	// before pagination.
	List(ctx context.Context, filter ApplicationFilter) ([]model.CreditApplication, int, error)

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	// Publish sends domain events to the specified topic.
	Publish(ctx context.Context, topic string, events ...event.DomainEvent) error
}

// ScoreCache stores preview assessments keyed by a digest of the raw input.
type ScoreCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// AssessmentRecorder receives the outcome of every assessment for metrics.
type AssessmentRecorder interface {
	RecordAssessment(ctx context.Context, source string, policyScore, modelScore int, decision valueobject.Decision)
}
