package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gagankishoreint-glitch/credai/internal/domain/event"
	"github.com/gagankishoreint-glitch/credai/internal/domain/model"
	"github.com/gagankishoreint-glitch/credai/internal/domain/port"
	"github.com/gagankishoreint-glitch/credai/internal/domain/valueobject"
)

// --- Mock implementations ---

type mockApplicationRepository struct {
	savedApp     *model.CreditApplication
	saveErr      error
	findByIDFunc func(ctx context.Context, id uuid.UUID) (model.CreditApplication, error)
	listFunc     func(ctx context.Context, filter port.ApplicationFilter) ([]model.CreditApplication, int, error)
	lastFilter   port.ApplicationFilter
}

func (m *mockApplicationRepository) Save(_ context.Context, app model.CreditApplication) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.savedApp = &app
	return nil
}

func (m *mockApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (model.CreditApplication, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.CreditApplication{}, valueobject.ErrApplicationNotFound
}

func (m *mockApplicationRepository) List(ctx context.Context, filter port.ApplicationFilter) ([]model.CreditApplication, int, error) {
	m.lastFilter = filter
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockApplicationRepository) Ping(context.Context) error { return nil }

type mockEventPublisher struct {
	mu              sync.Mutex
	publishedEvents []event.DomainEvent
	publishedTopic  string
	publishErr      error
}

func (m *mockEventPublisher) Publish(_ context.Context, topic string, events ...event.DomainEvent) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.publishedTopic = topic
	m.publishedEvents = append(m.publishedEvents, events...)
	return nil
}

func (m *mockEventPublisher) eventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.publishedEvents))
	for _, e := range m.publishedEvents {
		out = append(out, e.EventType())
	}
	return out
}

type mockScoreCache struct {
	entries map[string][]byte
	getErr  error
	setErr  error
	sets    int
}

func newMockScoreCache() *mockScoreCache {
	return &mockScoreCache{entries: map[string][]byte{}}
}

func (m *mockScoreCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *mockScoreCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.sets++
	m.entries[key] = value
	return nil
}

type recordedAssessment struct {
	source      string
	policyScore int
	modelScore  int
	decision    valueobject.Decision
}

type mockRecorder struct {
	mu      sync.Mutex
	records []recordedAssessment
}

func (m *mockRecorder) RecordAssessment(_ context.Context, source string, policyScore, modelScore int, decision valueobject.Decision) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, recordedAssessment{source, policyScore, modelScore, decision})
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
