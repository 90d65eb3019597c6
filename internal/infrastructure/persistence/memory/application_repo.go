package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/gagankishoreint-glitch/credai/internal/domain/model"
	"github.com/gagankishoreint-glitch/credai/internal/domain/port"
	"github.com/gagankishoreint-glitch/credai/internal/domain/valueobject"
)

// ApplicationRepo is an in-process port.ApplicationRepository with the same
// optimistic locking rules as the PostgreSQL store. It backs STORE=memory.
type ApplicationRepo struct {
	mu   sync.RWMutex
	apps map[uuid.UUID]model.Snapshot
}

// NewApplicationRepo returns an empty repository.
func NewApplicationRepo() *ApplicationRepo {
	return &ApplicationRepo{apps: make(map[uuid.UUID]model.Snapshot)}
}

// Save inserts app or, if it exists, updates it when the stored version
// matches app.Version(). Updates increment the stored version.
func (r *ApplicationRepo) Save(_ context.Context, app model.CreditApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := app.Snapshot()
	if existing, ok := r.apps[snap.ID]; ok {
		if existing.Version != snap.Version {
			return fmt.Errorf("%w: application %s", valueobject.ErrVersionConflict, snap.ID)
		}
		snap.Version = existing.Version + 1
		snap.CreatedAt = existing.CreatedAt
	}
	r.apps[snap.ID] = snap
	return nil
}

// FindByID retrieves an application.
func (r *ApplicationRepo) FindByID(_ context.Context, id uuid.UUID) (model.CreditApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap, ok := r.apps[id]
	if !ok {
		return model.CreditApplication{}, fmt.Errorf("%w: %s", valueobject.ErrApplicationNotFound, id)
	}
	return model.Reconstruct(snap), nil
}

// List returns matching applications newest first.
func (r *ApplicationRepo) List(_ context.Context, filter port.ApplicationFilter) ([]model.CreditApplication, int, error) {
	r.mu.RLock()
	matched := make([]model.Snapshot, 0, len(r.apps))
	for _, snap := range r.apps {
		if filter.UserID != uuid.Nil && snap.UserID != filter.UserID {
			continue
		}
		if !filter.Status.IsZero() && !snap.Status.Equal(filter.Status) {
			continue
		}
		matched = append(matched, snap)
	}
	r.mu.RUnlock()

	slices.SortFunc(matched, func(a, b model.Snapshot) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})

	total := len(matched)
	start := min(max(filter.Offset, 0), total)
	end := total
	if filter.Limit > 0 {
		end = min(start+filter.Limit, total)
	}

	out := make([]model.CreditApplication, 0, end-start)
	for _, snap := range matched[start:end] {
		out = append(out, model.Reconstruct(snap))
	}
	return out, total, nil
}

// Ping always succeeds.
func (r *ApplicationRepo) Ping(context.Context) error { return nil }
