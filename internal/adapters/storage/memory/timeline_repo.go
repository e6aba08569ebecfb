package memory

import (
	"context"
	"errors"
	"sync"

	"procurement-timeline/internal/domain/timeline"
)

type timelineRepo struct {
	mu   sync.RWMutex
	byID map[string]timeline.TimelineEvent
}

func NewTimelineRepo() timeline.Repository {
	return &timelineRepo{
		byID: make(map[string]timeline.TimelineEvent),
	}
}

func (r *timelineRepo) Create(ctx context.Context, e timeline.TimelineEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		return errors.New("event id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("event already exists")
	}

	r.byID[e.ID] = e
	return nil
}

func (r *timelineRepo) GetByID(ctx context.Context, id string) (timeline.TimelineEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return timeline.TimelineEvent{}, ErrNotFound
	}
	return e, nil
}

// ListByProcess devuelve la colección completa del proceso ordenada por
// recencia (occurredAt desc). El filtrado por facetas no pasa por acá:
// es una proyección pura del motor sobre esta colección.
func (r *timelineRepo) ListByProcess(ctx context.Context, processID string) ([]timeline.TimelineEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]timeline.TimelineEvent, 0)
	for _, e := range r.byID {
		if e.ProcessID == processID {
			out = append(out, e)
		}
	}

	timeline.SortByRecency(out)
	return out, nil
}
