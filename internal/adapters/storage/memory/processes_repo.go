package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"procurement-timeline/internal/domain/processes"
)

var (
	ErrNotFound = errors.New("not found")
)

type processRepo struct {
	mu   sync.RWMutex
	byID map[string]processes.Process
}

func NewProcessRepo() processes.Repository {
	return &processRepo{
		byID: make(map[string]processes.Process),
	}
}

func (r *processRepo) Create(ctx context.Context, p processes.Process) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		return errors.New("process id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("process already exists")
	}

	r.byID[p.ID] = p
	return nil
}

func (r *processRepo) GetByID(ctx context.Context, id string) (processes.Process, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return processes.Process{}, ErrNotFound
	}
	return p, nil
}

func (r *processRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]processes.Process, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]processes.Process, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}
