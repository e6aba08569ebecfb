package processes

import "context"

type Repository interface {
	Create(ctx context.Context, p Process) error
	GetByID(ctx context.Context, id string) (Process, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Process, error)
}
