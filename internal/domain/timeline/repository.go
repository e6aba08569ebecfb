package timeline

import "context"

// Repository persiste la colección de eventos de cada proceso.
// El motor no filtra acá: el repo devuelve la colección entera del
// proceso (ordenada por recencia) y las proyecciones se derivan en
// memoria como funciones puras. Ver filter.go / occurrence.go.
type Repository interface {
	Create(ctx context.Context, e TimelineEvent) error
	GetByID(ctx context.Context, id string) (TimelineEvent, error)
	ListByProcess(ctx context.Context, processID string) ([]TimelineEvent, error)
}
