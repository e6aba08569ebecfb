package timeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time

	// demo es el dataset de demostración que usa Preview cuando el
	// bundle del widget no trae items (modo demo activo).
	demo []TimelineEvent
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// WithDemoDataset habilita el dataset de demostración para Preview.
func (s *Service) WithDemoDataset(events []TimelineEvent) *Service {
	s.demo = events
	return s
}

type AppendInput struct {
	ID          string // opcional; si viene vacío se asigna uuid
	Title       string
	Description string
	Category    string
	Severity    string
	OccurredAt  string
	Author      Author
	IsDeadline  bool
	DueAt       string
	Openable    *bool // nil = default true
}

// Append inserta un evento ya formado en el timeline del proceso.
// La colección queda ordenada por recencia después del insert (el repo
// lista ordenado; no hay splice in-place). No valida más que lo que un
// evento bien formado ya cumple: reglas de formulario (largo mínimo de
// título, etc.) son problema de la UI.
func (s *Service) Append(ctx context.Context, processID string, in AppendInput) (TimelineEvent, error) {
	if strings.TrimSpace(processID) == "" {
		return TimelineEvent{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.OccurredAt) == "" {
		return TimelineEvent{}, ErrInvalidInput
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.NewString()
	}

	e := TimelineEvent{
		ID:          id,
		ProcessID:   processID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    ParseCategory(in.Category),
		Severity:    ParseSeverity(in.Severity),
		OccurredAt:  strings.TrimSpace(in.OccurredAt),
		Author:      in.Author,
		Openable:    true,
	}
	if in.Openable != nil {
		e.Openable = *in.Openable
	}
	if in.IsDeadline && strings.TrimSpace(in.DueAt) != "" {
		e.Deadline = Deadline{IsDeadline: true, DueAt: strings.TrimSpace(in.DueAt)}
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return TimelineEvent{}, err
	}
	return e, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (TimelineEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return TimelineEvent{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// List devuelve la vista plana filtrada/ordenada. "now" se captura una
// sola vez acá y atraviesa toda la consulta: los status de plazos de una
// misma respuesta son consistentes entre sí.
func (s *Service) List(ctx context.Context, processID string, f Facets, limit int) ([]TimelineEvent, error) {
	events, err := s.repo.ListByProcess(ctx, processID)
	if err != nil {
		return nil, err
	}

	out := Apply(events, f, s.now())

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Grouped devuelve la vista de historia completa agrupada por día:
// días descendentes, eventos ascendentes dentro del día.
func (s *Service) Grouped(ctx context.Context, processID string) ([]DayBucket, error) {
	events, err := s.repo.ListByProcess(ctx, processID)
	if err != nil {
		return nil, err
	}

	occs := ExpandOccurrences(events, s.now())
	return SortedBuckets(GroupByDay(occs)), nil
}

// Calendar arma la grilla de 42 celdas del mes pedido.
func (s *Service) Calendar(ctx context.Context, processID string, m Month) ([]CalendarCell, error) {
	events, err := s.repo.ListByProcess(ctx, processID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	occs := ExpandOccurrences(events, now)
	return BuildMonthGrid(m, now, GroupByDay(occs)), nil
}

// Day devuelve las apariciones del día seleccionado (clave YYYY-MM-DD).
func (s *Service) Day(ctx context.Context, processID, dayKey string) ([]Occurrence, error) {
	events, err := s.repo.ListByProcess(ctx, processID)
	if err != nil {
		return nil, err
	}

	occs := ExpandOccurrences(events, s.now())
	return DayOccurrences(occs, dayKey), nil
}

// Summary computa los agregados sobre la colección completa del proceso.
func (s *Service) Summary(ctx context.Context, processID string) (Summary, error) {
	events, err := s.repo.ListByProcess(ctx, processID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(events, s.now()), nil
}

// ExportICS serializa todas las apariciones del proceso como calendario ICS.
func (s *Service) ExportICS(ctx context.Context, processID, title string) (string, error) {
	events, err := s.repo.ListByProcess(ctx, processID)
	if err != nil {
		return "", err
	}

	now := s.now()
	occs := ExpandOccurrences(events, now)
	return BuildICS(title, occs, now), nil
}

// PreviewResult es la evaluación stateless del widget: el bundle crudo
// ya normalizado más sus proyecciones derivadas.
type PreviewResult struct {
	Config   WidgetConfig
	Events   []TimelineEvent
	Buckets  []DayBucket
	Summary  Summary
	UsedDemo bool
}

// Preview corre el normalizador de configuración sobre un bundle
// arbitrario y devuelve las proyecciones. Bundle sin items usa el
// dataset de demostración si está habilitado.
func (s *Service) Preview(raw map[string]any) PreviewResult {
	cfg := NormalizeWidgetConfig(raw)
	now := s.now()

	events := cfg.Events
	usedDemo := false
	if len(events) == 0 && len(s.demo) > 0 {
		events = s.demo
		usedDemo = true
	}

	f := DefaultFacets()
	f.Category = cfg.DefaultFilter

	listed := Apply(events, f, now)
	if cfg.MaxPreviewItems > 0 && len(listed) > cfg.MaxPreviewItems {
		listed = listed[:cfg.MaxPreviewItems]
	}

	occs := ExpandOccurrences(events, now)

	return PreviewResult{
		Config:   cfg,
		Events:   listed,
		Buckets:  SortedBuckets(GroupByDay(occs)),
		Summary:  Summarize(events, now),
		UsedDemo: usedDemo,
	}
}
