package timeline

import (
	"sort"
	"strings"
	"time"
)

// Facets es el estado de filtros de la vista. Cada faceta es
// independiente y componen por AND; el orden de aplicación no importa.
type Facets struct {
	Category Category // CategoryAll = sin filtro
	Severity Severity // SeverityAll = sin filtro
	Query    string   // substring case-insensitive

	OnlyDeadlines bool
	OnlyOverdue   bool

	Sort SortMode
}

// DefaultFacets devuelve el estado inicial de la toolbar.
func DefaultFacets() Facets {
	return Facets{
		Category: CategoryAll,
		Severity: SeverityAll,
		Sort:     SortRecent,
	}
}

// Apply es una proyección pura: filtra y ordena la colección según las
// facetas, evaluando los plazos contra el "now" recibido (no contra un
// status cacheado). Se re-ejecuta entera en cada cambio de faceta;
// no mantiene nada incremental.
func Apply(events []TimelineEvent, f Facets, now time.Time) []TimelineEvent {
	out := make([]TimelineEvent, 0, len(events))
	for _, e := range events {
		if matches(e, f, now) {
			out = append(out, e)
		}
	}
	sortEvents(out, f.Sort)
	return out
}

func matches(e TimelineEvent, f Facets, now time.Time) bool {
	if f.Category != "" && f.Category != CategoryAll && e.Category != f.Category {
		return false
	}
	if f.Severity != "" && f.Severity != SeverityAll && e.Severity != f.Severity {
		return false
	}
	if f.OnlyDeadlines && !e.HasDeadline() {
		return false
	}
	if f.OnlyOverdue {
		// Un evento sin plazo nunca pasa onlyOverdue.
		if !e.HasDeadline() || StatusOf(e.Deadline.DueAt, now) != DeadlineOverdue {
			return false
		}
	}
	return matchesQuery(e, f.Query)
}

// matchesQuery busca el texto en la concatenación de título, descripción,
// nombre y rol del autor y el timestamp crudo. Query vacía matchea todo.
func matchesQuery(e TimelineEvent, q string) bool {
	q = strings.TrimSpace(strings.ToLower(q))
	if q == "" {
		return true
	}
	hay := strings.ToLower(strings.Join([]string{
		e.Title,
		e.Description,
		e.Author.Name,
		e.Author.Role,
		e.OccurredAt,
	}, " "))
	return strings.Contains(hay, q)
}

// occurredOrEpoch parsea OccurredAt; timestamps rotos ordenan como
// epoch cero (quedan al fondo de RECENT y arriba de OLDEST).
func occurredOrEpoch(e TimelineEvent) time.Time {
	if t, ok := ParseWhen(e.OccurredAt); ok {
		return t
	}
	return time.Unix(0, 0)
}

func sortEvents(events []TimelineEvent, mode SortMode) {
	switch mode {
	case SortOldest:
		sort.SliceStable(events, func(i, j int) bool {
			return occurredOrEpoch(events[i]).Before(occurredOrEpoch(events[j]))
		})
	case SortCategoryAZ:
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].Category.Label() < events[j].Category.Label()
		})
	case SortSeverity:
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].Severity.Rank() > events[j].Severity.Rank()
		})
	default: // SortRecent
		sort.SliceStable(events, func(i, j int) bool {
			return occurredOrEpoch(events[i]).After(occurredOrEpoch(events[j]))
		})
	}
}

// SortByRecency ordena in-place por occurredAt descendente. Es el orden
// canónico de la colección después de cualquier append (replace-and-resort,
// no splice): la colección se mantiene siempre ordenada por recencia.
func SortByRecency(events []TimelineEvent) {
	sortEvents(events, SortRecent)
}
