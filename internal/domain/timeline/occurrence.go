package timeline

import "time"

// ExpandOccurrences materializa cada evento en una o dos apariciones de
// calendario: siempre una CREATED con el OccurredAt del evento, y además
// una DEADLINE si el evento declara plazo y su DueAt parsea. Si DueAt no
// parsea, la segunda aparición se suprime en silencio (nunca hay una
// tercera aparición de fallback).
//
// El orden de emisión no está especificado; los consumidores reordenan.
// "now" se captura una vez por consulta y se propaga a los status de
// los plazos para que toda la proyección sea consistente entre sí.
func ExpandOccurrences(events []TimelineEvent, now time.Time) []Occurrence {
	out := make([]Occurrence, 0, len(events))

	for _, e := range events {
		at, ok := ParseWhen(e.OccurredAt)
		out = append(out, Occurrence{
			Event:    e,
			Kind:     OccurrenceCreated,
			At:       at,
			ParsedOK: ok,
		})

		if !e.HasDeadline() {
			continue
		}
		due, ok := ParseWhen(e.Deadline.DueAt)
		if !ok {
			continue
		}
		out = append(out, Occurrence{
			Event:    e,
			Kind:     OccurrenceDeadline,
			At:       due,
			ParsedOK: true,
			Status:   StatusOf(e.Deadline.DueAt, now),
		})
	}

	return out
}
