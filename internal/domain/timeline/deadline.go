package timeline

import "time"

// StatusOf clasifica un plazo textual contra el instante de referencia "now".
//
// Reglas:
//   - texto no parseable => FUTURE (fail-open: nunca bloquea el render)
//   - mismo día local que "now" => DUE_TODAY, aunque el instante ya haya
//     pasado (un plazo de hoy 00:05 evaluado a las 23:59 sigue siendo "hoy")
//   - si no, comparación de instantes crudos: vencido estricto => OVERDUE
func StatusOf(dueAt string, now time.Time) DeadlineStatus {
	due, ok := ParseWhen(dueAt)
	if !ok {
		return DeadlineFuture
	}

	// Corto circuito por día de calendario antes de comparar instantes.
	if SameLocalDay(due, now) {
		return DeadlineDueToday
	}
	if due.Before(now) {
		return DeadlineOverdue
	}
	return DeadlineFuture
}

// DeadlineStatusOf evalúa el plazo de un evento. Eventos sin plazo
// declarado se tratan como FUTURE (sin marcador de urgencia).
func DeadlineStatusOf(e TimelineEvent, now time.Time) DeadlineStatus {
	if !e.HasDeadline() {
		return DeadlineFuture
	}
	return StatusOf(e.Deadline.DueAt, now)
}
