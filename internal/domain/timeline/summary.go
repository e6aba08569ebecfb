package timeline

import "time"

// Summarize computa los agregados sobre la colección completa, sin
// facetas aplicadas. Los plazos se evalúan contra el "now" recibido,
// el mismo de toda la consulta.
func Summarize(events []TimelineEvent, now time.Time) Summary {
	s := Summary{Total: len(events)}

	weekAhead := now.AddDate(0, 0, 7)

	for _, e := range events {
		if !e.HasDeadline() {
			continue
		}
		s.DeadlineCount++

		switch StatusOf(e.Deadline.DueAt, now) {
		case DeadlineOverdue:
			s.OverdueCount++
		case DeadlineDueToday:
			s.DueTodayCount++
		}

		// "vence en 7 días": plazo parseable entre now y now+7d inclusive.
		if due, ok := ParseWhen(e.Deadline.DueAt); ok {
			if !due.Before(now) && !due.After(weekAhead) {
				s.DueWithin7DaysCount++
			}
		}
	}

	return s
}
