package timeline

import (
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	now := local(2026, 1, 21, 12, 0)
	iso := func(tm time.Time) string { return tm.Format(time.RFC3339) }

	events := []TimelineEvent{
		{ID: "a", Title: "sin plazo", OccurredAt: iso(now.AddDate(0, 0, -3))},
		{
			ID: "b", Title: "vencido", OccurredAt: iso(now.AddDate(0, 0, -5)),
			Deadline: Deadline{IsDeadline: true, DueAt: iso(now.AddDate(0, 0, -1))},
		},
		{
			ID: "c", Title: "vence hoy", OccurredAt: iso(now.AddDate(0, 0, -2)),
			Deadline: Deadline{IsDeadline: true, DueAt: iso(now.Add(2 * time.Hour))},
		},
		{
			ID: "d", Title: "esta semana", OccurredAt: iso(now.AddDate(0, 0, -2)),
			Deadline: Deadline{IsDeadline: true, DueAt: iso(now.AddDate(0, 0, 4))},
		},
		{
			ID: "e", Title: "lejano", OccurredAt: iso(now.AddDate(0, 0, -2)),
			Deadline: Deadline{IsDeadline: true, DueAt: iso(now.AddDate(0, 0, 30))},
		},
		{
			ID: "f", Title: "plazo roto", OccurredAt: iso(now.AddDate(0, 0, -2)),
			Deadline: Deadline{IsDeadline: true, DueAt: "???"},
		},
	}

	s := Summarize(events, now)

	if s.Total != 6 {
		t.Fatalf("total: got %d want 6", s.Total)
	}
	if s.DeadlineCount != 5 {
		t.Fatalf("deadlines: got %d want 5", s.DeadlineCount)
	}
	if s.OverdueCount != 1 {
		t.Fatalf("overdue: got %d want 1", s.OverdueCount)
	}
	if s.DueTodayCount != 1 {
		t.Fatalf("due today: got %d want 1", s.DueTodayCount)
	}
	// hoy (+2h) y esta semana (+4d) entran; el vencido y el lejano no;
	// el plazo roto no parsea
	if s.DueWithin7DaysCount != 2 {
		t.Fatalf("due within 7 days: got %d want 2", s.DueWithin7DaysCount)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, local(2026, 1, 21, 12, 0))
	if s.Total != 0 || s.DeadlineCount != 0 {
		t.Fatalf("empty collection should produce zero summary, got %+v", s)
	}
}
