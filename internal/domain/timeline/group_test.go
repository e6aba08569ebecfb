package timeline

import (
	"testing"
	"time"
)

func TestGroupByDay_DropsUnparseable(t *testing.T) {
	now := local(2026, 1, 21, 0, 0)
	events := []TimelineEvent{
		{ID: "ok", Title: "ok", OccurredAt: local(2026, 1, 10, 12, 0).Format(time.RFC3339)},
		{ID: "broken", Title: "roto", OccurredAt: "???"},
	}

	buckets := GroupByDay(ExpandOccurrences(events, now))
	if len(buckets) != 1 {
		t.Fatalf("got %d buckets want 1 (broken timestamp must be dropped, not bucketed)", len(buckets))
	}
	if _, ok := buckets["2026-01-10"]; !ok {
		t.Fatalf("missing bucket 2026-01-10, got %v", buckets)
	}
}

func TestGroupByDay_AscWithinDay(t *testing.T) {
	now := local(2026, 1, 21, 0, 0)
	events := []TimelineEvent{
		{ID: "late", Title: "tarde", OccurredAt: local(2026, 1, 10, 18, 0).Format(time.RFC3339)},
		{ID: "early", Title: "temprano", OccurredAt: local(2026, 1, 10, 9, 0).Format(time.RFC3339)},
	}

	buckets := GroupByDay(ExpandOccurrences(events, now))
	b := buckets["2026-01-10"]
	if len(b) != 2 {
		t.Fatalf("got %d occurrences want 2", len(b))
	}
	if b[0].Event.ID != "early" || b[1].Event.ID != "late" {
		t.Fatalf("within-day order should be ascending, got %s then %s", b[0].Event.ID, b[1].Event.ID)
	}
}

func TestSortedBuckets_DescAcrossDays(t *testing.T) {
	now := local(2026, 1, 21, 0, 0)
	events := []TimelineEvent{
		{ID: "d1", Title: "uno", OccurredAt: local(2026, 1, 10, 9, 0).Format(time.RFC3339)},
		{ID: "d2", Title: "dos", OccurredAt: local(2026, 1, 14, 9, 0).Format(time.RFC3339)},
		{ID: "d3", Title: "tres", OccurredAt: local(2026, 1, 12, 9, 0).Format(time.RFC3339)},
	}

	buckets := SortedBuckets(GroupByDay(ExpandOccurrences(events, now)))
	if len(buckets) != 3 {
		t.Fatalf("got %d buckets want 3", len(buckets))
	}
	want := []string{"2026-01-14", "2026-01-12", "2026-01-10"}
	for i, b := range buckets {
		if b.Key != want[i] {
			t.Fatalf("bucket %d: got %s want %s (most recent day first)", i, b.Key, want[i])
		}
	}
}

// Escenario completo: dos eventos, uno con plazo vencido, evaluados un
// día después del vencimiento.
func TestScenario_ExpandGroupStatus(t *testing.T) {
	now := local(2026, 1, 21, 0, 0)
	events := []TimelineEvent{
		{
			ID: "t1", Title: "DFD criado", Category: CategoryVersion,
			OccurredAt: local(2026, 1, 10, 12, 10).Format(time.RFC3339),
		},
		{
			ID: "t5", Title: "Etapa aprovada", Category: CategoryAction,
			OccurredAt: local(2026, 1, 14, 15, 0).Format(time.RFC3339),
			Deadline:   Deadline{IsDeadline: true, DueAt: local(2026, 1, 20, 15, 0).Format(time.RFC3339)},
		},
	}

	occs := ExpandOccurrences(events, now)
	if len(occs) != 3 {
		t.Fatalf("got %d occurrences want 3 (t1 created, t5 created, t5 deadline)", len(occs))
	}

	for _, o := range occs {
		if o.Kind == OccurrenceDeadline {
			if o.Status != DeadlineOverdue {
				t.Fatalf("t5 deadline status: got %s want OVERDUE", o.Status)
			}
		}
	}

	buckets := GroupByDay(occs)
	if len(buckets) != 3 {
		t.Fatalf("got %d day buckets want 3", len(buckets))
	}
}

func TestDayOccurrences_EmptyDayIsValid(t *testing.T) {
	now := local(2026, 1, 21, 0, 0)
	occs := ExpandOccurrences(nil, now)

	got := DayOccurrences(occs, "2026-01-10")
	if got == nil {
		t.Fatalf("empty day should be an empty list, not nil")
	}
	if len(got) != 0 {
		t.Fatalf("got %d occurrences want 0", len(got))
	}
}
