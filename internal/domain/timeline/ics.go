package timeline

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
)

// BuildICS serializa las apariciones como calendario ICS para importar
// en Outlook/Google Calendar. Las apariciones de plazo llevan prefijo
// según urgencia; las de creación van como evento simple. Apariciones
// con timestamp roto no se exportan (mismo criterio que el agrupador).
func BuildICS(title string, occs []Occurrence, now time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//procurement-timeline//PT")
	if title != "" {
		cal.SetName(title)
	}

	for _, o := range occs {
		if !o.ParsedOK {
			continue
		}

		ev := cal.AddEvent(o.DisplayID())
		ev.SetDtStampTime(now)
		ev.SetStartAt(o.At)
		ev.SetEndAt(o.At.Add(time.Hour))
		ev.SetSummary(icsSummary(o))
		if o.Event.Description != "" {
			ev.SetDescription(o.Event.Description)
		}
	}

	return cal.Serialize()
}

func icsSummary(o Occurrence) string {
	if o.Kind != OccurrenceDeadline {
		return o.Event.Title
	}
	switch o.Status {
	case DeadlineOverdue:
		return fmt.Sprintf("[VENCIDO] Prazo: %s", o.Event.Title)
	case DeadlineDueToday:
		return fmt.Sprintf("[HOJE] Prazo: %s", o.Event.Title)
	default:
		return fmt.Sprintf("Prazo: %s", o.Event.Title)
	}
}
