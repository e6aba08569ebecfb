package timeline

import "time"

const (
	gridCells = 42 // 6 semanas x 7 días, tamaño fijo
	maxGlyphs = 3  // 2 deadline + 1 created; el resto va al overflow +N
)

// Month identifica el mes objetivo de la grilla.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth acepta "YYYY-MM". Devuelve (zero, false) si no parsea.
func ParseMonth(s string) (Month, bool) {
	t, err := time.ParseInLocation("2006-01", s, time.Local)
	if err != nil {
		return Month{}, false
	}
	return Month{Year: t.Year(), Month: t.Month()}, true
}

// MonthOf devuelve el mes del instante dado.
func MonthOf(t time.Time) Month {
	t = t.In(time.Local)
	return Month{Year: t.Year(), Month: t.Month()}
}

// BuildMonthGrid produce la grilla fija de 42 celdas para el mes pedido.
// Arranca en el domingo en o antes del día 1 y termina 41 días después,
// sin importar cuántas semanas ocupe realmente el mes (nunca 5 ni 7 filas:
// el layout de la UI no se mueve entre meses).
func BuildMonthGrid(m Month, now time.Time, buckets map[string][]Occurrence) []CalendarCell {
	first := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.Local)
	start := first.AddDate(0, 0, -int(first.Weekday())) // Weekday() de domingo es 0

	todayKey := DayKey(now)

	cells := make([]CalendarCell, 0, gridCells)
	for i := 0; i < gridCells; i++ {
		day := start.AddDate(0, 0, i)
		key := DayKey(day)
		occs := buckets[key]

		cell := CalendarCell{
			Date:    day,
			Key:     key,
			InMonth: day.Month() == m.Month && day.Year() == m.Year,
			IsToday: key == todayKey,
			Count:   len(occs),
		}
		cell.Glyphs, cell.Overflow = summarizeGlyphs(occs)
		cells = append(cells, cell)
	}

	return cells
}

// summarizeGlyphs elige hasta 3 marcadores por celda, con prioridad:
// hasta 2 apariciones de plazo (cada una con su urgencia, para que
// vencido/hoy/futuro se rendericen distinto) y después 1 marcador de
// "evento creado" si el día tiene alguno. Todo lo demás se resume en
// el badge numérico de overflow. La regla de 3 existe para que las
// celdas chicas del calendario sigan siendo legibles.
func summarizeGlyphs(occs []Occurrence) ([]Glyph, int) {
	if len(occs) == 0 {
		return nil, 0
	}

	glyphs := make([]Glyph, 0, maxGlyphs)
	deadlines := 0
	hasCreated := false

	for _, o := range occs {
		switch o.Kind {
		case OccurrenceDeadline:
			if deadlines < 2 {
				glyphs = append(glyphs, Glyph{Kind: OccurrenceDeadline, Status: o.Status})
				deadlines++
			}
		case OccurrenceCreated:
			hasCreated = true
		}
	}

	if hasCreated && len(glyphs) < maxGlyphs {
		glyphs = append(glyphs, Glyph{Kind: OccurrenceCreated})
	}

	overflow := len(occs) - len(glyphs)
	if overflow < 0 {
		overflow = 0
	}
	return glyphs, overflow
}
