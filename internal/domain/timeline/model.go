package timeline

import "time"

// Author es quien produjo el evento. Todos los campos son opcionales;
// vienen de payloads externos poco confiables.
type Author struct {
	ID   string
	Name string
	Role string
}

// Deadline es el plazo opcional declarado por un evento.
// IsDeadline=true exige DueAt no vacío (lo garantiza la normalización).
type Deadline struct {
	IsDeadline bool
	DueAt      string // timestamp textual, mismo formato flexible que OccurredAt
}

// TimelineEvent es la unidad canónica de historia de un proceso.
// Después de la normalización, ID/Title/OccurredAt nunca están vacíos.
type TimelineEvent struct {
	ID        string
	ProcessID string

	Title       string
	Description string

	Category Category
	Severity Severity

	// OccurredAt se guarda como texto crudo: el parser de fechas (dates.go)
	// es el único punto de verdad sobre qué instante representa.
	OccurredAt string

	Author   Author
	Deadline Deadline

	Openable bool
}

// HasDeadline indica si el evento declara plazo utilizable.
func (e TimelineEvent) HasDeadline() bool {
	return e.Deadline.IsDeadline && e.Deadline.DueAt != ""
}

// deadlineSuffix es el sufijo histórico del id sintético de la aparición
// de vencimiento. Se mantiene solo como id de presentación; la identidad
// real de una Occurrence es (EventID, Kind).
const deadlineSuffix = "__deadline"

// Occurrence es una aparición de un evento en un día de calendario.
// Valor derivado: se recalcula en cada consulta, nunca se guarda ni se muta.
type Occurrence struct {
	Event TimelineEvent
	Kind  OccurrenceKind

	// At es el instante de display: OccurredAt parseado para CREATED,
	// DueAt parseado para DEADLINE. ParsedOK=false si el texto no parsea;
	// el agrupador descarta esas apariciones.
	At       time.Time
	ParsedOK bool

	// Status solo aplica a Kind=DEADLINE, evaluado contra el "ahora"
	// de la consulta que generó esta aparición.
	Status DeadlineStatus
}

// DisplayID devuelve el id de presentación de la aparición. Para DEADLINE
// agrega el sufijo sintético, evitando colisión con la aparición CREATED
// del mismo evento dentro de una misma colección renderizada.
func (o Occurrence) DisplayID() string {
	if o.Kind == OccurrenceDeadline {
		return o.Event.ID + deadlineSuffix
	}
	return o.Event.ID
}

// DisplayAt es el texto crudo del instante de display.
func (o Occurrence) DisplayAt() string {
	if o.Kind == OccurrenceDeadline {
		return o.Event.Deadline.DueAt
	}
	return o.Event.OccurredAt
}

// DayBucket agrupa las apariciones de un día local, ya ordenadas
// ascendente por instante de display.
type DayBucket struct {
	Key         string // YYYY-MM-DD
	Occurrences []Occurrence
}

// Glyph es el marcador visual resumido de una celda del calendario.
type Glyph struct {
	Kind OccurrenceKind
	// Status solo viene con Kind=DEADLINE (urgencia del marcador).
	Status DeadlineStatus
}

// CalendarCell es una de las 42 posiciones de la grilla mensual.
type CalendarCell struct {
	Date    time.Time // medianoche local del día
	Key     string    // YYYY-MM-DD
	InMonth bool
	IsToday bool

	Count    int
	Glyphs   []Glyph // máximo 3 (2 deadline + 1 created)
	Overflow int     // apariciones no representadas por un glyph (+N)
}

// Summary son los agregados sobre la colección completa, sin facetas.
type Summary struct {
	Total               int
	DeadlineCount       int
	OverdueCount        int
	DueTodayCount       int
	DueWithin7DaysCount int
}

// WidgetConfig es el bundle de display ya normalizado (§ admisión en normalize.go).
type WidgetConfig struct {
	Title       string
	Description string

	CanOpenDetail bool
	ShowSearch    bool
	ShowFilters   bool

	DefaultFilter   Category
	MaxPreviewItems int

	Events []TimelineEvent
}
