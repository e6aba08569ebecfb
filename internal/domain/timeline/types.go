package timeline

// Category clasifica el origen del evento dentro del expediente.
// @Enum STATUS, VERSION, COMMENT, ATTACHMENT, ACTION, SYSTEM
type Category string

const (
	CategoryStatus     Category = "STATUS"
	CategoryVersion    Category = "VERSION"
	CategoryComment    Category = "COMMENT"
	CategoryAttachment Category = "ATTACHMENT"
	CategoryAction     Category = "ACTION"
	CategorySystem     Category = "SYSTEM"
)

// CategoryAll es el valor "sin filtro" para la faceta de categoría.
const CategoryAll Category = "ALL"

// categoryLabels: etiquetas humanas usadas por el orden CATEGORY_AZ
// y por la exportación. No traducir en código; viene de la UI original.
var categoryLabels = map[Category]string{
	CategoryStatus:     "Status",
	CategoryVersion:    "Versão",
	CategoryComment:    "Comentário",
	CategoryAttachment: "Anexo",
	CategoryAction:     "Ação",
	CategorySystem:     "Sistema",
}

// ParseCategory normaliza un valor crudo. Valores desconocidos caen a SYSTEM;
// nunca devuelve error (el timeline tiene que renderizar igual).
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryStatus, CategoryVersion, CategoryComment, CategoryAttachment, CategoryAction, CategorySystem:
		return Category(s)
	default:
		return CategorySystem
	}
}

// Label devuelve la etiqueta humana de la categoría.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return categoryLabels[CategorySystem]
}

// Severity es el badge opcional del evento. Vacío = sin badge.
// @Enum INFO, SUCCESS, WARNING, DANGER
type Severity string

const (
	SeverityNone    Severity = ""
	SeverityInfo    Severity = "INFO"
	SeveritySuccess Severity = "SUCCESS"
	SeverityWarning Severity = "WARNING"
	SeverityDanger  Severity = "DANGER"
)

// SeverityAll es el valor "sin filtro" para la faceta de severidad.
const SeverityAll Severity = "ALL"

// ParseSeverity normaliza un valor crudo. Desconocido => sin severidad.
func ParseSeverity(s string) Severity {
	switch Severity(s) {
	case SeverityInfo, SeveritySuccess, SeverityWarning, SeverityDanger:
		return Severity(s)
	default:
		return SeverityNone
	}
}

// Rank define el orden del sort SEVERITY: DANGER > WARNING > INFO > SUCCESS > sin badge.
func (s Severity) Rank() int {
	switch s {
	case SeverityDanger:
		return 4
	case SeverityWarning:
		return 3
	case SeverityInfo:
		return 2
	case SeveritySuccess:
		return 1
	default:
		return 0
	}
}

// DeadlineStatus clasifica la urgencia de un plazo relativo a "ahora".
// @Enum FUTURE, DUE_TODAY, OVERDUE
type DeadlineStatus string

const (
	DeadlineFuture   DeadlineStatus = "FUTURE"
	DeadlineDueToday DeadlineStatus = "DUE_TODAY"
	DeadlineOverdue  DeadlineStatus = "OVERDUE"
)

// OccurrenceKind distingue la aparición de creación de la de vencimiento.
// @Enum CREATED, DEADLINE
type OccurrenceKind string

const (
	OccurrenceCreated  OccurrenceKind = "CREATED"
	OccurrenceDeadline OccurrenceKind = "DEADLINE"
)

// SortMode es el orden pedido por la vista.
// @Enum RECENT, OLDEST, CATEGORY_AZ, SEVERITY
type SortMode string

const (
	SortRecent     SortMode = "RECENT"
	SortOldest     SortMode = "OLDEST"
	SortCategoryAZ SortMode = "CATEGORY_AZ"
	SortSeverity   SortMode = "SEVERITY"
)

// ParseSortMode normaliza; desconocido => RECENT (default de la vista).
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortRecent, SortOldest, SortCategoryAZ, SortSeverity:
		return SortMode(s)
	default:
		return SortRecent
	}
}
