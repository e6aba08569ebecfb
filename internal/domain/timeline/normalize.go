package timeline

import (
	"strconv"
	"strings"
)

// Admisión de input crudo (payloads de formularios / backend poco validados).
// Política: nunca devolver error por problemas de forma. Un registro
// malformado se descarta entero; un campo desconocido cae a su default.
// La UI tiene que renderizar el resto del timeline igual.

// DefaultMaxPreviewItems es el tope default de items en la vista compacta.
const DefaultMaxPreviewItems = 5

// asString coerciona un valor crudo a string. Acepta string y números
// (ids numéricos vienen así de algunos payloads); cualquier otra cosa => "".
func asString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		// json.Unmarshal decodifica números como float64
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	default:
		return ""
	}
}

// asBool coerciona permisivo: solo un bool real se acepta, cualquier
// otra cosa devuelve el default del caller. Nada de "truthy".
func asBool(v any, def bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}

// asMap devuelve el sub-objeto si el valor es un objeto.
func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return nil
}

// ParseRawEvent es la fábrica try-parse de eventos: extrae y coerciona
// un registro crudo. Devuelve (evento, true) si el registro es admisible;
// (zero, false) si le falta id, title u occurredAt después de coerción.
// Nunca inserta placeholders ni defaultea campos requeridos.
func ParseRawEvent(raw map[string]any) (TimelineEvent, bool) {
	if raw == nil {
		return TimelineEvent{}, false
	}

	id := asString(raw["id"])
	title := asString(raw["title"])
	occurredAt := asString(raw["occurredAt"])
	if id == "" || title == "" || occurredAt == "" {
		return TimelineEvent{}, false
	}

	e := TimelineEvent{
		ID:          id,
		Title:       title,
		Description: asString(raw["description"]),
		Category:    ParseCategory(asString(raw["category"])),
		Severity:    ParseSeverity(asString(raw["severity"])),
		OccurredAt:  occurredAt,
		Openable:    asBool(raw["openable"], true),
	}

	if a := asMap(raw["author"]); a != nil {
		e.Author = Author{
			ID:   asString(a["id"]),
			Name: asString(a["name"]),
			Role: asString(a["role"]),
		}
	}

	if d := asMap(raw["deadline"]); d != nil {
		dueAt := asString(d["dueAt"])
		// isDeadline=true exige dueAt no vacío; si no, el plazo se descarta
		// (el evento sigue entrando con su aparición de creación).
		if asBool(d["isDeadline"], false) && dueAt != "" {
			e.Deadline = Deadline{IsDeadline: true, DueAt: dueAt}
		}
	}

	return e, true
}

// ParseRawEvents admite una lista cruda completa, descartando en silencio
// los registros inadmisibles. Input malformado degrada a "sin items".
func ParseRawEvents(raws []any) []TimelineEvent {
	out := make([]TimelineEvent, 0, len(raws))
	for _, r := range raws {
		if e, ok := ParseRawEvent(asMap(r)); ok {
			out = append(out, e)
		}
	}
	return out
}

// NormalizeWidgetConfig normaliza el bundle de configuración del widget.
// Defaults documentados: canOpenDetail=true, showSearch=true,
// showFilters=true, defaultFilter=ALL, maxPreviewItems=5.
func NormalizeWidgetConfig(raw map[string]any) WidgetConfig {
	cfg := WidgetConfig{
		CanOpenDetail:   true,
		ShowSearch:      true,
		ShowFilters:     true,
		DefaultFilter:   CategoryAll,
		MaxPreviewItems: DefaultMaxPreviewItems,
	}
	if raw == nil {
		return cfg
	}

	cfg.Title = asString(raw["title"])
	cfg.Description = asString(raw["description"])
	cfg.CanOpenDetail = asBool(raw["canOpenDetail"], true)
	cfg.ShowSearch = asBool(raw["showSearch"], true)
	cfg.ShowFilters = asBool(raw["showFilters"], true)

	if f := asString(raw["defaultFilter"]); f != "" && f != string(CategoryAll) {
		cfg.DefaultFilter = ParseCategory(f)
	}

	if n, ok := raw["maxPreviewItems"].(float64); ok && n >= 1 {
		cfg.MaxPreviewItems = int(n)
	}

	if items, ok := raw["items"].([]any); ok {
		cfg.Events = ParseRawEvents(items)
	} else {
		cfg.Events = []TimelineEvent{}
	}

	return cfg
}
