package timeline

import (
	"encoding/json"
	"testing"
)

func TestParseRawEvent_AdmitsCompleteRecord(t *testing.T) {
	e, ok := ParseRawEvent(map[string]any{
		"id":          "t1",
		"title":       "DFD criado",
		"description": "versão inicial",
		"category":    "VERSION",
		"severity":    "INFO",
		"occurredAt":  "2026-01-10T12:10:00Z",
		"author":      map[string]any{"id": "u1", "name": "Maria", "role": "Demandante"},
		"deadline":    map[string]any{"isDeadline": true, "dueAt": "2026-01-20T15:00:00Z"},
		"openable":    false,
	})
	if !ok {
		t.Fatalf("expected record to be admitted")
	}
	if e.Category != CategoryVersion || e.Severity != SeverityInfo {
		t.Fatalf("enums: got %s/%s", e.Category, e.Severity)
	}
	if !e.HasDeadline() || e.Deadline.DueAt != "2026-01-20T15:00:00Z" {
		t.Fatalf("deadline lost: %+v", e.Deadline)
	}
	if e.Author.Name != "Maria" {
		t.Fatalf("author lost: %+v", e.Author)
	}
	if e.Openable {
		t.Fatalf("openable=false must be honored")
	}
}

func TestParseRawEvent_DropsMalformedRecord(t *testing.T) {
	// registro sin id ni occurredAt: se descarta entero, sin error
	// y sin placeholder
	if _, ok := ParseRawEvent(map[string]any{"title": "x"}); ok {
		t.Fatalf("record missing id/occurredAt must be dropped")
	}
	if _, ok := ParseRawEvent(map[string]any{"id": "a", "occurredAt": "2026-01-01"}); ok {
		t.Fatalf("record missing title must be dropped")
	}
	if _, ok := ParseRawEvent(nil); ok {
		t.Fatalf("nil record must be dropped")
	}
}

func TestParseRawEvent_FallbacksAndCoercion(t *testing.T) {
	e, ok := ParseRawEvent(map[string]any{
		"id":         float64(42), // ids numéricos vienen así de algunos payloads
		"title":      "x",
		"occurredAt": "2026-01-10T12:10:00Z",
		"category":   "WHATEVER",
		"severity":   "LOUD",
		"openable":   "true", // string, no bool: se usa el default
	})
	if !ok {
		t.Fatalf("expected record to be admitted")
	}
	if e.ID != "42" {
		t.Fatalf("numeric id coercion: got %q", e.ID)
	}
	if e.Category != CategorySystem {
		t.Fatalf("unknown category should fall back to SYSTEM, got %s", e.Category)
	}
	if e.Severity != SeverityNone {
		t.Fatalf("unknown severity should fall back to none, got %q", e.Severity)
	}
	if !e.Openable {
		t.Fatalf("non-bool openable should use default true")
	}
}

func TestParseRawEvent_DeadlineRequiresDueAt(t *testing.T) {
	e, ok := ParseRawEvent(map[string]any{
		"id":         "a",
		"title":      "x",
		"occurredAt": "2026-01-10T12:10:00Z",
		"deadline":   map[string]any{"isDeadline": true, "dueAt": ""},
	})
	if !ok {
		t.Fatalf("event itself must still be admitted")
	}
	if e.HasDeadline() {
		t.Fatalf("isDeadline without dueAt must drop the deadline, got %+v", e.Deadline)
	}
}

func TestParseRawEvents_SilentDegradation(t *testing.T) {
	raws := []any{
		map[string]any{"id": "ok", "title": "ok", "occurredAt": "2026-01-10"},
		map[string]any{"title": "sin id"},
		"ni siquiera un objeto",
		nil,
	}
	got := ParseRawEvents(raws)
	if len(got) != 1 || got[0].ID != "ok" {
		t.Fatalf("got %d events, want only the admissible one", len(got))
	}
}

func TestNormalizeWidgetConfig_Defaults(t *testing.T) {
	cfg := NormalizeWidgetConfig(nil)
	if !cfg.CanOpenDetail || !cfg.ShowSearch || !cfg.ShowFilters {
		t.Fatalf("display toggles should default to true: %+v", cfg)
	}
	if cfg.DefaultFilter != CategoryAll {
		t.Fatalf("default filter: got %s want ALL", cfg.DefaultFilter)
	}
	if cfg.MaxPreviewItems != DefaultMaxPreviewItems {
		t.Fatalf("max preview: got %d want %d", cfg.MaxPreviewItems, DefaultMaxPreviewItems)
	}
}

func TestNormalizeWidgetConfig_FromUntypedJSON(t *testing.T) {
	// el bundle llega como JSON arbitrario desde la UI
	var raw map[string]any
	payload := `{
		"title": "Linha do tempo",
		"showFilters": false,
		"defaultFilter": "ACTION",
		"maxPreviewItems": 3,
		"items": [
			{"id": "t1", "title": "DFD criado", "occurredAt": "2026-01-10T12:10:00Z"},
			{"title": "descartado"}
		]
	}`
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		t.Fatalf("fixture: %v", err)
	}

	cfg := NormalizeWidgetConfig(raw)
	if cfg.Title != "Linha do tempo" {
		t.Fatalf("title: got %q", cfg.Title)
	}
	if cfg.ShowFilters {
		t.Fatalf("showFilters=false must be honored")
	}
	if cfg.DefaultFilter != CategoryAction {
		t.Fatalf("defaultFilter: got %s", cfg.DefaultFilter)
	}
	if cfg.MaxPreviewItems != 3 {
		t.Fatalf("maxPreviewItems: got %d", cfg.MaxPreviewItems)
	}
	if len(cfg.Events) != 1 || cfg.Events[0].ID != "t1" {
		t.Fatalf("items: got %d admitted", len(cfg.Events))
	}
}
