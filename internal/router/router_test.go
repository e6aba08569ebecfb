package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"procurement-timeline/internal/router"
)

func TestHTTP_EndToEnd_Timeline(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerID := "owner-1"
	otherID := "other-1"
	now := time.Now()

	// 1) Owner crea proceso
	processID := createProcess(t, ts.URL, ownerID, map[string]any{
		"code":       "PE-2026/0001",
		"object":     "Aquisição de notebooks",
		"modality":   "pregao",
		"department": "TI",
	})

	// 2) Sin auth no se lista el timeline
	{
		st, _ := doReq(t, ts.URL, "GET", "/processes/"+processID+"/timeline", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without auth, got %d", st)
		}
	}

	// 3) Owner agrega eventos: uno simple y uno con plazo ya vencido
	appendEvent(t, ts.URL, ownerID, processID, map[string]any{
		"title":       "DFD criado",
		"category":    "VERSION",
		"occurred_at": now.AddDate(0, 0, -10).Format(time.RFC3339),
	})
	appendEvent(t, ts.URL, ownerID, processID, map[string]any{
		"title":       "Etapa aprovada",
		"category":    "ACTION",
		"severity":    "SUCCESS",
		"occurred_at": now.AddDate(0, 0, -6).Format(time.RFC3339),
		"is_deadline": true,
		"due_at":      now.AddDate(0, 0, -1).Format(time.RFC3339),
	})

	// 4) Otro usuario autenticado puede leer pero no agregar
	{
		st, _ := doReq(t, ts.URL, "GET", "/processes/"+processID+"/timeline", otherID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list by non-owner, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "POST", "/processes/"+processID+"/timeline", otherID, map[string]any{
			"title":       "intruso",
			"occurred_at": now.Format(time.RFC3339),
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 append by non-owner, got %d", st)
		}
	}

	// 5) Lista plana: facet overdue deja solo el evento con plazo vencido
	{
		st, body := doReq(t, ts.URL, "GET", "/processes/"+processID+"/timeline?overdue=true", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 overdue list, got %d body=%s", st, string(body))
		}
		var items []map[string]any
		mustUnmarshal(t, body, &items)
		if len(items) != 1 {
			t.Fatalf("overdue filter: got %d items want 1 body=%s", len(items), string(body))
		}
		if items[0]["title"] != "Etapa aprovada" {
			t.Fatalf("overdue filter: unexpected item %v", items[0])
		}
	}

	// 6) Búsqueda de texto libre
	{
		st, body := doReq(t, ts.URL, "GET", "/processes/"+processID+"/timeline?q=dfd", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 search, got %d", st)
		}
		var items []map[string]any
		mustUnmarshal(t, body, &items)
		if len(items) != 1 {
			t.Fatalf("search dfd: got %d items want 1", len(items))
		}
	}

	// 7) Vista agrupada: el evento con plazo aparece dos veces
	{
		st, body := doReq(t, ts.URL, "GET", "/processes/"+processID+"/timeline/grouped", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 grouped, got %d", st)
		}
		var buckets []struct {
			Day         string `json:"day"`
			Occurrences []struct {
				ID   string `json:"id"`
				Kind string `json:"kind"`
			} `json:"occurrences"`
		}
		mustUnmarshal(t, body, &buckets)

		total := 0
		deadlineSeen := false
		for _, b := range buckets {
			total += len(b.Occurrences)
			for _, o := range b.Occurrences {
				if o.Kind == "DEADLINE" {
					deadlineSeen = true
					if !strings.HasSuffix(o.ID, "__deadline") {
						t.Fatalf("deadline occurrence display id: got %q", o.ID)
					}
				}
			}
		}
		if total != 3 {
			t.Fatalf("grouped: got %d occurrences want 3 body=%s", total, string(body))
		}
		if !deadlineSeen {
			t.Fatalf("grouped: missing deadline occurrence body=%s", string(body))
		}

		// días descendentes
		for i := 1; i < len(buckets); i++ {
			if buckets[i-1].Day < buckets[i].Day {
				t.Fatalf("grouped days must be descending: %s before %s", buckets[i-1].Day, buckets[i].Day)
			}
		}
	}

	// 8) Calendario: siempre 42 celdas
	{
		month := now.Format("2006-01")
		st, body := doReq(t, ts.URL, "GET", "/processes/"+processID+"/timeline/calendar?month="+month, ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 calendar, got %d", st)
		}
		var cells []map[string]any
		mustUnmarshal(t, body, &cells)
		if len(cells) != 42 {
			t.Fatalf("calendar: got %d cells want 42", len(cells))
		}

		st, _ = doReq(t, ts.URL, "GET", "/processes/"+processID+"/timeline/calendar?month=banana", ownerID, nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for bad month, got %d", st)
		}
	}

	// 9) Vista de día seleccionado
	{
		day := now.AddDate(0, 0, -10).Format("2006-01-02")
		st, body := doReq(t, ts.URL, "GET", "/processes/"+processID+"/timeline/days/"+day, ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 day view, got %d", st)
		}
		var occs []map[string]any
		mustUnmarshal(t, body, &occs)
		if len(occs) != 1 {
			t.Fatalf("day view: got %d occurrences want 1 body=%s", len(occs), string(body))
		}
	}

	// 10) Summary sobre la colección completa
	{
		st, body := doReq(t, ts.URL, "GET", "/processes/"+processID+"/timeline/summary", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 summary, got %d", st)
		}
		var s struct {
			Total         int `json:"total"`
			DeadlineCount int `json:"deadline_count"`
			OverdueCount  int `json:"overdue_count"`
		}
		mustUnmarshal(t, body, &s)
		if s.Total != 2 || s.DeadlineCount != 1 || s.OverdueCount != 1 {
			t.Fatalf("summary: got %+v", s)
		}
	}

	// 11) Export ICS
	{
		req, _ := http.NewRequest("GET", ts.URL+"/processes/"+processID+"/timeline/calendar.ics", nil)
		req.Header.Set("X-Debug-User-ID", ownerID)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("ics request: %v", err)
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200 ics, got %d", resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
			t.Fatalf("ics content type: got %q", ct)
		}
		if !strings.Contains(string(body), "BEGIN:VCALENDAR") {
			t.Fatalf("ics body missing VCALENDAR: %s", string(body))
		}
	}

	// 12) Evento con openable=false no permite drill-in
	{
		st, body := doReq(t, ts.URL, "POST", "/processes/"+processID+"/timeline", ownerID, map[string]any{
			"id":          "cerrado-1",
			"title":       "Sessão agendada",
			"occurred_at": now.Format(time.RFC3339),
			"openable":    false,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 append, got %d body=%s", st, string(body))
		}

		st, _ = doReq(t, ts.URL, "GET", "/processes/"+processID+"/timeline/cerrado-1", ownerID, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 for openable=false detail, got %d", st)
		}
	}

	// 13) Evento inexistente
	{
		st, _ := doReq(t, ts.URL, "GET", "/processes/"+processID+"/timeline/no-existe", ownerID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for unknown event, got %d", st)
		}
	}
}

func TestHTTP_Preview_NormalizesUntypedBundle(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	payload := map[string]any{
		"title":         "Linha do tempo da etapa",
		"showFilters":   false,
		"defaultFilter": "ALL",
		"items": []any{
			map[string]any{"id": "t1", "title": "DFD criado", "category": "VERSION", "occurredAt": "2026-01-10T12:10:00Z"},
			map[string]any{"title": "sin id ni fecha"}, // se descarta
			map[string]any{"id": "t2", "title": "Plazo", "occurredAt": "2026-01-14T15:00:00Z",
				"deadline": map[string]any{"isDeadline": true, "dueAt": "2026-01-20T15:00:00Z"}},
		},
	}

	st, body := doReq(t, ts.URL, "POST", "/timeline/preview", "", payload)
	if st != http.StatusOK {
		t.Fatalf("expected 200 preview, got %d body=%s", st, string(body))
	}

	var out struct {
		Title       string           `json:"title"`
		ShowFilters bool             `json:"show_filters"`
		UsedDemo    bool             `json:"used_demo"`
		Events      []map[string]any `json:"events"`
		Summary     struct {
			Total         int `json:"total"`
			DeadlineCount int `json:"deadline_count"`
		} `json:"summary"`
	}
	mustUnmarshal(t, body, &out)

	if out.Title != "Linha do tempo da etapa" || out.ShowFilters {
		t.Fatalf("config normalization: %+v", out)
	}
	if out.UsedDemo {
		t.Fatalf("preview with items should not use demo dataset")
	}
	if out.Summary.Total != 2 || out.Summary.DeadlineCount != 1 {
		t.Fatalf("summary over admitted items: %+v", out.Summary)
	}
	if len(out.Events) != 2 {
		t.Fatalf("events: got %d want 2 (malformed record dropped silently)", len(out.Events))
	}
}

func TestHTTP_Preview_DemoDataset(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil, DemoData: true}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "POST", "/timeline/preview", "", map[string]any{})
	if st != http.StatusOK {
		t.Fatalf("expected 200 demo preview, got %d body=%s", st, string(body))
	}

	var out struct {
		UsedDemo bool `json:"used_demo"`
		Summary  struct {
			Total int `json:"total"`
		} `json:"summary"`
	}
	mustUnmarshal(t, body, &out)

	if !out.UsedDemo {
		t.Fatalf("empty bundle with demo mode should use demo dataset")
	}
	if out.Summary.Total == 0 {
		t.Fatalf("demo dataset should not be empty")
	}
}

func createProcess(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/processes", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create process, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create process: missing id body=%s", string(body))
	}
	return resp.ID
}

func appendEvent(t *testing.T, baseURL, userID, processID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/processes/"+processID+"/timeline", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 append event, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("append event: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, userID string, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-Debug-User-ID", userID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}

func mustUnmarshal(t *testing.T, b []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(b, v); err != nil {
		t.Fatalf("unmarshal response: %v body=%s", err, string(b))
	}
}
