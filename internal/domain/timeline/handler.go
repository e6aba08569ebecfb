package timeline

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"procurement-timeline/internal/domain/processes"
	"procurement-timeline/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, procSvc *processes.Service) {
	r.Route("/processes/{processID}/timeline", func(tr chi.Router) {
		tr.Post("/", appendEventHandler(svc, procSvc))
		tr.Get("/", listEventsHandler(svc, procSvc))
		tr.Get("/grouped", groupedHandler(svc, procSvc))
		tr.Get("/calendar", calendarHandler(svc, procSvc))
		tr.Get("/calendar.ics", exportICSHandler(svc, procSvc))
		tr.Get("/days/{date}", dayHandler(svc, procSvc))
		tr.Get("/summary", summaryHandler(svc, procSvc))
		tr.Get("/{eventID}", getEventHandler(svc, procSvc))
	})

	// Evaluación stateless del widget (no depende de un proceso).
	r.Post("/timeline/preview", previewHandler(svc))
}

// appendEventRequest es el cuerpo para agregar un evento al timeline.
type appendEventRequest struct {
	ID          string `json:"id"` // opcional
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category" enums:"STATUS,VERSION,COMMENT,ATTACHMENT,ACTION,SYSTEM"`
	Severity    string `json:"severity" enums:"INFO,SUCCESS,WARNING,DANGER"`
	OccurredAt  string `json:"occurred_at"` // ISO-8601 o dd/mm/yyyy[ hh:mm]
	AuthorName  string `json:"author_name"`
	AuthorRole  string `json:"author_role"`
	IsDeadline  bool   `json:"is_deadline"`
	DueAt       string `json:"due_at"`
	Openable    *bool  `json:"openable"`
}

// eventResponse representa un evento del timeline devuelto por la API.
type eventResponse struct {
	ID          string   `json:"id"`
	ProcessID   string   `json:"process_id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    Category `json:"category"`
	Severity    Severity `json:"severity,omitempty"`
	OccurredAt  string   `json:"occurred_at"`
	AuthorID    string   `json:"author_id,omitempty"`
	AuthorName  string   `json:"author_name,omitempty"`
	AuthorRole  string   `json:"author_role,omitempty"`
	IsDeadline  bool     `json:"is_deadline"`
	DueAt       string   `json:"due_at,omitempty"`
	Openable    bool     `json:"openable"`
}

// occurrenceResponse es una aparición de calendario de un evento.
type occurrenceResponse struct {
	ID     string         `json:"id"` // id de display; "<id>__deadline" para plazos
	Kind   OccurrenceKind `json:"kind"`
	At     string         `json:"at"`
	Status DeadlineStatus `json:"status,omitempty"`
	Event  eventResponse  `json:"event"`
}

type dayBucketResponse struct {
	Day         string               `json:"day"`
	Occurrences []occurrenceResponse `json:"occurrences"`
}

type glyphResponse struct {
	Kind   OccurrenceKind `json:"kind"`
	Status DeadlineStatus `json:"status,omitempty"`
}

type calendarCellResponse struct {
	Day      string          `json:"day"`
	InMonth  bool            `json:"in_month"`
	IsToday  bool            `json:"is_today"`
	Count    int             `json:"count"`
	Glyphs   []glyphResponse `json:"glyphs"`
	Overflow int             `json:"overflow"`
}

type summaryResponse struct {
	Total               int `json:"total"`
	DeadlineCount       int `json:"deadline_count"`
	OverdueCount        int `json:"overdue_count"`
	DueTodayCount       int `json:"due_today_count"`
	DueWithin7DaysCount int `json:"due_within_7_days_count"`
}

// appendEventHandler godoc
// @Summary Agregar evento al timeline
// @Description Inserta un evento ya formado en el timeline del proceso y reordena por recencia. Solo el dueño del proceso puede agregar. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags timeline
// @Accept json
// @Produce json
// @Param processID path string true "ID del proceso"
// @Param payload body appendEventRequest true "Evento; occurred_at en ISO-8601 o dd/mm/yyyy[ hh:mm]"
// @Success 201 {object} eventResponse
// @Failure 400 {string} string "invalid json / campos requeridos"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "process not found"
// @Router /processes/{processID}/timeline [post]
func appendEventHandler(svc *Service, procSvc *processes.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		processID := chi.URLParam(r, "processID")
		owner, err := procSvc.OwnerOf(r.Context(), processID)
		if err != nil {
			http.Error(w, "process not found", http.StatusNotFound)
			return
		}

		// Solo el dueño agrega eventos; lectura queda abierta a autenticados.
		if owner != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req appendEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		e, err := svc.Append(r.Context(), processID, AppendInput{
			ID:          req.ID,
			Title:       req.Title,
			Description: req.Description,
			Category:    req.Category,
			Severity:    req.Severity,
			OccurredAt:  req.OccurredAt,
			Author: Author{
				ID:   claims.UserID,
				Name: req.AuthorName,
				Role: req.AuthorRole,
			},
			IsDeadline: req.IsDeadline,
			DueAt:      req.DueAt,
			Openable:   req.Openable,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toEventResponse(e))
	}
}

// listEventsHandler godoc
// @Summary Listar eventos del timeline
// @Description Vista plana filtrada/ordenada. Facetas independientes que componen por AND: categoría, severidad, texto libre, solo plazos, solo vencidos. Autenticación requerida.
// @Tags timeline
// @Produce json
// @Param processID path string true "ID del proceso"
// @Param category query string false "Categoría exacta o ALL"
// @Param severity query string false "Severidad exacta o ALL"
// @Param q query string false "Búsqueda substring case-insensitive"
// @Param deadlines query bool false "Solo eventos con plazo"
// @Param overdue query bool false "Solo plazos vencidos (evaluado al momento de la consulta)"
// @Param sort query string false "RECENT (default), OLDEST, CATEGORY_AZ, SEVERITY"
// @Param limit query int false "Máximo de eventos (1-200, default 50)"
// @Success 200 {array} eventResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "process not found"
// @Router /processes/{processID}/timeline [get]
func listEventsHandler(svc *Service, procSvc *processes.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		processID, ok := requireProcess(w, r, procSvc)
		if !ok {
			return
		}

		facets, limit := parseFacets(r)

		items, err := svc.List(r.Context(), processID, facets, limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]eventResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEventResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// groupedHandler godoc
// @Summary Historia completa agrupada por día
// @Description Buckets de día descendentes (día más reciente primero) con apariciones ascendentes dentro de cada día. Incluye apariciones de creación y de plazo.
// @Tags timeline
// @Produce json
// @Param processID path string true "ID del proceso"
// @Success 200 {array} dayBucketResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "process not found"
// @Router /processes/{processID}/timeline/grouped [get]
func groupedHandler(svc *Service, procSvc *processes.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		processID, ok := requireProcess(w, r, procSvc)
		if !ok {
			return
		}

		buckets, err := svc.Grouped(r.Context(), processID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toBucketResponses(buckets))
	}
}

// calendarHandler godoc
// @Summary Grilla mensual del calendario
// @Description Devuelve exactamente 42 celdas (6 semanas x 7 días) arrancando en el domingo en o antes del día 1 del mes. Cada celda trae hasta 3 glyphs (2 plazos + 1 creación) y el overflow numérico.
// @Tags timeline
// @Produce json
// @Param processID path string true "ID del proceso"
// @Param month query string false "Mes objetivo YYYY-MM (default: mes actual)"
// @Success 200 {array} calendarCellResponse
// @Failure 400 {string} string "month inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "process not found"
// @Router /processes/{processID}/timeline/calendar [get]
func calendarHandler(svc *Service, procSvc *processes.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		processID, ok := requireProcess(w, r, procSvc)
		if !ok {
			return
		}

		m := MonthOf(time.Now())
		if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
			parsed, ok := ParseMonth(v)
			if !ok {
				http.Error(w, "month must be YYYY-MM", http.StatusBadRequest)
				return
			}
			m = parsed
		}

		cells, err := svc.Calendar(r.Context(), processID, m)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]calendarCellResponse, 0, len(cells))
		for _, c := range cells {
			glyphs := make([]glyphResponse, 0, len(c.Glyphs))
			for _, g := range c.Glyphs {
				glyphs = append(glyphs, glyphResponse{Kind: g.Kind, Status: g.Status})
			}
			out = append(out, calendarCellResponse{
				Day:      c.Key,
				InMonth:  c.InMonth,
				IsToday:  c.IsToday,
				Count:    c.Count,
				Glyphs:   glyphs,
				Overflow: c.Overflow,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// exportICSHandler godoc
// @Summary Exportar timeline como ICS
// @Description Serializa todas las apariciones del proceso como calendario ICS (plazos marcados por urgencia).
// @Tags timeline
// @Produce plain
// @Param processID path string true "ID del proceso"
// @Success 200 {string} string "text/calendar"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "process not found"
// @Router /processes/{processID}/timeline/calendar.ics [get]
func exportICSHandler(svc *Service, procSvc *processes.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		processID, ok := requireProcess(w, r, procSvc)
		if !ok {
			return
		}

		p, err := procSvc.GetByID(r.Context(), processID)
		if err != nil {
			http.Error(w, "process not found", http.StatusNotFound)
			return
		}

		body, err := svc.ExportICS(r.Context(), processID, p.Code)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="timeline.ics"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	}
}

// dayHandler godoc
// @Summary Apariciones de un día
// @Description Vista de detalle de "día seleccionado": apariciones del día pedido, ascendentes. Día vacío devuelve lista vacía (estado válido, no error).
// @Tags timeline
// @Produce json
// @Param processID path string true "ID del proceso"
// @Param date path string true "Día local YYYY-MM-DD"
// @Success 200 {array} occurrenceResponse
// @Failure 400 {string} string "date inválida"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "process not found"
// @Router /processes/{processID}/timeline/days/{date} [get]
func dayHandler(svc *Service, procSvc *processes.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		processID, ok := requireProcess(w, r, procSvc)
		if !ok {
			return
		}

		date := chi.URLParam(r, "date")
		if _, err := time.ParseInLocation("2006-01-02", date, time.Local); err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		occs, err := svc.Day(r.Context(), processID, date)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]occurrenceResponse, 0, len(occs))
		for _, o := range occs {
			out = append(out, toOccurrenceResponse(o))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// summaryHandler godoc
// @Summary Agregados del timeline
// @Description Totales sobre la colección completa (sin facetas): eventos, plazos, vencidos, que vencen hoy y que vencen en 7 días.
// @Tags timeline
// @Produce json
// @Param processID path string true "ID del proceso"
// @Success 200 {object} summaryResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "process not found"
// @Router /processes/{processID}/timeline/summary [get]
func summaryHandler(svc *Service, procSvc *processes.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		processID, ok := requireProcess(w, r, procSvc)
		if !ok {
			return
		}

		s, err := svc.Summary(r.Context(), processID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, summaryResponse{
			Total:               s.Total,
			DeadlineCount:       s.DeadlineCount,
			OverdueCount:        s.OverdueCount,
			DueTodayCount:       s.DueTodayCount,
			DueWithin7DaysCount: s.DueWithin7DaysCount,
		})
	}
}

// getEventHandler godoc
// @Summary Detalle de un evento
// @Description Devuelve un evento puntual del timeline. Eventos con openable=false no permiten drill-in y responden 403.
// @Tags timeline
// @Produce json
// @Param processID path string true "ID del proceso"
// @Param eventID path string true "ID del evento"
// @Success 200 {object} eventResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "event not found"
// @Router /processes/{processID}/timeline/{eventID} [get]
func getEventHandler(svc *Service, procSvc *processes.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		processID, ok := requireProcess(w, r, procSvc)
		if !ok {
			return
		}

		eventID := chi.URLParam(r, "eventID")
		e, err := svc.GetByID(r.Context(), eventID)
		if err != nil || e.ProcessID != processID {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}
		if !e.Openable {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		writeJSON(w, http.StatusOK, toEventResponse(e))
	}
}

// previewHandler godoc
// @Summary Evaluar bundle del widget
// @Description Corre el normalizador de configuración sobre un bundle arbitrario (title, items, toggles) y devuelve eventos normalizados, buckets por día y agregados. Registros inadmisibles se descartan en silencio. Bundle sin items usa el dataset de demostración si está habilitado.
// @Tags timeline
// @Accept json
// @Produce json
// @Success 200 {object} previewResponse
// @Failure 400 {string} string "invalid json"
// @Router /timeline/preview [post]
func previewHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		res := svc.Preview(raw)

		writeJSON(w, http.StatusOK, previewResponse{
			Title:         res.Config.Title,
			Description:   res.Config.Description,
			CanOpenDetail: res.Config.CanOpenDetail,
			ShowSearch:    res.Config.ShowSearch,
			ShowFilters:   res.Config.ShowFilters,
			DefaultFilter: res.Config.DefaultFilter,
			UsedDemo:      res.UsedDemo,
			Events:        toEventResponses(res.Events),
			Grouped:       toBucketResponses(res.Buckets),
			Summary: summaryResponse{
				Total:               res.Summary.Total,
				DeadlineCount:       res.Summary.DeadlineCount,
				OverdueCount:        res.Summary.OverdueCount,
				DueTodayCount:       res.Summary.DueTodayCount,
				DueWithin7DaysCount: res.Summary.DueWithin7DaysCount,
			},
		})
	}
}

type previewResponse struct {
	Title         string              `json:"title,omitempty"`
	Description   string              `json:"description,omitempty"`
	CanOpenDetail bool                `json:"can_open_detail"`
	ShowSearch    bool                `json:"show_search"`
	ShowFilters   bool                `json:"show_filters"`
	DefaultFilter Category            `json:"default_filter"`
	UsedDemo      bool                `json:"used_demo"`
	Events        []eventResponse     `json:"events"`
	Grouped       []dayBucketResponse `json:"grouped"`
	Summary       summaryResponse     `json:"summary"`
}

// requireProcess valida auth + existencia del proceso; corta con el
// status apropiado si algo falla.
func requireProcess(w http.ResponseWriter, r *http.Request, procSvc *processes.Service) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}

	processID := chi.URLParam(r, "processID")
	if _, err := procSvc.GetByID(r.Context(), processID); err != nil {
		http.Error(w, "process not found", http.StatusNotFound)
		return "", false
	}
	return processID, true
}

func parseFacets(r *http.Request) (Facets, int) {
	q := r.URL.Query()

	f := DefaultFacets()
	if v := strings.TrimSpace(q.Get("category")); v != "" {
		if v == string(CategoryAll) {
			f.Category = CategoryAll
		} else {
			f.Category = ParseCategory(v)
		}
	}
	if v := strings.TrimSpace(q.Get("severity")); v != "" {
		if v == string(SeverityAll) {
			f.Severity = SeverityAll
		} else {
			f.Severity = ParseSeverity(v)
		}
	}
	f.Query = strings.TrimSpace(q.Get("q"))
	f.OnlyDeadlines = q.Get("deadlines") == "true"
	f.OnlyOverdue = q.Get("overdue") == "true"
	f.Sort = ParseSortMode(strings.TrimSpace(q.Get("sort")))

	limit := 50
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	return f, limit
}

func toEventResponse(e TimelineEvent) eventResponse {
	return eventResponse{
		ID:          e.ID,
		ProcessID:   e.ProcessID,
		Title:       e.Title,
		Description: e.Description,
		Category:    e.Category,
		Severity:    e.Severity,
		OccurredAt:  e.OccurredAt,
		AuthorID:    e.Author.ID,
		AuthorName:  e.Author.Name,
		AuthorRole:  e.Author.Role,
		IsDeadline:  e.Deadline.IsDeadline,
		DueAt:       e.Deadline.DueAt,
		Openable:    e.Openable,
	}
}

func toEventResponses(events []TimelineEvent) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	return out
}

func toOccurrenceResponse(o Occurrence) occurrenceResponse {
	return occurrenceResponse{
		ID:     o.DisplayID(),
		Kind:   o.Kind,
		At:     o.DisplayAt(),
		Status: o.Status,
		Event:  toEventResponse(o.Event),
	}
}

func toBucketResponses(buckets []DayBucket) []dayBucketResponse {
	out := make([]dayBucketResponse, 0, len(buckets))
	for _, b := range buckets {
		occs := make([]occurrenceResponse, 0, len(b.Occurrences))
		for _, o := range b.Occurrences {
			occs = append(occs, toOccurrenceResponse(o))
		}
		out = append(out, dayBucketResponse{Day: b.Key, Occurrences: occs})
	}
	return out
}

// writeJSON está duplicado a propósito en handlers de distintos módulos
// para no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
