package processes

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"procurement-timeline/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/processes", func(pr chi.Router) {
		pr.Post("/", createProcessHandler(svc))
		pr.Get("/", listProcessesHandler(svc))
		pr.Get("/{processID}", getProcessHandler(svc))
	})
}

// createProcessRequest es el cuerpo para registrar un proceso.
type createProcessRequest struct {
	Code       string `json:"code"`
	Object     string `json:"object"`
	Modality   string `json:"modality" enums:"pregao,concorrencia,dispensa,inexigibilidade"`
	Status     string `json:"status" enums:"draft,in_progress,suspended,closed"`
	Department string `json:"department"`
	Notes      string `json:"notes"`
}

// processResponse representa un proceso devuelto por la API.
type processResponse struct {
	ID          string    `json:"id"`
	OwnerUserID string    `json:"owner_user_id"`
	Code        string    `json:"code"`
	Object      string    `json:"object"`
	Modality    Modality  `json:"modality"`
	Status      Status    `json:"status"`
	Department  string    `json:"department"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// createProcessHandler godoc
// @Summary Crear proceso de contratación
// @Description Registra un proceso; el usuario autenticado queda como dueño. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags processes
// @Accept json
// @Produce json
// @Param payload body createProcessRequest true "Datos del proceso"
// @Success 201 {object} processResponse
// @Failure 400 {string} string "invalid json / campos requeridos"
// @Failure 401 {string} string "unauthorized"
// @Router /processes [post]
func createProcessHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createProcessRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Code:       req.Code,
			Object:     req.Object,
			Modality:   req.Modality,
			Status:     req.Status,
			Department: req.Department,
			Notes:      req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toProcessResponse(p))
	}
}

// listProcessesHandler godoc
// @Summary Listar procesos del usuario
// @Tags processes
// @Produce json
// @Success 200 {array} processResponse
// @Failure 401 {string} string "unauthorized"
// @Router /processes [get]
func listProcessesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]processResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toProcessResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getProcessHandler godoc
// @Summary Obtener un proceso
// @Tags processes
// @Produce json
// @Param processID path string true "ID del proceso"
// @Success 200 {object} processResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "process not found"
// @Router /processes/{processID} [get]
func getProcessHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "processID"))
		if err != nil {
			http.Error(w, "process not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toProcessResponse(p))
	}
}

func toProcessResponse(p Process) processResponse {
	return processResponse{
		ID:          p.ID,
		OwnerUserID: p.OwnerUserID,
		Code:        p.Code,
		Object:      p.Object,
		Modality:    p.Modality,
		Status:      p.Status,
		Department:  p.Department,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// writeJSON está duplicado a propósito en handlers de distintos módulos
// para no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
