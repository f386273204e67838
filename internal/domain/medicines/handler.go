package medicines

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"medicine-reminder/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/medicines", func(mr chi.Router) {
		mr.Post("/", createMedicineHandler(svc))
		mr.Get("/daily", dailyScheduleHandler(svc))
		mr.Patch("/{id}/status", updateStatusHandler(svc))
	})
}

// createMedicineRequest es el cuerpo para registrar una toma.
type createMedicineRequest struct {
	Name     string `json:"name"`
	Dosage   string `json:"dosage"`
	Time     string `json:"time"` // HH:MM 24h
	Duration string `json:"duration"`
}

type updateStatusRequest struct {
	Status Status `json:"status" enums:"pending,taken,missed"`
}

// MedicineResponse es la representación pública de una toma.
type MedicineResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Dosage    string    `json:"dosage"`
	Time      string    `json:"time"`
	Duration  string    `json:"duration"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// createMedicineHandler godoc
// @Summary Registrar medicina
// @Description Crea una toma para el usuario autenticado. Todos los campos son obligatorios; time en formato HH:MM (24h).
// @Tags medicines
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createMedicineRequest true "Datos de la medicina"
// @Success 201 {object} MedicineResponse
// @Failure 400 {string} string "missing required fields"
// @Failure 401 {string} string "unauthorized"
// @Router /api/medicines [post]
func createMedicineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createMedicineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:     req.Name,
			Dosage:   req.Dosage,
			Time:     req.Time,
			Duration: req.Duration,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "missing required fields", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, ToResponse(m))
	}
}

// dailyScheduleHandler godoc
// @Summary Schedule diario
// @Description Devuelve las medicinas del usuario ordenadas por hora.
// @Tags medicines
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} MedicineResponse
// @Failure 401 {string} string "unauthorized"
// @Router /api/medicines/daily [get]
func dailyScheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListDaily(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, ToResponses(items))
	}
}

// updateStatusHandler godoc
// @Summary Actualizar estado de una toma
// @Tags medicines
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param id path string true "ID de la medicina"
// @Param payload body updateStatusRequest true "Nuevo estado"
// @Success 200 {object} MedicineResponse
// @Failure 400 {string} string "invalid status"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medicine not found"
// @Router /api/medicines/{id}/status [patch]
func updateStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.UpdateStatus(r.Context(), claims.UserID, chi.URLParam(r, "id"), req.Status)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidInput):
				http.Error(w, "invalid status", http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "medicine not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, ToResponse(m))
	}
}

func ToResponse(m Medicine) MedicineResponse {
	return MedicineResponse{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Dosage:    m.Dosage,
		Time:      m.Time,
		Duration:  m.Duration,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToResponses(items []Medicine) []MedicineResponse {
	out := make([]MedicineResponse, 0, len(items))
	for _, m := range items {
		out = append(out, ToResponse(m))
	}
	return out
}

// writeJSON está duplicado en cada módulo a propósito; se extrae cuando haya más repetición.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
