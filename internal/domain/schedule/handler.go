package schedule

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"medicine-reminder/internal/domain/medicines"
	"medicine-reminder/internal/domain/profiles"
	"medicine-reminder/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /ai. mws se aplica sólo a estas rutas (rate limit).
func RegisterRoutes(r chi.Router, svc *Service, mws ...func(http.Handler) http.Handler) {
	r.Route("/ai", func(ar chi.Router) {
		ar.Use(mws...)
		ar.Post("/generate", generateScheduleHandler(svc))
		ar.Post("/apply", applyScheduleHandler(svc))
	})
}

type generateResponse struct {
	AIResult Result `json:"aiResult"`
}

type applyRequest struct {
	// any a propósito: validamos que sea array en el servicio.
	OptimizedSchedule any `json:"optimizedSchedule" swaggertype:"array,object"`
}

// generateScheduleHandler godoc
// @Summary Generar schedule con IA
// @Description Arma un schedule diario a partir del perfil y las medicinas del usuario. Nunca devuelve error por fallas del modelo: los caminos degradados se informan en doctorWarning (y raw).
// @Tags ai
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} generateResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "profile not found"
// @Failure 429 {string} string "rate limit exceeded"
// @Router /api/ai/generate [post]
func generateScheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		res, err := svc.Generate(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, profiles.ErrNotFound) {
				http.Error(w, "profile not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, generateResponse{AIResult: res})
	}
}

// applyScheduleHandler godoc
// @Summary Aplicar schedule
// @Description Mueve cada medicina nombrada en optimizedSchedule a la hora de su entrada. Devuelve las medicinas del usuario ordenadas por hora.
// @Tags ai
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body applyRequest true "Schedule a aplicar"
// @Success 200 {array} medicines.MedicineResponse
// @Failure 400 {string} string "optimizedSchedule array is required"
// @Failure 401 {string} string "unauthorized"
// @Router /api/ai/apply [post]
func applyScheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req applyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		items, err := svc.Apply(r.Context(), claims.UserID, req.OptimizedSchedule)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "optimizedSchedule array is required", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, medicines.ToResponses(items))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
