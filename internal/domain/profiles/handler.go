package profiles

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
	r.Get("/me/profile", getProfileHandler(svc))
	r.Put("/me/profile", upsertProfileHandler(svc))
}

type upsertProfileRequest struct {
	Name       string   `json:"name"`
	Age        int      `json:"age"`
	Conditions []string `json:"conditions"`
}

type profileResponse struct {
	UserID     string    `json:"userId"`
	Name       string    `json:"name"`
	Age        int       `json:"age"`
	Conditions []string  `json:"conditions"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// getProfileHandler godoc
// @Summary Perfil del paciente
// @Tags profile
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} profileResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "profile not found"
// @Router /api/me/profile [get]
func getProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.Get(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "profile not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

// upsertProfileHandler godoc
// @Summary Crear o reemplazar perfil
// @Description name es obligatorio; age >= 0; conditions opcional.
// @Tags profile
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body upsertProfileRequest true "Perfil"
// @Success 200 {object} profileResponse
// @Failure 400 {string} string "invalid profile"
// @Failure 401 {string} string "unauthorized"
// @Router /api/me/profile [put]
func upsertProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req upsertProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Upsert(r.Context(), claims.UserID, UpsertInput{
			Name:       req.Name,
			Age:        req.Age,
			Conditions: req.Conditions,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "invalid profile", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

func toProfileResponse(p Profile) profileResponse {
	conds := p.Conditions
	if conds == nil {
		conds = []string{}
	}
	return profileResponse{
		UserID:     p.UserID,
		Name:       p.Name,
		Age:        p.Age,
		Conditions: conds,
		UpdatedAt:  p.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
