package router

import (
	"database/sql"
	"net/http"
	"strings"

	mem "medicine-reminder/internal/adapters/storage/memory"
	pg "medicine-reminder/internal/adapters/storage/postgres"
	_ "medicine-reminder/internal/docs"
	"medicine-reminder/internal/domain/medicines"
	"medicine-reminder/internal/domain/profiles"
	"medicine-reminder/internal/domain/schedule"
	"medicine-reminder/internal/middleware"
	"medicine-reminder/internal/platform/logger"
	"medicine-reminder/internal/platform/metrics"
	"medicine-reminder/internal/platform/ratelimit"
	"medicine-reminder/internal/ports/auth"
	"medicine-reminder/internal/ports/generation"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: nil => siempre schedule demo.
	Generator generation.Generator
	// Opcional: nil => sin cache.
	Cache schedule.Cache
	// Opcional: nil => /api/ai sin rate limit.
	Limiter *ratelimit.Limiter

	Logger logger.Logger
}

// Services agrupa los servicios de dominio; main los necesita para los jobs.
type Services struct {
	Medicines *medicines.Service
	Profiles  *profiles.Service
	Schedule  *schedule.Service
}

func NewServices(opts Options) Services {
	var (
		medicineRepo medicines.Repository
		profileRepo  profiles.Repository
	)
	if opts.DB != nil {
		medicineRepo = pg.NewMedicinesRepo(opts.DB)
		profileRepo = pg.NewProfilesRepo(opts.DB)
	} else {
		medicineRepo = mem.NewMedicineRepo()
		profileRepo = mem.NewProfileRepo()
	}

	medicinesSvc := medicines.NewService(medicineRepo)
	profilesSvc := profiles.NewService(profileRepo)
	scheduleSvc := schedule.NewService(profilesSvc, medicinesSvc, schedule.Options{
		Generator: opts.Generator,
		Cache:     opts.Cache,
		Logger:    opts.Logger,
		OnOutcome: func(outcome string) {
			metrics.ScheduleOutcomes.WithLabelValues(outcome).Inc()
		},
	})

	return Services{
		Medicines: medicinesSvc,
		Profiles:  profilesSvc,
		Schedule:  scheduleSvc,
	}
}

func NewRouter(opts Options) http.Handler {
	return Mount(opts, NewServices(opts))
}

// Mount arma el router sobre servicios ya construidos.
func Mount(opts Options, svcs Services) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)

	r.Use(middleware.AuthContext(opts.AuthVerifier))
	r.Use(middleware.RequestLog(log))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var aiMws []func(http.Handler) http.Handler
	if opts.Limiter != nil {
		aiMws = append(aiMws, opts.Limiter.Middleware(rateLimitKey))
	}

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", healthHandler)

		// Rutas por módulo
		medicines.RegisterRoutes(api, svcs.Medicines)
		profiles.RegisterRoutes(api, svcs.Profiles)
		schedule.RegisterRoutes(api, svcs.Schedule, aiMws...)
	})

	return r
}

// healthHandler godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/health [get]
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// rateLimitKey: por usuario si hay claims, si no por IP (RealIP ya la resolvió).
func rateLimitKey(r *http.Request) string {
	if c, ok := middleware.GetClaims(r.Context()); ok && strings.TrimSpace(c.UserID) != "" {
		return "user:" + c.UserID
	}
	return "ip:" + r.RemoteAddr
}
