package schedule

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"medicine-reminder/internal/domain/medicines"
	"medicine-reminder/internal/domain/profiles"
	"medicine-reminder/internal/platform/logger"
	"medicine-reminder/internal/ports/generation"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// Cache guarda resultados limpios por prompt. Es opcional.
type Cache interface {
	Get(ctx context.Context, key string) (Result, bool, error)
	Set(ctx context.Context, key string, r Result) error
}

type Options struct {
	Generator generation.Generator
	Cache     Cache         // opcional
	Logger    logger.Logger // opcional

	// OnOutcome recibe el label de cada generación (métricas).
	OnOutcome func(outcome string)
}

type Service struct {
	profiles  *profiles.Service
	medicines *medicines.Service

	gen       generation.Generator
	cache     Cache
	log       logger.Logger
	onOutcome func(string)
}

func NewService(profilesSvc *profiles.Service, medicinesSvc *medicines.Service, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		profiles:  profilesSvc,
		medicines: medicinesSvc,
		gen:       opts.Generator,
		cache:     opts.Cache,
		log:       log.With(map[string]any{"component": "schedule"}),
		onOutcome: opts.OnOutcome,
	}
}

// GenerateSchedule corre el pipeline completo para un perfil y sus medicinas:
// prompt -> generador -> normalización. Siempre devuelve un Result válido.
func GenerateSchedule(ctx context.Context, gen generation.Generator, p Profile, meds []MedicineRecord) Result {
	res, _ := run(ctx, gen, RenderPrompt(p, meds))
	return res
}

func run(ctx context.Context, gen generation.Generator, prompt string) (Result, string) {
	if gen == nil {
		return normalize(generation.Outcome{Kind: generation.Unconfigured})
	}
	return normalize(gen.Generate(ctx, prompt))
}

// Generate carga perfil y medicinas del usuario y corre el pipeline.
// Sólo devuelve error si falla la lectura de storage (o no hay perfil).
func (s *Service) Generate(ctx context.Context, userID string) (Result, error) {
	if strings.TrimSpace(userID) == "" {
		return Result{}, ErrInvalidInput
	}

	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	items, err := s.medicines.ListDaily(ctx, userID)
	if err != nil {
		return Result{}, fmt.Errorf("load medicines: %w", err)
	}

	prompt := RenderPrompt(toProfile(p), toRecords(items))
	key := cacheKey(prompt)
	log := s.log.With(map[string]any{"user_id": userID, "medicines": len(items)})

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			log.Warn("schedule cache get failed", map[string]any{"error": err})
		case ok:
			s.observe(OutcomeCached)
			log.Debug("schedule served from cache", nil)
			return cached, nil
		}
	}

	// La llamada a upstream no se cancela con el request: termina sola o por
	// timeout del cliente. El Set a cache usa el mismo ctx para no perder el resultado.
	detached := context.WithoutCancel(ctx)
	res, outcome := run(detached, s.gen, prompt)
	s.observe(outcome)

	fields := map[string]any{"outcome": outcome, "entries": len(res.OptimizedSchedule)}
	switch outcome {
	case OutcomeSuccess, OutcomeUnconfigured:
		log.Info("schedule generated", fields)
	default:
		log.Warn("schedule generation degraded", fields)
	}

	if outcome == OutcomeSuccess && s.cache != nil {
		if err := s.cache.Set(detached, key, res); err != nil {
			log.Warn("schedule cache set failed", map[string]any{"error": err})
		}
	}

	return res, nil
}

// Apply mueve las medicinas del usuario a los horarios del schedule.
// optimizedSchedule viene de JSON sin tipar; si no es array => ErrInvalidInput
// sin tocar nada. Entradas que no son objeto o sin time HH:MM se saltean y
// se loguean como skipped. No es transaccional: ante un error de storage las
// actualizaciones previas quedan. Si un nombre aparece en varias entradas,
// gana la última.
func (s *Service) Apply(ctx context.Context, userID string, optimizedSchedule any) ([]medicines.Medicine, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	entries, ok := optimizedSchedule.([]any)
	if !ok {
		return nil, ErrInvalidInput
	}

	updated, skipped := 0, 0
	for _, it := range entries {
		entry, ok := it.(map[string]any)
		if !ok {
			skipped++
			continue
		}
		clock, _ := entry["time"].(string)
		if !medicines.ValidTime(clock) {
			skipped++
			continue
		}
		for _, name := range stringsOf(entry["medicines"]) {
			if name == "" {
				continue
			}
			n, err := s.medicines.UpdateTimeByName(ctx, userID, name, clock)
			if err != nil {
				return nil, fmt.Errorf("apply schedule: %w", err)
			}
			updated += n
		}
	}

	fields := map[string]any{"user_id": userID, "entries": len(entries), "updated": updated, "skipped": skipped}
	if skipped > 0 {
		s.log.Warn("schedule applied with skipped entries", fields)
	} else {
		s.log.Info("schedule applied", fields)
	}
	return s.medicines.ListDaily(ctx, userID)
}

func (s *Service) observe(outcome string) {
	if s.onOutcome != nil {
		s.onOutcome(outcome)
	}
}

func cacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return "schedule:" + hex.EncodeToString(sum[:])
}

func toProfile(p profiles.Profile) Profile {
	return Profile{
		Name:       p.Name,
		Age:        p.Age,
		Conditions: p.Conditions,
	}
}

func toRecords(items []medicines.Medicine) []MedicineRecord {
	out := make([]MedicineRecord, 0, len(items))
	for _, m := range items {
		out = append(out, MedicineRecord{
			Name:     m.Name,
			Dosage:   m.Dosage,
			Time:     m.Time,
			Duration: m.Duration,
		})
	}
	return out
}
