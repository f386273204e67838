// Package config carga la configuración del servicio desde variables de
// entorno (y un .env opcional en desarrollo).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "dev"
	EnvStaging     = "staging"
	EnvProduction  = "prod"
	EnvTest        = "test"
)

var clockRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Config holds all application configuration
type Config struct {
	Port      string
	Env       string
	LogLevel  string
	LogFormat string
	AppName   string

	// Storage. Vacío => repos in-memory.
	DBDSN string

	// Cache de schedules generados. Vacío => sin cache.
	RedisAddr        string
	ScheduleCacheTTL time.Duration

	// Vacío => modo dev (X-Debug-User-ID).
	JWTSecret string

	// Vacío => el generador queda "unconfigured" y se devuelve el schedule demo.
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	OpenAITimeout time.Duration

	AIRatePerSec float64
	AIRateBurst  int64

	StatusResetEnabled bool
	StatusResetAt      string // HH:MM
}

// Load lee .env (si existe) y valida la configuración.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv arma la configuración sólo desde el entorno del proceso.
func FromEnv() (*Config, error) {
	env := &envReader{}
	cfg := &Config{
		Port:      getEnvWithDefault("PORT", "8080"),
		Env:       strings.ToLower(getEnvWithDefault("ENV", EnvDevelopment)),
		LogLevel:  strings.ToLower(getEnvWithDefault("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getEnvWithDefault("LOG_FORMAT", "text")),
		AppName:   getEnvWithDefault("APP_NAME", "medicine-reminder"),

		DBDSN: strings.TrimSpace(os.Getenv("DB_DSN")),

		RedisAddr:        strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		ScheduleCacheTTL: env.duration("SCHEDULE_CACHE_TTL", 24*time.Hour),

		JWTSecret: strings.TrimSpace(os.Getenv("JWT_SECRET")),

		OpenAIAPIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIBaseURL: getEnvWithDefault("OPENAI_BASE_URL", "https://api.openai.com"),
		OpenAIModel:   getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAITimeout: env.duration("OPENAI_TIMEOUT", 30*time.Second),

		AIRatePerSec: env.float("AI_RATE_PER_SEC", 0.5),
		AIRateBurst:  env.int64("AI_RATE_BURST", 5),

		StatusResetEnabled: env.bool("STATUS_RESET_ENABLED", true),
		StatusResetAt:      getEnvWithDefault("STATUS_RESET_AT", "00:00"),
	}

	// Un valor que no parsea es error, no cae al default.
	if err := errors.Join(env.errs...); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if err := validatePort(cfg.Port); err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}
	if err := validateOneOf(cfg.Env, EnvDevelopment, EnvStaging, EnvProduction, EnvTest); err != nil {
		return fmt.Errorf("invalid ENV: %w", err)
	}
	if err := validateOneOf(cfg.LogLevel, "debug", "info", "warn", "error"); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if err := validateOneOf(cfg.LogFormat, "text", "json"); err != nil {
		return fmt.Errorf("invalid LOG_FORMAT: %w", err)
	}
	if cfg.OpenAITimeout <= 0 {
		return fmt.Errorf("invalid OPENAI_TIMEOUT: must be positive, got %s", cfg.OpenAITimeout)
	}
	if cfg.ScheduleCacheTTL <= 0 {
		return fmt.Errorf("invalid SCHEDULE_CACHE_TTL: must be positive, got %s", cfg.ScheduleCacheTTL)
	}
	if cfg.AIRatePerSec <= 0 {
		return fmt.Errorf("invalid AI_RATE_PER_SEC: must be positive, got %v", cfg.AIRatePerSec)
	}
	if cfg.AIRateBurst <= 0 {
		return fmt.Errorf("invalid AI_RATE_BURST: must be positive, got %d", cfg.AIRateBurst)
	}
	if !clockRe.MatchString(cfg.StatusResetAt) {
		return fmt.Errorf("invalid STATUS_RESET_AT: must be HH:MM, got %q", cfg.StatusResetAt)
	}
	// En prod no aceptamos el modo dev de auth.
	if cfg.Env == EnvProduction && cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required when ENV=prod")
	}
	return nil
}

func validatePort(port string) error {
	if port == "" {
		return errors.New("PORT cannot be empty")
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("PORT must be a valid number: %w", err)
	}
	if n < 1 || n > 65535 {
		return errors.New("PORT must be between 1 and 65535")
	}
	return nil
}

func validateOneOf(v string, allowed ...string) error {
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return fmt.Errorf("must be one of: %v, got: %s", allowed, v)
}

// IsDevAuth indica si el servicio acepta X-Debug-User-ID.
func (c *Config) IsDevAuth() bool {
	return c.JWTSecret == ""
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// envReader parsea variables tipadas y junta los errores de parseo.
type envReader struct {
	errs []error
}

func (e *envReader) lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

func (e *envReader) fail(key, value string, err error) {
	e.errs = append(e.errs, fmt.Errorf("invalid %s %q: %w", key, value, err))
}

func (e *envReader) int64(key string, defaultValue int64) int64 {
	value, ok := e.lookup(key)
	if !ok {
		return defaultValue
	}
	v, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		e.fail(key, value, err)
		return defaultValue
	}
	return v
}

func (e *envReader) float(key string, defaultValue float64) float64 {
	value, ok := e.lookup(key)
	if !ok {
		return defaultValue
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		e.fail(key, value, err)
		return defaultValue
	}
	return v
}

func (e *envReader) bool(key string, defaultValue bool) bool {
	value, ok := e.lookup(key)
	if !ok {
		return defaultValue
	}
	v, err := strconv.ParseBool(value)
	if err != nil {
		e.fail(key, value, err)
		return defaultValue
	}
	return v
}

func (e *envReader) duration(key string, defaultValue time.Duration) time.Duration {
	value, ok := e.lookup(key)
	if !ok {
		return defaultValue
	}
	v, err := time.ParseDuration(value)
	if err != nil {
		e.fail(key, value, err)
		return defaultValue
	}
	return v
}
