package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allVars = []string{
	"PORT", "ENV", "LOG_LEVEL", "LOG_FORMAT", "APP_NAME", "DB_DSN", "REDIS_ADDR",
	"SCHEDULE_CACHE_TTL", "JWT_SECRET", "OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL",
	"OPENAI_TIMEOUT", "AI_RATE_PER_SEC", "AI_RATE_BURST", "STATUS_RESET_ENABLED", "STATUS_RESET_AT",
}

// clearEnv deja todas las variables vacías; t.Setenv restaura al terminar.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allVars {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "https://api.openai.com", cfg.OpenAIBaseURL)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, 30*time.Second, cfg.OpenAITimeout)
	assert.Equal(t, 24*time.Hour, cfg.ScheduleCacheTTL)
	assert.Equal(t, 0.5, cfg.AIRatePerSec)
	assert.Equal(t, int64(5), cfg.AIRateBurst)
	assert.True(t, cfg.StatusResetEnabled)
	assert.Equal(t, "00:00", cfg.StatusResetAt)
	assert.Empty(t, cfg.OpenAIAPIKey)
	assert.True(t, cfg.IsDevAuth())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "STAGING")
	t.Setenv("OPENAI_API_KEY", " sk-test ")
	t.Setenv("OPENAI_TIMEOUT", "5s")
	t.Setenv("STATUS_RESET_ENABLED", "false")
	t.Setenv("STATUS_RESET_AT", "03:30")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, EnvStaging, cfg.Env)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, 5*time.Second, cfg.OpenAITimeout)
	assert.False(t, cfg.StatusResetEnabled)
	assert.Equal(t, "03:30", cfg.StatusResetAt)
	assert.False(t, cfg.IsDevAuth())
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"bad port":          {"PORT", "abc"},
		"port range":        {"PORT", "70000"},
		"bad env":           {"ENV", "qa"},
		"bad level":         {"LOG_LEVEL", "verbose"},
		"bad format":        {"LOG_FORMAT", "xml"},
		"bad reset clock":   {"STATUS_RESET_AT", "7am"},
		"negative rate":     {"AI_RATE_PER_SEC", "-1"},
		"zero burst":        {"AI_RATE_BURST", "0"},
		"negative timeout":  {"OPENAI_TIMEOUT", "-2s"},
		"hour out of range": {"STATUS_RESET_AT", "29:00"},
		"hour 24":           {"STATUS_RESET_AT", "24:00"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestFromEnv_ProdRequiresJWTSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "prod")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestFromEnv_UnparseableValuesFail(t *testing.T) {
	cases := map[string][2]string{
		"timeout":   {"OPENAI_TIMEOUT", "abc"},
		"cache ttl": {"SCHEDULE_CACHE_TTL", "1 day"},
		"rate":      {"AI_RATE_PER_SEC", "fast"},
		"burst":     {"AI_RATE_BURST", "x"},
		"reset":     {"STATUS_RESET_ENABLED", "maybe"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])

			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid "+kv[0])
		})
	}
}

func TestFromEnv_ResetClockBounds(t *testing.T) {
	for _, v := range []string{"00:00", "09:59", "19:30", "23:59"} {
		clearEnv(t)
		t.Setenv("STATUS_RESET_AT", v)

		cfg, err := FromEnv()
		require.NoError(t, err, v)
		assert.Equal(t, v, cfg.StatusResetAt)
	}
}
