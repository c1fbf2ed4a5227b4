package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every override so host environment does not leak
// into assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GROQ_API_KEY", "GROQ_MODEL", "GROQ_TIMEOUT",
		"GEMINI_API_KEY", "GEMINI_MODEL",
		"PROMPTC_ADDR", "ALLOWED_ORIGINS", "RATE_LIMIT_PER_MINUTE",
		"MAX_PROMPT_LENGTH", "MIN_PROMPT_LENGTH", "PROMPTC_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "llama-3.3-70b-versatile", cfg.LLM.GroqModel)
	assert.Equal(t, 10000, cfg.Limits.MaxPromptLength)
	assert.Equal(t, 3, cfg.Limits.MinPromptLength)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 60, cfg.Server.RateLimitPerMinute)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("yaml values override defaults", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
llm:
  groq_model: mixtral-8x7b-32768
server:
  addr: ":9090"
  rate_limit_per_minute: 5
limits:
  max_prompt_length: 500
`), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "mixtral-8x7b-32768", cfg.LLM.GroqModel)
		assert.Equal(t, ":9090", cfg.Server.Addr)
		assert.Equal(t, 5, cfg.Server.RateLimitPerMinute)
		assert.Equal(t, 500, cfg.Limits.MaxPromptLength)
		assert.Equal(t, 3, cfg.Limits.MinPromptLength)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("llm: [not a map"), 0644))

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("env limits are validated without a file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MAX_PROMPT_LENGTH", "2")

		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorContains(t, err, "max_prompt_length")
	})

	t.Run("limits are validated", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
limits:
  max_prompt_length: 2
  min_prompt_length: 10
`), 0644))

		_, err := Load(path)
		assert.ErrorContains(t, err, "max_prompt_length")
	})
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GROQ_API_KEY", "secret")
	t.Setenv("GROQ_MODEL", "llama-custom")
	t.Setenv("PROMPTC_ADDR", ":7070")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("MAX_PROMPT_LENGTH", "2048")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.LLM.GroqAPIKey)
	assert.Equal(t, "llama-custom", cfg.LLM.GroqModel)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 2048, cfg.Limits.MaxPromptLength)
	assert.Equal(t, 60, cfg.Server.RateLimitPerMinute)
}

func TestEnvOverridesBeatYAML(t *testing.T) {
	clearEnv(t)
	t.Setenv("GROQ_API_KEY", "env-key")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm:\n  groq_api_key: file-key\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.LLM.GroqAPIKey)
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Server.Addr = ":4444"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":4444", loaded.Server.Addr)
}

func TestDurationGetters(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "45s", cfg.LLM.GroqTimeout)
	assert.Equal(t, 45.0, cfg.GetGroqTimeout().Seconds())

	cfg.LLM.GroqTimeout = "garbage"
	assert.Equal(t, 45.0, cfg.GetGroqTimeout().Seconds())

	cfg.Server.ShutdownTimeout = "3s"
	assert.Equal(t, 3.0, cfg.GetShutdownTimeout().Seconds())
	assert.Equal(t, 15.0, cfg.GetReadTimeout().Seconds())
	assert.Equal(t, 60.0, cfg.GetWriteTimeout().Seconds())
}
