// Package config loads layered configuration: built-in defaults, an
// optional YAML file, then environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all promptc configuration.
type Config struct {
	// LLM provider configuration
	LLM LLMConfig `yaml:"llm"`

	// Input validation bounds
	Limits LimitsConfig `yaml:"limits"`

	// HTTP server configuration
	Server ServerConfig `yaml:"server"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// LLMConfig configures the generation backend.
type LLMConfig struct {
	GroqAPIKey   string `yaml:"groq_api_key"`
	GroqModel    string `yaml:"groq_model"`
	GroqTimeout  string `yaml:"groq_timeout"`
	GeminiAPIKey string `yaml:"gemini_api_key"`
	GeminiModel  string `yaml:"gemini_model"`
}

// LimitsConfig bounds accepted input.
type LimitsConfig struct {
	MaxPromptLength int `yaml:"max_prompt_length"`
	MinPromptLength int `yaml:"min_prompt_length"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	// Requests per minute per client, with a burst allowance.
	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`
	RateLimitBurst     int `yaml:"rate_limit_burst"`

	ReadTimeout     string `yaml:"read_timeout"`
	WriteTimeout    string `yaml:"write_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			GroqModel:   "llama-3.3-70b-versatile",
			GroqTimeout: "45s",
			GeminiModel: "gemini-2.0-flash",
		},
		Limits: LimitsConfig{
			MaxPromptLength: 10000,
			MinPromptLength: 3,
		},
		Server: ServerConfig{
			Addr:               ":8080",
			AllowedOrigins:     []string{"http://localhost:3000"},
			RateLimitPerMinute: 60,
			RateLimitBurst:     10,
			ReadTimeout:        "15s",
			WriteTimeout:       "60s",
			ShutdownTimeout:    "10s",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields
// defaults; environment variables override either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			if err := cfg.validate(); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		c.LLM.GroqAPIKey = key
	}
	if model := os.Getenv("GROQ_MODEL"); model != "" {
		c.LLM.GroqModel = model
	}
	if timeout := os.Getenv("GROQ_TIMEOUT"); timeout != "" {
		c.LLM.GroqTimeout = timeout
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.GeminiAPIKey = key
	}
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		c.LLM.GeminiModel = model
	}

	if addr := os.Getenv("PROMPTC_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		var parsed []string
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				parsed = append(parsed, origin)
			}
		}
		c.Server.AllowedOrigins = parsed
	}
	if limit := os.Getenv("RATE_LIMIT_PER_MINUTE"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			c.Server.RateLimitPerMinute = n
		}
	}

	if max := os.Getenv("MAX_PROMPT_LENGTH"); max != "" {
		if n, err := strconv.Atoi(max); err == nil && n > 0 {
			c.Limits.MaxPromptLength = n
		}
	}
	if min := os.Getenv("MIN_PROMPT_LENGTH"); min != "" {
		if n, err := strconv.Atoi(min); err == nil && n > 0 {
			c.Limits.MinPromptLength = n
		}
	}

	if level := os.Getenv("PROMPTC_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

func (c *Config) validate() error {
	if c.Limits.MinPromptLength < 1 {
		return fmt.Errorf("min_prompt_length must be positive, got %d", c.Limits.MinPromptLength)
	}
	if c.Limits.MaxPromptLength < c.Limits.MinPromptLength {
		return fmt.Errorf("max_prompt_length %d is below min_prompt_length %d",
			c.Limits.MaxPromptLength, c.Limits.MinPromptLength)
	}
	return nil
}

// GetGroqTimeout returns the Groq request timeout as a duration.
func (c *Config) GetGroqTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.GroqTimeout)
	if err != nil {
		return 45 * time.Second
	}
	return d
}

// GetReadTimeout returns the server read timeout as a duration.
func (c *Config) GetReadTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ReadTimeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// GetWriteTimeout returns the server write timeout as a duration.
func (c *Config) GetWriteTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.WriteTimeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// GetShutdownTimeout returns the graceful shutdown timeout.
func (c *Config) GetShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}
