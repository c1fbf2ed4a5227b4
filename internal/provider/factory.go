package provider

import (
	"os"
	"time"

	"go.uber.org/zap"
)

// Settings selects and configures a generation backend. Empty fields
// fall back to environment variables so the zero value still detects
// a usable provider when keys are exported.
type Settings struct {
	GroqAPIKey   string
	GroqModel    string
	GroqTimeout  time.Duration
	GeminiAPIKey string
	GeminiModel  string
}

// Detect returns the first configured client, preferring Groq. When
// no key is configured an Unavailable client is returned so callers
// can rely on degraded behavior instead of nil checks.
func Detect(settings Settings, logger *zap.Logger) Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	groqKey := settings.GroqAPIKey
	if groqKey == "" {
		groqKey = os.Getenv("GROQ_API_KEY")
	}
	if groqKey != "" {
		config := DefaultGroqConfig(groqKey)
		if settings.GroqModel != "" {
			config.Model = settings.GroqModel
		}
		if settings.GroqTimeout > 0 {
			config.Timeout = settings.GroqTimeout
		}
		config.Logger = logger
		logger.Info("llm provider selected", zap.String("provider", "groq"), zap.String("model", config.Model))
		return NewGroqClientWithConfig(config)
	}

	geminiKey := settings.GeminiAPIKey
	if geminiKey == "" {
		geminiKey = os.Getenv("GEMINI_API_KEY")
	}
	if geminiKey != "" {
		config := GeminiConfig{APIKey: geminiKey, Model: settings.GeminiModel}
		client := NewGeminiClient(config)
		logger.Info("llm provider selected", zap.String("provider", "gemini"), zap.String("model", client.model))
		return client
	}

	logger.Info("no llm provider configured, static structuring only")
	return Unavailable{}
}
