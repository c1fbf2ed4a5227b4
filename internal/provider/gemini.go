package provider

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// GeminiConfig holds configuration for the Gemini client.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// GeminiClient implements Client over Google's GenAI SDK. Safe for
// concurrent use; the SDK client is initialized exactly once.
type GeminiClient struct {
	apiKey string
	model  string

	initOnce sync.Once
	client   *genai.Client
	initErr  error
}

// NewGeminiClient creates a Gemini client. The underlying SDK client
// is constructed lazily on first use so a missing key degrades to
// Available() == false instead of a construction error.
func NewGeminiClient(config GeminiConfig) *GeminiClient {
	model := config.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiClient{
		apiKey: config.APIKey,
		model:  model,
	}
}

// Available reports whether an API key is configured.
func (c *GeminiClient) Available() bool {
	return c.apiKey != ""
}

// Generate sends a generation request with a system instruction.
func (c *GeminiClient) Generate(ctx context.Context, systemPrompt, userPrompt string, opts Options) (string, error) {
	if !c.Available() {
		return "", ErrNotConfigured
	}

	c.initOnce.Do(func() {
		c.client, c.initErr = genai.NewClient(ctx, &genai.ClientConfig{APIKey: c.apiKey})
	})
	if c.initErr != nil {
		return "", fmt.Errorf("failed to create genai client: %w", c.initErr)
	}

	temperature := float32(opts.Temperature)
	cfg := &genai.GenerateContentConfig{
		Temperature:       &temperature,
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	}
	if opts.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(opts.MaxTokens)
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(userPrompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("empty response from gemini")
	}
	return text, nil
}
