package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultGroqConfig returns sensible defaults for the Groq API, which
// serves an OpenAI-compatible chat-completions endpoint.
func DefaultGroqConfig(apiKey string) GroqConfig {
	return GroqConfig{
		APIKey:  apiKey,
		BaseURL: "https://api.groq.com/openai/v1",
		Model:   "llama-3.3-70b-versatile",
		Timeout: 45 * time.Second,
	}
}

// GroqConfig holds configuration for the Groq client.
type GroqConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// GroqClient implements Client against the Groq chat-completions API.
type GroqClient struct {
	apiKey      string
	baseURL     string
	model       string
	httpClient  *http.Client
	logger      *zap.Logger
	mu          sync.Mutex
	lastRequest time.Time
}

// NewGroqClient creates a Groq client with default config.
func NewGroqClient(apiKey string) *GroqClient {
	return NewGroqClientWithConfig(DefaultGroqConfig(apiKey))
}

// NewGroqClientWithConfig creates a Groq client with custom config.
func NewGroqClientWithConfig(config GroqConfig) *GroqClient {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GroqClient{
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
		model:   config.Model,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger,
	}
}

// Available reports whether an API key is configured.
func (c *GroqClient) Available() bool {
	return c.apiKey != ""
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqRequest struct {
	Model       string        `json:"model"`
	Messages    []groqMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type groqResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Generate sends a chat-completion request and returns the first
// choice's content. Transport errors are retried with backoff; rate
// limiting spaces consecutive requests.
func (c *GroqClient) Generate(ctx context.Context, systemPrompt, userPrompt string, opts Options) (string, error) {
	if !c.Available() {
		return "", ErrNotConfigured
	}

	// Auto-apply timeout if context has no deadline
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.httpClient.Timeout)
		defer cancel()
	}

	// Space out consecutive requests
	c.mu.Lock()
	elapsed := time.Since(c.lastRequest)
	if elapsed < 100*time.Millisecond {
		time.Sleep(100*time.Millisecond - elapsed)
	}
	c.lastRequest = time.Now()
	c.mu.Unlock()

	reqBody := groqRequest{
		Model: c.model,
		Messages: []groqMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	const maxRetries = 2
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(1<<uint(attempt-1)) * time.Second):
			}
		}

		text, retryable, err := c.doRequest(ctx, jsonData)
		if err == nil {
			return text, nil
		}
		lastErr = err
		c.logger.Warn("groq request failed",
			zap.Int("attempt", attempt+1),
			zap.Bool("retryable", retryable),
			zap.Error(err))
		if !retryable {
			break
		}
	}

	return "", lastErr
}

func (c *GroqClient) doRequest(ctx context.Context, body []byte) (text string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return "", true, fmt.Errorf("API error %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	default:
		return "", false, fmt.Errorf("API error %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var parsed groqResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", false, fmt.Errorf("failed to parse response: %w", err)
	}
	if parsed.Error != nil {
		return "", false, fmt.Errorf("API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", false, fmt.Errorf("no choices in response")
	}

	return parsed.Choices[0].Message.Content, false, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
