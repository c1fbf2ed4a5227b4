// Package provider holds the LLM client contract and its concrete
// implementations. The engine only needs one thing from a provider:
// given a system instruction and a user instruction, return generated
// text inside a bounded time, with a clear error when that is not
// possible. Transport failures never propagate past the optimizer;
// it treats any error as "no output produced".
package provider

import (
	"context"
	"errors"
)

// Options carries per-call generation parameters.
type Options struct {
	Temperature float64
	MaxTokens   int
}

// Client is the LLM provider contract.
type Client interface {
	// Generate returns generated text for the given prompts. Errors
	// cover transport failure, timeout, and malformed responses.
	Generate(ctx context.Context, systemPrompt, userPrompt string, opts Options) (string, error)

	// Available reports whether the client is configured well enough
	// to attempt a call. Checked before each use.
	Available() bool
}

// ErrNotConfigured is returned by clients missing credentials.
var ErrNotConfigured = errors.New("llm provider not configured")

// Unavailable is the null provider: never available, never generates.
// Used when no API key is present so the engine runs static-only.
type Unavailable struct{}

func (Unavailable) Generate(context.Context, string, string, Options) (string, error) {
	return "", ErrNotConfigured
}

func (Unavailable) Available() bool { return false }
