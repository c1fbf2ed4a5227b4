package provider

import "context"

// Mock is a test double. Set the function fields to script behavior;
// unset fields fall back to a fixed canned response.
type Mock struct {
	GenerateFunc  func(ctx context.Context, systemPrompt, userPrompt string, opts Options) (string, error)
	AvailableFunc func() bool

	// Calls counts Generate invocations.
	Calls int
}

func (m *Mock) Generate(ctx context.Context, systemPrompt, userPrompt string, opts Options) (string, error) {
	m.Calls++
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, systemPrompt, userPrompt, opts)
	}
	return "mock response", nil
}

func (m *Mock) Available() bool {
	if m.AvailableFunc != nil {
		return m.AvailableFunc()
	}
	return true
}
