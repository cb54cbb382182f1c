// Package llm provides completion clients for the translation layer.
// OpenAI-compatible and Anthropic endpoints are supported behind one
// interface so the translation service never knows which provider is
// configured.
package llm

import "context"

// CompletionResult carries the model's text output plus token usage for
// cost accounting. Usage counts are zero-filled when the provider omits
// them, never negative and never absent.
type CompletionResult struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// CompletionClient is the interface the translation service depends on.
// Use it for dependency injection to enable mocking in tests.
type CompletionClient interface {
	// Complete sends a prompt with a system message and returns the
	// model's response text and usage.
	Complete(ctx context.Context, prompt string, systemMessage string) (*CompletionResult, error)

	// Model returns the configured model name.
	Model() string
}
