package llm

import "context"

// MockCompletionClient is a configurable mock for testing translation
// behavior. Set CompleteFunc to control responses.
type MockCompletionClient struct {
	// CompleteFunc is called when Complete is invoked. If nil, an empty
	// result and nil error are returned.
	CompleteFunc func(ctx context.Context, prompt string, systemMessage string) (*CompletionResult, error)

	// ModelName is returned by Model. Defaults to "mock-model".
	ModelName string

	// CompleteCalls counts invocations for verification.
	CompleteCalls int

	// LastPrompt records the most recent prompt for assertions.
	LastPrompt string
}

// NewMockCompletionClient creates a mock with defaults.
func NewMockCompletionClient() *MockCompletionClient {
	return &MockCompletionClient{ModelName: "mock-model"}
}

// Complete implements CompletionClient.
func (m *MockCompletionClient) Complete(ctx context.Context, prompt string, systemMessage string) (*CompletionResult, error) {
	m.CompleteCalls++
	m.LastPrompt = prompt
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt, systemMessage)
	}
	return &CompletionResult{}, nil
}

// Model implements CompletionClient.
func (m *MockCompletionClient) Model() string {
	if m.ModelName == "" {
		return "mock-model"
	}
	return m.ModelName
}

// Ensure MockCompletionClient implements CompletionClient at compile time.
var _ CompletionClient = (*MockCompletionClient)(nil)
