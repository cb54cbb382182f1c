package llm

import (
	"fmt"

	"go.uber.org/zap"
)

// NewCompletionClient creates a completion client for the configured
// provider. "openai" covers any OpenAI-compatible endpoint (vLLM,
// Ollama, OpenAI itself); "anthropic" uses the Messages API.
func NewCompletionClient(cfg *Config, logger *zap.Logger) (CompletionClient, error) {
	switch cfg.Provider {
	case "", "openai":
		return NewClient(cfg, logger)
	case "anthropic":
		return NewAnthropicClient(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
