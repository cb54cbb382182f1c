package llm

import (
	"testing"

	"go.uber.org/zap"
)

func TestNewCompletionClient(t *testing.T) {
	base := Config{
		Endpoint: "https://api.openai.com/v1",
		Model:    "gpt-4o-mini",
		APIKey:   "test-key",
	}

	tests := []struct {
		provider  string
		wantModel string
		wantErr   bool
	}{
		{provider: "", wantModel: "gpt-4o-mini"},
		{provider: "openai", wantModel: "gpt-4o-mini"},
		{provider: "anthropic", wantModel: "gpt-4o-mini"},
		{provider: "bedrock", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("provider "+tt.provider, func(t *testing.T) {
			cfg := base
			cfg.Provider = tt.provider

			client, err := NewCompletionClient(&cfg, zap.NewNop())
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error for unknown provider")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if client.Model() != tt.wantModel {
				t.Errorf("model = %q, want %q", client.Model(), tt.wantModel)
			}
		})
	}
}

func TestNewClient_Validation(t *testing.T) {
	logger := zap.NewNop()

	if _, err := NewClient(&Config{Model: "m"}, logger); err == nil {
		t.Error("missing endpoint should error")
	}
	if _, err := NewClient(&Config{Endpoint: "http://localhost:8000/v1"}, logger); err == nil {
		t.Error("missing model should error")
	}
}
