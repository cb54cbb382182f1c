package llm

import (
	"strings"
	"testing"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
		wantErr  bool
	}{
		{
			name:     "bare object",
			response: `{"config": {"count": true}}`,
			want:     `{"config": {"count": true}}`,
		},
		{
			name:     "json fence",
			response: "```json\n{\"error\": \"not a schedule question\"}\n```",
			want:     `{"error": "not a schedule question"}`,
		},
		{
			name:     "bare fence",
			response: "```\n{\"a\": 1}\n```",
			want:     `{"a": 1}`,
		},
		{
			name:     "think tags stripped",
			response: "<think>the user wants a count</think>{\"config\": {}}",
			want:     `{"config": {}}`,
		},
		{
			name:     "prose around object",
			response: "Here is the configuration you asked for:\n{\"count\": false}\nLet me know if you need anything else.",
			want:     `{"count": false}`,
		},
		{
			name:     "braces inside strings ignored",
			response: `{"error": "unbalanced } brace in text"}`,
			want:     `{"error": "unbalanced } brace in text"}`,
		},
		{
			name:     "no object",
			response: "I cannot answer that.",
			wantErr:  true,
		},
		{
			name:     "truncated object",
			response: `{"config": {"dimensions": ["date"`,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tt.response)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if strings.TrimSpace(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseJSONResponse(t *testing.T) {
	type payload struct {
		Error string `json:"error"`
	}

	parsed, err := ParseJSONResponse[payload]("```json\n{\"error\": \"no\"}\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Error != "no" {
		t.Errorf("parsed.Error = %q, want %q", parsed.Error, "no")
	}

	if _, err := ParseJSONResponse[payload]("not json at all"); err == nil {
		t.Error("expected error for non-JSON response")
	}
}
