package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"nil", nil, ""},
		{"deadline exceeded", context.DeadlineExceeded, ErrorTypeTimeout},
		{"wrapped deadline", fmt.Errorf("call failed: %w", context.DeadlineExceeded), ErrorTypeTimeout},
		{"timeout text", errors.New("Client.Timeout exceeded while awaiting headers"), ErrorTypeTimeout},
		{"401 status", errors.New("API returned 401"), ErrorTypeAuth},
		{"invalid key", errors.New("invalid api key provided"), ErrorTypeAuth},
		{"model missing", errors.New("the model `gpt-nope` does not exist"), ErrorTypeModel},
		{"connection refused", errors.New("dial tcp: connection refused"), ErrorTypeEndpoint},
		{"503", errors.New("upstream returned 503"), ErrorTypeEndpoint},
		{"anything else", errors.New("mysterious failure"), ErrorTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyError(tt.err)
			if tt.err == nil {
				if got != nil {
					t.Fatalf("ClassifyError(nil) = %v, want nil", got)
				}
				return
			}
			if got.Type != tt.want {
				t.Errorf("ClassifyError(%v).Type = %q, want %q", tt.err, got.Type, tt.want)
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("classified error should wrap the cause")
			}
		})
	}
}

func TestClassifyError_PreservesStructured(t *testing.T) {
	orig := NewError(ErrorTypeAuth, "authentication failed", errors.New("401"))
	if got := ClassifyError(fmt.Errorf("wrapped: %w", orig)); got != orig {
		t.Errorf("already-classified error should pass through, got %v", got)
	}
}

func TestIsTimeout(t *testing.T) {
	if !IsTimeout(NewError(ErrorTypeTimeout, "request timed out", nil)) {
		t.Error("timeout-typed error should report as timeout")
	}
	if !IsTimeout(context.DeadlineExceeded) {
		t.Error("raw deadline exceeded should report as timeout")
	}
	if IsTimeout(NewError(ErrorTypeAuth, "authentication failed", nil)) {
		t.Error("auth error should not report as timeout")
	}
	if IsTimeout(errors.New("other")) {
		t.Error("unclassified error should not report as timeout")
	}
}
