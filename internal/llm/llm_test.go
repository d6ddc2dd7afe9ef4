package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"auth rejection", &ProviderError{Status: 401, Fatal: true, Err: errors.New("unauthorized")}, true},
		{"malformed request", &ProviderError{Status: 400, Fatal: true, Err: errors.New("bad request")}, true},
		{"rate limit", &ProviderError{Status: 429, Err: errors.New("too many requests")}, false},
		{"server error", &ProviderError{Status: 503, Err: errors.New("unavailable")}, false},
		{"transport error", &ProviderError{Err: errors.New("connection refused")}, false},
		{"wrapped fatal", fmt.Errorf("chat: %w", &ProviderError{Status: 403, Fatal: true, Err: errors.New("forbidden")}), true},
		{"plain error", errors.New("boom"), false},
		{"deadline", context.DeadlineExceeded, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFatal(tt.err); got != tt.want {
				t.Errorf("IsFatal(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestFatalStatus(t *testing.T) {
	fatal := []int{400, 401, 403, 404, 422}
	for _, s := range fatal {
		if !fatalStatus(s) {
			t.Errorf("status %d should be fatal", s)
		}
	}
	transient := []int{408, 429, 500, 502, 503}
	for _, s := range transient {
		if fatalStatus(s) {
			t.Errorf("status %d should be transient", s)
		}
	}
}

func TestProviderErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	pe := &ProviderError{Status: 500, Err: inner}
	if !errors.Is(pe, inner) {
		t.Error("ProviderError should unwrap to inner error")
	}
}

func TestStubClientReturnsValidJSON(t *testing.T) {
	raw, err := StubClient{}.Chat(context.Background(), []Message{{Role: RoleUser, Content: "x"}}, Options{})
	if err != nil {
		t.Fatalf("stub chat failed: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("stub response is not JSON: %v", err)
	}
	if _, ok := payload["author_profile"].(map[string]any); !ok {
		t.Error("stub response missing author_profile object")
	}
}

func TestStubClientHonorsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (StubClient{}).Chat(ctx, nil, Options{}); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestNewOpenAIClientRequiresKey(t *testing.T) {
	if _, err := NewOpenAIClient("", ""); err == nil {
		t.Error("expected error for missing api key")
	}
}
