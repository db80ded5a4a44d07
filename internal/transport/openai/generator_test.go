package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/resumatch/internal/domain"
	"github.com/kailas-cloud/resumatch/internal/usecase/hosted"
)

func newTestGenerator(url string) *Generator {
	return NewGenerator(&GeneratorConfig{
		Config: Config{
			APIKey:   "test-key",
			BaseURL:  url,
			Model:    "test-chat",
			Provider: "test",
			Logger:   zap.NewNop(),
		},
		Temperature: 0.7,
		MaxTokens:   4096,
		JSONMode:    true,
	})
}

func TestGenerator_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
			ResponseFormat struct {
				Type string `json:"type"`
			} `json:"response_format"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
			return
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Content != "user text" {
			t.Errorf("unexpected messages %+v", req.Messages)
		}
		if req.ResponseFormat.Type != "json_object" {
			t.Errorf("expected json_object response format, got %q", req.ResponseFormat.Type)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "c1",
			"object": "chat.completion",
			"model":  "test-chat",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": `{"ats_score": 80}`},
				"finish_reason": "stop",
			}},
		})
	}))
	defer srv.Close()

	out, err := newTestGenerator(srv.URL).Generate(context.Background(), hosted.Prompt{System: "sys", User: "user text"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != `{"ats_score": 80}` {
		t.Errorf("unexpected output %q", out)
	}
}

func TestGenerator_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		target error
	}{
		{http.StatusTooManyRequests, domain.ErrRateLimited},
		{http.StatusForbidden, domain.ErrInvalidCredential},
		{http.StatusUnauthorized, domain.ErrInvalidCredential},
		{http.StatusInternalServerError, domain.ErrUpstreamFailure},
	}
	for _, tc := range tests {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"message": "nope", "type": "error"},
				})
			}))
			defer srv.Close()

			_, err := newTestGenerator(srv.URL).Generate(context.Background(), hosted.Prompt{User: "x"})
			if !errors.Is(err, tc.target) {
				t.Fatalf("expected %v, got %v", tc.target, err)
			}
		})
	}
}

func TestGenerator_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "c1", "choices": []any{}})
	}))
	defer srv.Close()

	_, err := newTestGenerator(srv.URL).Generate(context.Background(), hosted.Prompt{User: "x"})
	if !errors.Is(err, domain.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestGenerator_Identity(t *testing.T) {
	g := newTestGenerator("http://unused")
	if g.Provider() != "test" || g.Model() != "test-chat" {
		t.Errorf("unexpected identity %s/%s", g.Provider(), g.Model())
	}
}
