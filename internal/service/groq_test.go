package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/meguminnnnnnnnn/go-openai"

	"github.com/polyglotta/polyglotta/internal/domain"
)

func newGroqServer(t *testing.T, handlerFn http.HandlerFunc) *GroqService {
	t.Helper()
	server := httptest.NewServer(handlerFn)
	t.Cleanup(server.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL
	return &GroqService{
		client: openai.NewClientWithConfig(cfg),
		model:  "test-model",
		apiKey: "test-key",
	}
}

func completionBody(content string) string {
	return `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"created": 1700000000,
		"model": "test-model",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": ` + jsonQuote(content) + `}, "finish_reason": "stop"}]
	}`
}

func jsonQuote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestGroqTranslate(t *testing.T) {
	svc := newGroqServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("request path = %q", r.URL.Path)
		}
		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("model = %q", req.Model)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("unexpected message layout: %+v", req.Messages)
		}
		if !strings.Contains(req.Messages[1].Content, "Spanish") || !strings.Contains(req.Messages[1].Content, "Hola") {
			t.Errorf("user prompt missing language or text: %q", req.Messages[1].Content)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionBody("  Hello  \n")))
	})

	out, err := svc.Translate(context.Background(), "Hola", "es", "en")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if out != "Hello" {
		t.Errorf("translation = %q, want trimmed %q", out, "Hello")
	}
}

func TestGroqEmptyChoices(t *testing.T) {
	svc := newGroqServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "chatcmpl-1", "object": "chat.completion", "created": 1700000000, "model": "test-model", "choices": []}`))
	})

	_, err := svc.Translate(context.Background(), "Hola", "es", "en")
	if !errors.Is(err, domain.ErrMalformedResponse) {
		t.Fatalf("expected malformed-response error, got %v", err)
	}
}

func TestGroqEmptyCompletion(t *testing.T) {
	svc := newGroqServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionBody("   ")))
	})

	_, err := svc.Translate(context.Background(), "Hola", "es", "en")
	if !errors.Is(err, domain.ErrMalformedResponse) {
		t.Fatalf("expected malformed-response error, got %v", err)
	}
}

func TestGroqStatusClassification(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusTooManyRequests, domain.ErrBackendRejected},
		{http.StatusInternalServerError, domain.ErrBackendUnavailable},
	}
	for _, tt := range tests {
		svc := newGroqServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(tt.status)
			w.Write([]byte(`{"error": {"message": "nope", "type": "server_error"}}`))
		})

		_, err := svc.Translate(context.Background(), "Hola", "es", "en")
		if !errors.Is(err, tt.want) {
			t.Errorf("status %d classified as %v, want %v", tt.status, err, tt.want)
		}
	}
}

func TestGroqSimplifyUnknownTarget(t *testing.T) {
	svc := newGroqServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		// Unknown codes fall back to English in the prompt.
		if !strings.Contains(req.Messages[1].Content, "English") {
			t.Errorf("prompt did not fall back to English: %q", req.Messages[1].Content)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionBody("simple")))
	})

	out, err := svc.Simplify(context.Background(), "complicated", "xx")
	if err != nil {
		t.Fatalf("Simplify failed: %v", err)
	}
	if out != "simple" {
		t.Errorf("simplified = %q", out)
	}
}

func TestGroqUnconfigured(t *testing.T) {
	svc := NewGroqService("", "test-model")
	if _, err := svc.Translate(context.Background(), "Hola", "es", "en"); !errors.Is(err, domain.ErrNotConfigured) {
		t.Fatalf("expected not-configured error, got %v", err)
	}
	if _, err := svc.Transcribe(context.Background(), []byte("audio"), "en"); !errors.Is(err, domain.ErrNotConfigured) {
		t.Fatalf("expected not-configured error, got %v", err)
	}
}

func TestShortLanguageCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"auto", ""},
		{"en", "en"},
		{"pt-br", "pt"},
		{"zh-cn", "zh"},
	}
	for _, tt := range tests {
		if got := shortLanguageCode(tt.in); got != tt.want {
			t.Errorf("shortLanguageCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
