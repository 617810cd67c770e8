package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/johnquangdev/interview-coach/pkg/config"
)

func TestChatClient_Complete(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if r.URL.Path != "/openai/v1/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected authorization %q", got)
		}
		var payload ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload.Model != "llama-test" || payload.MaxTokens != 1000 || payload.Temperature != 0.3 {
			t.Fatalf("unexpected payload %+v", payload)
		}
		if len(payload.Messages) != 2 || payload.Messages[0].Role != "system" || payload.Messages[1].Content != "user prompt" {
			t.Fatalf("unexpected messages %+v", payload.Messages)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"content": `{"ok":true}`}}},
		})
	}))
	defer ts.Close()

	client := NewChatClient(config.ProviderConfig{Name: "groq", APIKey: "test-key", BaseURL: ts.URL + "/openai/v1/", Model: "llama-test"})
	out, err := client.Complete(context.Background(), "system prompt", "user prompt", CompletionOptions{Temperature: 0.3, MaxTokens: 1000})
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if out != `{"ok":true}` {
		t.Fatalf("unexpected content %s", out)
	}
	if client.Name() != "groq" {
		t.Fatalf("unexpected name %s", client.Name())
	}
}

func TestChatClient_StatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("rate limited"))
	}))
	defer ts.Close()

	client := NewChatClient(config.ProviderConfig{Name: "openai", APIKey: "k", BaseURL: ts.URL})
	_, err := client.Complete(context.Background(), "s", "u", CompletionOptions{})

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusTooManyRequests || statusErr.Body != "rate limited" {
		t.Fatalf("unexpected status error %+v", statusErr)
	}
}

func TestChatClient_EmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer ts.Close()

	client := NewChatClient(config.ProviderConfig{Name: "groq", BaseURL: ts.URL})
	if _, err := client.Complete(context.Background(), "s", "u", CompletionOptions{}); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestChatClient_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	client := NewChatClient(config.ProviderConfig{Name: "groq", BaseURL: ts.URL, Timeout: 20 * time.Millisecond})
	if _, err := client.Complete(context.Background(), "s", "u", CompletionOptions{}); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestGeminiClient_Complete(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/gemini-test:generateContent" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "g-key" {
			t.Fatalf("missing api key")
		}
		var payload geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload.SystemInstruction == nil || payload.SystemInstruction.Parts[0].Text != "system prompt" {
			t.Fatalf("missing system instruction")
		}
		if payload.GenerationConfig["maxOutputTokens"] != float64(500) {
			t.Fatalf("unexpected generation config %v", payload.GenerationConfig)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"a\":1}"}]}}]}`))
	}))
	defer ts.Close()

	client := NewGeminiClient(config.ProviderConfig{APIKey: "g-key", BaseURL: ts.URL, Model: "gemini-test"})
	out, err := client.Complete(context.Background(), "system prompt", "user prompt", CompletionOptions{MaxTokens: 500})
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if out != `{"a":1}` {
		t.Fatalf("unexpected content %s", out)
	}
	if client.Name() != config.ProviderGemini {
		t.Fatalf("unexpected name %s", client.Name())
	}
}

func TestGeminiClient_NoCandidates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer ts.Close()

	client := NewGeminiClient(config.ProviderConfig{BaseURL: ts.URL, Model: "m"})
	_, err := client.Complete(context.Background(), "s", "u", CompletionOptions{})
	if err == nil || !strings.Contains(err.Error(), "empty response") {
		t.Fatalf("expected empty response error, got %v", err)
	}
}

func TestNewCompleters_SkipsMissingKeys(t *testing.T) {
	cfg := &config.AIConfig{
		Providers:    []string{config.ProviderGroq, config.ProviderOpenAI, config.ProviderGemini},
		OpenAIAPIKey: "sk",
		GeminiAPIKey: "g",
	}
	completers := NewCompleters(cfg, nil)
	if len(completers) != 2 {
		t.Fatalf("expected 2 completers, got %d", len(completers))
	}
	if completers[0].Name() != config.ProviderOpenAI || completers[1].Name() != config.ProviderGemini {
		t.Fatalf("unexpected order %s, %s", completers[0].Name(), completers[1].Name())
	}
	if _, ok := completers[1].(*GeminiClient); !ok {
		t.Fatalf("expected gemini client, got %T", completers[1])
	}
}
