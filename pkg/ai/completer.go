package ai

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/interview-coach/pkg/config"
)

// CompletionOptions bounds a single completion call
type CompletionOptions struct {
	Temperature float64
	MaxTokens   int
}

// Completer is any text-completion provider
type Completer interface {
	// Name identifies the provider in logs and stored results
	Name() string
	// Complete sends a system and user prompt and returns the raw reply text
	Complete(ctx context.Context, systemPrompt, userPrompt string, opts CompletionOptions) (string, error)
}

// StatusError is returned when a provider answers with a non-2xx status
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// NewCompleters builds the provider chain in configured order.
// Providers without an API key are skipped.
func NewCompleters(cfg *config.AIConfig, logger *zap.Logger) []Completer {
	completers := make([]Completer, 0, len(cfg.Providers))
	for _, name := range cfg.Providers {
		p := cfg.Provider(name)
		if p.APIKey == "" {
			if logger != nil {
				logger.Warn("AI provider skipped, no API key configured", zap.String("provider", name))
			}
			continue
		}
		switch name {
		case config.ProviderGemini:
			completers = append(completers, NewGeminiClient(p))
		default:
			completers = append(completers, NewChatClient(p))
		}
	}
	if logger != nil {
		logger.Info("AI provider chain ready", zap.Int("providers", len(completers)))
	}
	return completers
}

func statusError(provider string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &StatusError{
		Provider:   provider,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}
