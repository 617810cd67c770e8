package assessment

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/interview-coach/pkg/ai"
)

// ResultEvaluator produces an AI evaluation, or nil when none is available
type ResultEvaluator interface {
	Evaluate(ctx context.Context, questionText, transcript string) *StructuredResult
}

// Evaluator tries each provider in order until one returns a valid evaluation
type Evaluator struct {
	providers []ai.Completer
	parser    *Parser
	opts      ai.CompletionOptions
	logger    *zap.Logger
}

// NewEvaluator creates an evaluator over an ordered provider chain
func NewEvaluator(providers []ai.Completer, opts ai.CompletionOptions, logger *zap.Logger) *Evaluator {
	return &Evaluator{
		providers: providers,
		parser:    NewParser(),
		opts:      opts,
		logger:    logger,
	}
}

// Evaluate returns the first schema-valid provider result. Provider failures are
// logged and never returned; nil means the caller should fall back to rule-based scoring.
func (e *Evaluator) Evaluate(ctx context.Context, questionText, transcript string) *StructuredResult {
	if len(e.providers) == 0 {
		return nil
	}

	userPrompt := buildUserPrompt(questionText, transcript)
	for _, provider := range e.providers {
		if ctx.Err() != nil {
			if e.logger != nil {
				e.logger.Warn("AI evaluation stopped, context done", zap.Error(ctx.Err()))
			}
			return nil
		}

		start := time.Now()
		result, err := e.try(ctx, provider, userPrompt)
		if err != nil {
			if e.logger != nil {
				e.logger.Warn("⚠️ AI provider evaluation failed",
					zap.String("provider", provider.Name()),
					zap.Duration("elapsed", time.Since(start)),
					zap.Error(err),
				)
			}
			continue
		}

		result.Provider = provider.Name()
		if e.logger != nil {
			e.logger.Info("✅ AI evaluation succeeded",
				zap.String("provider", provider.Name()),
				zap.Float64("overall_score", result.OverallScore),
				zap.Duration("elapsed", time.Since(start)),
			)
		}
		return result
	}
	return nil
}

func (e *Evaluator) try(ctx context.Context, provider ai.Completer, userPrompt string) (result *StructuredResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			result, err = nil, fmt.Errorf("provider panic: %v", p)
		}
	}()

	raw, err := provider.Complete(ctx, systemPrompt, userPrompt, e.opts)
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}
	return e.parser.Parse(raw)
}
