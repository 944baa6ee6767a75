package recommend

import (
	"context"
	"errors"
	"time"

	"career-backend/internal/careers"
	"career-backend/internal/llm"
	"career-backend/internal/shared/metrics"
	"career-backend/internal/shared/telemetry"
)

// DefaultProviderTimeout bounds a single provider call.
const DefaultProviderTimeout = 8 * time.Second

// SourceFallback is the Result.Source of a locally generated recommendation.
const SourceFallback = "fallback"

// Outcome classifies one provider attempt.
type Outcome string

const (
	OutcomeSkipped   Outcome = "skipped"
	OutcomeFailed    Outcome = "failed"
	OutcomeSucceeded Outcome = "succeeded"
)

// Provider is one entry of the chain. A nil Client marks the provider as not configured.
type Provider struct {
	Name   string
	Client llm.Completer
}

// Attempt records what happened when the chain reached a provider.
type Attempt struct {
	Provider string
	Outcome  Outcome
	Reason   string
}

// Result is a normalized recommendation plus where it came from.
type Result struct {
	Recommendation careers.Recommendation
	Source         string
	Attempts       []Attempt
}

// Chain tries providers in order and falls back to careers.Generate.
type Chain struct {
	Providers []Provider
	Timeout   time.Duration
}

// NewChain builds a chain with the given per-provider timeout.
func NewChain(timeout time.Duration, providers ...Provider) *Chain {
	return &Chain{Providers: providers, Timeout: timeout}
}

// Generate returns a recommendation for in. It fails only when ctx is done.
func (c *Chain) Generate(ctx context.Context, in careers.Input) (Result, error) {
	var attempts []Attempt
	var providers []Provider
	if c != nil {
		providers = c.Providers
	}
	prompt := BuildPrompt(in)

	for _, p := range providers {
		if err := ctx.Err(); err != nil {
			return Result{Attempts: attempts}, err
		}
		if p.Client == nil {
			attempts = append(attempts, Attempt{Provider: p.Name, Outcome: OutcomeSkipped, Reason: llm.ErrNotConfigured.Error()})
			continue
		}

		rec, err := c.try(ctx, p, prompt)
		if err == nil {
			attempts = append(attempts, Attempt{Provider: p.Name, Outcome: OutcomeSucceeded})
			return Result{Recommendation: careers.Normalize(rec), Source: p.Name, Attempts: attempts}, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{Attempts: attempts}, ctxErr
		}

		attempts = append(attempts, Attempt{Provider: p.Name, Outcome: OutcomeFailed, Reason: err.Error()})
		metrics.IncProviderFailure(p.Name)
		telemetry.Warn("recommend.provider_failed", map[string]any{
			"provider": p.Name,
			"error":    err.Error(),
			"timeout":  errors.Is(err, context.DeadlineExceeded),
		})
	}

	return Result{
		Recommendation: careers.Normalize(careers.Generate(in)),
		Source:         SourceFallback,
		Attempts:       attempts,
	}, nil
}

func (c *Chain) try(ctx context.Context, p Provider, prompt string) (careers.Recommendation, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	text, err := p.Client.Complete(callCtx, prompt)
	if err != nil {
		return careers.Recommendation{}, err
	}
	return ParseRecommendation(text)
}

func (c *Chain) timeout() time.Duration {
	if c == nil || c.Timeout <= 0 {
		return DefaultProviderTimeout
	}
	return c.Timeout
}
