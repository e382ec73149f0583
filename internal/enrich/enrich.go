// Package enrich fills optional lead fields from company-intelligence
// directories. Every step is append-only: a field already populated upstream
// is never overwritten, and a failing step degrades the one lead instead of
// failing the batch.
package enrich

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/siddheshmm/leadgen-cli/internal/model"
	"github.com/siddheshmm/leadgen-cli/internal/resilience"
)

// Enricher fills one attribute group on a lead, returning a new value.
// Implementations must leave already-known fields untouched.
type Enricher interface {
	// Name returns the step name used in logs.
	Name() string

	// Enrich returns a copy of the lead with the step's fields filled in.
	Enrich(ctx context.Context, lead model.Lead) (model.Lead, error)
}

// Chain runs enrichment steps in order, carrying the lead forward through
// each. A step error is logged and skipped; the fields filled so far are
// kept. Steps run with bounded retries so a flaky source gets another try
// inside the caller's deadline.
type Chain struct {
	steps []Enricher
	retry resilience.RetryConfig
}

// NewChain builds a chain over the given steps. Steps do not retry unless
// WithRetry is applied.
func NewChain(steps ...Enricher) *Chain {
	return &Chain{
		steps: steps,
		retry: resilience.RetryConfig{MaxAttempts: 1},
	}
}

// DefaultChain wires the built-in intelligence directories in their
// canonical order: email, location, funding, technographics.
func DefaultChain() *Chain {
	return NewChain(
		NewEmailFinder(),
		NewLocationIntel(),
		NewFundingIntel(),
		NewTechnographicIntel(),
	)
}

// WithRetry sets the per-step retry policy.
func (c *Chain) WithRetry(cfg resilience.RetryConfig) *Chain {
	c.retry = cfg
	return c
}

// Enrich implements Enricher over the whole chain. It returns an error only
// when the context ends before all steps have run; step failures degrade the
// lead and are not surfaced.
func (c *Chain) Enrich(ctx context.Context, lead model.Lead) (model.Lead, error) {
	log := zap.L().With(
		zap.String("component", "enrich"),
		zap.String("lead", lead.SourceID),
	)

	current := lead
	for _, step := range c.steps {
		if err := ctx.Err(); err != nil {
			return current, eris.Wrapf(err, "enrich: canceled before %s", step.Name())
		}

		next, err := resilience.DoVal(ctx, c.retry, func(ctx context.Context) (model.Lead, error) {
			return step.Enrich(ctx, current)
		})
		if err != nil {
			log.Warn("enrichment step failed, degrading lead",
				zap.String("step", step.Name()),
				zap.Error(err),
			)
			continue
		}
		current = next
	}
	return current, nil
}

// Name implements Enricher.
func (c *Chain) Name() string { return "chain" }
