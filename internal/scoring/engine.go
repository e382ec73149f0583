package scoring

import (
	"time"

	"github.com/siddheshmm/leadgen-cli/internal/model"
)

// Engine scores leads against a fixed set of rules. It is stateless apart
// from the rules and the clock, and safe for concurrent use.
type Engine struct {
	rules Rules
	now   func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithNow fixes the clock used for the publication lookback window.
func WithNow(t time.Time) Option {
	return func(e *Engine) {
		e.now = func() time.Time { return t }
	}
}

// New validates the rules and builds an engine. Invalid rules fail here,
// before any lead is processed.
func New(rules Rules, opts ...Option) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{rules: rules, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Rules returns the rules the engine was built with.
func (e *Engine) Rules() Rules {
	return e.rules
}

// registry returns the extractors in fixed priority order. Breakdown order
// follows this order, never contribution magnitude, so repeated runs emit
// identical output.
func (e *Engine) registry(now time.Time) []extractor {
	r := e.rules
	return []extractor{
		{SignalRoleFit, func(l model.Lead) (int, string) {
			return roleFit(l, r.TitleKeywords, r.Weights.RoleFit)
		}},
		{SignalFundingIntent, func(l model.Lead) (int, string) {
			return fundingIntent(l, r.FundingIntentStages, r.Weights.FundingIntent)
		}},
		{SignalTechUsage, func(l model.Lead) (int, string) {
			return techUsage(l, r.TechTags, r.Weights.TechUsage)
		}},
		{SignalNAMsAdoption, func(l model.Lead) (int, string) {
			return namsAdoption(l, r.Weights.NAMsAdoption)
		}},
		{SignalLocationHub, func(l model.Lead) (int, string) {
			return locationHub(l, r.HubLocations, r.Weights.LocationHub)
		}},
		{SignalScientificIntent, func(l model.Lead) (int, string) {
			return scientificIntent(l, r.PublicationKeywords, r.LookbackMonths, r.Weights.ScientificIntent, now)
		}},
	}
}

// Score runs every extractor over the lead, sums their points, and clamps
// the sum to [0, 100]. Clamping is the last step: raw sums can exceed 100
// (all six defaults together reach 125). The breakdown lists only signals
// that contributed points.
func (e *Engine) Score(lead model.Lead) model.ScoredLead {
	now := e.now()

	total := 0
	var breakdown []model.SignalScore
	for _, ex := range e.registry(now) {
		points, reason := ex.extract(lead)
		if points <= 0 {
			continue
		}
		total += points
		breakdown = append(breakdown, model.SignalScore{Signal: ex.signal, Points: points, Reason: reason})
	}

	if total > 100 {
		total = 100
	}

	return model.ScoredLead{Lead: lead, Score: total, Breakdown: breakdown}
}

// ScoreAll scores a batch in input order.
func (e *Engine) ScoreAll(leads []model.Lead) []model.ScoredLead {
	scored := make([]model.ScoredLead, 0, len(leads))
	for _, l := range leads {
		scored = append(scored, e.Score(l))
	}
	return scored
}
