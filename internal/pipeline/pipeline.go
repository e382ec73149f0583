// Package pipeline sequences the three lead-generation stages: identification
// produces bare records, enrichment fills optional fields, scoring and
// ranking order the result. The pipeline owns stage ordering and the
// result-count cutoff and nothing else.
package pipeline

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/siddheshmm/leadgen-cli/internal/enrich"
	"github.com/siddheshmm/leadgen-cli/internal/model"
	"github.com/siddheshmm/leadgen-cli/internal/rank"
	"github.com/siddheshmm/leadgen-cli/internal/scoring"
	"github.com/siddheshmm/leadgen-cli/internal/store"
)

// ErrConfig is returned for malformed pipeline options. It fails the run
// before any stage starts.
var ErrConfig = eris.New("pipeline: invalid configuration")

// Identifier produces candidate leads for a query.
type Identifier interface {
	Identify(ctx context.Context, q model.Query) ([]model.Lead, error)
}

// Options bound the pipeline's resource use and result size.
type Options struct {
	// MaxResults truncates the ranked output. 0 means unlimited.
	MaxResults int

	// EnrichConcurrency caps simultaneous enrichment calls. 0 means 5.
	EnrichConcurrency int

	// EnrichTimeout bounds one candidate's enrichment. 0 means 10s.
	EnrichTimeout time.Duration
}

func (o Options) validate() error {
	if o.MaxResults < 0 {
		return eris.Wrapf(ErrConfig, "max results must not be negative, got %d", o.MaxResults)
	}
	if o.EnrichConcurrency < 0 {
		return eris.Wrapf(ErrConfig, "enrich concurrency must not be negative, got %d", o.EnrichConcurrency)
	}
	if o.EnrichTimeout < 0 {
		return eris.Wrapf(ErrConfig, "enrich timeout must not be negative, got %v", o.EnrichTimeout)
	}
	return nil
}

func (o Options) withDefaults() Options {
	if o.EnrichConcurrency == 0 {
		o.EnrichConcurrency = 5
	}
	if o.EnrichTimeout == 0 {
		o.EnrichTimeout = 10 * time.Second
	}
	return o
}

// Result is the outcome of one pipeline run.
type Result struct {
	RunID   string             `json:"run_id,omitempty"`
	Leads   []model.RankedLead `json:"leads"`
	Summary model.RunSummary   `json:"summary"`
}

// Pipeline wires the stages together. A nil store disables persistence;
// everything else is required.
type Pipeline struct {
	identifier Identifier
	enricher   enrich.Enricher
	ranker     *rank.Ranker
	engine     *scoring.Engine
	store      store.Store
	opts       Options
}

// New builds a pipeline, validating the options up front.
func New(identifier Identifier, enricher enrich.Enricher, engine *scoring.Engine, st store.Store, opts Options) (*Pipeline, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Pipeline{
		identifier: identifier,
		enricher:   enricher,
		ranker:     rank.New(engine),
		engine:     engine,
		store:      st,
		opts:       opts.withDefaults(),
	}, nil
}

// Run executes identify, enrich, score and rank for one query. Enrichment
// failures degrade individual leads; only identification failure or
// cancellation fails the run.
func (p *Pipeline) Run(ctx context.Context, q model.Query) (*Result, error) {
	var runID string
	if p.store != nil {
		run, err := p.store.CreateRun(ctx, q)
		if err != nil {
			return nil, eris.Wrap(err, "pipeline: create run")
		}
		runID = run.ID
	}
	return p.execute(ctx, q, runID)
}

// Start persists a queued run and executes the stages in the background.
// The given context bounds the whole background run, so callers pass a
// long-lived one, not a request context. Progress is polled through the
// store, which Start requires.
func (p *Pipeline) Start(ctx context.Context, q model.Query) (*model.Run, error) {
	if p.store == nil {
		return nil, eris.Wrap(ErrConfig, "pipeline: background runs need a store")
	}
	run, err := p.store.CreateRun(ctx, q)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: create run")
	}

	go func() {
		if _, err := p.execute(ctx, q, run.ID); err != nil {
			zap.L().Error("background run failed",
				zap.String("run_id", run.ID),
				zap.Error(err),
			)
		}
	}()

	return run, nil
}

func (p *Pipeline) execute(ctx context.Context, q model.Query, runID string) (*Result, error) {
	log := zap.L().With(zap.String("component", "pipeline"))
	log.Info("starting run")

	result := &Result{RunID: runID}

	setStatus := func(status model.RunStatus) {
		if p.store == nil {
			return
		}
		if err := p.store.UpdateRunStatus(ctx, runID, status); err != nil {
			log.Warn("failed to update run status", zap.Error(err))
		}
	}

	trackPhase := func(name string, fn func() (int, error)) error {
		start := time.Now()
		leads, err := fn()
		phase := model.PhaseResult{
			Name:     name,
			Status:   model.PhaseStatusComplete,
			Duration: time.Since(start).Milliseconds(),
			Leads:    leads,
		}
		if err != nil {
			phase.Status = model.PhaseStatusFailed
			phase.Error = err.Error()
			log.Error("phase failed",
				zap.String("phase", name),
				zap.Int64("duration_ms", phase.Duration),
				zap.Error(err),
			)
		} else {
			log.Info("phase complete",
				zap.String("phase", name),
				zap.Int64("duration_ms", phase.Duration),
				zap.Int("leads", leads),
			)
		}
		result.Summary.Phases = append(result.Summary.Phases, phase)
		return err
	}

	fail := func(cause error) (*Result, error) {
		if p.store != nil {
			if err := p.store.FailRun(ctx, runID, cause); err != nil {
				log.Warn("failed to mark run failed", zap.Error(err))
			}
		}
		return result, cause
	}

	// Identification.
	setStatus(model.RunStatusIdentifying)
	var identified []model.Lead
	err := trackPhase("identify", func() (int, error) {
		leads, err := p.identifier.Identify(ctx, q)
		if err != nil {
			return 0, err
		}
		identified = leads
		return len(leads), nil
	})
	if err != nil {
		return fail(eris.Wrap(err, "pipeline: identify"))
	}

	// Enrichment. Bounded, independent per-candidate calls; a failure or
	// timeout degrades that one candidate and never cancels its siblings.
	setStatus(model.RunStatusEnriching)
	enriched := make([]model.Lead, len(identified))
	_ = trackPhase("enrich", func() (int, error) {
		g := new(errgroup.Group)
		g.SetLimit(p.opts.EnrichConcurrency)

		for i, lead := range identified {
			g.Go(func() error {
				callCtx, cancel := context.WithTimeout(ctx, p.opts.EnrichTimeout)
				defer cancel()

				out, err := p.enricher.Enrich(callCtx, lead)
				if err != nil {
					log.Warn("enrichment degraded",
						zap.String("lead", lead.SourceID),
						zap.Error(err),
					)
					if out.SourceID != lead.SourceID {
						// The enricher returned nothing usable.
						out = lead
					}
				}
				enriched[i] = out
				return nil
			})
		}
		_ = g.Wait()
		return len(enriched), nil
	})
	if err := ctx.Err(); err != nil {
		return fail(eris.Wrap(err, "pipeline: canceled"))
	}

	// Scoring and ranking. Pure and in-process; runs only after every
	// enrichment call has settled. Truncation happens after ranking so a
	// late high scorer is never cut.
	setStatus(model.RunStatusScoring)
	var ranked []model.RankedLead
	_ = trackPhase("rank", func() (int, error) {
		ranked = p.ranker.Rank(p.engine.ScoreAll(enriched))
		if p.opts.MaxResults > 0 && len(ranked) > p.opts.MaxResults {
			ranked = ranked[:p.opts.MaxResults]
		}
		return len(ranked), nil
	})

	result.Leads = ranked
	phases := result.Summary.Phases
	result.Summary = model.Summarize(ranked)
	result.Summary.Phases = phases

	if p.store != nil {
		if err := p.store.SaveLeads(ctx, runID, ranked); err != nil {
			return fail(eris.Wrap(err, "pipeline: save leads"))
		}
		if err := p.store.CompleteRun(ctx, runID, result.Summary); err != nil {
			return fail(eris.Wrap(err, "pipeline: complete run"))
		}
	}

	log.Info("run complete",
		zap.Int("leads", len(ranked)),
		zap.Int("high_score", result.Summary.HighScore),
	)
	return result, nil
}
