package main

import (
	"context"
	"os"
	"time"

	"github.com/k-capehart/go-salesforce/v3"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/siddheshmm/leadgen-cli/internal/enrich"
	"github.com/siddheshmm/leadgen-cli/internal/identify"
	"github.com/siddheshmm/leadgen-cli/internal/pipeline"
	"github.com/siddheshmm/leadgen-cli/internal/resilience"
	"github.com/siddheshmm/leadgen-cli/internal/scoring"
	"github.com/siddheshmm/leadgen-cli/internal/store"
	sfpkg "github.com/siddheshmm/leadgen-cli/pkg/salesforce"
)

// pipelineEnv holds the initialized store, scoring engine, and pipeline
// shared by the run and serve commands.
type pipelineEnv struct {
	Store    store.Store
	Engine   *scoring.Engine
	Pipeline *pipeline.Pipeline
}

// Close releases resources held by the pipeline environment.
func (pe *pipelineEnv) Close() {
	if pe.Store != nil {
		_ = pe.Store.Close()
	}
}

// initPipeline wires the identification sources, the enrichment chain, the
// scoring engine, and the store into a pipeline. Callers should defer
// env.Close().
func initPipeline(ctx context.Context) (*pipelineEnv, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	engine, err := initScoring()
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	sources := []identify.Source{
		identify.NewProfileDirectory(identify.DemoProfiles()),
		identify.NewPublicationDirectory(identify.DemoPapers()),
		identify.NewConferenceDirectory(identify.DemoAttendees()),
	}
	if cfg.Identify.RosterPath != "" {
		sources = append(sources, identify.NewRosterFile(cfg.Identify.RosterPath))
	}

	chain := enrich.DefaultChain().WithRetry(resilience.RetryConfig{
		MaxAttempts: cfg.Pipeline.EnrichRetries + 1,
	})

	p, err := pipeline.New(identify.NewEngine(sources...), chain, engine, st, pipeline.Options{
		MaxResults:        cfg.Pipeline.MaxResults,
		EnrichConcurrency: cfg.Pipeline.EnrichConcurrency,
		EnrichTimeout:     time.Duration(cfg.Pipeline.EnrichTimeoutSecs) * time.Second,
	})
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	return &pipelineEnv{Store: st, Engine: engine, Pipeline: p}, nil
}

// initStore opens the configured database backend and runs migrations.
func initStore(ctx context.Context) (store.Store, error) {
	var poolCfg *store.PoolConfig
	if cfg.Store.MaxConns > 0 || cfg.Store.MinConns > 0 {
		poolCfg = &store.PoolConfig{MaxConns: cfg.Store.MaxConns, MinConns: cfg.Store.MinConns}
	}
	return store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL, poolCfg)
}

// initScoring builds the engine from the configured rules, or from the
// --rules file when one was given.
func initScoring() (*scoring.Engine, error) {
	rules := cfg.Scoring
	if rulesFile != "" {
		loaded, err := scoring.LoadRulesFile(rulesFile)
		if err != nil {
			return nil, err
		}
		rules = loaded
	}
	return scoring.New(rules)
}

// initSalesforce authenticates with the configured JWT key pair and wraps
// the client with the rate limit and a circuit breaker.
func initSalesforce() (sfpkg.Client, error) {
	if cfg.Salesforce.ClientID == "" {
		return nil, eris.New("salesforce client ID is required (LEADGEN_SALESFORCE_CLIENT_ID)")
	}

	pemData, err := os.ReadFile(cfg.Salesforce.KeyPath)
	if err != nil {
		return nil, eris.Wrap(err, "read salesforce JWT private key")
	}

	sf, err := salesforce.Init(salesforce.Creds{
		Domain:         cfg.Salesforce.LoginURL,
		Username:       cfg.Salesforce.Username,
		ConsumerKey:    cfg.Salesforce.ClientID,
		ConsumerRSAPem: string(pemData),
	})
	if err != nil {
		return nil, eris.Wrap(err, "init salesforce")
	}

	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		OnStateChange: func(from, to resilience.CircuitState) {
			zap.L().Warn("salesforce circuit state changed",
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return sfpkg.NewClient(sf,
		sfpkg.WithRateLimit(cfg.Salesforce.RateLimitRPS),
		sfpkg.WithCircuitBreaker(breaker),
	), nil
}
