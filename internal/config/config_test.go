package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/siddheshmm/leadgen-cli/internal/scoring"
)

// chtmp runs the test from an empty directory so no config.yaml is found.
func chtmp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chtmp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "leadgen.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 100, cfg.Pipeline.MaxResults)
	assert.Equal(t, 5, cfg.Pipeline.EnrichConcurrency)
	assert.Equal(t, 10, cfg.Pipeline.EnrichTimeoutSecs)
	assert.Equal(t, 2, cfg.Pipeline.EnrichRetries)
	assert.Equal(t, []string{"Toxicology", "Safety", "Preclinical"}, cfg.Identify.Titles)
	assert.Equal(t, []string{"SOT", "AACR", "ISSX", "ACT"}, cfg.Identify.Conferences)
	assert.Equal(t, "https://login.salesforce.com", cfg.Salesforce.LoginURL)
	assert.InDelta(t, 5, cfg.Salesforce.RateLimitRPS, 0.001)

	// The scoring rule table defaults land fully populated.
	assert.Equal(t, scoring.DefaultRoleFitPoints, cfg.Scoring.Weights.RoleFit)
	assert.Equal(t, scoring.DefaultScientificIntentPoints, cfg.Scoring.Weights.ScientificIntent)
	assert.Equal(t, scoring.DefaultTitleKeywords(), cfg.Scoring.TitleKeywords)
	assert.Equal(t, scoring.DefaultHubLocations(), cfg.Scoring.HubLocations)
	assert.Equal(t, scoring.DefaultLookbackMonths, cfg.Scoring.LookbackMonths)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chtmp(t)

	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/leads
log:
  level: debug
  format: console
server:
  port: 9090
pipeline:
  max_results: 25
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/leads", cfg.Store.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 25, cfg.Pipeline.MaxResults)
	// Defaults still apply for unset values
	assert.Equal(t, 5, cfg.Pipeline.EnrichConcurrency)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chtmp(t)

	yaml := `
store:
  driver: sqlite
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("LEADGEN_STORE_DRIVER", "postgres")
	t.Setenv("LEADGEN_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chtmp(t)

	t.Setenv("LEADGEN_SERVER_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config that passes validation, for tests to break
// one field at a time.
func validDefaults() *Config {
	return &Config{
		Scoring: scoring.DefaultRules(),
		Pipeline: PipelineConfig{
			MaxResults:        100,
			EnrichConcurrency: 5,
			EnrichTimeoutSecs: 10,
			EnrichRetries:     2,
		},
		Server: ServerConfig{Port: 8080},
	}
}

func TestValidate_Defaults(t *testing.T) {
	assert.NoError(t, validDefaults().Validate())
}

func TestValidate_NegativeMaxResults(t *testing.T) {
	cfg := validDefaults()
	cfg.Pipeline.MaxResults = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_results")
}

func TestValidate_ZeroMaxResultsIsUnlimited(t *testing.T) {
	cfg := validDefaults()
	cfg.Pipeline.MaxResults = 0

	assert.NoError(t, cfg.Validate())
}

func TestValidate_ConcurrencyBounds(t *testing.T) {
	cfg := validDefaults()
	cfg.Pipeline.EnrichConcurrency = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enrich_concurrency")
}

func TestValidate_EnrichTimeout(t *testing.T) {
	cfg := validDefaults()
	cfg.Pipeline.EnrichTimeoutSecs = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enrich_timeout_secs")
}

func TestValidate_NegativeRetries(t *testing.T) {
	cfg := validDefaults()
	cfg.Pipeline.EnrichRetries = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enrich_retries")
}

func TestValidate_BadScoringRules(t *testing.T) {
	cfg := validDefaults()
	cfg.Scoring.TitleKeywords = nil

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scoring rules")
}
