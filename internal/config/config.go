package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/siddheshmm/leadgen-cli/internal/scoring"
)

// Config holds the full application configuration.
type Config struct {
	Scoring    scoring.Rules    `yaml:"scoring" mapstructure:"scoring"`
	Pipeline   PipelineConfig   `yaml:"pipeline" mapstructure:"pipeline"`
	Identify   IdentifyConfig   `yaml:"identify" mapstructure:"identify"`
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Salesforce SalesforceConfig `yaml:"salesforce" mapstructure:"salesforce"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// PipelineConfig configures batch behavior.
type PipelineConfig struct {
	MaxResults        int `yaml:"max_results" mapstructure:"max_results"`
	EnrichConcurrency int `yaml:"enrich_concurrency" mapstructure:"enrich_concurrency"`
	EnrichTimeoutSecs int `yaml:"enrich_timeout_secs" mapstructure:"enrich_timeout_secs"`
	EnrichRetries     int `yaml:"enrich_retries" mapstructure:"enrich_retries"`
}

// IdentifyConfig configures the default identification query.
type IdentifyConfig struct {
	Titles      []string `yaml:"titles" mapstructure:"titles"`
	Keywords    []string `yaml:"keywords" mapstructure:"keywords"`
	Locations   []string `yaml:"locations" mapstructure:"locations"`
	Conferences []string `yaml:"conferences" mapstructure:"conferences"`
	RosterPath  string   `yaml:"roster_path" mapstructure:"roster_path"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// SalesforceConfig holds Salesforce JWT auth settings.
type SalesforceConfig struct {
	ClientID     string  `yaml:"client_id" mapstructure:"client_id"`
	Username     string  `yaml:"username" mapstructure:"username"`
	KeyPath      string  `yaml:"key_path" mapstructure:"key_path"`
	LoginURL     string  `yaml:"login_url" mapstructure:"login_url"`
	RateLimitRPS float64 `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "leadgen.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("pipeline.max_results", 100)
	v.SetDefault("pipeline.enrich_concurrency", 5)
	v.SetDefault("pipeline.enrich_timeout_secs", 10)
	v.SetDefault("pipeline.enrich_retries", 2)
	v.SetDefault("identify.titles", []string{"Toxicology", "Safety", "Preclinical"})
	v.SetDefault("identify.keywords", []string{"drug-induced liver injury", "hepatic", "3D"})
	v.SetDefault("identify.conferences", []string{"SOT", "AACR", "ISSX", "ACT"})
	v.SetDefault("salesforce.login_url", "https://login.salesforce.com")
	v.SetDefault("salesforce.rate_limit_rps", 5)
	v.SetDefault("scoring.weights.role_fit", scoring.DefaultRoleFitPoints)
	v.SetDefault("scoring.weights.funding_intent", scoring.DefaultFundingIntentPoints)
	v.SetDefault("scoring.weights.tech_usage", scoring.DefaultTechUsagePoints)
	v.SetDefault("scoring.weights.nams_adoption", scoring.DefaultNAMsPoints)
	v.SetDefault("scoring.weights.location_hub", scoring.DefaultLocationHubPoints)
	v.SetDefault("scoring.weights.scientific_intent", scoring.DefaultScientificIntentPoints)
	v.SetDefault("scoring.title_keywords", scoring.DefaultTitleKeywords())
	v.SetDefault("scoring.tech_tags", scoring.DefaultTechTags())
	v.SetDefault("scoring.hub_locations", scoring.DefaultHubLocations())
	v.SetDefault("scoring.funding_intent_stages", scoring.DefaultFundingIntentStages())
	v.SetDefault("scoring.publication_keywords", scoring.DefaultPublicationKeywords())
	v.SetDefault("scoring.lookback_months", scoring.DefaultLookbackMonths)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate fails fast on configuration no run should start with.
func (c *Config) Validate() error {
	if c.Pipeline.MaxResults < 0 {
		return eris.Errorf("config: max_results must be >= 0, got %d", c.Pipeline.MaxResults)
	}
	if c.Pipeline.EnrichConcurrency < 1 {
		return eris.Errorf("config: enrich_concurrency must be >= 1, got %d", c.Pipeline.EnrichConcurrency)
	}
	if c.Pipeline.EnrichTimeoutSecs < 1 {
		return eris.Errorf("config: enrich_timeout_secs must be >= 1, got %d", c.Pipeline.EnrichTimeoutSecs)
	}
	if c.Pipeline.EnrichRetries < 0 {
		return eris.Errorf("config: enrich_retries must be >= 0, got %d", c.Pipeline.EnrichRetries)
	}
	if err := c.Scoring.Validate(); err != nil {
		return eris.Wrap(err, "config: scoring rules")
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
