// Package scoring computes the deterministic, explainable propensity-to-buy
// score for a lead. Trigger sets and point weights are data, not code, so
// the signal table can change without touching the engine.
package scoring

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Default points per signal.
const (
	DefaultRoleFitPoints          = 30
	DefaultFundingIntentPoints    = 20
	DefaultTechUsagePoints        = 15
	DefaultNAMsPoints             = 10
	DefaultLocationHubPoints      = 10
	DefaultScientificIntentPoints = 40

	// DefaultLookbackMonths is the trailing publication window.
	DefaultLookbackMonths = 24
)

// ErrBadRules marks configuration a run must not start with.
var ErrBadRules = eris.New("scoring: invalid rules")

// DefaultTitleKeywords returns the role-fit title keyword set.
func DefaultTitleKeywords() []string {
	return []string{"Toxicology", "Safety", "Hepatic", "3D"}
}

// DefaultTechTags returns the similar-technology tag set.
func DefaultTechTags() []string {
	return []string{"in vitro models"}
}

// DefaultHubLocations returns the biotech hub list.
func DefaultHubLocations() []string {
	return []string{"Boston", "Cambridge", "Bay Area", "Basel", "UK Golden Triangle"}
}

// DefaultFundingIntentStages returns the funding stages read as buying intent.
func DefaultFundingIntentStages() []string {
	return []string{"Series A", "Series B"}
}

// DefaultPublicationKeywords returns the scientific-intent keyword set.
func DefaultPublicationKeywords() []string {
	return []string{"drug-induced liver injury", "dili", "liver toxicity", "hepatic", "3d model", "organ-on-chip"}
}

// Weights holds the points each signal contributes when triggered.
// A zero weight disables its signal.
type Weights struct {
	RoleFit          int `yaml:"role_fit" mapstructure:"role_fit"`
	FundingIntent    int `yaml:"funding_intent" mapstructure:"funding_intent"`
	TechUsage        int `yaml:"tech_usage" mapstructure:"tech_usage"`
	NAMsAdoption     int `yaml:"nams_adoption" mapstructure:"nams_adoption"`
	LocationHub      int `yaml:"location_hub" mapstructure:"location_hub"`
	ScientificIntent int `yaml:"scientific_intent" mapstructure:"scientific_intent"`
}

// Rules is the full scoring configuration: weights plus the trigger sets
// each extractor matches against.
type Rules struct {
	Weights             Weights  `yaml:"weights" mapstructure:"weights"`
	TitleKeywords       []string `yaml:"title_keywords" mapstructure:"title_keywords"`
	TechTags            []string `yaml:"tech_tags" mapstructure:"tech_tags"`
	HubLocations        []string `yaml:"hub_locations" mapstructure:"hub_locations"`
	FundingIntentStages []string `yaml:"funding_intent_stages" mapstructure:"funding_intent_stages"`
	PublicationKeywords []string `yaml:"publication_keywords" mapstructure:"publication_keywords"`
	LookbackMonths      int      `yaml:"lookback_months" mapstructure:"lookback_months"`
}

// DefaultRules returns the rules matching the signal table defaults.
func DefaultRules() Rules {
	return Rules{
		Weights: Weights{
			RoleFit:          DefaultRoleFitPoints,
			FundingIntent:    DefaultFundingIntentPoints,
			TechUsage:        DefaultTechUsagePoints,
			NAMsAdoption:     DefaultNAMsPoints,
			LocationHub:      DefaultLocationHubPoints,
			ScientificIntent: DefaultScientificIntentPoints,
		},
		TitleKeywords:       DefaultTitleKeywords(),
		TechTags:            DefaultTechTags(),
		HubLocations:        DefaultHubLocations(),
		FundingIntentStages: DefaultFundingIntentStages(),
		PublicationKeywords: DefaultPublicationKeywords(),
		LookbackMonths:      DefaultLookbackMonths,
	}
}

// Validate fails fast on rules no run should start with. Disabling a signal
// is done through its weight; trigger sets must stay non-empty.
func (r Rules) Validate() error {
	if len(r.TitleKeywords) == 0 {
		return eris.Wrap(ErrBadRules, "title_keywords is empty")
	}
	if len(r.TechTags) == 0 {
		return eris.Wrap(ErrBadRules, "tech_tags is empty")
	}
	if len(r.HubLocations) == 0 {
		return eris.Wrap(ErrBadRules, "hub_locations is empty")
	}
	if len(r.FundingIntentStages) == 0 {
		return eris.Wrap(ErrBadRules, "funding_intent_stages is empty")
	}
	if len(r.PublicationKeywords) == 0 {
		return eris.Wrap(ErrBadRules, "publication_keywords is empty")
	}
	if r.LookbackMonths <= 0 {
		return eris.Wrapf(ErrBadRules, "lookback_months must be > 0, got %d", r.LookbackMonths)
	}
	for _, w := range []struct {
		name   string
		points int
	}{
		{"role_fit", r.Weights.RoleFit},
		{"funding_intent", r.Weights.FundingIntent},
		{"tech_usage", r.Weights.TechUsage},
		{"nams_adoption", r.Weights.NAMsAdoption},
		{"location_hub", r.Weights.LocationHub},
		{"scientific_intent", r.Weights.ScientificIntent},
	} {
		if w.points < 0 {
			return eris.Wrapf(ErrBadRules, "weight %s must be >= 0, got %d", w.name, w.points)
		}
	}
	return nil
}

// LoadRulesFile reads scoring rules from a YAML file. The file carries a
// top-level "scoring" key. Keys absent from the file keep their defaults;
// an explicit zero weight disables that signal.
func LoadRulesFile(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, eris.Wrapf(err, "scoring: read rules %s", path)
	}

	wrapper := struct {
		Scoring Rules `yaml:"scoring"`
	}{Scoring: DefaultRules()}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return Rules{}, eris.Wrap(err, "scoring: parse rules")
	}

	return wrapper.Scoring, nil
}
