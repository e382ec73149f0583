package model

import "strings"

// Unknown is the display value for optional fields no source was able to fill.
// Fields at their zero value and fields holding Unknown are treated the same.
const Unknown = "unknown"

// FundingStage is a company financing milestone used as a buying-intent signal.
type FundingStage string

const (
	FundingNone        FundingStage = "None"
	FundingSeed        FundingStage = "Seed"
	FundingSeriesA     FundingStage = "Series A"
	FundingSeriesB     FundingStage = "Series B"
	FundingSeriesCPlus FundingStage = "Series C+"
	FundingPublic      FundingStage = "Public"
)

// Publication is a single paper attributed to a lead.
type Publication struct {
	Title string `json:"title"`
	Year  int    `json:"year"`
	PMID  string `json:"pmid,omitempty"`
}

// Lead is the canonical candidate record flowing through the pipeline.
// Identification creates it with identity fields only; enrichment fills
// contact and company-intelligence fields; later stages never overwrite
// what an earlier stage populated.
type Lead struct {
	SourceID string   `json:"source_id"`         // source system + native id, e.g. "linkedin:sarah-johnson"
	Sources  []string `json:"sources,omitempty"` // all source ids merged into this record, first-seen first

	FullName string `json:"full_name"`
	Title    string `json:"title,omitempty"`
	Company  string `json:"company,omitempty"`

	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	ProfileURL string `json:"profile_url,omitempty"`

	// Person location and company HQ are independent. One is never
	// inferred from the other.
	PersonLocation string `json:"person_location,omitempty"`
	CompanyHQ      string `json:"company_hq,omitempty"`

	FundingStage FundingStage  `json:"funding_stage,omitempty"`
	TechTags     []string      `json:"tech_tags,omitempty"`
	NAMsAdopter  bool          `json:"nams_adopter,omitempty"`
	Publications []Publication `json:"publications,omitempty"`
	Conferences  []string      `json:"conferences,omitempty"`
}

// SignalScore is one extractor's contribution to a lead's score.
type SignalScore struct {
	Signal string `json:"signal"`
	Points int    `json:"points"`
	Reason string `json:"reason"`
}

// ScoredLead is a Lead with its propensity score attached.
type ScoredLead struct {
	Lead
	Score     int           `json:"score"`
	Breakdown []SignalScore `json:"breakdown,omitempty"`
}

// RankedLead is a ScoredLead with its final dense rank attached.
type RankedLead struct {
	ScoredLead
	Rank int `json:"rank"`
}

// IsUnknown reports whether an optional string field is unset.
func IsUnknown(s string) bool {
	return s == "" || strings.EqualFold(s, Unknown)
}

// MissingRequired counts how many of the fields used for outreach
// (title, company, email) are still unset. Used as a ranking tie-breaker.
func (l Lead) MissingRequired() int {
	n := 0
	if IsUnknown(l.Title) {
		n++
	}
	if IsUnknown(l.Company) {
		n++
	}
	if IsUnknown(l.Email) {
		n++
	}
	return n
}
