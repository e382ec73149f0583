package enrich

import (
	"context"
	"strings"

	"github.com/siddheshmm/leadgen-cli/internal/model"
)

// hqDirectory maps company-name fragments to headquarters locations.
var hqDirectory = []struct {
	match string
	hq    string
}{
	{"pfizer", "New York, NY"},
	{"moderna", "Cambridge, MA"},
	{"biogen", "Cambridge, MA"},
	{"gilead", "Foster City, CA"},
	{"regeneron", "Tarrytown, NY"},
	{"vertex", "Boston, MA"},
	{"amgen", "Thousand Oaks, CA"},
	{"bristol myers squibb", "New York, NY"},
	{"merck", "Kenilworth, NJ"},
	{"novartis", "Basel, Switzerland"},
	{"roche", "Basel, Switzerland"},
}

// LocationIntel fills the company headquarters location. The person location
// is identification data and is never touched here; the two fields stay
// independent.
type LocationIntel struct{}

// NewLocationIntel builds the step.
func NewLocationIntel() *LocationIntel {
	return &LocationIntel{}
}

// Name implements Enricher.
func (l *LocationIntel) Name() string { return "location" }

// Enrich fills CompanyHQ when it is unknown and the company is on file.
func (l *LocationIntel) Enrich(_ context.Context, lead model.Lead) (model.Lead, error) {
	if !model.IsUnknown(lead.CompanyHQ) || model.IsUnknown(lead.Company) {
		return lead, nil
	}

	lower := strings.ToLower(lead.Company)
	for _, e := range hqDirectory {
		if strings.Contains(lower, e.match) {
			out := lead
			out.CompanyHQ = e.hq
			return out, nil
		}
	}
	return lead, nil
}
