package enrich

import (
	"context"
	"strings"

	"github.com/siddheshmm/leadgen-cli/internal/model"
)

// fundingDirectory maps company-name fragments to their latest known
// funding stage.
var fundingDirectory = []struct {
	match string
	stage model.FundingStage
}{
	{"moderna", model.FundingSeriesB},
	{"biogen", model.FundingPublic},
}

// FundingIntel fills the company funding stage. Companies with no recent
// funding on record are marked FundingNone so downstream stages can tell
// "checked, nothing found" from "never checked".
type FundingIntel struct{}

// NewFundingIntel builds the step.
func NewFundingIntel() *FundingIntel {
	return &FundingIntel{}
}

// Name implements Enricher.
func (f *FundingIntel) Name() string { return "funding" }

// Enrich fills FundingStage when it is unset.
func (f *FundingIntel) Enrich(_ context.Context, lead model.Lead) (model.Lead, error) {
	if !model.IsUnknown(string(lead.FundingStage)) {
		return lead, nil
	}
	if model.IsUnknown(lead.Company) {
		return lead, nil
	}

	out := lead
	out.FundingStage = model.FundingNone
	lower := strings.ToLower(lead.Company)
	for _, e := range fundingDirectory {
		if strings.Contains(lower, e.match) {
			out.FundingStage = e.stage
			break
		}
	}
	return out, nil
}
