package enrich

import (
	"context"
	"strings"

	"github.com/siddheshmm/leadgen-cli/internal/model"
)

// technoDirectory maps company-name fragments to the technologies the
// company is known to use and whether it has adopted New Approach
// Methodologies.
var technoDirectory = []struct {
	match string
	tags  []string
	nams  bool
}{
	{"moderna", []string{"in vitro models"}, true},
	{"biogen", []string{"in vitro models"}, true},
}

// TechnographicIntel fills technology-usage tags and the NAMs-adoption flag.
type TechnographicIntel struct{}

// NewTechnographicIntel builds the step.
func NewTechnographicIntel() *TechnographicIntel {
	return &TechnographicIntel{}
}

// Name implements Enricher.
func (t *TechnographicIntel) Name() string { return "technographics" }

// Enrich unions known technology tags into the lead and raises the NAMs
// flag. Tags already present are kept once, compared case-insensitively.
func (t *TechnographicIntel) Enrich(_ context.Context, lead model.Lead) (model.Lead, error) {
	if model.IsUnknown(lead.Company) {
		return lead, nil
	}

	lower := strings.ToLower(lead.Company)
	for _, e := range technoDirectory {
		if !strings.Contains(lower, e.match) {
			continue
		}
		out := lead
		out.TechTags = append([]string(nil), lead.TechTags...)
		for _, tag := range e.tags {
			if !hasTagFold(out.TechTags, tag) {
				out.TechTags = append(out.TechTags, tag)
			}
		}
		out.NAMsAdopter = lead.NAMsAdopter || e.nams
		return out, nil
	}
	return lead, nil
}

func hasTagFold(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
