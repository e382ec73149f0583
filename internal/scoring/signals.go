package scoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/siddheshmm/leadgen-cli/internal/model"
)

// Signal names, in the fixed priority order breakdowns are emitted in.
const (
	SignalRoleFit          = "role_fit"
	SignalFundingIntent    = "funding_intent"
	SignalTechUsage        = "tech_usage"
	SignalNAMsAdoption     = "nams_adoption"
	SignalLocationHub      = "location_hub"
	SignalScientificIntent = "scientific_intent"
)

// extractor is one signal rule: it inspects a single attribute group and
// returns the points it contributes plus the reason, or (0, "") when its
// trigger condition is false or the field is unset. Extractors never fail;
// missing data is un-rewarded, not penalized.
type extractor struct {
	signal  string
	extract func(model.Lead) (int, string)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// roleFit awards points when the title contains any role-fit keyword.
func roleFit(l model.Lead, keywords []string, points int) (int, string) {
	if model.IsUnknown(l.Title) {
		return 0, ""
	}
	for _, kw := range keywords {
		if containsFold(l.Title, kw) {
			return points, fmt.Sprintf("Title matches role-fit keyword: %s", kw)
		}
	}
	return 0, ""
}

// fundingIntent awards points when the funding stage signals budget.
func fundingIntent(l model.Lead, stages []string, points int) (int, string) {
	if model.IsUnknown(string(l.FundingStage)) {
		return 0, ""
	}
	for _, stage := range stages {
		if strings.EqualFold(string(l.FundingStage), stage) {
			return points, fmt.Sprintf("Company funding stage: %s", l.FundingStage)
		}
	}
	return 0, ""
}

// techUsage awards points when any technographic tag is in the similar-tech set.
func techUsage(l model.Lead, tags []string, points int) (int, string) {
	for _, have := range l.TechTags {
		for _, want := range tags {
			if strings.EqualFold(have, want) {
				return points, fmt.Sprintf("Uses similar technology: %s", have)
			}
		}
	}
	return 0, ""
}

// namsAdoption awards points when the company is open to NAMs.
func namsAdoption(l model.Lead, points int) (int, string) {
	if !l.NAMsAdopter {
		return 0, ""
	}
	return points, "Open to New Approach Methodologies"
}

// locationHub awards points when the person location or the company HQ
// falls in a biotech hub. The two fields are checked independently and
// either one is enough.
func locationHub(l model.Lead, hubs []string, points int) (int, string) {
	for _, hub := range hubs {
		if !model.IsUnknown(l.PersonLocation) && containsFold(l.PersonLocation, hub) {
			return points, fmt.Sprintf("Located in biotech hub: %s", hub)
		}
		if !model.IsUnknown(l.CompanyHQ) && containsFold(l.CompanyHQ, hub) {
			return points, fmt.Sprintf("Located in biotech hub: %s", hub)
		}
	}
	return 0, ""
}

// scientificIntent awards points when the lead published at least one paper
// matching the keyword set inside the trailing lookback window. The window
// is year-granular: a paper counts when its year is no older than the year
// the window starts in.
func scientificIntent(l model.Lead, keywords []string, lookbackMonths, points int, now time.Time) (int, string) {
	if len(l.Publications) == 0 {
		return 0, ""
	}

	cutoffYear := now.AddDate(0, -lookbackMonths, 0).Year()
	relevant := 0
	for _, pub := range l.Publications {
		if pub.Year < cutoffYear {
			continue
		}
		for _, kw := range keywords {
			if containsFold(pub.Title, kw) {
				relevant++
				break
			}
		}
	}

	if relevant == 0 {
		return 0, ""
	}
	return points, fmt.Sprintf("Published %d relevant paper(s) in last %s", relevant, windowLabel(lookbackMonths))
}

func windowLabel(months int) string {
	switch {
	case months == 12:
		return "1 year"
	case months%12 == 0:
		return fmt.Sprintf("%d years", months/12)
	case months == 1:
		return "1 month"
	default:
		return fmt.Sprintf("%d months", months)
	}
}
