package identify

import (
	"context"

	"github.com/siddheshmm/leadgen-cli/internal/model"
)

// Profile is one professional-network profile record.
type Profile struct {
	Name       string
	Title      string
	Company    string
	Location   string
	CompanyHQ  string
	ProfileURL string
}

// ProfileDirectory serves curated professional-network profiles. It stands
// where a live people-search integration would sit.
type ProfileDirectory struct {
	profiles []Profile
}

// NewProfileDirectory builds a directory over the given profiles.
func NewProfileDirectory(profiles []Profile) *ProfileDirectory {
	return &ProfileDirectory{profiles: profiles}
}

// Name implements Source.
func (d *ProfileDirectory) Name() string { return "linkedin" }

// Identify returns profiles whose title matches any queried title. With no
// titles in the query every profile matches. A location filter, when given,
// matches the person location.
func (d *ProfileDirectory) Identify(_ context.Context, q model.Query) ([]model.Lead, error) {
	var leads []model.Lead
	for _, p := range d.profiles {
		if len(q.Titles) > 0 && !matchesAnyFold(p.Title, q.Titles) {
			continue
		}
		if len(q.Locations) > 0 && !matchesAnyFold(p.Location, q.Locations) {
			continue
		}
		leads = append(leads, model.Lead{
			SourceID:       sourceID(d.Name(), p.Name),
			FullName:       p.Name,
			Title:          p.Title,
			Company:        p.Company,
			PersonLocation: p.Location,
			CompanyHQ:      p.CompanyHQ,
			ProfileURL:     p.ProfileURL,
		})
		if q.Limit > 0 && len(leads) >= q.Limit {
			break
		}
	}
	return leads, nil
}

// DemoProfiles returns the built-in demo directory.
func DemoProfiles() []Profile {
	return []Profile{
		{
			Name:       "Dr. Sarah Johnson",
			Title:      "Director of Toxicology",
			Company:    "Pfizer Inc",
			Location:   "Cambridge, MA",
			CompanyHQ:  "New York, NY",
			ProfileURL: "https://linkedin.com/in/sarah-johnson",
		},
		{
			Name:       "Dr. Michael Chen",
			Title:      "Head of Preclinical Safety",
			Company:    "Moderna Therapeutics",
			Location:   "Boston, MA",
			CompanyHQ:  "Cambridge, MA",
			ProfileURL: "https://linkedin.com/in/michael-chen",
		},
		{
			Name:       "Dr. Emily Rodriguez",
			Title:      "VP Preclinical Development",
			Company:    "Biogen",
			Location:   "San Francisco, CA",
			CompanyHQ:  "Cambridge, MA",
			ProfileURL: "https://linkedin.com/in/emily-rodriguez",
		},
	}
}
