package identify

import (
	"context"
	"strings"

	"github.com/siddheshmm/leadgen-cli/internal/model"
)

// Attendee is one conference roster entry.
type Attendee struct {
	Name         string
	Title        string
	Company      string
	Presentation string
	Conference   string
}

// ConferenceDirectory serves attendee rosters for scientific conferences.
type ConferenceDirectory struct {
	attendees []Attendee
}

// NewConferenceDirectory builds a directory over the given roster entries.
func NewConferenceDirectory(attendees []Attendee) *ConferenceDirectory {
	return &ConferenceDirectory{attendees: attendees}
}

// Name implements Source.
func (d *ConferenceDirectory) Name() string { return "conference" }

// Identify returns attendees of the queried conferences. Without a
// conference list in the query no roster is consulted.
func (d *ConferenceDirectory) Identify(_ context.Context, q model.Query) ([]model.Lead, error) {
	if len(q.Conferences) == 0 {
		return nil, nil
	}

	var leads []model.Lead
	for _, conf := range q.Conferences {
		for _, a := range d.attendees {
			if !strings.EqualFold(a.Conference, conf) {
				continue
			}
			leads = append(leads, model.Lead{
				SourceID:    sourceID(d.Name(), a.Conference+" "+a.Name),
				FullName:    a.Name,
				Title:       a.Title,
				Company:     a.Company,
				Conferences: []string{a.Conference},
			})
			if q.Limit > 0 && len(leads) >= q.Limit {
				return leads, nil
			}
		}
	}
	return leads, nil
}

// DemoAttendees returns the built-in demo rosters: the same presenters
// appear at every tracked conference.
func DemoAttendees() []Attendee {
	people := []Attendee{
		{
			Name:         "Dr. Sarah Johnson",
			Title:        "Director of Toxicology",
			Company:      "Pfizer Inc",
			Presentation: "Poster: 3D Liver Models for DILI Assessment",
		},
		{
			Name:         "Dr. Emily Rodriguez",
			Title:        "VP Preclinical Development",
			Company:      "Biogen",
			Presentation: "Oral: New Approach Methodologies in Safety",
		},
	}

	var out []Attendee
	for _, conf := range []string{"SOT", "AACR", "ISSX", "ACT"} {
		for _, p := range people {
			p.Conference = conf
			out = append(out, p)
		}
	}
	return out
}
