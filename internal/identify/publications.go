package identify

import (
	"context"

	"github.com/siddheshmm/leadgen-cli/internal/model"
)

// Paper is one indexed publication record.
type Paper struct {
	PMID    string
	Title   string
	Year    int
	Journal string
	Authors []string
}

// PublicationDirectory serves indexed papers and yields their authors as
// leads. Authors arrive without an affiliation; the identification engine
// later folds them into profile leads where the names line up.
type PublicationDirectory struct {
	papers []Paper
}

// NewPublicationDirectory builds a directory over the given papers.
func NewPublicationDirectory(papers []Paper) *PublicationDirectory {
	return &PublicationDirectory{papers: papers}
}

// Name implements Source.
func (d *PublicationDirectory) Name() string { return "pubmed" }

// Identify returns one lead per author of every paper whose title matches a
// query keyword. Without keywords the publication search is skipped.
func (d *PublicationDirectory) Identify(_ context.Context, q model.Query) ([]model.Lead, error) {
	if len(q.Keywords) == 0 {
		return nil, nil
	}

	byAuthor := make(map[string]int)
	var leads []model.Lead
	for _, p := range d.papers {
		if !matchesAnyFold(p.Title, q.Keywords) {
			continue
		}
		pub := model.Publication{Title: p.Title, Year: p.Year, PMID: p.PMID}
		for _, author := range p.Authors {
			key := model.NormalizeName(author)
			if idx, ok := byAuthor[key]; ok {
				leads[idx].Publications = append(leads[idx].Publications, pub)
				continue
			}
			byAuthor[key] = len(leads)
			leads = append(leads, model.Lead{
				SourceID:     sourceID(d.Name(), author),
				FullName:     author,
				Title:        "Researcher",
				Company:      model.Unknown,
				Publications: []model.Publication{pub},
			})
		}
	}

	if q.Limit > 0 && len(leads) > q.Limit {
		leads = leads[:q.Limit]
	}
	return leads, nil
}

// DemoPapers returns the built-in demo index.
func DemoPapers() []Paper {
	return []Paper{
		{
			PMID:    "12345678",
			Title:   "Drug-Induced Liver Injury: A Comprehensive Review",
			Year:    2024,
			Journal: "Toxicology and Applied Pharmacology",
			Authors: []string{"Dr. Sarah Johnson", "Dr. John Smith"},
		},
		{
			PMID:    "12345679",
			Title:   "3D In-Vitro Models for Hepatic Toxicity Assessment",
			Year:    2023,
			Journal: "Biomaterials",
			Authors: []string{"Dr. Michael Chen", "Dr. Lisa Wang"},
		},
	}
}
