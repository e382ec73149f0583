// Package export formats ranked leads for downstream consumers: CSV and
// XLSX files for analysts, Salesforce for the sales team. It consumes the
// pipeline's final output and never reorders or rescores it.
package export

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/siddheshmm/leadgen-cli/internal/model"
)

// leadColumns defines the ordered lead export columns.
var leadColumns = []string{
	"Rank",
	"Score",
	"Name",
	"Title",
	"Company",
	"Location",
	"HQ",
	"Email",
	"Profile",
	"Papers",
	"Conferences",
	"Funding",
}

// WriteCSV writes ranked leads as CSV to w.
func WriteCSV(w io.Writer, leads []model.RankedLead) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(leadColumns); err != nil {
		return eris.Wrap(err, "export: write header")
	}

	for _, l := range leads {
		if err := cw.Write(buildLeadRow(l)); err != nil {
			return eris.Wrapf(err, "export: write row for %s", l.SourceID)
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush")
}

// ExportCSV writes ranked leads as a CSV file.
func ExportCSV(leads []model.RankedLead, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return eris.Wrap(err, "export: create file")
	}
	defer f.Close()

	return WriteCSV(f, leads)
}

// buildLeadRow maps a RankedLead to an export row.
func buildLeadRow(l model.RankedLead) []string {
	return []string{
		strconv.Itoa(l.Rank),
		strconv.Itoa(l.Score),
		l.FullName,
		l.Title,
		l.Company,
		l.PersonLocation,
		l.CompanyHQ,
		l.Email,
		l.ProfileURL,
		joinPapers(l.Publications),
		strings.Join(l.Conferences, "; "),
		string(l.FundingStage),
	}
}

func joinPapers(pubs []model.Publication) string {
	titles := make([]string, len(pubs))
	for i, p := range pubs {
		titles[i] = p.Title
	}
	return strings.Join(titles, "; ")
}
