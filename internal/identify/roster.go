package identify

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/siddheshmm/leadgen-cli/internal/fetcher"
	"github.com/siddheshmm/leadgen-cli/internal/model"
)

// RosterFile imports caller-supplied identification records from a local
// CSV or XLSX file. Roster rows were hand-picked by the caller, so query
// filters do not apply; only the per-source limit does.
type RosterFile struct {
	path string
}

// NewRosterFile builds a source over the roster at path.
func NewRosterFile(path string) *RosterFile {
	return &RosterFile{path: path}
}

// Name implements Source.
func (s *RosterFile) Name() string { return "roster" }

// Identify parses the roster and returns one lead per row. Rows without a
// name are skipped. Recognized columns: full_name/name, title, company,
// location/person_location, company_hq/hq, email, profile_url.
func (s *RosterFile) Identify(ctx context.Context, q model.Query) ([]model.Lead, error) {
	table, err := fetcher.ReadFile(ctx, s.path)
	if err != nil {
		return nil, eris.Wrapf(err, "identify: roster %s", s.path)
	}

	var (
		nameCol     = table.Column("full_name", "name")
		titleCol    = table.Column("title")
		companyCol  = table.Column("company")
		locationCol = table.Column("location", "person_location")
		hqCol       = table.Column("company_hq", "hq")
		emailCol    = table.Column("email")
		profileCol  = table.Column("profile_url")
	)
	if nameCol < 0 {
		return nil, eris.Errorf("identify: roster %s has no name column", s.path)
	}

	log := zap.L().With(zap.String("component", "identify"))

	var leads []model.Lead
	for i, row := range table.Rows {
		name := fetcher.Field(row, nameCol)
		if name == "" {
			log.Warn("skipping roster row without a name",
				zap.String("path", s.path),
				zap.Int("row", i+2), // 1-based, after the header
			)
			continue
		}
		leads = append(leads, model.Lead{
			SourceID:       sourceID(s.Name(), name),
			FullName:       name,
			Title:          fetcher.Field(row, titleCol),
			Company:        fetcher.Field(row, companyCol),
			PersonLocation: fetcher.Field(row, locationCol),
			CompanyHQ:      fetcher.Field(row, hqCol),
			Email:          fetcher.Field(row, emailCol),
			ProfileURL:     fetcher.Field(row, profileCol),
		})
		if q.Limit > 0 && len(leads) >= q.Limit {
			break
		}
	}
	return leads, nil
}
