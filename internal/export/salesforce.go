package export

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/siddheshmm/leadgen-cli/internal/model"
	sfpkg "github.com/siddheshmm/leadgen-cli/pkg/salesforce"
)

// SalesforceTarget pushes ranked leads into Salesforce as Lead sObjects.
type SalesforceTarget struct {
	client sfpkg.Client
}

// NewSalesforceTarget builds a target over the given client.
func NewSalesforceTarget(client sfpkg.Client) *SalesforceTarget {
	return &SalesforceTarget{client: client}
}

// PushResult summarizes one Salesforce export.
type PushResult struct {
	Inserted int      `json:"inserted"`
	Updated  int      `json:"updated"`
	Failed   []string `json:"failed,omitempty"` // source ids that could not be exported
}

// Push upserts ranked leads: records matched by email get their score and
// rank refreshed, the rest are inserted in batches. A single rejected
// record degrades to the Failed list and never aborts the export.
func (t *SalesforceTarget) Push(ctx context.Context, leads []model.RankedLead) (*PushResult, error) {
	log := zap.L().With(zap.String("component", "export"))

	res := &PushResult{}
	var toInsert []map[string]any
	var insertIDs []string

	for _, l := range leads {
		if err := ctx.Err(); err != nil {
			return res, eris.Wrap(err, "export: canceled")
		}

		if !model.IsUnknown(l.Email) {
			existing, err := sfpkg.FindLeadByEmail(ctx, t.client, l.Email)
			if err != nil {
				log.Warn("lead lookup failed", zap.String("lead", l.SourceID), zap.Error(err))
				res.Failed = append(res.Failed, l.SourceID)
				continue
			}
			if existing != nil {
				if err := sfpkg.UpdateLeadScore(ctx, t.client, existing.ID, l.Score, l.Rank); err != nil {
					log.Warn("lead update failed", zap.String("lead", l.SourceID), zap.Error(err))
					res.Failed = append(res.Failed, l.SourceID)
					continue
				}
				res.Updated++
				continue
			}
		}

		toInsert = append(toInsert, leadRecord(l))
		insertIDs = append(insertIDs, l.SourceID)
	}

	results, err := sfpkg.BulkInsertLeads(ctx, t.client, toInsert)
	if err != nil {
		return res, eris.Wrap(err, "export: insert leads")
	}
	for i, r := range results {
		if r.Success {
			res.Inserted++
			continue
		}
		log.Warn("lead insert rejected",
			zap.String("lead", insertIDs[i]),
			zap.Strings("errors", r.Errors),
		)
		res.Failed = append(res.Failed, insertIDs[i])
	}

	log.Info("salesforce export complete",
		zap.Int("inserted", res.Inserted),
		zap.Int("updated", res.Updated),
		zap.Int("failed", len(res.Failed)),
	)
	return res, nil
}

// leadRecord maps a RankedLead to Lead sObject fields. LastName and Company
// are required by Salesforce, so unknowns fall back to placeholders.
func leadRecord(l model.RankedLead) map[string]any {
	salutation, first, last := splitName(l.FullName)

	rec := map[string]any{
		"LastName":                 last,
		"Company":                  l.Company,
		"LeadSource":               leadSource(l.SourceID),
		sfpkg.FieldPropensityScore: l.Score,
		sfpkg.FieldPropensityRank:  l.Rank,
	}
	if model.IsUnknown(l.Company) {
		rec["Company"] = "Unknown"
	}
	if salutation != "" {
		rec["Salutation"] = salutation
	}
	if first != "" {
		rec["FirstName"] = first
	}
	if !model.IsUnknown(l.Title) {
		rec["Title"] = l.Title
	}
	if !model.IsUnknown(l.Email) {
		rec["Email"] = l.Email
	}
	if city, state := splitLocation(l.PersonLocation); city != "" {
		rec["City"] = city
		if state != "" {
			rec["State"] = state
		}
	}
	return rec
}

var salutations = map[string]string{
	"dr":   "Dr.",
	"prof": "Prof.",
	"mr":   "Mr.",
	"mrs":  "Mrs.",
	"ms":   "Ms.",
}

// splitName breaks a display name into salutation, first and last name.
func splitName(full string) (salutation, first, last string) {
	tokens := strings.Fields(full)
	if len(tokens) == 0 {
		return "", "", "Unknown"
	}
	if len(tokens) > 1 {
		if s, ok := salutations[strings.ToLower(strings.TrimRight(tokens[0], "."))]; ok {
			salutation = s
			tokens = tokens[1:]
		}
	}
	last = tokens[len(tokens)-1]
	first = strings.Join(tokens[:len(tokens)-1], " ")
	return salutation, first, last
}

// splitLocation breaks "City, ST" into its parts. Without a comma the whole
// string is the city.
func splitLocation(location string) (city, state string) {
	if model.IsUnknown(location) {
		return "", ""
	}
	if i := strings.LastIndex(location, ","); i >= 0 {
		return strings.TrimSpace(location[:i]), strings.TrimSpace(location[i+1:])
	}
	return strings.TrimSpace(location), ""
}

// leadSource maps a source id's system prefix to a Salesforce LeadSource value.
func leadSource(sourceID string) string {
	system, _, _ := strings.Cut(sourceID, ":")
	switch system {
	case "linkedin":
		return "LinkedIn"
	case "pubmed":
		return "PubMed"
	case "conference":
		return "Conference"
	case "roster":
		return "Roster Import"
	default:
		return "Lead Generation"
	}
}
