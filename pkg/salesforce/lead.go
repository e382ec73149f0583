package salesforce

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// maxBatchSize is the Salesforce Collections API limit per request.
const maxBatchSize = 200

// Custom fields holding pipeline output on the Lead sObject.
const (
	FieldPropensityScore = "Propensity_Score__c"
	FieldPropensityRank  = "Propensity_Rank__c"
)

// Lead represents a Salesforce Lead record.
type Lead struct {
	ID        string  `json:"Id" salesforce:"Id"`
	FirstName string  `json:"FirstName" salesforce:"FirstName"`
	LastName  string  `json:"LastName" salesforce:"LastName"`
	Title     string  `json:"Title" salesforce:"Title"`
	Company   string  `json:"Company" salesforce:"Company"`
	Email     string  `json:"Email" salesforce:"Email"`
	City      string  `json:"City" salesforce:"City"`
	State     string  `json:"State" salesforce:"State"`
	Source    string  `json:"LeadSource" salesforce:"LeadSource"`
	Score     float64 `json:"Propensity_Score__c" salesforce:"Propensity_Score__c"`
	Rank      float64 `json:"Propensity_Rank__c" salesforce:"Propensity_Rank__c"`
}

// leadFields are the SOQL fields selected for Lead queries.
var leadFields = []string{
	"Id", "FirstName", "LastName", "Title", "Company", "Email",
	"City", "State", "LeadSource", FieldPropensityScore, FieldPropensityRank,
}

// FindLeadByEmail queries Salesforce for a Lead matching the given email.
// Returns nil if no lead is found.
func FindLeadByEmail(ctx context.Context, c Client, email string) (*Lead, error) {
	soql := fmt.Sprintf(
		"SELECT %s FROM Lead WHERE Email = '%s' LIMIT 1",
		strings.Join(leadFields, ", "),
		escapeSoql(email),
	)

	var leads []Lead
	if err := c.Query(ctx, soql, &leads); err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("sf: find lead by email %s", email))
	}
	if len(leads) == 0 {
		return nil, nil
	}
	return &leads[0], nil
}

// UpdateLeadScore writes the pipeline's score and rank onto an existing Lead.
func UpdateLeadScore(ctx context.Context, c Client, leadID string, score, rank int) error {
	if leadID == "" {
		return eris.New("sf: lead id is required")
	}
	fields := map[string]any{
		FieldPropensityScore: score,
		FieldPropensityRank:  rank,
	}
	if err := c.UpdateOne(ctx, "Lead", leadID, fields); err != nil {
		return eris.Wrap(err, fmt.Sprintf("sf: update lead score %s", leadID))
	}
	return nil
}

// BulkInsertLeads splits records into batches of 200 (SF Collections API
// limit) and sends them via InsertCollection.
func BulkInsertLeads(ctx context.Context, c Client, records []map[string]any) ([]CollectionResult, error) {
	if len(records) == 0 {
		return nil, nil
	}

	var allResults []CollectionResult

	for start := 0; start < len(records); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(records) {
			end = len(records)
		}

		results, err := c.InsertCollection(ctx, "Lead", records[start:end])
		if err != nil {
			return allResults, eris.Wrap(err, fmt.Sprintf("sf: bulk insert leads batch %d-%d", start, end))
		}
		allResults = append(allResults, results...)
	}

	return allResults, nil
}

// escapeSoql escapes single quotes in SOQL string literals to prevent injection.
func escapeSoql(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}
