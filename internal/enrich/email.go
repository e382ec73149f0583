package enrich

import (
	"context"
	"strings"

	"github.com/siddheshmm/leadgen-cli/internal/model"
)

// domainDirectory maps company-name fragments to their mail domains. Entries
// are matched in order against the lowercased company name.
var domainDirectory = []struct {
	match  string
	domain string
}{
	{"pfizer", "pfizer.com"},
	{"moderna", "modernatx.com"},
	{"biogen", "biogen.com"},
	{"gilead", "gilead.com"},
	{"regeneron", "regeneron.com"},
	{"vertex", "vrtx.com"},
	{"amgen", "amgen.com"},
	{"bristol myers squibb", "bms.com"},
	{"merck", "merck.com"},
	{"novartis", "novartis.com"},
	{"roche", "roche.com"},
}

// honorifics are name tokens that never belong in an email local part.
var honorifics = map[string]bool{
	"dr":   true,
	"prof": true,
	"mr":   true,
	"mrs":  true,
	"ms":   true,
	"phd":  true,
	"md":   true,
}

// EmailFinder derives a business email from the lead's name and company
// using the first.last@domain convention.
type EmailFinder struct{}

// NewEmailFinder builds the step.
func NewEmailFinder() *EmailFinder {
	return &EmailFinder{}
}

// Name implements Enricher.
func (f *EmailFinder) Name() string { return "email" }

// Enrich fills Email when it is unknown and both a usable name and a company
// domain are available.
func (f *EmailFinder) Enrich(_ context.Context, lead model.Lead) (model.Lead, error) {
	if !model.IsUnknown(lead.Email) {
		return lead, nil
	}
	if model.IsUnknown(lead.Company) || model.IsUnknown(lead.FullName) {
		return lead, nil
	}

	first, last, ok := nameParts(lead.FullName)
	if !ok {
		return lead, nil
	}

	out := lead
	out.Email = first + "." + last + "@" + companyDomain(lead.Company)
	return out, nil
}

// companyDomain resolves the mail domain for a company, falling back to a
// compacted form of the company name.
func companyDomain(company string) string {
	lower := strings.ToLower(company)
	for _, e := range domainDirectory {
		if strings.Contains(lower, e.match) {
			return e.domain
		}
	}
	return compact(lower) + ".com"
}

// nameParts extracts the first and last name tokens, skipping honorifics.
func nameParts(name string) (first, last string, ok bool) {
	var parts []string
	for _, tok := range strings.Fields(strings.ToLower(name)) {
		tok = compact(tok)
		if tok == "" || honorifics[tok] {
			continue
		}
		parts = append(parts, tok)
	}
	if len(parts) < 2 {
		return "", "", false
	}
	return parts[0], parts[len(parts)-1], true
}

// compact keeps only the ascii letters and digits of s.
func compact(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
