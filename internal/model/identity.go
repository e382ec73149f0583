package model

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeName lowercases a name with Unicode case folding and collapses
// internal whitespace, so "Sarah  JOHNSON " and "sarah johnson" compare equal.
// A cases.Caser is stateful, so one is built per call.
func NormalizeName(s string) string {
	folded := cases.Fold().String(strings.TrimSpace(s))
	return strings.Join(strings.Fields(folded), " ")
}

// IdentityKey returns the canonical identity key for a lead: normalized
// full name and normalized company joined with a separator neither field
// can contain after normalization. Unset components ("" or "unknown")
// normalize to the empty string. Leads sharing a key are the same person
// and must be merged before ranking.
func (l Lead) IdentityKey() string {
	name, company := l.FullName, l.Company
	if IsUnknown(name) {
		name = ""
	}
	if IsUnknown(company) {
		company = ""
	}
	return NormalizeName(name) + "|" + NormalizeName(company)
}
