// Package rank deduplicates, orders, and ranks scored leads.
package rank

import (
	"strings"

	"github.com/siddheshmm/leadgen-cli/internal/model"
)

// Merge collapses leads sharing a canonical identity key into one record
// holding the union of their fields. The first occurrence wins per field;
// later duplicates only fill gaps. Output keeps first-seen order. Merging
// already-merged input is a no-op.
func Merge(leads []model.Lead) []model.Lead {
	byKey := make(map[string]int, len(leads))
	out := make([]model.Lead, 0, len(leads))

	for _, l := range leads {
		key := dedupKey(l)
		if idx, ok := byKey[key]; ok {
			out[idx] = mergeLead(out[idx], l)
			continue
		}
		byKey[key] = len(out)
		out = append(out, withSources(l))
	}

	return out
}

// dedupKey is the canonical identity key, falling back to the source id for
// records with neither name nor company so unrelated blanks never collapse.
func dedupKey(l model.Lead) string {
	key := l.IdentityKey()
	if key == "|" {
		return "id:" + l.SourceID
	}
	return key
}

// withSources guarantees the provenance list contains the lead's own id.
func withSources(l model.Lead) model.Lead {
	if l.SourceID != "" && !containsString(l.Sources, l.SourceID) {
		l.Sources = append(append([]string{}, l.Sources...), l.SourceID)
	}
	return l
}

// mergeLead unions src into dst. dst's populated fields are never replaced;
// set fields only flow from src into dst's gaps. Set-valued fields union,
// the NAMs flag ORs.
func mergeLead(dst, src model.Lead) model.Lead {
	out := dst

	if src.SourceID != "" && !containsString(out.Sources, src.SourceID) {
		out.Sources = append(out.Sources, src.SourceID)
	}
	for _, s := range src.Sources {
		if !containsString(out.Sources, s) {
			out.Sources = append(out.Sources, s)
		}
	}

	out.FullName = firstKnown(out.FullName, src.FullName)
	out.Title = firstKnown(out.Title, src.Title)
	out.Company = firstKnown(out.Company, src.Company)
	out.Email = firstKnown(out.Email, src.Email)
	out.Phone = firstKnown(out.Phone, src.Phone)
	out.ProfileURL = firstKnown(out.ProfileURL, src.ProfileURL)
	out.PersonLocation = firstKnown(out.PersonLocation, src.PersonLocation)
	out.CompanyHQ = firstKnown(out.CompanyHQ, src.CompanyHQ)

	if model.IsUnknown(string(out.FundingStage)) && !model.IsUnknown(string(src.FundingStage)) {
		out.FundingStage = src.FundingStage
	}

	out.NAMsAdopter = out.NAMsAdopter || src.NAMsAdopter

	for _, tag := range src.TechTags {
		if !containsFold(out.TechTags, tag) {
			out.TechTags = append(out.TechTags, tag)
		}
	}
	for _, conf := range src.Conferences {
		if !containsFold(out.Conferences, conf) {
			out.Conferences = append(out.Conferences, conf)
		}
	}
	for _, pub := range src.Publications {
		if !containsPublication(out.Publications, pub) {
			out.Publications = append(out.Publications, pub)
		}
	}

	return out
}

func firstKnown(a, b string) string {
	if model.IsUnknown(a) && !model.IsUnknown(b) {
		return b
	}
	return a
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func containsPublication(list []model.Publication, p model.Publication) bool {
	for _, v := range list {
		if v.PMID != "" && v.PMID == p.PMID {
			return true
		}
		if strings.EqualFold(v.Title, p.Title) && v.Year == p.Year {
			return true
		}
	}
	return false
}
