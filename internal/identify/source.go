// Package identify discovers candidate leads from pluggable sources and
// merges them into unique identity records.
package identify

import (
	"context"
	"strings"

	"github.com/siddheshmm/leadgen-cli/internal/model"
)

// Source identifies candidate leads from one system. Implementations return
// partially-populated records (identity fields, plus whatever the system
// natively knows) and never enrich.
type Source interface {
	// Name returns the unique source system name, e.g. "linkedin".
	Name() string

	// Identify returns the leads matching the query.
	Identify(ctx context.Context, q model.Query) ([]model.Lead, error)
}

// slug converts free text into the id-safe form used in source ids:
// lowercase, runs of non-alphanumerics collapsed to single dashes.
func slug(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// sourceID composes the stable lead id from the source system name and the
// system-native identifier.
func sourceID(system, native string) string {
	return system + ":" + slug(native)
}

func matchesAnyFold(s string, terms []string) bool {
	ls := strings.ToLower(s)
	for _, t := range terms {
		if strings.Contains(ls, strings.ToLower(t)) {
			return true
		}
	}
	return false
}
