package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUnknown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"empty", "", true},
		{"literal", "unknown", true},
		{"literal mixed case", "Unknown", true},
		{"real value", "Pfizer", false},
		{"value containing unknown", "unknown territory", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsUnknown(tt.in))
		})
	}
}

func TestLeadMissingRequired(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		lead Lead
		want int
	}{
		{"all present", Lead{Title: "Director of Toxicology", Company: "Pfizer", Email: "a@b.com"}, 0},
		{"email unknown literal", Lead{Title: "Director", Company: "Pfizer", Email: "unknown"}, 1},
		{"only title", Lead{Title: "Director"}, 2},
		{"identity only", Lead{FullName: "Sarah Johnson"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.lead.MissingRequired())
		})
	}
}

func TestIdentityKey_NormalizesCaseAndWhitespace(t *testing.T) {
	t.Parallel()

	a := Lead{FullName: "Sarah  JOHNSON ", Company: "Pfizer"}
	b := Lead{FullName: "sarah johnson", Company: " PFIZER"}

	assert.Equal(t, "sarah johnson|pfizer", a.IdentityKey())
	assert.Equal(t, a.IdentityKey(), b.IdentityKey())
}

func TestIdentityKey_DistinctCompanies(t *testing.T) {
	t.Parallel()

	a := Lead{FullName: "Sarah Johnson", Company: "Pfizer"}
	b := Lead{FullName: "Sarah Johnson", Company: "Moderna"}

	assert.NotEqual(t, a.IdentityKey(), b.IdentityKey())
}

func TestNormalizeName_UnicodeFolding(t *testing.T) {
	t.Parallel()

	// Case folding maps the sharp s to "ss" in both directions.
	assert.Equal(t, NormalizeName("STRASSE AG"), NormalizeName("Straße AG"))
}
