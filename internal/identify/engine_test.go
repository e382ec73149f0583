package identify

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siddheshmm/leadgen-cli/internal/model"
)

func demoQuery() model.Query {
	return model.Query{
		Titles:      []string{"Toxicology", "Safety", "Preclinical"},
		Keywords:    []string{"drug-induced liver injury", "hepatic", "3D"},
		Conferences: []string{"SOT", "AACR", "ISSX", "ACT"},
	}
}

func leadByName(t *testing.T, leads []model.Lead, name string) model.Lead {
	t.Helper()
	for _, l := range leads {
		if l.FullName == name {
			return l
		}
	}
	t.Fatalf("lead %q not found", name)
	return model.Lead{}
}

func TestEngineIdentify_DemoDirectories(t *testing.T) {
	engine := DefaultEngine()

	leads, err := engine.Identify(context.Background(), demoQuery())
	require.NoError(t, err)

	// Three profiles, two standalone paper authors; Johnson and Chen's
	// papers are folded into their profile leads.
	require.Len(t, leads, 5)

	sarah := leadByName(t, leads, "Dr. Sarah Johnson")
	assert.Equal(t, "Pfizer Inc", sarah.Company)
	assert.Equal(t, "Cambridge, MA", sarah.PersonLocation)
	assert.Equal(t, "New York, NY", sarah.CompanyHQ)
	require.Len(t, sarah.Publications, 1)
	assert.Equal(t, "12345678", sarah.Publications[0].PMID)
	assert.Equal(t, []string{"SOT", "AACR", "ISSX", "ACT"}, sarah.Conferences)

	chen := leadByName(t, leads, "Dr. Michael Chen")
	require.Len(t, chen.Publications, 1)
	assert.Equal(t, "12345679", chen.Publications[0].PMID)
	assert.Empty(t, chen.Conferences)

	emily := leadByName(t, leads, "Dr. Emily Rodriguez")
	assert.Empty(t, emily.Publications)
	assert.Equal(t, []string{"SOT", "AACR", "ISSX", "ACT"}, emily.Conferences)

	smith := leadByName(t, leads, "Dr. John Smith")
	assert.Equal(t, "Researcher", smith.Title)
	assert.Equal(t, model.Unknown, smith.Company)
	require.Len(t, smith.Publications, 1)
}

func TestEngineIdentify_Deterministic(t *testing.T) {
	engine := DefaultEngine()

	first, err := engine.Identify(context.Background(), demoQuery())
	require.NoError(t, err)
	second, err := engine.Identify(context.Background(), demoQuery())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

type failingSource struct{}

func (failingSource) Name() string { return "broken" }
func (failingSource) Identify(context.Context, model.Query) ([]model.Lead, error) {
	return nil, eris.New("broken: upstream unavailable")
}

func TestEngineIdentify_SourceFailureIsSkipped(t *testing.T) {
	engine := NewEngine(failingSource{}, NewProfileDirectory(DemoProfiles()))

	leads, err := engine.Identify(context.Background(), model.Query{Titles: []string{"Toxicology"}})
	require.NoError(t, err)
	assert.Len(t, leads, 1)
}

func TestEngineIdentify_CanceledContext(t *testing.T) {
	engine := DefaultEngine()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Identify(ctx, demoQuery())
	assert.Error(t, err)
}

func TestAttachAuthors_NoMatchStaysStandalone(t *testing.T) {
	leads := []model.Lead{
		{SourceID: "linkedin:a", FullName: "Dr. Sarah Johnson", Company: "Pfizer Inc"},
		{SourceID: "pubmed:b", FullName: "Dr. Lisa Wang", Company: model.Unknown,
			Publications: []model.Publication{{Title: "A Paper", Year: 2024}}},
	}

	out := attachAuthors(leads)
	require.Len(t, out, 2)
	assert.Empty(t, out[0].Publications)
}

func TestAttachAuthors_MatchesEitherContainment(t *testing.T) {
	leads := []model.Lead{
		{SourceID: "linkedin:a", FullName: "Sarah Johnson", Company: "Pfizer Inc"},
		// The author form is longer than the profile form.
		{SourceID: "pubmed:b", FullName: "Dr. Sarah Johnson", Company: "",
			Publications: []model.Publication{{Title: "A Paper", Year: 2024, PMID: "1"}}},
	}

	out := attachAuthors(leads)
	require.Len(t, out, 1)
	require.Len(t, out[0].Publications, 1)
	assert.Equal(t, []string{"linkedin:a", "pubmed:b"}, out[0].Sources)
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Dr. Sarah Johnson", "dr-sarah-johnson"},
		{"  SOT Dr. Emily Rodriguez ", "sot-dr-emily-rodriguez"},
		{"3D Models", "3d-models"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slug(tt.in), tt.in)
	}
}
