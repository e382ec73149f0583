package rank

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siddheshmm/leadgen-cli/internal/model"
	"github.com/siddheshmm/leadgen-cli/internal/scoring"
)

func newTestRanker(t *testing.T) (*Ranker, *scoring.Engine) {
	t.Helper()
	engine, err := scoring.New(scoring.DefaultRules(), scoring.WithNow(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	return New(engine), engine
}

func TestRank_SortsByScoreDescending(t *testing.T) {
	ranker, engine := newTestRanker(t)

	scored := engine.ScoreAll([]model.Lead{
		{SourceID: "a", FullName: "A", Company: "Acme"},                                        // 0
		{SourceID: "b", FullName: "B", Company: "Moderna", FundingStage: model.FundingSeriesB}, // 20
		{SourceID: "c", FullName: "C", Company: "Pfizer", Title: "Director of Toxicology"},     // 30
	})

	ranked := ranker.Rank(scored)
	require.Len(t, ranked, 3)
	assert.Equal(t, "c", ranked[0].SourceID)
	assert.Equal(t, "b", ranked[1].SourceID)
	assert.Equal(t, "a", ranked[2].SourceID)
}

func TestRank_DenseRankSharesNumbers(t *testing.T) {
	ranker, engine := newTestRanker(t)

	scored := engine.ScoreAll([]model.Lead{
		{SourceID: "a", FullName: "A", Company: "X", NAMsAdopter: true}, // 10
		{SourceID: "b", FullName: "B", Company: "Y", NAMsAdopter: true}, // 10
		{SourceID: "c", FullName: "C", Company: "Z"},                    // 0
	})

	ranked := ranker.Rank(scored)
	require.Len(t, ranked, 3)
	// Two leads at 10 share rank 1; the next distinct score takes rank 2.
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 1, ranked[1].Rank)
	assert.Equal(t, 2, ranked[2].Rank)
}

func TestRank_TieBreakByMissingRequiredFields(t *testing.T) {
	ranker, engine := newTestRanker(t)

	// Both score 10 from NAMs; the complete record ranks ahead.
	incomplete := model.Lead{SourceID: "a", FullName: "A", NAMsAdopter: true}
	complete := model.Lead{SourceID: "z", FullName: "Z", Title: "Scientist", Company: "Acme", Email: "z@acme.com", NAMsAdopter: true}

	ranked := ranker.Rank(engine.ScoreAll([]model.Lead{incomplete, complete}))
	require.Len(t, ranked, 2)
	assert.Equal(t, "z", ranked[0].SourceID)
	assert.Equal(t, "a", ranked[1].SourceID)
}

func TestRank_TieBreakBySourceID(t *testing.T) {
	ranker, engine := newTestRanker(t)

	a := model.Lead{SourceID: "linkedin:zz", FullName: "P One", Title: "Scientist", Company: "Acme", Email: "p1@acme.com"}
	b := model.Lead{SourceID: "linkedin:aa", FullName: "P Two", Title: "Scientist", Company: "Beta", Email: "p2@beta.com"}

	ranked := ranker.Rank(engine.ScoreAll([]model.Lead{a, b}))
	require.Len(t, ranked, 2)
	assert.Equal(t, "linkedin:aa", ranked[0].SourceID)
	assert.Equal(t, "linkedin:zz", ranked[1].SourceID)
}

func TestRank_Deterministic(t *testing.T) {
	ranker, engine := newTestRanker(t)

	leads := []model.Lead{
		{SourceID: "c", FullName: "C", Company: "Z", NAMsAdopter: true},
		{SourceID: "a", FullName: "A", Company: "X", NAMsAdopter: true},
		{SourceID: "b", FullName: "B", Company: "Y"},
	}

	first := ranker.Rank(engine.ScoreAll(leads))
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ranker.Rank(engine.ScoreAll(leads)))
	}
}

func TestRank_MergedDuplicateIsRescoredNotMaxed(t *testing.T) {
	ranker, engine := newTestRanker(t)

	// Same person from two sources with disjoint signals.
	fromConference := model.Lead{
		SourceID:     "conference:sot-2025:emily-rodriguez",
		FullName:     "Emily Rodriguez",
		Company:      "Biogen",
		FundingStage: model.FundingSeriesB, // 20 points alone
	}
	fromLinkedIn := model.Lead{
		SourceID:    "linkedin:emily-rodriguez",
		FullName:    "emily rodriguez",
		Company:     "BIOGEN",
		TechTags:    []string{"in vitro models"}, // 15
		NAMsAdopter: true,                        // 10
	}

	scored := engine.ScoreAll([]model.Lead{fromConference, fromLinkedIn})
	assert.Equal(t, 20, scored[0].Score)
	assert.Equal(t, 25, scored[1].Score)

	ranked := ranker.Rank(scored)
	require.Len(t, ranked, 1)

	// Union surfaces all three signals: 20+15+10 = 45, not max(20, 25).
	assert.Equal(t, 45, ranked[0].Score)
	assert.Len(t, ranked[0].Breakdown, 3)
	assert.Equal(t, "conference:sot-2025:emily-rodriguez", ranked[0].SourceID)
}

func TestRank_DuplicateSourceIDDoesNotSurviveDedup(t *testing.T) {
	ranker, engine := newTestRanker(t)

	a := model.Lead{SourceID: "linkedin:sarah-johnson", FullName: "Sarah Johnson", Company: "Pfizer"}
	b := model.Lead{SourceID: "linkedin:sarah-johnson", FullName: "Sarah Johnson", Company: "Pfizer", NAMsAdopter: true}

	ranked := ranker.Rank(engine.ScoreAll([]model.Lead{a, b}))
	require.Len(t, ranked, 1)

	seen := map[string]bool{}
	for _, r := range ranked {
		require.False(t, seen[r.SourceID], "duplicate source id in ranked output")
		seen[r.SourceID] = true
	}
}

func TestRank_EmptyInput(t *testing.T) {
	ranker, _ := newTestRanker(t)
	assert.Empty(t, ranker.Rank(nil))
}
