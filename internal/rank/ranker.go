package rank

import (
	"sort"

	"go.uber.org/zap"

	"github.com/siddheshmm/leadgen-cli/internal/model"
)

// Scorer recomputes a lead's score from its raw signals. Ranking needs it
// because merging duplicates can surface new signals, and the merged record
// must be rescored rather than keep the higher of the two old scores.
type Scorer interface {
	Score(model.Lead) model.ScoredLead
}

// Ranker orders scored leads into the final ranked sequence.
type Ranker struct {
	scorer Scorer
}

// New builds a Ranker around the given scorer.
func New(scorer Scorer) *Ranker {
	return &Ranker{scorer: scorer}
}

// Rank deduplicates, sorts, and dense-ranks a scored batch.
//
// Leads sharing a canonical identity key are merged (field union, first seen
// wins) and the survivor is rescored over the unioned fields. Sort order is
// score descending, ties broken by fewer missing outreach fields, then by
// source id ascending, so repeated runs produce identical output. Rank is
// dense and 1-based: equal scores share a rank number.
func (r *Ranker) Rank(scored []model.ScoredLead) []model.RankedLead {
	deduped := r.dedup(scored)

	sort.Slice(deduped, func(i, j int) bool {
		a, b := deduped[i], deduped[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		am, bm := a.MissingRequired(), b.MissingRequired()
		if am != bm {
			return am < bm
		}
		return a.SourceID < b.SourceID
	})

	ranked := make([]model.RankedLead, 0, len(deduped))
	rankNo := 0
	prevScore := -1
	for _, s := range deduped {
		if s.Score != prevScore {
			rankNo++
			prevScore = s.Score
		}
		ranked = append(ranked, model.RankedLead{ScoredLead: s, Rank: rankNo})
	}

	return ranked
}

// dedup merges scored duplicates by canonical identity key and rescores any
// record whose fields changed in the merge. Already-deduplicated input
// passes through untouched.
func (r *Ranker) dedup(scored []model.ScoredLead) []model.ScoredLead {
	byKey := make(map[string]int, len(scored))
	out := make([]model.ScoredLead, 0, len(scored))
	merged := make(map[int]bool)

	for _, s := range scored {
		key := dedupKey(s.Lead)
		if idx, ok := byKey[key]; ok {
			out[idx].Lead = mergeLead(out[idx].Lead, s.Lead)
			merged[idx] = true
			continue
		}
		byKey[key] = len(out)
		s.Lead = withSources(s.Lead)
		out = append(out, s)
	}

	for idx := range merged {
		rescored := r.scorer.Score(out[idx].Lead)
		zap.L().Debug("rank: rescored merged lead",
			zap.String("source_id", out[idx].SourceID),
			zap.Int("old_score", out[idx].Score),
			zap.Int("new_score", rescored.Score),
		)
		out[idx] = rescored
	}

	return out
}
