package identify

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/siddheshmm/leadgen-cli/internal/model"
	"github.com/siddheshmm/leadgen-cli/internal/rank"
)

// Engine coordinates all identification sources. Sources run in registration
// order so first-seen field precedence is reproducible; a failing source is
// skipped, never fatal.
type Engine struct {
	sources []Source
}

// NewEngine builds an engine over the given sources.
func NewEngine(sources ...Source) *Engine {
	return &Engine{sources: sources}
}

// DefaultEngine wires the built-in demo directories.
func DefaultEngine() *Engine {
	return NewEngine(
		NewProfileDirectory(DemoProfiles()),
		NewPublicationDirectory(DemoPapers()),
		NewConferenceDirectory(DemoAttendees()),
	)
}

// Identify gathers leads from every source, folds publication-only authors
// into the profile leads they evidently are, and merges duplicates by
// canonical identity. Returns unique leads in first-seen order.
func (e *Engine) Identify(ctx context.Context, q model.Query) ([]model.Lead, error) {
	log := zap.L().With(zap.String("component", "identify"))

	var collected []model.Lead
	for _, src := range e.sources {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "identify: canceled")
		}

		leads, err := src.Identify(ctx, q)
		if err != nil {
			log.Warn("source failed, skipping",
				zap.String("source", src.Name()),
				zap.Error(err),
			)
			continue
		}
		log.Debug("source done",
			zap.String("source", src.Name()),
			zap.Int("leads", len(leads)),
		)
		collected = append(collected, leads...)
	}

	attached := attachAuthors(collected)
	merged := rank.Merge(attached)

	log.Info("identification complete",
		zap.Int("collected", len(collected)),
		zap.Int("unique", len(merged)),
	)
	return merged, nil
}

// attachAuthors folds author records that carry publications but no
// affiliation into leads that already have one, matching when either
// normalized name contains the other. Unmatched authors stay standalone.
func attachAuthors(leads []model.Lead) []model.Lead {
	out := make([]model.Lead, 0, len(leads))
	var authors []model.Lead
	for _, l := range leads {
		if model.IsUnknown(l.Company) && len(l.Publications) > 0 {
			authors = append(authors, l)
			continue
		}
		out = append(out, l)
	}

	for _, a := range authors {
		aname := model.NormalizeName(a.FullName)
		idx := -1
		for i := range out {
			lname := model.NormalizeName(out[i].FullName)
			if aname == "" || lname == "" {
				continue
			}
			if strings.Contains(lname, aname) || strings.Contains(aname, lname) {
				idx = i
				break
			}
		}
		if idx < 0 {
			out = append(out, a)
			continue
		}

		for _, pub := range a.Publications {
			if !hasPublication(out[idx].Publications, pub) {
				out[idx].Publications = append(out[idx].Publications, pub)
			}
		}
		if out[idx].SourceID != "" && !hasString(out[idx].Sources, out[idx].SourceID) {
			out[idx].Sources = append(out[idx].Sources, out[idx].SourceID)
		}
		if a.SourceID != "" && !hasString(out[idx].Sources, a.SourceID) {
			out[idx].Sources = append(out[idx].Sources, a.SourceID)
		}
	}

	return out
}

func hasString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func hasPublication(list []model.Publication, p model.Publication) bool {
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
