package model

import "time"

// RunStatus represents the current state of a pipeline run.
type RunStatus string

const (
	RunStatusQueued      RunStatus = "queued"
	RunStatusIdentifying RunStatus = "identifying"
	RunStatusEnriching   RunStatus = "enriching"
	RunStatusScoring     RunStatus = "scoring"
	RunStatusComplete    RunStatus = "complete"
	RunStatusFailed      RunStatus = "failed"
)

// Query describes what a run should look for.
type Query struct {
	Titles      []string `json:"titles,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	Locations   []string `json:"locations,omitempty"`
	Conferences []string `json:"conferences,omitempty"`
	Limit       int      `json:"limit,omitempty"` // per-source identification cap, 0 = source default
}

// Run represents a single pipeline run.
type Run struct {
	ID        string      `json:"id"`
	Query     Query       `json:"query"`
	Status    RunStatus   `json:"status"`
	Summary   *RunSummary `json:"summary,omitempty"`
	Error     string      `json:"error,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// RunSummary holds the headline metrics for a completed run.
type RunSummary struct {
	Total     int           `json:"total"`
	HighScore int           `json:"high_score"` // leads scoring 70 or above
	AvgScore  float64       `json:"avg_score"`
	WithEmail int           `json:"with_email"`
	Phases    []PhaseResult `json:"phases,omitempty"`
}

// PhaseStatus represents the current state of a pipeline phase.
type PhaseStatus string

const (
	PhaseStatusComplete PhaseStatus = "complete"
	PhaseStatusFailed   PhaseStatus = "failed"
)

// PhaseResult holds the outcome of a pipeline phase.
type PhaseResult struct {
	Name     string      `json:"name"`
	Status   PhaseStatus `json:"status"`
	Duration int64       `json:"duration_ms"`
	Leads    int         `json:"leads"`
	Error    string      `json:"error,omitempty"`
}

// Summarize computes the headline metrics over a ranked result set.
func Summarize(leads []RankedLead) RunSummary {
	s := RunSummary{Total: len(leads)}
	if len(leads) == 0 {
		return s
	}
	sum := 0
	for _, l := range leads {
		sum += l.Score
		if l.Score >= 70 {
			s.HighScore++
		}
		if !IsUnknown(l.Email) {
			s.WithEmail++
		}
	}
	s.AvgScore = float64(sum) / float64(len(leads))
	return s
}
