// Package store persists pipeline runs and their ranked leads.
package store

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/siddheshmm/leadgen-cli/internal/model"
)

// ErrNotFound is returned when a run or lead set does not exist.
var ErrNotFound = eris.New("store: not found")

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// LeadFilter specifies criteria for reading a run's leads.
type LeadFilter struct {
	// MinScore drops leads scoring below it.
	MinScore int `json:"min_score,omitempty"`
	// Search keeps leads whose name or company contains it, case-insensitively.
	Search string `json:"search,omitempty"`
	// Limit caps the result. 0 means all.
	Limit int `json:"limit,omitempty"`
}

// Store defines the persistence interface for the lead-generation pipeline.
type Store interface {
	// Runs
	CreateRun(ctx context.Context, q model.Query) (*model.Run, error)
	UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error
	CompleteRun(ctx context.Context, runID string, summary model.RunSummary) error
	FailRun(ctx context.Context, runID string, cause error) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	// Leads
	SaveLeads(ctx context.Context, runID string, leads []model.RankedLead) error
	GetLeads(ctx context.Context, runID string, filter LeadFilter) ([]model.RankedLead, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open builds a Store for the configured driver and runs migrations.
// poolCfg only applies to the postgres driver and may be nil.
func Open(ctx context.Context, driver, dsn string, poolCfg *PoolConfig) (Store, error) {
	var (
		s   Store
		err error
	)
	switch strings.ToLower(driver) {
	case "sqlite", "":
		s, err = NewSQLite(dsn)
	case "postgres":
		s, err = NewPostgres(ctx, dsn, poolCfg)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}
