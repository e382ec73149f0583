package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/siddheshmm/leadgen-cli/internal/model"
)

func TestFormatRunsList(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC)
	runs := []model.Run{
		{
			ID:        "abc12345-6789-0000-0000-000000000000",
			Status:    model.RunStatusComplete,
			Summary:   &model.RunSummary{Total: 12, AvgScore: 54.5},
			CreatedAt: now,
			UpdatedAt: now.Add(2 * time.Second),
		},
		{
			ID:        "def12345-6789-0000-0000-000000000000",
			Status:    model.RunStatusEnriching,
			CreatedAt: now.Add(-1 * time.Hour),
			UpdatedAt: now.Add(-30 * time.Minute),
		},
	}

	var buf bytes.Buffer
	formatRunsList(&buf, runs)

	output := buf.String()
	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "STATUS")
	assert.Contains(t, output, "abc12345")
	assert.Contains(t, output, "complete")
	assert.Contains(t, output, "12")
	assert.Contains(t, output, "54.5")
	assert.Contains(t, output, "2026-03-10 10:30")
	assert.Contains(t, output, "def12345")
	assert.Contains(t, output, "enriching")
	// A run without a summary shows dashes, not zeros.
	assert.Contains(t, output, "-")
}

func TestFormatLeadsList(t *testing.T) {
	leads := []model.RankedLead{
		{
			ScoredLead: model.ScoredLead{
				Lead: model.Lead{
					FullName: "Dr. Sarah Johnson",
					Title:    "Director of Toxicology",
					Company:  "Pfizer Inc",
					Email:    "sarah.johnson@pfizer.com",
				},
				Score: 90,
			},
			Rank: 1,
		},
		{
			ScoredLead: model.ScoredLead{
				Lead: model.Lead{
					FullName: "Jane Doe",
					Title:    "Vice President of Preclinical Safety and Toxicology Operations",
					Company:  "Acme Corp",
				},
				Score: 20,
			},
			Rank: 2,
		},
	}

	var buf bytes.Buffer
	formatLeadsList(&buf, leads)

	output := buf.String()
	assert.Contains(t, output, "RANK")
	assert.Contains(t, output, "Dr. Sarah Johnson")
	assert.Contains(t, output, "sarah.johnson@pfizer.com")
	assert.Contains(t, output, "90")
	// Long titles get truncated for the table.
	assert.Contains(t, output, "...")
	assert.NotContains(t, output, "Toxicology Operations")
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "abc12345", truncateID("abc12345-6789-0000-0000-000000000000"))
	assert.Equal(t, "short", truncateID("short"))
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", truncateText("short", 10))
	assert.Equal(t, "exactlyten", truncateText("exactlyten", 10))
	assert.Equal(t, "longer ...", truncateText("longer text", 10))
}
