package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/siddheshmm/leadgen-cli/internal/export"
	"github.com/siddheshmm/leadgen-cli/internal/model"
)

var (
	runTitles      []string
	runKeywords    []string
	runLocations   []string
	runConferences []string
	runLimit       int
	runOut         string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline for one query",
	Long:  "Identifies, enriches, scores, and ranks leads for a query, persists the run, and prints the ranked result as JSON. Use --out to also write a CSV or XLSX file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		result, err := env.Pipeline.Run(ctx, buildQuery())
		if err != nil {
			return eris.Wrap(err, "pipeline run")
		}

		zap.L().Info("run complete",
			zap.String("run_id", result.RunID),
			zap.Int("leads", result.Summary.Total),
			zap.Int("high_score", result.Summary.HighScore),
			zap.Float64("avg_score", result.Summary.AvgScore),
			zap.Int("with_email", result.Summary.WithEmail),
		)

		if runOut != "" {
			if err := writeLeadsFile(result.Leads, runOut); err != nil {
				return err
			}
			zap.L().Info("wrote leads file", zap.String("path", runOut))
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

// buildQuery starts from the configured identification defaults and lets
// flags override each field.
func buildQuery() model.Query {
	q := model.Query{
		Titles:      cfg.Identify.Titles,
		Keywords:    cfg.Identify.Keywords,
		Locations:   cfg.Identify.Locations,
		Conferences: cfg.Identify.Conferences,
		Limit:       runLimit,
	}
	if len(runTitles) > 0 {
		q.Titles = runTitles
	}
	if len(runKeywords) > 0 {
		q.Keywords = runKeywords
	}
	if len(runLocations) > 0 {
		q.Locations = runLocations
	}
	if len(runConferences) > 0 {
		q.Conferences = runConferences
	}
	return q
}

func writeLeadsFile(leads []model.RankedLead, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return export.ExportCSV(leads, path)
	case ".xlsx":
		return export.ExportXLSX(leads, path)
	default:
		return eris.Errorf("unsupported output format: %s (want .csv or .xlsx)", path)
	}
}

func init() {
	runCmd.Flags().StringSliceVar(&runTitles, "titles", nil, "title keywords to identify against (default from config)")
	runCmd.Flags().StringSliceVar(&runKeywords, "keywords", nil, "publication keywords (default from config)")
	runCmd.Flags().StringSliceVar(&runLocations, "locations", nil, "locations to identify against (default from config)")
	runCmd.Flags().StringSliceVar(&runConferences, "conferences", nil, "conference names (default from config)")
	runCmd.Flags().IntVar(&runLimit, "limit", 0, "per-source identification cap (0 = source default)")
	runCmd.Flags().StringVar(&runOut, "out", "", "also write leads to a .csv or .xlsx file")
	rootCmd.AddCommand(runCmd)
}
