package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/siddheshmm/leadgen-cli/internal/export"
	"github.com/siddheshmm/leadgen-cli/internal/store"
)

var (
	exportOut        string
	exportSalesforce bool
	exportMinScore   int
)

var exportCmd = &cobra.Command{
	Use:   "export <run-id>",
	Short: "Export a run's ranked leads",
	Long:  "Writes a completed run's ranked leads to a CSV or XLSX file, or pushes them to Salesforce as Lead records.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		runID := args[0]

		if exportOut == "" && !exportSalesforce {
			return eris.New("nothing to do: pass --out and/or --salesforce")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		leads, err := st.GetLeads(ctx, runID, store.LeadFilter{MinScore: exportMinScore})
		if err != nil {
			return eris.Wrap(err, "load leads")
		}
		if len(leads) == 0 {
			return eris.Errorf("run %s has no leads to export", runID)
		}

		if exportOut != "" {
			if err := writeLeadsFile(leads, exportOut); err != nil {
				return err
			}
			zap.L().Info("wrote leads file",
				zap.String("path", exportOut),
				zap.Int("leads", len(leads)),
			)
		}

		if exportSalesforce {
			client, err := initSalesforce()
			if err != nil {
				return err
			}

			res, err := export.NewSalesforceTarget(client).Push(ctx, leads)
			if err != nil {
				return eris.Wrap(err, "salesforce export")
			}
			zap.L().Info("salesforce export complete",
				zap.String("run_id", runID),
				zap.Int("inserted", res.Inserted),
				zap.Int("updated", res.Updated),
				zap.Int("failed", len(res.Failed)),
			)
		}

		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (.csv or .xlsx)")
	exportCmd.Flags().BoolVar(&exportSalesforce, "salesforce", false, "push leads to Salesforce")
	exportCmd.Flags().IntVar(&exportMinScore, "min-score", 0, "only export leads scoring at least this")
	rootCmd.AddCommand(exportCmd)
}
