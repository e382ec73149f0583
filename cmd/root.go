package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/siddheshmm/leadgen-cli/internal/config"
)

var cfg *config.Config

var rulesFile string

var rootCmd = &cobra.Command{
	Use:   "leadgen",
	Short: "Lead identification, enrichment, and propensity ranking",
	Long:  "Identifies candidate leads from configured sources, enriches them concurrently, scores propensity to buy against a deterministic rule table, and ranks the result.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rulesFile, "rules", "", "scoring rules YAML file (overrides configured rules)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
