package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/siddheshmm/leadgen-cli/internal/model"
)

var (
	scoreFile        string
	scoreName        string
	scoreTitle       string
	scoreCompany     string
	scoreLocation    string
	scoreHQ          string
	scoreFunding     string
	scoreTech        []string
	scoreNAMs        bool
	scoreConferences []string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a single lead and explain the result",
	Long:  "Scores one lead against the rule table and prints the per-signal breakdown. Read the lead from a JSON file with --file or describe it with flags.",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := initScoring()
		if err != nil {
			return err
		}

		lead, err := scoreInput()
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(engine.Score(lead))
	},
}

func scoreInput() (model.Lead, error) {
	if scoreFile != "" {
		data, err := os.ReadFile(scoreFile)
		if err != nil {
			return model.Lead{}, eris.Wrap(err, "read lead file")
		}
		var lead model.Lead
		if err := json.Unmarshal(data, &lead); err != nil {
			return model.Lead{}, eris.Wrap(err, "parse lead file")
		}
		return lead, nil
	}

	if scoreName == "" {
		return model.Lead{}, eris.New("either --file or --name is required")
	}
	return model.Lead{
		FullName:       scoreName,
		Title:          scoreTitle,
		Company:        scoreCompany,
		PersonLocation: scoreLocation,
		CompanyHQ:      scoreHQ,
		FundingStage:   model.FundingStage(scoreFunding),
		TechTags:       scoreTech,
		NAMsAdopter:    scoreNAMs,
		Conferences:    scoreConferences,
	}, nil
}

func init() {
	scoreCmd.Flags().StringVar(&scoreFile, "file", "", "lead JSON file")
	scoreCmd.Flags().StringVar(&scoreName, "name", "", "lead full name")
	scoreCmd.Flags().StringVar(&scoreTitle, "title", "", "lead title")
	scoreCmd.Flags().StringVar(&scoreCompany, "company", "", "lead company")
	scoreCmd.Flags().StringVar(&scoreLocation, "location", "", "person location")
	scoreCmd.Flags().StringVar(&scoreHQ, "hq", "", "company HQ location")
	scoreCmd.Flags().StringVar(&scoreFunding, "funding", "", "funding stage (Seed, Series A, Series B, Series C+, Public)")
	scoreCmd.Flags().StringSliceVar(&scoreTech, "tech", nil, "technology tags")
	scoreCmd.Flags().BoolVar(&scoreNAMs, "nams", false, "company is a known NAMs adopter")
	scoreCmd.Flags().StringSliceVar(&scoreConferences, "conferences", nil, "conferences attended")
	rootCmd.AddCommand(scoreCmd)
}
