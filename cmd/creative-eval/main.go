package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"creative-evaluator-backend/internal/cli"
	"creative-evaluator-backend/internal/config"
	"creative-evaluator-backend/internal/logging"
	"creative-evaluator-backend/internal/models"
	"creative-evaluator-backend/internal/report"
	"creative-evaluator-backend/internal/scoring"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// CLI flags
var (
	profileFlag   string
	creativeFlags []string
	outFlag       string
	csvFlag       string
	providerFlag  string
	timeoutFlag   time.Duration
	inFlag        string
	logLevelFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "creative-eval",
	Short: "Score ad creatives against a brand profile",
	Long: `creative-eval runs the creative scoring pipeline from the command line.

Provider credentials and settings come from the same environment variables
and .env file as the server (OPENAI_API_KEY, AI_PROVIDER, ...).

Examples:
  creative-eval score --profile brand.yaml --creative hero.png --creative promo.jpg:TikTok\ Feed:true
  creative-eval score -p brand.yaml -c a.png -c b.png --out results.json --csv scores.csv
  creative-eval csv --in results.json --out scores.csv`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(logLevelFlag, false)
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one or more creatives",
	RunE:  runScore,
}

var csvCmd = &cobra.Command{
	Use:   "csv",
	Short: "Write the CSV export of a saved scoring result",
	RunE:  runCSV,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info", "Log level (debug, info, warn, error)")

	scoreCmd.Flags().StringVarP(&profileFlag, "profile", "p", "", "Brand profile YAML file")
	scoreCmd.Flags().StringArrayVarP(&creativeFlags, "creative", "c", nil, "Creative as path[:platform[:ecommerce]] (repeatable)")
	scoreCmd.Flags().StringVarP(&outFlag, "out", "o", "", "Write results JSON to this file (default stdout)")
	scoreCmd.Flags().StringVar(&csvFlag, "csv", "", "Write the scores CSV to this file")
	scoreCmd.Flags().StringVar(&providerFlag, "provider", "", "AI provider override (openai, gemini, bedrock)")
	scoreCmd.Flags().DurationVar(&timeoutFlag, "timeout", 5*time.Minute, "Scoring request timeout")
	_ = scoreCmd.MarkFlagRequired("profile")
	_ = scoreCmd.MarkFlagRequired("creative")

	csvCmd.Flags().StringVarP(&inFlag, "in", "i", "", "Results JSON file")
	csvCmd.Flags().StringVarP(&outFlag, "out", "o", "", "CSV output file")
	_ = csvCmd.MarkFlagRequired("in")
	_ = csvCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(scoreCmd, csvCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadUnvalidated()
	if err != nil {
		return err
	}
	if providerFlag != "" {
		cfg.AIProvider = providerFlag
	}

	bip, err := cli.LoadProfile(profileFlag)
	if err != nil {
		return err
	}

	batch, err := cli.StageCreatives(creativeFlags)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeoutFlag)
	defer cancel()

	evaluator, err := scoring.NewEvaluator(ctx, cfg)
	if err != nil {
		return err
	}

	log.Info().
		Str("provider", evaluator.Name()).
		Int("creatives", batch.Len()).
		Msg("Scoring creatives")

	result, err := scoring.NewPipeline(evaluator).Score(ctx, bip, batch.Inputs())
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	if outFlag == "" {
		fmt.Println(string(out))
	} else if err := os.WriteFile(outFlag, out, 0o644); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	if csvFlag != "" {
		if err := writeCSV(result, csvFlag); err != nil {
			return err
		}
	}

	for _, r := range result.Creatives {
		fmt.Fprintf(os.Stderr, "%-40s %3d/%d\n", r.Filename, r.OverallScore, r.MaxScore())
	}
	return nil
}

func runCSV(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(inFlag)
	if err != nil {
		return fmt.Errorf("failed to read results: %w", err)
	}

	var result models.ResultsData
	if err := json.Unmarshal(data, &result); err != nil {
		return fmt.Errorf("failed to parse results %s: %w", inFlag, err)
	}
	return writeCSV(&result, outFlag)
}

// writeCSV prefers the result's own csv_data and derives one otherwise, so
// single-creative runs can be exported too.
func writeCSV(result *models.ResultsData, path string) error {
	var data []byte
	var err error
	if result.CSVData != "" {
		data, err = report.DecodeCSV(result.CSVData)
	} else {
		data, err = scoring.BuildCSV(result.Creatives)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	log.Info().Str("path", path).Int("rows", len(result.Creatives)).Msg("CSV written")
	return nil
}
