// Package main provides the entry point for the feature pipeline CLI.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/match-point/internal/clean"
	"github.com/yourusername/match-point/internal/config"
	"github.com/yourusername/match-point/internal/dataset"
	"github.com/yourusername/match-point/internal/evaluate"
	"github.com/yourusername/match-point/internal/features"
	"github.com/yourusername/match-point/internal/logger"
	"github.com/yourusername/match-point/internal/metrics"
	"github.com/yourusername/match-point/internal/ml"
	"github.com/yourusername/match-point/internal/models"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	log        *logrus.Logger
	cfg        *config.Config
)

var (
	holdoutFraction float64
	maxMatches      int
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	evaluateCmd.Flags().Float64Var(&holdoutFraction, "holdout", 0.2, "Trailing fraction of matches to score")
	evaluateCmd.Flags().IntVar(&maxMatches, "max-matches", 0, "Cap on scored matches, 0 for no cap")
	rootCmd.AddCommand(evaluateCmd)
}

var rootCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run the match feature engineering pipeline",
	Long: `Reads the yearly match files, cleans and normalizes them, runs the
chronological feature stages and writes the engineered frame.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		log = logger.NewLogger(cfg.App.LogLevel)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline()
	},
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score the trained model against recorded outcomes",
	Long: `Replays the trailing holdout of the engineered frame through the model
service and reports accuracy, log loss and Brier score.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEvaluation(cmd.Context())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runPipeline() error {
	start := time.Now()
	metrics.InitRegistry()

	variant, err := clean.ParseVariant(cfg.Pipeline.Variant)
	if err != nil {
		return err
	}

	reader := dataset.NewReader(log)
	raws, err := reader.LoadYearly(cfg.Data.Dir, cfg.Data.StartYear, cfg.Data.EndYear)
	if err != nil {
		return err
	}

	cleaner := clean.NewCleaner(variant, log)
	cleaned, err := cleaner.Clean(raws, reader.Header())
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"matches": len(cleaned),
		"dropped": cleaner.DroppedRows(),
	}).Info("Cleaning complete")

	normalizer := features.NewNormalizer(rand.NewSource(cfg.Pipeline.Seed))
	records := normalizer.Normalize(cleaned)

	engineer := features.NewEngineer(log)
	frame, err := engineer.Run(records)
	if err != nil {
		return err
	}
	metrics.RecordPipelineRun(frame.Len(), time.Since(start).Seconds())

	if err := os.MkdirAll(cfg.Pipeline.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	featuresPath := filepath.Join(cfg.Pipeline.OutputDir, "features.csv")
	if err := dataset.WriteFrameFile(featuresPath, frame); err != nil {
		return err
	}

	namesPath := filepath.Join(cfg.Pipeline.OutputDir, "players.csv")
	if err := dataset.WritePlayerNames(namesPath, playerNames(raws)); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"rows":     frame.Len(),
		"columns":  len(frame.Columns()),
		"features": featuresPath,
		"players":  namesPath,
		"duration": time.Since(start).String(),
	}).Info("Pipeline complete")
	return nil
}

func runEvaluation(ctx context.Context) error {
	frame, err := dataset.ReadFrameFile(filepath.Join(cfg.Pipeline.OutputDir, "features.csv"))
	if err != nil {
		return err
	}

	client := ml.NewHTTPClient(&cfg.ModelService, log)
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx); err != nil {
		return fmt.Errorf("model service unreachable: %w", err)
	}

	evaluator := evaluate.NewEvaluator(client, log)
	result, err := evaluator.Run(ctx, frame, evaluate.Config{
		HoldoutFraction: holdoutFraction,
		MaxMatches:      maxMatches,
	})
	if err != nil {
		return err
	}

	fmt.Println(evaluate.GenerateConsoleReport(result))
	return nil
}

// playerNames collects the display name last seen for each player id.
func playerNames(raws []models.RawMatch) map[int]string {
	names := make(map[int]string)
	for i := range raws {
		names[raws[i].WinnerID] = raws[i].WinnerName
		names[raws[i].LoserID] = raws[i].LoserName
	}
	return names
}
