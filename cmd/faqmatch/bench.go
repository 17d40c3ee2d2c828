package faqmatch

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/soundprediction/faqmatch/pkg/benchmark"
	"github.com/soundprediction/faqmatch/pkg/config"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run the retrieval benchmark",
	Long: `Run the labeled benchmark query set against the corpus and report
accuracy, abstention quality and latency percentiles. Open-set queries
have no expected entry; abstaining on them is scored as correct.`,
	RunE: runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().String("queries", "benchmark/queries.json", "Path to the benchmark query set")
	benchCmd.Flags().String("corpus", "", "Path to the corpus JSONL file")
	benchCmd.Flags().String("cache", "", "Path to the bundle cache directory")
	benchCmd.Flags().Float64("threshold", 0, "Confidence threshold for match decisions")
	benchCmd.Flags().String("output", "", "Directory for results.json and results.parquet (empty skips writing)")
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("corpus") {
		cfg.Corpus.Path, _ = cmd.Flags().GetString("corpus")
	}
	if cmd.Flags().Changed("cache") {
		cfg.Corpus.CachePath, _ = cmd.Flags().GetString("cache")
	}
	if cmd.Flags().Changed("threshold") {
		cfg.Matcher.Threshold, _ = cmd.Flags().GetFloat64("threshold")
	}
	queriesPath, _ := cmd.Flags().GetString("queries")
	outputDir, _ := cmd.Flags().GetString("output")

	logger := newLogger(cfg)
	matcher, err := newMatcher(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()
	defer matcher.Close(ctx)

	if err := matcher.LoadCorpusFile(ctx, cfg.Corpus.Path); err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}

	querySet, err := benchmark.LoadQueries(queriesPath)
	if err != nil {
		return fmt.Errorf("failed to load queries: %w", err)
	}

	runner := benchmark.NewRunner(matcher, os.Stderr)
	results, err := runner.Run(ctx, querySet.Queries, cfg.Matcher.Threshold)
	if err != nil {
		return fmt.Errorf("benchmark run failed: %w", err)
	}

	summary := benchmark.Aggregate(results)
	benchmark.Report(os.Stdout, summary, results)

	if outputDir != "" {
		runDir, err := benchmark.WriteResults(outputDir, cfg.Matcher.Threshold, summary, results)
		if err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
		fmt.Printf("Results written to %s\n", runDir)
	}
	return nil
}
