package faqmatch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/soundprediction/faqmatch/pkg/config"
)

var matchCmd = &cobra.Command{
	Use:   "match [query]",
	Short: "Match a single query against the corpus",
	Long: `Match a free-text query against the FAQ corpus and print the decision
as JSON. An abstention prints a result with null match fields and a
non-zero confidence showing how close the best candidate came.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().String("corpus", "", "Path to the corpus JSONL file")
	matchCmd.Flags().String("cache", "", "Path to the bundle cache directory")
	matchCmd.Flags().Float64("threshold", 0, "Confidence threshold for match decisions")
}

func runMatch(cmd *cobra.Command, args []string) error {
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

	logger := newLogger(cfg)
	matcher, err := newMatcher(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	defer matcher.Close(ctx)

	if err := matcher.LoadCorpusFile(ctx, cfg.Corpus.Path); err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}

	query := strings.Join(args, " ")
	result, err := matcher.Match(ctx, query)
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	encoded := json.NewEncoder(os.Stdout)
	encoded.SetIndent("", "  ")
	return encoded.Encode(result)
}
