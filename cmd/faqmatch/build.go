package faqmatch

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/soundprediction/faqmatch/pkg/config"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Pre-encode the corpus into the bundle cache",
	Long: `Encode every corpus entry and persist the role vectors in the bundle
cache so that later serve and bench runs skip encoding. Entries already
cached for the configured dimension are reused.`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().String("corpus", "", "Path to the corpus JSONL file")
	buildCmd.Flags().String("cache", "", "Path to the bundle cache directory")
}

func runBuild(cmd *cobra.Command, args []string) error {
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
	if cfg.Corpus.CachePath == "" {
		return fmt.Errorf("a bundle cache path is required")
	}

	logger := newLogger(cfg)
	matcher, err := newMatcher(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()
	defer matcher.Close(ctx)

	start := time.Now()
	if err := matcher.LoadCorpusFile(ctx, cfg.Corpus.Path); err != nil {
		return fmt.Errorf("failed to encode corpus: %w", err)
	}

	snapshot := matcher.Snapshot()
	fmt.Printf("Encoded %d entries (dimension %d) in %s\n",
		snapshot.Len(), snapshot.Dimension(), time.Since(start).Round(time.Millisecond))
	return nil
}
