package faqmatch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/soundprediction/faqmatch/pkg/config"
	"github.com/soundprediction/faqmatch/pkg/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the FAQMatch HTTP server",
	Long: `Start the FAQMatch HTTP server to provide REST API access to the matcher.

The server provides endpoints for:
- Matching queries against the loaded corpus
- Health checks

Configuration can be provided through config files, environment variables, or command-line flags.`,
	RunE: runServe,
}

var (
	serveHost string
	servePort int
	serveMode string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server-specific flags
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "Server host")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Server port")
	serveCmd.Flags().StringVar(&serveMode, "mode", "release", "Server mode (debug, release, test)")

	// Corpus flags
	serveCmd.Flags().String("corpus", "", "Path to the corpus JSONL file")
	serveCmd.Flags().String("cache", "", "Path to the bundle cache directory")

	// Matcher flags
	serveCmd.Flags().Float64("threshold", 0, "Confidence threshold for match decisions")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	overrideServeFlags(cmd, cfg)

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Server.Port)
	}
	if cfg.Corpus.Path == "" {
		return fmt.Errorf("corpus path is required")
	}

	logger := newLogger(cfg)
	matcher, err := newMatcher(cfg, logger)
	if err != nil {
		return err
	}

	loadCtx, loadCancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer loadCancel()
	if err := matcher.LoadCorpusFile(loadCtx, cfg.Corpus.Path); err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}

	srv := server.New(cfg, matcher)
	srv.Setup()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			serverErrChan <- err
		}
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		fmt.Printf("\nReceived signal: %v\n", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		if err := matcher.Close(shutdownCtx); err != nil {
			return fmt.Errorf("matcher shutdown error: %w", err)
		}

		fmt.Println("Server stopped gracefully")
		return nil
	}
}

func overrideServeFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serveHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}
	if cmd.Flags().Changed("mode") {
		cfg.Server.Mode = serveMode
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
}
