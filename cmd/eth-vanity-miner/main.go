package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/screa/eth-vanity-miner/internal/config"
	"github.com/screa/eth-vanity-miner/internal/keygen"
	logpkg "github.com/screa/eth-vanity-miner/internal/logger"
	minerpkg "github.com/screa/eth-vanity-miner/pkg/miner"
	"github.com/screa/eth-vanity-miner/pkg/pattern"
)

var (
	cfg    = config.NewConfig()
	logger *logpkg.Logger
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "eth-vanity-miner",
		Short: "Parallel Ethereum vanity address miner",
		Long: `A command line utility for mining Ethereum vanity addresses.
It generates secp256k1 keypairs across parallel workers until one derives
an address matching the requested hex prefix and/or suffix.`,
		Run: runMiner,
	}

	rootCmd.Flags().IntVarP(&cfg.Workers, "workers", "w", runtime.NumCPU(), "Number of worker goroutines")
	rootCmd.Flags().StringVarP(&cfg.Prefix, "prefix", "p", "", "Address prefix to match (hex, optional 0x)")
	rootCmd.Flags().StringVarP(&cfg.Suffix, "suffix", "s", "", "Address suffix to match (hex)")
	rootCmd.Flags().BoolVarP(&cfg.CaseSensitive, "case-sensitive", "c", false, "Match against the EIP-55 checksummed address")
	rootCmd.Flags().StringVarP(&cfg.LogFile, "log-file", "l", "", "Log file for progress tracking (default: stdout)")
	rootCmd.Flags().IntVarP(&cfg.LogInterval, "log-interval", "i", 5, "Progress logging interval in seconds")
	rootCmd.Flags().StringVarP(&cfg.Output, "output", "o", "", "Write the found keypair to this file (mode 0600)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runMiner(cmd *cobra.Command, args []string) {
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	spec, err := pattern.Build(cfg.Prefix, cfg.Suffix, cfg.CaseSensitive)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	setupLogging()
	logger.Printf("Starting vanity address miner with %d workers...", cfg.Workers)
	logger.Printf("Target: %s", cfg.GetTargetDescription())
	logger.Printf("Difficulty: 1 in %s", formatFloat(spec.Difficulty()))

	reporter := newLogReporter(logger, cfg)

	// Ctrl+C cancels the search; the miner shuts its workers down before
	// Run returns.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := minerpkg.New(spec, keygen.Secp256k1{}, reporter, cfg.Workers)
	result, err := m.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Println("Search cancelled.")
			os.Exit(0)
		}
		logger.Printf("Fatal: %v", err)
		os.Exit(1)
	}

	if cfg.Output != "" {
		if err := saveResult(cfg.Output, result); err != nil {
			logger.Printf("Warning: failed to save result: %v", err)
		}
	}
}

func setupLogging() {
	if cfg.LogFile != "" {
		l, err := logpkg.NewFile(cfg.LogFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		logger = l
	} else {
		logger = logpkg.New()
	}
}
