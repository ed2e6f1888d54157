package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/edruela/volleyball-simulator/internal/simbench"
)

// Default configuration constants.
const (
	defaultNumMatches   = 1000
	defaultRecentN      = 50
	defaultWorkers      = 2 // multiplier for runtime.NumCPU()
	defaultTimeout      = 30 * time.Second
	defaultBenchTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numMatches = flag.Int("matches", defaultNumMatches, "Number of matches to generate and submit")
		recentN    = flag.Int("recent", defaultRecentN, "Number of recent results to list at the end")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Output file for generated requests (default: generated_matches_TIMESTAMP.json)")
		logFile    = flag.String("log", "", "Log file for benchmark output (default: simbench_log_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		simbench.ShowHelp()
		return
	}

	// Setup logging
	if err := simbench.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultBenchTimeout)
	defer cancel()

	// Create benchmark configuration
	config := &simbench.Config{
		BaseURL:    *baseURL,
		NumMatches: *numMatches,
		RecentN:    *recentN,
		Workers:    *workers,
		Timeout:    *timeout,
		OutputFile: *outputFile,
		LogFile:    *logFile,
		Verbose:    *verbose,
	}

	// Run the benchmark
	if err := simbench.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Benchmark failed: " + err.Error() + "\n")
		return
	}
}
