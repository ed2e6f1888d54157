package simbench

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/edruela/volleyball-simulator/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "simbench_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the benchmark tool.
func ShowHelp() {
	os.Stdout.WriteString(`Volleyball Simulation Benchmark
===============================

A concurrent tool for load-testing the match simulation service and
verifying that results obey the scoring rules.

Usage:
  go run cmd/simbench/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -matches int
        Number of matches to generate and submit (default 1000)
  -recent int
        Number of recent results to list at the end (default 50)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Output file for generated requests (default: generated_matches_TIMESTAMP.json)
  -log string
        Log file for benchmark output (default: simbench_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Benchmark with default settings
  go run cmd/simbench/main.go

  # Benchmark with custom parameters
  go run cmd/simbench/main.go -matches 5000 -workers 16 -url http://localhost:8080

  # Benchmark with verbose output
  go run cmd/simbench/main.go -verbose -matches 1000
`)
}
