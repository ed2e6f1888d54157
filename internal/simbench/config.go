package simbench

import "time"

// Config holds configuration for the simulation benchmark
type Config struct {
	BaseURL    string        // Base URL of the service
	NumMatches int           // Number of matches to generate and submit
	RecentN    int           // Number of recent results to list at the end
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for generated requests
	LogFile    string        // Log file for benchmark output
	Verbose    bool          // Enable verbose logging
}

// AckResponse represents the response from match submission
type AckResponse struct {
	Status    string `json:"status"`
	MatchID   string `json:"matchId"`
	Duplicate bool   `json:"duplicate"`
}

// Stats holds benchmark statistics
type Stats struct {
	MatchesGenerated  int
	MatchesSubmitted  int
	MatchesSuccessful int
	MatchesDuplicate  int
	MatchesFailed     int
	ResultsRetrieved  int
	HomeWins          int
	AwayWins          int
	FiveSetMatches    int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
