package simbench

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/edruela/volleyball-simulator/internal/domain/model"
)

// retrieveResults fetches the stored result for every submitted match
// concurrently.
func retrieveResults(ctx context.Context, config *Config, requests []model.MatchRequest, stats *Stats) ([]model.MatchResult, error) {
	log.Printf("🏐 Retrieving results for %d matches with %d workers...", len(requests), config.Workers)

	client := newHTTPClient(config.Timeout)

	matchIDs := make([]string, len(requests))
	for i, req := range requests {
		matchIDs[i] = req.RequestID
	}

	// Results storage
	results := make([]model.MatchResult, len(matchIDs))
	var (
		retrieved int64
		failed    int64
	)

	// Progress reporting
	var lastReport time.Time
	reportInterval := 1 * time.Second

	// Create worker pool
	indexChan := make(chan int, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for index := range indexChan {
				select {
				case <-ctx.Done():
					return
				default:
					matchID := matchIDs[index]
					result, err := retrieveSingleResult(client, config.BaseURL, matchID)

					if err != nil {
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							log.Printf("⚠️  Failed to get result for %s: %v", matchID, err)
						}
					} else {
						results[index] = result
						atomic.AddInt64(&retrieved, 1)
					}

					// Progress reporting
					if time.Since(lastReport) >= reportInterval {
						lastReport = time.Now()
						total := atomic.LoadInt64(&retrieved) + atomic.LoadInt64(&failed)
						ret := atomic.LoadInt64(&retrieved)
						fail := atomic.LoadInt64(&failed)
						log.Printf("🏐 Results: %d/%d retrieved (success: %d, failed: %d)",
							total, len(matchIDs), ret, fail)
					}
				}
			}
		}()
	}

	// Send indices to workers
	go func() {
		defer close(indexChan)
		for i := range matchIDs {
			select {
			case <-ctx.Done():
				return
			case indexChan <- i:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Filter out empty entries (failed retrievals)
	validResults := make([]model.MatchResult, 0, len(results))
	for _, result := range results {
		if result.MatchID != "" { // Empty MatchID indicates failed retrieval
			validResults = append(validResults, result)
		}
	}

	// Update stats
	stats.ResultsRetrieved = len(validResults)

	log.Printf(`✅ Result retrieval completed:
   Retrieved: %d
   Failed: %d
`, len(validResults), int(atomic.LoadInt64(&failed)))

	return validResults, nil
}

// retrieveSingleResult fetches one stored match result by id.
func retrieveSingleResult(client *HTTPClient, baseURL, matchID string) (model.MatchResult, error) {
	url := fmt.Sprintf("%s/matches/%s", baseURL, matchID)

	resp, err := client.Get(url)
	if err != nil {
		return model.MatchResult{}, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return model.MatchResult{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return model.MatchResult{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var result model.MatchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return model.MatchResult{}, fmt.Errorf("failed to parse response: %w", err)
	}

	return result, nil
}

// getRecentMatches lists the most recent results from the service.
func getRecentMatches(ctx context.Context, config *Config) ([]model.MatchResult, error) {
	log.Printf("📋 Listing the %d most recent matches...", config.RecentN)

	client := newHTTPClient(config.Timeout)
	url := fmt.Sprintf("%s/matches?limit=%d", config.BaseURL, config.RecentN)

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var recent []model.MatchResult
	if err := json.Unmarshal(body, &recent); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	log.Printf("✅ Retrieved %d recent matches", len(recent))
	return recent, nil
}
