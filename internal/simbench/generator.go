package simbench

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"

	"github.com/edruela/volleyball-simulator/internal/domain/model"
	"github.com/edruela/volleyball-simulator/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	seedDivisor        = 1 << 31
	tierDivisor        = 6
)

// Attribute ranges per club quality tier, on the 0-100 scale.
const (
	eliteMin     = 80.0
	eliteRange   = 15.0
	strongMin    = 65.0
	strongRange  = 15.0
	averageMin   = 45.0
	averageRange = 20.0
	weakMin      = 25.0
	weakRange    = 20.0
	mixedMin     = 20.0
	mixedRange   = 70.0
)

// Constants for club quality cases.
const (
	caseAverageClub  = 0
	caseStrongClub   = 1
	caseWeakClub     = 2
	caseEliteClub    = 3
	caseMixedClub    = 4
	caseAverageClub2 = 5
)

// A 12-player lineup covering every position.
var lineupPositions = []model.Position{ //nolint:gochecknoglobals // fixed benchmark lineup
	model.PositionSetter, model.PositionSetter,
	model.PositionOutsideHitter, model.PositionOutsideHitter,
	model.PositionOutsideHitter, model.PositionOutsideHitter,
	model.PositionMiddleBlocker, model.PositionMiddleBlocker,
	model.PositionMiddleBlocker,
	model.PositionOppositeHitter, model.PositionOppositeHitter,
	model.PositionLibero,
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// generateRequests creates the specified number of match requests with
// unique request IDs and varied club quality.
func generateRequests(ctx context.Context, config *Config, stats *Stats) ([]model.MatchRequest, error) {
	logger.Get().Info(ctx, "generating match requests", logger.Int("numMatches", config.NumMatches))

	requests := make([]model.MatchRequest, config.NumMatches)

	type requestResult struct {
		index   int
		request model.MatchRequest
		err     error
	}

	resultChan := make(chan requestResult, config.NumMatches)

	// Use worker pool for request generation
	workerCount := minInt(config.Workers, config.NumMatches)
	perWorker := config.NumMatches / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * perWorker
		end := start + perWorker
		if worker == workerCount-1 {
			end = config.NumMatches // Last worker gets the remainder
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- requestResult{index: i, err: ctx.Err()}
					return
				default:
					resultChan <- requestResult{index: i, request: generateSingleRequest(i)}
				}
			}
		}(start, end)
	}

	// Collect results
	for i := 0; i < config.NumMatches; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during request generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate request %d: %w", result.index, result.err)
			}
			requests[result.index] = result.request
		}
	}

	stats.MatchesGenerated = len(requests)
	logger.Get().Info(ctx, "generated match requests successfully", logger.Int("count", len(requests)))

	return requests, nil
}

// generateSingleRequest creates one match request with a fresh seed and
// two randomly tiered clubs.
func generateSingleRequest(index int) model.MatchRequest {
	seed, _ := rand.Int(rand.Reader, big.NewInt(seedDivisor))

	homeID := fmt.Sprintf("club-h-%d", index)
	awayID := fmt.Sprintf("club-a-%d", index)

	return model.MatchRequest{
		RequestID: uuid.New().String(),
		Seed:      seed.Int64(),
		Home: model.TeamSheet{
			Club: model.Club{
				ID:              homeID,
				Name:            fmt.Sprintf("Home Club %d", index),
				StadiumCapacity: 1000 + index%9000,
				DivisionTier:    1 + index%5,
			},
			Roster:  generateRoster(homeID),
			Tactics: model.DefaultTactics(),
		},
		Away: model.TeamSheet{
			Club: model.Club{
				ID:              awayID,
				Name:            fmt.Sprintf("Away Club %d", index),
				StadiumCapacity: 1000 + index%9000,
				DivisionTier:    1 + index%5,
			},
			Roster:  generateRoster(awayID),
			Tactics: model.DefaultTactics(),
		},
	}
}

// generateRoster builds a full 12-player roster with attributes drawn
// from a randomly chosen quality tier.
func generateRoster(clubID string) model.Roster {
	tierMin, tierRange := pickTier()

	players := make([]model.Player, len(lineupPositions))
	for i, pos := range lineupPositions {
		players[i] = model.Player{
			ID:         uuid.New().String(),
			Name:       fmt.Sprintf("%s player %d", clubID, i),
			Position:   pos,
			Attributes: generateAttributes(tierMin, tierRange),
		}
	}
	return model.Roster{ClubID: clubID, Players: players}
}

// pickTier selects an attribute range with varied distribution.
func pickTier() (float64, float64) {
	randNum, _ := rand.Int(rand.Reader, big.NewInt(tierDivisor))
	switch randNum.Int64() {
	case caseStrongClub:
		return strongMin, strongRange
	case caseWeakClub:
		return weakMin, weakRange
	case caseEliteClub:
		// Elite clubs are rare
		return eliteMin, eliteRange
	case caseMixedClub:
		// Random across the full range
		return mixedMin, mixedRange
	case caseAverageClub, caseAverageClub2:
		fallthrough
	default:
		// Average clubs are the most common
		return averageMin, averageRange
	}
}

// generateAttributes draws every attribute uniformly from the tier range.
func generateAttributes(tierMin, tierRange float64) model.PlayerAttributes {
	roll := func() float64 { return tierMin + getRandomFloat()*tierRange }
	return model.PlayerAttributes{
		SpikePower:       roll(),
		SpikeAccuracy:    roll(),
		BlockTiming:      roll(),
		PassingAccuracy:  roll(),
		SettingPrecision: roll(),
		ServePower:       roll(),
		ServeAccuracy:    roll(),
		CourtVision:      roll(),
		DecisionMaking:   roll(),
		Communication:    roll(),
		Stamina:          roll(),
		Strength:         roll(),
		Agility:          roll(),
		JumpHeight:       roll(),
		Speed:            roll(),
	}
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
