package simbench

import (
	"fmt"
	"log"

	"github.com/edruela/volleyball-simulator/internal/domain/model"
)

// Scoring rules checked against every retrieved result.
const (
	setsToWin        = 3
	regularSetTarget = 25
	fifthSetTarget   = 15
	winMargin        = 2
	fifthSetIndex    = 4
)

// verifyResults checks every retrieved result against the scoring rules
// and tallies outcome distribution.
func verifyResults(config *Config, results []model.MatchResult, stats *Stats) error {
	log.Println("🔍 Verifying results...")

	if len(results) == 0 {
		return fmt.Errorf("no results to verify")
	}

	invalid := 0
	for _, result := range results {
		if err := verifySingleResult(result); err != nil {
			invalid++
			log.Printf("⚠️  Invalid result %s: %v", result.MatchID, err)
			continue
		}

		switch result.Winner {
		case model.Home:
			stats.HomeWins++
		case model.Away:
			stats.AwayWins++
		}
		if len(result.Sets) == 5 {
			stats.FiveSetMatches++
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d results violate the scoring rules", invalid, len(results))
	}

	displayOutcomes(results, stats, config.Verbose)

	log.Println("✅ Result verification completed")
	return nil
}

// verifySingleResult checks one match result for internal consistency.
func verifySingleResult(result model.MatchResult) error {
	if result.HomeSets != setsToWin && result.AwaySets != setsToWin {
		return fmt.Errorf("no side reached %d sets (%d-%d)", setsToWin, result.HomeSets, result.AwaySets)
	}
	if result.HomeSets == setsToWin && result.AwaySets >= setsToWin {
		return fmt.Errorf("both sides reached %d sets", setsToWin)
	}

	wantSets := result.HomeSets + result.AwaySets
	if len(result.Sets) != wantSets {
		return fmt.Errorf("set count mismatch: %d sets recorded, score says %d", len(result.Sets), wantSets)
	}

	totalRallies := 0
	for i, set := range result.Sets {
		if err := verifySetScore(i, set); err != nil {
			return err
		}
		totalRallies += set.HomePoints + set.AwayPoints
	}

	if result.TotalRallies != totalRallies {
		return fmt.Errorf("rally count mismatch: reported %d, sets sum to %d", result.TotalRallies, totalRallies)
	}

	return nil
}

// verifySetScore checks one set score against the target and margin rules.
func verifySetScore(index int, set model.SetResult) error {
	target := regularSetTarget
	if index == fifthSetIndex {
		target = fifthSetTarget
	}

	winner, loser := set.HomePoints, set.AwayPoints
	if set.Winner == model.Away {
		winner, loser = loser, winner
	}

	if winner < target {
		return fmt.Errorf("set %d winner has %d points, target is %d", index+1, winner, target)
	}
	if winner-loser < winMargin {
		return fmt.Errorf("set %d won by %d, need a margin of %d", index+1, winner-loser, winMargin)
	}
	// Past the target the set ends at exactly a two-point lead.
	if winner > target && winner-loser != winMargin {
		return fmt.Errorf("set %d extended to %d-%d without closing at a two-point lead", index+1, winner, loser)
	}

	return nil
}

// displayOutcomes shows the outcome distribution of the verified results.
func displayOutcomes(results []model.MatchResult, stats *Stats, verbose bool) {
	total := stats.HomeWins + stats.AwayWins
	if total == 0 {
		return
	}

	homeRate := float64(stats.HomeWins) / float64(total) * PercentageMultiplier

	log.Printf(`🏆 Outcome distribution:
   Home wins: %d (%.1f%%)
   Away wins: %d
   Five-set matches: %d
`, stats.HomeWins, homeRate, stats.AwayWins, stats.FiveSetMatches)

	if verbose {
		rallies := 0
		attendance := 0
		for _, result := range results {
			rallies += result.TotalRallies
			attendance += result.Attendance
		}
		log.Printf(`📊 Aggregates:
   Average rallies per match: %.1f
   Average attendance: %.0f
`, float64(rallies)/float64(len(results)), float64(attendance)/float64(len(results)))
	}
}
