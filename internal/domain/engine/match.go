// Package engine simulates best-of-five volleyball matches as a pure,
// seedable computation. Each invocation owns its random stream: identical
// inputs and an identical seed produce byte-identical results, and
// independent matches may run concurrently with no shared state.
package engine

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/edruela/volleyball-simulator/internal/domain/model"
	"github.com/edruela/volleyball-simulator/internal/domain/strength"
)

// Match shape constants.
const (
	maxSets       = 5
	setsToWin     = 3
	fifthSetIndex = 4
)

// Attendance and revenue formulas over the home club's opaque facility and
// financial inputs.
const (
	defaultStadiumCapacity = 1000
	baseOccupancy          = 0.6
	attendanceJitterMin    = 0.7
	attendanceJitterMax    = 1.3
	baseTicketPrice        = 50
	ticketPriceTierStep    = 3
	minTicketPrice         = 5
	concessionsRate        = 0.3
	merchandiseRate        = 0.1
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithTuning replaces the default gameplay balance.
func WithTuning(t Tuning) Option {
	return func(e *Engine) {
		e.tuning = t
	}
}

// WithCalculator replaces the default team strength calculator.
func WithCalculator(c *strength.Calculator) Option {
	return func(e *Engine) {
		if c != nil {
			e.calc = c
		}
	}
}

// Engine runs match simulations. It holds only immutable configuration and
// is safe for concurrent use.
type Engine struct {
	tuning Tuning
	calc   *strength.Calculator
}

// New creates an Engine, validating the effective tuning.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{tuning: DefaultTuning()}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.tuning.Validate(); err != nil {
		return nil, err
	}
	if e.calc == nil {
		e.calc = strength.NewCalculator(
			strength.WithFloor(e.tuning.StrengthFloor),
			strength.WithFatigueImpact(e.tuning.FatigueImpact),
		)
	}
	return e, nil
}

// Simulate runs one best-of-five match and returns its result. Inputs are
// validated before any rally executes; there is no partial state to roll
// back. The computation is synchronous and completes in bounded time, so
// ctx is accepted for call-convention symmetry but never suspends the
// simulation.
func (e *Engine) Simulate(_ context.Context, req model.MatchRequest) (model.MatchResult, error) {
	if err := req.Validate(); err != nil {
		return model.MatchResult{}, err
	}

	rng := rand.New(rand.NewSource(req.Seed)) //nolint:gosec // deterministic stream is the point

	var homeFatigue, awayFatigue float64
	homeStrength, err := e.teamStrength(req.Home, homeFatigue, true)
	if err != nil {
		return model.MatchResult{}, err
	}
	awayStrength, err := e.teamStrength(req.Away, awayFatigue, false)
	if err != nil {
		return model.MatchResult{}, err
	}

	var sets []model.SetResult
	var homeSets, awaySets, totalRallies int
	var duration float64

	for setIdx := 0; setIdx < maxSets; setIdx++ {
		if homeSets == setsToWin || awaySets == setsToWin {
			break
		}

		set := e.playSet(rng, homeStrength, awayStrength, setIdx == fifthSetIndex)
		target := regularSetTarget
		if setIdx == fifthSetIndex {
			target = fifthSetTarget
		}
		if !setComplete(set.HomePoints, set.AwayPoints, target) {
			return model.MatchResult{}, fmt.Errorf("%w: set ended %d-%d without win condition",
				ErrInvariant, set.HomePoints, set.AwayPoints)
		}

		sets = append(sets, set)
		if set.Winner == model.Home {
			homeSets++
		} else {
			awaySets++
		}
		totalRallies += set.HomePoints + set.AwayPoints
		duration += set.Duration

		// Fatigue accumulates with playing time; strengths are refreshed
		// before the next set.
		homeFatigue = math.Min(100, homeFatigue+set.Duration*e.tuning.FatigueGain)
		awayFatigue = math.Min(100, awayFatigue+set.Duration*e.tuning.FatigueGain)
		if homeStrength, err = e.teamStrength(req.Home, homeFatigue, true); err != nil {
			return model.MatchResult{}, err
		}
		if awayStrength, err = e.teamStrength(req.Away, awayFatigue, false); err != nil {
			return model.MatchResult{}, err
		}
	}

	winner := model.Home
	if awaySets > homeSets {
		winner = model.Away
	}

	attendance := e.attendance(rng, req.Home.Club)

	return model.MatchResult{
		MatchID:      req.RequestID,
		HomeClubID:   req.Home.Club.ID,
		AwayClubID:   req.Away.Club.ID,
		HomeSets:     homeSets,
		AwaySets:     awaySets,
		Winner:       winner,
		Sets:         sets,
		Stats:        compileStats(sets),
		Attendance:   attendance,
		Revenue:      revenue(req.Home.Club, attendance),
		TotalRallies: totalRallies,
		Duration:     duration,
		Seed:         req.Seed,
	}, nil
}

// teamStrength derives one side's strength, applying home advantage to the
// home overall scalar only. A non-positive scalar can only come from a
// broken calculator and is reported as an invariant violation.
func (e *Engine) teamStrength(sheet model.TeamSheet, fatigue float64, homeSide bool) (model.TeamStrength, error) {
	ts := e.calc.Calculate(strength.Input{
		Roster:  sheet.Roster,
		Tactics: sheet.Tactics,
		Fatigue: fatigue,
	})
	if homeSide {
		ts.Overall *= e.tuning.HomeAdvantage
	}
	if ts.Serve <= 0 || ts.Attack <= 0 || ts.Block <= 0 || ts.Receive <= 0 || ts.Overall <= 0 {
		return model.TeamStrength{}, fmt.Errorf("%w: non-positive strength scalar %+v", ErrInvariant, ts)
	}
	return ts, nil
}

// attendance estimates the crowd from stadium capacity with a bounded draw
// from the match's random stream.
func (e *Engine) attendance(rng *rand.Rand, homeClub model.Club) int {
	capacity := homeClub.StadiumCapacity
	if capacity <= 0 {
		capacity = defaultStadiumCapacity
	}
	base := float64(capacity) * baseOccupancy
	drawn := base * uniform(rng, attendanceJitterMin, attendanceJitterMax)
	if drawn > float64(capacity) {
		return capacity
	}
	return int(drawn)
}

// revenue derives matchday income from attendance and the home club's
// division tier.
func revenue(homeClub model.Club, attendance int) model.Revenue {
	price := baseTicketPrice - ticketPriceTierStep*homeClub.DivisionTier
	if price < minTicketPrice {
		price = minTicketPrice
	}
	tickets := int64(attendance) * int64(price)
	concessions := int64(float64(tickets) * concessionsRate)
	merchandise := int64(float64(tickets) * merchandiseRate)
	return model.Revenue{
		Tickets:     tickets,
		Concessions: concessions,
		Merchandise: merchandise,
		Total:       tickets + concessions + merchandise,
	}
}

// compileStats aggregates per-team statistics by scanning every rally event.
func compileStats(sets []model.SetResult) model.MatchStats {
	var stats model.MatchStats
	for _, set := range sets {
		for _, ev := range set.Events {
			team := &stats.Home
			if ev.Team == model.Away {
				team = &stats.Away
			}
			switch ev.Kind {
			case model.AttackKill:
				team.Kills++
			case model.BlockPoint:
				team.Blocks++
			case model.ServeAce:
				team.Aces++
			case model.ServeError, model.AttackError:
				team.Errors++
			case model.DigSave:
				team.Digs++
			}
		}
	}
	return stats
}
