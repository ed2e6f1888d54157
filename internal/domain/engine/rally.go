package engine

import (
	"math"
	"math/rand"

	"github.com/edruela/volleyball-simulator/internal/domain/model"
)

// rallyState is the explicit state of the per-rally machine.
type rallyState int

const (
	rallyServing rallyState = iota
	rallyInPlay
	rallyResolved
)

// Serve probability differential divisors. The ace chance grows with the
// serve/receive strength gap; the error chance grows as serve quality drops.
const (
	aceDifferentialDivisor = 500.0
	serveErrorDivisor      = 800.0
	attributeScale         = 100.0
)

// Elapsed-time estimates in seconds per rally shape.
const (
	serveRallyMinSec  = 2.0
	serveRallyMaxSec  = 5.0
	openRallyMinSec   = 5.0
	openRallyMaxSec   = 30.0
	cappedRallyMinSec = 15.0
	cappedRallyMaxSec = 45.0
)

// rallyInput is everything one rally consumes. The momentum bias is read
// from the enclosing set and never mutated here.
type rallyInput struct {
	serving model.Side
	home    model.TeamStrength
	away    model.TeamStrength
	bias    func(attacker model.Side) float64
}

func (in rallyInput) strengthOf(s model.Side) model.TeamStrength {
	if s == model.Home {
		return in.home
	}
	return in.away
}

// playRally simulates one point-scoring exchange as a bounded state
// machine: Serving -> InPlay -> Resolved. The touch cap guarantees
// termination; a capped rally resolves via the configured CapRule.
func (e *Engine) playRally(rng *rand.Rand, in rallyInput) model.RallyResult {
	events := make([]model.RallyEvent, 0, 4)
	state := rallyServing
	attacker := in.serving.Opponent()
	touches := 0

	var winner model.Side
	var duration float64

	for state != rallyResolved {
		switch state {
		case rallyServing:
			serve := in.strengthOf(in.serving)
			receive := in.strengthOf(in.serving.Opponent())

			aceProb := clamp(e.tuning.AceProbBase+(serve.Serve-receive.Receive)/aceDifferentialDivisor,
				e.tuning.AceProbMin, e.tuning.AceProbMax)
			errProb := clamp(e.tuning.ServeErrProbBase+(attributeScale-serve.Serve)/serveErrorDivisor,
				e.tuning.ServeErrProbMin, e.tuning.ServeErrProbMax)

			switch u := rng.Float64(); {
			case u < aceProb:
				events = append(events, model.RallyEvent{
					Kind:          model.ServeAce,
					Team:          in.serving,
					Effectiveness: effectiveness(serve.Serve),
				})
				winner = in.serving
				duration = uniform(rng, serveRallyMinSec, serveRallyMaxSec)
				state = rallyResolved
			case u < aceProb+errProb:
				events = append(events, model.RallyEvent{
					Kind: model.ServeError,
					Team: in.serving,
				})
				winner = in.serving.Opponent()
				duration = uniform(rng, serveRallyMinSec, serveRallyMaxSec)
				state = rallyResolved
			default:
				events = append(events, model.RallyEvent{
					Kind:          model.DigSave,
					Team:          in.serving.Opponent(),
					Effectiveness: effectiveness(receive.Receive),
				})
				state = rallyInPlay
			}

		case rallyInPlay:
			if touches >= e.tuning.TouchCap {
				winner = e.resolveCapped(rng, in)
				duration = uniform(rng, cappedRallyMinSec, cappedRallyMaxSec)
				state = rallyResolved
				break
			}

			attack := in.strengthOf(attacker).Attack * in.bias(attacker)
			block := in.strengthOf(attacker.Opponent()).Block
			successProb := clamp(attack/(attack+block), e.tuning.SuccessProbMin, e.tuning.SuccessProbMax)

			switch u := rng.Float64(); {
			case u < successProb*e.tuning.KillFraction:
				events = append(events, model.RallyEvent{
					Kind:          model.AttackKill,
					Team:          attacker,
					Effectiveness: effectiveness(attack),
				})
				winner = attacker
				duration = uniform(rng, openRallyMinSec, openRallyMaxSec)
				state = rallyResolved
			case u < successProb:
				// Dug up; the defender counterattacks.
				events = append(events, model.RallyEvent{
					Kind:          model.DigSave,
					Team:          attacker.Opponent(),
					Effectiveness: effectiveness(block),
				})
				attacker = attacker.Opponent()
				touches++
			default:
				winner = attacker.Opponent()
				if rng.Float64() < e.tuning.BlockFraction {
					events = append(events, model.RallyEvent{
						Kind:          model.BlockPoint,
						Team:          winner,
						Effectiveness: effectiveness(block),
					})
				} else {
					events = append(events, model.RallyEvent{
						Kind: model.AttackError,
						Team: attacker,
					})
				}
				duration = uniform(rng, openRallyMinSec, openRallyMaxSec)
				state = rallyResolved
			}
		}
	}

	return model.RallyResult{Winner: winner, Events: events, Duration: duration}
}

// resolveCapped applies the configured cap-resolution policy.
func (e *Engine) resolveCapped(rng *rand.Rand, in rallyInput) model.Side {
	switch e.tuning.CapRule {
	case CapRuleServingSide:
		return in.serving
	case CapRuleStrengthWeighted:
		pHome := in.home.Overall / (in.home.Overall + in.away.Overall)
		if rng.Float64() < pHome {
			return model.Home
		}
		return model.Away
	default: // CapRuleRandomWinner
		if rng.Float64() < 0.5 {
			return model.Home
		}
		return model.Away
	}
}

func effectiveness(v float64) float64 {
	return math.Min(1, v/attributeScale)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
