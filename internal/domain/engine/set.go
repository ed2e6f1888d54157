package engine

import (
	"math/rand"

	"github.com/edruela/volleyball-simulator/internal/domain/model"
)

// Volleyball scoring rules.
const (
	regularSetTarget = 25
	fifthSetTarget   = 15
	winMargin        = 2
)

// minutesPerRally converts a set's rally count into a duration estimate.
const minutesPerRally = 0.5

// playSet loops rallies until the set-end condition holds: the leader has
// reached the target with a margin of at least two. Bounded per-rally point
// increments plus the margin rule make termination a liveness property of
// the loop, not a heuristic.
func (e *Engine) playSet(rng *rand.Rand, home, away model.TeamStrength, fifthSet bool) model.SetResult {
	target := regularSetTarget
	if fifthSet {
		target = fifthSetTarget
	}

	var homePoints, awayPoints int
	events := make([]model.RallyEvent, 0, 2*regularSetTarget)
	mom := newMomentum(e.tuning)

	// Opening serve is a coin flip from the match's random stream.
	serving := model.Home
	if rng.Float64() < 0.5 {
		serving = model.Away
	}

	for !setComplete(homePoints, awayPoints, target) {
		rally := e.playRally(rng, rallyInput{
			serving: serving,
			home:    home,
			away:    away,
			bias:    mom.attackBias,
		})
		events = append(events, rally.Events...)

		if rally.Winner == model.Home {
			homePoints++
		} else {
			awayPoints++
		}
		// The scoring side serves next.
		serving = rally.Winner
		mom.record(rally.Winner)
	}

	winner := model.Home
	if awayPoints > homePoints {
		winner = model.Away
	}
	return model.SetResult{
		HomePoints: homePoints,
		AwayPoints: awayPoints,
		Winner:     winner,
		Duration:   float64(len(events)) * minutesPerRally,
		Events:     events,
	}
}

// setComplete reports whether either side satisfies the set-end condition.
func setComplete(home, away, target int) bool {
	lead := home - away
	if lead < 0 {
		lead = -lead
	}
	return (home >= target || away >= target) && lead >= winMargin
}
