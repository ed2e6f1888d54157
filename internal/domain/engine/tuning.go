package engine

import "fmt"

// CapRule decides the winner of a rally that reaches the touch cap without
// resolving. The rule is a reviewable policy, not an error path.
type CapRule string

// Cap resolution policies.
const (
	// CapRuleRandomWinner awards the point to a uniformly random side.
	// This matches the historical behavior and does not weight by
	// relative strength.
	CapRuleRandomWinner CapRule = "random_winner"
	// CapRuleServingSide awards the point to the side that served.
	CapRuleServingSide CapRule = "serving_side"
	// CapRuleStrengthWeighted draws the winner proportionally to the two
	// sides' overall strength.
	CapRuleStrengthWeighted CapRule = "strength_weighted"
)

// Valid reports whether r is a known cap rule.
func (r CapRule) Valid() bool {
	switch r {
	case CapRuleRandomWinner, CapRuleServingSide, CapRuleStrengthWeighted:
		return true
	}
	return false
}

// Tuning is the versioned bundle of gameplay-balance constants. Balance
// changes go through configuration, never through simulation code.
type Tuning struct {
	// HomeAdvantage multiplies the home side's overall strength only.
	HomeAdvantage float64

	// Serve phase probabilities. Base values shift with the serve/receive
	// strength differential and are clamped to [Min, Max].
	AceProbBase      float64
	AceProbMin       float64
	AceProbMax       float64
	ServeErrProbBase float64
	ServeErrProbMin  float64
	ServeErrProbMax  float64

	// Attack resolution. Success probability is clamped away from
	// certainty; of the success mass KillFraction resolves as a kill and
	// the rest continues the rally; of the failure mass BlockFraction
	// resolves as a block point and the rest as an attack error.
	SuccessProbMin float64
	SuccessProbMax float64
	KillFraction   float64
	BlockFraction  float64

	// TouchCap bounds the in-play exchange count; a rally at the cap
	// resolves via CapRule. This is a hard termination guarantee.
	TouchCap int
	CapRule  CapRule

	// Momentum is a signed scalar in [-MomentumLimit, MomentumLimit],
	// positive when the home side is trending. It shifts by MomentumStep
	// toward the scoring side after each rally, decays toward neutral by
	// MomentumDecay, and biases attack strength by MomentumWeight.
	MomentumLimit  float64
	MomentumStep   float64
	MomentumDecay  float64
	MomentumWeight float64

	// Fatigue accumulates by FatigueGain per minute of play after each
	// set; the strength calculator loses FatigueImpact of its output at
	// fatigue 100. StrengthFloor keeps every scalar strictly positive.
	FatigueGain   float64
	FatigueImpact float64
	StrengthFloor float64
}

// DefaultTuning returns the documented default balance.
func DefaultTuning() Tuning {
	return Tuning{
		HomeAdvantage:    1.05,
		AceProbBase:      0.05,
		AceProbMin:       0.01,
		AceProbMax:       0.15,
		ServeErrProbBase: 0.03,
		ServeErrProbMin:  0.02,
		ServeErrProbMax:  0.12,
		SuccessProbMin:   0.1,
		SuccessProbMax:   0.9,
		KillFraction:     0.8,
		BlockFraction:    0.3,
		TouchCap:         20,
		CapRule:          CapRuleRandomWinner,
		MomentumLimit:    1.0,
		MomentumStep:     0.1,
		MomentumDecay:    0.95,
		MomentumWeight:   0.05,
		FatigueGain:      0.2,
		FatigueImpact:    0.3,
		StrengthFloor:    1.0,
	}
}

// Validate rejects tunings that would break the engine's termination or
// probability guarantees.
func (t Tuning) Validate() error {
	switch {
	case t.HomeAdvantage <= 0:
		return fmt.Errorf("%w: home advantage must be positive", ErrInvalidTuning)
	case t.AceProbMin < 0 || t.AceProbMax > 1 || t.AceProbMin > t.AceProbMax:
		return fmt.Errorf("%w: ace probability bounds", ErrInvalidTuning)
	case t.ServeErrProbMin < 0 || t.ServeErrProbMax > 1 || t.ServeErrProbMin > t.ServeErrProbMax:
		return fmt.Errorf("%w: serve error probability bounds", ErrInvalidTuning)
	case t.AceProbMax+t.ServeErrProbMax >= 1:
		return fmt.Errorf("%w: serve outcome mass exceeds 1", ErrInvalidTuning)
	case t.SuccessProbMin <= 0 || t.SuccessProbMax >= 1 || t.SuccessProbMin > t.SuccessProbMax:
		return fmt.Errorf("%w: success probability clamp must stay inside (0,1)", ErrInvalidTuning)
	case t.KillFraction < 0 || t.KillFraction > 1:
		return fmt.Errorf("%w: kill fraction outside [0,1]", ErrInvalidTuning)
	case t.BlockFraction < 0 || t.BlockFraction > 1:
		return fmt.Errorf("%w: block fraction outside [0,1]", ErrInvalidTuning)
	case t.TouchCap < 1:
		return fmt.Errorf("%w: touch cap must be at least 1", ErrInvalidTuning)
	case !t.CapRule.Valid():
		return fmt.Errorf("%w: unknown cap rule %q", ErrInvalidTuning, t.CapRule)
	case t.MomentumLimit <= 0:
		return fmt.Errorf("%w: momentum limit must be positive", ErrInvalidTuning)
	case t.MomentumDecay <= 0 || t.MomentumDecay > 1:
		return fmt.Errorf("%w: momentum decay outside (0,1]", ErrInvalidTuning)
	case t.MomentumWeight < 0 || t.MomentumWeight >= 1:
		return fmt.Errorf("%w: momentum weight outside [0,1)", ErrInvalidTuning)
	case t.FatigueGain < 0:
		return fmt.Errorf("%w: fatigue gain must not be negative", ErrInvalidTuning)
	case t.FatigueImpact < 0 || t.FatigueImpact >= 1:
		return fmt.Errorf("%w: fatigue impact outside [0,1)", ErrInvalidTuning)
	case t.StrengthFloor <= 0:
		return fmt.Errorf("%w: strength floor must be positive", ErrInvalidTuning)
	}
	return nil
}
