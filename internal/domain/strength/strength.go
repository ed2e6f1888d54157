// Package strength derives a team's per-phase strength scalars from its
// roster, tactics, and current fatigue level.
package strength

import (
	"math"

	"github.com/edruela/volleyball-simulator/internal/domain/model"
)

// Default calculator configuration constants.
const (
	defaultFloor         = 1.0  // minimum value of any phase scalar
	defaultFatigueImpact = 0.3  // fraction of strength lost at fatigue 100
	maxEffectiveFatigue  = 100.0
	phaseCount           = 4
)

// phaseWeights is a position's relevance to each play phase.
type phaseWeights struct {
	serve   float64
	attack  float64
	block   float64
	receive float64
}

// defaultPositionWeights encodes how much each position contributes to a
// phase: middles dominate the block, pin hitters the attack, back-row
// specialists the receive.
func defaultPositionWeights() map[model.Position]phaseWeights {
	return map[model.Position]phaseWeights{
		model.PositionOutsideHitter:  {serve: 1.0, attack: 1.2, block: 0.9, receive: 1.1},
		model.PositionMiddleBlocker:  {serve: 0.9, attack: 1.0, block: 1.3, receive: 0.7},
		model.PositionOppositeHitter: {serve: 1.0, attack: 1.3, block: 1.1, receive: 0.8},
		model.PositionSetter:         {serve: 1.1, attack: 0.7, block: 0.9, receive: 0.9},
		model.PositionLibero:         {serve: 0.1, attack: 0.1, block: 0.2, receive: 1.4},
		model.PositionDefensive:      {serve: 0.9, attack: 0.5, block: 0.5, receive: 1.2},
	}
}

// formationBonus adjusts the attack and block phases per formation.
type formationBonus struct {
	attack float64
	block  float64
}

// defaultFormationBonuses mirrors the classic trade-offs: a 6-2 runs two
// setters for extra attackers, a 4-2 trades firepower for a simpler defense.
func defaultFormationBonuses() map[string]formationBonus {
	return map[string]formationBonus{
		model.Formation62: {attack: 1.1, block: 0.95},
		model.Formation51: {attack: 1.0, block: 1.0},
		model.Formation42: {attack: 0.9, block: 1.05},
	}
}

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithFloor sets the minimum value any phase scalar may take. The floor
// keeps every match computable even for an all-zero roster.
func WithFloor(floor float64) Option {
	return func(c *Calculator) {
		if floor > 0 {
			c.floor = floor
		}
	}
}

// WithFatigueImpact sets the fraction of strength lost at full fatigue.
func WithFatigueImpact(impact float64) Option {
	return func(c *Calculator) {
		if impact >= 0 && impact < 1 {
			c.fatigueImpact = impact
		}
	}
}

// FormationBonus adjusts the attack and block phases for one formation.
type FormationBonus struct {
	Attack float64
	Block  float64
}

// WithFormationBonuses overrides the formation trade-off table. Formations
// missing from the table fall back to neutral multipliers.
func WithFormationBonuses(bonuses map[string]FormationBonus) Option {
	return func(c *Calculator) {
		if len(bonuses) == 0 {
			return
		}
		table := make(map[string]formationBonus, len(bonuses))
		for formation, b := range bonuses {
			table[formation] = formationBonus{attack: b.Attack, block: b.Block}
		}
		c.formationBonus = table
	}
}

// Input bundles everything the calculation consumes.
type Input struct {
	Roster  model.Roster
	Tactics model.Tactics
	Fatigue float64 // 0-100 cumulative team fatigue
}

// Calculator computes TeamStrength values. It holds no mutable state and is
// safe for concurrent use.
type Calculator struct {
	floor           float64
	fatigueImpact   float64
	positionWeights map[model.Position]phaseWeights
	formationBonus  map[string]formationBonus
}

// NewCalculator creates a Calculator with configuration options.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		floor:           defaultFloor,
		fatigueImpact:   defaultFatigueImpact,
		positionWeights: defaultPositionWeights(),
		formationBonus:  defaultFormationBonuses(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Calculate derives the four phase scalars and the overall score. It is a
// pure function of its input: the roster is never mutated and every
// returned scalar is strictly positive.
func (c *Calculator) Calculate(in Input) model.TeamStrength {
	var serveSum, attackSum, blockSum, receiveSum float64
	var serveW, attackW, blockW, receiveW float64

	for _, p := range in.Roster.Players {
		w, ok := c.positionWeights[p.Position]
		if !ok {
			w = phaseWeights{serve: 1, attack: 1, block: 1, receive: 1}
		}
		a := p.Attributes
		serveSum += w.serve * servePhase(a)
		serveW += w.serve
		attackSum += w.attack * attackPhase(a)
		attackW += w.attack
		blockSum += w.block * blockPhase(a)
		blockW += w.block
		receiveSum += w.receive * receivePhase(a)
		receiveW += w.receive
	}

	bonus, ok := c.formationBonus[in.Tactics.Formation]
	if !ok {
		bonus = formationBonus{attack: 1.0, block: 1.0}
	}

	scale := in.Tactics.Intensity * c.fatigueScale(in.Fatigue)

	serve := c.clampFloor(weightedMean(serveSum, serveW) * scale)
	attack := c.clampFloor(weightedMean(attackSum, attackW) * bonus.attack * scale)
	block := c.clampFloor(weightedMean(blockSum, blockW) * bonus.block * scale)
	receive := c.clampFloor(weightedMean(receiveSum, receiveW) * scale)

	return model.TeamStrength{
		Serve:   serve,
		Attack:  attack,
		Block:   block,
		Receive: receive,
		Overall: (serve + attack + block + receive) / phaseCount,
	}
}

// fatigueScale returns the multiplicative strength retention for the given
// fatigue level.
func (c *Calculator) fatigueScale(fatigue float64) float64 {
	f := math.Max(0, math.Min(maxEffectiveFatigue, fatigue))
	return 1 - c.fatigueImpact*f/maxEffectiveFatigue
}

func (c *Calculator) clampFloor(v float64) float64 {
	return math.Max(c.floor, v)
}

// weightedMean guards against a zero weight sum, which can only happen for
// degenerate position weight tables.
func weightedMean(sum, weight float64) float64 {
	if weight <= 0 {
		return 0
	}
	return sum / weight
}

// Phase blends. Each is a weighted average of the attributes relevant to
// that phase of play.

func servePhase(a model.PlayerAttributes) float64 {
	return 0.45*a.ServePower + 0.45*a.ServeAccuracy + 0.10*a.DecisionMaking
}

func attackPhase(a model.PlayerAttributes) float64 {
	return 0.35*a.SpikePower + 0.35*a.SpikeAccuracy + 0.15*a.JumpHeight + 0.15*a.Strength
}

func blockPhase(a model.PlayerAttributes) float64 {
	return 0.45*a.BlockTiming + 0.25*a.JumpHeight + 0.15*a.Strength + 0.15*a.Agility
}

func receivePhase(a model.PlayerAttributes) float64 {
	return 0.50*a.PassingAccuracy + 0.20*a.Agility + 0.15*a.Speed + 0.15*a.CourtVision
}
