package engine

import (
	"math"

	"github.com/edruela/volleyball-simulator/internal/domain/model"
)

// momentum is the bounded scoring-trend signal for one set. Positive values
// favor the home side. It exists only for the duration of a set and resets
// to neutral at every set boundary.
type momentum struct {
	value  float64
	limit  float64
	step   float64
	decay  float64
	weight float64
}

func newMomentum(t Tuning) *momentum {
	return &momentum{
		limit:  t.MomentumLimit,
		step:   t.MomentumStep,
		decay:  t.MomentumDecay,
		weight: t.MomentumWeight,
	}
}

// record shifts momentum toward the scoring side, decays it toward neutral,
// and clamps it to its bounds.
func (m *momentum) record(scorer model.Side) {
	step := m.step
	if scorer == model.Away {
		step = -step
	}
	m.value = clamp((m.value+step)*m.decay, -m.limit, m.limit)
}

// attackBias returns the multiplicative strength adjustment for the given
// attacking side. The bias is read-only from the rally's point of view.
func (m *momentum) attackBias(attacker model.Side) float64 {
	v := m.value
	if attacker == model.Away {
		v = -v
	}
	return 1 + m.weight*v
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
