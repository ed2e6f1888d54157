// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New(); Load() layers file and env on top.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"

	"github.com/edruela/volleyball-simulator/internal/domain/engine"
)

// Config contains process configuration plus every gameplay tunable, so
// balance changes ship through configuration instead of code edits.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory simulation job queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of simulation workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the request idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`

	// StoreSize bounds the in-memory match result store.
	StoreSize int `koanf:"store_size"`

	// MaxRecentLimit caps GET /matches?limit.
	MaxRecentLimit int `koanf:"max_recent_limit"`

	// Gameplay balance. See engine.Tuning for the semantics of each knob.
	HomeAdvantage    float64 `koanf:"home_advantage"`
	AceProbBase      float64 `koanf:"ace_prob_base"`
	AceProbMin       float64 `koanf:"ace_prob_min"`
	AceProbMax       float64 `koanf:"ace_prob_max"`
	ServeErrProbBase float64 `koanf:"serve_err_prob_base"`
	ServeErrProbMin  float64 `koanf:"serve_err_prob_min"`
	ServeErrProbMax  float64 `koanf:"serve_err_prob_max"`
	SuccessProbMin   float64 `koanf:"success_prob_min"`
	SuccessProbMax   float64 `koanf:"success_prob_max"`
	KillFraction     float64 `koanf:"kill_fraction"`
	BlockFraction    float64 `koanf:"block_fraction"`
	TouchCap         int     `koanf:"touch_cap"`
	CapRule          string  `koanf:"cap_rule"`
	MomentumLimit    float64 `koanf:"momentum_limit"`
	MomentumStep     float64 `koanf:"momentum_step"`
	MomentumDecay    float64 `koanf:"momentum_decay"`
	MomentumWeight   float64 `koanf:"momentum_weight"`
	FatigueGain      float64 `koanf:"fatigue_gain"`
	FatigueImpact    float64 `koanf:"fatigue_impact"`
	StrengthFloor    float64 `koanf:"strength_floor"`
}

// New creates a Config with documented defaults. Gameplay defaults come
// from the engine's default tuning so the two never drift apart.
func New() *Config {
	t := engine.DefaultTuning()
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		QueueSize:        10_000,
		WorkerCount:      runtime.NumCPU() * 2,
		DedupeSize:       100_000,
		StoreSize:        10_000,
		MaxRecentLimit:   100,
		HomeAdvantage:    t.HomeAdvantage,
		AceProbBase:      t.AceProbBase,
		AceProbMin:       t.AceProbMin,
		AceProbMax:       t.AceProbMax,
		ServeErrProbBase: t.ServeErrProbBase,
		ServeErrProbMin:  t.ServeErrProbMin,
		ServeErrProbMax:  t.ServeErrProbMax,
		SuccessProbMin:   t.SuccessProbMin,
		SuccessProbMax:   t.SuccessProbMax,
		KillFraction:     t.KillFraction,
		BlockFraction:    t.BlockFraction,
		TouchCap:         t.TouchCap,
		CapRule:          string(t.CapRule),
		MomentumLimit:    t.MomentumLimit,
		MomentumStep:     t.MomentumStep,
		MomentumDecay:    t.MomentumDecay,
		MomentumWeight:   t.MomentumWeight,
		FatigueGain:      t.FatigueGain,
		FatigueImpact:    t.FatigueImpact,
		StrengthFloor:    t.StrengthFloor,
	}
}

// Tuning converts the gameplay fields into the engine's tuning structure.
func (c *Config) Tuning() engine.Tuning {
	return engine.Tuning{
		HomeAdvantage:    c.HomeAdvantage,
		AceProbBase:      c.AceProbBase,
		AceProbMin:       c.AceProbMin,
		AceProbMax:       c.AceProbMax,
		ServeErrProbBase: c.ServeErrProbBase,
		ServeErrProbMin:  c.ServeErrProbMin,
		ServeErrProbMax:  c.ServeErrProbMax,
		SuccessProbMin:   c.SuccessProbMin,
		SuccessProbMax:   c.SuccessProbMax,
		KillFraction:     c.KillFraction,
		BlockFraction:    c.BlockFraction,
		TouchCap:         c.TouchCap,
		CapRule:          engine.CapRule(c.CapRule),
		MomentumLimit:    c.MomentumLimit,
		MomentumStep:     c.MomentumStep,
		MomentumDecay:    c.MomentumDecay,
		MomentumWeight:   c.MomentumWeight,
		FatigueGain:      c.FatigueGain,
		FatigueImpact:    c.FatigueImpact,
		StrengthFloor:    c.StrengthFloor,
	}
}
