package engine

import "errors"

// Sentinel kinds for engine errors.
var (
	// ErrInvalidTuning rejects a tuning that would break the engine's
	// probability or termination guarantees.
	ErrInvalidTuning = errors.New("invalid tuning")

	// ErrInvariant signals an internal state that must never occur under a
	// correct implementation, e.g. a non-positive strength scalar. It is
	// surfaced loudly instead of being masked.
	ErrInvariant = errors.New("simulation invariant violation")
)
