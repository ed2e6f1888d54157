package model

import "fmt"

// Known formation identifiers.
const (
	Formation62 = "6-2"
	Formation51 = "5-1"
	Formation42 = "4-2"
)

// Intensity bounds for tactics validation.
const (
	MinIntensity = 0.8
	MaxIntensity = 1.2
)

// Tactics is a club's tactical configuration for one match.
type Tactics struct {
	Formation string  `json:"formation"`
	Intensity float64 `json:"intensity"`
	Style     string  `json:"style"`
}

// DefaultTactics returns a balanced 5-1 setup.
func DefaultTactics() Tactics {
	return Tactics{Formation: Formation51, Intensity: 1.0, Style: "balanced"}
}

// KnownFormation reports whether f is a supported formation identifier.
func KnownFormation(f string) bool {
	switch f {
	case Formation62, Formation51, Formation42:
		return true
	}
	return false
}

// Validate checks the tactics configuration. Violations wrap
// ErrInvalidTactics.
func (t Tactics) Validate() error {
	if !KnownFormation(t.Formation) {
		return fmt.Errorf("%w: unknown formation %q", ErrInvalidTactics, t.Formation)
	}
	if t.Intensity < MinIntensity || t.Intensity > MaxIntensity {
		return fmt.Errorf("%w: intensity %.2f outside [%.1f, %.1f]", ErrInvalidTactics, t.Intensity, MinIntensity, MaxIntensity)
	}
	return nil
}
