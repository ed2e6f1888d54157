// Package model contains the domain types shared between the simulation
// engine and its adapters.
package model

import "fmt"

// Position identifies a player's role on the court.
type Position string

// Court positions for indoor 6-v-6 volleyball.
const (
	PositionOutsideHitter  Position = "OH"
	PositionMiddleBlocker  Position = "MB"
	PositionOppositeHitter Position = "OPP"
	PositionSetter         Position = "S"
	PositionLibero         Position = "L"
	PositionDefensive      Position = "DS"
)

// Valid reports whether p is one of the known positions.
func (p Position) Valid() bool {
	switch p {
	case PositionOutsideHitter, PositionMiddleBlocker, PositionOppositeHitter,
		PositionSetter, PositionLibero, PositionDefensive:
		return true
	}
	return false
}

// PlayerAttributes holds a player's technical and physical scores.
// Every score is on a 0-100 scale.
type PlayerAttributes struct {
	SpikePower       float64 `json:"spikePower"`
	SpikeAccuracy    float64 `json:"spikeAccuracy"`
	BlockTiming      float64 `json:"blockTiming"`
	PassingAccuracy  float64 `json:"passingAccuracy"`
	SettingPrecision float64 `json:"settingPrecision"`
	ServePower       float64 `json:"servePower"`
	ServeAccuracy    float64 `json:"serveAccuracy"`
	CourtVision      float64 `json:"courtVision"`
	DecisionMaking   float64 `json:"decisionMaking"`
	Communication    float64 `json:"communication"`

	Stamina    float64 `json:"stamina"`
	Strength   float64 `json:"strength"`
	Agility    float64 `json:"agility"`
	JumpHeight float64 `json:"jumpHeight"`
	Speed      float64 `json:"speed"`
}

// Player is one member of a match lineup.
type Player struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Position   Position         `json:"position"`
	Attributes PlayerAttributes `json:"attributes"`
}

// Roster is the ordered active lineup one club fields for one match.
// The engine never mutates a roster.
type Roster struct {
	ClubID  string   `json:"clubId"`
	Players []Player `json:"players"`
}

// Lineup requirements for a legal roster.
const (
	MinRosterSize     = 6
	minSetters        = 1
	minPinHitters     = 2 // outside or opposite hitters
	minMiddleBlockers = 1
)

// Validate checks that the roster can field a legal lineup. All violations
// wrap ErrInvalidRoster.
func (r Roster) Validate() error {
	if len(r.Players) < MinRosterSize {
		return fmt.Errorf("%w: %d players, need at least %d", ErrInvalidRoster, len(r.Players), MinRosterSize)
	}
	var setters, pins, middles int
	for i, p := range r.Players {
		if !p.Position.Valid() {
			return fmt.Errorf("%w: player %d has unknown position %q", ErrInvalidRoster, i, p.Position)
		}
		switch p.Position {
		case PositionSetter:
			setters++
		case PositionOutsideHitter, PositionOppositeHitter:
			pins++
		case PositionMiddleBlocker:
			middles++
		}
	}
	switch {
	case setters < minSetters:
		return fmt.Errorf("%w: no setter in lineup", ErrInvalidRoster)
	case pins < minPinHitters:
		return fmt.Errorf("%w: need at least %d pin hitters, got %d", ErrInvalidRoster, minPinHitters, pins)
	case middles < minMiddleBlockers:
		return fmt.Errorf("%w: no middle blocker in lineup", ErrInvalidRoster)
	}
	return nil
}
