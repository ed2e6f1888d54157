package model

import "errors"

// Sentinel error kinds for input validation. These allow errors.Is/As from
// callers; every validation failure is reported before any rally runs.
var (
	ErrInvalidRoster  = errors.New("invalid roster")
	ErrInvalidTactics = errors.New("invalid tactics")
)
