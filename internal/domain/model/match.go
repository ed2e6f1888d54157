package model

// Side identifies a team within a match.
type Side string

// The two sides of a match.
const (
	Home Side = "home"
	Away Side = "away"
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == Home {
		return Away
	}
	return Home
}

// EventKind tags a rally event. The set of kinds is closed.
type EventKind string

// Rally event kinds.
const (
	ServeAce    EventKind = "serve_ace"
	ServeError  EventKind = "serve_error"
	AttackKill  EventKind = "attack_kill"
	AttackError EventKind = "attack_error"
	BlockPoint  EventKind = "block_point"
	DigSave     EventKind = "dig_save"
)

// RallyEvent records one touch outcome inside a rally.
// Effectiveness is normalized to [0,1].
type RallyEvent struct {
	Kind          EventKind `json:"type"`
	Team          Side      `json:"team"`
	Effectiveness float64   `json:"effectiveness"`
}

// RallyResult is the outcome of a single point-scoring exchange.
// Duration is an elapsed-time estimate in seconds.
type RallyResult struct {
	Winner   Side         `json:"winner"`
	Events   []RallyEvent `json:"events"`
	Duration float64      `json:"duration"`
}

// SetResult is the outcome of one set. Duration is in minutes.
type SetResult struct {
	HomePoints int          `json:"homePoints"`
	AwayPoints int          `json:"awayPoints"`
	Winner     Side         `json:"winner"`
	Duration   float64      `json:"duration"`
	Events     []RallyEvent `json:"events"`
}

// TeamStrength bundles the derived phase scalars for one side.
// Every field is strictly positive.
type TeamStrength struct {
	Serve   float64 `json:"serve"`
	Attack  float64 `json:"attack"`
	Block   float64 `json:"block"`
	Receive float64 `json:"receive"`
	Overall float64 `json:"overall"`
}

// TeamStats aggregates rally events for one side over a match.
type TeamStats struct {
	Kills  int `json:"kills"`
	Blocks int `json:"blocks"`
	Aces   int `json:"aces"`
	Errors int `json:"errors"`
	Digs   int `json:"digs"`
}

// MatchStats holds both sides' aggregated statistics.
type MatchStats struct {
	Home TeamStats `json:"home"`
	Away TeamStats `json:"away"`
}

// Revenue breaks down the home club's matchday income.
type Revenue struct {
	Tickets     int64 `json:"tickets"`
	Concessions int64 `json:"concessions"`
	Merchandise int64 `json:"merchandise"`
	Total       int64 `json:"total"`
}

// MatchResult is the engine's output and the stable boundary format
// consumed by persistence and presentation layers. It is immutable once
// constructed.
type MatchResult struct {
	MatchID      string      `json:"matchId"`
	HomeClubID   string      `json:"homeClubId"`
	AwayClubID   string      `json:"awayClubId"`
	HomeSets     int         `json:"homeSets"`
	AwaySets     int         `json:"awaySets"`
	Winner       Side        `json:"winner"`
	Sets         []SetResult `json:"sets"`
	Stats        MatchStats  `json:"stats"`
	Attendance   int         `json:"attendance"`
	Revenue      Revenue     `json:"revenue"`
	TotalRallies int         `json:"totalRallies"`
	Duration     float64     `json:"duration"`
	Seed         int64       `json:"seed"`
}

// TeamSheet bundles everything one side brings into a match.
type TeamSheet struct {
	Club    Club    `json:"club"`
	Roster  Roster  `json:"roster"`
	Tactics Tactics `json:"tactics"`
}

// MatchRequest is a simulation job: two team sheets plus an explicit
// random seed. RequestID makes submissions idempotent.
type MatchRequest struct {
	RequestID string    `json:"requestId"`
	Seed      int64     `json:"seed"`
	Home      TeamSheet `json:"home"`
	Away      TeamSheet `json:"away"`
}

// Validate runs every up-front input check. Nothing is simulated for an
// invalid request.
func (r MatchRequest) Validate() error {
	if err := r.Home.Roster.Validate(); err != nil {
		return err
	}
	if err := r.Away.Roster.Validate(); err != nil {
		return err
	}
	if err := r.Home.Tactics.Validate(); err != nil {
		return err
	}
	return r.Away.Tactics.Validate()
}
