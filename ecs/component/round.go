package component

import "time"

// RoundPhase is the stage of the match clock.
type RoundPhase uint8

const (
	PhaseFighting RoundPhase = iota
	PhaseInterlude
	PhaseOver
)

func (p RoundPhase) String() string {
	switch p {
	case PhaseFighting:
		return "fighting"
	case PhaseInterlude:
		return "interlude"
	case PhaseOver:
		return "over"
	}
	return "unknown"
}

// Rules are the match-level settings.
type Rules struct {
	Rounds    int
	RoundTime time.Duration
	Interlude time.Duration
}

// DefaultRules returns three 30 second rounds with a 2 second break.
func DefaultRules() Rules {
	return Rules{Rounds: 3, RoundTime: 30 * time.Second, Interlude: 2 * time.Second}
}

// ResultReason explains how a match ended.
type ResultReason string

const (
	ReasonKO       ResultReason = "ko"
	ReasonDecision ResultReason = "decision"
	ReasonDraw     ResultReason = "draw"
)

// Result is the outcome of a finished match. Winner is ParticipantNone on a draw.
type Result struct {
	Winner Participant
	Reason ResultReason
}

// Round is the singleton round clock. Countdowns are advanced by the round
// system; no callbacks are scheduled.
type Round struct {
	Rules    Rules
	Current  int
	Phase    RoundPhase
	TimeLeft time.Duration
	// InterludeLeft counts down the break before round Current starts.
	InterludeLeft time.Duration
	Result        Result
}

var RoundComponent = NewComponent[Round]()

// NewRound returns round 1 in progress.
func NewRound(r Rules) *Round {
	if r.Rounds <= 0 {
		r.Rounds = 1
	}
	return &Round{Rules: r, Current: 1, Phase: PhaseFighting, TimeLeft: r.RoundTime}
}

// Over reports whether the match finished.
func (r *Round) Over() bool {
	return r != nil && r.Phase == PhaseOver
}

// Clock is the singleton match clock.
type Clock struct {
	Now   time.Duration
	Delta time.Duration
}

var ClockComponent = NewComponent[Clock]()
