package component

import "time"

// DamageEvent is raised once per resolved attack instance.
type DamageEvent struct {
	Attacker Participant
	Defender Participant
	Action   Action
	HitType  HitType
	Damage   int
	At       time.Duration
}

// DamageHandler receives damage events at the end of the tick that resolved
// them.
type DamageHandler func(evt DamageEvent)

// MatchEventType names round and match transitions.
type MatchEventType string

const (
	EventRoundStarted MatchEventType = "round_started"
	EventRoundEnded   MatchEventType = "round_ended"
	EventMatchOver    MatchEventType = "match_over"
)

// MatchEvent reports a round or match transition.
type MatchEvent struct {
	Type   MatchEventType
	Round  int
	Result Result
	At     time.Duration
}

// MatchEventHandler receives match events at the end of the tick that raised
// them.
type MatchEventHandler func(evt MatchEvent)

// CombatEmitter fans combat events out to registered handlers.
type CombatEmitter struct {
	DamageHandlers []DamageHandler
	MatchHandlers  []MatchEventHandler
}

var CombatEmitterComponent = NewComponent[CombatEmitter]()

// EmitDamage sends evt to all damage handlers.
func (e *CombatEmitter) EmitDamage(evt DamageEvent) {
	if e == nil {
		return
	}
	for _, h := range e.DamageHandlers {
		if h != nil {
			h(evt)
		}
	}
}

// EmitMatch sends evt to all match handlers.
func (e *CombatEmitter) EmitMatch(evt MatchEvent) {
	if e == nil {
		return
	}
	for _, h := range e.MatchHandlers {
		if h != nil {
			h(evt)
		}
	}
}
