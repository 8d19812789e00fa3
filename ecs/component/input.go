package component

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUnknownKey         = errors.New("input: unknown logical key")
	ErrUnknownParticipant = errors.New("input: unknown participant")
)

// Participant identifies one of the two local fighters.
type Participant uint8

const (
	ParticipantNone Participant = iota
	Participant1
	Participant2
)

func (p Participant) Valid() bool {
	return p == Participant1 || p == Participant2
}

// Opponent returns the other participant.
func (p Participant) Opponent() Participant {
	switch p {
	case Participant1:
		return Participant2
	case Participant2:
		return Participant1
	}
	return ParticipantNone
}

func (p Participant) String() string {
	if !p.Valid() {
		return "none"
	}
	return fmt.Sprintf("player%d", uint8(p))
}

// ParseParticipant accepts 1, 2, "p1", "player1" and friends.
func ParseParticipant(s string) (Participant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "p1", "player1":
		return Participant1, nil
	case "2", "p2", "player2":
		return Participant2, nil
	}
	return ParticipantNone, fmt.Errorf("%w: %q", ErrUnknownParticipant, s)
}

// Key is an engine-agnostic logical key. Binding physical keys to these is
// the host's job.
type Key uint8

const (
	KeyNone Key = iota
	KeyGuard
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	keyCount
)

func (k Key) Valid() bool {
	return k > KeyNone && k < keyCount
}

func (k Key) String() string {
	switch k {
	case KeyGuard:
		return "guard"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	}
	return "none"
}

// ParseKey maps a logical key name to its Key.
func ParseKey(s string) (Key, error) {
	for k := KeyGuard; k < keyCount; k++ {
		if k.String() == strings.ToLower(strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return KeyNone, fmt.Errorf("%w: %q", ErrUnknownKey, s)
}

// Direction returns the guard/step direction a key stands for.
func (k Key) Direction() Direction {
	switch k {
	case KeyUp:
		return DirectionUp
	case KeyDown:
		return DirectionDown
	case KeyLeft:
		return DirectionLeft
	case KeyRight:
		return DirectionRight
	}
	return DirectionNeutral
}

// IsMovement reports whether k drives the step/hook escalation.
func (k Key) IsMovement() bool {
	return k == KeyLeft || k == KeyRight
}

// Edge is the transition of a key.
type Edge uint8

const (
	EdgeDown Edge = iota
	EdgeUp
)

func (e Edge) Valid() bool {
	return e == EdgeDown || e == EdgeUp
}

func (e Edge) String() string {
	switch e {
	case EdgeDown:
		return "down"
	case EdgeUp:
		return "up"
	}
	return fmt.Sprintf("edge(%d)", uint8(e))
}

// InputEvent is one key transition stamped with match time.
type InputEvent struct {
	Participant Participant
	Key         Key
	Edge        Edge
	At          time.Duration
}

// InputQueue buffers input events until the next tick drains them.
type InputQueue struct {
	Events []InputEvent
}

var InputQueueComponent = NewComponent[InputQueue]()

// KeyState tracks which logical keys a participant holds.
type KeyState struct {
	held [keyCount]bool
}

var KeyStateComponent = NewComponent[KeyState]()

func (s *KeyState) Set(k Key, down bool) {
	if s == nil || !k.Valid() {
		return
	}
	s.held[k] = down
}

func (s *KeyState) Held(k Key) bool {
	if s == nil || !k.Valid() {
		return false
	}
	return s.held[k]
}

// GuardDirection returns the direction of a held guard combination, checking
// up, down, left, right in that order. ok is false when the guard key is up
// or no direction key is held.
func (s *KeyState) GuardDirection() (d Direction, ok bool) {
	if !s.Held(KeyGuard) {
		return DirectionNeutral, false
	}
	for _, k := range [...]Key{KeyUp, KeyDown, KeyLeft, KeyRight} {
		if s.Held(k) {
			return k.Direction(), true
		}
	}
	return DirectionNeutral, false
}

// MoveHistory remembers the last successful step of a participant.
type MoveHistory struct {
	Key  Key
	Time time.Duration
}

var MoveHistoryComponent = NewComponent[MoveHistory]()

func (h *MoveHistory) Clear() {
	if h == nil {
		return
	}
	*h = MoveHistory{}
}

// Player tags a fighter entity with its participant id.
type Player struct {
	ID Participant
}

var PlayerComponent = NewComponent[Player]()
