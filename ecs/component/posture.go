package component

import "fmt"

// Posture is the mutually exclusive combat mode of a fighter.
type Posture uint8

const (
	PostureNeutral Posture = iota
	PostureAttacking
	PostureDefending
	PostureEvading
)

func (p Posture) String() string {
	switch p {
	case PostureNeutral:
		return "neutral"
	case PostureAttacking:
		return "attack"
	case PostureDefending:
		return "defense"
	case PostureEvading:
		return "evading"
	}
	return fmt.Sprintf("posture(%d)", uint8(p))
}

// Direction is a guard or step direction. DirectionNeutral doubles as "none"
// for the evasion direction.
type Direction uint8

const (
	DirectionNeutral Direction = iota
	DirectionUp
	DirectionDown
	DirectionLeft
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionNeutral:
		return "neutral"
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	}
	return fmt.Sprintf("direction(%d)", uint8(d))
}

// HitType classifies a resolved attack.
type HitType uint8

const (
	HitTypeHit HitType = iota
	HitTypeBlocked
	HitTypeEvaded
)

func (h HitType) String() string {
	switch h {
	case HitTypeHit:
		return "hit"
	case HitTypeBlocked:
		return "blocked"
	case HitTypeEvaded:
		return "evaded"
	}
	return fmt.Sprintf("hit_type(%d)", uint8(h))
}

// blocks reports whether guarding in d mitigates a.
func blocks(a Action, d Direction) bool {
	switch a {
	case ActionJab, ActionStraight:
		return d == DirectionUp || d == DirectionDown
	case ActionLeftHook:
		return d == DirectionLeft
	case ActionRightHook:
		return d == DirectionRight
	}
	return false
}
