package component

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnknownAction    = errors.New("combat: unknown action")
	ErrInvalidActionDef = errors.New("combat: invalid action definition")
)

// Action identifies an entry of the action catalog.
type Action uint8

const (
	ActionNone Action = iota
	ActionJab
	ActionStraight
	ActionLeftHook
	ActionRightHook
	ActionLeftStep
	ActionRightStep

	actionCount
)

var actionNames = [actionCount]string{
	ActionNone:      "none",
	ActionJab:       "jab",
	ActionStraight:  "straight",
	ActionLeftHook:  "leftHook",
	ActionRightHook: "rightHook",
	ActionLeftStep:  "leftStep",
	ActionRightStep: "rightStep",
}

func (a Action) String() string {
	if a >= actionCount {
		return fmt.Sprintf("action(%d)", uint8(a))
	}
	return actionNames[a]
}

// Valid reports whether a names a catalog entry.
func (a Action) Valid() bool {
	return a > ActionNone && a < actionCount
}

// IsStrike reports whether a is a damaging attack.
func (a Action) IsStrike() bool {
	switch a {
	case ActionJab, ActionStraight, ActionLeftHook, ActionRightHook:
		return true
	}
	return false
}

// IsStep reports whether a is an evasive step.
func (a Action) IsStep() bool {
	return a == ActionLeftStep || a == ActionRightStep
}

// IsStraightLine reports whether a is negated by an active evasion window.
// Hooks travel around a lateral step and are not.
func (a Action) IsStraightLine() bool {
	return a == ActionJab || a == ActionStraight
}

// ParseAction maps a catalog identifier to its Action.
func ParseAction(s string) (Action, error) {
	for a := ActionJab; a < actionCount; a++ {
		if actionNames[a] == s {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// Actions lists every catalog action in declaration order.
func Actions() []Action {
	out := make([]Action, 0, actionCount-1)
	for a := ActionJab; a < actionCount; a++ {
		out = append(out, a)
	}
	return out
}

// ActionDef is the immutable data behind an action.
type ActionDef struct {
	Damage   int
	Cost     int
	Duration time.Duration
}

func (d ActionDef) validate() error {
	if d.Damage < 0 || d.Cost < 0 || d.Duration <= 0 {
		return fmt.Errorf("%w: damage=%d cost=%d duration=%s", ErrInvalidActionDef, d.Damage, d.Cost, d.Duration)
	}
	return nil
}

// Catalog is the static action table, indexed by Action.
type Catalog struct {
	defs [actionCount]ActionDef
}

// DefaultCatalog returns the stock boxing table.
func DefaultCatalog() *Catalog {
	c := &Catalog{}
	c.defs[ActionJab] = ActionDef{Damage: 8, Cost: 15, Duration: 300 * time.Millisecond}
	c.defs[ActionStraight] = ActionDef{Damage: 10, Cost: 20, Duration: 300 * time.Millisecond}
	c.defs[ActionLeftHook] = ActionDef{Damage: 12, Cost: 20, Duration: 300 * time.Millisecond}
	c.defs[ActionRightHook] = ActionDef{Damage: 12, Cost: 20, Duration: 300 * time.Millisecond}
	c.defs[ActionLeftStep] = ActionDef{Damage: 0, Cost: 7, Duration: 300 * time.Millisecond}
	c.defs[ActionRightStep] = ActionDef{Damage: 0, Cost: 7, Duration: 300 * time.Millisecond}
	return c
}

// NewCatalog builds a catalog from defs. Actions missing from defs keep their
// stock values; steps are forced to zero damage.
func NewCatalog(defs map[Action]ActionDef) (*Catalog, error) {
	c := DefaultCatalog()
	for a, d := range defs {
		if !a.Valid() {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAction, a)
		}
		if err := d.validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", a, err)
		}
		if a.IsStep() {
			d.Damage = 0
		}
		c.defs[a] = d
	}
	return c, nil
}

// Lookup returns the definition of a.
func (c *Catalog) Lookup(a Action) (ActionDef, bool) {
	if c == nil || !a.Valid() {
		return ActionDef{}, false
	}
	return c.defs[a], true
}
