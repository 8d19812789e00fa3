package component

import "time"

const (
	MaxHealth   = 100
	MaxResource = 100

	// EvasionWindow is the invulnerability granted by a step, independent of
	// the step's own posture duration.
	EvasionWindow = 300 * time.Millisecond
	// RegenInterval is the accumulated time per regenerated resource point.
	RegenInterval = 100 * time.Millisecond
	// BlockPercent is the share of base damage that gets through a matching guard.
	BlockPercent = 20
)

// DamageOutcome is the result of one resolved attack.
type DamageOutcome struct {
	Damage  int
	HitType HitType
}

// Fighter is the combat state of one participant. It is mutated only through
// its transition methods.
type Fighter struct {
	Health   int
	Resource int

	Posture       Posture
	CurrentAction Action
	// ActionStart is the match time the current posture began; it anchors the
	// hit-registration window.
	ActionStart  time.Duration
	PostureTimer time.Duration

	Defending        bool
	DefenseDirection Direction

	Evading          bool
	EvasionTimer     time.Duration
	EvasionDirection Direction

	// DamageApplied latches once the current attack instance was resolved.
	DamageApplied bool

	regen   time.Duration
	catalog *Catalog
}

var FighterComponent = NewComponent[Fighter]()

// NewFighter returns a fresh fighter at full health and resource. A nil
// catalog selects DefaultCatalog.
func NewFighter(catalog *Catalog) *Fighter {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Fighter{
		Health:   MaxHealth,
		Resource: MaxResource,
		catalog:  catalog,
	}
}

// Catalog returns the action table the fighter draws costs from.
func (f *Fighter) Catalog() *Catalog {
	if f == nil {
		return nil
	}
	return f.catalog
}

// SetCatalog swaps the action table. In-flight timers keep their values.
func (f *Fighter) SetCatalog(c *Catalog) {
	if f == nil || c == nil {
		return
	}
	f.catalog = c
}

// CanAct reports whether the fighter may start an attack.
func (f *Fighter) CanAct() bool {
	return f != nil && f.Posture == PostureNeutral && f.Resource > 0
}

// PerformAttack starts action a at now. It fails without touching state when
// the fighter cannot act or cannot pay the cost.
func (f *Fighter) PerformAttack(a Action, now time.Duration) bool {
	if !f.CanAct() {
		return false
	}
	def, ok := f.catalog.Lookup(a)
	if !ok || f.Resource < def.Cost {
		return false
	}
	f.Posture = PostureAttacking
	f.CurrentAction = a
	f.Resource -= def.Cost
	f.PostureTimer = def.Duration
	f.ActionStart = now
	f.DamageApplied = false
	return true
}

// StartEvasion steps toward d (left or right) at now and opens the
// invulnerability window. Posture eligibility is the caller's concern.
func (f *Fighter) StartEvasion(d Direction, now time.Duration) bool {
	if f == nil {
		return false
	}
	step := StepFor(d)
	def, ok := f.catalog.Lookup(step)
	if !ok || f.Resource < def.Cost {
		return false
	}
	f.Posture = PostureEvading
	f.CurrentAction = step
	f.Resource -= def.Cost
	f.PostureTimer = def.Duration
	f.ActionStart = now

	f.Evading = true
	f.EvasionTimer = EvasionWindow
	f.EvasionDirection = d
	return true
}

// PerformDefense raises the guard toward d. It is free and always succeeds.
func (f *Fighter) PerformDefense(d Direction) bool {
	if f == nil {
		return false
	}
	f.Posture = PostureDefending
	f.Defending = true
	f.DefenseDirection = d
	return true
}

// ReturnToNeutral drops the current posture. The evasion window is left
// running.
func (f *Fighter) ReturnToNeutral() {
	if f == nil {
		return
	}
	f.Posture = PostureNeutral
	f.CurrentAction = ActionNone
	f.Defending = false
	f.DefenseDirection = DirectionNeutral
	f.PostureTimer = 0
}

// Tick advances every timer by delta.
func (f *Fighter) Tick(delta time.Duration) {
	if f == nil || delta <= 0 {
		return
	}

	if f.PostureTimer > 0 {
		f.PostureTimer -= delta
		if f.PostureTimer <= 0 {
			f.ReturnToNeutral()
		}
	}

	if f.EvasionTimer > 0 {
		f.EvasionTimer -= delta
		if f.EvasionTimer <= 0 {
			f.clearEvasion()
		}
	}

	if f.Resource < MaxResource {
		f.regen += delta
		for f.regen >= RegenInterval && f.Resource < MaxResource {
			f.Resource++
			f.regen -= RegenInterval
		}
	}
	if f.Resource >= MaxResource {
		f.Resource = MaxResource
		f.regen = 0
	}

	// exhaustion cancels any active posture
	if f.Resource <= 0 && f.Posture != PostureNeutral {
		f.ReturnToNeutral()
	}
}

// TakeDamage applies an attack of base damage to the fighter.
func (f *Fighter) TakeDamage(damage int, attack Action) DamageOutcome {
	if f == nil {
		return DamageOutcome{HitType: HitTypeEvaded}
	}
	if f.Evading && attack.IsStraightLine() {
		return DamageOutcome{Damage: 0, HitType: HitTypeEvaded}
	}
	if damage < 0 {
		damage = 0
	}

	out := DamageOutcome{Damage: damage, HitType: HitTypeHit}
	if f.Defending && blocks(attack, f.DefenseDirection) {
		out = DamageOutcome{Damage: damage * BlockPercent / 100, HitType: HitTypeBlocked}
	}

	f.Health = clampStat(f.Health-out.Damage, MaxHealth)
	return out
}

// KnockedOut reports whether health is depleted.
func (f *Fighter) KnockedOut() bool {
	return f != nil && f.Health <= 0
}

// ResetPosture clears posture, timers, evasion, and the hit latch at a round
// boundary. Health and resource carry over.
func (f *Fighter) ResetPosture() {
	if f == nil {
		return
	}
	f.ReturnToNeutral()
	f.clearEvasion()
	f.ActionStart = 0
	f.DamageApplied = false
}

func (f *Fighter) clearEvasion() {
	f.Evading = false
	f.EvasionTimer = 0
	f.EvasionDirection = DirectionNeutral
}

// Snapshot returns the read-only view handed to render and UI collaborators.
func (f *Fighter) Snapshot() Snapshot {
	if f == nil {
		return Snapshot{}
	}
	return Snapshot{
		Health:           f.Health,
		Resource:         f.Resource,
		Posture:          f.Posture,
		CurrentAction:    f.CurrentAction,
		CanAct:           f.CanAct(),
		Defending:        f.Defending,
		DefenseDirection: f.DefenseDirection,
		Evading:          f.Evading,
		EvasionDirection: f.EvasionDirection,
	}
}

// StepFor maps a lateral direction to its step action.
func StepFor(d Direction) Action {
	switch d {
	case DirectionLeft:
		return ActionLeftStep
	case DirectionRight:
		return ActionRightStep
	}
	return ActionNone
}

// HookFor maps a lateral direction to its hook action.
func HookFor(d Direction) Action {
	switch d {
	case DirectionLeft:
		return ActionLeftHook
	case DirectionRight:
		return ActionRightHook
	}
	return ActionNone
}

func clampStat(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
