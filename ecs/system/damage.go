package system

import (
	"time"

	"github.com/milk9111/boxing/ecs/component"
)

// HitWindow is how long after an attack starts it may still register.
const HitWindow = 100 * time.Millisecond

// Resolve applies attack, priced from catalog, to defender. Steps and unknown
// actions never resolve; ok is false for them and nothing changes.
func Resolve(catalog *component.Catalog, attack component.Action, defender *component.Fighter) (out component.DamageOutcome, ok bool) {
	if defender == nil || !attack.IsStrike() {
		return component.DamageOutcome{}, false
	}
	def, ok := catalog.Lookup(attack)
	if !ok {
		return component.DamageOutcome{}, false
	}
	return defender.TakeDamage(def.Damage, attack), true
}

// ResolveAttack resolves the attacker's current attack against defender if it
// is inside its hit window and not yet latched. now is the end of the tick
// being resolved and delta its length; an attack that started during that
// tick is always inside its window, however long the tick. The latch is set
// on success, so repeated calls for the same attack instance apply damage
// once.
func ResolveAttack(attacker, defender *component.Fighter, now, delta time.Duration) (component.DamageOutcome, bool) {
	if attacker == nil || defender == nil {
		return component.DamageOutcome{}, false
	}
	if attacker.Posture != component.PostureAttacking || attacker.DamageApplied {
		return component.DamageOutcome{}, false
	}
	if attacker.ActionStart < now-delta && now-attacker.ActionStart > HitWindow {
		return component.DamageOutcome{}, false
	}
	attacker.DamageApplied = true
	return Resolve(attacker.Catalog(), attacker.CurrentAction, defender)
}
