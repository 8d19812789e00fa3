package system

import (
	"log/slog"

	"github.com/milk9111/boxing/ecs"
	"github.com/milk9111/boxing/ecs/component"
	"github.com/milk9111/boxing/logging"
)

// DamageEventType is the world event type carrying a component.DamageEvent.
const DamageEventType = "damage"

// CombatSystem registers hits: each attacking fighter gets exactly one
// resolution against its opponent inside the hit window. A knockout ends the
// match on the spot.
type CombatSystem struct {
	logger *slog.Logger
}

func NewCombatSystem(logger *slog.Logger) *CombatSystem {
	return &CombatSystem{logger: logging.OrDiscard(logger)}
}

func (s *CombatSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	c, ok := clock(w)
	if !ok {
		return
	}
	round, ok := ecs.Single(w, component.RoundComponent.Kind())
	if !ok || round.Phase != component.PhaseFighting {
		return
	}

	for _, p := range [...]component.Participant{component.Participant1, component.Participant2} {
		attacker, ok := fighterOf(w, p)
		if !ok {
			continue
		}
		if attacker.Posture != component.PostureAttacking {
			attacker.DamageApplied = false
			continue
		}
		defender, ok := fighterOf(w, p.Opponent())
		if !ok {
			continue
		}

		action := attacker.CurrentAction
		out, ok := ResolveAttack(attacker, defender, c.Now, c.Delta)
		if !ok {
			continue
		}

		evt := component.DamageEvent{
			Attacker: p,
			Defender: p.Opponent(),
			Action:   action,
			HitType:  out.HitType,
			Damage:   out.Damage,
			At:       c.Now,
		}
		s.logger.Debug("attack resolved",
			"attacker", p, "defender", evt.Defender, "action", action,
			"hit_type", out.HitType, "damage", out.Damage, "defender_health", defender.Health)
		w.Events().Push(ecs.Event{Type: DamageEventType, Data: evt})

		if defender.KnockedOut() {
			s.logger.Info("knockout", "winner", p, "loser", evt.Defender, "round", round.Current)
			finishMatch(w, round, component.Result{Winner: p, Reason: component.ReasonKO}, c.Now)
			return
		}
	}
}
