package system

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/milk9111/boxing/ecs"
	"github.com/milk9111/boxing/ecs/component"
	"github.com/milk9111/boxing/logging"
)

// EscalationWindow is how soon a repeated movement key must arrive to turn
// a step into a hook.
const EscalationWindow = 300 * time.Millisecond

// InputSystem resolves queued key events into fighter transitions: guard
// combinations first, then straight attacks, then the step/hook escalation
// for movement keys.
type InputSystem struct {
	logger *slog.Logger
}

func NewInputSystem(logger *slog.Logger) *InputSystem {
	return &InputSystem{logger: logging.OrDiscard(logger)}
}

func (s *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	q, ok := ecs.Single(w, component.InputQueueComponent.Kind())
	if !ok || len(q.Events) == 0 {
		return
	}
	c, ok := clock(w)
	if !ok {
		return
	}

	// events stamped after the clock stay queued until it reaches them
	sort.SliceStable(q.Events, func(i, j int) bool { return q.Events[i].At < q.Events[j].At })
	due := sort.Search(len(q.Events), func(i int) bool { return q.Events[i].At > c.Now })
	events := q.Events[:due]
	q.Events = append([]component.InputEvent(nil), q.Events[due:]...)

	for _, evt := range events {
		s.Handle(w, evt)
	}
}

// Handle applies one key event immediately. Unknown participants, keys and
// edges are ignored.
func (s *InputSystem) Handle(w *ecs.World, evt component.InputEvent) {
	if w == nil || !evt.Participant.Valid() || !evt.Key.Valid() || !evt.Edge.Valid() {
		return
	}
	e, ok := playerEntity(w, evt.Participant)
	if !ok {
		return
	}
	fighter, ok := ecs.Get(w, e, component.FighterComponent.Kind())
	if !ok {
		return
	}
	keys, ok := ecs.Get(w, e, component.KeyStateComponent.Kind())
	if !ok {
		return
	}

	if evt.Edge == component.EdgeUp {
		keys.Set(evt.Key, false)
		if isDefenseKey(keys, evt.Key) {
			s.releaseDefense(w, evt, fighter, keys)
		}
		return
	}
	keys.Set(evt.Key, true)

	// key state stays current between rounds, but nothing else reacts
	if round, ok := ecs.Single(w, component.RoundComponent.Kind()); ok && round.Phase != component.PhaseFighting {
		return
	}

	switch {
	case isDefenseKey(keys, evt.Key):
		s.handleDefense(w, evt, fighter, keys)
	case evt.Key.IsMovement():
		hist, ok := ecs.Get(w, e, component.MoveHistoryComponent.Kind())
		if !ok {
			return
		}
		s.handleMove(w, evt, fighter, hist)
	default:
		s.handleAttack(w, evt, fighter)
	}
}

// isDefenseKey reports whether k is routed to the guard: the guard key itself,
// or any key pressed or released while the guard is held.
func isDefenseKey(keys *component.KeyState, k component.Key) bool {
	return k == component.KeyGuard || keys.Held(component.KeyGuard)
}

func (s *InputSystem) handleDefense(w *ecs.World, evt component.InputEvent, f *component.Fighter, keys *component.KeyState) {
	dir, ok := keys.GuardDirection()
	if !ok {
		recordAt(w, evt.Participant, evt.At, "info", "guard without direction")
		return
	}
	f.PerformDefense(dir)
	recordAt(w, evt.Participant, evt.At, "defense", dir.String())
	s.logger.Debug("defense", "player", evt.Participant, "direction", dir)
}

func (s *InputSystem) releaseDefense(w *ecs.World, evt component.InputEvent, f *component.Fighter, keys *component.KeyState) {
	if !f.Defending {
		return
	}
	if _, ok := keys.GuardDirection(); ok {
		return
	}
	f.ReturnToNeutral()
	recordAt(w, evt.Participant, evt.At, "defense", "released")
	s.logger.Debug("defense released", "player", evt.Participant)
}

func (s *InputSystem) handleAttack(w *ecs.World, evt component.InputEvent, f *component.Fighter) {
	var attack component.Action
	switch evt.Key {
	case component.KeyUp:
		attack = component.ActionStraight
	case component.KeyDown:
		attack = component.ActionJab
	default:
		return
	}
	if !f.CanAct() {
		recordAt(w, evt.Participant, evt.At, "blocked", "cannot act: "+f.Posture.String())
		s.logger.Debug("cannot act", "player", evt.Participant, "posture", f.Posture, "stamina", f.Resource)
		return
	}
	if !f.PerformAttack(attack, evt.At) {
		recordAt(w, evt.Participant, evt.At, "blocked", fmt.Sprintf("%s needs stamina, have %d", attack, f.Resource))
		s.logger.Debug("insufficient stamina", "player", evt.Participant, "action", attack, "stamina", f.Resource)
		return
	}
	recordAt(w, evt.Participant, evt.At, "attack", attack.String())
	s.logger.Debug("attack", "player", evt.Participant, "action", attack, "stamina", f.Resource)
}

// handleMove runs the step/hook escalation. A repeat of the last stepped key
// within EscalationWindow (inclusive) cancels the step posture and throws the
// matching hook; the step's evasion window keeps running. Both the step and
// the hook are paid for.
func (s *InputSystem) handleMove(w *ecs.World, evt component.InputEvent, f *component.Fighter, hist *component.MoveHistory) {
	dir := evt.Key.Direction()
	dt := evt.At - hist.Time

	if hist.Key == evt.Key && dt <= EscalationWindow {
		hook := component.HookFor(dir)
		f.ReturnToNeutral()
		// PerformAttack stamps ActionStart with the repeat time, so the hit
		// window opens at the escalation rather than at the step.
		if f.PerformAttack(hook, evt.At) {
			recordAt(w, evt.Participant, evt.At, "hook", fmt.Sprintf("double tap %s (%s) -> %s", evt.Key, dt, hook))
			s.logger.Debug("step escalated", "player", evt.Participant, "action", hook, "dt", dt, "stamina", f.Resource)
		} else {
			recordAt(w, evt.Participant, evt.At, "blocked", fmt.Sprintf("hook failed, stamina %d", f.Resource))
			s.logger.Debug("hook failed", "player", evt.Participant, "action", hook, "stamina", f.Resource)
		}
		hist.Clear()
		return
	}

	if !f.CanAct() {
		recordAt(w, evt.Participant, evt.At, "blocked", "cannot move: "+f.Posture.String())
		s.logger.Debug("cannot move", "player", evt.Participant, "posture", f.Posture, "stamina", f.Resource)
		return
	}
	if !f.StartEvasion(dir, evt.At) {
		recordAt(w, evt.Participant, evt.At, "blocked", fmt.Sprintf("step failed, stamina %d", f.Resource))
		s.logger.Debug("step failed", "player", evt.Participant, "direction", dir, "stamina", f.Resource)
		return
	}
	hist.Key = evt.Key
	hist.Time = evt.At
	recordAt(w, evt.Participant, evt.At, "evading", "step "+dir.String())
	s.logger.Debug("step", "player", evt.Participant, "direction", dir, "stamina", f.Resource)
}
