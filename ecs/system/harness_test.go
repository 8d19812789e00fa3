package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/boxing/ecs"
	"github.com/milk9111/boxing/ecs/component"
)

const ms = time.Millisecond

// harness is a two-fighter world driven by the production system order.
type harness struct {
	w       *ecs.World
	sched   *ecs.Scheduler
	input   *InputSystem
	players map[component.Participant]ecs.Entity
	state   ecs.Entity

	damage  []component.DamageEvent
	matches []component.MatchEvent
}

func newHarness(t *testing.T, rules component.Rules) *harness {
	t.Helper()
	w := ecs.NewWorld()
	h := &harness{w: w, players: map[component.Participant]ecs.Entity{}}

	for _, p := range []component.Participant{component.Participant1, component.Participant2} {
		e := w.CreateEntity()
		require.NoError(t, ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{ID: p}))
		require.NoError(t, ecs.Add(w, e, component.FighterComponent.Kind(), component.NewFighter(nil)))
		require.NoError(t, ecs.Add(w, e, component.KeyStateComponent.Kind(), &component.KeyState{}))
		require.NoError(t, ecs.Add(w, e, component.MoveHistoryComponent.Kind(), &component.MoveHistory{}))
		h.players[p] = e
	}

	h.state = w.CreateEntity()
	emitter := &component.CombatEmitter{
		DamageHandlers: []component.DamageHandler{func(evt component.DamageEvent) { h.damage = append(h.damage, evt) }},
		MatchHandlers:  []component.MatchEventHandler{func(evt component.MatchEvent) { h.matches = append(h.matches, evt) }},
	}
	require.NoError(t, ecs.Add(w, h.state, component.ClockComponent.Kind(), &component.Clock{}))
	require.NoError(t, ecs.Add(w, h.state, component.RoundComponent.Kind(), component.NewRound(rules)))
	require.NoError(t, ecs.Add(w, h.state, component.InputQueueComponent.Kind(), &component.InputQueue{}))
	require.NoError(t, ecs.Add(w, h.state, component.TraceComponent.Kind(), &component.Trace{}))
	require.NoError(t, ecs.Add(w, h.state, component.CombatEmitterComponent.Kind(), emitter))

	h.input = NewInputSystem(nil)
	h.sched = ecs.NewScheduler(h.input, NewFighterTimerSystem(), NewCombatSystem(nil), NewRoundSystem(nil), NewEventDispatchSystem(nil))
	return h
}

func (h *harness) fighter(p component.Participant) *component.Fighter {
	f, _ := ecs.Get(h.w, h.players[p], component.FighterComponent.Kind())
	return f
}

func (h *harness) history(p component.Participant) *component.MoveHistory {
	hist, _ := ecs.Get(h.w, h.players[p], component.MoveHistoryComponent.Kind())
	return hist
}

func (h *harness) round() *component.Round {
	r, _ := ecs.Get(h.w, h.state, component.RoundComponent.Kind())
	return r
}

func (h *harness) trace() []component.TraceEntry {
	tr, _ := ecs.Get(h.w, h.state, component.TraceComponent.Kind())
	return tr.Entries()
}

func (h *harness) now() time.Duration {
	c, _ := ecs.Get(h.w, h.state, component.ClockComponent.Kind())
	return c.Now
}

// queue adds an event for the next tick.
func (h *harness) queue(p component.Participant, k component.Key, edge component.Edge, at time.Duration) {
	q, _ := ecs.Get(h.w, h.state, component.InputQueueComponent.Kind())
	q.Events = append(q.Events, component.InputEvent{Participant: p, Key: k, Edge: edge, At: at})
}

// handle applies an event immediately, bypassing the queue.
func (h *harness) handle(p component.Participant, k component.Key, edge component.Edge, at time.Duration) {
	h.input.Handle(h.w, component.InputEvent{Participant: p, Key: k, Edge: edge, At: at})
}

func (h *harness) tick(delta time.Duration) {
	c, _ := ecs.Get(h.w, h.state, component.ClockComponent.Kind())
	c.Now += delta
	c.Delta = delta
	h.sched.Update(h.w)
}

// runUntil ticks by step until the clock reaches at.
func (h *harness) runUntil(at, step time.Duration) {
	for h.now() < at {
		h.tick(step)
	}
}
