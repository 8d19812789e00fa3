package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/boxing/ecs/component"
)

const (
	p1 = component.Participant1
	p2 = component.Participant2

	down = component.EdgeDown
	up   = component.EdgeUp
)

func TestInputDefense(t *testing.T) {
	t.Run("guard_with_direction", func(t *testing.T) {
		h := newHarness(t, component.DefaultRules())
		h.handle(p1, component.KeyGuard, down, 0)
		h.handle(p1, component.KeyUp, down, 10*ms)

		f := h.fighter(p1)
		assert.Equal(t, component.PostureDefending, f.Posture)
		assert.True(t, f.Defending)
		assert.Equal(t, component.DirectionUp, f.DefenseDirection)
		assert.Equal(t, 100, f.Resource, "guarding is free")
	})

	t.Run("guard_alone_does_nothing", func(t *testing.T) {
		h := newHarness(t, component.DefaultRules())
		h.handle(p1, component.KeyGuard, down, 0)
		assert.Equal(t, component.PostureNeutral, h.fighter(p1).Posture)
	})

	t.Run("direction_then_guard", func(t *testing.T) {
		h := newHarness(t, component.DefaultRules())
		h.handle(p2, component.KeyDown, down, 0)
		h.tick(400 * ms) // let the jab finish
		h.handle(p2, component.KeyGuard, down, 400*ms)
		f := h.fighter(p2)
		assert.True(t, f.Defending)
		assert.Equal(t, component.DirectionDown, f.DefenseDirection)
	})

	t.Run("partial_release_keeps_guard", func(t *testing.T) {
		h := newHarness(t, component.DefaultRules())
		h.handle(p1, component.KeyGuard, down, 0)
		h.handle(p1, component.KeyLeft, down, 0)
		h.handle(p1, component.KeyUp, down, 0)
		require.Equal(t, component.DirectionUp, h.fighter(p1).DefenseDirection)

		h.handle(p1, component.KeyLeft, up, 50*ms)
		assert.True(t, h.fighter(p1).Defending)

		h.handle(p1, component.KeyUp, up, 60*ms)
		assert.False(t, h.fighter(p1).Defending)
		assert.Equal(t, component.PostureNeutral, h.fighter(p1).Posture)
	})

	t.Run("releasing_guard_key_drops_defense", func(t *testing.T) {
		h := newHarness(t, component.DefaultRules())
		h.handle(p1, component.KeyGuard, down, 0)
		h.handle(p1, component.KeyRight, down, 0)
		h.handle(p1, component.KeyGuard, up, 30*ms)
		assert.False(t, h.fighter(p1).Defending)
	})

	t.Run("guard_overrides_attack", func(t *testing.T) {
		h := newHarness(t, component.DefaultRules())
		h.handle(p1, component.KeyDown, down, 0)
		require.Equal(t, component.PostureAttacking, h.fighter(p1).Posture)
		h.handle(p1, component.KeyGuard, down, 20*ms)
		assert.Equal(t, component.PostureDefending, h.fighter(p1).Posture)
	})
}

func TestInputAttacks(t *testing.T) {
	tests := []struct {
		name string
		key  component.Key
		want component.Action
		cost int
	}{
		{"up_is_straight", component.KeyUp, component.ActionStraight, 20},
		{"down_is_jab", component.KeyDown, component.ActionJab, 15},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, component.DefaultRules())
			h.handle(p1, tc.key, down, 5*ms)
			f := h.fighter(p1)
			assert.Equal(t, component.PostureAttacking, f.Posture)
			assert.Equal(t, tc.want, f.CurrentAction)
			assert.Equal(t, 100-tc.cost, f.Resource)
			assert.Equal(t, 5*ms, f.ActionStart)
		})
	}

	t.Run("cannot_act_mid_attack", func(t *testing.T) {
		h := newHarness(t, component.DefaultRules())
		h.handle(p1, component.KeyDown, down, 0)
		h.handle(p1, component.KeyUp, down, 50*ms)
		f := h.fighter(p1)
		assert.Equal(t, component.ActionJab, f.CurrentAction)
		assert.Equal(t, 85, f.Resource)
	})

	t.Run("insufficient_stamina", func(t *testing.T) {
		h := newHarness(t, component.DefaultRules())
		h.fighter(p1).Resource = 10
		h.handle(p1, component.KeyUp, down, 0)
		assert.Equal(t, component.PostureNeutral, h.fighter(p1).Posture)
		assert.Equal(t, 10, h.fighter(p1).Resource)
	})
}

func TestInputStepEscalation(t *testing.T) {
	t.Run("double_tap_at_window_edge_throws_hook", func(t *testing.T) {
		h := newHarness(t, component.DefaultRules())
		h.handle(p1, component.KeyLeft, down, 0)
		h.handle(p1, component.KeyLeft, up, 40*ms)
		h.handle(p1, component.KeyLeft, down, EscalationWindow)

		f := h.fighter(p1)
		assert.Equal(t, component.PostureAttacking, f.Posture)
		assert.Equal(t, component.ActionLeftHook, f.CurrentAction)
		assert.Equal(t, EscalationWindow, f.ActionStart)
		assert.Equal(t, 73, f.Resource, "step and hook are both paid")
		assert.True(t, f.Evading, "the step's evasion window keeps running")
		assert.Equal(t, component.MoveHistory{}, *h.history(p1))
	})

	t.Run("right_double_tap", func(t *testing.T) {
		h := newHarness(t, component.DefaultRules())
		h.handle(p2, component.KeyRight, down, 100*ms)
		h.handle(p2, component.KeyRight, down, 150*ms)
		assert.Equal(t, component.ActionRightHook, h.fighter(p2).CurrentAction)
	})

	t.Run("different_key_is_a_new_step", func(t *testing.T) {
		h := newHarness(t, component.DefaultRules())
		h.handle(p1, component.KeyLeft, down, 0)
		h.handle(p1, component.KeyRight, down, 100*ms)
		f := h.fighter(p1)
		assert.Equal(t, component.ActionLeftStep, f.CurrentAction, "cannot step while evading")
		assert.Equal(t, 93, f.Resource)
	})

	t.Run("late_repeat_after_posture_expiry_steps_again", func(t *testing.T) {
		h := newHarness(t, component.DefaultRules())
		h.queue(p1, component.KeyLeft, down, 0)
		h.queue(p1, component.KeyLeft, up, 40*ms)
		h.runUntil(EscalationWindow, ms)
		require.Equal(t, component.PostureNeutral, h.fighter(p1).Posture)

		h.queue(p1, component.KeyLeft, down, EscalationWindow+ms)
		h.tick(ms)

		f := h.fighter(p1)
		assert.Equal(t, component.PostureEvading, f.Posture)
		assert.Equal(t, component.ActionLeftStep, f.CurrentAction)
		assert.Equal(t, 89, f.Resource, "two steps plus three regenerated points")
		assert.Equal(t, EscalationWindow+ms, h.history(p1).Time)
	})

	t.Run("failed_hook_clears_history", func(t *testing.T) {
		h := newHarness(t, component.DefaultRules())
		h.fighter(p1).Resource = 20
		h.handle(p1, component.KeyLeft, down, 0)
		h.handle(p1, component.KeyLeft, down, 100*ms)
		f := h.fighter(p1)
		assert.Equal(t, component.PostureNeutral, f.Posture, "escalation cancels the step even when the hook fails")
		assert.Equal(t, 13, f.Resource)
		assert.Equal(t, component.MoveHistory{}, *h.history(p1))
	})

	t.Run("failed_step_leaves_history", func(t *testing.T) {
		h := newHarness(t, component.DefaultRules())
		h.fighter(p1).Resource = 5
		h.handle(p1, component.KeyRight, down, 0)
		assert.Equal(t, component.PostureNeutral, h.fighter(p1).Posture)
		assert.Equal(t, component.MoveHistory{}, *h.history(p1))
	})
}

func TestInputIgnoredOutsideFighting(t *testing.T) {
	h := newHarness(t, component.Rules{Rounds: 2, RoundTime: 100 * ms, Interlude: 500 * ms})
	h.tick(100 * ms)
	require.Equal(t, component.PhaseInterlude, h.round().Phase)

	h.queue(p1, component.KeyGuard, down, 150*ms)
	h.queue(p1, component.KeyDown, down, 160*ms)
	h.tick(100 * ms)
	assert.Equal(t, component.PostureNeutral, h.fighter(p1).Posture)

	h.runUntil(600*ms, 100*ms)
	require.Equal(t, component.PhaseFighting, h.round().Phase)

	// the guard is still held from the interlude
	h.queue(p1, component.KeyUp, down, 650*ms)
	h.tick(100 * ms)
	assert.True(t, h.fighter(p1).Defending)
	assert.Equal(t, component.DirectionUp, h.fighter(p1).DefenseDirection)
}

func TestInputUnknownEdgeIgnored(t *testing.T) {
	h := newHarness(t, component.DefaultRules())
	h.handle(p1, component.KeyDown, component.Edge(9), 0)

	f := h.fighter(p1)
	assert.Equal(t, component.PostureNeutral, f.Posture)
	assert.Equal(t, component.ActionNone, f.CurrentAction)
	assert.Equal(t, 100, f.Resource)
	assert.Empty(t, h.trace())
}

func TestInputWaitsForClock(t *testing.T) {
	h := newHarness(t, component.DefaultRules())
	h.queue(p1, component.KeyDown, down, 150*ms)
	h.tick(100 * ms)
	assert.Equal(t, component.PostureNeutral, h.fighter(p1).Posture, "stamped after the clock")
	assert.Empty(t, h.damage)

	h.tick(100 * ms)
	f := h.fighter(p1)
	assert.Equal(t, component.PostureAttacking, f.Posture)
	assert.Equal(t, 150*ms, f.ActionStart)
	require.Len(t, h.damage, 1)
	assert.Equal(t, 8, h.damage[0].Damage)
}

func TestInputQueueSortedByTime(t *testing.T) {
	h := newHarness(t, component.DefaultRules())
	h.queue(p1, component.KeyLeft, down, 200*ms)
	h.queue(p1, component.KeyLeft, down, 0)
	h.tick(250 * ms)

	f := h.fighter(p1)
	assert.Equal(t, component.ActionLeftHook, f.CurrentAction)
}

func TestInputTrace(t *testing.T) {
	h := newHarness(t, component.DefaultRules())
	h.handle(p1, component.KeyLeft, down, 0)
	h.handle(p1, component.KeyLeft, down, 100*ms)

	entries := h.trace()
	require.Len(t, entries, 2)
	assert.Equal(t, "evading", entries[0].Kind)
	assert.Equal(t, "hook", entries[1].Kind)
	assert.Equal(t, p1, entries[1].Participant)
}
