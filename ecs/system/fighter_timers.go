package system

import (
	"github.com/milk9111/boxing/ecs"
	"github.com/milk9111/boxing/ecs/component"
)

// FighterTimerSystem advances posture, evasion, and regeneration timers of
// every fighter by the clock delta. It must run before CombatSystem so that a
// posture expiring this tick is already neutral when hits are checked.
type FighterTimerSystem struct{}

func NewFighterTimerSystem() *FighterTimerSystem {
	return &FighterTimerSystem{}
}

func (s *FighterTimerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	c, ok := clock(w)
	if !ok || c.Delta <= 0 {
		return
	}
	ecs.ForEach(w, component.FighterComponent.Kind(), func(e ecs.Entity, f *component.Fighter) {
		f.Tick(c.Delta)
	})
}
