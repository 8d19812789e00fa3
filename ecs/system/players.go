package system

import (
	"time"

	"github.com/milk9111/boxing/ecs"
	"github.com/milk9111/boxing/ecs/component"
)

// playerEntity finds the fighter entity of participant p.
func playerEntity(w *ecs.World, p component.Participant) (ecs.Entity, bool) {
	for _, e := range w.Query(component.PlayerComponent.Kind(), component.FighterComponent.Kind()) {
		if pl, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok && pl.ID == p {
			return e, true
		}
	}
	return 0, false
}

// fighterOf returns the combat state of participant p.
func fighterOf(w *ecs.World, p component.Participant) (*component.Fighter, bool) {
	e, ok := playerEntity(w, p)
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.FighterComponent.Kind())
}

func clock(w *ecs.World) (component.Clock, bool) {
	c, ok := ecs.Single(w, component.ClockComponent.Kind())
	if !ok {
		return component.Clock{}, false
	}
	return *c, true
}

func recordAt(w *ecs.World, p component.Participant, at time.Duration, kind, detail string) {
	t, ok := ecs.Single(w, component.TraceComponent.Kind())
	if !ok {
		return
	}
	t.Record(component.TraceEntry{Participant: p, At: at, Kind: kind, Detail: detail})
}
