package system

import (
	"log/slog"

	"github.com/milk9111/boxing/ecs"
	"github.com/milk9111/boxing/ecs/component"
	"github.com/milk9111/boxing/logging"
)

// EventDispatchSystem drains the frame's world events and hands damage and
// match events to the registered handlers. It runs last so handlers see the
// state the frame ended with.
type EventDispatchSystem struct {
	logger *slog.Logger
}

func NewEventDispatchSystem(logger *slog.Logger) *EventDispatchSystem {
	return &EventDispatchSystem{logger: logging.OrDiscard(logger)}
}

func (s *EventDispatchSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	events := w.Events().Drain()
	if len(events) == 0 {
		return
	}
	emitter, _ := ecs.Single(w, component.CombatEmitterComponent.Kind())
	for _, evt := range events {
		switch data := evt.Data.(type) {
		case component.DamageEvent:
			emitter.EmitDamage(data)
		case component.MatchEvent:
			emitter.EmitMatch(data)
		default:
			s.logger.Warn("unhandled world event", "type", evt.Type)
		}
	}
}
