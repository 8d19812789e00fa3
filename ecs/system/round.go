package system

import (
	"log/slog"
	"time"

	"github.com/milk9111/boxing/ecs"
	"github.com/milk9111/boxing/ecs/component"
	"github.com/milk9111/boxing/logging"
)

// MatchEventType is the world event type carrying a component.MatchEvent.
const MatchEventType = "match"

// RoundSystem runs the round clock: the fighting countdown, the break between
// rounds, and the decision after the last round.
type RoundSystem struct {
	logger *slog.Logger
}

func NewRoundSystem(logger *slog.Logger) *RoundSystem {
	return &RoundSystem{logger: logging.OrDiscard(logger)}
}

func (s *RoundSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	c, ok := clock(w)
	if !ok || c.Delta <= 0 {
		return
	}
	round, ok := ecs.Single(w, component.RoundComponent.Kind())
	if !ok {
		return
	}

	switch round.Phase {
	case component.PhaseFighting:
		round.TimeLeft -= c.Delta
		if round.TimeLeft > 0 {
			return
		}
		round.TimeLeft = 0
		s.logger.Info("round ended", "round", round.Current)
		emit(w, component.MatchEvent{Type: component.EventRoundEnded, Round: round.Current, At: c.Now})

		if round.Current >= round.Rules.Rounds {
			finishMatch(w, round, decide(w), c.Now)
			s.logger.Info("match over", "winner", round.Result.Winner, "reason", round.Result.Reason)
			return
		}
		round.Current++
		round.Phase = component.PhaseInterlude
		round.InterludeLeft = round.Rules.Interlude
		round.TimeLeft = round.Rules.RoundTime
		resetPostures(w)
		if round.InterludeLeft <= 0 {
			s.startRound(w, round, c.Now)
		}

	case component.PhaseInterlude:
		round.InterludeLeft -= c.Delta
		if round.InterludeLeft <= 0 {
			s.startRound(w, round, c.Now)
		}
	}
}

func (s *RoundSystem) startRound(w *ecs.World, round *component.Round, at time.Duration) {
	round.InterludeLeft = 0
	round.Phase = component.PhaseFighting
	s.logger.Info("round started", "round", round.Current)
	emit(w, component.MatchEvent{Type: component.EventRoundStarted, Round: round.Current, At: at})
}

// resetPostures returns every fighter to neutral for a new round and forgets
// their step history.
func resetPostures(w *ecs.World) {
	ecs.ForEach(w, component.FighterComponent.Kind(), func(e ecs.Entity, f *component.Fighter) {
		f.ResetPosture()
		if hist, ok := ecs.Get(w, e, component.MoveHistoryComponent.Kind()); ok {
			hist.Clear()
		}
	})
}

// decide picks the winner on time: higher health wins, a tie is a draw.
func decide(w *ecs.World) component.Result {
	f1, ok1 := fighterOf(w, component.Participant1)
	f2, ok2 := fighterOf(w, component.Participant2)
	if !ok1 || !ok2 {
		return component.Result{Reason: component.ReasonDraw}
	}
	switch {
	case f1.Health > f2.Health:
		return component.Result{Winner: component.Participant1, Reason: component.ReasonDecision}
	case f2.Health > f1.Health:
		return component.Result{Winner: component.Participant2, Reason: component.ReasonDecision}
	}
	return component.Result{Reason: component.ReasonDraw}
}

func finishMatch(w *ecs.World, round *component.Round, result component.Result, at time.Duration) {
	if round.Over() {
		return
	}
	round.Phase = component.PhaseOver
	round.Result = result
	emit(w, component.MatchEvent{Type: component.EventMatchOver, Round: round.Current, Result: result, At: at})
}

func emit(w *ecs.World, evt component.MatchEvent) {
	w.Events().Push(ecs.Event{Type: MatchEventType, Data: evt})
}
