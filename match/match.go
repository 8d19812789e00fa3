// Package match wires the fighters, round clock and combat systems into a
// single two-player bout driven by an external clock.
package match

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/milk9111/boxing/ecs"
	"github.com/milk9111/boxing/ecs/component"
	"github.com/milk9111/boxing/ecs/system"
	"github.com/milk9111/boxing/logging"
)

var ErrNegativeDelta = errors.New("match: negative tick delta")

// Options configure a new match. Zero values select the defaults.
type Options struct {
	Catalog *component.Catalog
	Rules   component.Rules
	Logger  *slog.Logger
}

// Match is one bout between Participant1 and Participant2. It is not safe
// for concurrent use; the host drives it from a single goroutine.
type Match struct {
	ID uuid.UUID

	world     *ecs.World
	scheduler *ecs.Scheduler
	base      *slog.Logger
	logger    *slog.Logger

	players [3]ecs.Entity
	state   ecs.Entity
}

func New(opts Options) (*Match, error) {
	m := &Match{
		world: ecs.NewWorld(),
		base:  logging.OrDiscard(opts.Logger),
	}
	if err := m.spawn(opts.Catalog, opts.Rules, component.CombatEmitter{}); err != nil {
		return nil, err
	}
	return m, nil
}

// Rematch replaces the bout with a fresh one under a new ID, using catalog
// and rules. Registered handlers are kept. On a rules error the current bout
// is left untouched.
func (m *Match) Rematch(catalog *component.Catalog, rules component.Rules) error {
	if m == nil {
		return fmt.Errorf("match: nil match")
	}
	if _, err := validRules(rules); err != nil {
		return err
	}

	var handlers component.CombatEmitter
	if e, ok := m.emitter(); ok {
		handlers = *e
	}
	for _, e := range [...]ecs.Entity{m.players[component.Participant1], m.players[component.Participant2], m.state} {
		m.world.DestroyEntity(e)
	}
	m.world.Events().Drain()

	prev := m.ID
	if err := m.spawn(catalog, rules, handlers); err != nil {
		return err
	}
	m.logger.Info("rematch", "previous", prev.String())
	return nil
}

func validRules(rules component.Rules) (component.Rules, error) {
	if rules == (component.Rules{}) {
		rules = component.DefaultRules()
	}
	if rules.Rounds < 0 || rules.RoundTime <= 0 || rules.Interlude < 0 {
		return rules, fmt.Errorf("match: invalid rules %+v", rules)
	}
	return rules, nil
}

// spawn creates the fighters and round state of a new bout and the systems
// that drive it.
func (m *Match) spawn(catalog *component.Catalog, rules component.Rules, handlers component.CombatEmitter) error {
	rules, err := validRules(rules)
	if err != nil {
		return err
	}

	m.ID = uuid.New()
	m.logger = m.base.With("match", m.ID.String())

	for _, p := range [...]component.Participant{component.Participant1, component.Participant2} {
		e := m.world.CreateEntity()
		if err := addAll(
			func() error { return ecs.Add(m.world, e, component.PlayerComponent.Kind(), &component.Player{ID: p}) },
			func() error {
				return ecs.Add(m.world, e, component.FighterComponent.Kind(), component.NewFighter(catalog))
			},
			func() error { return ecs.Add(m.world, e, component.KeyStateComponent.Kind(), &component.KeyState{}) },
			func() error {
				return ecs.Add(m.world, e, component.MoveHistoryComponent.Kind(), &component.MoveHistory{})
			},
		); err != nil {
			return fmt.Errorf("match: spawn %s: %w", p, err)
		}
		m.players[p] = e
	}

	m.state = m.world.CreateEntity()
	if err := addAll(
		func() error { return ecs.Add(m.world, m.state, component.ClockComponent.Kind(), &component.Clock{}) },
		func() error { return ecs.Add(m.world, m.state, component.RoundComponent.Kind(), component.NewRound(rules)) },
		func() error {
			return ecs.Add(m.world, m.state, component.InputQueueComponent.Kind(), &component.InputQueue{})
		},
		func() error { return ecs.Add(m.world, m.state, component.TraceComponent.Kind(), &component.Trace{}) },
		func() error {
			return ecs.Add(m.world, m.state, component.CombatEmitterComponent.Kind(), &handlers)
		},
	); err != nil {
		return fmt.Errorf("match: state: %w", err)
	}

	m.scheduler = ecs.NewScheduler(
		system.NewInputSystem(m.logger),
		system.NewFighterTimerSystem(),
		system.NewCombatSystem(m.logger),
		system.NewRoundSystem(m.logger),
		system.NewEventDispatchSystem(m.logger),
	)

	m.logger.Info("match created", "rounds", rules.Rounds, "round_time", rules.RoundTime, "interlude", rules.Interlude)
	return nil
}

func addAll(adds ...func() error) error {
	for _, add := range adds {
		if err := add(); err != nil {
			return err
		}
	}
	return nil
}

// HandleInput queues a key event. It is applied, in timestamp order, at the
// start of the first Tick whose clock has reached evt.At. Events for unknown
// participants, keys or edges are dropped.
func (m *Match) HandleInput(evt component.InputEvent) {
	if m == nil || !evt.Participant.Valid() || !evt.Key.Valid() || !evt.Edge.Valid() {
		return
	}
	q, ok := ecs.Get(m.world, m.state, component.InputQueueComponent.Kind())
	if !ok {
		return
	}
	q.Events = append(q.Events, evt)
}

// Press is shorthand for a key-down event at the current match time.
func (m *Match) Press(p component.Participant, k component.Key) {
	m.HandleInput(component.InputEvent{Participant: p, Key: k, Edge: component.EdgeDown, At: m.Now()})
}

// Release is shorthand for a key-up event at the current match time.
func (m *Match) Release(p component.Participant, k component.Key) {
	m.HandleInput(component.InputEvent{Participant: p, Key: k, Edge: component.EdgeUp, At: m.Now()})
}

// Tick advances the match clock by delta and runs one frame: input, fighter
// timers, hit registration, the round clock, then event delivery to the
// OnDamage and OnMatchEvent handlers. Ticking a finished match does nothing.
func (m *Match) Tick(delta time.Duration) error {
	if delta < 0 {
		return ErrNegativeDelta
	}
	if m.Over() {
		return nil
	}
	c, ok := ecs.Get(m.world, m.state, component.ClockComponent.Kind())
	if !ok {
		return fmt.Errorf("match: clock missing")
	}
	c.Now += delta
	c.Delta = delta
	m.scheduler.Update(m.world)
	return nil
}

// Now is the elapsed match time.
func (m *Match) Now() time.Duration {
	if m == nil {
		return 0
	}
	c, ok := ecs.Get(m.world, m.state, component.ClockComponent.Kind())
	if !ok {
		return 0
	}
	return c.Now
}

func (m *Match) fighter(p component.Participant) (*component.Fighter, bool) {
	if m == nil || !p.Valid() {
		return nil, false
	}
	return ecs.Get(m.world, m.players[p], component.FighterComponent.Kind())
}

// Snapshot returns the read-only state of participant p.
func (m *Match) Snapshot(p component.Participant) (component.Snapshot, bool) {
	f, ok := m.fighter(p)
	if !ok {
		return component.Snapshot{}, false
	}
	return f.Snapshot(), true
}

// Snapshots returns both participants' state, Participant1 first.
func (m *Match) Snapshots() [2]component.Snapshot {
	s1, _ := m.Snapshot(component.Participant1)
	s2, _ := m.Snapshot(component.Participant2)
	return [2]component.Snapshot{s1, s2}
}

// Round returns a copy of the round clock.
func (m *Match) Round() component.Round {
	if m == nil {
		return component.Round{}
	}
	r, ok := ecs.Get(m.world, m.state, component.RoundComponent.Kind())
	if !ok {
		return component.Round{}
	}
	return *r
}

func (m *Match) Over() bool {
	r := m.Round()
	return r.Over()
}

// Result reports the outcome once the match is over.
func (m *Match) Result() (component.Result, bool) {
	r := m.Round()
	if !r.Over() {
		return component.Result{}, false
	}
	return r.Result, true
}

// Trace returns the most recent resolver decisions, oldest first.
func (m *Match) Trace() []component.TraceEntry {
	if m == nil {
		return nil
	}
	t, ok := ecs.Get(m.world, m.state, component.TraceComponent.Kind())
	if !ok {
		return nil
	}
	return t.Entries()
}

// OnDamage registers h for every resolved attack.
func (m *Match) OnDamage(h component.DamageHandler) {
	if e, ok := m.emitter(); ok && h != nil {
		e.DamageHandlers = append(e.DamageHandlers, h)
	}
}

// OnMatchEvent registers h for round and match transitions.
func (m *Match) OnMatchEvent(h component.MatchEventHandler) {
	if e, ok := m.emitter(); ok && h != nil {
		e.MatchHandlers = append(e.MatchHandlers, h)
	}
}

func (m *Match) emitter() (*component.CombatEmitter, bool) {
	if m == nil {
		return nil, false
	}
	return ecs.Get(m.world, m.state, component.CombatEmitterComponent.Kind())
}

// SetCatalog swaps the action table of both fighters. Running posture timers
// are not shortened or extended.
func (m *Match) SetCatalog(c *component.Catalog) {
	for _, p := range [...]component.Participant{component.Participant1, component.Participant2} {
		if f, ok := m.fighter(p); ok {
			f.SetCatalog(c)
		}
	}
	m.logger.Info("action catalog replaced")
}
