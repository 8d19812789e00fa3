// Package scenario compiles tengo scripts into timed input sequences and
// replays them against a match.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/boxing/ecs/component"
	"github.com/milk9111/boxing/match"
	"github.com/milk9111/boxing/prefabs"
)

// DefaultStep is one frame at 60 ticks per second.
const DefaultStep = time.Second / 60

var ErrBadStep = errors.New("scenario: step must be positive")

// Scenario is a compiled input script.
type Scenario struct {
	Name     string
	Events   []component.InputEvent
	Duration time.Duration
}

// Load compiles the named script from dir, falling back to the embedded copy.
func Load(dir, name string) (*Scenario, error) {
	src, err := prefabs.LoadScript(dir, name)
	if err != nil {
		return nil, fmt.Errorf("scenario: load %s: %w", name, err)
	}
	return Compile(name, src)
}

// Compile runs src once and collects the key events it schedules. Scripts
// call press(p, key, at_ms), release(p, key, at_ms) and tap(p, key, at_ms,
// hold_ms), and may set duration_ms to bound the replay.
func Compile(name string, src []byte) (*Scenario, error) {
	sc := &Scenario{Name: name}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	funcs := map[string]tengo.CallableFunc{
		"press": func(args ...tengo.Object) (tengo.Object, error) {
			evt, err := eventArgs("press", args, component.EdgeDown)
			if err != nil {
				return nil, err
			}
			sc.Events = append(sc.Events, evt)
			return tengo.UndefinedValue, nil
		},
		"release": func(args ...tengo.Object) (tengo.Object, error) {
			evt, err := eventArgs("release", args, component.EdgeUp)
			if err != nil {
				return nil, err
			}
			sc.Events = append(sc.Events, evt)
			return tengo.UndefinedValue, nil
		},
		"tap": func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 4 {
				return nil, tengo.ErrWrongNumArguments
			}
			down, err := eventArgs("tap", args[:3], component.EdgeDown)
			if err != nil {
				return nil, err
			}
			hold, err := argMillis("tap", "hold_ms", args[3])
			if err != nil {
				return nil, err
			}
			up := down
			up.Edge = component.EdgeUp
			up.At = down.At + hold
			sc.Events = append(sc.Events, down, up)
			return tengo.UndefinedValue, nil
		},
	}
	for fn, call := range funcs {
		if err := script.Add(fn, &tengo.UserFunction{Name: fn, Value: call}); err != nil {
			return nil, fmt.Errorf("scenario: %s: %w", name, err)
		}
	}

	compiled, err := script.Run()
	if err != nil {
		return nil, fmt.Errorf("scenario: %s: %w", name, err)
	}

	if compiled.IsDefined("duration_ms") {
		ms := compiled.Get("duration_ms").Int64()
		if ms < 0 {
			return nil, fmt.Errorf("scenario: %s: negative duration_ms %d", name, ms)
		}
		sc.Duration = time.Duration(ms) * time.Millisecond
	}

	sort.SliceStable(sc.Events, func(i, j int) bool { return sc.Events[i].At < sc.Events[j].At })
	if sc.Duration == 0 && len(sc.Events) > 0 {
		sc.Duration = sc.Events[len(sc.Events)-1].At + time.Second
	}
	return sc, nil
}

func eventArgs(fn string, args []tengo.Object, edge component.Edge) (component.InputEvent, error) {
	if len(args) != 3 {
		return component.InputEvent{}, tengo.ErrWrongNumArguments
	}
	p, err := component.ParseParticipant(objectAsString(args[0]))
	if err != nil {
		return component.InputEvent{}, fmt.Errorf("%s: %w", fn, err)
	}
	k, err := component.ParseKey(objectAsString(args[1]))
	if err != nil {
		return component.InputEvent{}, fmt.Errorf("%s: %w", fn, err)
	}
	at, err := argMillis(fn, "at_ms", args[2])
	if err != nil {
		return component.InputEvent{}, err
	}
	return component.InputEvent{Participant: p, Key: k, Edge: edge, At: at}, nil
}

func argMillis(fn, name string, obj tengo.Object) (time.Duration, error) {
	ms, ok := tengo.ToInt64(obj)
	if !ok {
		return 0, tengo.ErrInvalidArgumentType{Name: name, Expected: "int", Found: obj.TypeName()}
	}
	if ms < 0 {
		return 0, fmt.Errorf("%s: negative %s %d", fn, name, ms)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return fmt.Sprint(v.Value)
	default:
		return strings.Trim(v.String(), "\"")
	}
}

// Run replays s against m in fixed steps until the scenario duration elapses,
// the match ends, or ctx is cancelled. Each event is queued in the tick that
// covers its timestamp.
func Run(ctx context.Context, m *match.Match, s *Scenario, step time.Duration) error {
	if step <= 0 {
		return ErrBadStep
	}
	next := 0
	for m.Now() < s.Duration && !m.Over() {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := m.Now() + step
		for next < len(s.Events) && s.Events[next].At <= end {
			m.HandleInput(s.Events[next])
			next++
		}
		if err := m.Tick(step); err != nil {
			return err
		}
	}
	return nil
}
