package prefabs

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/boxing/ecs/component"
)

const (
	ActionsFile = "actions.yaml"
	MatchFile   = "match.yaml"
)

func LoadSpec[T any](dir, filename string) (T, error) {
	var zero T
	data, err := LoadFrom(dir, filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// ActionSpec is one row of actions.yaml.
type ActionSpec struct {
	Damage     int `yaml:"damage"`
	Cost       int `yaml:"stamina_cost"`
	DurationMs int `yaml:"duration_ms"`
}

// ActionsSpec is the decoded actions.yaml, keyed by action identifier.
type ActionsSpec struct {
	Actions map[string]ActionSpec `yaml:"actions"`
}

// Catalog validates the decoded file and builds the action table.
func (s ActionsSpec) Catalog() (*component.Catalog, error) {
	defs := make(map[component.Action]component.ActionDef, len(s.Actions))
	for name, a := range s.Actions {
		action, err := component.ParseAction(name)
		if err != nil {
			return nil, fmt.Errorf("prefabs: %s: %w", ActionsFile, err)
		}
		defs[action] = component.ActionDef{
			Damage:   a.Damage,
			Cost:     a.Cost,
			Duration: time.Duration(a.DurationMs) * time.Millisecond,
		}
	}
	cat, err := component.NewCatalog(defs)
	if err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", ActionsFile, err)
	}
	return cat, nil
}

// LoadCatalog reads actions.yaml from dir (or the embedded copy).
func LoadCatalog(dir string) (*component.Catalog, error) {
	spec, err := LoadSpec[ActionsSpec](dir, ActionsFile)
	if err != nil {
		return nil, err
	}
	return spec.Catalog()
}

// MatchSpec is the decoded match.yaml.
type MatchSpec struct {
	Rounds      int `yaml:"rounds"`
	RoundTimeMs int `yaml:"round_time_ms"`
	InterludeMs int `yaml:"interlude_ms"`
}

// Rules validates the decoded file. Zero fields keep their defaults.
func (s MatchSpec) Rules() (component.Rules, error) {
	r := component.DefaultRules()
	if s.Rounds < 0 || s.RoundTimeMs < 0 || s.InterludeMs < 0 {
		return r, fmt.Errorf("prefabs: %s: negative value in %+v", MatchFile, s)
	}
	if s.Rounds > 0 {
		r.Rounds = s.Rounds
	}
	if s.RoundTimeMs > 0 {
		r.RoundTime = time.Duration(s.RoundTimeMs) * time.Millisecond
	}
	if s.InterludeMs > 0 {
		r.Interlude = time.Duration(s.InterludeMs) * time.Millisecond
	}
	return r, nil
}

// LoadRules reads match.yaml from dir (or the embedded copy).
func LoadRules(dir string) (component.Rules, error) {
	spec, err := LoadSpec[MatchSpec](dir, MatchFile)
	if err != nil {
		return component.Rules{}, err
	}
	return spec.Rules()
}
