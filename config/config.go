// Package config loads runtime settings from the environment, then lets
// command-line flags override them.
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is shared by the interactive host and the headless replay tool.
type Config struct {
	Debug        bool   `env:"BOXING_DEBUG"`
	PrefabDir    string `env:"BOXING_PREFAB_DIR" envDefault:"prefabs"`
	WatchPrefabs bool   `env:"BOXING_WATCH"`
	TickRate     int    `env:"BOXING_TICK_RATE" envDefault:"60"`
	Scenario     string `env:"BOXING_SCENARIO"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the environment and then parses args with fs. Flags are
// registered on fs with the environment values as their defaults.
func Load(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if fs == nil {
		return Config{}, errors.New("config: flag set is required")
	}

	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging")
	fs.StringVar(&cfg.PrefabDir, "prefabs", cfg.PrefabDir, "prefab directory checked before the embedded copy")
	fs.BoolVar(&cfg.WatchPrefabs, "watch", cfg.WatchPrefabs, "reload prefabs when they change on disk")
	fs.IntVar(&cfg.TickRate, "tps", cfg.TickRate, "simulation ticks per second")
	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "scenario script name")

	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("config: tick rate must be positive, got %d", c.TickRate)
	}
	return nil
}

// Step is the fixed simulation step for TickRate.
func (c Config) Step() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}
