package config

import (
	"flag"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	require.NoError(t, err)
	assert.Equal(t, Config{PrefabDir: "prefabs", TickRate: 60}, cfg)
	assert.Equal(t, time.Second/60, cfg.Step())
}

func TestLoadEnvThenFlags(t *testing.T) {
	t.Setenv("BOXING_DEBUG", "true")
	t.Setenv("BOXING_TICK_RATE", "120")
	t.Setenv("BOXING_SCENARIO", "ko")

	cfg, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), []string{"-tps", "30", "-watch"})
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.WatchPrefabs)
	assert.Equal(t, 30, cfg.TickRate, "flags override the environment")
	assert.Equal(t, "ko", cfg.Scenario)
}

func TestLoadErrors(t *testing.T) {
	t.Run("bad_env", func(t *testing.T) {
		t.Setenv("BOXING_TICK_RATE", "fast")
		_, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), nil)
		require.Error(t, err)
		assert.True(t, strings.HasPrefix(err.Error(), "parse env:"), err.Error())
	})

	t.Run("non_positive_tick_rate", func(t *testing.T) {
		_, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), []string{"-tps", "0"})
		assert.Error(t, err)
	})

	t.Run("nil_flag_set", func(t *testing.T) {
		_, err := Load(nil, nil)
		assert.Error(t, err)
	})
}
