// Command replay runs a scenario script against a headless match and prints
// the resulting hits and outcome.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/milk9111/boxing/config"
	"github.com/milk9111/boxing/ecs/component"
	"github.com/milk9111/boxing/logging"
	"github.com/milk9111/boxing/match"
	"github.com/milk9111/boxing/prefabs"
	"github.com/milk9111/boxing/scenario"
)

func main() {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	list := fs.Bool("list", false, "list embedded scenarios and exit")
	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if *list {
		for _, name := range prefabs.ScriptNames() {
			fmt.Println(name)
		}
		return
	}
	if cfg.Scenario == "" {
		log.Fatal("replay: -scenario is required")
	}

	logger := logging.New(os.Stderr, logging.Level(cfg.Debug))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdout); err != nil {
		log.Fatal(err)
	}
	if !cfg.WatchPrefabs {
		return
	}

	w, err := prefabs.NewWatcher(cfg.PrefabDir, filepath.Join(cfg.PrefabDir, "scripts"))
	if err != nil {
		log.Fatal(err)
	}
	defer w.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-w.Changes:
			if !ok {
				return
			}
			logger.Info("prefab changed, replaying", "path", change.Path)
			if err := run(ctx, cfg, logger, os.Stdout); err != nil {
				logger.Error("replay", "err", err)
			}
		case err, ok := <-w.Errors:
			if ok {
				logger.Warn("prefab watch", "err", err)
			}
		}
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger, out io.Writer) error {
	catalog, err := prefabs.LoadCatalog(cfg.PrefabDir)
	if err != nil {
		return err
	}
	rules, err := prefabs.LoadRules(cfg.PrefabDir)
	if err != nil {
		return err
	}
	sc, err := scenario.Load(cfg.PrefabDir, cfg.Scenario)
	if err != nil {
		return err
	}

	m, err := match.New(match.Options{Catalog: catalog, Rules: rules, Logger: logger})
	if err != nil {
		return err
	}
	m.OnDamage(func(evt component.DamageEvent) {
		fmt.Fprintf(out, "%8s %s -> %s %s %s %d\n", evt.At, evt.Attacker, evt.Defender, evt.Action, evt.HitType, evt.Damage)
	})
	m.OnMatchEvent(func(evt component.MatchEvent) {
		fmt.Fprintf(out, "%8s %s round=%d\n", evt.At, evt.Type, evt.Round)
	})

	if err := scenario.Run(ctx, m, sc, cfg.Step()); err != nil {
		return err
	}

	for i, s := range m.Snapshots() {
		fmt.Fprintf(out, "player%d health=%d resource=%d posture=%s\n", i+1, s.Health, s.Resource, s.Posture)
	}
	if res, ok := m.Result(); ok {
		fmt.Fprintf(out, "result: %s winner=%s\n", res.Reason, res.Winner)
	} else {
		fmt.Fprintf(out, "result: in progress at %s (round %d)\n", m.Now(), m.Round().Current)
	}
	return nil
}
