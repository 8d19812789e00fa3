package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"

	"github.com/milk9111/boxing/config"
	"github.com/milk9111/boxing/ecs/component"
	"github.com/milk9111/boxing/logging"
	"github.com/milk9111/boxing/match"
	"github.com/milk9111/boxing/prefabs"
)

const (
	screenWidth  = 960
	screenHeight = 540
)

type Game struct {
	cfg    config.Config
	logger *slog.Logger
	level  *slog.LevelVar

	catalog *component.Catalog
	rules   component.Rules
	match   *match.Match

	watcher   *prefabs.Watcher
	hud       *hud
	menu      *menuUI
	paused    bool
	clipboard bool
	quit      bool
}

func NewGame(cfg config.Config, logger *slog.Logger, level *slog.LevelVar) (*Game, error) {
	catalog, err := prefabs.LoadCatalog(cfg.PrefabDir)
	if err != nil {
		return nil, err
	}
	rules, err := prefabs.LoadRules(cfg.PrefabDir)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:     cfg,
		logger:  logger,
		level:   level,
		catalog: catalog,
		rules:   rules,
		hud:     newHUD(),
	}
	g.menu = NewMenuUI(g)

	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable", "err", err)
	} else {
		g.clipboard = true
	}

	if cfg.WatchPrefabs {
		w, err := prefabs.NewWatcher(cfg.PrefabDir)
		if err != nil {
			logger.Warn("prefab watch disabled", "dir", cfg.PrefabDir, "err", err)
		} else {
			g.watcher = w
		}
	}

	if err := g.rematch(); err != nil {
		g.Close()
		return nil, err
	}
	return g, nil
}

func (g *Game) rematch() error {
	if g.match != nil {
		if err := g.match.Rematch(g.catalog, g.rules); err != nil {
			return err
		}
		g.paused = false
		g.hud.reset()
		return nil
	}

	m, err := match.New(match.Options{Catalog: g.catalog, Rules: g.rules, Logger: g.logger})
	if err != nil {
		return err
	}
	m.OnDamage(g.hud.onDamage)
	m.OnMatchEvent(func(evt component.MatchEvent) {
		g.logger.Info("match event", "type", evt.Type, "round", evt.Round, "winner", evt.Result.Winner, "reason", evt.Result.Reason)
	})
	g.match = m
	g.paused = false
	g.hud.reset()
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.drainPrefabChanges()

	if ctrlShift() && inpututil.IsKeyJustPressed(ebiten.KeyT) {
		debug := logging.Toggle(g.level)
		g.logger.Info("debug logging", "enabled", debug)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.copyTrace()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && !g.match.Over() {
		g.paused = !g.paused
	}

	now := g.match.Now()
	events := pollBindings(defaultBindings)
	if g.paused || g.match.Over() {
		// releases still reach the match so no key stays held after resume
		for _, evt := range events {
			if evt.Edge == component.EdgeUp {
				evt.At = now
				g.match.HandleInput(evt)
			}
		}
		g.menu.Update(g)
		return nil
	}

	for _, evt := range events {
		evt.At = now
		g.match.HandleInput(evt)
	}
	return g.match.Tick(g.cfg.Step())
}

func (g *Game) drainPrefabChanges() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(change)
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.logger.Warn("prefab watch", "err", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(change prefabs.Change) {
	switch change.Kind {
	case prefabs.ChangeActions:
		cat, err := prefabs.LoadCatalog(g.cfg.PrefabDir)
		if err != nil {
			g.logger.Error("reload actions", "path", change.Path, "err", err)
			return
		}
		g.catalog = cat
		g.match.SetCatalog(cat)
	case prefabs.ChangeRules:
		rules, err := prefabs.LoadRules(g.cfg.PrefabDir)
		if err != nil {
			g.logger.Error("reload rules", "path", change.Path, "err", err)
			return
		}
		g.rules = rules
		g.logger.Info("rules reloaded; applied on rematch", "path", change.Path)
	}
}

func (g *Game) copyTrace() {
	if !g.clipboard {
		return
	}
	var b strings.Builder
	for _, e := range g.match.Trace() {
		fmt.Fprintf(&b, "%8s %s %s %s\n", e.At, e.Participant, e.Kind, e.Detail)
	}
	clipboard.Write(clipboard.FmtText, []byte(b.String()))
	g.logger.Info("trace copied", "entries", len(g.match.Trace()))
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.hud.Draw(screen, g.match)
	if g.paused || g.match.Over() {
		g.menu.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
