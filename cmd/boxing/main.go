package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/boxing/config"
	"github.com/milk9111/boxing/logging"
)

func main() {
	fs := flag.NewFlagSet("boxing", flag.ExitOnError)
	baseMonitor := fs.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	level := logging.Level(cfg.Debug)
	logger := logging.New(os.Stderr, level)

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("boxing")
	ebiten.SetTPS(cfg.TickRate)

	game, err := NewGame(cfg, logger, level)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
