package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/patrol/common"
	"github.com/milk9111/patrol/config"
	"github.com/milk9111/patrol/logging"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	debug := flag.Bool("debug", cfg.Debug, "enable debug mode")
	baseMonitor := flag.Bool("m", cfg.BaseMonitor, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", cfg.Level, "level name in levels/ (basename, .json optional)")
	watch := flag.Bool("watch", cfg.WatchPrefabs, "hot reload prefabs and hazard scripts from ./prefabs")
	flag.Parse()

	cfg.Debug = *debug
	cfg.BaseMonitor = *baseMonitor
	cfg.Level = *levelName
	cfg.WatchPrefabs = *watch

	logger, err := logging.New(cfg.LogLevel, cfg.Debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if cfg.BaseMonitor {
		if monitors := ebiten.AppendMonitors(nil); len(monitors) > 0 {
			ebiten.SetMonitor(monitors[0])
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("patrol")

	game, err := NewGame(cfg)
	if err != nil {
		logger.Fatal("start game", zap.Error(err))
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("game stopped", zap.Error(err))
	}
}
