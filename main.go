package main

import (
	"flag"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/hungrypig/prefabs"
)

func main() {
	configPath := flag.String("config", "", "tuning yaml to use instead of prefabs/tuning.yaml")
	seed := flag.Uint64("seed", 0, "level seed (0 picks one from the clock)")
	debug := flag.Bool("debug", false, "enable debug logging, overlay and prefab hot reload")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	log.SetDefault(log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "hungrypig",
	}))
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	tuning, err := prefabs.LoadTuning(*configPath)
	if err != nil {
		log.Fatal("load tuning", "path", *configPath, "err", err)
	}

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(tuning.World.ViewWidth), int(tuning.World.ViewHeight))
	ebiten.SetWindowTitle("hungry pig")

	game, err := NewGame(tuning, *seed, *configPath, *debug)
	if err != nil {
		log.Fatal("start game", "err", err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Fatal("run game", "err", err)
	}
}
