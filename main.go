package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/shooter/arena"
	"github.com/milk9111/shooter/prefabs"
)

func main() {
	arenaName := flag.String("arena", arena.DefaultArena, "arena prefab in prefabs/")
	parallel := flag.Bool("parallel", false, "tick enemies concurrently")
	watch := flag.Bool("watch", false, "retune actors when prefabs/ changes on disk")
	mute := flag.Bool("mute", false, "record sound cues instead of playing them")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w, h := ebiten.Monitor().Size()
	ebiten.SetWindowSize(w*2/3, h*2/3)
	ebiten.SetWindowTitle("shooter")

	opts := arena.Options{Parallel: *parallel}
	if !*mute {
		opts.Cues = speakerCues{}
	}

	var watcher *prefabs.Watcher
	if *watch {
		wt, err := prefabs.NewWatcher()
		if err != nil {
			log.Printf("watch disabled: %v", err)
		} else {
			watcher = wt
			defer watcher.Close()
		}
	}

	game, err := NewGame(*arenaName, opts, watcher)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetCursorShape(ebiten.CursorShapeCrosshair)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
