package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Grid-Defense/internal/game"
	"github.com/Garsondee/Grid-Defense/internal/tui"
)

func main() {
	defs := flag.String("defs", "", "optional catalog JSON overrides")
	cols := flag.Int("cols", game.DefaultCols, "grid columns")
	rows := flag.Int("rows", game.DefaultRows, "grid rows")
	sound := flag.Bool("sound", false, "play audio cues")
	flag.Parse()

	opts := []game.Option{game.WithGridSize(*cols, *rows)}
	if *defs != "" {
		cat, err := game.LoadCatalog(*defs)
		if err != nil {
			log.Fatalf("load catalog: %v", err)
		}
		opts = append(opts, game.WithCatalog(cat))
	}
	core := game.New(opts...)

	var cues tui.CuePlayer
	if *sound {
		sm := tui.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			// Non-fatal, the game runs silent.
			log.Printf("audio initialization failed: %v", err)
		} else {
			defer sm.Cleanup()
			cues = sm
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	tui.New(screen, core, cues).Run()
}
