package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Grid-Defense/internal/game"
	"github.com/Garsondee/Grid-Defense/internal/view"
)

func main() {
	defs := flag.String("defs", "", "optional catalog JSON overrides")
	cols := flag.Int("cols", game.DefaultCols, "grid columns")
	rows := flag.Int("rows", game.DefaultRows, "grid rows")
	verbose := flag.Bool("verbose", false, "record per-spawn and per-target log entries")
	flag.Parse()

	opts := []game.Option{game.WithGridSize(*cols, *rows), game.WithVerboseLog(*verbose)}
	if *defs != "" {
		cat, err := game.LoadCatalog(*defs)
		if err != nil {
			log.Fatalf("load catalog: %v", err)
		}
		opts = append(opts, game.WithCatalog(cat))
	}

	v := view.New(game.New(opts...))
	w, h := v.Size()
	ebiten.SetWindowTitle("Grid Defense")
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
