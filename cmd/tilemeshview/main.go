package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/tilemesh"
)

func main() {
	mapPath := flag.String("map", "", "path to a .tmx map file")
	centered := flag.Bool("centered", false, "center the map on the origin")
	debug := flag.Bool("debug", false, "stroke shape objects")
	chunkSize := flag.Int("chunk", 0, "tiles per chunk edge (0 = default)")
	flag.Parse()

	if *mapPath == "" {
		log.Fatal("tilemeshview: -map is required")
	}

	opts := tilemesh.DefaultOptions()
	opts.Centered = *centered
	opts.Debug = *debug
	if *chunkSize > 0 {
		opts.ChunkSize = *chunkSize
	}
	opts.Hooks.MapReady = func(e tilemesh.MapReady) {
		log.Printf("map ready: %s", e.Source)
	}

	game, err := NewGame(*mapPath, opts)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("tilemeshview - " + filepath.Base(*mapPath))

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
