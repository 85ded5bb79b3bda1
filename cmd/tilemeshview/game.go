package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/tilemesh"
	"github.com/milk9111/tilemesh/render"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	panSpeed = 6
)

type Game struct {
	mapPath string
	opts    tilemesh.Options

	compiled *tilemesh.CompiledMap
	renderer *render.Renderer
	watcher  *tilemesh.Watcher

	camX, camY float64
	zoom       float64
	debug      bool
}

func NewGame(mapPath string, opts tilemesh.Options) (*Game, error) {
	g := &Game{
		mapPath: mapPath,
		opts:    opts,
		zoom:    1,
		debug:   opts.Debug,
	}
	if err := g.load(); err != nil {
		return nil, err
	}

	watcher, err := tilemesh.NewWatcher(filepath.Dir(mapPath))
	if err != nil {
		return nil, err
	}
	g.watcher = watcher
	return g, nil
}

func (g *Game) load() error {
	compiled, err := tilemesh.CompileFile(g.mapPath, g.opts)
	if err != nil {
		return err
	}
	renderer, err := render.New(compiled, filepath.Dir(g.mapPath))
	if err != nil {
		return err
	}
	g.compiled = compiled
	g.renderer = renderer
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	select {
	case path, ok := <-g.watcher.Events:
		if ok {
			// Recompiling replaces the whole mesh and object set; a
			// failed reload keeps the last good map on screen.
			if err := g.load(); err != nil {
				log.Printf("reload %s: %v", path, err)
			}
		}
	case err, ok := <-g.watcher.Errors:
		if ok {
			log.Printf("watch: %v", err)
		}
	default:
	}

	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.camX -= panSpeed / g.zoom
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.camX += panSpeed / g.zoom
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.camY -= panSpeed / g.zoom
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.camY += panSpeed / g.zoom
	}
	if ebiten.IsKeyPressed(ebiten.KeyQ) && g.zoom > 0.25 {
		g.zoom /= 1.02
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) && g.zoom < 8 {
		g.zoom *= 1.02
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.debug = !g.debug
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.camX, g.camY, g.zoom)
	if err := g.renderer.DrawObjects(screen, g.camX, g.camY, g.zoom); err != nil {
		log.Printf("draw objects: %v", err)
	}
	if g.debug {
		g.renderer.DrawDebug(screen, g.camX, g.camY, g.zoom)
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.1f  chunks: %d  objects: %d  cam: (%.0f, %.0f) x%.2f",
		ebiten.ActualFPS(), len(g.compiled.Meshes), len(g.compiled.Objects), g.camX, g.camY, g.zoom))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
