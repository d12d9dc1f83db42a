package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/sokoban/ecs/debugui"
	debugui_ebiten "github.com/plus3/sokoban/ecs/debugui/ebiten"
	"github.com/plus3/sokoban/game"
	"github.com/plus3/sokoban/level"
)

const (
	ScreenWidth  = 960
	ScreenHeight = 720
)

func main() {
	mapsPath := flag.String("maps", "", "Map document to load instead of the built-in maps.")
	startLevel := flag.Int("level", 1, "The level to start on.")
	moveDuration := flag.Duration("move", 150*time.Millisecond, "Animation time per move.")
	debug := flag.Bool("debug", false, "Show the ImGui debug panels.")
	flag.Parse()

	store, err := loadMaps(*mapsPath)
	if err != nil {
		log.Fatalf("Failed to load maps: %v", err)
	}

	// the imgui context must exist before any panel renders
	var backend *debugui_ebiten.ImguiBackend
	if *debug {
		b := debugui_ebiten.NewImguiBackend("Sokoban", ScreenWidth, ScreenHeight)
		backend = &b
	} else {
		ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
		ebiten.SetWindowTitle("Sokoban")
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	visuals := newVisuals()
	cfg := game.DefaultConfig()
	cfg.StartLevel = *startLevel
	cfg.MoveDuration = *moveDuration
	cfg.Observer = visuals
	if *debug {
		cfg.Components = debugui.RegisterComponents
	}

	g, err := game.New(store, cfg)
	if err != nil {
		log.Fatalf("Failed to start game: %v", err)
	}

	app := &App{game: g, visuals: visuals}
	if backend != nil {
		app.overlay = newOverlay(g, *backend)
	}

	if err := ebiten.RunGame(app); err != nil {
		log.Fatalf("Game exited: %v", err)
	}
}

func loadMaps(path string) (*level.Store, error) {
	if path == "" {
		return level.Default()
	}
	return level.LoadFile(path)
}
