package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/sokoban/game"
	"github.com/plus3/sokoban/level"
	"github.com/plus3/sokoban/tty"
)

func main() {
	mapsPath := flag.String("maps", "", "Map document to load instead of the built-in maps.")
	startLevel := flag.Int("level", 1, "The level to start on.")
	moveDuration := flag.Duration("move", 150*time.Millisecond, "Animation time per move.")
	logPath := flag.String("log", "", "Write log output to this file instead of discarding it.")
	flag.Parse()

	store, err := loadMaps(*mapsPath)
	if err != nil {
		log.Fatalf("Failed to load maps: %v", err)
	}

	// the terminal is owned by the screen; log lines would corrupt it
	logger := log.New(io.Discard, "", 0)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log: %v", err)
		}
		defer f.Close()
		logger = log.New(f, "", log.LstdFlags)
	}

	cfg := game.DefaultConfig()
	cfg.StartLevel = *startLevel
	cfg.MoveDuration = *moveDuration
	cfg.Logger = logger

	g, err := game.New(store, cfg)
	if err != nil {
		log.Fatalf("Failed to start game: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to init screen: %v", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := tty.Run(ctx, screen, g, 16*time.Millisecond); err != nil {
		logger.Printf("sokoban: %v", err)
	}
}

func loadMaps(path string) (*level.Store, error) {
	if path == "" {
		return level.Default()
	}
	return level.LoadFile(path)
}
