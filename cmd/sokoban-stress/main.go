package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/plus3/sokoban/game"
	"github.com/plus3/sokoban/level"
)

// intents are drawn uniformly; resets are rarer so that levels can be solved
// by chance on small maps.
var intents = []game.Intent{
	game.IntentNorth, game.IntentSouth, game.IntentEast, game.IntentWest,
	game.IntentNorth, game.IntentSouth, game.IntentEast, game.IntentWest,
	game.IntentReset,
}

type counter struct {
	game.NopObserver
	levels int
}

func (c *counter) LevelChanged(int, string) { c.levels++ }

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the soak run should last.")
	mapsPath := flag.String("maps", "", "Map document to load instead of the built-in maps.")
	startLevel := flag.Int("level", 1, "The level to start on.")
	moveDuration := flag.Duration("move", 0, "Animation time per move.")
	tickDelta := flag.Duration("dt", time.Second/60, "Simulated time per tick.")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed for the intent stream.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	store, err := loadMaps(*mapsPath)
	if err != nil {
		log.Fatalf("Failed to load maps: %v", err)
	}

	observer := &counter{}
	cfg := game.DefaultConfig()
	cfg.StartLevel = *startLevel
	cfg.MoveDuration = *moveDuration
	cfg.Observer = observer
	cfg.Logger = log.New(os.Stderr, "", log.LstdFlags)

	g, err := game.New(store, cfg)
	if err != nil {
		log.Fatalf("Failed to start game: %v", err)
	}

	rng := rand.New(rand.NewSource(*seed))
	report := &Report{
		Duration:       *duration,
		Seed:           *seed,
		Maps:           store.Len(),
		TickDelta:      *tickDelta,
		MoveDuration:   *moveDuration,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Soaking %d maps for %s (seed %d)...\n", store.Len(), *duration, *seed)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	dt := tickDelta.Seconds()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			intent := intents[rng.Intn(len(intents))]
			g.Submit(intent)
			if intent == game.IntentReset {
				report.Resets++
			}

			tickStart := time.Now()
			g.Tick(dt)
			report.TickTime.Record(time.Since(tickStart))
			report.TotalTicks++
		}
	}

	sess := g.Session()
	report.TotalTime = time.Since(startTime)
	report.Solved = sess.Solved
	report.LevelChanges = observer.levels
	report.FinalLevel = sess.Level
	report.TickTime.Finalize()
	report.Systems = g.Stats().Systems
	report.Storage = g.Storage().CollectStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Soak run finished.")

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

func loadMaps(path string) (*level.Store, error) {
	if path == "" {
		return level.Default()
	}
	return level.LoadFile(path)
}
