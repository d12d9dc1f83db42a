// Package game is the box-pushing puzzle engine: it populates a level's
// entities, resolves moves, animates them, detects cleared levels and moves
// through the level list. All state changes happen inside Tick.
package game

import (
	"context"
	"errors"
	"iter"
	"log"
	"slices"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/sokoban/ecs"
	"github.com/plus3/sokoban/geom"
	"github.com/plus3/sokoban/level"
)

// Config controls a Game. Start from DefaultConfig.
type Config struct {
	// StartLevel is the 1-based level loaded first. It wraps like any index.
	StartLevel int
	// MoveDuration is how long one step animates. Zero commits on the tick
	// after the input.
	MoveDuration time.Duration
	Observer     Observer
	Logger       *log.Logger
	// Components registers extra component types, such as debug overlay
	// items, with the game's storage.
	Components func(*ecs.ComponentRegistry)
}

func DefaultConfig() Config {
	return Config{
		StartLevel:   1,
		MoveDuration: 150 * time.Millisecond,
		Observer:     NopObserver{},
		Logger:       log.Default(),
	}
}

// Game owns one puzzle session and the ECS world it lives in.
type Game struct {
	store     *level.Store
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	registry  *Registry
	session   *ecs.Singleton[Session]
	inbox     *inbox
	move      *MoveSystem
	duration  float64

	entities *ecs.View[struct {
		ecs.EntityId
		*Kind
		*geom.Cell
		*Transform
	}]
}

// New loads cfg.StartLevel from the store and returns a game ready to tick.
func New(store *level.Store, cfg Config) (*Game, error) {
	if store.Len() == 0 {
		return nil, level.ErrNoMaps
	}
	if cfg.MoveDuration < 0 {
		return nil, errors.New("game: negative move duration")
	}
	if cfg.Observer == nil {
		cfg.Observer = NopObserver{}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	if cfg.Components != nil {
		cfg.Components(registry)
	}
	storage := ecs.NewStorage(registry)

	g := &Game{
		store:    store,
		storage:  storage,
		registry: NewRegistry(storage, cfg.Observer),
		session:  ecs.NewSingleton[Session](storage),
		inbox:    &inbox{},
		duration: cfg.MoveDuration.Seconds(),
		entities: ecs.NewView[struct {
			ecs.EntityId
			*Kind
			*geom.Cell
			*Transform
		}](storage),
	}
	ecs.NewSingleton[PendingIntent](storage)

	levels := &levels{
		store:    store,
		registry: g.registry,
		observer: cfg.Observer,
		logger:   cfg.Logger,
	}
	if err := levels.load(g.session.Get(), cfg.StartLevel, true); err != nil {
		return nil, err
	}

	g.move = &MoveSystem{}
	g.scheduler = ecs.NewScheduler(storage)
	g.scheduler.Register(&IntentSystem{inbox: g.inbox})
	g.scheduler.Register(&LevelSystem{levels: levels})
	g.scheduler.Register(g.move)
	g.scheduler.Register(&AnimationSystem{
		duration: g.duration,
		logger:   cfg.Logger,
	})

	return g, nil
}

// Submit records an intent for the next tick. It is safe to call from any
// goroutine. Directions submitted while a move animates are dropped on the
// next tick.
func (g *Game) Submit(i Intent) {
	g.inbox.put(i)
}

// Tick advances the game by dt seconds.
func (g *Game) Tick(dt float64) {
	g.scheduler.Once(dt)
}

// Run ticks every interval until ctx is done.
func (g *Game) Run(ctx context.Context, interval time.Duration) {
	g.scheduler.Run(ctx, interval)
}

// Register adds a system that runs after the engine's own systems each tick,
// e.g. a renderer.
func (g *Game) Register(system ecs.System) {
	g.scheduler.Register(system)
}

// Session returns a copy of the live session.
func (g *Game) Session() Session {
	return *g.session.Get()
}

func (g *Game) State() State {
	return g.session.Get().State
}

// Level returns the active 1-based level number.
func (g *Game) Level() int {
	return g.session.Get().Level
}

// Map returns the active map.
func (g *Game) Map() level.Map {
	return g.session.Get().Map
}

// Progress returns the active move's linear progress, or 0 when idle.
func (g *Game) Progress() float64 {
	sess := g.session.Get()
	if sess.Anim == nil {
		return 0
	}
	return sess.Anim.Progress(g.duration)
}

// PlayerCell returns the player's committed cell.
func (g *Game) PlayerCell() geom.Cell {
	info, _ := g.Player()
	return info.Cell
}

// Player describes the player entity.
func (g *Game) Player() (EntityInfo, bool) {
	return g.registry.InfoRef(g.session.Get().Entities.Player)
}

// BoxCells returns the committed box cells in map order.
func (g *Game) BoxCells() []geom.Cell {
	boxes := g.session.Get().Entities.Boxes
	cells := make([]geom.Cell, 0, len(boxes))
	for _, id := range boxes {
		if info, ok := g.registry.Info(id); ok {
			cells = append(cells, info.Cell)
		}
	}
	return cells
}

// ResolveMove runs the move query against the live level. It never changes
// any state.
func (g *Game) ResolveMove(d geom.Direction) Outcome {
	g.move.refresh()
	return ResolveMove(g.move.board(), d)
}

// CountBoxesOnTarget recomputes how many targets have a box on them.
func (g *Game) CountBoxesOnTarget() int {
	sess := g.session.Get()

	targets := make([]mgl64.Vec3, 0, len(sess.Entities.Targets))
	for _, id := range sess.Entities.Targets {
		if t := ecs.ReadComponent[Transform](g.storage, id); t != nil {
			targets = append(targets, t.Position)
		}
	}
	boxes := make([]geom.AABB, 0, len(sess.Entities.Boxes))
	for _, id := range sess.Entities.Boxes {
		if b := ecs.ReadComponent[Bounds](g.storage, id); b != nil {
			boxes = append(boxes, b.AABB)
		}
	}
	return CountBoxesOnTarget(targets, boxes)
}

// Entities yields every live entity of the level, ordered by kind so that
// ground markers come before solids.
func (g *Game) Entities() iter.Seq[EntityInfo] {
	return func(yield func(EntityInfo) bool) {
		var all []EntityInfo
		for id, e := range g.entities.Iter() {
			all = append(all, EntityInfo{
				ID:       id,
				Kind:     *e.Kind,
				Cell:     *e.Cell,
				Position: e.Transform.Position,
				Yaw:      e.Transform.Yaw,
			})
		}
		slices.SortStableFunc(all, func(a, b EntityInfo) int {
			return drawOrder(a.Kind) - drawOrder(b.Kind)
		})
		for _, info := range all {
			if !yield(info) {
				return
			}
		}
	}
}

func drawOrder(k Kind) int {
	switch k {
	case KindFloor:
		return 0
	case KindTarget:
		return 1
	case KindWall:
		return 2
	case KindBox:
		return 3
	}
	return 4
}

// Storage exposes the ECS world for debug tooling.
func (g *Game) Storage() *ecs.Storage {
	return g.storage
}

// Stats returns per-system timings.
func (g *Game) Stats() *ecs.SchedulerStats {
	return g.scheduler.GetStats()
}

// Store returns the level store.
func (g *Game) Store() *level.Store {
	return g.store
}
