package game

import (
	"sync"

	"github.com/plus3/sokoban/ecs"
	"github.com/plus3/sokoban/geom"
	"github.com/plus3/sokoban/level"
)

// State is the level state machine's current state.
type State uint8

const (
	Idle State = iota
	Animating
	Cleared
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Animating:
		return "animating"
	case Cleared:
		return "cleared"
	}
	return "unknown"
}

// Animation is a committed-to move being played out. Progress is a function
// of Elapsed alone.
type Animation struct {
	Outcome    Outcome
	Direction  geom.Direction
	Player     ecs.EntityId
	PlayerFrom geom.Cell
	Box        ecs.EntityId
	BoxFrom    geom.Cell
	Elapsed    float64
	StartTick  uint64
}

// Pushing reports whether a box moves with the player.
func (a *Animation) Pushing() bool {
	return a.Outcome.Kind == PlayerPushesBox
}

// Progress returns min(Elapsed/duration, 1). A zero duration completes
// immediately.
func (a *Animation) Progress(duration float64) float64 {
	if duration <= 0 {
		return 1
	}
	return min(a.Elapsed/duration, 1)
}

// Session is the live level. It is stored as a singleton and only changed by
// the systems run from Tick.
type Session struct {
	Level    int
	Map      level.Map
	Entities EntitySet
	State    State
	Anim     *Animation

	Moves  int // committed moves on this attempt
	Pushes int // committed pushes on this attempt
	Solved int // levels cleared since start
}

// Intent is a resolved input event.
type Intent uint8

const (
	IntentNone Intent = iota
	IntentNorth
	IntentSouth
	IntentEast
	IntentWest
	IntentReset
)

// Direction returns the move an intent asks for.
func (i Intent) Direction() (geom.Direction, bool) {
	switch i {
	case IntentNorth:
		return geom.North, true
	case IntentSouth:
		return geom.South, true
	case IntentEast:
		return geom.East, true
	case IntentWest:
		return geom.West, true
	}
	return 0, false
}

func (i Intent) String() string {
	if i == IntentReset {
		return "reset"
	}
	if d, ok := i.Direction(); ok {
		return d.String()
	}
	return "none"
}

// PendingIntent is the input consumed by the current tick. Move is zero when
// no direction is pending.
type PendingIntent struct {
	Move  geom.Direction
	Reset bool
}

// inbox collects intents from any goroutine until the next tick drains it.
// The latest direction wins; a reset latches.
type inbox struct {
	mu    sync.Mutex
	move  geom.Direction
	reset bool
}

func (b *inbox) put(i Intent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if i == IntentReset {
		b.reset = true
		return
	}
	if d, ok := i.Direction(); ok {
		b.move = d
	}
}

func (b *inbox) drain() PendingIntent {
	b.mu.Lock()
	defer b.mu.Unlock()

	p := PendingIntent{Move: b.move, Reset: b.reset}
	b.move, b.reset = 0, false
	return p
}
