package game

import (
	"fmt"
	"log"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/sokoban/ecs"
	"github.com/plus3/sokoban/geom"
	"github.com/plus3/sokoban/level"
)

// levels swaps the session's entities for those of another map.
type levels struct {
	store    *level.Store
	registry *Registry
	observer Observer
	logger   *log.Logger
}

// load tears down the current entities and populates the map at index. The
// level-change notification is sent when announce is set.
func (l *levels) load(sess *Session, index int, announce bool) error {
	m, err := l.store.Load(index)
	if err != nil {
		return fmt.Errorf("load level %d: %w", index, err)
	}

	l.registry.Clear(sess.Entities)

	*sess = Session{
		Level:    l.store.Index(index),
		Map:      m,
		Entities: l.registry.Populate(m),
		State:    Idle,
		Solved:   sess.Solved,
	}

	if announce {
		l.logger.Printf("sokoban: level %d (%s): %d boxes", sess.Level, m.Name, len(m.Boxes))
		l.observer.LevelChanged(sess.Level, m.Name)
	}
	return nil
}

// IntentSystem moves input collected since the last tick into the
// PendingIntent singleton.
type IntentSystem struct {
	Pending ecs.Singleton[PendingIntent]

	inbox *inbox
}

func (s *IntentSystem) Execute(frame *ecs.UpdateFrame) {
	*s.Pending.Get() = s.inbox.drain()
}

// LevelSystem handles reset requests and advances past cleared levels.
type LevelSystem struct {
	Session ecs.Singleton[Session]
	Pending ecs.Singleton[PendingIntent]

	levels *levels
}

func (s *LevelSystem) Execute(frame *ecs.UpdateFrame) {
	sess := s.Session.Get()
	pending := s.Pending.Get()

	switch {
	case pending.Reset:
		// a reset supersedes whatever else arrived this tick
		*pending = PendingIntent{}
		if err := s.levels.load(sess, sess.Level, false); err != nil {
			s.levels.logger.Printf("sokoban: reset: %v", err)
		}

	case sess.State == Cleared:
		solved := sess.Solved + 1
		if err := s.levels.load(sess, sess.Level+1, true); err != nil {
			s.levels.logger.Printf("sokoban: advance: %v", err)
			return
		}
		sess.Solved = solved
	}
}

// MoveSystem starts a move when a direction is pending and the level is idle.
type MoveSystem struct {
	Session ecs.Singleton[Session]
	Pending ecs.Singleton[PendingIntent]
	Players ecs.Query[struct {
		ecs.EntityId
		*Player
		*Transform
		*geom.Cell
	}]
	Walls ecs.Query[struct {
		*Wall
		*Bounds
	}]
	Boxes ecs.Query[struct {
		ecs.EntityId
		*Box
		*geom.Cell
		*Transform
		*Bounds
	}]
}

func (s *MoveSystem) Execute(frame *ecs.UpdateFrame) {
	sess := s.Session.Get()
	pending := s.Pending.Get()

	dir := pending.Move
	pending.Move = 0
	if !dir.Valid() || sess.State != Idle {
		return
	}

	for player := range s.Players.Values() {
		player.Player.Facing = dir
		player.Transform.Yaw = dir.Yaw()

		outcome := ResolveMove(s.board(), dir)
		if outcome.Kind == Blocked {
			return
		}

		anim := &Animation{
			Outcome:    outcome,
			Direction:  dir,
			Player:     player.EntityId,
			PlayerFrom: *player.Cell,
			StartTick:  frame.Tick,
		}
		if outcome.Kind == PlayerPushesBox {
			for box := range s.Boxes.Values() {
				if box.Box.Index == outcome.Box {
					anim.Box = box.EntityId
					anim.BoxFrom = *box.Cell
				}
			}
		}

		sess.Anim = anim
		sess.State = Animating
		return
	}
}

// refresh executes the queries outside of a scheduled frame.
func (s *MoveSystem) refresh() {
	s.Players.Execute()
	s.Walls.Execute()
	s.Boxes.Execute()
}

// board snapshots the executed queries at the committed cells, so a move in
// progress does not shift the answer. Boxes are ordered by map index.
func (s *MoveSystem) board() Board {
	var b Board
	for player := range s.Players.Values() {
		b.Player = KindPlayer.Shape().At(*player.Cell)
	}
	for wall := range s.Walls.Values() {
		b.Walls = append(b.Walls, wall.Bounds.AABB)
	}
	for box := range s.Boxes.Values() {
		b.Boxes = append(b.Boxes, BoxBody{
			Index:    box.Box.Index,
			Position: KindBox.Shape().At(*box.Cell),
			Bounds:   box.Bounds.AABB,
		})
	}
	slices.SortFunc(b.Boxes, func(a, c BoxBody) int { return a.Index - c.Index })
	return b
}

// AnimationSystem plays out the active move and commits it when done.
type AnimationSystem struct {
	Session ecs.Singleton[Session]
	Walls   ecs.Query[struct {
		*Wall
		*geom.Cell
	}]
	Boxes ecs.Query[struct {
		ecs.EntityId
		*Box
		*geom.Cell
		*Bounds
	}]
	Targets ecs.Query[struct {
		*Target
		*Transform
	}]

	duration float64
	logger   *log.Logger
}

func (s *AnimationSystem) Execute(frame *ecs.UpdateFrame) {
	sess := s.Session.Get()
	anim := sess.Anim
	if sess.State != Animating || anim == nil {
		return
	}
	// the tick that started the move measured time from before the input
	if anim.StartTick == frame.Tick {
		return
	}

	anim.Elapsed += frame.DeltaTime
	p := anim.Progress(s.duration)
	offset := anim.Direction.Vec().Mul(Ease(p))

	if t := ecs.ReadComponent[Transform](frame.Storage, anim.Player); t != nil {
		t.Position = KindPlayer.Shape().At(anim.PlayerFrom).Add(offset)
	}
	if anim.Pushing() {
		if t := ecs.ReadComponent[Transform](frame.Storage, anim.Box); t != nil {
			t.Position = KindBox.Shape().At(anim.BoxFrom).Add(offset)
		}
	}

	if p >= 1 {
		s.commit(frame.Storage, sess)
	}
}

func (s *AnimationSystem) commit(storage *ecs.Storage, sess *Session) {
	anim := sess.Anim
	sess.Anim = nil
	sess.State = Idle

	playerTo := anim.PlayerFrom.Add(anim.Direction)
	boxTo := anim.BoxFrom.Add(anim.Direction)

	place(storage, anim.Player, KindPlayer, playerTo)
	if anim.Pushing() {
		place(storage, anim.Box, KindBox, boxTo)
	}

	if err := s.checkCells(anim, playerTo, boxTo); err != nil {
		s.logger.Printf("sokoban: rejecting %s move: %v", anim.Direction, err)
		place(storage, anim.Player, KindPlayer, anim.PlayerFrom)
		if anim.Pushing() {
			place(storage, anim.Box, KindBox, anim.BoxFrom)
		}
		return
	}

	sess.Moves++
	if anim.Pushing() {
		sess.Pushes++
	}

	if s.onTarget() == s.Targets.Len() {
		sess.State = Cleared
	}
}

// checkCells verifies that the committed cells are not shared with a wall or
// another box.
func (s *AnimationSystem) checkCells(anim *Animation, playerTo, boxTo geom.Cell) error {
	for wall := range s.Walls.Values() {
		if *wall.Cell == playerTo {
			return fmt.Errorf("player entered wall at %s", playerTo)
		}
		if anim.Pushing() && *wall.Cell == boxTo {
			return fmt.Errorf("box %d entered wall at %s", anim.Outcome.Box, boxTo)
		}
	}
	for id, box := range s.Boxes.Iter() {
		if id == anim.Box && anim.Pushing() {
			continue
		}
		if *box.Cell == playerTo {
			return fmt.Errorf("player entered box %d at %s", box.Box.Index, playerTo)
		}
		if anim.Pushing() && *box.Cell == boxTo {
			return fmt.Errorf("box %d entered box %d at %s", anim.Outcome.Box, box.Box.Index, boxTo)
		}
	}
	return nil
}

func (s *AnimationSystem) onTarget() int {
	targets := make([]mgl64.Vec3, 0, s.Targets.Len())
	for target := range s.Targets.Values() {
		targets = append(targets, target.Transform.Position)
	}
	boxes := make([]geom.AABB, 0, s.Boxes.Len())
	for box := range s.Boxes.Values() {
		boxes = append(boxes, box.Bounds.AABB)
	}
	return CountBoxesOnTarget(targets, boxes)
}
