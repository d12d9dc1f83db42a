package game

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/sokoban/geom"
)

type OutcomeKind uint8

const (
	Blocked OutcomeKind = iota
	PlayerOnly
	PlayerPushesBox
)

// Outcome is the result of resolving one move. Box is the map index of the
// pushed box and is -1 unless Kind is PlayerPushesBox.
type Outcome struct {
	Kind OutcomeKind
	Box  int
}

var (
	blocked    = Outcome{Kind: Blocked, Box: -1}
	playerOnly = Outcome{Kind: PlayerOnly, Box: -1}
)

func pushes(box int) Outcome {
	return Outcome{Kind: PlayerPushesBox, Box: box}
}

func (o Outcome) String() string {
	switch o.Kind {
	case Blocked:
		return "blocked"
	case PlayerOnly:
		return "player-only"
	case PlayerPushesBox:
		return fmt.Sprintf("push(%d)", o.Box)
	}
	return "unknown"
}

// BoxBody is a box as the resolver sees it.
type BoxBody struct {
	Index    int
	Position mgl64.Vec3
	Bounds   geom.AABB
}

// Board is the read-only state a move is resolved against.
type Board struct {
	Player mgl64.Vec3
	Walls  []geom.AABB
	Boxes  []BoxBody
}

func (b Board) wallAt(p mgl64.Vec3) bool {
	for _, w := range b.Walls {
		if w.ContainsPoint(p) {
			return true
		}
	}
	return false
}

// boxAt returns the slice position of the first box containing p, or -1.
func (b Board) boxAt(p mgl64.Vec3, skip int) int {
	for i, box := range b.Boxes {
		if i != skip && box.Bounds.ContainsPoint(p) {
			return i
		}
	}
	return -1
}

// ResolveMove decides what a step in direction d does without changing
// anything. At most one box is pushed; a box whose next cell holds a wall or
// another box blocks the whole move.
func ResolveMove(b Board, d geom.Direction) Outcome {
	if !d.Valid() {
		return blocked
	}
	step := d.Vec()

	next := b.Player.Add(step)
	if b.wallAt(next) {
		return blocked
	}

	i := b.boxAt(next, -1)
	if i < 0 {
		return playerOnly
	}

	beyond := b.Boxes[i].Position.Add(step)
	if b.boxAt(beyond, i) >= 0 {
		return blocked
	}
	if b.wallAt(beyond) {
		return blocked
	}
	return pushes(b.Boxes[i].Index)
}

// targetLift raises a target's position into the volume of a box standing
// on it.
var targetLift = mgl64.Vec3{0, 0.5, 0}

// TargetPoint is the point a box must contain to count as on the target.
func TargetPoint(target mgl64.Vec3) mgl64.Vec3 {
	return target.Add(targetLift)
}

// CountBoxesOnTarget counts targets whose lifted point lies in some box.
func CountBoxesOnTarget(targets []mgl64.Vec3, boxes []geom.AABB) int {
	count := 0
	for _, t := range targets {
		p := TargetPoint(t)
		for _, box := range boxes {
			if box.ContainsPoint(p) {
				count++
				break
			}
		}
	}
	return count
}

// Ease maps linear progress in [0,1] onto a cosine curve that starts and
// stops smoothly.
func Ease(p float64) float64 {
	p = min(max(p, 0), 1)
	return 0.5 * (1 - math.Cos(p*math.Pi))
}
