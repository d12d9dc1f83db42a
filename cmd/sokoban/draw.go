package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/sokoban/ecs"
	"github.com/plus3/sokoban/game"
	"github.com/plus3/sokoban/geom"
)

// statusHeight is the strip at the top of the window left for the status
// text.
const statusHeight = 36

// fadeFrames is how many updates a freshly created entity takes to fade in.
const fadeFrames = 12

var (
	floorColor   = color.RGBA{52, 52, 64, 255}
	targetColor  = color.RGBA{220, 80, 80, 255}
	wallColor    = color.RGBA{120, 110, 100, 255}
	boxColor     = color.RGBA{200, 150, 70, 255}
	boxDoneColor = color.RGBA{110, 200, 110, 255}
	outlineColor = color.RGBA{40, 30, 20, 255}
	playerColor  = color.RGBA{90, 160, 230, 255}
	facingColor  = color.RGBA{240, 240, 240, 255}
)

// visuals tracks how long each entity has existed so that a newly loaded
// level fades in.
type visuals struct {
	frames   map[ecs.EntityId]int
	setTitle func(string)
}

func newVisuals() *visuals {
	return &visuals{
		frames:   make(map[ecs.EntityId]int),
		setTitle: ebiten.SetWindowTitle,
	}
}

func (v *visuals) EntityCreated(info game.EntityInfo) {
	v.frames[info.ID] = 0
}

func (v *visuals) EntityDestroyed(info game.EntityInfo) {
	delete(v.frames, info.ID)
}

func (v *visuals) LevelChanged(index int, name string) {
	v.setTitle(fmt.Sprintf("Sokoban - level %d: %s", index, name))
}

func (v *visuals) age() {
	for id, n := range v.frames {
		if n < fadeFrames {
			v.frames[id] = n + 1
		}
	}
}

// alpha returns the entity's opacity. Unknown entities are opaque.
func (v *visuals) alpha(id ecs.EntityId) float32 {
	n, ok := v.frames[id]
	if !ok {
		return 1
	}
	return float32(n) / fadeFrames
}

// board maps world positions onto the window, fitting the map's extent into
// the area below the status text.
type board struct {
	lo, hi           geom.Cell
	size             float32
	originX, originY float32
}

func newBoard(lo, hi geom.Cell, width, height int) board {
	cols := float32(hi.X - lo.X + 1)
	rows := float32(hi.Z - lo.Z + 1)
	size := max(min(float32(width)/cols, float32(height)/rows), 1)
	return board{
		lo:      lo,
		hi:      hi,
		size:    size,
		originX: (float32(width) - cols*size) / 2,
		originY: statusHeight + (float32(height)-rows*size)/2,
	}
}

// toScreen returns the window position of a world point. North is up.
func (b board) toScreen(p mgl64.Vec3) (x, y float32) {
	x = b.originX + (float32(p.X()-float64(b.lo.X))+0.5)*b.size
	y = b.originY + (float32(float64(b.hi.Z)-p.Z())+0.5)*b.size
	return x, y
}

func (b board) draw(screen *ebiten.Image, g *game.Game, v *visuals) {
	targets := make(map[geom.Cell]bool)
	for info := range g.Entities() {
		if info.Kind == game.KindTarget {
			targets[info.Cell] = true
		}
	}

	s := b.size
	for info := range g.Entities() {
		x, y := b.toScreen(info.Position)
		a := v.alpha(info.ID)

		switch info.Kind {
		case game.KindFloor:
			vector.DrawFilledRect(screen, x-s/2, y-s/2, s, s, fade(floorColor, a), false)
		case game.KindTarget:
			vector.StrokeCircle(screen, x, y, s*0.2, max(s*0.05, 1), fade(targetColor, a), true)
		case game.KindWall:
			vector.DrawFilledRect(screen, x-s/2+1, y-s/2+1, s-2, s-2, fade(wallColor, a), false)
		case game.KindBox:
			c := boxColor
			if targets[info.Cell] && settled(info.Position) {
				c = boxDoneColor
			}
			inset := s * 0.1
			vector.DrawFilledRect(screen, x-s/2+inset, y-s/2+inset, s-2*inset, s-2*inset, fade(c, a), false)
			vector.StrokeRect(screen, x-s/2+inset, y-s/2+inset, s-2*inset, s-2*inset, max(s*0.04, 1), fade(outlineColor, a), false)
		case game.KindPlayer:
			vector.DrawFilledCircle(screen, x, y, s*0.35, fade(playerColor, a), true)
			fx, fy := facing(info.Yaw)
			vector.StrokeLine(screen, x, y, x+fx*s*0.35, y+fy*s*0.35, max(s*0.06, 1), fade(facingColor, a), true)
		}
	}
}

// facing returns the screen-space unit vector for a yaw. Screen y grows
// southwards.
func facing(yaw float64) (x, y float32) {
	return float32(math.Sin(yaw)), -float32(math.Cos(yaw))
}

// settled reports whether a position sits exactly on a cell, so a box sliding
// over a target is not drawn as done.
func settled(p mgl64.Vec3) bool {
	return p.X() == math.Round(p.X()) && p.Z() == math.Round(p.Z())
}

func fade(c color.RGBA, a float32) color.RGBA {
	scale := func(v uint8) uint8 { return uint8(float32(v) * a) }
	return color.RGBA{scale(c.R), scale(c.G), scale(c.B), scale(c.A)}
}
