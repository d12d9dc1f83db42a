// Package tty draws a game in a terminal with tcell and maps key presses to
// game intents.
package tty

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/sokoban/ecs"
	"github.com/plus3/sokoban/game"
	"github.com/plus3/sokoban/geom"
)

var (
	styleWall   = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorGray)
	styleFloor  = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	styleTarget = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleBox    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleDone   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// Glyphs drawn for each entity kind. A box standing on a target uses BoxDone.
const (
	GlyphWall    = '#'
	GlyphFloor   = '·'
	GlyphTarget  = '.'
	GlyphBox     = '$'
	GlyphBoxDone = '*'
	GlyphPlayer  = '@'
)

// cellWidth is the number of terminal columns per grid cell; terminal cells
// are about twice as tall as they are wide.
const cellWidth = 2

// Renderer is a system that draws the level top-down, north up, once per
// tick. Register it after the engine's systems.
type Renderer struct {
	Session   ecs.Singleton[game.Session]
	Drawables ecs.Query[struct {
		*game.Kind
		*game.Transform
	}]
	Targets ecs.Query[struct {
		*game.Target
		*geom.Cell
	}]

	screen  tcell.Screen
	levels  int
	resized atomic.Bool
}

// NewRenderer draws onto screen. levels is the size of the level list, shown
// in the status line.
func NewRenderer(screen tcell.Screen, levels int) *Renderer {
	return &Renderer{screen: screen, levels: levels}
}

func (r *Renderer) Execute(frame *ecs.UpdateFrame) {
	if r.resized.Swap(false) {
		r.screen.Sync()
	}
	r.Draw()
}

// Resize makes the next frame resync the whole screen. It is safe to call
// from any goroutine.
func (r *Renderer) Resize() {
	r.resized.Store(true)
}

// Draw renders the current state and shows it. The renderer must have been
// registered with the game.
func (r *Renderer) Draw() {
	sess := r.Session.Get()
	if sess == nil {
		return
	}
	r.Drawables.Execute()
	r.Targets.Execute()

	r.screen.Clear()
	width, height := r.screen.Size()
	lo, hi := sess.Map.Extent()
	minX, maxZ := lo.X, hi.Z
	cols, rows := hi.X-lo.X+1, hi.Z-lo.Z+1
	originX := (width - cols*cellWidth) / 2
	originY := max((height-1-rows)/2, 0)

	toScreen := func(x, z int) (int, int) {
		return originX + (x-minX)*cellWidth, originY + (maxZ - z)
	}

	targets := make(map[geom.Cell]bool, r.Targets.Len())
	for t := range r.Targets.Values() {
		targets[*t.Cell] = true
	}

	for _, kind := range drawOrder {
		for e := range r.Drawables.Values() {
			if *e.Kind != kind {
				continue
			}
			cell := geom.CellAt(e.Transform.Position)
			glyph, style := look(*e.Kind, targets[cell] && isSettled(e.Transform))
			sx, sy := toScreen(cell.X, cell.Z)
			r.screen.SetContent(sx, sy, glyph, nil, style)
		}
	}

	r.drawText(0, height-1, r.status(sess), styleStatus)
	r.screen.Show()
}

func (r *Renderer) status(sess *game.Session) string {
	line := fmt.Sprintf("level %d/%d %s  moves %d  pushes %d", sess.Level, r.levels, sess.Map.Name, sess.Moves, sess.Pushes)
	if sess.State == game.Cleared {
		line += "  cleared!"
	}
	return line + "  [arrows/wasd move, r reset, q quit]"
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for _, ch := range text {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

// drawOrder paints later kinds over earlier ones.
var drawOrder = []game.Kind{game.KindFloor, game.KindTarget, game.KindWall, game.KindBox, game.KindPlayer}

// isSettled reports whether an entity sits exactly on its cell, so that a box
// sliding across a target is not drawn as done.
func isSettled(t *game.Transform) bool {
	p := t.Position
	return p.X() == math.Round(p.X()) && p.Z() == math.Round(p.Z())
}

func look(k game.Kind, onTarget bool) (rune, tcell.Style) {
	switch k {
	case game.KindWall:
		return GlyphWall, styleWall
	case game.KindFloor:
		return GlyphFloor, styleFloor
	case game.KindTarget:
		return GlyphTarget, styleTarget
	case game.KindBox:
		if onTarget {
			return GlyphBoxDone, styleDone
		}
		return GlyphBox, styleBox
	case game.KindPlayer:
		return GlyphPlayer, stylePlayer
	}
	return '?', styleStatus
}
