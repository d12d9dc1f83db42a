package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/sokoban/game"
)

var background = color.RGBA{24, 24, 32, 255}

// App implements ebiten.Game on top of a game.Game.
type App struct {
	game    *game.Game
	visuals *visuals
	overlay *overlay
}

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if a.overlay != nil {
		a.overlay.begin()
	}
	if a.overlay == nil || !a.overlay.wantsKeyboard() {
		for _, intent := range pressedIntents(inpututil.IsKeyJustPressed) {
			a.game.Submit(intent)
		}
	}

	a.game.Tick(1.0 / float64(ebiten.TPS()))
	a.visuals.age()

	if a.overlay != nil {
		a.overlay.end()
	}
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	bounds := screen.Bounds()
	lo, hi := a.game.Map().Extent()
	b := newBoard(lo, hi, bounds.Dx(), bounds.Dy()-statusHeight)
	b.draw(screen, a.game, a.visuals)

	ebitenutil.DebugPrint(screen, status(a.game.Session(), a.game.Store().Len()))

	if a.overlay != nil {
		a.overlay.draw(screen)
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if a.overlay != nil {
		a.overlay.backend.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func status(sess game.Session, levels int) string {
	line := fmt.Sprintf("Level %d/%d %s  Moves %d  Pushes %d  Solved %d",
		sess.Level, levels, sess.Map.Name, sess.Moves, sess.Pushes, sess.Solved)
	if sess.State == game.Cleared {
		line += "  Cleared!"
	}
	return line + "\nArrows/WASD move, R reset, Esc quit"
}
