package tty

import (
	"github.com/gdamore/tcell/v2"
	"github.com/plus3/sokoban/game"
)

// KeyIntent maps a key press to a game intent. Arrows and WASD move, R
// resets.
func KeyIntent(key tcell.Key, r rune) (game.Intent, bool) {
	switch key {
	case tcell.KeyUp:
		return game.IntentNorth, true
	case tcell.KeyDown:
		return game.IntentSouth, true
	case tcell.KeyRight:
		return game.IntentEast, true
	case tcell.KeyLeft:
		return game.IntentWest, true
	case tcell.KeyRune:
		switch r {
		case 'w', 'W':
			return game.IntentNorth, true
		case 's', 'S':
			return game.IntentSouth, true
		case 'd', 'D':
			return game.IntentEast, true
		case 'a', 'A':
			return game.IntentWest, true
		case 'r', 'R':
			return game.IntentReset, true
		}
	}
	return game.IntentNone, false
}

// IsQuit reports whether the key ends the session: Escape, Ctrl-C or q.
func IsQuit(key tcell.Key, r rune) bool {
	return key == tcell.KeyEscape || key == tcell.KeyCtrlC ||
		(key == tcell.KeyRune && (r == 'q' || r == 'Q'))
}
