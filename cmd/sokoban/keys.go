package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/sokoban/game"
)

type binding struct {
	key    ebiten.Key
	intent game.Intent
}

var bindings = []binding{
	{ebiten.KeyArrowUp, game.IntentNorth},
	{ebiten.KeyArrowDown, game.IntentSouth},
	{ebiten.KeyArrowRight, game.IntentEast},
	{ebiten.KeyArrowLeft, game.IntentWest},
	{ebiten.KeyW, game.IntentNorth},
	{ebiten.KeyS, game.IntentSouth},
	{ebiten.KeyD, game.IntentEast},
	{ebiten.KeyA, game.IntentWest},
	{ebiten.KeyR, game.IntentReset},
}

// pressedIntents returns the intents of the keys pressed this frame in
// binding order.
func pressedIntents(justPressed func(ebiten.Key) bool) []game.Intent {
	var intents []game.Intent
	for _, b := range bindings {
		if justPressed(b.key) {
			intents = append(intents, b.intent)
		}
	}
	return intents
}
