package tty

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/sokoban/game"
)

// Run plays g on screen until a quit key is pressed or ctx is done. The game
// ticks and draws on its own goroutine; key events are handled on the
// caller's.
func Run(ctx context.Context, screen tcell.Screen, g *game.Game, interval time.Duration) error {
	renderer := NewRenderer(screen, g.Store().Len())
	g.Register(renderer)
	renderer.Draw()

	ctx, cancel := context.WithCancel(ctx)
	ticking := make(chan struct{})
	go func() {
		defer close(ticking)
		g.Run(ctx, interval)
	}()
	defer func() {
		cancel()
		<-ticking
	}()

	events := make(chan tcell.Event, 64)
	go pump(screen, events, ctx.Done())

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if IsQuit(ev.Key(), ev.Rune()) {
					return nil
				}
				if intent, ok := KeyIntent(ev.Key(), ev.Rune()); ok {
					g.Submit(intent)
				}
			case *tcell.EventResize:
				renderer.Resize()
			}
		}
	}
}

// pump forwards screen events until the screen is finalized or done is
// closed. events is closed only in the first case.
func pump(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}
