package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/sokoban/ecs"
	"github.com/plus3/sokoban/ecs/debugui"
	debugui_ebiten "github.com/plus3/sokoban/ecs/debugui/ebiten"
	"github.com/plus3/sokoban/game"
	"github.com/plus3/sokoban/geom"
)

// overlay runs the ImGui debug panels as entities of the game's own storage.
type overlay struct {
	backend debugui_ebiten.ImguiBackend
	storage *ecs.Storage
	stats   *debugui.StatsPanel
	timer   *debugui.FrameTimer
}

func newOverlay(g *game.Game, backend debugui_ebiten.ImguiBackend) *overlay {
	storage := g.Storage()
	o := &overlay{
		backend: backend,
		storage: storage,
		stats:   debugui.NewStatsPanel(120),
		timer:   debugui.NewFrameTimer(),
	}

	storage.AddSingleton(debugui.ImguiInputState{})
	storage.Spawn(debugui.ImguiItem{Render: func() { sessionPanel(g) }})
	storage.Spawn(debugui.ImguiItem{Render: func() { o.stats.Render(storage, g.Stats()) }})
	g.Register(&debugui.ImguiSystem{})
	return o
}

func (o *overlay) begin() {
	o.stats.Record(o.timer.GetDeltaTime())
	o.backend.BeginFrame()
}

func (o *overlay) end() {
	o.backend.EndFrame()
}

func (o *overlay) draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

func (o *overlay) wantsKeyboard() bool {
	var state *debugui.ImguiInputState
	return o.storage.ReadSingleton(&state) && state.WantCaptureKeyboard
}

// sessionPanel shows the live session and what each direction would do.
func sessionPanel(g *game.Game) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 50), imgui.CondOnce, imgui.NewVec2(0, 0))
	if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	sess := g.Session()
	imgui.Text(fmt.Sprintf("Level: %d/%d %s", sess.Level, g.Store().Len(), sess.Map.Name))
	imgui.Text(fmt.Sprintf("State: %s", sess.State))
	imgui.Text(fmt.Sprintf("Moves: %d  Pushes: %d  Solved: %d", sess.Moves, sess.Pushes, sess.Solved))
	imgui.Text(fmt.Sprintf("Boxes on target: %d/%d", g.CountBoxesOnTarget(), len(sess.Map.Targets)))
	imgui.ProgressBarV(float32(g.Progress()), imgui.NewVec2(-1, 0), fmt.Sprintf("move %.0f%%", g.Progress()*100))

	if player, ok := g.Player(); ok {
		imgui.Text(fmt.Sprintf("Player: %s yaw %.2f", player.Cell, player.Yaw))
	}

	imgui.Separator()
	if imgui.BeginTableV("Moves", 2, imgui.TableFlagsBorders, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Direction")
		imgui.TableSetupColumn("Outcome")
		imgui.TableHeadersRow()
		for _, d := range geom.Directions {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(d.String())
			imgui.TableNextColumn()
			imgui.Text(g.ResolveMove(d).String())
		}
		imgui.EndTable()
	}

	if imgui.Button("Reset") {
		g.Submit(game.IntentReset)
	}
	imgui.End()
}
