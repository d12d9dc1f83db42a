// Package debugui draws Dear ImGui debug panels from ECS systems. Panels are
// entities carrying an ImguiItem; ImguiSystem runs them once per frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/sokoban/ecs"
)

// ImguiItem is a component holding one panel's render function.
type ImguiItem struct {
	Render func()
}

// ImguiInputState records whether ImGui wants the mouse or keyboard this
// frame. Game input should be skipped while it does.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem updates ImguiInputState and defers every ImguiItem's render
// function to the end of the frame.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	state := i.InputState.Get()
	if state == nil {
		return
	}
	io := imgui.CurrentIO()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range i.Items.Values() {
		frame.Commands.Defer(item.ImguiItem.Render)
	}
}

// RegisterComponents registers the component types of this package.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}
