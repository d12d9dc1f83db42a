package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/sokoban/ecs"
)

// StatsPanel shows storage occupancy, frame times and per-system timings.
type StatsPanel struct {
	frameHistory []float32
	frameIndex   int
}

func NewStatsPanel(historyFrames int) *StatsPanel {
	return &StatsPanel{frameHistory: make([]float32, max(historyFrames, 1))}
}

// Record adds a frame time in seconds to the history.
func (p *StatsPanel) Record(deltaTime float32) {
	p.frameHistory[p.frameIndex] = deltaTime * 1000
	p.frameIndex = (p.frameIndex + 1) % len(p.frameHistory)
}

// AverageFrameTime returns the mean of the history in milliseconds.
func (p *StatsPanel) AverageFrameTime() float32 {
	var total float32
	for _, ft := range p.frameHistory {
		total += ft
	}
	return total / float32(len(p.frameHistory))
}

// Render draws the panel. schedulerStats may be nil.
func (p *StatsPanel) Render(storage *ecs.Storage, schedulerStats *ecs.SchedulerStats) {
	if !imgui.BeginV("ECS Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := storage.CollectStats()
	imgui.Text(fmt.Sprintf("Total Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	avg := p.AverageFrameTime()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000/avg))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &p.frameHistory[0], int32(len(p.frameHistory)))

	if schedulerStats != nil && imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, sys := range schedulerStats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.MaxDuration.String())
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Archetypes") {
		for _, arch := range stats.ArchetypeBreakdown {
			imgui.BulletText(fmt.Sprintf("0x%08X  %d entities  %v", arch.ID, arch.EntityCount, arch.ComponentTypes))
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singletons") {
		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}

	imgui.End()
}

// FrameTimer measures wall time between calls.
type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{lastFrameTime: time.Now()}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
