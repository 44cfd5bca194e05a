package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/korp/ecs"
	"github.com/plus3/korp/engine"
)

type PerformanceStatsWindow struct {
	frames *History
	timer  *FrameTimer
	plot   []float32
}

func NewPerformanceStatsWindow(historyFrames int) *PerformanceStatsWindow {
	return &PerformanceStatsWindow{
		frames: NewHistory(historyFrames),
		timer:  NewFrameTimer(),
	}
}

func (ps *PerformanceStatsWindow) Render(storage *ecs.Storage, loop engine.LoopStats) {
	ps.frames.Push(ps.timer.GetDeltaTime() * 1000.0)

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 360), imgui.CondOnce)
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("TPS: %d (timestep %s)", loop.TPS, loop.Timestep))
	imgui.Text(fmt.Sprintf("FPS: %d", loop.FPS))
	imgui.Text(fmt.Sprintf("Ticks: %d  Frames: %d", loop.TotalTicks, loop.TotalFrames))
	imgui.Text(fmt.Sprintf("Dropped Ticks: %d", loop.DroppedTicks))
	imgui.Text(fmt.Sprintf("Alpha: %.3f", loop.Alpha))

	avg := ps.frames.Average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	} else {
		imgui.Text("Avg Frame Time: -")
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	ps.plot = ps.frames.Ordered(ps.plot)
	imgui.PlotLinesFloatPtr("##frametime", &ps.plot[0], int32(len(ps.plot)))

	stats := storage.CollectStats()

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Live Entities: %d / %d", stats.LiveEntities, stats.Capacity))
	imgui.Text(fmt.Sprintf("Free Indices: %d", stats.FreeIndices))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	if imgui.TreeNodeStr("Table Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("TableStatsTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Table")
			imgui.TableSetupColumn("Entries")
			imgui.TableHeadersRow()

			for _, table := range stats.Tables {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(table.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", table.Len))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singleton Details") {
		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}

	imgui.End()
}

type FrameTimer struct {
	lastFrameTime time.Time
	now           func() time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
		now:           time.Now,
	}
}

// GetDeltaTime returns the seconds since the previous call.
func (ft *FrameTimer) GetDeltaTime() float32 {
	now := ft.now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
