package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/korp/render"
)

func renderRendererStats(stats render.Stats) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 380), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 220), imgui.CondOnce)
	if !imgui.BeginV("Renderer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Frames: %d", stats.Frames))
	if stats.LostFrames > 0 {
		imgui.TextColored(imgui.NewVec4(1.0, 0.8, 0.0, 1.0), fmt.Sprintf("Lost Frames: %d", stats.LostFrames))
	} else {
		imgui.Text("Lost Frames: 0")
	}
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Vertices: %d", stats.Vertices))
	imgui.Text(fmt.Sprintf("Draw Calls: %d", stats.DrawCalls))
	imgui.Text(fmt.Sprintf("View Projections: %d", stats.ViewProjections))
	imgui.Separator()

	imgui.Text("Vertex Buffer")
	imgui.ProgressBarV(fill(stats.Vertices, stats.VertexCapacity), imgui.NewVec2(-1, 0),
		fmt.Sprintf("%d/%d", stats.Vertices, stats.VertexCapacity))
	imgui.Text(fmt.Sprintf("Uniform Buffer (stride %d)", stats.UniformStride))
	imgui.ProgressBarV(fill(stats.ViewProjections, stats.ViewProjectionCapacity), imgui.NewVec2(-1, 0),
		fmt.Sprintf("%d/%d", stats.ViewProjections, stats.ViewProjectionCapacity))
	imgui.Text(fmt.Sprintf("Reallocations: %d", stats.Reallocations))

	imgui.End()
}

// fill returns used/capacity clamped to [0, 1].
func fill(used, capacity int) float32 {
	if capacity <= 0 {
		return 0
	}
	f := float32(used) / float32(capacity)
	return min(max(f, 0), 1)
}
