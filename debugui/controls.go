package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/korp/ecs"
	"github.com/plus3/korp/fixed"
	"github.com/plus3/korp/game"
)

// spawnOffset places ships spawned from the controls ahead of the player.
var spawnOffset = fixed.VInt(0, -200)

type ControlsWindow struct{}

func NewControlsWindow() *ControlsWindow {
	return &ControlsWindow{}
}

func (cw *ControlsWindow) Render(cosmos *game.Cosmos, selected *ecs.Entity) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 610), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 160), imgui.CondOnce)
	if !imgui.BeginV("Controls", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	outlines := cosmos.Outlines()
	if imgui.Checkbox("Outlines and hitboxes", &outlines) {
		cosmos.SetOutlines(outlines)
	}

	imgui.Separator()
	at := spawnPoint(cosmos)
	imgui.Text(fmt.Sprintf("Spawn at %s", at))
	if imgui.Button("Spawn Triangle") {
		cosmos.Queue(game.Command{Kind: game.Spawn, Shape: game.ShapeTriangle, At: at})
	}
	imgui.SameLine()
	if imgui.Button("Spawn Rectangle") {
		cosmos.Queue(game.Command{Kind: game.Spawn, Shape: game.ShapeRectangle, At: at})
	}

	imgui.Separator()
	if selected != nil && *selected != cosmos.Player() {
		if imgui.Button(fmt.Sprintf("Destroy %s", selected)) {
			cosmos.Forge().Destroy(*selected)
		}
	} else {
		imgui.Text("Select a body other than the player to destroy it")
	}

	imgui.End()
}

// spawnPoint is ahead of the player, or the origin when the player is gone.
func spawnPoint(cosmos *game.Cosmos) fixed.Vec2 {
	body, ok := cosmos.Tables().Bodies.Get(cosmos.Player())
	if !ok {
		return fixed.ZeroVec2
	}
	return body.New.Centroid.Add(spawnOffset)
}
