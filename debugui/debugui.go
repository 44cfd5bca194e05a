// Package debugui provides Dear ImGui diagnostics windows drawn over the
// simulation: loop and renderer counters, storage tables, per-system timings
// and a body browser with an inspector.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/korp/engine"
	"github.com/plus3/korp/game"
	"github.com/plus3/korp/render"
)

// ToggleKey shows and hides every window.
const ToggleKey = ebiten.KeyF3

// Backend is the platform side of Dear ImGui.
type Backend interface {
	BeginFrame()
	EndFrame()
	Draw(screen *ebiten.Image)
	Layout(width, height int)
}

// ImguiItem holds a Dear ImGui render function called once per overlay
// update while the overlay is visible.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks whether Dear ImGui is consuming mouse or keyboard
// input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// StatsSource reports the engine counters shown by the performance windows.
type StatsSource interface {
	LoopStats() engine.LoopStats
	RendererStats() render.Stats
}

// Overlay implements engine.Overlay on top of an ImGui backend.
type Overlay struct {
	backend Backend
	items   []ImguiItem
	input   ImguiInputState
	visible bool
}

func NewOverlay(backend Backend) *Overlay {
	return &Overlay{backend: backend, visible: true}
}

// Add appends items in draw order.
func (o *Overlay) Add(items ...ImguiItem) {
	o.items = append(o.items, items...)
}

func (o *Overlay) Visible() bool {
	return o.visible
}

func (o *Overlay) SetVisible(visible bool) {
	o.visible = visible
}

func (o *Overlay) InputState() ImguiInputState {
	return o.input
}

// CapturesKeyboard withholds keys from the simulation while a text field or
// other ImGui widget has focus.
func (o *Overlay) CapturesKeyboard() bool {
	return o.visible && o.input.WantCaptureKeyboard
}

func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ToggleKey) {
		o.visible = !o.visible
	}

	o.backend.BeginFrame()
	if o.visible {
		for _, item := range o.items {
			item.Render()
		}
	}
	o.backend.EndFrame()

	io := imgui.CurrentIO()
	o.input.WantCaptureMouse = io.WantCaptureMouse()
	o.input.WantCaptureKeyboard = io.WantCaptureKeyboard()
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

func (o *Overlay) Layout(width, height int) {
	o.backend.Layout(width, height)
}

// SpawnDebugUI adds the standard windows for cosmos to o.
func SpawnDebugUI(o *Overlay, cosmos *game.Cosmos, stats StatsSource) {
	performance := NewPerformanceStatsWindow(120)
	systems := NewSystemStatsWindow(120)
	tables := NewTableViewerWindow()
	browser := NewEntityBrowserWindow(100)
	inspector := NewComponentInspectorWindow()
	controls := NewControlsWindow()

	o.Add(
		ImguiItem{Render: func() { performance.Render(cosmos.Storage(), stats.LoopStats()) }},
		ImguiItem{Render: func() { renderRendererStats(stats.RendererStats()) }},
		ImguiItem{Render: func() { systems.Render(cosmos.Scheduler().GetStats()) }},
		ImguiItem{Render: func() { tables.Render(cosmos.Storage().CollectStats()) }},
		ImguiItem{Render: func() { browser.Render(cosmos.Tables()) }},
		ImguiItem{Render: func() { inspector.Render(cosmos.Tables(), browser.Selected()) }},
		ImguiItem{Render: func() { controls.Render(cosmos, browser.Selected()) }},
	)
}
