package engine

import "github.com/plus3/korp/render"

// Core is the simulation driven by an Engine.
//
// Per tick the engine calls Input then Update. Render is called once per
// displayed frame with alpha in [0, 1), the fraction of a timestep elapsed
// since the last tick. Resize is called when the surface size changes.
type Core interface {
	Input(input *Input)
	Update() error
	Render(frame *render.Frame, alpha float32) error
	Resize(width, height int)
}
