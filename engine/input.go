package engine

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kamstrup/intmap"
	"github.com/plus3/korp/vmath"
)

type keySet = intmap.Set[ebiten.Key]

// Input is the keyboard and mouse state seen by a Core during a tick.
//
// Keys.Old holds the keys down at the previous tick and Keys.New the keys
// down at the latest poll. Frames are polled more often than ticks run, so
// keys pressed at any poll since the previous tick are latched as well; a
// tap shorter than a timestep is still reported by Pressed.
type Input struct {
	Keys    Morph[*keySet]
	latched *keySet
	mouse   vmath.Vec2
}

func NewInput() *Input {
	return &Input{
		Keys:    NewMorph(intmap.NewSet[ebiten.Key](16), intmap.NewSet[ebiten.Key](16)),
		latched: intmap.NewSet[ebiten.Key](16),
	}
}

// Poll records the keys currently held and the cursor position in surface
// pixels.
func (in *Input) Poll(pressed []ebiten.Key, mouse vmath.Vec2) {
	in.Keys.New.Clear()
	for _, k := range pressed {
		in.Keys.New.Add(k)
		in.latched.Add(k)
	}
	in.mouse = mouse
}

// Pressed reports whether k went down since the previous tick.
func (in *Input) Pressed(k ebiten.Key) bool {
	return in.latched.Has(k) && !in.Keys.Old.Has(k)
}

// Down reports whether k is held at the latest poll.
func (in *Input) Down(k ebiten.Key) bool {
	return in.Keys.New.Has(k)
}

// WasDown reports whether k was held at any poll since the previous tick.
func (in *Input) WasDown(k ebiten.Key) bool {
	return in.latched.Has(k)
}

// Released reports whether k was held at the previous tick and is up now.
func (in *Input) Released(k ebiten.Key) bool {
	return in.Keys.Old.Has(k) && !in.Keys.New.Has(k)
}

// Mouse returns the cursor position in surface pixels.
func (in *Input) Mouse() vmath.Vec2 {
	return in.mouse
}

// Update consumes the edge state after a tick: the held keys become the
// previous keys and the latch restarts from them.
func (in *Input) Update() {
	copyKeys(in.Keys.Old, in.Keys.New)
	copyKeys(in.latched, in.Keys.New)
}

func copyKeys(dst, src *keySet) {
	dst.Clear()
	for k := range src.All() {
		dst.Add(k)
	}
}
