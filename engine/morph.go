package engine

// Morph holds the value of a piece of state at the previous tick (Old) and
// at the current tick (New). Rendering interpolates between the two.
type Morph[T any] struct {
	Old T
	New T
}

func NewMorph[T any](old, new T) Morph[T] {
	return Morph[T]{Old: old, New: new}
}

// MorphOf returns a morph with no change between ticks.
func MorphOf[T any](v T) Morph[T] {
	return Morph[T]{Old: v, New: v}
}

// Commit makes the current value the previous one. It runs once per tick
// before any system mutates New.
func (m *Morph[T]) Commit() {
	m.Old = m.New
}
