package ecs

import "reflect"

// Singleton provides typed access to a single value that is not associated
// with any entity. Use this for arena bounds, the player handle and similar
// global simulation state.
type Singleton[T any] struct {
	storage *Storage
	ptr     *T
}

// NewSingleton creates an accessor for the singleton of type T. If the value
// does not exist yet it is created from initializer, or the zero value.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	s := &Singleton[T]{storage: storage}
	if !s.Exists() {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}
	s.updateCache()
	return s
}

// Get returns a pointer to the singleton, or nil if it was never added.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.updateCache()
	}
	return s.ptr
}

// Exists reports whether the singleton has been added to storage.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

func (s *Singleton[T]) updateCache() {
	if s.storage == nil {
		return
	}
	var zero T
	stored, ok := s.storage.singletons[reflect.TypeOf(zero)]
	if !ok {
		s.ptr = nil
		return
	}
	s.ptr = stored.(*T)
}
