package ecs

import (
	"fmt"
	"iter"
	"math"
)

const tombstone = math.MaxUint32

// SparseSet is a component table keyed by Entity.
//
// Values live contiguously in a dense slice; the sparse slice maps an entity
// index to its dense slot. For every dense slot i the invariant
// sparse[entities[i].Index] == i holds. Removal swaps the last element into
// the vacated slot, so iteration order is not stable across removals.
//
// Pointers returned by Get and All are only valid until the next Insert or
// Remove on the same set.
type SparseSet[T any] struct {
	sparse   []uint32
	dense    []T
	entities []Entity
}

// NewSparseSet creates a set addressing entity indices in [0, capacity).
func NewSparseSet[T any](capacity int) *SparseSet[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	sparse := make([]uint32, capacity)
	for i := range sparse {
		sparse[i] = tombstone
	}
	return &SparseSet[T]{sparse: sparse}
}

// Insert stores value for e. When the index already holds a value of the
// same generation it is replaced in place. A newer generation takes over the
// slot of a leftover older one; an older generation is rejected with ErrStale.
func (s *SparseSet[T]) Insert(e Entity, value T) error {
	if int(e.Index) >= len(s.sparse) {
		return fmt.Errorf("insert %s into table of capacity %d: %w", e, len(s.sparse), ErrOutOfRange)
	}

	if slot := s.sparse[e.Index]; slot != tombstone {
		if stored := s.entities[slot]; !newerOrSame(e.Generation, stored.Generation) {
			return fmt.Errorf("insert %s over %s: %w", e, stored, ErrStale)
		}
		s.dense[slot] = value
		s.entities[slot] = e
		return nil
	}

	s.sparse[e.Index] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	s.entities = append(s.entities, e)
	return nil
}

// newerOrSame compares generations with wraparound.
func newerOrSame(gen, stored uint32) bool {
	return int32(gen-stored) >= 0
}

// Remove deletes the value of e. It reports false when e has no value or the
// stored generation differs.
func (s *SparseSet[T]) Remove(e Entity) bool {
	slot, ok := s.slot(e)
	if !ok {
		return false
	}

	last := uint32(len(s.dense) - 1)
	if slot != last {
		moved := s.entities[last]
		s.dense[slot] = s.dense[last]
		s.entities[slot] = moved
		s.sparse[moved.Index] = slot
	}

	var zero T
	s.dense[last] = zero
	s.dense = s.dense[:last]
	s.entities = s.entities[:last]
	s.sparse[e.Index] = tombstone
	return true
}

// Get returns the value of e. Stale and foreign handles report false.
func (s *SparseSet[T]) Get(e Entity) (*T, bool) {
	slot, ok := s.slot(e)
	if !ok {
		return nil, false
	}
	return &s.dense[slot], true
}

// Has reports whether e has a value.
func (s *SparseSet[T]) Has(e Entity) bool {
	_, ok := s.slot(e)
	return ok
}

func (s *SparseSet[T]) slot(e Entity) (uint32, bool) {
	if int(e.Index) >= len(s.sparse) {
		return 0, false
	}
	slot := s.sparse[e.Index]
	if slot == tombstone {
		return 0, false
	}
	if s.entities[slot].Generation != e.Generation {
		return 0, false
	}
	return slot, true
}

// Len returns the number of stored values.
func (s *SparseSet[T]) Len() int {
	return len(s.dense)
}

// Capacity returns the size of the addressable index space.
func (s *SparseSet[T]) Capacity() int {
	return len(s.sparse)
}

// Entities returns the owners of the stored values in dense order. The slice
// is owned by the set.
func (s *SparseSet[T]) Entities() []Entity {
	return s.entities
}

// All iterates entities and values in dense order. The set must not be
// structurally modified during iteration; defer such changes through Commands.
func (s *SparseSet[T]) All() iter.Seq2[Entity, *T] {
	return func(yield func(Entity, *T) bool) {
		for i := range s.dense {
			if !yield(s.entities[i], &s.dense[i]) {
				return
			}
		}
	}
}

// Clear removes every value while keeping the allocated capacity.
func (s *SparseSet[T]) Clear() {
	for _, e := range s.entities {
		s.sparse[e.Index] = tombstone
	}
	clear(s.dense)
	s.dense = s.dense[:0]
	s.entities = s.entities[:0]
}
