package ecs

import (
	"errors"
	"fmt"
)

// DefaultCapacity bounds the entity universe when no capacity is configured.
const DefaultCapacity = 65535

var (
	// ErrCapacityExhausted is returned when every index of a registry is live.
	ErrCapacityExhausted = errors.New("ecs: entity capacity exhausted")
	// ErrOutOfRange is returned when an entity index does not fit a table.
	ErrOutOfRange = errors.New("ecs: entity index out of range")
	// ErrStale is returned when a handle is older than the entity occupying its index.
	ErrStale = errors.New("ecs: stale entity handle")
)

// Entity is a generational handle. It is a plain value and never resolves by
// itself; components are always looked up through a SparseSet, which rejects
// handles whose generation no longer matches.
type Entity struct {
	Index      uint32
	Generation uint32
}

func (e Entity) String() string {
	return fmt.Sprintf("%d:%d", e.Index, e.Generation)
}

// Registry allocates entity handles. Destroyed indices are reused in LIFO
// order and keep the generation they were bumped to on destroy.
type Registry struct {
	generations []uint32
	live        []bool
	free        []uint32
	capacity    int
}

// NewRegistry creates a registry that never hands out more than capacity
// live entities. A non-positive capacity selects DefaultCapacity.
func NewRegistry(capacity int) *Registry {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Registry{
		generations: make([]uint32, 0, min(capacity, 1024)),
		live:        make([]bool, 0, min(capacity, 1024)),
		free:        make([]uint32, 0, 256),
		capacity:    capacity,
	}
}

// Create returns a recycled index with its stored generation, or a fresh
// index with generation 0.
func (r *Registry) Create() (Entity, error) {
	if n := len(r.free); n > 0 {
		index := r.free[n-1]
		r.free = r.free[:n-1]
		r.live[index] = true
		return Entity{Index: index, Generation: r.generations[index]}, nil
	}

	if len(r.generations) >= r.capacity {
		return Entity{}, fmt.Errorf("create entity (capacity %d): %w", r.capacity, ErrCapacityExhausted)
	}

	index := uint32(len(r.generations))
	r.generations = append(r.generations, 0)
	r.live = append(r.live, true)
	return Entity{Index: index}, nil
}

// Destroy invalidates e. Only the exact live (index, generation) pair is
// destroyed; stale or unknown handles are ignored and report false.
func (r *Registry) Destroy(e Entity) bool {
	if !r.Alive(e) {
		return false
	}
	r.generations[e.Index]++
	r.live[e.Index] = false
	r.free = append(r.free, e.Index)
	return true
}

// Alive reports whether e is the current occupant of its index.
func (r *Registry) Alive(e Entity) bool {
	if int(e.Index) >= len(r.generations) {
		return false
	}
	return r.live[e.Index] && r.generations[e.Index] == e.Generation
}

// Len returns the number of live entities.
func (r *Registry) Len() int {
	return len(r.generations) - len(r.free)
}

// Capacity returns the bound on live entities.
func (r *Registry) Capacity() int {
	return r.capacity
}
