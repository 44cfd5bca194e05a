package ecs

import (
	"fmt"
	"reflect"
	"sort"
)

// Table is the type-erased view of a SparseSet that Storage keeps in order to
// purge destroyed entities and report statistics.
type Table interface {
	Remove(e Entity) bool
	Has(e Entity) bool
	Len() int
	Capacity() int
	Clear()
}

type namedTable struct {
	name  string
	table Table
}

// Storage owns the entity registry and every component table registered with
// it. Destroying an entity through Storage removes it from all tables.
type Storage struct {
	registry   *Registry
	tables     []namedTable
	singletons map[reflect.Type]any
}

// NewStorage creates a storage whose registry and tables address capacity
// entity indices. A non-positive capacity selects DefaultCapacity.
func NewStorage(capacity int) *Storage {
	return &Storage{
		registry:   NewRegistry(capacity),
		singletons: make(map[reflect.Type]any),
	}
}

// RegisterTable creates a component table sized to the storage capacity and
// registers it under name.
func RegisterTable[T any](s *Storage, name string) *SparseSet[T] {
	table := NewSparseSet[T](s.registry.Capacity())
	s.Register(name, table)
	return table
}

// Register adds an existing table. Tables must address at least the storage
// capacity, otherwise inserting a valid entity could fail.
func (s *Storage) Register(name string, table Table) {
	if table.Capacity() < s.registry.Capacity() {
		panic(fmt.Sprintf("ecs: table %q capacity %d below storage capacity %d", name, table.Capacity(), s.registry.Capacity()))
	}
	s.tables = append(s.tables, namedTable{name: name, table: table})
}

// Registry returns the entity allocator.
func (s *Storage) Registry() *Registry {
	return s.registry
}

// Spawn allocates a new entity.
func (s *Storage) Spawn() (Entity, error) {
	return s.registry.Create()
}

// Destroy removes e from every registered table and invalidates the handle.
// Stale handles are ignored.
func (s *Storage) Destroy(e Entity) bool {
	if !s.registry.Alive(e) {
		return false
	}
	for _, t := range s.tables {
		t.table.Remove(e)
	}
	return s.registry.Destroy(e)
}

// Alive reports whether e is live.
func (s *Storage) Alive(e Entity) bool {
	return s.registry.Alive(e)
}

// DestroyAll destroys every live entity and clears all tables.
func (s *Storage) DestroyAll() {
	for _, t := range s.tables {
		t.table.Clear()
	}
	for index := range s.registry.generations {
		e := Entity{Index: uint32(index), Generation: s.registry.generations[index]}
		s.registry.Destroy(e)
	}
}

// AddSingleton stores a value that is not associated with any entity,
// replacing a previous value of the same type.
func (s *Storage) AddSingleton(value any) {
	t := reflect.TypeOf(value)
	ptr := reflect.New(t)
	ptr.Elem().Set(reflect.ValueOf(value))
	s.singletons[t] = ptr.Interface()
}

// ReadSingleton points target at the stored singleton of its element type.
// target must be a pointer to a pointer, e.g. **Arena.
func (s *Storage) ReadSingleton(target any) bool {
	tv := reflect.ValueOf(target)
	if tv.Kind() != reflect.Pointer || tv.Elem().Kind() != reflect.Pointer {
		return false
	}
	stored, ok := s.singletons[tv.Elem().Type().Elem()]
	if !ok {
		return false
	}
	tv.Elem().Set(reflect.ValueOf(stored))
	return true
}

// TableStats describes one registered table.
type TableStats struct {
	Name     string
	Len      int
	Capacity int
}

// StorageStats provides a snapshot of storage occupancy.
type StorageStats struct {
	LiveEntities   int
	Capacity       int
	FreeIndices    int
	SingletonCount int
	SingletonTypes []string
	Tables         []TableStats
}

// CollectStats gathers occupancy statistics for debugging and profiling.
func (s *Storage) CollectStats() *StorageStats {
	stats := &StorageStats{
		LiveEntities:   s.registry.Len(),
		Capacity:       s.registry.Capacity(),
		FreeIndices:    len(s.registry.free),
		SingletonCount: len(s.singletons),
		Tables:         make([]TableStats, 0, len(s.tables)),
	}

	for _, t := range s.tables {
		stats.Tables = append(stats.Tables, TableStats{
			Name:     t.name,
			Len:      t.table.Len(),
			Capacity: t.table.Capacity(),
		})
	}

	for t := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	sort.Strings(stats.SingletonTypes)

	return stats
}
