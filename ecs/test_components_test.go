package ecs_test

import "github.com/plus3/korp/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Health struct {
	Current int
	Max     int
}

type testWorld struct {
	storage   *ecs.Storage
	positions *ecs.SparseSet[Position]
	velocity  *ecs.SparseSet[Velocity]
	health    *ecs.SparseSet[Health]
}

func newTestWorld(capacity int) *testWorld {
	storage := ecs.NewStorage(capacity)
	return &testWorld{
		storage:   storage,
		positions: ecs.RegisterTable[Position](storage, "position"),
		velocity:  ecs.RegisterTable[Velocity](storage, "velocity"),
		health:    ecs.RegisterTable[Health](storage, "health"),
	}
}

func (w *testWorld) spawn(p Position, v *Velocity) ecs.Entity {
	e, err := w.storage.Spawn()
	if err != nil {
		panic(err)
	}
	if err := w.positions.Insert(e, p); err != nil {
		panic(err)
	}
	if v != nil {
		if err := w.velocity.Insert(e, *v); err != nil {
			panic(err)
		}
	}
	return e
}
