package ecs_test

import (
	"fmt"

	"github.com/plus3/korp/ecs"
)

// ExampleSparseSet shows that a destroyed entity's handle stops resolving
// once its index has been reused.
func ExampleSparseSet() {
	storage := ecs.NewStorage(16)
	names := ecs.RegisterTable[string](storage, "name")

	first, _ := storage.Spawn()
	_ = names.Insert(first, "first")
	storage.Destroy(first)

	second, _ := storage.Spawn()
	_ = names.Insert(second, "second")

	_, ok := names.Get(first)
	name, _ := names.Get(second)
	fmt.Println(first, second, ok, *name)

	// Output:
	// 0:0 0:1 false second
}

// ExampleScheduler demonstrates a tick with a system that queues destruction
// through the frame's command buffer.
func ExampleScheduler() {
	storage := ecs.NewStorage(16)
	health := ecs.RegisterTable[Health](storage, "health")

	for _, hp := range []int{0, 50, 100} {
		e, _ := storage.Spawn()
		_ = health.Insert(e, Health{Current: hp, Max: 100})
	}

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&CleanupSystem{Health: health})

	if err := scheduler.Once(); err != nil {
		fmt.Println(err)
	}

	fmt.Printf("Remaining entities: %d\n", storage.Registry().Len())

	// Output:
	// Remaining entities: 2
}
