package ecs

import "errors"

// Commands buffers structural changes requested while systems iterate
// tables. They are applied in one place by Flush at the end of a tick, so no
// table is swap-removed underneath a running iteration.
type Commands struct {
	spawns  []spawnCommand
	deletes []Entity
	adds    []func(*Storage) error
	removes []func(*Storage)
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type spawnCommand struct {
	build func(s *Storage, e Entity) error
}

// Defer queues a function to run after all other commands were applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues creation of an entity. build receives the new handle and is
// expected to insert its components.
func (c *Commands) Spawn(build func(s *Storage, e Entity) error) {
	c.spawns = append(c.spawns, spawnCommand{build: build})
}

// Destroy queues destruction of e.
func (c *Commands) Destroy(e Entity) {
	c.deletes = append(c.deletes, e)
}

// Insert queues a component write into table. The write is skipped when the
// entity is no longer alive at flush time.
func Insert[T any](c *Commands, table *SparseSet[T], e Entity, value T) {
	c.adds = append(c.adds, func(s *Storage) error {
		if !s.Alive(e) {
			return nil
		}
		return table.Insert(e, value)
	})
}

// Remove queues removal of the component of e from table.
func Remove[T any](c *Commands, table *SparseSet[T], e Entity) {
	c.removes = append(c.removes, func(*Storage) {
		table.Remove(e)
	})
}

// Len returns the number of pending commands.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies all commands to storage and resets the buffer. Destroys run
// first, then removals, insertions, spawns and finally deferred functions.
// Every command is attempted; failures are joined into the returned error.
func (c *Commands) Flush(storage *Storage) error {
	var errs []error

	for _, e := range c.deletes {
		storage.Destroy(e)
	}

	for _, remove := range c.removes {
		remove(storage)
	}

	for _, add := range c.adds {
		if err := add(storage); err != nil {
			errs = append(errs, err)
		}
	}

	for _, cmd := range c.spawns {
		e, err := storage.Spawn()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := cmd.build(storage, e); err != nil {
			storage.Destroy(e)
			errs = append(errs, err)
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	clear(c.adds)
	clear(c.removes)
	clear(c.defers)
	clear(c.spawns)
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]

	return errors.Join(errs...)
}
