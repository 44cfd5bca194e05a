package ecs_test

import (
	"errors"
	"testing"

	"github.com/plus3/korp/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsFlushOrder(t *testing.T) {
	w := newTestWorld(16)
	victim := w.spawn(Position{X: 1}, &Velocity{})
	keeper := w.spawn(Position{X: 2}, &Velocity{})

	var log []string
	commands := &ecs.Commands{}

	commands.Defer(func() { log = append(log, "defer") })
	commands.Spawn(func(s *ecs.Storage, e ecs.Entity) error {
		log = append(log, "spawn")
		return w.positions.Insert(e, Position{X: 9})
	})
	ecs.Insert(commands, w.health, victim, Health{Current: 1})
	ecs.Insert(commands, w.health, keeper, Health{Current: 2})
	ecs.Remove(commands, w.velocity, keeper)
	commands.Destroy(victim)

	assert.Equal(t, 6, commands.Len())
	require.NoError(t, commands.Flush(w.storage))
	assert.Equal(t, 0, commands.Len())

	assert.Equal(t, []string{"spawn", "defer"}, log)
	assert.False(t, w.storage.Alive(victim))
	assert.False(t, w.health.Has(victim), "insert for destroyed entity skipped")
	assert.True(t, w.health.Has(keeper))
	assert.False(t, w.velocity.Has(keeper))
	assert.Equal(t, 2, w.positions.Len())
}

func TestCommandsSpawnFailureRollsBack(t *testing.T) {
	w := newTestWorld(4)
	boom := errors.New("boom")

	commands := &ecs.Commands{}
	commands.Spawn(func(s *ecs.Storage, e ecs.Entity) error {
		require.NoError(t, w.positions.Insert(e, Position{}))
		return boom
	})
	commands.Spawn(func(s *ecs.Storage, e ecs.Entity) error {
		return w.positions.Insert(e, Position{X: 1})
	})

	err := commands.Flush(w.storage)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, w.storage.Registry().Len())
	assert.Equal(t, 1, w.positions.Len())
}

func TestCommandsReusableAfterFlush(t *testing.T) {
	w := newTestWorld(4)
	commands := &ecs.Commands{}

	for range 3 {
		commands.Spawn(func(s *ecs.Storage, e ecs.Entity) error { return nil })
		require.NoError(t, commands.Flush(w.storage))
	}
	assert.Equal(t, 3, w.storage.Registry().Len())
}
