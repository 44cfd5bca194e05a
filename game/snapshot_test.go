package game_test

import (
	"testing"

	"github.com/plus3/korp/fixed"
	"github.com/plus3/korp/game"
	"github.com/plus3/korp/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot(t *testing.T) {
	scene := game.DefaultScene()
	scene.Bodies = []game.Placement{{Shape: game.ShapeRectangle, Centroid: fixed.VInt(200, 0)}}
	c := newCosmos(t, scene)
	c.SetOutlines(true)
	require.NoError(t, c.Update())

	var snap game.Snapshot
	c.Snapshot(&snap)
	assert.Equal(t, uint64(1), snap.Tick)
	assert.True(t, snap.Outlines)
	assert.Len(t, snap.Bodies, 2)
	assert.Len(t, snap.Entities, 2)
	assert.Len(t, snap.Hitboxes, 2)
	assert.Equal(t, scene.Bounds, snap.Bounds)

	r, err := render.New(memDevice{}, 800, 600, nil)
	require.NoError(t, err)

	live := r.Begin()
	require.NoError(t, c.Render(live, 0.25))
	want := live.Len()
	live.Discard()

	// Later ticks do not affect the copy.
	c.Queue(game.Command{Kind: game.Spawn, Shape: game.ShapeTriangle, At: fixed.VInt(-100, 0)})
	require.NoError(t, c.Update())

	frame := r.Begin()
	require.NoError(t, snap.Render(frame, game.NewSnapshotCamera(), 0.25))
	assert.Equal(t, want, frame.Len())
	require.NoError(t, frame.End())

	c.Snapshot(&snap)
	assert.Len(t, snap.Bodies, 3, "slices are reused and refilled")
}
