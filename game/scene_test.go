package game_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/korp/fixed"
	"github.com/plus3/korp/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sceneYAML = `
bounds:
  x: -500
  y: -500
  width: 1000
  height: 1000
player:
  shape: triangle
  x: 10
  y: -20
bodies:
  - shape: rectangle
    x: 100
    y: 100
  - shape: triangle
    x: -100
    y: 0
`

func TestParseScene(t *testing.T) {
	scene, err := game.ParseScene([]byte(sceneYAML))
	require.NoError(t, err)

	assert.Equal(t, game.RectAt(-500, -500, 1000, 1000), scene.Bounds)
	assert.Equal(t, game.Placement{Shape: game.ShapeTriangle, Centroid: fixed.VInt(10, -20)}, scene.Player)
	assert.Equal(t, []game.Placement{
		{Shape: game.ShapeRectangle, Centroid: fixed.VInt(100, 100)},
		{Shape: game.ShapeTriangle, Centroid: fixed.VInt(-100, 0)},
	}, scene.Bodies)

	c, err := game.NewCosmos(scene, game.Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, c.Tables().Bodies.Len())
}

func TestParseSceneRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "bounds: ["},
		{"no bounds", "player: {shape: triangle}"},
		{"unknown player shape", "bounds: {width: 10, height: 10}\nplayer: {shape: circle}"},
		{"unknown body shape", "bounds: {width: 10, height: 10}\nplayer: {shape: triangle}\nbodies: [{shape: hexagon}]"},
		{"coordinate overflow", "bounds: {width: 40000, height: 10}\nplayer: {shape: triangle}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := game.ParseScene([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sceneYAML), 0o644))

	scene, err := game.LoadScene(path)
	require.NoError(t, err)
	assert.Len(t, scene.Bodies, 2)

	_, err = game.LoadScene(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefaultScene(t *testing.T) {
	scene := game.DefaultScene()
	assert.True(t, scene.Bounds.Overlaps(game.RectAt(-1, -1, 2, 2)))
	assert.Equal(t, game.ShapeTriangle, scene.Player.Shape)
}
