package game_test

import (
	"testing"

	"github.com/plus3/korp/fixed"
	"github.com/plus3/korp/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var up = fixed.V(fixed.Zero, fixed.NegOne)

func TestHitbox(t *testing.T) {
	tests := []struct {
		name string
		body game.Body
		want game.Rect
	}{
		{
			name: "triangle facing up",
			body: game.Body{
				Rotation: up,
				Shape:    game.TriangleShape(fixed.VInt(50, 0), fixed.VInt(-25, -30), fixed.VInt(-25, 30)),
			},
			want: game.RectAt(-30, -50, 60, 75),
		},
		{
			name: "triangle unrotated and offset",
			body: game.Body{
				Centroid: fixed.VInt(100, 10),
				Rotation: fixed.V(fixed.One, fixed.Zero),
				Shape:    game.TriangleShape(fixed.VInt(50, 0), fixed.VInt(-25, -30), fixed.VInt(-25, 30)),
			},
			want: game.RectAt(75, -20, 75, 60),
		},
		{
			name: "rectangle quarter turn",
			body: game.Body{
				Rotation: up,
				Shape:    game.RectangleShape(fixed.FromInt16(40), fixed.FromInt16(60)),
			},
			want: game.RectAt(-30, -20, 60, 40),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.body.Hitbox())
		})
	}
}

func TestRect(t *testing.T) {
	a := game.RectAt(0, 0, 10, 10)

	assert.True(t, a.Overlaps(game.RectAt(5, 5, 10, 10)))
	assert.True(t, a.Overlaps(game.RectAt(-5, -5, 20, 20)))
	assert.False(t, a.Overlaps(game.RectAt(10, 0, 5, 5)), "touching edges do not overlap")
	assert.False(t, a.Overlaps(game.RectAt(0, 20, 5, 5)))

	assert.Equal(t, game.RectAt(-5, 0, 15, 30), a.Union(game.RectAt(-5, 20, 5, 10)))

	r := game.RectAt(1, 2, 3, 4).Render()
	assert.Equal(t, [4]float32{1, 2, 3, 4}, [4]float32{r.X, r.Y, r.Width, r.Height})
}

func TestShapeKind(t *testing.T) {
	for _, kind := range []game.ShapeKind{game.ShapeTriangle, game.ShapeRectangle} {
		parsed, err := game.ParseShapeKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}
	_, err := game.ParseShapeKind("circle")
	assert.Error(t, err)
}
