package debugui

import (
	"reflect"
	"testing"

	"github.com/plus3/korp/ecs"
	"github.com/plus3/korp/fixed"
	"github.com/plus3/korp/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCosmos(t *testing.T) *game.Cosmos {
	t.Helper()
	scene := game.DefaultScene()
	scene.Bodies = []game.Placement{
		{Shape: game.ShapeRectangle, Centroid: fixed.VInt(200, 0)},
		{Shape: game.ShapeTriangle, Centroid: fixed.VInt(-300, 50)},
	}
	c, err := game.NewCosmos(scene, game.Options{Capacity: 16})
	require.NoError(t, err)
	return c
}

func TestCollectBodies(t *testing.T) {
	c := newCosmos(t)

	rows := collectBodies(nil, c.Tables())
	require.Len(t, rows, 3)

	sortBodies(rows, bodyColumnX, true)
	assert.Equal(t, fixed.VInt(-300, 50), rows[0].Centroid)
	assert.Equal(t, game.ShapeTriangle, rows[0].Shape)
	assert.Equal(t, c.Player(), rows[1].Entity)
	assert.Equal(t, game.ShapeRectangle, rows[2].Shape)
	assert.True(t, rows[1].Speed.IsZero())

	sortBodies(rows, bodyColumnEntity, false)
	assert.Equal(t, uint32(2), rows[0].Entity.Index)
}

func TestFilterBodies(t *testing.T) {
	rows := []BodyInfo{
		{Entity: ecs.Entity{Index: 1}, Shape: game.ShapeTriangle},
		{Entity: ecs.Entity{Index: 12}, Shape: game.ShapeRectangle},
		{Entity: ecs.Entity{Index: 3}, Shape: game.ShapeRectangle},
	}

	assert.Len(t, filterBodies(nil, rows, ""), 3)
	assert.Len(t, filterBodies(nil, rows, "RECT"), 2)

	got := filterBodies(nil, rows, "1")
	require.Len(t, got, 2)
	assert.Equal(t, uint32(1), got[0].Entity.Index)
	assert.Equal(t, uint32(12), got[1].Entity.Index)
}

func TestPaginate(t *testing.T) {
	rows := []int{1, 2, 3, 4, 5}

	page, pages := paginate(rows, 0, 2)
	assert.Equal(t, []int{1, 2}, page)
	assert.Equal(t, 3, pages)

	page, _ = paginate(rows, 2, 2)
	assert.Equal(t, []int{5}, page)

	page, _ = paginate(rows, 9, 2)
	assert.Equal(t, []int{5}, page, "clamped to the last page")

	page, pages = paginate([]int{}, 0, 2)
	assert.Empty(t, page)
	assert.Equal(t, 0, pages)
}

func TestBrowserDropsDestroyedSelection(t *testing.T) {
	c := newCosmos(t)
	rows := collectBodies(nil, c.Tables())
	var target ecs.Entity
	for _, r := range rows {
		if r.Entity != c.Player() {
			target = r.Entity
			break
		}
	}

	eb := NewEntityBrowserWindow(10)
	eb.Select(target)
	eb.refresh(c.Tables())
	require.NotNil(t, eb.Selected())

	require.True(t, c.Forge().Destroy(target))
	eb.refresh(c.Tables())
	assert.Nil(t, eb.Selected())
	assert.Len(t, eb.rows, 2)
}

func TestInspectEntity(t *testing.T) {
	c := newCosmos(t)

	components := inspectEntity(nil, c.Tables(), c.Player())
	require.Len(t, components, 3)
	assert.Equal(t, "Body", components[0].Name)
	assert.Equal(t, "Motion", components[1].Name)
	assert.Equal(t, "Hitbox", components[2].Name)

	motion := fieldsByName(components[1].Fields)
	assert.Equal(t, "(0.00000, 0.00000)", motion["Velocity"].Value)
	assert.Equal(t, "15.00000", motion["SpeedMaximum"].Value)

	body := fieldsByName(components[0].Fields)
	require.Contains(t, body, "New")
	current := fieldsByName(body["New"].Fields)
	assert.Equal(t, "(0.00000, -1.00000)", current["Rotation"].Value)

	shape := fieldsByName(current["Shape"].Fields)
	assert.Equal(t, "triangle", shape["Kind"].Value)

	color := fieldsByName(current["Color"].Fields)
	assert.Equal(t, "255", color["G"].Value)

	assert.Empty(t, inspectEntity(nil, c.Tables(), ecs.Entity{Index: 9}))
}

func fieldsByName(fields []inspectedField) map[string]inspectedField {
	m := make(map[string]inspectedField, len(fields))
	for _, f := range fields {
		m[f.Name] = f
	}
	return m
}

func TestReflectionCache(t *testing.T) {
	rc := NewReflectionCache()
	fields := rc.GetFields(reflect.TypeFor[game.Motion]())
	require.NotEmpty(t, fields)
	assert.Equal(t, "Velocity", fields[0].Name)
	assert.True(t, fields[0].IsStruct)
	assert.True(t, fields[0].IsStringer)

	again := rc.GetFields(reflect.TypeFor[game.Motion]())
	assert.Same(t, &fields[0], &again[0], "cached slice is reused")
}
