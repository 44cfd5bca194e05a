package game

import (
	"fmt"

	"github.com/plus3/korp/ecs"
	"github.com/plus3/korp/engine"
	"github.com/plus3/korp/fixed"
	"github.com/plus3/korp/render"
)

// Tables are the component tables of the cosmos. Every table is registered
// with the storage so destroying an entity purges all of them.
type Tables struct {
	Bodies   *ecs.SparseSet[engine.Morph[Body]]
	Motions  *ecs.SparseSet[Motion]
	Hitboxes *ecs.SparseSet[engine.Morph[Rect]]
}

func NewTables(storage *ecs.Storage) Tables {
	return Tables{
		Bodies:   ecs.RegisterTable[engine.Morph[Body]](storage, "bodies"),
		Motions:  ecs.RegisterTable[Motion](storage, "motions"),
		Hitboxes: ecs.RegisterTable[engine.Morph[Rect]](storage, "hitboxes"),
	}
}

// Forge creates and destroys ships.
type Forge struct {
	storage *ecs.Storage
	tables  Tables
}

func NewForge(storage *ecs.Storage, tables Tables) *Forge {
	return &Forge{storage: storage, tables: tables}
}

// Spawn creates a ship of the given kind at centroid.
func (f *Forge) Spawn(kind ShapeKind, centroid fixed.Vec2) (ecs.Entity, error) {
	e, err := f.storage.Spawn()
	if err != nil {
		return ecs.Entity{}, fmt.Errorf("spawn %s: %w", kind, err)
	}
	if err := f.Build(e, kind, centroid); err != nil {
		f.storage.Destroy(e)
		return ecs.Entity{}, err
	}
	return e, nil
}

func (f *Forge) Triangle(centroid fixed.Vec2) (ecs.Entity, error) {
	return f.Spawn(ShapeTriangle, centroid)
}

func (f *Forge) Rectangle(centroid fixed.Vec2) (ecs.Entity, error) {
	return f.Spawn(ShapeRectangle, centroid)
}

// Build attaches the components of a ship to an existing entity.
func (f *Forge) Build(e ecs.Entity, kind ShapeKind, centroid fixed.Vec2) error {
	body := Body{
		Centroid: centroid,
		Rotation: fixed.V(fixed.Zero, fixed.NegOne),
		Color:    render.Green,
	}
	switch kind {
	case ShapeTriangle:
		body.Shape = TriangleShape(fixed.VInt(50, 0), fixed.VInt(-25, -30), fixed.VInt(-25, 30))
	case ShapeRectangle:
		body.Shape = RectangleShape(fixed.FromInt16(40), fixed.FromInt16(60))
	default:
		return fmt.Errorf("build %s: unknown shape", kind)
	}

	if err := f.tables.Bodies.Insert(e, engine.MorphOf(body)); err != nil {
		return fmt.Errorf("insert body: %w", err)
	}
	if err := f.tables.Motions.Insert(e, shipMotion()); err != nil {
		return fmt.Errorf("insert motion: %w", err)
	}
	if err := f.tables.Hitboxes.Insert(e, engine.MorphOf(body.Hitbox())); err != nil {
		return fmt.Errorf("insert hitbox: %w", err)
	}
	return nil
}

// Destroy removes e and all its components. It reports false for a stale
// entity.
func (f *Forge) Destroy(e ecs.Entity) bool {
	return f.storage.Destroy(e)
}

func shipMotion() Motion {
	return Motion{
		SpeedMaximum:         fixed.FromInt16(15),
		SpeedMinimum:         fixed.FromInt16(-10),
		Acceleration:         fixed.New(1, fixed.PointOne*3),
		RotationSpeedMaximum: fixed.FromInt16(16),
		RotationSpeedMinimum: fixed.FromInt16(-16),
		RotationAcceleration: fixed.One,
	}
}
