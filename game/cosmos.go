package game

import (
	"fmt"
	"iter"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/korp/ecs"
	"github.com/plus3/korp/engine"
	"github.com/plus3/korp/fixed"
	"github.com/plus3/korp/render"
	"github.com/plus3/korp/vmath"
	"go.uber.org/zap"
)

const (
	cameraWidth  = 1000
	cameraHeight = 1000
)

type KeyBindings struct {
	Up, Down, Left, Right ebiten.Key
	Toggle                ebiten.Key
	Triangle, Rectangle   ebiten.Key
}

func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Up:        ebiten.KeyArrowUp,
		Down:      ebiten.KeyArrowDown,
		Left:      ebiten.KeyArrowLeft,
		Right:     ebiten.KeyArrowRight,
		Toggle:    ebiten.KeyF1,
		Triangle:  ebiten.KeyDigit1,
		Rectangle: ebiten.KeyDigit2,
	}
}

type Options struct {
	Capacity int
	Bindings *KeyBindings
	Logger   *zap.Logger
}

// Cosmos is the simulated world. It implements engine.Core.
type Cosmos struct {
	logger    *zap.Logger
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	tables    Tables
	forge     *Forge
	scene     *ecs.Singleton[Scene]
	bindings  KeyBindings

	player   ecs.Entity
	commands []Command

	camera *render.Camera
	target engine.Morph[vmath.Vec2]
	toggle bool

	width, height int
}

var _ engine.Core = (*Cosmos)(nil)

// NewCosmos builds a cosmos populated from scene.
func NewCosmos(scene *Scene, opts Options) (*Cosmos, error) {
	if opts.Capacity <= 0 {
		opts.Capacity = ecs.DefaultCapacity
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	bindings := DefaultKeyBindings()
	if opts.Bindings != nil {
		bindings = *opts.Bindings
	}

	storage := ecs.NewStorage(opts.Capacity)
	tables := NewTables(storage)

	c := &Cosmos{
		logger:    opts.Logger,
		storage:   storage,
		scheduler: ecs.NewScheduler(storage),
		tables:    tables,
		forge:     NewForge(storage, tables),
		scene:     ecs.NewSingleton(storage, *scene),
		bindings:  bindings,
		camera:    render.NewCamera(cameraWidth, cameraHeight),
		width:     cameraWidth,
		height:    cameraHeight,
	}

	var err error
	if c.player, err = c.forge.Spawn(scene.Player.Shape, scene.Player.Centroid); err != nil {
		return nil, fmt.Errorf("player: %w", err)
	}
	for i, p := range scene.Bodies {
		if _, err := c.forge.Spawn(p.Shape, p.Centroid); err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
	}
	c.target = engine.MorphOf(vmath.FromFixed(scene.Player.Centroid))
	c.camera.Reposition(c.target.New)

	c.scheduler.Register(&MorphSystem{Tables: tables})
	c.scheduler.Register(&CommandSystem{Tables: tables, Forge: c.forge, Queue: &c.commands})
	c.scheduler.Register(&MotionSystem{Tables: tables})
	c.scheduler.Register(&HitboxSystem{Tables: tables})
	c.scheduler.Register(&OutOfBoundsSystem{Tables: tables, Scene: c.scene, Logger: c.logger})
	c.scheduler.Register(&CameraSystem{Tables: tables, Player: &c.player, Target: &c.target})

	c.logger.Info("cosmos created",
		zap.Stringer("player", c.player),
		zap.Int("bodies", tables.Bodies.Len()),
		zap.Int("capacity", opts.Capacity))
	return c, nil
}

func (c *Cosmos) Storage() *ecs.Storage     { return c.storage }
func (c *Cosmos) Scheduler() *ecs.Scheduler { return c.scheduler }
func (c *Cosmos) Tables() Tables            { return c.tables }
func (c *Cosmos) Forge() *Forge             { return c.forge }
func (c *Cosmos) Player() ecs.Entity        { return c.player }
func (c *Cosmos) Camera() *render.Camera    { return c.camera }

// Outlines reports whether bodies are drawn as outlines with their hitboxes.
func (c *Cosmos) Outlines() bool { return c.toggle }

func (c *Cosmos) SetOutlines(outlines bool) { c.toggle = outlines }

// Queue adds a command for the next tick.
func (c *Cosmos) Queue(cmd Command) {
	c.commands = append(c.commands, cmd)
}

func (c *Cosmos) Input(in *engine.Input) {
	b := &c.bindings

	if in.Down(b.Up) {
		c.Queue(Command{Kind: Accelerate, Entity: c.player})
	}
	if in.Down(b.Down) {
		c.Queue(Command{Kind: Decelerate, Entity: c.player})
	}
	if in.Down(b.Left) {
		c.Queue(Command{Kind: TurnLeft, Entity: c.player})
	}
	if in.Down(b.Right) {
		c.Queue(Command{Kind: TurnRight, Entity: c.player})
	}
	if in.Pressed(b.Toggle) {
		c.toggle = !c.toggle
	}

	if in.Pressed(b.Triangle) {
		c.Queue(Command{Kind: Spawn, Shape: ShapeTriangle, At: c.mouseWorld(in)})
	}
	if in.Pressed(b.Rectangle) {
		c.Queue(Command{Kind: Spawn, Shape: ShapeRectangle, At: c.mouseWorld(in)})
	}
}

// mouseWorld quantizes the cursor into world coordinates. This is the only
// float to fixed conversion; the simulation sees the fixed value.
func (c *Cosmos) mouseWorld(in *engine.Input) fixed.Vec2 {
	p := c.camera.ScreenToWorld(in.Mouse(), float32(c.width), float32(c.height))
	return fixed.V(fixed.FromFloat32(p.X), fixed.FromFloat32(p.Y))
}

func (c *Cosmos) Update() error {
	if err := c.scheduler.Once(); err != nil {
		return fmt.Errorf("tick %d: %w", c.scheduler.Tick(), err)
	}
	return nil
}

func (c *Cosmos) Resize(width, height int) {
	c.width, c.height = width, height
}

func (c *Cosmos) Render(frame *render.Frame, alpha float32) error {
	return renderScene(frame, c.camera, c.target, c.scene.Get().Bounds, c.toggle,
		c.tables.Bodies.All(), c.tables.Hitboxes.All(), alpha)
}

// renderScene draws the world through camera, which follows target, then the
// HUD in screen space.
func renderScene(
	frame *render.Frame,
	camera *render.Camera,
	target engine.Morph[vmath.Vec2],
	bounds Rect,
	outlines bool,
	bodies iter.Seq2[ecs.Entity, *engine.Morph[Body]],
	hitboxes iter.Seq2[ecs.Entity, *engine.Morph[Rect]],
	alpha float32,
) error {
	camera.Reposition(vmath.LerpVec2(target.Old, target.New, alpha))

	var err error
	frame.WithScope(camera, func(f *render.Frame) {
		err = renderWorld(f, bounds, outlines, bodies, hitboxes, alpha)
	})
	if err != nil {
		return err
	}

	hud := render.RectangleAt(800, 120, vmath.V(400, 540))
	frame.DrawRectangleLines(hud, vmath.V(1, 0), hud.Center(), render.Green)
	return nil
}

func renderWorld(
	f *render.Frame,
	bounds Rect,
	outlines bool,
	bodies iter.Seq2[ecs.Entity, *engine.Morph[Body]],
	hitboxes iter.Seq2[ecs.Entity, *engine.Morph[Rect]],
	alpha float32,
) error {
	box := bounds.Render()
	f.DrawRectangleLines(box, vmath.V(1, 0), box.Center(), render.Red)

	for e, body := range bodies {
		if err := drawBody(f, body, outlines, alpha); err != nil {
			return fmt.Errorf("entity %s: %w", e, err)
		}
	}

	if !outlines {
		return nil
	}
	for _, hitbox := range hitboxes {
		box := render.LerpRectangle(hitbox.Old.Render(), hitbox.New.Render(), alpha)
		f.DrawRectangleLines(box, vmath.V(1, 0), box.Center(), render.Blue)
	}
	return nil
}

// drawBody draws body interpolated between its two ticks.
func drawBody(f *render.Frame, body *engine.Morph[Body], outline bool, alpha float32) error {
	old, cur := &body.Old, &body.New
	if old.Shape.Kind != cur.Shape.Kind {
		return fmt.Errorf("%s to %s: %w", old.Shape.Kind, cur.Shape.Kind, ErrShapeMismatch)
	}

	lerp := func(a, b fixed.Vec2) vmath.Vec2 {
		return vmath.LerpVec2(vmath.FromFixed(a), vmath.FromFixed(b), alpha)
	}

	centroid := lerp(old.Centroid, cur.Centroid)
	rotation := vmath.FromAngle(vmath.LerpAngle(
		vmath.FromFixed(old.Rotation).Angle(),
		vmath.FromFixed(cur.Rotation).Angle(),
		alpha,
	))
	color := render.LerpColor(old.Color, cur.Color, alpha)

	switch cur.Shape.Kind {
	case ShapeTriangle:
		shape := render.TriangleAt(
			lerp(old.Shape.Top, cur.Shape.Top),
			lerp(old.Shape.Left, cur.Shape.Left),
			lerp(old.Shape.Right, cur.Shape.Right),
			centroid,
		)
		if outline {
			f.DrawTriangleLines(shape, rotation, centroid, color)
		} else {
			f.DrawTriangleFilled(shape, rotation, centroid, color)
		}

	case ShapeRectangle:
		shape := render.RectangleAt(
			vmath.Lerp(old.Shape.Width.Float32(), cur.Shape.Width.Float32(), alpha),
			vmath.Lerp(old.Shape.Height.Float32(), cur.Shape.Height.Float32(), alpha),
			centroid,
		)
		if outline {
			f.DrawRectangleLines(shape, rotation, centroid, color)
		} else {
			f.DrawRectangleFilled(shape, rotation, centroid, color)
		}
	}
	return nil
}
