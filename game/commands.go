package game

import (
	"fmt"

	"github.com/plus3/korp/ecs"
	"github.com/plus3/korp/fixed"
)

type CommandKind uint8

const (
	Accelerate CommandKind = iota + 1
	Decelerate
	TurnLeft
	TurnRight
	Spawn
)

func (k CommandKind) String() string {
	switch k {
	case Accelerate:
		return "accelerate"
	case Decelerate:
		return "decelerate"
	case TurnLeft:
		return "turn-left"
	case TurnRight:
		return "turn-right"
	case Spawn:
		return "spawn"
	}
	return fmt.Sprintf("CommandKind(%d)", uint8(k))
}

// Command is an intent gathered from input and applied at the next tick.
// Spawn commands use Shape and At; the others act on Entity.
type Command struct {
	Kind   CommandKind
	Entity ecs.Entity
	Shape  ShapeKind
	At     fixed.Vec2
}

// apply executes cmd. Commands on dead entities are ignored. Spawns are
// queued on frame so no table grows during the tick's systems.
func (cmd Command) apply(frame *ecs.UpdateFrame, tables Tables, forge *Forge) {
	switch cmd.Kind {
	case Accelerate, Decelerate:
		motion, ok := tables.Motions.Get(cmd.Entity)
		if !ok {
			return
		}
		body, ok := tables.Bodies.Get(cmd.Entity)
		if !ok {
			return
		}
		thrust := body.New.Rotation.Scale(motion.Acceleration)
		if cmd.Kind == Accelerate {
			motion.Velocity = motion.Velocity.Add(thrust)
		} else {
			motion.Velocity = motion.Velocity.Sub(thrust)
		}

	case TurnLeft:
		if motion, ok := tables.Motions.Get(cmd.Entity); ok {
			motion.RotationSpeed = motion.RotationSpeed.Sub(motion.RotationAcceleration)
		}

	case TurnRight:
		if motion, ok := tables.Motions.Get(cmd.Entity); ok {
			motion.RotationSpeed = motion.RotationSpeed.Add(motion.RotationAcceleration)
		}

	case Spawn:
		shape, at := cmd.Shape, cmd.At
		frame.Commands.Spawn(func(_ *ecs.Storage, e ecs.Entity) error {
			return forge.Build(e, shape, at)
		})
	}
}
