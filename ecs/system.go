package ecs

// System represents a behavior that runs once per simulation tick. Systems
// hold references to the tables they operate on and may keep custom state
// between ticks. Structural changes must go through frame.Commands.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a function to the System interface.
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) {
	f(frame)
}
