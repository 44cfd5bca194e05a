package ecs

// UpdateFrame is handed to every system during one simulation tick.
type UpdateFrame struct {
	Tick     uint64
	Commands *Commands
	Storage  *Storage
}
