package ecs

// System is one step of a frame. Systems may declare Query and Singleton
// fields; the Scheduler wires them to its storage on Register.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame is what a system sees of the current frame.
type UpdateFrame struct {
	// DeltaTime is the time since the previous frame, in seconds.
	DeltaTime float64
	// Tick counts frames run by the scheduler, starting at 1.
	Tick     uint64
	Commands *Commands
	Storage  *Storage
}
