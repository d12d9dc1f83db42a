package ecs

// Commands buffers structural changes requested by systems. The Scheduler
// flushes the buffer once every system of the frame has run.
type Commands struct {
	spawns  [][]any
	deletes []EntityId
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues an entity with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues an entity deletion.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// Defer queues fn to run after all spawns and deletes of the flush.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Flush applies deletes, then spawns, then deferred calls, and empties the
// buffer.
func (c *Commands) Flush(storage *Storage) {
	for _, id := range c.deletes {
		storage.Delete(id)
	}
	for _, components := range c.spawns {
		storage.Spawn(components...)
	}
	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.defers = c.defers[:0]
}
