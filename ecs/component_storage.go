package ecs

import (
	"iter"
	"reflect"
)

// componentColumn is the type-erased view of one component column inside an
// archetype.
type componentColumn interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
	Compact() map[int]int
	Iter() iter.Seq[int]
}

// ComponentRegistry maps component types to column factories. Storages built
// from different registries do not share anything.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentColumn
}

// NewComponentRegistry returns an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentColumn),
	}
}

// RegisterComponent makes T usable as an entity component. Spawning an entity
// with an unregistered type panics.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() componentColumn {
		return &column[T]{}
	}
}

// Registered reports whether the type has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) newColumn(t reflect.Type) componentColumn {
	factory := r.factories[t]
	if factory == nil {
		panic("component type " + t.String() + " not registered")
	}
	return factory()
}

const blockSize = 64

// column stores values of T in fixed-size blocks so that pointers handed out
// by Get stay valid while the block exists. Freed slots are reused LIFO.
type column[T any] struct {
	blocks [][blockSize]T
	filled [][blockSize]bool
	free   []int
	next   int
}

func (c *column[T]) locate(index int) (block, slot int, ok bool) {
	if index < 0 {
		return 0, 0, false
	}
	block, slot = index/blockSize, index%blockSize
	return block, slot, block < len(c.blocks)
}

func (c *column[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	var index int
	if n := len(c.free); n > 0 {
		index = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		index = c.next
		c.next++
		if index/blockSize >= len(c.blocks) {
			c.blocks = append(c.blocks, [blockSize]T{})
			c.filled = append(c.filled, [blockSize]bool{})
		}
	}

	block, slot := index/blockSize, index%blockSize
	c.blocks[block][slot] = value
	c.filled[block][slot] = true
	return index
}

func (c *column[T]) Get(index int) any {
	block, slot, ok := c.locate(index)
	if !ok || !c.filled[block][slot] {
		return nil
	}
	return &c.blocks[block][slot]
}

func (c *column[T]) Delete(index int) {
	block, slot, ok := c.locate(index)
	if !ok || !c.filled[block][slot] {
		return
	}
	var zero T
	c.blocks[block][slot] = zero
	c.filled[block][slot] = false
	c.free = append(c.free, index)
}

func (c *column[T]) Has(index int) bool {
	block, slot, ok := c.locate(index)
	return ok && c.filled[block][slot]
}

func (c *column[T]) Len() int {
	return c.next - len(c.free)
}

// Compact moves live values to the front and returns old index -> new index.
func (c *column[T]) Compact() map[int]int {
	moved := make(map[int]int)
	live := c.Len()

	blocks := make([][blockSize]T, max(1, (live+blockSize-1)/blockSize))
	filled := make([][blockSize]bool, len(blocks))

	write := 0
	for read := range c.Iter() {
		moved[read] = write
		blocks[write/blockSize][write%blockSize] = c.blocks[read/blockSize][read%blockSize]
		filled[write/blockSize][write%blockSize] = true
		write++
	}

	c.blocks = blocks
	c.filled = filled
	c.free = nil
	c.next = write
	return moved
}

func (c *column[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < c.next; i++ {
			block, slot := i/blockSize, i%blockSize
			if block >= len(c.filled) || !c.filled[block][slot] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
