package ecs_test

import (
	"testing"

	"github.com/plus3/sokoban/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Turn struct {
	Number int
}

func TestSingleton(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	turn := ecs.NewSingleton[Turn](storage, Turn{Number: 3})
	require.True(t, turn.Exists())
	assert.Equal(t, 3, turn.Get().Number)

	turn.Get().Number++
	again := ecs.NewSingleton[Turn](storage, Turn{Number: 100})
	assert.Equal(t, 4, again.Get().Number, "an existing singleton is not replaced")
	assert.Same(t, turn.Get(), again.Get())

	var read *Turn
	require.True(t, storage.ReadSingleton(&read))
	assert.Same(t, turn.Get(), read)
}

func TestAddSingletonKeepsAddress(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	turn := ecs.NewSingleton[Turn](storage)
	ptr := turn.Get()

	storage.AddSingleton(Turn{Number: 9})
	assert.Same(t, ptr, turn.Get())
	assert.Equal(t, 9, ptr.Number)

	storage.AddSingleton(&Turn{Number: 10})
	assert.Equal(t, 10, ptr.Number)
}

func TestSingletonMissing(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var read *Turn
	assert.False(t, storage.ReadSingleton(&read))
	assert.Nil(t, read)
	assert.Panics(t, func() { storage.ReadSingleton(read) })

	var unbound ecs.Singleton[Turn]
	assert.False(t, unbound.Exists())
	unbound.Init(storage)
	assert.False(t, unbound.Exists())

	storage.AddSingleton(Turn{Number: 1})
	assert.True(t, unbound.Exists(), "accessors pick up singletons added later")
}
