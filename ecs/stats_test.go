package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wall struct{}

type crate struct {
	Index int
}

type session struct {
	Level int
}

func TestCollectStats(t *testing.T) {
	registry := NewComponentRegistry()
	RegisterComponent[int](registry)
	RegisterComponent[wall](registry)
	RegisterComponent[crate](registry)
	storage := NewStorage(registry)

	stats := storage.CollectStats()
	assert.Zero(t, stats.ArchetypeCount)
	assert.Zero(t, stats.TotalEntityCount)
	assert.Zero(t, stats.SingletonCount)

	storage.Spawn(1, wall{})
	storage.Spawn(2, wall{})
	gone := storage.Spawn(3, crate{Index: 0})
	storage.Delete(gone)
	NewSingleton[session](storage, session{Level: 1})
	NewSingleton[string](storage, "title")

	stats = storage.CollectStats()
	assert.Equal(t, 2, stats.ArchetypeCount, "empty archetypes still count")
	assert.Equal(t, 2, stats.TotalEntityCount)
	assert.Equal(t, 2, stats.SingletonCount)
	assert.Equal(t, []string{"ecs.session", "string"}, stats.SingletonTypes)

	require.Len(t, stats.ArchetypeBreakdown, 2)
	assert.Less(t, stats.ArchetypeBreakdown[0].ID, stats.ArchetypeBreakdown[1].ID)

	counts := map[string]int{}
	for _, a := range stats.ArchetypeBreakdown {
		require.Len(t, a.ComponentTypes, 2)
		counts[a.ComponentTypes[0]] = a.EntityCount
	}
	assert.Equal(t, map[string]int{"ecs.crate": 0, "ecs.wall": 2}, counts)
}
