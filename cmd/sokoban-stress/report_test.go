package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/plus3/sokoban/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	var s Stats
	for _, d := range []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond} {
		s.Record(d)
	}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)
	assert.Equal(t, int64(3), s.Count)
	assert.Equal(t, 6*time.Millisecond, s.Total)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportGenerate(t *testing.T) {
	r := &Report{
		Duration:   time.Second,
		Seed:       42,
		Maps:       3,
		TotalTicks: 600,
		Solved:     2,
		Systems:    []ecs.SystemStats{{Name: "MoveSystem", ExecutionCount: 600}},
		Storage: ecs.StorageStats{
			ArchetypeCount: 5,
			SingletonTypes: []string{"game.PendingIntent", "game.Session"},
		},
		GCPauseMetrics: true,
	}
	r.MemStatsStart.HeapAlloc = 10
	r.MemStatsEnd.HeapAlloc = 4

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))
	out := buf.String()

	assert.Contains(t, out, "**Seed:** 42")
	assert.Contains(t, out, "**Levels Solved:** 2")
	assert.Contains(t, out, "MoveSystem: avg 0s, max 0s over 600 runs")
	assert.Contains(t, out, "game.PendingIntent, game.Session")
	assert.Contains(t, out, "delta: -6")
	assert.Contains(t, out, "GC Pause Durations")
}

func TestLoadMapsDefault(t *testing.T) {
	store, err := loadMaps("")
	require.NoError(t, err)
	assert.Equal(t, 3, store.Len())
}
