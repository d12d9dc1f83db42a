package main

import (
	"io"
	"runtime"
	"strings"
	"text/template"
	"time"

	"github.com/plus3/sokoban/ecs"
)

type Report struct {
	// Configuration
	Duration     time.Duration
	Seed         int64
	Maps         int
	TickDelta    time.Duration
	MoveDuration time.Duration

	// Results
	TotalTicks     int64
	TotalTime      time.Duration
	TickTime       Stats
	Resets         int
	Solved         int
	LevelChanges   int
	FinalLevel     int
	Systems        []ecs.SystemStats
	Storage        ecs.StorageStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// Stats keeps running timings so that long runs use constant memory.
type Stats struct {
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	Count int64
	Total time.Duration
}

func (s *Stats) Record(d time.Duration) {
	if s.Count == 0 {
		s.Min, s.Max = d, d
	}
	s.Min = min(s.Min, d)
	s.Max = max(s.Max, d)
	s.Total += d
	s.Count++
}

func (s *Stats) Finalize() {
	if s.Count == 0 {
		return
	}
	s.Avg = s.Total / time.Duration(s.Count)
}

const reportTemplate = `
# Sokoban Soak Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Seed:** {{.Seed}}
- **Maps:** {{.Maps}}
- **Tick Delta:** {{.TickDelta}}
- **Move Duration:** {{.MoveDuration}}

## Play
- **Total Ticks:** {{.TotalTicks}}
- **Resets Requested:** {{.Resets}}
- **Levels Solved:** {{.Solved}}
- **Level Changes:** {{.LevelChanges}}
- **Final Level:** {{.FinalLevel}}

## Performance Results
- **Total Time:** {{.TotalTime}}
- **Tick Time:**
  - **Avg:** {{.TickTime.Avg}}
  - **Min:** {{.TickTime.Min}}
  - **Max:** {{.TickTime.Max}}
{{range .Systems}}
  - {{.Name}}: avg {{.AvgDuration}}, max {{.MaxDuration}} over {{.ExecutionCount}} runs
{{- end}}

## Storage
- **Archetypes:** {{.Storage.ArchetypeCount}}
- **Live Entities:** {{.Storage.TotalEntityCount}}
- **Singletons:** {{join .Storage.SingletonTypes ", "}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

func (r *Report) Generate(w io.Writer) error {
	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"join": strings.Join,
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
