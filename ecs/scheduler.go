package ecs

import (
	"context"
	"reflect"
	"strings"
	"time"
)

// SchedulerStats summarizes how the registered systems have run.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats holds timings for one system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// executable is implemented by *Query[T].
type executable interface {
	Execute()
}

type registeredSystem struct {
	system  System
	queries []executable
	stats   SystemStats
}

// Scheduler runs systems in registration order, one frame per Once call.
type Scheduler struct {
	storage *Storage
	systems []*registeredSystem
	tick    uint64
}

// NewScheduler creates a scheduler for the storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{storage: storage}
}

// Register appends a system and initializes its Query and Singleton fields.
func (s *Scheduler) Register(system System) {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systems = append(s.systems, &registeredSystem{
		system:  system,
		queries: s.initializeFields(system),
		stats: SystemStats{
			Name:        systemType.Name(),
			MinDuration: time.Duration(1<<63 - 1),
		},
	})
}

func (s *Scheduler) initializeFields(system System) []executable {
	value := reflect.ValueOf(system)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}

	var queries []executable
	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		typeName := field.Type().Name()
		if !strings.HasPrefix(typeName, "Query[") && !strings.HasPrefix(typeName, "Singleton[") {
			continue
		}

		init := field.Addr().MethodByName("Init")
		if !init.IsValid() {
			panic("Init method not found on field: " + value.Type().Field(i).Name)
		}
		init.Call([]reflect.Value{reflect.ValueOf(s.storage)})

		if q, ok := field.Addr().Interface().(executable); ok {
			queries = append(queries, q)
		}
	}
	return queries
}

// Once runs every system with dt seconds of elapsed time, then flushes the
// frame's command buffer. Queries are re-executed right before their system
// so that changes made by earlier systems are visible.
func (s *Scheduler) Once(dt float64) {
	s.tick++
	frame := &UpdateFrame{
		DeltaTime: dt,
		Tick:      s.tick,
		Commands:  newCommands(),
		Storage:   s.storage,
	}

	for _, rs := range s.systems {
		start := time.Now()
		for _, q := range rs.queries {
			q.Execute()
		}
		rs.system.Execute(frame)
		rs.stats.record(time.Since(start))
	}

	frame.Commands.Flush(s.storage)
}

func (st *SystemStats) record(d time.Duration) {
	st.ExecutionCount++
	st.LastDuration = d
	st.TotalDuration += d
	st.MinDuration = min(st.MinDuration, d)
	st.MaxDuration = max(st.MaxDuration, d)
	st.AvgDuration = st.TotalDuration / time.Duration(st.ExecutionCount)
}

// Run calls Once every interval with the measured delta until ctx is done.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			s.Once(dt)
		}
	}
}

// GetStats returns a copy of the per-system timings.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}
	for i, rs := range s.systems {
		stats.Systems[i] = rs.stats
		stats.TotalExecutions += rs.stats.ExecutionCount
	}
	return stats
}
