package ecs_test

import "github.com/plus3/sokoban/ecs"

// Grid-flavored component types shared by the tests.
type Cell struct {
	X, Z int
}

type Step struct {
	DX, DZ int
}

type Label struct {
	Value string
}

type Weight float64

type Heading int

type Solid struct{}

type Pushable struct {
	Pushes int
}

type Goal struct {
	Reached bool
}

type Follower struct {
	Leader *ecs.EntityRef
}

type Counter struct {
	N int
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Cell](registry)
	ecs.RegisterComponent[Step](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[Weight](registry)
	ecs.RegisterComponent[Heading](registry)
	ecs.RegisterComponent[Solid](registry)
	ecs.RegisterComponent[Pushable](registry)
	ecs.RegisterComponent[Goal](registry)
	ecs.RegisterComponent[Follower](registry)
	ecs.RegisterComponent[string](registry)
	ecs.RegisterComponent[int](registry)
	return registry
}
