package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/sokoban/ecs"
	"github.com/plus3/sokoban/geom"
)

// Kind identifies what an entity is for renderers and observers.
type Kind uint8

const (
	KindWall Kind = iota + 1
	KindBox
	KindTarget
	KindFloor
	KindPlayer
)

func (k Kind) String() string {
	switch k {
	case KindWall:
		return "wall"
	case KindBox:
		return "box"
	case KindTarget:
		return "target"
	case KindFloor:
		return "floor"
	case KindPlayer:
		return "player"
	}
	return "unknown"
}

// Shape returns how the kind's mesh sits in its cell.
func (k Kind) Shape() geom.Shape {
	switch k {
	case KindTarget:
		return geom.TargetShape
	case KindFloor:
		return geom.FloorShape
	}
	return geom.CubeShape
}

// Transform is the live world placement drawn by renderers. It is
// interpolated while a move animates.
type Transform struct {
	Position mgl64.Vec3
	Yaw      float64
}

// Bounds is the entity's box at its committed cell.
type Bounds struct {
	geom.AABB
}

type Wall struct{}

// Box is a pushable box. Index is its position in the map's box list.
type Box struct {
	Index int
}

type Target struct {
	Index int
}

type Floor struct{}

type Player struct {
	Facing geom.Direction
}

// RegisterComponents registers every component the engine spawns.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Kind](registry)
	ecs.RegisterComponent[geom.Cell](registry)
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Bounds](registry)
	ecs.RegisterComponent[Wall](registry)
	ecs.RegisterComponent[Box](registry)
	ecs.RegisterComponent[Target](registry)
	ecs.RegisterComponent[Floor](registry)
	ecs.RegisterComponent[Player](registry)
}
