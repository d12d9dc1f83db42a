// Package geom holds the grid and bounding-volume types shared by the level
// data and the puzzle engine.
package geom

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Cell is an integer grid coordinate on the x/z plane.
type Cell struct {
	X int `yaml:"x"`
	Z int `yaml:"z"`
}

func (c Cell) Add(d Direction) Cell {
	dx, dz := d.Delta()
	return Cell{X: c.X + dx, Z: c.Z + dz}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Z)
}

// Point returns the cell's world position at height y.
func (c Cell) Point(y float64) mgl64.Vec3 {
	return mgl64.Vec3{float64(c.X), y, float64(c.Z)}
}

// CellAt rounds a world position to the nearest cell.
func CellAt(p mgl64.Vec3) Cell {
	return Cell{X: int(math.Round(p.X())), Z: int(math.Round(p.Z()))}
}

// Direction is one of the four grid moves. North is +z, East is +x.
type Direction uint8

const (
	North Direction = iota + 1
	South
	East
	West
)

var Directions = []Direction{North, South, East, West}

// Delta returns the unit grid step.
func (d Direction) Delta() (dx, dz int) {
	switch d {
	case North:
		return 0, 1
	case South:
		return 0, -1
	case East:
		return 1, 0
	case West:
		return -1, 0
	}
	return 0, 0
}

// Vec returns the unit step as a world vector.
func (d Direction) Vec() mgl64.Vec3 {
	dx, dz := d.Delta()
	return mgl64.Vec3{float64(dx), 0, float64(dz)}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	return d
}

// Yaw is the rotation about +y that turns a model facing North toward d.
func (d Direction) Yaw() float64 {
	dx, dz := d.Delta()
	return math.Atan2(float64(dx), float64(dz))
}

func (d Direction) Valid() bool {
	return d >= North && d <= West
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	}
	return "none"
}
