package geom

import "github.com/go-gl/mathgl/mgl64"

// Shape describes how an entity kind sits in a cell: the height of its
// center and the half-extents of its mesh.
type Shape struct {
	Height float64
	Half   mgl64.Vec3
}

// The unit cube is scaled flat for the markers on the ground.
var (
	CubeShape   = Shape{Height: 0, Half: mgl64.Vec3{0.5, 0.5, 0.5}}
	TargetShape = Shape{Height: -0.5, Half: mgl64.Vec3{0.5, 0.5 / 50, 0.5}}
	FloorShape  = Shape{Height: -0.5, Half: mgl64.Vec3{0.5, 0.5 / 1000, 0.5}}
)

// At returns the world position of the shape placed on c.
func (s Shape) At(c Cell) mgl64.Vec3 {
	return c.Point(s.Height)
}

// Bounds returns the shape's box centered on position.
func (s Shape) Bounds(position mgl64.Vec3) AABB {
	return Around(position, s.Half)
}
