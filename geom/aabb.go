package geom

import "github.com/go-gl/mathgl/mgl64"

// AABB is an axis-aligned bounding box. Bounds are inclusive.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// Around builds the box centered on center with the given half-extents.
func Around(center, half mgl64.Vec3) AABB {
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// ContainsPoint reports whether p lies inside or on the box.
func (a AABB) ContainsPoint(p mgl64.Vec3) bool {
	return p.X() >= a.Min.X() && p.X() <= a.Max.X() &&
		p.Y() >= a.Min.Y() && p.Y() <= a.Max.Y() &&
		p.Z() >= a.Min.Z() && p.Z() <= a.Max.Z()
}

// Overlaps reports whether the boxes share any point, faces included.
func (a AABB) Overlaps(other AABB) bool {
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}

// Center returns the midpoint of the box.
func (a AABB) Center() mgl64.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

// Size returns the edge lengths.
func (a AABB) Size() mgl64.Vec3 {
	return a.Max.Sub(a.Min)
}
