// Package astro provides sky coordinates, vector math and the perspective
// projection used to draw the planet universe on a terminal canvas.
package astro

import (
	"math"
)

// Vec3 represents a 3D vector in scene space.
// Y is up; the planet spiral lies roughly in the XZ plane.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns a unit vector in the same direction.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return Vec3{X: v.X / n, Y: v.Y / n, Z: v.Z / n}
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// Dot returns the dot product.
func (v Vec3) Dot(u Vec3) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// Cross returns the cross product v × u.
func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		X: v.Y*u.Z - v.Z*u.Y,
		Y: v.Z*u.X - v.X*u.Z,
		Z: v.X*u.Y - v.Y*u.X,
	}
}

// Lerp linearly interpolates from v to u; t=0 yields v, t=1 yields u.
func (v Vec3) Lerp(u Vec3, t float64) Vec3 {
	return Vec3{
		X: v.X + (u.X-v.X)*t,
		Y: v.Y + (u.Y-v.Y)*t,
		Z: v.Z + (u.Z-v.Z)*t,
	}
}

// Distance returns |v - u|.
func (v Vec3) Distance(u Vec3) float64 {
	return v.Sub(u).Norm()
}
