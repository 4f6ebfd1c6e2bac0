package vmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// Vec3 is a float64 3D vector in scene units
// Aliased to r3.Vector so geo helpers (Norm, Distance, Cross) apply directly
type Vec3 = r3.Vector

// Epsilon is the tolerance used for float comparisons in scene math
const Epsilon = 1e-9

func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func V3Zero() Vec3 {
	return Vec3{}
}

func V3Up() Vec3 {
	return Vec3{Y: 1}
}

func V3Forward() Vec3 {
	return Vec3{Z: 1}
}

// V3Lerp interpolates a toward b, t is not clamped
func V3Lerp(a, b Vec3, t float64) Vec3 {
	return Vec3{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}

// V3Mid returns the midpoint of a and b
func V3Mid(a, b Vec3) Vec3 {
	return V3Lerp(a, b, 0.5)
}

// V3Dist returns the Euclidean distance between a and b
func V3Dist(a, b Vec3) float64 {
	return a.Sub(b).Norm()
}

// V3Near reports whether a and b are within tol of each other
func V3Near(a, b Vec3, tol float64) bool {
	return V3Dist(a, b) <= tol
}

// V3Finite reports whether every component is a finite number
func V3Finite(v Vec3) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// V3OnCircle returns the point at angle (radians) on the horizontal circle of radius r around center
// Y is taken from center
func V3OnCircle(center Vec3, r, angle float64) Vec3 {
	return Vec3{
		X: center.X + r*math.Cos(angle),
		Y: center.Y,
		Z: center.Z + r*math.Sin(angle),
	}
}

// HorizontalDist returns the XZ-plane distance between a and b
func HorizontalDist(a, b Vec3) float64 {
	dx := a.X - b.X
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dz*dz)
}
