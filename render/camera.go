package render

import (
	"math"

	"github.com/lixenwraith/zengarden/vmath"
)

// cellAspect compensates terminal cells being about twice as tall as wide
const cellAspect = 2.0

// Camera is a top-down orthographic view looking down -Y
// Screen right is world +X, screen down is world +Z
type Camera struct {
	Center vmath.Vec3
	Zoom   float64 // rows per world unit
}

// Project maps a world position to a cell in a width x height viewport
func (c Camera) Project(p vmath.Vec3, width, height int) (int, int) {
	x := (p.X-c.Center.X)*c.Zoom*cellAspect + float64(width)/2
	y := (p.Z-c.Center.Z)*c.Zoom + float64(height)/2
	return int(math.Floor(x)), int(math.Floor(y))
}

// Unproject returns the world XZ at the center of a cell, Y taken from Center
func (c Camera) Unproject(x, y, width, height int) vmath.Vec3 {
	wx := (float64(x)+0.5-float64(width)/2)/(c.Zoom*cellAspect) + c.Center.X
	wz := (float64(y)+0.5-float64(height)/2)/c.Zoom + c.Center.Z
	return vmath.V3(wx, c.Center.Y, wz)
}

// FitRadius returns a camera framing a disc of radius r around center in the viewport
func FitRadius(center vmath.Vec3, r float64, width, height int) Camera {
	if r <= 0 {
		r = 1
	}
	zoom := math.Min(float64(height)/(2*r), float64(width)/(2*r*cellAspect))
	if zoom <= 0 {
		zoom = 1
	}
	return Camera{Center: center, Zoom: zoom}
}
