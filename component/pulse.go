package component

import "github.com/lixenwraith/zengarden/vmath"

// PulseComponent oscillates an entity's emissive color between Base and Target
// Phase is in [0,1) and advances by dt*Speed per tick
type PulseComponent struct {
	Base   vmath.Color4
	Target vmath.Color4
	Speed  float64 // cycles per second
	Phase  float64
}
