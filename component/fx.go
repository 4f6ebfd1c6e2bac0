package component

import "github.com/lixenwraith/zengarden/vmath"

// DanceCubeComponent is one cell of the dance floor grid
type DanceCubeComponent struct {
	Index     int
	BaseScale vmath.Vec3
}

// ClubLightComponent is one orbiting club light
type ClubLightComponent struct {
	Index     int
	BaseScale vmath.Vec3
}

// CrystalComponent marks the clickable crystal that reverses platform direction
type CrystalComponent struct{}
