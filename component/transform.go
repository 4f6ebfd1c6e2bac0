package component

import (
	"github.com/lixenwraith/zengarden/core"
	"github.com/lixenwraith/zengarden/vmath"
)

// TransformComponent places an entity in scene space
// Parent is informational for hosts; positions are stored in scene coordinates
type TransformComponent struct {
	Position vmath.Vec3
	Rotation vmath.Quat
	Scale    vmath.Vec3
	Parent   core.Entity
}

// NewTransform returns a transform at pos with identity rotation and unit scale
func NewTransform(pos vmath.Vec3) TransformComponent {
	return TransformComponent{
		Position: pos,
		Rotation: vmath.QIdentity(),
		Scale:    vmath.V3(1, 1, 1),
	}
}

// Hidden reports whether the transform is collapsed to zero scale
// Cosmetic toggles hide entities this way instead of destroying them
func (t TransformComponent) Hidden() bool {
	return t.Scale.X == 0 && t.Scale.Y == 0 && t.Scale.Z == 0
}
