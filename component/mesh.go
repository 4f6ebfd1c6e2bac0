package component

// MeshShape is a renderable primitive
type MeshShape uint8

const (
	ShapeBox MeshShape = iota
	ShapeSphere
	ShapeCylinder
	ShapeModel
)

func (s MeshShape) String() string {
	switch s {
	case ShapeBox:
		return "box"
	case ShapeSphere:
		return "sphere"
	case ShapeCylinder:
		return "cylinder"
	case ShapeModel:
		return "model"
	default:
		return "unknown"
	}
}

// MeshComponent marks an entity renderable
// Src is set only for ShapeModel and is resolved by the host asset loader
type MeshComponent struct {
	Shape MeshShape
	Src   string
}

// ColliderComponent makes an entity hittable by pointer rays
type ColliderComponent struct {
	Shape MeshShape
}

// PointerEventsComponent registers an entity for activate input
type PointerEventsComponent struct {
	HoverText   string
	MaxDistance float64 // 0 = host default
}
