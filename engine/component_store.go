package engine

import (
	"github.com/lixenwraith/zengarden/component"
)

// ComponentStore provides cached pointer to typed component store
// Initialized once per world; pointers remain valid for the world lifetime
type ComponentStore struct {
	// Host-facing
	Transform     *Store[component.TransformComponent]
	Material      *Store[component.MaterialComponent]
	Mesh          *Store[component.MeshComponent]
	Collider      *Store[component.ColliderComponent]
	PointerEvents *Store[component.PointerEventsComponent]
	Animator      *Store[component.AnimatorComponent]

	// Behavior
	Pulse      *Store[component.PulseComponent]
	Platform   *Store[component.PlatformComponent]
	Tween      *Store[component.TweenComponent]
	Beam       *Store[component.BeamComponent]
	Teleporter *Store[component.TeleporterComponent]
	Crystal    *Store[component.CrystalComponent]

	// Cosmetic
	DanceCube *Store[component.DanceCubeComponent]
	ClubLight *Store[component.ClubLightComponent]
}

// initComponentStores allocates every store and registers it for lifecycle operations
func initComponentStores(w *World) {
	c := &w.Components

	c.Transform = NewStore[component.TransformComponent]()
	c.Material = NewStore[component.MaterialComponent]()
	c.Mesh = NewStore[component.MeshComponent]()
	c.Collider = NewStore[component.ColliderComponent]()
	c.PointerEvents = NewStore[component.PointerEventsComponent]()
	c.Animator = NewStore[component.AnimatorComponent]()

	c.Pulse = NewStore[component.PulseComponent]()
	c.Platform = NewStore[component.PlatformComponent]()
	c.Tween = NewStore[component.TweenComponent]()
	c.Beam = NewStore[component.BeamComponent]()
	c.Teleporter = NewStore[component.TeleporterComponent]()
	c.Crystal = NewStore[component.CrystalComponent]()

	c.DanceCube = NewStore[component.DanceCubeComponent]()
	c.ClubLight = NewStore[component.ClubLightComponent]()

	w.allStores = []AnyStore{
		c.Transform, c.Material, c.Mesh, c.Collider, c.PointerEvents, c.Animator,
		c.Pulse, c.Platform, c.Tween, c.Beam, c.Teleporter, c.Crystal,
		c.DanceCube, c.ClubLight,
	}
}
