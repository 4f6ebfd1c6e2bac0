package system

import (
	"math"

	"github.com/lixenwraith/zengarden/component"
	"github.com/lixenwraith/zengarden/config"
	"github.com/lixenwraith/zengarden/engine"
	"github.com/lixenwraith/zengarden/event"
	"github.com/lixenwraith/zengarden/parameter"
	"github.com/lixenwraith/zengarden/vmath"
)

// DanceFloorSystem cycles the emissive color of every visible dance floor cube
type DanceFloorSystem struct {
	world *engine.World

	clock   float64
	visible bool

	enabled bool
}

func NewDanceFloorSystem(world *engine.World) *DanceFloorSystem {
	s := &DanceFloorSystem{
		world: world,
	}
	s.Init()
	return s
}

func (s *DanceFloorSystem) Init() {
	s.enabled = true
	s.visible = true
	s.clock = 0
}

// Name returns system's name
func (s *DanceFloorSystem) Name() string {
	return "dance_floor"
}

func (s *DanceFloorSystem) Priority() int {
	return parameter.PriorityDanceFloor
}

func (s *DanceFloorSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventCosmeticToggle,
		event.EventSystemCommand,
	}
}

func (s *DanceFloorSystem) HandleEvent(ev event.GameEvent) {
	if applySystemCommand(ev, s.Name(), &s.enabled) {
		return
	}
	payload, ok := ev.Payload.(*event.CosmeticTogglePayload)
	if !ok || payload.Effect != event.CosmeticDanceFloor {
		return
	}
	s.visible = payload.Enabled

	for _, entity := range s.world.Components.DanceCube.GetAllEntities() {
		cube, ok := s.world.Components.DanceCube.GetComponent(entity)
		if !ok {
			continue
		}
		s.world.Components.Transform.Mutate(entity, func(tr *component.TransformComponent) {
			if payload.Enabled {
				tr.Scale = cube.BaseScale
			} else {
				tr.Scale = vmath.V3Zero()
			}
		})
	}
}

// Visible reports the current toggle state
func (s *DanceFloorSystem) Visible() bool {
	return s.visible
}

func (s *DanceFloorSystem) Update() {
	if !s.enabled {
		return
	}

	s.clock += s.world.Resources.Time.DeltaTime.Seconds()

	for _, entity := range s.world.Components.DanceCube.GetAllEntities() {
		cube, ok := s.world.Components.DanceCube.GetComponent(entity)
		if !ok {
			continue
		}
		if tr, ok := s.world.Components.Transform.GetComponent(entity); !ok || tr.Hidden() {
			continue
		}

		color := DanceCubeColor(s.clock + float64(cube.Index)*0.5)
		s.world.Components.Material.Mutate(entity, func(m *component.MaterialComponent) {
			if m.Kind == component.MaterialPBR {
				m.Emissive = color
			}
		})
	}
}

// DanceCubeColor is the cube color at offset time t
func DanceCubeColor(t float64) vmath.Color4 {
	return vmath.RGB(
		(math.Sin(t*2)+1)/2,
		(math.Cos(t*0.5)+1)/2,
		(math.Sin(t+math.Pi)+1)/2,
	)
}

// ClubLightSystem orbits the club lights and swirls their color
type ClubLightSystem struct {
	world *engine.World

	center vmath.Vec3
	radius float64
	speed  float64

	clock   float64
	visible bool

	enabled bool
}

func NewClubLightSystem(world *engine.World, cfg config.ClubLightConfig) *ClubLightSystem {
	s := &ClubLightSystem{
		world:  world,
		center: cfg.Center.V3(),
		radius: cfg.Radius,
		speed:  cfg.Speed,
	}
	s.Init()
	return s
}

func (s *ClubLightSystem) Init() {
	s.enabled = true
	s.visible = true
	s.clock = 0
}

// Name returns system's name
func (s *ClubLightSystem) Name() string {
	return "club_light"
}

func (s *ClubLightSystem) Priority() int {
	return parameter.PriorityClubLight
}

func (s *ClubLightSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventCosmeticToggle,
		event.EventSystemCommand,
	}
}

func (s *ClubLightSystem) HandleEvent(ev event.GameEvent) {
	if applySystemCommand(ev, s.Name(), &s.enabled) {
		return
	}
	payload, ok := ev.Payload.(*event.CosmeticTogglePayload)
	if !ok || payload.Effect != event.CosmeticClubLights {
		return
	}
	s.visible = payload.Enabled

	for _, entity := range s.world.Components.ClubLight.GetAllEntities() {
		light, ok := s.world.Components.ClubLight.GetComponent(entity)
		if !ok {
			continue
		}
		s.world.Components.Transform.Mutate(entity, func(tr *component.TransformComponent) {
			if payload.Enabled {
				tr.Scale = light.BaseScale
			} else {
				tr.Scale = vmath.V3Zero()
			}
		})
	}
}

// Visible reports the current toggle state
func (s *ClubLightSystem) Visible() bool {
	return s.visible
}

func (s *ClubLightSystem) Update() {
	if !s.enabled {
		return
	}

	s.clock += s.world.Resources.Time.DeltaTime.Seconds() * s.speed

	entities := s.world.Components.ClubLight.GetAllEntities()
	n := len(entities)
	for _, entity := range entities {
		light, ok := s.world.Components.ClubLight.GetComponent(entity)
		if !ok {
			continue
		}

		angle := s.clock + float64(light.Index)*2*math.Pi/float64(n)
		hidden := false
		s.world.Components.Transform.Mutate(entity, func(tr *component.TransformComponent) {
			if tr.Hidden() {
				hidden = true
				return
			}
			tr.Position = vmath.V3OnCircle(s.center, s.radius, angle)
		})
		if hidden {
			continue
		}

		color := vmath.RGB(
			(math.Sin(angle*2)+1)/2,
			(math.Cos(angle*0.8)+1)/2,
			(math.Sin(angle)+1)/2,
		)
		s.world.Components.Material.Mutate(entity, func(m *component.MaterialComponent) {
			if m.Kind == component.MaterialPBR {
				m.Emissive = color
			}
		})
	}
}
