package system

import (
	"math"

	"github.com/lixenwraith/zengarden/component"
	"github.com/lixenwraith/zengarden/core"
	"github.com/lixenwraith/zengarden/engine"
	"github.com/lixenwraith/zengarden/event"
	"github.com/lixenwraith/zengarden/parameter"
	"github.com/lixenwraith/zengarden/vmath"
)

// PulseSystem oscillates the emissive color of every pulsing entity
type PulseSystem struct {
	world *engine.World

	enabled bool
}

func NewPulseSystem(world *engine.World) *PulseSystem {
	s := &PulseSystem{
		world: world,
	}
	s.Init()
	return s
}

func (s *PulseSystem) Init() {
	s.enabled = true
}

// Name returns system's name
func (s *PulseSystem) Name() string {
	return "pulse"
}

func (s *PulseSystem) Priority() int {
	return parameter.PriorityPulse
}

func (s *PulseSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSystemCommand,
	}
}

func (s *PulseSystem) HandleEvent(ev event.GameEvent) {
	applySystemCommand(ev, s.Name(), &s.enabled)
}

// Attach starts pulsing entity from base toward target at speed cycles per second
// Re-attaching resets the phase
func (s *PulseSystem) Attach(entity core.Entity, base, target vmath.Color4, speed float64) {
	s.world.Components.Pulse.SetComponent(entity, component.PulseComponent{
		Base:   base,
		Target: target,
		Speed:  speed,
	})
}

func (s *PulseSystem) Update() {
	if !s.enabled {
		return
	}

	dt := s.world.Resources.Time.DeltaTime.Seconds()
	for _, entity := range s.world.Components.Pulse.GetAllEntities() {
		pulse, ok := s.world.Components.Pulse.GetComponent(entity)
		if !ok {
			continue
		}

		pulse.Phase += dt * pulse.Speed
		if pulse.Phase > 1 {
			pulse.Phase = 0
		}
		s.world.Components.Pulse.SetComponent(entity, pulse)

		factor := PulseFactor(pulse.Phase)
		s.world.Components.Material.Mutate(entity, func(m *component.MaterialComponent) {
			if m.Kind != component.MaterialPBR {
				return
			}
			m.Emissive = vmath.ColorLerp(pulse.Base, pulse.Target, factor)
			m.EmissiveIntensity = factor * 2
		})
	}
}

// PulseFactor maps phase in [0,1] to a smooth 0..1..0 wave starting at 0.5
func PulseFactor(phase float64) float64 {
	return (math.Sin(phase*2*math.Pi) + 1) / 2
}
