package system

import (
	"github.com/lixenwraith/zengarden/component"
	"github.com/lixenwraith/zengarden/config"
	"github.com/lixenwraith/zengarden/engine"
	"github.com/lixenwraith/zengarden/event"
	"github.com/lixenwraith/zengarden/parameter"
	"github.com/lixenwraith/zengarden/vmath"
)

// BeamGeometry is the derived transform of one beam
type BeamGeometry struct {
	Position vmath.Vec3
	Rotation vmath.Quat
	Length   float64
}

// BeamPose derives the beam from source S to platform P for a +Y aligned cylinder mesh
func BeamPose(source, target vmath.Vec3) BeamGeometry {
	return beamPose(source, target, parameter.BeamCorrectionX)
}

func beamPose(source, target vmath.Vec3, correctionX float64) BeamGeometry {
	dir := target.Sub(source)
	look := vmath.QLookRotation(dir, vmath.V3Up())
	return BeamGeometry{
		Position: vmath.V3Mid(source, target),
		Rotation: vmath.QMul(look, vmath.QFromEulerDegrees(correctionX, 0, 0)),
		Length:   dir.Norm(),
	}
}

// BeamSystem binds every beam to the live position of its platform
// Runs after all platform writers so beams never trail their platform
type BeamSystem struct {
	world *engine.World

	source      vmath.Vec3
	correctionX float64

	enabled bool
}

func NewBeamSystem(world *engine.World, cfg config.BeamConfig) *BeamSystem {
	s := &BeamSystem{
		world:       world,
		source:      cfg.Source.V3(),
		correctionX: cfg.CorrectionX,
	}
	s.Init()
	return s
}

func (s *BeamSystem) Init() {
	s.enabled = true
}

// Name returns system's name
func (s *BeamSystem) Name() string {
	return "beam"
}

func (s *BeamSystem) Priority() int {
	return parameter.PriorityBeam
}

func (s *BeamSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSystemCommand,
	}
}

func (s *BeamSystem) HandleEvent(ev event.GameEvent) {
	applySystemCommand(ev, s.Name(), &s.enabled)
}

// Source returns the shared beam origin
func (s *BeamSystem) Source() vmath.Vec3 {
	return s.source
}

func (s *BeamSystem) Update() {
	if !s.enabled {
		return
	}

	for _, entity := range s.world.Components.Beam.GetAllEntities() {
		beam, ok := s.world.Components.Beam.GetComponent(entity)
		if !ok {
			continue
		}
		platform, ok := s.world.Components.Transform.GetComponent(beam.Platform)
		if !ok {
			continue
		}

		geo := beamPose(s.source, platform.Position, s.correctionX)
		s.world.Components.Transform.Mutate(entity, func(tr *component.TransformComponent) {
			tr.Position = geo.Position
			tr.Rotation = geo.Rotation
			tr.Scale.Y = geo.Length
		})
	}
}
