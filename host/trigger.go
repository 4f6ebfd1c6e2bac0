package host

import (
	"math"

	"github.com/lixenwraith/zengarden/component"
	"github.com/lixenwraith/zengarden/core"
	"github.com/lixenwraith/zengarden/engine"
	"github.com/lixenwraith/zengarden/parameter"
	"github.com/lixenwraith/zengarden/vmath"
)

type volumeTrigger struct {
	anchor  core.Entity
	shape   component.TriggerShape
	onEnter func()
	inside  bool
}

// TriggerSystem simulates the host's spatial trigger volumes
// It samples the player each tick and fires onEnter on the outside-to-inside edge
type TriggerSystem struct {
	world  *engine.World
	player PlayerProvider

	triggers []*volumeTrigger
}

func NewTriggerSystem(world *engine.World, player PlayerProvider) *TriggerSystem {
	return &TriggerSystem{
		world:  world,
		player: player,
	}
}

// RegisterVolumeTrigger implements TriggerHost
func (s *TriggerSystem) RegisterVolumeTrigger(anchor core.Entity, shape component.TriggerShape, onEnter func()) {
	s.triggers = append(s.triggers, &volumeTrigger{
		anchor:  anchor,
		shape:   shape,
		onEnter: onEnter,
	})
}

// Name returns system's name
func (s *TriggerSystem) Name() string {
	return "trigger"
}

func (s *TriggerSystem) Priority() int {
	return parameter.PriorityTrigger
}

func (s *TriggerSystem) Update() {
	pos, ok := s.player.PlayerPosition()

	for _, tr := range s.triggers {
		inside := false
		if ok {
			if anchor, found := s.world.Components.Transform.GetComponent(tr.anchor); found {
				inside = Contains(tr.shape, anchor.Position, pos)
			}
		}

		if inside && !tr.inside && tr.onEnter != nil {
			tr.onEnter()
		}
		tr.inside = inside
	}
}

// Contains reports whether p lies in shape centered at center
func Contains(shape component.TriggerShape, center, p vmath.Vec3) bool {
	d := p.Sub(center)
	switch shape.Kind {
	case component.TriggerSphere:
		return d.Norm() <= shape.Size[0]
	default:
		return math.Abs(d.X) <= shape.Size[0]/2 &&
			math.Abs(d.Y) <= shape.Size[1]/2 &&
			math.Abs(d.Z) <= shape.Size[2]/2
	}
}
