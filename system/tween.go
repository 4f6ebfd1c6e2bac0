package system

import (
	"github.com/lixenwraith/zengarden/component"
	"github.com/lixenwraith/zengarden/engine"
	"github.com/lixenwraith/zengarden/event"
	"github.com/lixenwraith/zengarden/parameter"
)

// TweenSystem adds the decaying correction offset onto positions written earlier in the tick
// Runs after the motion systems; the component is removed once the offset reaches zero
type TweenSystem struct {
	world *engine.World

	enabled bool
}

func NewTweenSystem(world *engine.World) *TweenSystem {
	s := &TweenSystem{
		world: world,
	}
	s.Init()
	return s
}

func (s *TweenSystem) Init() {
	s.enabled = true
}

// Name returns system's name
func (s *TweenSystem) Name() string {
	return "tween"
}

func (s *TweenSystem) Priority() int {
	return parameter.PriorityTween
}

func (s *TweenSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSystemCommand,
	}
}

func (s *TweenSystem) HandleEvent(ev event.GameEvent) {
	applySystemCommand(ev, s.Name(), &s.enabled)
}

func (s *TweenSystem) Update() {
	if !s.enabled {
		return
	}

	dt := s.world.Resources.Time.DeltaTime
	for _, entity := range s.world.Components.Tween.GetAllEntities() {
		tween, ok := s.world.Components.Tween.GetComponent(entity)
		if !ok {
			continue
		}

		tween.Elapsed += dt
		offset := tween.Remaining()
		s.world.Components.Transform.Mutate(entity, func(tr *component.TransformComponent) {
			tr.Position = tr.Position.Add(offset)
		})

		if tween.Progress() >= 1 {
			s.world.Components.Tween.RemoveEntity(entity)
		} else {
			s.world.Components.Tween.SetComponent(entity, tween)
		}
	}
}
