package system

import (
	"github.com/lixenwraith/zengarden/engine"
	"github.com/lixenwraith/zengarden/event"
	"github.com/lixenwraith/zengarden/host"
	"github.com/lixenwraith/zengarden/parameter"
)

// DirectionToggler reverses the platform orbit
type DirectionToggler interface {
	ToggleDirection()
}

// CrystalSystem turns primary clicks on crystals into direction toggles
type CrystalSystem struct {
	world    *engine.World
	input    host.InputProvider
	platform DirectionToggler
	cues     host.CuePlayer

	enabled bool
}

func NewCrystalSystem(world *engine.World, input host.InputProvider, platform DirectionToggler, cues host.CuePlayer) *CrystalSystem {
	if cues == nil {
		cues = host.NopCues{}
	}
	s := &CrystalSystem{
		world:    world,
		input:    input,
		platform: platform,
		cues:     cues,
	}
	s.Init()
	return s
}

func (s *CrystalSystem) Init() {
	s.enabled = true
}

// Name returns system's name
func (s *CrystalSystem) Name() string {
	return "crystal"
}

func (s *CrystalSystem) Priority() int {
	return parameter.PriorityCrystal
}

func (s *CrystalSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSystemCommand,
	}
}

func (s *CrystalSystem) HandleEvent(ev event.GameEvent) {
	applySystemCommand(ev, s.Name(), &s.enabled)
}

func (s *CrystalSystem) Update() {
	if !s.enabled || s.input == nil {
		return
	}

	for _, entity := range s.world.Components.Crystal.GetAllEntities() {
		if s.input.IsTriggered(host.ActionPrimary, entity) {
			s.platform.ToggleDirection()
			s.cues.PlayCue(host.CueToggle)
		}
	}
}
