package system

import (
	"log"
	"math"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/zengarden/asset"
	"github.com/lixenwraith/zengarden/component"
	"github.com/lixenwraith/zengarden/config"
	"github.com/lixenwraith/zengarden/core"
	"github.com/lixenwraith/zengarden/engine"
	"github.com/lixenwraith/zengarden/engine/fsm"
	"github.com/lixenwraith/zengarden/event"
	"github.com/lixenwraith/zengarden/host"
	"github.com/lixenwraith/zengarden/parameter"
	"github.com/lixenwraith/zengarden/status"
)

// InteractionMode is the coarse interaction state
type InteractionMode uint8

const (
	ModeIdle InteractionMode = iota
	ModeProximity
	ModeLocked
)

func (m InteractionMode) String() string {
	switch m {
	case ModeIdle:
		return "Idle"
	case ModeProximity:
		return "Proximity"
	case ModeLocked:
		return "Locked"
	default:
		return "Unknown"
	}
}

// InteractionState is the observable state of the centerpiece
// Action and ArmedAt are set only while Locked
type InteractionState struct {
	Mode    InteractionMode
	Action  string
	ArmedAt time.Duration
}

// InteractionSystem drives the focal entity through Idle, Proximity and the uninterruptible Locked state
type InteractionSystem struct {
	world   *engine.World
	machine *fsm.Machine[*InteractionSystem]

	focal  core.Entity
	player host.PlayerProvider
	input  host.InputProvider
	cues   host.CuePlayer
	logger *log.Logger

	radius       float64
	actionLength time.Duration
	clips        map[string]string

	// Lock bookkeeping, valid while Locked
	armedAt      time.Duration
	lockedAction string

	playerKnown bool

	statLocks *atomic.Int64
	statState *status.AtomicString

	enabled bool
}

// NewInteractionSystem builds the state machine for focal and enters Idle
func NewInteractionSystem(
	world *engine.World,
	focal core.Entity,
	cfg config.InteractionConfig,
	player host.PlayerProvider,
	input host.InputProvider,
	cues host.CuePlayer,
	logger *log.Logger,
) (*InteractionSystem, error) {
	if cues == nil {
		cues = host.NopCues{}
	}
	if logger == nil {
		logger = log.Default()
	}

	s := &InteractionSystem{
		world:        world,
		focal:        focal,
		player:       player,
		input:        input,
		cues:         cues,
		logger:       logger,
		radius:       cfg.Radius,
		actionLength: cfg.ActionLength,
		clips: map[string]string{
			"idle":   cfg.IdleClip,
			"near":   cfg.NearClip,
			"action": cfg.ActionClip,
		},
		playerKnown: true,
		statLocks:   world.Resources.Status.Ints.Get("interaction.locks"),
		statState:   world.Resources.Status.Strings.Get("interaction.state"),
	}

	m := fsm.NewMachine[*InteractionSystem]()
	m.RegisterGuard("InRange", (*InteractionSystem).inRange)
	m.RegisterAction("PlayClip", (*InteractionSystem).playClip)
	m.RegisterAction("ArmCompletion", (*InteractionSystem).armCompletion)
	m.RegisterAction("Cue", (*InteractionSystem).cue)
	if err := m.LoadConfig([]byte(asset.InteractionFSMConfig)); err != nil {
		return nil, err
	}
	s.machine = m

	s.Init()
	return s, nil
}

// Init enters Idle
func (s *InteractionSystem) Init() {
	s.enabled = true
	s.armedAt = 0
	s.lockedAction = ""
	if err := s.machine.Reset(s); err != nil {
		s.logger.Printf("interaction: reset failed: %v", err)
	}
	s.statState.Store(s.machine.State())
}

// Name returns system's name
func (s *InteractionSystem) Name() string {
	return "interaction"
}

func (s *InteractionSystem) Priority() int {
	return parameter.PriorityInteraction
}

func (s *InteractionSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventInteractionComplete,
		event.EventSystemCommand,
	}
}

func (s *InteractionSystem) HandleEvent(ev event.GameEvent) {
	if applySystemCommand(ev, s.Name(), &s.enabled) {
		return
	}
	if ev.Type != event.EventInteractionComplete {
		return
	}
	payload, ok := ev.Payload.(*event.InteractionCompletePayload)
	if !ok || payload.Owner != s.focal {
		return
	}
	// A completion only belongs to the lock that armed it
	if !s.machine.IsIn("Locked") || payload.ArmedAt != s.armedAt {
		return
	}

	s.fire(event.EventInteractionComplete)
}

func (s *InteractionSystem) Update() {
	if !s.enabled {
		return
	}

	s.machine.Update(s, s.world.Resources.Time.DeltaTime)

	if s.machine.IsIn("Locked") {
		return
	}

	distance := s.Distance()

	// Click has priority over proximity within the same tick
	if s.input != nil && s.input.IsTriggered(host.ActionPrimary, s.focal) {
		if s.fire(event.EventInteractionActivate) {
			return
		}
	}

	if distance <= s.radius {
		s.fire(event.EventInteractionNear)
	} else {
		s.fire(event.EventInteractionFar)
	}
}

// State returns the current interaction state
func (s *InteractionSystem) State() InteractionState {
	switch s.machine.State() {
	case "Locked":
		return InteractionState{Mode: ModeLocked, Action: s.lockedAction, ArmedAt: s.armedAt}
	case "Proximity":
		return InteractionState{Mode: ModeProximity}
	default:
		return InteractionState{Mode: ModeIdle}
	}
}

// Focal returns the entity this machine animates
func (s *InteractionSystem) Focal() core.Entity {
	return s.focal
}

// Distance measures the player to the focal entity, +Inf when either position is unknown
func (s *InteractionSystem) Distance() float64 {
	pos, ok := s.player.PlayerPosition()
	if ok != s.playerKnown {
		s.playerKnown = ok
		if !ok {
			s.logger.Printf("interaction: player position unavailable")
		}
	}
	if !ok {
		return math.Inf(1)
	}

	focal, found := s.world.Components.Transform.GetComponent(s.focal)
	if !found {
		return math.Inf(1)
	}
	return pos.Sub(focal.Position).Norm()
}

func (s *InteractionSystem) fire(et event.EventType) bool {
	changed := s.machine.HandleEvent(s, et)
	if changed {
		s.statState.Store(s.machine.State())
	}
	return changed
}

func (s *InteractionSystem) inRange() bool {
	return s.Distance() <= s.radius
}

func (s *InteractionSystem) playClip(args any) {
	key := argString(args, "clip")
	clip, ok := s.clips[key]
	if !ok {
		clip = key
	}
	if s.machine.IsIn("Locked") {
		s.lockedAction = clip
	}

	s.world.Components.Animator.Mutate(s.focal, func(a *component.AnimatorComponent) {
		a.Play(clip)
	})
}

func (s *InteractionSystem) armCompletion(_ any) {
	s.armedAt = s.world.Resources.Time.Elapsed
	s.world.Resources.Deferred.After(s.actionLength, engine.Task{
		Event: event.EventInteractionComplete,
		Payload: &event.InteractionCompletePayload{
			Owner:   s.focal,
			Action:  s.lockedAction,
			ArmedAt: s.armedAt,
		},
	})
	s.statLocks.Add(1)
	s.cues.PlayCue(host.CueLock)
}

func (s *InteractionSystem) cue(args any) {
	if name := argString(args, "cue"); name != "" {
		s.cues.PlayCue(host.Cue(name))
	}
}

// argString reads a compiled FSM action argument
func argString(args any, key string) string {
	if m, ok := args.(map[string]string); ok {
		return m[key]
	}
	return ""
}
