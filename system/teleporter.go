package system

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/zengarden/component"
	"github.com/lixenwraith/zengarden/config"
	"github.com/lixenwraith/zengarden/core"
	"github.com/lixenwraith/zengarden/engine"
	"github.com/lixenwraith/zengarden/event"
	"github.com/lixenwraith/zengarden/host"
	"github.com/lixenwraith/zengarden/parameter"
	"github.com/lixenwraith/zengarden/vmath"
)

// TeleporterSystem runs the Ready -> Busy -> Ready cycle of teleporter pads
// Entries while Busy are dropped before touching any state
type TeleporterSystem struct {
	world     *engine.World
	relocator host.Relocator
	cues      host.CuePlayer

	target      vmath.Vec3
	lookAt      vmath.Vec3
	shape       component.TriggerShape
	actionDelay time.Duration
	revertDelay time.Duration
	cooldown    time.Duration

	idleClock float64

	statActivations *atomic.Int64
	statIgnored     *atomic.Int64

	enabled bool
}

func NewTeleporterSystem(
	world *engine.World,
	cfg config.TeleporterConfig,
	relocator host.Relocator,
	cues host.CuePlayer,
) *TeleporterSystem {
	if cues == nil {
		cues = host.NopCues{}
	}
	s := &TeleporterSystem{
		world:     world,
		relocator: relocator,
		cues:      cues,
		target:    cfg.Target.V3(),
		lookAt:    cfg.LookAt.V3(),
		shape: component.TriggerShape{
			Kind: component.TriggerBox,
			Size: [3]float64(cfg.TriggerSize),
		},
		actionDelay:     cfg.ActionDelay,
		revertDelay:     cfg.RevertDelay,
		cooldown:        cfg.Cooldown,
		statActivations: world.Resources.Status.Ints.Get("teleporter.activations"),
		statIgnored:     world.Resources.Status.Ints.Get("teleporter.ignored"),
	}
	s.Init()
	return s
}

func (s *TeleporterSystem) Init() {
	s.enabled = true
	s.idleClock = 0
}

// Name returns system's name
func (s *TeleporterSystem) Name() string {
	return "teleporter"
}

func (s *TeleporterSystem) Priority() int {
	return parameter.PriorityTeleporter
}

// Register binds pad to a host volume trigger
func (s *TeleporterSystem) Register(triggers host.TriggerHost, pad core.Entity) {
	triggers.RegisterVolumeTrigger(pad, s.shape, func() {
		s.Enter(pad)
	})
}

// Enter handles a qualifying player entry into pad's volume
func (s *TeleporterSystem) Enter(pad core.Entity) {
	tp, ok := s.world.Components.Teleporter.GetComponent(pad)
	if !ok {
		return
	}
	if tp.Busy {
		s.statIgnored.Add(1)
		return
	}

	tp.Busy = true
	tp.ArmedAt = s.world.Resources.Time.Elapsed
	s.world.Components.Teleporter.SetComponent(pad, tp)

	s.setPadVisual(pad, vmath.ColorWhite, parameter.TeleportActiveIntensity, parameter.TeleportActiveScaleY)

	deferred := s.world.Resources.Deferred
	payload := &event.TeleportPayload{Pad: pad}
	deferred.After(s.actionDelay, engine.Task{Event: event.EventTeleportPerform, Payload: payload})
	deferred.After(s.cooldown, engine.Task{Event: event.EventTeleportReady, Payload: payload})

	s.statActivations.Add(1)
	s.cues.PlayCue(host.CueTeleport)
}

// Busy reports whether pad is cooling down
func (s *TeleporterSystem) Busy(pad core.Entity) bool {
	tp, ok := s.world.Components.Teleporter.GetComponent(pad)
	return ok && tp.Busy
}

func (s *TeleporterSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventTeleportPerform,
		event.EventTeleportRevert,
		event.EventTeleportReady,
		event.EventSystemCommand,
	}
}

// HandleEvent finishes in-flight activations even while disabled
func (s *TeleporterSystem) HandleEvent(ev event.GameEvent) {
	if applySystemCommand(ev, s.Name(), &s.enabled) {
		return
	}
	payload, ok := ev.Payload.(*event.TeleportPayload)
	if !ok {
		return
	}

	switch ev.Type {
	case event.EventTeleportPerform:
		if s.relocator != nil {
			s.relocator.MovePlayerTo(s.target, s.lookAt)
		}
		s.world.Resources.Deferred.After(s.revertDelay, engine.Task{
			Event:   event.EventTeleportRevert,
			Payload: payload,
		})

	case event.EventTeleportRevert:
		s.setPadVisual(payload.Pad, vmath.ColorCyan, parameter.TeleportIdleIntensity, parameter.TeleportPadScaleY)

	case event.EventTeleportReady:
		s.world.Components.Teleporter.Mutate(payload.Pad, func(tp *component.TeleporterComponent) {
			tp.Busy = false
		})
	}
}

func (s *TeleporterSystem) Update() {
	if !s.enabled {
		return
	}

	dt := s.world.Resources.Time.DeltaTime.Seconds()
	s.idleClock += dt * 2
	pulse := parameter.TeleportPadScaleY * (1 + 0.1*math.Sin(s.idleClock))
	spin := vmath.QFromAngleAxisDegrees(dt*parameter.TeleportIndicatorSpin, vmath.V3Up())

	for _, pad := range s.world.Components.Teleporter.GetAllEntities() {
		tp, ok := s.world.Components.Teleporter.GetComponent(pad)
		if !ok {
			continue
		}

		if !tp.Busy {
			s.world.Components.Transform.Mutate(pad, func(tr *component.TransformComponent) {
				tr.Scale.Y = pulse
			})
		}

		if tp.Indicator.Valid() {
			s.world.Components.Transform.Mutate(tp.Indicator, func(tr *component.TransformComponent) {
				tr.Rotation = vmath.QNormalize(vmath.QMul(tr.Rotation, spin))
			})
		}
	}
}

func (s *TeleporterSystem) setPadVisual(pad core.Entity, emissive vmath.Color4, intensity, scaleY float64) {
	s.world.Components.Material.Mutate(pad, func(m *component.MaterialComponent) {
		m.Kind = component.MaterialPBR
		m.Emissive = emissive
		m.EmissiveIntensity = intensity
	})
	s.world.Components.Transform.Mutate(pad, func(tr *component.TransformComponent) {
		tr.Scale.Y = scaleY
	})
}
