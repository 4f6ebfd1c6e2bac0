// Package scene assembles the garden: entities, systems and the scheduler that drives them
package scene

import (
	"log"
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/lixenwraith/zengarden/config"
	"github.com/lixenwraith/zengarden/core"
	"github.com/lixenwraith/zengarden/engine"
	"github.com/lixenwraith/zengarden/event"
	"github.com/lixenwraith/zengarden/host"
	"github.com/lixenwraith/zengarden/network"
	"github.com/lixenwraith/zengarden/system"
	"github.com/lixenwraith/zengarden/vmath"
)

// Host bundles the collaborators the scene consumes
// Nil Triggers makes the scene simulate volumes against Player
type Host struct {
	Player    host.PlayerProvider
	Relocator host.Relocator
	Input     host.InputProvider
	Triggers  host.TriggerHost
	Cues      host.CuePlayer
}

// Options configures Build
type Options struct {
	Config *config.Scene
	Host   Host
	Bus    network.Bus
	Logger *log.Logger
	Clock  *engine.PausableClock

	// Epoch offsets the platform motion clock; viewers sharing a bus share an epoch
	Epoch time.Duration
}

// Scene is one running garden instance
type Scene struct {
	World     *engine.World
	Scheduler *engine.Scheduler
	Config    *config.Scene

	Interaction *system.InteractionSystem
	Platform    *system.PlatformSystem
	Beam        *system.BeamSystem
	Teleporter  *system.TeleporterSystem
	Pulse       *system.PulseSystem
	DanceFloor  *system.DanceFloorSystem
	ClubLight   *system.ClubLightSystem
	Diag        *system.DiagSystem

	Centerpiece core.Entity
	Crystal     core.Entity
	Pad         core.Entity
	Ground      core.Entity
	Leaves      core.Entity
	Platforms   []core.Entity
	Beams       []core.Entity
}

// Build creates every entity and system of the garden
func Build(opts Options) (*Scene, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Host.Player == nil {
		return nil, errors.New("scene: player provider required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	w := engine.NewWorld()
	w.Resources.Time.Epoch = opts.Epoch

	sc := &Scene{
		World:  w,
		Config: cfg,
	}
	rng := vmath.NewFastRand(cfg.Platforms.Seed + 1)
	if cfg.Platforms.Seed == 0 {
		rng = vmath.NewFastRand(uint64(time.Now().UnixNano()))
	}

	sc.buildGarden(cfg)
	sc.buildPlatforms(cfg)
	sc.buildCenterpiece(cfg)
	sc.buildTeleporter(cfg)
	sc.buildDanceFloor(cfg, rng)
	sc.buildClubLights(cfg)

	// Host collaborators that are also systems run inside the tick
	if sys, ok := opts.Host.Input.(engine.System); ok {
		w.AddSystem(sys)
	}
	triggers := opts.Host.Triggers
	if triggers == nil {
		ts := host.NewTriggerSystem(w, opts.Host.Player)
		w.AddSystem(ts)
		triggers = ts
	}

	interaction, err := system.NewInteractionSystem(w, sc.Centerpiece, cfg.Interaction,
		opts.Host.Player, opts.Host.Input, opts.Host.Cues, logger)
	if err != nil {
		return nil, errors.Wrap(err, "interaction graph")
	}
	sc.Interaction = interaction
	sc.Platform = system.NewPlatformSystem(w, sc.Platforms, cfg.Platforms, cfg.Sync, opts.Bus, logger)
	sc.Beam = system.NewBeamSystem(w, cfg.Beams)
	sc.Teleporter = system.NewTeleporterSystem(w, cfg.Teleporter, opts.Host.Relocator, opts.Host.Cues)
	sc.Teleporter.Register(triggers, sc.Pad)
	sc.Pulse = system.NewPulseSystem(w)
	sc.DanceFloor = system.NewDanceFloorSystem(w)
	sc.ClubLight = system.NewClubLightSystem(w, cfg.ClubLights)
	sc.Diag = system.NewDiagSystem(w)

	pulseTarget := config.Color(cfg.Pulse.Target)
	sc.Pulse.Attach(sc.Ground, config.Color(cfg.Garden.GroundColor), pulseTarget, cfg.Pulse.Speed)
	sc.Pulse.Attach(sc.Leaves, config.Color(cfg.Garden.LeavesColor), pulseTarget, cfg.Pulse.Speed)

	w.AddSystem(interaction)
	w.AddSystem(sc.Platform)
	w.AddSystem(system.NewTweenSystem(w))
	w.AddSystem(sc.Beam)
	w.AddSystem(sc.Teleporter)
	w.AddSystem(sc.Pulse)
	w.AddSystem(sc.DanceFloor)
	w.AddSystem(sc.ClubLight)
	w.AddSystem(sc.Diag)
	if sc.Crystal.Valid() {
		w.AddSystem(system.NewCrystalSystem(w, opts.Host.Input, sc.Platform, opts.Host.Cues))
	}

	if !cfg.DanceFloor.Enabled {
		sc.SetCosmetic(event.CosmeticDanceFloor, false)
	}
	if !cfg.ClubLights.Enabled {
		sc.SetCosmetic(event.CosmeticClubLights, false)
	}

	sc.Scheduler = engine.NewScheduler(w, opts.Clock, cfg.TickInterval())
	return sc, nil
}

// Start runs the fixed-tick loop in the background
func (sc *Scene) Start() {
	sc.Scheduler.Start()
}

// Stop halts the tick loop
func (sc *Scene) Stop() {
	sc.Scheduler.Stop()
}

// Step runs one tick of dt synchronously
func (sc *Scene) Step(dt time.Duration) {
	sc.Scheduler.Step(dt)
}

// ToggleDirection requests a platform direction flip on the next tick
// Safe from any goroutine
func (sc *Scene) ToggleDirection() {
	sc.World.PushEvent(event.EventDirectionToggle, nil)
}

// SetCosmetic shows or hides a cosmetic effect group on the next tick
func (sc *Scene) SetCosmetic(effect string, enabled bool) {
	sc.World.PushEvent(event.EventCosmeticToggle, &event.CosmeticTogglePayload{
		Effect:  effect,
		Enabled: enabled,
	})
}

// SetSystemEnabled pauses or resumes the per-tick work of the named system on the next tick
func (sc *Scene) SetSystemEnabled(name string, enabled bool) {
	sc.World.PushEvent(event.EventSystemCommand, &event.SystemCommandPayload{
		System:  name,
		Enabled: enabled,
	})
}

// Focus returns the clickable entity closest to pos within its reach
// Hosts use it to decide what an activate key press targets
func (sc *Scene) Focus(pos vmath.Vec3) (core.Entity, bool) {
	var (
		best     core.Entity
		bestDist = math.Inf(1)
	)
	for _, e := range sc.World.Components.PointerEvents.GetAllEntities() {
		pe, ok := sc.World.Components.PointerEvents.GetComponent(e)
		if !ok {
			continue
		}
		tr, ok := sc.World.Components.Transform.GetComponent(e)
		if !ok {
			continue
		}
		d := vmath.V3Dist(pos, tr.Position)
		if pe.MaxDistance > 0 && d > pe.MaxDistance {
			continue
		}
		if d < bestDist {
			best, bestDist = e, d
		}
	}
	return best, best.Valid()
}
