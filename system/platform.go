package system

import (
	"log"
	"math"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/zengarden/component"
	"github.com/lixenwraith/zengarden/config"
	"github.com/lixenwraith/zengarden/core"
	"github.com/lixenwraith/zengarden/engine"
	"github.com/lixenwraith/zengarden/event"
	"github.com/lixenwraith/zengarden/network"
	"github.com/lixenwraith/zengarden/parameter"
	"github.com/lixenwraith/zengarden/status"
	"github.com/lixenwraith/zengarden/vmath"
)

// PlatformSystem moves the orbiting platforms and keeps PlatformState in sync with other viewers
// Bus callbacks only enqueue; every state mutation happens on the tick thread
type PlatformSystem struct {
	world *engine.World

	cfg     config.PlatformConfig
	syncCfg config.SyncConfig

	entities []core.Entity
	state    network.PlatformState

	bus      network.Bus
	identity *network.Identity
	filter   *network.SeqFilter
	logger   *log.Logger

	rng        *vmath.FastRand
	recolorAcc time.Duration

	statPublished  *atomic.Int64
	statReceived   *atomic.Int64
	statApplied    *atomic.Int64
	statStale      *atomic.Int64
	statMalformed  *atomic.Int64
	statSelf       *atomic.Int64
	statPublishErr *atomic.Int64
	statDirection  *atomic.Int64
	statClock      *status.AtomicFloat

	enabled bool
}

// NewPlatformSystem takes ownership of entities, index i driving PlatformState.Positions[i]
// bus may be nil for a standalone viewer
func NewPlatformSystem(
	world *engine.World,
	entities []core.Entity,
	cfg config.PlatformConfig,
	syncCfg config.SyncConfig,
	bus network.Bus,
	logger *log.Logger,
) *PlatformSystem {
	if logger == nil {
		logger = log.Default()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	reg := world.Resources.Status
	s := &PlatformSystem{
		world:          world,
		cfg:            cfg,
		syncCfg:        syncCfg,
		entities:       entities,
		bus:            bus,
		identity:       network.NewIdentity(),
		filter:         network.NewSeqFilter(),
		logger:         logger,
		rng:            vmath.NewFastRand(seed),
		statPublished:  reg.Ints.Get("sync.published"),
		statReceived:   reg.Ints.Get("sync.received"),
		statApplied:    reg.Ints.Get("sync.applied"),
		statStale:      reg.Ints.Get("sync.stale"),
		statMalformed:  reg.Ints.Get("sync.malformed"),
		statSelf:       reg.Ints.Get("sync.self"),
		statPublishErr: reg.Ints.Get("sync.publish_errors"),
		statDirection:  reg.Ints.Get("platform.direction"),
		statClock:      reg.Floats.Get("motion.clock"),
	}
	s.Init()

	if bus != nil {
		bus.Subscribe(syncCfg.Topic, s.receive)
	}
	return s
}

// Init captures the current platform positions, resets direction to +1 and picks fresh colors
func (s *PlatformSystem) Init() {
	s.enabled = true
	s.recolorAcc = 0
	s.state = network.PlatformState{
		Positions: make([]vmath.Vec3, len(s.entities)),
		Direction: 1,
	}
	for i, e := range s.entities {
		if t, ok := s.world.Components.Transform.GetComponent(e); ok {
			s.state.Positions[i] = t.Position
		}
	}
	s.statDirection.Store(1)
	s.recolor()
}

// Name returns system's name
func (s *PlatformSystem) Name() string {
	return "platform"
}

func (s *PlatformSystem) Priority() int {
	return parameter.PriorityPlatform
}

func (s *PlatformSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventDirectionToggle,
		event.EventSyncReceived,
		event.EventSystemCommand,
	}
}

// HandleEvent keeps merging remote direction while disabled so a resumed viewer is current
func (s *PlatformSystem) HandleEvent(ev event.GameEvent) {
	if applySystemCommand(ev, s.Name(), &s.enabled) {
		if !s.enabled {
			s.settle()
		}
		return
	}
	switch ev.Type {
	case event.EventDirectionToggle:
		s.ToggleDirection()
	case event.EventSyncReceived:
		if payload, ok := ev.Payload.(*event.SyncPayload); ok {
			s.applyRemote(payload)
		}
	}
}

func (s *PlatformSystem) Update() {
	if !s.enabled {
		return
	}

	t := s.world.Resources.Time.MotionSeconds()
	s.statClock.Store(t)
	n := len(s.entities)
	center := s.cfg.Center.V3()
	spin := vmath.QFromEulerDegrees(0, math.Mod(t*s.cfg.SpinRate, 360), 0)

	// Local motion advances from the state record, never from the displayed transform
	// TweenSystem layers any sync correction on top later in the tick
	for i, entity := range s.entities {
		angle := PlatformAngle(t, s.cfg.AngularSpeed, s.state.Direction, i, n)
		rise := s.state.Positions[i].Y - center.Y + s.cfg.Step
		if rise >= s.cfg.Ceiling {
			rise = 0
		}
		pos := vmath.V3OnCircle(center, s.cfg.Radius, angle)
		pos.Y = center.Y + rise
		s.state.Positions[i] = pos

		s.world.Components.Transform.Mutate(entity, func(tr *component.TransformComponent) {
			tr.Position = pos
			tr.Rotation = spin
		})
	}

	if s.cfg.RecolorEvery > 0 {
		s.recolorAcc += s.world.Resources.Time.DeltaTime
		if s.recolorAcc >= s.cfg.RecolorEvery {
			s.recolorAcc -= s.cfg.RecolorEvery
			s.recolor()
		}
	}

	s.publish()
}

// settle ends in-flight corrections at the displayed height
func (s *PlatformSystem) settle() {
	for i, entity := range s.entities {
		if !s.world.Components.Tween.HasEntity(entity) {
			continue
		}
		if tr, ok := s.world.Components.Transform.GetComponent(entity); ok {
			s.state.Positions[i].Y = tr.Position.Y
		}
		s.world.Components.Tween.RemoveEntity(entity)
	}
}

// PlatformAngle is the orbital angle of platform i of n at motion time t seconds
func PlatformAngle(t, speed float64, direction, i, n int) float64 {
	return t*speed*float64(direction) + float64(i)*2*math.Pi/float64(n)
}

// ToggleDirection reverses orbit direction and publishes the new state immediately
func (s *PlatformSystem) ToggleDirection() {
	s.state.Direction = -s.state.Direction
	s.state.Toggles++
	s.statDirection.Store(int64(s.state.Direction))
	s.publish()
}

// State returns a copy of the authoritative platform state
func (s *PlatformSystem) State() network.PlatformState {
	return s.state.Clone()
}

// Direction returns the current orbit direction, +1 or -1
func (s *PlatformSystem) Direction() int {
	return s.state.Direction
}

// Entities returns the platform entities in index order
func (s *PlatformSystem) Entities() []core.Entity {
	return s.entities
}

// Identity returns the participant identity stamped on outbound state
func (s *PlatformSystem) Identity() *network.Identity {
	return s.identity
}

func (s *PlatformSystem) recolor() {
	for _, entity := range s.entities {
		albedo := vmath.RGB(s.rng.Float64(), s.rng.Float64(), s.rng.Float64())
		s.world.Components.Material.Mutate(entity, func(m *component.MaterialComponent) {
			m.Albedo = albedo
		})
	}
}

// publish is fire and forget; failures are logged and never retried
func (s *PlatformSystem) publish() {
	if s.bus == nil {
		return
	}

	body, err := network.EncodePlatformState(s.state)
	if err != nil {
		s.logger.Printf("[sync] encode platform state: %v", err)
		return
	}
	data, err := s.identity.Seal(s.syncCfg.Topic, body)
	if err != nil {
		s.logger.Printf("[sync] %v", err)
		return
	}
	if err := s.bus.Publish(s.syncCfg.Topic, data); err != nil {
		s.statPublishErr.Add(1)
		s.logger.Printf("[sync] publish: %v", err)
		return
	}
	s.statPublished.Add(1)
}

// receive runs on the transport goroutine
func (s *PlatformSystem) receive(data []byte) {
	s.statReceived.Add(1)

	env, err := network.Open(data)
	if err != nil {
		s.statMalformed.Add(1)
		return
	}
	if env.Topic != s.syncCfg.Topic {
		s.statMalformed.Add(1)
		return
	}

	s.world.PushEvent(event.EventSyncReceived, &event.SyncPayload{
		Topic:  env.Topic,
		Sender: env.Sender,
		Seq:    env.Seq,
		Body:   env.Body,
	})
}

// applyRemote merges an inbound state
// Direction follows the side that has seen more toggles. Heights are adopted only
// from a peer that is ahead on the rise cycle, so two viewers settle on the leader
// instead of chasing each other. XZ derives from the shared clock and is not taken
// The displayed jump is absorbed by a decaying correction instead of a snap
func (s *PlatformSystem) applyRemote(p *event.SyncPayload) {
	if p.Topic != s.syncCfg.Topic {
		return
	}
	if p.Sender == s.identity.ID() {
		s.statSelf.Add(1)
		return
	}
	if !s.filter.Accept(p.Sender, p.Seq) {
		s.statStale.Add(1)
		return
	}

	remote, err := network.DecodePlatformState(p.Body, len(s.entities))
	if err != nil {
		s.statMalformed.Add(1)
		return
	}

	if remote.Toggles > s.state.Toggles {
		s.state.Direction = remote.Direction
		s.state.Toggles = remote.Toggles
		s.statDirection.Store(int64(remote.Direction))
	}
	// Corrections ride on local motion, so a frozen viewer takes heights on resume
	if !s.enabled {
		s.statApplied.Add(1)
		return
	}

	center := s.cfg.Center.V3()
	for i, entity := range s.entities {
		local := s.state.Positions[i].Y - center.Y
		lead := riseLead(local, remote.Positions[i].Y-center.Y, s.cfg.Ceiling)
		if lead <= s.syncCfg.SnapTolerance || lead >= s.cfg.Ceiling/2 {
			continue
		}

		adopted := s.state.Positions[i]
		adopted.Y = remote.Positions[i].Y
		s.state.Positions[i] = adopted

		tr, ok := s.world.Components.Transform.GetComponent(entity)
		if !ok {
			continue
		}
		if s.syncCfg.Smoothing <= 0 {
			tr.Position = adopted
			s.world.Components.Transform.SetComponent(entity, tr)
			s.world.Components.Tween.RemoveEntity(entity)
			continue
		}
		// Offset starts from what is on screen, so replacing an in-flight tween stays continuous
		s.world.Components.Tween.SetComponent(entity, component.TweenComponent{
			Offset:   tr.Position.Sub(adopted),
			Duration: s.syncCfg.Smoothing,
		})
	}
	s.statApplied.Add(1)
}

// riseLead returns how far remote is ahead of local on the wrapping rise cycle, in [0, ceiling)
func riseLead(local, remote, ceiling float64) float64 {
	if ceiling <= 0 {
		return 0
	}
	d := math.Mod(remote-local, ceiling)
	if d < 0 {
		d += ceiling
	}
	return d
}
