package system

import (
	"sync/atomic"

	"github.com/lixenwraith/zengarden/engine"
	"github.com/lixenwraith/zengarden/event"
	"github.com/lixenwraith/zengarden/parameter"
)

// DiagSystem samples store sizes and cross-store consistency for leak detection
type DiagSystem struct {
	world *engine.World

	tickCounter int64

	// Store counts
	statTransformCount *atomic.Int64
	statPlatformCount  *atomic.Int64
	statBeamCount      *atomic.Int64
	statTweenCount     *atomic.Int64
	statCubeCount      *atomic.Int64
	statLightCount     *atomic.Int64

	// Consistency checks
	statOrphanBeam  *atomic.Int64
	statOrphanTween *atomic.Int64

	// Entity lifecycle
	statEntityCreated   *atomic.Int64
	statEntityDestroyed *atomic.Int64
	statEntityLive      *atomic.Int64
	statEventDropped    *atomic.Int64

	enabled bool
}

// NewDiagSystem creates a new diagnostics system
func NewDiagSystem(world *engine.World) *DiagSystem {
	reg := world.Resources.Status

	s := &DiagSystem{
		world: world,

		statTransformCount: reg.Ints.Get("store.transform.count"),
		statPlatformCount:  reg.Ints.Get("store.platform.count"),
		statBeamCount:      reg.Ints.Get("store.beam.count"),
		statTweenCount:     reg.Ints.Get("store.tween.count"),
		statCubeCount:      reg.Ints.Get("store.dance_cube.count"),
		statLightCount:     reg.Ints.Get("store.club_light.count"),

		statOrphanBeam:  reg.Ints.Get("consistency.beam_without_platform"),
		statOrphanTween: reg.Ints.Get("consistency.tween_without_transform"),

		statEntityCreated:   reg.Ints.Get("entity.created_total"),
		statEntityDestroyed: reg.Ints.Get("entity.destroyed_total"),
		statEntityLive:      reg.Ints.Get("entity.live_estimate"),
		statEventDropped:    reg.Ints.Get("event.dropped"),
	}

	s.Init()
	return s
}

func (s *DiagSystem) Init() {
	s.tickCounter = 0
	s.enabled = true
}

// Name returns system's name
func (s *DiagSystem) Name() string {
	return "diagnostics"
}

func (s *DiagSystem) Priority() int {
	return parameter.PriorityDiagnostics
}

func (s *DiagSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSystemCommand,
	}
}

// HandleEvent pauses or resumes sampling; the last sampled values stay published
func (s *DiagSystem) HandleEvent(ev event.GameEvent) {
	applySystemCommand(ev, s.Name(), &s.enabled)
}

func (s *DiagSystem) Update() {
	if !s.enabled {
		return
	}

	s.tickCounter++

	// First tick samples so the HUD is populated at start
	if s.tickCounter%parameter.DiagnosticsSampleInterval != 1 {
		return
	}

	s.collectStoreCounts()
	s.collectConsistencyChecks()
	s.collectLifecycleMetrics()
}

func (s *DiagSystem) collectStoreCounts() {
	cs := &s.world.Components
	s.statTransformCount.Store(int64(cs.Transform.CountEntities()))
	s.statPlatformCount.Store(int64(cs.Platform.CountEntities()))
	s.statBeamCount.Store(int64(cs.Beam.CountEntities()))
	s.statTweenCount.Store(int64(cs.Tween.CountEntities()))
	s.statCubeCount.Store(int64(cs.DanceCube.CountEntities()))
	s.statLightCount.Store(int64(cs.ClubLight.CountEntities()))
}

func (s *DiagSystem) collectConsistencyChecks() {
	cs := &s.world.Components
	var orphanBeam, orphanTween int64

	// Beam bound to an entity that is no longer a positioned platform
	for _, e := range cs.Beam.GetAllEntities() {
		beam, ok := cs.Beam.GetComponent(e)
		if !ok {
			continue
		}
		if !cs.Platform.HasEntity(beam.Platform) || !cs.Transform.HasEntity(beam.Platform) {
			orphanBeam++
		}
	}

	// Tween with nothing to move
	for _, e := range cs.Tween.GetAllEntities() {
		if !cs.Transform.HasEntity(e) {
			orphanTween++
		}
	}

	s.statOrphanBeam.Store(orphanBeam)
	s.statOrphanTween.Store(orphanTween)
}

func (s *DiagSystem) collectLifecycleMetrics() {
	created := s.world.CreatedCount()
	destroyed := s.world.DestroyedCount()

	s.statEntityCreated.Store(created)
	s.statEntityDestroyed.Store(destroyed)
	s.statEntityLive.Store(created - destroyed)
	s.statEventDropped.Store(int64(s.world.Resources.Event.Queue.Dropped()))
}
