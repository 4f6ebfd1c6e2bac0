package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/zengarden/core"
	"github.com/lixenwraith/zengarden/parameter"
)

// Scheduler runs scene logic on a fixed tick
// Per tick: advance time, fire due deferred tasks, dispatch events, run systems
// Step drives the same pipeline synchronously for hosts and tests
type Scheduler struct {
	world   *World
	timeRes *TimeResource
	router  *Router

	clock *PausableClock

	// Tick configuration
	tickInterval     time.Duration
	nextTickDeadline time.Time
	mu               sync.Mutex

	tickCount atomic.Uint64

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	// Tick completion notification for renderers, non-blocking send
	updateDone chan struct{}

	// Cached metric pointers
	statTicks  *atomic.Int64
	statEvents *atomic.Int64
}

// NewScheduler creates a scheduler with specified tick interval
// Systems already added to world that implement EventHandler are registered with the router
func NewScheduler(world *World, clock *PausableClock, tickInterval time.Duration) *Scheduler {
	if clock == nil {
		clock = NewPausableClock(nil)
	}
	if tickInterval <= 0 {
		tickInterval = parameter.TickInterval
	}

	reg := world.Resources.Status
	s := &Scheduler{
		world:        world,
		timeRes:      world.Resources.Time,
		router:       NewRouter(world.Resources.Event.Queue),
		clock:        clock,
		tickInterval: tickInterval,
		stopChan:     make(chan struct{}),
		updateDone:   make(chan struct{}, 1),
		statTicks:    reg.Ints.Get("engine.ticks"),
		statEvents:   reg.Ints.Get("engine.events"),
	}

	for _, sys := range world.Systems() {
		if h, ok := sys.(EventHandler); ok {
			s.router.Register(h)
		}
	}

	return s
}

// RegisterEventHandler adds an event handler to router, must be called before Start()
func (s *Scheduler) RegisterEventHandler(handler EventHandler) {
	s.router.Register(handler)
}

// TickInterval returns the fixed tick duration
func (s *Scheduler) TickInterval() time.Duration {
	return s.tickInterval
}

// TickCount returns the number of processed ticks
func (s *Scheduler) TickCount() uint64 {
	return s.tickCount.Load()
}

// Updates signals after each tick; a missed signal is coalesced
func (s *Scheduler) Updates() <-chan struct{} {
	return s.updateDone
}

// Start begins the scheduler loop
func (s *Scheduler) Start() {
	if s.running.CompareAndSwap(false, true) {
		s.wg.Add(1)
		core.Go(s.schedulerLoop)
	}
}

// Stop halts the scheduler loop and waits for the in-flight tick
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		if s.running.CompareAndSwap(true, false) {
			close(s.stopChan)
			s.wg.Wait()
		}
	})
}

// Step executes one tick of dt synchronously
// Must not be called concurrently with a running loop
func (s *Scheduler) Step(dt time.Duration) {
	s.processTick(dt)
}

// Run executes n ticks at the configured interval
func (s *Scheduler) Run(n int) {
	for i := 0; i < n; i++ {
		s.processTick(s.tickInterval)
	}
}

// schedulerLoop runs the main scheduling loop with pause awareness and drift correction
func (s *Scheduler) schedulerLoop() {
	defer s.wg.Done()

	s.mu.Lock()
	s.nextTickDeadline = s.clock.Now().Add(s.tickInterval)
	s.mu.Unlock()

	timer := time.NewTimer(s.tickInterval)
	defer timer.Stop()

	for {
		var sleepDuration time.Duration

		if s.clock.IsPaused() {
			// Longer sleep while paused to save CPU
			sleepDuration = s.tickInterval * 2
		} else {
			now := s.clock.Now()

			s.mu.Lock()
			deadline := s.nextTickDeadline
			if !now.Before(deadline) {
				s.nextTickDeadline = deadline.Add(s.tickInterval)

				// Too far behind: drop missed ticks instead of bursting
				if now.Sub(s.nextTickDeadline) > s.tickInterval*parameter.MaxTickCatchUp {
					s.nextTickDeadline = now.Add(s.tickInterval)
				}
				deadline = s.nextTickDeadline
				s.mu.Unlock()

				s.processTick(s.tickInterval)

				sleepDuration = deadline.Sub(s.clock.Now())
			} else {
				s.mu.Unlock()
				sleepDuration = deadline.Sub(now)
			}
		}

		if sleepDuration < 0 {
			sleepDuration = 0
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(sleepDuration)

		select {
		case <-timer.C:
		case <-s.stopChan:
			return
		}
	}
}

// processTick executes one clock cycle under the world update lock
func (s *Scheduler) processTick(dt time.Duration) {
	var consumed int

	s.world.RunSafe(func() {
		s.timeRes.Advance(s.clock.Now(), s.clock.RealTime(), dt)

		// Timers due at this tick become ordinary events
		s.world.Resources.Deferred.Advance()

		// Input, inbound sync and fired tasks
		consumed = s.router.DispatchAll()

		s.world.UpdateLocked()
	})

	ticks := s.tickCount.Add(1)
	s.statTicks.Store(int64(ticks))
	s.statEvents.Add(int64(consumed))

	select {
	case s.updateDone <- struct{}{}:
	default:
	}
}
