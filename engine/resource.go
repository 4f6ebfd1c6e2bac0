package engine

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/zengarden/event"
	"github.com/lixenwraith/zengarden/status"
)

// Resource holds singleton scene resources, accessed via World.Resources
type Resource struct {
	Time     *TimeResource
	Event    *EventQueueResource
	Deferred *Deferred

	// Telemetry
	Status *status.Registry
}

// TimeResource wraps time data for systems
// Updated by the Scheduler at the start of every tick, under the world lock
type TimeResource struct {
	// GameTime is the current time in the scene (affected by pause)
	GameTime time.Time

	// RealTime is the wall-clock time (unaffected by pause)
	RealTime time.Time

	// DeltaTime is the duration since the last tick
	DeltaTime time.Duration

	// Elapsed is the sum of all DeltaTime values since the scene started
	Elapsed time.Duration

	// Epoch offsets the motion clock so independent viewers share a time base
	// Zero keeps the clock relative to scene start
	Epoch time.Duration

	// FrameNumber is the current tick count
	// Atomic since PushEvent stamps events from transport goroutines
	FrameNumber atomic.Int64
}

// Advance modifies TimeResource fields in-place (zero allocation)
// Must be called under world lock to prevent races with systems reads
func (tr *TimeResource) Advance(gameTime, realTime time.Time, dt time.Duration) {
	tr.GameTime = gameTime
	tr.RealTime = realTime
	tr.DeltaTime = dt
	tr.Elapsed += dt
	tr.FrameNumber.Add(1)
}

// MotionSeconds returns the shared motion clock in seconds
func (tr *TimeResource) MotionSeconds() float64 {
	return (tr.Epoch + tr.Elapsed).Seconds()
}

// EventQueueResource wraps the event queue for systems access
type EventQueueResource struct {
	Queue *event.EventQueue
}
