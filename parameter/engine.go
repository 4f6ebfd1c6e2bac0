package parameter

import "time"

// Scene Loop & Engine Timing
const (
	// TickInterval is the scene logic update interval (30 updates per second)
	TickInterval = time.Second / 30

	// FrameUpdateInterval is the terminal viewer redraw interval
	FrameUpdateInterval = 33 * time.Millisecond

	// MaxTickCatchUp is how far the scheduler may fall behind before it resynchronizes its deadline
	MaxTickCatchUp = 2
)

// ECS & Resources Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 2048

	// EventBufferMask is the bitmask for fast modulo operations (2048 - 1)
	EventBufferMask = 2047
)
