package engine

import "github.com/lixenwraith/zengarden/event"

// System is run once per tick in ascending Priority order
type System interface {
	Name() string
	Priority() int // Lower values run first
	Update()
}

// EventHandler processes specific event types
// Systems implementing it are registered with the scheduler's router
type EventHandler interface {
	// HandleEvent processes a single event
	// Called synchronously during the dispatch phase, before any System.Update
	HandleEvent(ev event.GameEvent)

	// EventTypes returns the event types this handler processes
	EventTypes() []event.EventType
}
