package event

import (
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/zengarden/parameter"
)

// EventQueue is a bounded FIFO shared by transport goroutines, host input and the tick thread
// When full, the oldest pending event is discarded and counted in Dropped
type EventQueue struct {
	mu      sync.Mutex
	ring    [parameter.EventQueueSize]GameEvent
	head    int
	pending int
	dropped atomic.Uint64
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push appends event; safe from any goroutine
func (eq *EventQueue) Push(event GameEvent) {
	eq.mu.Lock()
	if eq.pending == parameter.EventQueueSize {
		eq.ring[eq.head] = GameEvent{}
		eq.head = (eq.head + 1) & parameter.EventBufferMask
		eq.pending--
		eq.dropped.Add(1)
	}
	eq.ring[(eq.head+eq.pending)&parameter.EventBufferMask] = event
	eq.pending++
	eq.mu.Unlock()
}

// Consume drains every pending event in push order, nil when empty
func (eq *EventQueue) Consume() []GameEvent {
	eq.mu.Lock()
	defer eq.mu.Unlock()

	if eq.pending == 0 {
		return nil
	}
	out := make([]GameEvent, eq.pending)
	for i := range out {
		idx := (eq.head + i) & parameter.EventBufferMask
		out[i] = eq.ring[idx]
		eq.ring[idx] = GameEvent{}
	}
	eq.head = (eq.head + eq.pending) & parameter.EventBufferMask
	eq.pending = 0
	return out
}

func (eq *EventQueue) Len() int {
	eq.mu.Lock()
	defer eq.mu.Unlock()
	return eq.pending
}

// Dropped returns how many events were discarded by overflow since creation
func (eq *EventQueue) Dropped() uint64 {
	return eq.dropped.Load()
}
