package engine

import (
	"sort"
	"sync"
	"time"

	"github.com/lixenwraith/zengarden/event"
)

// Task is a fire-once deferred record
// When due it is delivered as an ordinary event carrying Payload
type Task struct {
	Event   event.EventType
	Payload any
	Due     time.Duration // Scene elapsed time at which the task becomes due

	seq uint64
}

// Deferred holds pending tasks keyed by scene elapsed time
// Tasks are not cancellable; owners guard against re-entrancy in their own state
type Deferred struct {
	mu      sync.Mutex
	pending []Task
	nextSeq uint64

	time  *TimeResource
	queue *event.EventQueue
}

// NewDeferred creates a task facility reading the tick clock and firing into queue
func NewDeferred(timeRes *TimeResource, queue *event.EventQueue) *Deferred {
	return &Deferred{
		time:  timeRes,
		queue: queue,
	}
}

// After schedules task to fire no earlier than delay from the current tick
// Returns the absolute due time
func (d *Deferred) After(delay time.Duration, task Task) time.Duration {
	if delay < 0 {
		delay = 0
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	task.Due = d.time.Elapsed + delay
	task.seq = d.nextSeq
	d.nextSeq++
	d.pending = append(d.pending, task)
	return task.Due
}

// Advance pushes every due task into the event queue, earliest first
// Tasks due at the same time fire in scheduling order
func (d *Deferred) Advance() int {
	now := d.time.Elapsed

	d.mu.Lock()
	var due []Task
	remaining := d.pending[:0]
	for _, t := range d.pending {
		if t.Due <= now {
			due = append(due, t)
		} else {
			remaining = append(remaining, t)
		}
	}
	d.pending = remaining
	d.mu.Unlock()

	if len(due) == 0 {
		return 0
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].Due != due[j].Due {
			return due[i].Due < due[j].Due
		}
		return due[i].seq < due[j].seq
	})

	for _, t := range due {
		d.queue.Push(event.GameEvent{
			Type:    t.Event,
			Payload: t.Payload,
			Frame:   d.time.FrameNumber.Load(),
		})
	}
	return len(due)
}

// Pending returns the number of scheduled tasks not yet fired
func (d *Deferred) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// PendingFor returns the number of scheduled tasks of the given event type
func (d *Deferred) PendingFor(t event.EventType) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, task := range d.pending {
		if task.Event == t {
			n++
		}
	}
	return n
}
