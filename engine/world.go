package engine

import (
	"cmp"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/zengarden/core"
	"github.com/lixenwraith/zengarden/event"
	"github.com/lixenwraith/zengarden/status"
)

// World owns the component stores, the shared resources and the ordered system list
type World struct {
	Resources  *Resource
	Components ComponentStore

	allStores []AnyStore

	sysMu   sync.RWMutex
	systems []System

	// Held for the whole of a tick
	updateMutex sync.Mutex

	created   atomic.Int64
	destroyed atomic.Int64
}

func NewWorld() *World {
	timeRes := &TimeResource{}
	queue := event.NewEventQueue()

	w := &World{
		Resources: &Resource{
			Time:     timeRes,
			Event:    &EventQueueResource{Queue: queue},
			Deferred: NewDeferred(timeRes, queue),
			Status:   status.NewRegistry(),
		},
	}
	initComponentStores(w)
	return w
}

// CreateEntity allocates the next id; ids are never reused
func (w *World) CreateEntity() core.Entity {
	return core.Entity(w.created.Add(1))
}

// DestroyEntity detaches e from every store
func (w *World) DestroyEntity(e core.Entity) {
	for _, store := range w.allStores {
		store.RemoveEntity(e)
	}
	w.destroyed.Add(1)
}

func (w *World) CreatedCount() int64 {
	return w.created.Load()
}

// DestroyedCount counts DestroyEntity calls, repeated calls on one entity included
func (w *World) DestroyedCount() int64 {
	return w.destroyed.Load()
}

func (w *World) HasAnyComponent(e core.Entity) bool {
	return slices.ContainsFunc(w.allStores, func(s AnyStore) bool { return s.HasEntity(e) })
}

// AddSystem inserts system keeping ascending priority; equal priorities keep insertion order
func (w *World) AddSystem(system System) {
	w.sysMu.Lock()
	defer w.sysMu.Unlock()

	w.systems = append(w.systems, system)
	slices.SortStableFunc(w.systems, func(a, b System) int {
		return cmp.Compare(a.Priority(), b.Priority())
	})
}

// Systems returns the systems in run order
func (w *World) Systems() []System {
	w.sysMu.RLock()
	defer w.sysMu.RUnlock()
	return slices.Clone(w.systems)
}

// RunSafe runs fn under the tick lock
func (w *World) RunSafe(fn func()) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()
	fn()
}

// UpdateLocked runs one Update per system; caller holds the tick lock
func (w *World) UpdateLocked() {
	for _, system := range w.Systems() {
		system.Update()
	}
}

// PushEvent queues an event stamped with the current frame
// Safe from any goroutine; consumed on the tick thread
func (w *World) PushEvent(eventType event.EventType, payload any) {
	w.Resources.Event.Queue.Push(event.GameEvent{
		Type:    eventType,
		Payload: payload,
		Frame:   w.Resources.Time.FrameNumber.Load(),
	})
}
