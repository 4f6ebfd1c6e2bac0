package engine

import (
	"slices"
	"sync"

	"github.com/lixenwraith/zengarden/core"
)

// Store holds every component of type T densely, in entity insertion order
// index maps an entity to its slot in both dense and owners
type Store[T any] struct {
	mu     sync.RWMutex
	index  map[core.Entity]int
	owners []core.Entity
	dense  []T
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		index:  make(map[core.Entity]int),
		owners: make([]core.Entity, 0, 64),
		dense:  make([]T, 0, 64),
	}
}

// SetComponent overwrites in place or appends a new slot
func (s *Store[T]) SetComponent(e core.Entity, val T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[e]; ok {
		s.dense[i] = val
		return
	}
	s.index[e] = len(s.dense)
	s.owners = append(s.owners, e)
	s.dense = append(s.dense, val)
}

func (s *Store[T]) GetComponent(e core.Entity) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[e]
	if !ok {
		var zero T
		return zero, false
	}
	return s.dense[i], true
}

// Mutate runs fn against the stored value under the write lock
// Returns false without calling fn when e has no component
func (s *Store[T]) Mutate(e core.Entity, fn func(*T)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[e]
	if !ok {
		return false
	}
	fn(&s.dense[i])
	return true
}

// RemoveEntity deletes e's component, shifting later slots down
// Order is preserved because platform slots are index-bound to PlatformState
func (s *Store[T]) RemoveEntity(e core.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[e]
	if !ok {
		return
	}
	delete(s.index, e)
	s.owners = slices.Delete(s.owners, i, i+1)
	s.dense = slices.Delete(s.dense, i, i+1)
	for j := i; j < len(s.owners); j++ {
		s.index[s.owners[j]] = j
	}
}

func (s *Store[T]) HasEntity(e core.Entity) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[e]
	return ok
}

// GetAllEntities returns a copy of the owners in insertion order
func (s *Store[T]) GetAllEntities() []core.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.owners)
}

func (s *Store[T]) CountEntities() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.owners)
}

func (s *Store[T]) ClearAllComponents() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.index)
	s.owners = s.owners[:0]
	s.dense = s.dense[:0]
}
