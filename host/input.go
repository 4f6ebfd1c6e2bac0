package host

import (
	"sync"

	"github.com/lixenwraith/zengarden/core"
	"github.com/lixenwraith/zengarden/parameter"
)

type trigger struct {
	action Action
	entity core.Entity
}

// InputState buffers host input and exposes it for exactly one tick
// Trigger may be called from any goroutine; the latch runs first in every tick
type InputState struct {
	mu      sync.Mutex
	pending map[trigger]struct{}
	active  map[trigger]struct{}
}

func NewInputState() *InputState {
	return &InputState{
		pending: make(map[trigger]struct{}),
		active:  make(map[trigger]struct{}),
	}
}

// Trigger records action on entity for the next tick
func (s *InputState) Trigger(action Action, entity core.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[trigger{action, entity}] = struct{}{}
}

// IsTriggered implements InputProvider
func (s *InputState) IsTriggered(action Action, entity core.Entity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.active[trigger{action, entity}]
	return ok
}

// Name returns system's name
func (s *InputState) Name() string {
	return "input"
}

func (s *InputState) Priority() int {
	return parameter.PriorityInput
}

// Update swaps pending input into the active set for this tick
func (s *InputState) Update() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active, s.pending = s.pending, s.active
	clear(s.pending)
}
