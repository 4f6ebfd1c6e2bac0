package host

import (
	"sync"

	"github.com/lixenwraith/zengarden/vmath"
)

// SimPlayer is an in-memory player implementing PlayerProvider and Relocator
// Safe for concurrent use by the input goroutine and the tick thread
type SimPlayer struct {
	mu        sync.RWMutex
	position  vmath.Vec3
	lookAt    vmath.Vec3
	present   bool
	relocated int
}

// NewSimPlayer places a present player at pos
func NewSimPlayer(pos vmath.Vec3) *SimPlayer {
	return &SimPlayer{position: pos, present: true}
}

// PlayerPosition implements PlayerProvider
func (p *SimPlayer) PlayerPosition() (vmath.Vec3, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.position, p.present
}

// MovePlayerTo implements Relocator
func (p *SimPlayer) MovePlayerTo(position, lookAt vmath.Vec3) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.position = position
	p.lookAt = lookAt
	p.present = true
	p.relocated++
}

// SetPosition places the player without counting a relocation
func (p *SimPlayer) SetPosition(pos vmath.Vec3) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.position = pos
	p.present = true
}

// Move offsets the player
func (p *SimPlayer) Move(delta vmath.Vec3) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.position = p.position.Add(delta)
}

// SetPresent toggles position availability
func (p *SimPlayer) SetPresent(present bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.present = present
}

// LookAt returns the last relocation's look-at point
func (p *SimPlayer) LookAt() vmath.Vec3 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lookAt
}

// Relocations returns how many times MovePlayerTo was called
func (p *SimPlayer) Relocations() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.relocated
}
