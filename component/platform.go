package component

import (
	"time"

	"github.com/lixenwraith/zengarden/vmath"
)

// PlatformComponent tags one of the N moving platforms
// Index maps the entity to PlatformState.Positions[Index]
type PlatformComponent struct {
	Index int
}

// TweenComponent is a decaying correction layered over locally computed motion
// Offset is the displayed minus the adopted position at the moment of adoption
// Present only while smoothing is in progress
type TweenComponent struct {
	Offset   vmath.Vec3
	Elapsed  time.Duration
	Duration time.Duration
}

// Remaining returns the part of Offset still applied at the current progress
func (t TweenComponent) Remaining() vmath.Vec3 {
	return t.Offset.Mul(1 - t.Progress())
}

// Progress returns normalized completion in [0,1]
func (t TweenComponent) Progress() float64 {
	if t.Duration <= 0 {
		return 1
	}
	p := float64(t.Elapsed) / float64(t.Duration)
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}
