// Package host defines the collaborators the scene core consumes from its host
// and simulated implementations used by the terminal viewer and tests
package host

import (
	"github.com/lixenwraith/zengarden/component"
	"github.com/lixenwraith/zengarden/core"
	"github.com/lixenwraith/zengarden/vmath"
)

// PlayerProvider reports the local player's position
// ok is false while the position is unavailable
type PlayerProvider interface {
	PlayerPosition() (pos vmath.Vec3, ok bool)
}

// InputProvider answers whether an action was triggered on an entity during the current tick
type InputProvider interface {
	IsTriggered(action Action, entity core.Entity) bool
}

// Relocator moves the player and orients their view toward lookAt
type Relocator interface {
	MovePlayerTo(position, lookAt vmath.Vec3)
}

// TriggerHost invokes onEnter once per qualifying entry of the player into the volume
// centered on anchor; continued presence does not re-fire
type TriggerHost interface {
	RegisterVolumeTrigger(anchor core.Entity, shape component.TriggerShape, onEnter func())
}

// CuePlayer plays short audio feedback
type CuePlayer interface {
	PlayCue(cue Cue)
}

// Action names an input action
type Action string

const (
	ActionPrimary Action = "primary" // Click / activate
)

// Cue names a feedback sound
type Cue string

const (
	CueLock     Cue = "lock"
	CueUnlock   Cue = "unlock"
	CueTeleport Cue = "teleport"
	CueToggle   Cue = "toggle"
)

// NopCues discards cues
type NopCues struct{}

func (NopCues) PlayCue(Cue) {}
