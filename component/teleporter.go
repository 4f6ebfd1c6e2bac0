package component

import (
	"time"

	"github.com/lixenwraith/zengarden/core"
)

// TeleporterComponent holds the cooldown guard of a teleporter pad
// While Busy, trigger entries are ignored outright
type TeleporterComponent struct {
	Busy      bool
	ArmedAt   time.Duration // scene elapsed time of the accepted entry
	Indicator core.Entity
}

// TriggerKind is the volume shape of a spatial trigger
type TriggerKind uint8

const (
	TriggerBox TriggerKind = iota
	TriggerSphere
)

// TriggerShape is a volume centered on its anchor entity
// Box uses Size as full extents, Sphere uses Size.X as radius
type TriggerShape struct {
	Kind TriggerKind
	Size [3]float64
}
