package event

import (
	"time"

	"github.com/lixenwraith/zengarden/core"
)

// GameEvent is one queued scene event
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}

// Cosmetic effect groups
const (
	CosmeticDanceFloor = "dance_floor"
	CosmeticClubLights = "club_lights"
)

// CosmeticTogglePayload shows or hides a cosmetic effect group
type CosmeticTogglePayload struct {
	Effect  string
	Enabled bool
}

// SystemCommandPayload addresses one system by its Name
type SystemCommandPayload struct {
	System  string
	Enabled bool
}

// SyncPayload is one decoded Sync Channel envelope
// Body is still encoded; the consuming system owns its schema
type SyncPayload struct {
	Topic  string
	Sender string
	Seq    uint64
	Body   []byte
}

// InteractionCompletePayload identifies the lock the completion belongs to
type InteractionCompletePayload struct {
	Owner   core.Entity
	Action  string
	ArmedAt time.Duration
}

// TeleportPayload identifies the teleporter pad a deferred step belongs to
type TeleportPayload struct {
	Pad core.Entity
}
