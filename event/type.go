package event

// EventType represents the type of scene event
// Zero is reserved for FSM tick transitions
type EventType int

const (
	eventNone EventType = iota

	// === Input Event ===

	// EventDirectionToggle requests reversal of the platform spiral
	// Trigger: Crystal click, host key binding
	// Consumer: PlatformSystem | Payload: nil
	EventDirectionToggle

	// EventCosmeticToggle shows or hides a cosmetic effect group
	// Trigger: Host key binding, restored settings
	// Consumer: DanceFloorSystem, ClubLightSystem | Payload: *CosmeticTogglePayload
	EventCosmeticToggle

	// EventSystemCommand enables or disables one system's per-tick work
	// Trigger: Host key binding, Scene.SetSystemEnabled
	// Consumer: every scene system, matched by name | Payload: *SystemCommandPayload
	EventSystemCommand

	// === Network Event ===

	// EventSyncReceived carries one inbound Sync Channel message
	// Trigger: Bus subscription handler (transport goroutine, queued)
	// Consumer: PlatformSystem | Payload: *SyncPayload
	EventSyncReceived

	// === Interaction Event ===

	// EventInteractionNear reports the player within interaction radius this tick
	// Trigger: InteractionSystem | Consumer: interaction FSM | Payload: nil
	EventInteractionNear

	// EventInteractionFar reports the player outside interaction radius this tick
	// Trigger: InteractionSystem | Consumer: interaction FSM | Payload: nil
	EventInteractionFar

	// EventInteractionActivate reports an in-range activate input on the focal entity
	// Trigger: InteractionSystem | Consumer: interaction FSM | Payload: nil
	EventInteractionActivate

	// EventInteractionComplete fires when the uninterruptible action clip has finished
	// Trigger: Deferred task scheduled on lock
	// Consumer: InteractionSystem | Payload: *InteractionCompletePayload
	EventInteractionComplete

	// === Teleporter Event ===

	// EventTeleportPerform relocates the player after the activation delay
	// Trigger: Deferred task scheduled on entry
	// Consumer: TeleporterSystem | Payload: *TeleportPayload
	EventTeleportPerform

	// EventTeleportRevert restores the pad visuals after the jump
	// Trigger: Deferred task scheduled by EventTeleportPerform
	// Consumer: TeleporterSystem | Payload: *TeleportPayload
	EventTeleportRevert

	// EventTeleportReady clears the cooldown guard
	// Trigger: Deferred task scheduled on entry
	// Consumer: TeleporterSystem | Payload: *TeleportPayload
	EventTeleportReady
)
