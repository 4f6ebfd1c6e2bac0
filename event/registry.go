package event

var typeNames = map[EventType]string{
	EventDirectionToggle:     "DirectionToggle",
	EventCosmeticToggle:      "CosmeticToggle",
	EventSystemCommand:       "SystemCommand",
	EventSyncReceived:        "SyncReceived",
	EventInteractionNear:     "InteractionNear",
	EventInteractionFar:      "InteractionFar",
	EventInteractionActivate: "InteractionActivate",
	EventInteractionComplete: "InteractionComplete",
	EventTeleportPerform:     "TeleportPerform",
	EventTeleportRevert:      "TeleportRevert",
	EventTeleportReady:       "TeleportReady",
}

// String returns the registered name, "Tick" for the zero type
func (et EventType) String() string {
	if et == eventNone {
		return "Tick"
	}
	if name, ok := typeNames[et]; ok {
		return name
	}
	return "Unknown"
}

// Lookup returns the EventType registered under name
func Lookup(name string) (EventType, bool) {
	if name == "Tick" {
		return eventNone, true
	}
	for et, n := range typeNames {
		if n == name {
			return et, true
		}
	}
	return 0, false
}
