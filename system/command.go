package system

import "github.com/lixenwraith/zengarden/event"

// applySystemCommand sets *enabled when ev is a system command addressed to name
// Reports whether ev was a system command at all
func applySystemCommand(ev event.GameEvent, name string, enabled *bool) bool {
	if ev.Type != event.EventSystemCommand {
		return false
	}
	if payload, ok := ev.Payload.(*event.SystemCommandPayload); ok && payload.System == name {
		*enabled = payload.Enabled
	}
	return true
}
