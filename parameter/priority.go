package parameter

// System Execution Priorities (lower runs first)
// Writers of platform transforms run before the beam reader so beams see same-tick positions
const (
	PriorityInput       = 0  // Latches host input for the tick
	PriorityTrigger     = 10 // Spatial trigger detection, before consumers react
	PriorityInteraction = 20
	PriorityCrystal     = 25
	PriorityPlatform    = 30
	PriorityTween       = 40 // After local motion, owns smoothing platforms
	PriorityBeam        = 50 // After every platform writer
	PriorityTeleporter  = 60
	PriorityPulse       = 70
	PriorityDanceFloor  = 80
	PriorityClubLight   = 90
	PriorityDiagnostics = 100 // Observes the settled tick
)

// DiagnosticsSampleInterval is the tick stride between diagnostics samples
const DiagnosticsSampleInterval = 100
