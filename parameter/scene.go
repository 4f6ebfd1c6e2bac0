package parameter

import "time"

// Platform motion
const (
	PlatformCount        = 20
	PlatformRadius       = 5.0
	PlatformAngularSpeed = 0.2 // radians per second per unit direction
	PlatformRiseStep     = 0.005
	PlatformCeiling      = 17.0
	PlatformSpinRate     = 100.0 // degrees per second
	PlatformScale        = 1.5
	PlatformRecolorEvery = 3 * time.Second
)

// Platform sync
const (
	PlatformTopic         = "platform_state_change"
	PlatformSmoothing     = 500 * time.Millisecond
	PlatformSnapTolerance = 0.25
)

// Beam binding
const (
	BeamSourceY     = 8.5
	BeamThickness   = 0.05
	BeamIntensity   = 5.0
	BeamCorrectionX = 90.0 // degrees, cylinder mesh runs along +Y
)

// Pulse effect
const (
	PulseSpeed = 0.5
)

// Interaction
const (
	InteractionRadius     = 6.0
	InteractionActionClip = "Click_Anim"
	InteractionIdleClip   = "Idle_Anim"
	InteractionNearClip   = "Proximity_Anim"
	// InteractionActionLength is 900 frames at 24 fps
	InteractionActionLength = 37250 * time.Millisecond
)

// Teleporter
const (
	TeleportActionDelay     = 200 * time.Millisecond
	TeleportRevertDelay     = 500 * time.Millisecond
	TeleportCooldown        = 3000 * time.Millisecond
	TeleportPadScaleY       = 0.1
	TeleportActiveScaleY    = 0.2
	TeleportIdleIntensity   = 0.7
	TeleportActiveIntensity = 2.0
	TeleportIndicatorSpin   = 150.0 // degrees per second
)
