package asset

// InteractionFSMConfig is the centerpiece interaction graph
// Locked declares no Near/Far/Activate transitions; only completion leaves it
const InteractionFSMConfig = `
initial: Idle

states:
  # --- AMBIENT ---

  Idle:
    on_enter:
      - action: PlayClip
        args: {clip: idle}
    transitions:
      - trigger: InteractionActivate
        target: Locked
        guard: InRange
      - trigger: InteractionNear
        target: Proximity

  Proximity:
    on_enter:
      - action: PlayClip
        args: {clip: near}
    transitions:
      - trigger: InteractionActivate
        target: Locked
        guard: InRange
      - trigger: InteractionFar
        target: Idle

  # --- ONE-SHOT ACTION ---

  Locked:
    on_enter:
      - action: PlayClip
        args: {clip: action}
      - action: ArmCompletion
    on_exit:
      - action: Cue
        args: {cue: unlock}
    transitions:
      - trigger: InteractionComplete
        target: Proximity
        guard: InRange
      - trigger: InteractionComplete
        target: Idle
`
