package system

import (
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/zengarden/component"
	"github.com/lixenwraith/zengarden/config"
	"github.com/lixenwraith/zengarden/core"
	"github.com/lixenwraith/zengarden/engine"
	"github.com/lixenwraith/zengarden/event"
	"github.com/lixenwraith/zengarden/host"
	"github.com/lixenwraith/zengarden/vmath"
)

type interactionRig struct {
	world  *engine.World
	sched  *engine.Scheduler
	sys    *InteractionSystem
	player *host.SimPlayer
	input  *host.InputState
	cues   *cueRecorder
	focal  core.Entity
}

func newInteractionRig(t *testing.T, actionLength time.Duration) *interactionRig {
	t.Helper()
	w := engine.NewWorld()
	focal := w.CreateEntity()
	w.Components.Transform.SetComponent(focal, component.NewTransform(vmath.V3Zero()))
	w.Components.Animator.SetComponent(focal, component.AnimatorComponent{
		Clips: []component.AnimationClip{
			{Name: "Idle_Anim", Loop: true},
			{Name: "Proximity_Anim", Loop: true},
			{Name: "Click_Anim"},
		},
	})

	cfg := config.Default().Interaction
	cfg.ActionLength = actionLength

	player := host.NewSimPlayer(vmath.V3(20, 0, 0))
	input := host.NewInputState()
	cues := &cueRecorder{}
	sys, err := NewInteractionSystem(w, focal, cfg, player, input, cues, quietLogger())
	if err != nil {
		t.Fatalf("NewInteractionSystem: %v", err)
	}
	w.AddSystem(input)
	w.AddSystem(sys)

	return &interactionRig{
		world:  w,
		sched:  engine.NewScheduler(w, nil, tick),
		sys:    sys,
		player: player,
		input:  input,
		cues:   cues,
		focal:  focal,
	}
}

func (r *interactionRig) animator() component.AnimatorComponent {
	a, _ := r.world.Components.Animator.GetComponent(r.focal)
	return a
}

func (r *interactionRig) click() {
	r.input.Trigger(host.ActionPrimary, r.focal)
}

func TestInteractionStartsIdle(t *testing.T) {
	r := newInteractionRig(t, time.Second)
	if r.sys.State().Mode != ModeIdle {
		t.Fatalf("state = %v, want Idle", r.sys.State().Mode)
	}
	if a := r.animator(); a.Active != "Idle_Anim" {
		t.Errorf("active clip = %q", a.Active)
	}
}

func TestInteractionProximityEntersOnce(t *testing.T) {
	r := newInteractionRig(t, time.Second)
	r.player.SetPosition(vmath.V3(3, 0, 0))

	r.sched.Step(tick)
	if r.sys.State().Mode != ModeProximity {
		t.Fatalf("state = %v, want Proximity", r.sys.State().Mode)
	}
	gen := r.animator().Generation
	if r.animator().Active != "Proximity_Anim" {
		t.Errorf("active clip = %q", r.animator().Active)
	}

	steps(r.sched, 10, tick)
	if r.animator().Generation != gen {
		t.Error("proximity clip replayed while staying in range")
	}

	r.player.SetPosition(vmath.V3(6.5, 0, 0))
	r.sched.Step(tick)
	if r.sys.State().Mode != ModeIdle || r.animator().Active != "Idle_Anim" {
		t.Errorf("state = %v clip = %q, want Idle", r.sys.State().Mode, r.animator().Active)
	}
}

func TestInteractionRadiusIsInclusive(t *testing.T) {
	r := newInteractionRig(t, time.Second)
	r.player.SetPosition(vmath.V3(6, 0, 0))
	r.sched.Step(tick)
	if r.sys.State().Mode != ModeProximity {
		t.Errorf("state at exactly R = %v, want Proximity", r.sys.State().Mode)
	}
}

func TestInteractionClickOutOfRangeIgnored(t *testing.T) {
	r := newInteractionRig(t, time.Second)
	r.player.SetPosition(vmath.V3(7, 0, 0))
	r.click()
	r.sched.Step(tick)

	if r.sys.State().Mode != ModeIdle {
		t.Errorf("state = %v, want Idle", r.sys.State().Mode)
	}
	if n := r.world.Resources.Deferred.Pending(); n != 0 {
		t.Errorf("pending tasks = %d, want 0", n)
	}
}

func TestInteractionClickHasPriority(t *testing.T) {
	r := newInteractionRig(t, time.Second)
	r.player.SetPosition(vmath.V3(3, 0, 0))
	r.click()
	r.sched.Step(tick)

	st := r.sys.State()
	if st.Mode != ModeLocked {
		t.Fatalf("state = %v, want Locked", st.Mode)
	}
	if st.Action != "Click_Anim" || r.animator().Active != "Click_Anim" {
		t.Errorf("action = %q clip = %q", st.Action, r.animator().Active)
	}
	if r.cues.count(host.CueLock) != 1 {
		t.Errorf("lock cues = %d", r.cues.count(host.CueLock))
	}
}

func TestInteractionLockedIsUninterruptible(t *testing.T) {
	r := newInteractionRig(t, time.Second)
	r.player.SetPosition(vmath.V3(3, 0, 0))
	r.click()
	r.sched.Step(tick)
	gen := r.animator().Generation

	// Leaving range and clicking again change nothing while locked
	r.player.SetPosition(vmath.V3(50, 0, 0))
	r.sched.Step(tick)
	r.player.SetPosition(vmath.V3(1, 0, 0))
	r.click()
	r.sched.Step(tick)

	if r.sys.State().Mode != ModeLocked {
		t.Fatalf("state = %v, want Locked", r.sys.State().Mode)
	}
	if r.animator().Generation != gen {
		t.Error("clip restarted while locked")
	}
	if n := r.world.Resources.Deferred.PendingFor(event.EventInteractionComplete); n != 1 {
		t.Errorf("pending completions = %d, want 1", n)
	}
	if got := r.world.Resources.Status.Ints.Get("interaction.locks").Load(); got != 1 {
		t.Errorf("interaction.locks = %d", got)
	}
}

func TestInteractionCompletionReevaluatesDistance(t *testing.T) {
	tests := []struct {
		name     string
		finalPos vmath.Vec3
		want     InteractionMode
		clip     string
	}{
		{"still near", vmath.V3(2, 0, 0), ModeProximity, "Proximity_Anim"},
		{"walked away", vmath.V3(30, 0, 0), ModeIdle, "Idle_Anim"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newInteractionRig(t, 500*time.Millisecond)
			r.player.SetPosition(vmath.V3(3, 0, 0))
			r.click()
			r.sched.Step(10 * time.Millisecond)

			r.player.SetPosition(tt.finalPos)
			steps(r.sched, 49, 10*time.Millisecond)
			if r.sys.State().Mode != ModeLocked {
				t.Fatalf("unlocked early at %s", r.world.Resources.Time.Elapsed)
			}

			r.sched.Step(10 * time.Millisecond)
			if r.sys.State().Mode != tt.want {
				t.Fatalf("state = %v, want %v", r.sys.State().Mode, tt.want)
			}
			if r.animator().Active != tt.clip {
				t.Errorf("clip = %q, want %q", r.animator().Active, tt.clip)
			}
			if r.cues.count(host.CueUnlock) != 1 {
				t.Errorf("unlock cues = %d", r.cues.count(host.CueUnlock))
			}
		})
	}
}

func TestInteractionIgnoresForeignCompletion(t *testing.T) {
	r := newInteractionRig(t, time.Hour)
	r.player.SetPosition(vmath.V3(3, 0, 0))
	r.click()
	r.sched.Step(tick)
	armed := r.sys.State().ArmedAt

	stale := []*event.InteractionCompletePayload{
		{Owner: r.focal, ArmedAt: armed + time.Second},
		{Owner: r.focal + 1, ArmedAt: armed},
	}
	for _, p := range stale {
		r.sys.HandleEvent(event.GameEvent{Type: event.EventInteractionComplete, Payload: p})
	}
	if r.sys.State().Mode != ModeLocked {
		t.Fatalf("state = %v, want Locked", r.sys.State().Mode)
	}

	r.sys.HandleEvent(event.GameEvent{
		Type:    event.EventInteractionComplete,
		Payload: &event.InteractionCompletePayload{Owner: r.focal, ArmedAt: armed},
	})
	if r.sys.State().Mode != ModeProximity {
		t.Errorf("state = %v, want Proximity", r.sys.State().Mode)
	}
}

func TestInteractionUnavailablePlayerIsFar(t *testing.T) {
	r := newInteractionRig(t, time.Second)
	r.player.SetPosition(vmath.V3(1, 0, 0))
	r.sched.Step(tick)

	r.player.SetPresent(false)
	if d := r.sys.Distance(); !math.IsInf(d, 1) {
		t.Fatalf("distance = %f, want +Inf", d)
	}
	r.click()
	r.sched.Step(tick)
	if r.sys.State().Mode != ModeIdle {
		t.Errorf("state = %v, want Idle", r.sys.State().Mode)
	}
}

func TestInteractionStateMetric(t *testing.T) {
	r := newInteractionRig(t, time.Second)
	r.player.SetPosition(vmath.V3(3, 0, 0))
	r.sched.Step(tick)
	if got := r.world.Resources.Status.Strings.Get("interaction.state").Load(); got != "Proximity" {
		t.Errorf("interaction.state = %q", got)
	}
}
