package scene

import (
	"io"
	"log"
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/zengarden/component"
	"github.com/lixenwraith/zengarden/config"
	"github.com/lixenwraith/zengarden/host"
	"github.com/lixenwraith/zengarden/network"
	"github.com/lixenwraith/zengarden/system"
	"github.com/lixenwraith/zengarden/vmath"
)

type rig struct {
	scene  *Scene
	player *host.SimPlayer
	input  *host.InputState
}

func newRig(t *testing.T, bus network.Bus) *rig {
	t.Helper()
	cfg := config.Default()
	cfg.Platforms.Seed = 42

	player := host.NewSimPlayer(vmath.V3(-20, 0, -20))
	input := host.NewInputState()
	sc, err := Build(Options{
		Config: cfg,
		Host: Host{
			Player:    player,
			Relocator: player,
			Input:     input,
		},
		Bus:    bus,
		Logger: log.New(io.Discard, "", 0),
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return &rig{scene: sc, player: player, input: input}
}

func (r *rig) steps(n int, dt time.Duration) {
	for i := 0; i < n; i++ {
		r.scene.Step(dt)
	}
}

func TestBuildLayout(t *testing.T) {
	r := newRig(t, nil)
	sc := r.scene

	if len(sc.Platforms) != 20 || len(sc.Beams) != 20 {
		t.Fatalf("platforms/beams = %d/%d", len(sc.Platforms), len(sc.Beams))
	}
	if n := sc.World.Components.DanceCube.CountEntities(); n != 35 {
		t.Errorf("dance cubes = %d, want 35", n)
	}
	if n := sc.World.Components.ClubLight.CountEntities(); n != 8 {
		t.Errorf("club lights = %d, want 8", n)
	}
	if !sc.Crystal.Valid() || !sc.Pad.Valid() || !sc.Centerpiece.Valid() {
		t.Error("missing interactive entity")
	}
	if sc.Interaction.State().Mode != system.ModeIdle {
		t.Errorf("initial interaction state = %v", sc.Interaction.State().Mode)
	}
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Platforms.Count = 0
	if _, err := Build(Options{Config: cfg, Host: Host{Player: host.NewSimPlayer(vmath.V3Zero())}}); err == nil {
		t.Fatal("expected error")
	}
	if _, err := Build(Options{}); err == nil {
		t.Fatal("expected error without a player")
	}
}

func TestPlatformOrbitScenario(t *testing.T) {
	tests := []struct {
		name   string
		toggle bool
		want   float64
	}{
		{"forward", false, 0.2},
		{"reversed", true, -0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t, nil)
			if tt.toggle {
				r.scene.ToggleDirection()
			}
			r.steps(30, time.Second/30)

			tr, _ := r.scene.World.Components.Transform.GetComponent(r.scene.Platforms[0])
			angle := math.Atan2(tr.Position.Z, tr.Position.X)
			if math.Abs(angle-tt.want) > 1e-6 {
				t.Errorf("angle = %f, want %f", angle, tt.want)
			}
			if d := math.Hypot(tr.Position.X, tr.Position.Z); math.Abs(d-5) > 1e-9 {
				t.Errorf("radius = %f", d)
			}

			// Beam i ends at platform i on the same tick
			beam, _ := r.scene.World.Components.Transform.GetComponent(r.scene.Beams[0])
			want := vmath.V3Mid(r.scene.Beam.Source(), tr.Position)
			if !vmath.V3Near(beam.Position, want, 1e-9) {
				t.Errorf("beam midpoint = %v, want %v", beam.Position, want)
			}
		})
	}
}

func TestCenterpieceClickScenario(t *testing.T) {
	r := newRig(t, nil)
	focal, _ := r.scene.World.Components.Transform.GetComponent(r.scene.Centerpiece)
	r.player.SetPosition(focal.Position.Add(vmath.V3(3, 0, 0)))

	target, ok := r.scene.Focus(focal.Position.Add(vmath.V3(3, 0, 0)))
	if !ok || target != r.scene.Centerpiece {
		t.Fatalf("focus = %d %v, want centerpiece", target, ok)
	}
	r.input.Trigger(host.ActionPrimary, target)

	const dt = 10 * time.Millisecond
	r.scene.Step(dt)
	if st := r.scene.Interaction.State(); st.Mode != system.ModeLocked || st.Action != "Click_Anim" {
		t.Fatalf("state = %+v, want Locked on Click_Anim", st)
	}

	r.steps(3724, dt)
	if r.scene.Interaction.State().Mode != system.ModeLocked {
		t.Fatalf("unlocked before 37.25s")
	}
	r.scene.Step(dt)
	if r.scene.Interaction.State().Mode != system.ModeProximity {
		t.Errorf("state after 37.25s = %v, want Proximity", r.scene.Interaction.State().Mode)
	}
	anim, _ := r.scene.World.Components.Animator.GetComponent(r.scene.Centerpiece)
	if anim.Active != "Proximity_Anim" {
		t.Errorf("clip = %q", anim.Active)
	}
}

func TestTeleporterScenario(t *testing.T) {
	r := newRig(t, nil)
	pad, _ := r.scene.World.Components.Transform.GetComponent(r.scene.Pad)
	r.player.SetPosition(pad.Position)

	r.steps(1, 10*time.Millisecond)
	if !r.scene.Teleporter.Busy(r.scene.Pad) {
		t.Fatal("pad not activated")
	}
	r.steps(20, 10*time.Millisecond)
	pos, _ := r.player.PlayerPosition()
	if pos != vmath.V3(13.5, 12, 13) {
		t.Errorf("player at %v after teleport", pos)
	}
}

func TestViewersShareDirection(t *testing.T) {
	hub := network.NewLocalHub()
	a := newRig(t, hub.Join())
	b := newRig(t, hub.Join())

	a.scene.ToggleDirection()
	a.scene.Step(time.Second / 30)
	b.scene.Step(time.Second / 30)

	if a.scene.Platform.Direction() != -1 || b.scene.Platform.Direction() != -1 {
		t.Errorf("directions = %d/%d, want -1/-1", a.scene.Platform.Direction(), b.scene.Platform.Direction())
	}

	// Crystal click on B propagates back to A
	b.input.Trigger(host.ActionPrimary, b.scene.Crystal)
	b.scene.Step(time.Second / 30)
	a.scene.Step(time.Second / 30)
	if a.scene.Platform.Direction() != 1 {
		t.Errorf("A direction = %d after B's crystal click, want 1", a.scene.Platform.Direction())
	}
}

// lift raises every platform of r by dy along the rise cycle and re-captures platform state
func (r *rig) lift(dy float64) {
	pc := r.scene.Config.Platforms
	center := pc.Center.V3()
	for _, e := range r.scene.Platforms {
		r.scene.World.Components.Transform.Mutate(e, func(tr *component.TransformComponent) {
			tr.Position.Y = center.Y + math.Mod(tr.Position.Y-center.Y+dy, pc.Ceiling)
		})
	}
	r.scene.Platform.Init()
}

func TestViewersConvergeFromOffsetHeights(t *testing.T) {
	hub := network.NewLocalHub()
	a := newRig(t, hub.Join())
	b := newRig(t, hub.Join())
	b.lift(3)

	for k := 0; k < 120; k++ {
		a.scene.Step(time.Second / 30)
		b.scene.Step(time.Second / 30)
	}

	for _, r := range []*rig{a, b} {
		if n := r.scene.World.Components.Tween.CountEntities(); n != 0 {
			t.Errorf("%d platforms still smoothing after 4s", n)
		}

		pc := r.scene.Config.Platforms
		want := system.PlatformAngle(r.scene.World.Resources.Time.MotionSeconds(), pc.AngularSpeed, 1, 0, pc.Count)
		tr, _ := r.scene.World.Components.Transform.GetComponent(r.scene.Platforms[0])
		center := pc.Center.V3()
		got := math.Atan2(tr.Position.Z-center.Z, tr.Position.X-center.X)
		if math.Abs(got-math.Atan2(math.Sin(want), math.Cos(want))) > 1e-6 {
			t.Errorf("platform 0 angle = %f, want %f", got, want)
		}
	}

	for i := range a.scene.Platforms {
		ta, _ := a.scene.World.Components.Transform.GetComponent(a.scene.Platforms[i])
		tb, _ := b.scene.World.Components.Transform.GetComponent(b.scene.Platforms[i])
		if d := math.Abs(ta.Position.Y - tb.Position.Y); d > a.scene.Config.Sync.SnapTolerance {
			t.Errorf("platform %d heights differ by %f", i, d)
		}
	}
}

func TestCosmeticsStartHiddenWhenDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.DanceFloor.Enabled = false
	player := host.NewSimPlayer(vmath.V3Zero())
	sc, err := Build(Options{Config: cfg, Host: Host{Player: player}, Logger: log.New(io.Discard, "", 0)})
	if err != nil {
		t.Fatal(err)
	}
	sc.Step(time.Second / 30)
	if sc.DanceFloor.Visible() || !sc.ClubLight.Visible() {
		t.Errorf("visible = %v/%v, want false/true", sc.DanceFloor.Visible(), sc.ClubLight.Visible())
	}
}
