package system

import (
	"testing"
	"time"

	"github.com/lixenwraith/zengarden/component"
	"github.com/lixenwraith/zengarden/config"
	"github.com/lixenwraith/zengarden/core"
	"github.com/lixenwraith/zengarden/engine"
	"github.com/lixenwraith/zengarden/host"
	"github.com/lixenwraith/zengarden/vmath"
)

const ms10 = 10 * time.Millisecond

type teleporterRig struct {
	world     *engine.World
	sched     *engine.Scheduler
	sys       *TeleporterSystem
	player    *host.SimPlayer
	cues      *cueRecorder
	pad       core.Entity
	indicator core.Entity
}

func newTeleporterRig() *teleporterRig {
	w := engine.NewWorld()
	pad := w.CreateEntity()
	tr := component.NewTransform(vmath.V3(2, 0.1, 13))
	tr.Scale = vmath.V3(1, 0.1, 1)
	w.Components.Transform.SetComponent(pad, tr)
	w.Components.Material.SetComponent(pad, component.Glow(vmath.ColorCyan, vmath.ColorCyan, 0.7))

	indicator := w.CreateEntity()
	w.Components.Transform.SetComponent(indicator, component.NewTransform(vmath.V3(2, 0.6, 13)))
	w.Components.Teleporter.SetComponent(pad, component.TeleporterComponent{Indicator: indicator})

	player := host.NewSimPlayer(vmath.V3Zero())
	cues := &cueRecorder{}
	sys := NewTeleporterSystem(w, config.Default().Teleporter, player, cues)
	w.AddSystem(sys)

	return &teleporterRig{
		world:     w,
		sched:     engine.NewScheduler(w, nil, ms10),
		sys:       sys,
		player:    player,
		cues:      cues,
		pad:       pad,
		indicator: indicator,
	}
}

func (r *teleporterRig) padVisual() (component.MaterialComponent, float64) {
	m, _ := r.world.Components.Material.GetComponent(r.pad)
	tr, _ := r.world.Components.Transform.GetComponent(r.pad)
	return m, tr.Scale.Y
}

func TestTeleporterCycle(t *testing.T) {
	r := newTeleporterRig()
	r.sys.Enter(r.pad)

	m, sy := r.padVisual()
	if !r.sys.Busy(r.pad) || m.Emissive != vmath.ColorWhite || m.EmissiveIntensity != 2 || sy != 0.2 {
		t.Fatalf("activation visuals: busy=%v mat=%+v scaleY=%f", r.sys.Busy(r.pad), m, sy)
	}

	steps(r.sched, 19, ms10)
	if r.player.Relocations() != 0 {
		t.Fatal("relocated before the action delay")
	}
	r.sched.Step(ms10)
	if r.player.Relocations() != 1 {
		t.Fatalf("relocations = %d at 200ms", r.player.Relocations())
	}
	pos, _ := r.player.PlayerPosition()
	if pos != vmath.V3(13.5, 12, 13) || r.player.LookAt() != vmath.V3Zero() {
		t.Errorf("relocated to %v looking at %v", pos, r.player.LookAt())
	}

	steps(r.sched, 49, ms10)
	if m, _ := r.padVisual(); m.EmissiveIntensity != 2 {
		t.Fatal("reverted before 700ms")
	}
	r.sched.Step(ms10)
	m, sy = r.padVisual()
	if m.Emissive != vmath.ColorCyan || m.EmissiveIntensity != 0.7 || sy != 0.1 {
		t.Fatalf("revert visuals: mat=%+v scaleY=%f", m, sy)
	}

	steps(r.sched, 229, ms10)
	if !r.sys.Busy(r.pad) {
		t.Fatal("ready before the cooldown")
	}
	r.sched.Step(ms10)
	if r.sys.Busy(r.pad) {
		t.Fatal("still busy at 3000ms")
	}
	if r.cues.count(host.CueTeleport) != 1 {
		t.Errorf("teleport cues = %d", r.cues.count(host.CueTeleport))
	}

	r.sys.Enter(r.pad)
	if !r.sys.Busy(r.pad) {
		t.Error("entry after cooldown ignored")
	}
}

func TestTeleporterIgnoresEntryWhileBusy(t *testing.T) {
	r := newTeleporterRig()
	r.sys.Enter(r.pad)
	steps(r.sched, 30, ms10)

	tp, _ := r.world.Components.Teleporter.GetComponent(r.pad)
	pending := r.world.Resources.Deferred.Pending()
	mat, sy := r.padVisual()

	r.sys.Enter(r.pad)
	r.sys.Enter(r.pad)

	tp2, _ := r.world.Components.Teleporter.GetComponent(r.pad)
	mat2, sy2 := r.padVisual()
	if tp2 != tp || mat2 != mat || sy2 != sy {
		t.Error("busy entry changed pad state")
	}
	if r.world.Resources.Deferred.Pending() != pending {
		t.Error("busy entry scheduled tasks")
	}
	if got := r.world.Resources.Status.Ints.Get("teleporter.ignored").Load(); got != 2 {
		t.Errorf("teleporter.ignored = %d", got)
	}

	steps(r.sched, 300, ms10)
	if r.player.Relocations() != 1 {
		t.Errorf("relocations = %d, want 1", r.player.Relocations())
	}
}

func TestTeleporterIdleAnimation(t *testing.T) {
	r := newTeleporterRig()
	steps(r.sched, 100, ms10)

	_, sy := r.padVisual()
	if sy < 0.09 || sy > 0.11 || sy == 0.1 {
		t.Errorf("idle pad scale.y = %f, want gentle pulse around 0.1", sy)
	}

	ind, _ := r.world.Components.Transform.GetComponent(r.indicator)
	if yaw := vmath.QYawDegrees(ind.Rotation); !near(yaw, 150, 1e-6) {
		t.Errorf("indicator yaw after 1s = %f, want 150", yaw)
	}
}

func TestTeleporterViaTriggerVolume(t *testing.T) {
	r := newTeleporterRig()
	triggers := host.NewTriggerSystem(r.world, r.player)
	r.world.AddSystem(triggers)
	r.sys.Register(triggers, r.pad)
	sched := engine.NewScheduler(r.world, nil, ms10)

	sched.Step(ms10)
	if r.sys.Busy(r.pad) {
		t.Fatal("busy without entry")
	}

	r.player.SetPosition(vmath.V3(2, 0.5, 13))
	sched.Step(ms10)
	if !r.sys.Busy(r.pad) {
		t.Fatal("entry not detected")
	}
	steps(sched, 25, ms10)
	if r.player.Relocations() != 1 {
		t.Errorf("relocations = %d", r.player.Relocations())
	}
}
