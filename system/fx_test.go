package system

import (
	"math"
	"testing"

	"github.com/lixenwraith/zengarden/component"
	"github.com/lixenwraith/zengarden/config"
	"github.com/lixenwraith/zengarden/engine"
	"github.com/lixenwraith/zengarden/event"
	"github.com/lixenwraith/zengarden/host"
	"github.com/lixenwraith/zengarden/vmath"
)

func TestDanceCubeColor(t *testing.T) {
	if c := DanceCubeColor(0); !colorNear(c, vmath.RGB(0.5, 1, 0.5)) {
		t.Errorf("DanceCubeColor(0) = %+v", c)
	}
}

func TestDanceFloorToggle(t *testing.T) {
	w := engine.NewWorld()
	s := NewDanceFloorSystem(w)
	w.AddSystem(s)
	sched := engine.NewScheduler(w, nil, tick)

	base := vmath.V3(1, 0.4, 1)
	for i := 0; i < 3; i++ {
		e := w.CreateEntity()
		tr := component.NewTransform(vmath.V3(float64(i), 1, 0))
		tr.Scale = base
		w.Components.Transform.SetComponent(e, tr)
		w.Components.Material.SetComponent(e, component.Glow(vmath.ColorWhite, vmath.ColorWhite, 1))
		w.Components.DanceCube.SetComponent(e, component.DanceCubeComponent{Index: i, BaseScale: base})
	}

	sched.Step(tick)
	first := w.Components.DanceCube.GetAllEntities()[0]
	lit, _ := w.Components.Material.GetComponent(first)

	w.PushEvent(event.EventCosmeticToggle, &event.CosmeticTogglePayload{Effect: event.CosmeticDanceFloor})
	steps(sched, 10, tick)

	if s.Visible() {
		t.Error("still visible after toggle off")
	}
	for _, e := range w.Components.DanceCube.GetAllEntities() {
		tr, _ := w.Components.Transform.GetComponent(e)
		if !tr.Hidden() {
			t.Errorf("cube %d scale = %v", e, tr.Scale)
		}
	}
	if m, _ := w.Components.Material.GetComponent(first); m.Emissive != lit.Emissive {
		t.Error("hidden cube kept animating")
	}

	// Other effect groups are ignored
	w.PushEvent(event.EventCosmeticToggle, &event.CosmeticTogglePayload{Effect: event.CosmeticClubLights, Enabled: true})
	sched.Step(tick)
	if s.Visible() {
		t.Error("club light toggle affected the dance floor")
	}

	w.PushEvent(event.EventCosmeticToggle, &event.CosmeticTogglePayload{Effect: event.CosmeticDanceFloor, Enabled: true})
	sched.Step(tick)
	tr, _ := w.Components.Transform.GetComponent(first)
	if tr.Scale != base {
		t.Errorf("restored scale = %v, want %v", tr.Scale, base)
	}
}

func TestClubLightsOrbit(t *testing.T) {
	w := engine.NewWorld()
	cfg := config.Default().ClubLights
	s := NewClubLightSystem(w, cfg)
	w.AddSystem(s)
	sched := engine.NewScheduler(w, nil, tick)

	scale := vmath.V3(0.2, 0.2, 0.2)
	for i := 0; i < 4; i++ {
		e := w.CreateEntity()
		tr := component.NewTransform(cfg.Center.V3())
		tr.Scale = scale
		w.Components.Transform.SetComponent(e, tr)
		w.Components.Material.SetComponent(e, component.Glow(vmath.ColorRed, vmath.ColorRed, 5))
		w.Components.ClubLight.SetComponent(e, component.ClubLightComponent{Index: i, BaseScale: scale})
	}

	steps(sched, 15, tick)

	center := cfg.Center.V3()
	lights := w.Components.ClubLight.GetAllEntities()
	var angles []float64
	for _, e := range lights {
		tr, _ := w.Components.Transform.GetComponent(e)
		if !near(vmath.HorizontalDist(tr.Position, center), cfg.Radius, 1e-9) || tr.Position.Y != center.Y {
			t.Fatalf("light %d off its orbit: %v", e, tr.Position)
		}
		angles = append(angles, math.Atan2(tr.Position.Z-center.Z, tr.Position.X-center.X))
	}
	// Evenly spaced by 2pi/4
	gap := math.Mod(angles[1]-angles[0]+2*math.Pi, 2*math.Pi)
	if !near(gap, math.Pi/2, 1e-9) {
		t.Errorf("spacing = %f, want pi/2", gap)
	}

	w.PushEvent(event.EventCosmeticToggle, &event.CosmeticTogglePayload{Effect: event.CosmeticClubLights})
	sched.Step(tick)
	frozen, _ := w.Components.Transform.GetComponent(lights[0])
	sched.Step(tick)
	after, _ := w.Components.Transform.GetComponent(lights[0])
	if !after.Hidden() || after.Position != frozen.Position {
		t.Error("hidden light moved")
	}
}

func TestCrystalTogglesDirection(t *testing.T) {
	w := engine.NewWorld()
	crystal := w.CreateEntity()
	w.Components.Crystal.SetComponent(crystal, component.CrystalComponent{})

	input := host.NewInputState()
	toggler := &toggleCounter{}
	cues := &cueRecorder{}
	w.AddSystem(input)
	w.AddSystem(NewCrystalSystem(w, input, toggler, cues))
	sched := engine.NewScheduler(w, nil, tick)

	input.Trigger(host.ActionPrimary, crystal)
	steps(sched, 3, tick)
	input.Trigger(host.ActionPrimary, crystal+1)
	sched.Step(tick)

	if toggler.n != 1 {
		t.Errorf("toggles = %d, want 1", toggler.n)
	}
	if cues.count(host.CueToggle) != 1 {
		t.Errorf("toggle cues = %d", cues.count(host.CueToggle))
	}
}

type toggleCounter struct {
	n int
}

func (c *toggleCounter) ToggleDirection() {
	c.n++
}
