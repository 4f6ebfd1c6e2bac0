package system

import (
	"bytes"
	"log"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/zengarden/component"
	"github.com/lixenwraith/zengarden/config"
	"github.com/lixenwraith/zengarden/core"
	"github.com/lixenwraith/zengarden/engine"
	"github.com/lixenwraith/zengarden/event"
	"github.com/lixenwraith/zengarden/network"
	"github.com/lixenwraith/zengarden/vmath"
)

type platformRig struct {
	world *engine.World
	sched *engine.Scheduler
	sys   *PlatformSystem
}

func newPlatformRig(t *testing.T, n int, bus network.Bus) *platformRig {
	t.Helper()
	w := engine.NewWorld()
	cfg := config.Default()
	cfg.Platforms.Count = n
	cfg.Platforms.Seed = 7

	entities := make([]core.Entity, n)
	for i := range entities {
		e := w.CreateEntity()
		w.Components.Transform.SetComponent(e, component.NewTransform(vmath.V3(0, 17/float64(n)*float64(i), 0)))
		w.Components.Material.SetComponent(e, component.PBR(vmath.ColorWhite))
		w.Components.Platform.SetComponent(e, component.PlatformComponent{Index: i})
		entities[i] = e
	}

	sys := NewPlatformSystem(w, entities, cfg.Platforms, cfg.Sync, bus, quietLogger())
	w.AddSystem(sys)
	w.AddSystem(NewTweenSystem(w))

	return &platformRig{
		world: w,
		sched: engine.NewScheduler(w, nil, tick),
		sys:   sys,
	}
}

func (r *platformRig) position(i int) vmath.Vec3 {
	tr, _ := r.world.Components.Transform.GetComponent(r.sys.Entities()[i])
	return tr.Position
}

func (r *platformRig) metric(key string) int64 {
	return r.world.Resources.Status.Ints.Get(key).Load()
}

func TestPlatformAngleAfterOneSecond(t *testing.T) {
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
			r := newPlatformRig(t, 20, nil)
			if tt.toggle {
				r.sys.ToggleDirection()
			}
			steps(r.sched, 30, tick)

			p := r.position(0)
			angle := math.Atan2(p.Z, p.X)
			if !near(angle, tt.want, 1e-6) {
				t.Errorf("angle = %f, want %f", angle, tt.want)
			}
			if !near(math.Hypot(p.X, p.Z), 5, 1e-9) {
				t.Errorf("radius = %f, want 5", math.Hypot(p.X, p.Z))
			}

			// Platform i leads platform 0 by i*2pi/N
			p5 := r.position(5)
			want5 := tt.want + 5*2*math.Pi/20
			if !near(math.Atan2(p5.Z, p5.X), math.Atan2(math.Sin(want5), math.Cos(want5)), 1e-6) {
				t.Errorf("platform 5 angle = %f", math.Atan2(p5.Z, p5.X))
			}
		})
	}
}

func TestPlatformRiseWrapsAtCeiling(t *testing.T) {
	r := newPlatformRig(t, 4, nil)
	r.sys.state.Positions[0].Y = 1

	r.sched.Step(tick)
	if y := r.position(0).Y; !near(y, 1.005, 1e-9) {
		t.Fatalf("y = %f, want 1.005", y)
	}

	r.sys.state.Positions[0].Y = 16.996
	r.sched.Step(tick)
	if y := r.position(0).Y; y != 0 {
		t.Errorf("y = %f, want wrap to 0", y)
	}
}

func TestPlatformStateTracksTransforms(t *testing.T) {
	r := newPlatformRig(t, 6, nil)
	steps(r.sched, 3, tick)

	st := r.sys.State()
	if len(st.Positions) != 6 || st.Direction != 1 {
		t.Fatalf("state = %+v", st)
	}
	for i := range st.Positions {
		if st.Positions[i] != r.position(i) {
			t.Errorf("state[%d] = %v, transform = %v", i, st.Positions[i], r.position(i))
		}
	}
}

func TestPlatformPublishesEveryTick(t *testing.T) {
	hub := network.NewLocalHub()
	r := newPlatformRig(t, 4, hub.Join())

	observer := hub.Join()
	var got []network.Envelope
	observer.Subscribe("platform_state_change", func(data []byte) {
		env, err := network.Open(data)
		if err != nil {
			t.Errorf("Open: %v", err)
			return
		}
		got = append(got, env)
	})

	steps(r.sched, 5, tick)
	r.sys.ToggleDirection()

	if len(got) != 6 {
		t.Fatalf("published %d messages, want 6", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Seq <= got[i-1].Seq {
			t.Errorf("sequence not increasing: %d then %d", got[i-1].Seq, got[i].Seq)
		}
	}
	last, err := network.DecodePlatformState(got[5].Body, 4)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if last.Direction != -1 {
		t.Errorf("toggle published direction %d, want -1", last.Direction)
	}
	if r.metric("sync.published") != 6 {
		t.Errorf("sync.published = %d", r.metric("sync.published"))
	}
}

func TestPlatformAdoptsRemoteDirection(t *testing.T) {
	hub := network.NewLocalHub()
	a := newPlatformRig(t, 4, hub.Join())
	b := newPlatformRig(t, 4, hub.Join())

	a.sys.ToggleDirection()
	b.sched.Step(tick)

	if b.sys.Direction() != -1 {
		t.Errorf("remote direction = %d, want -1", b.sys.Direction())
	}
	if b.metric("sync.applied") != 1 {
		t.Errorf("sync.applied = %d", b.metric("sync.applied"))
	}
}

// remoteState encodes r's current state with platform i raised by lift
func remoteState(t *testing.T, r *platformRig, i int, lift float64, toggles uint32) []byte {
	t.Helper()
	st := r.sys.State()
	st.Positions[i].Y += lift
	st.Toggles = toggles
	body, err := network.EncodePlatformState(st)
	if err != nil {
		t.Fatal(err)
	}
	return body
}

func TestPlatformDirectionFollowsToggleCount(t *testing.T) {
	hub := network.NewLocalHub()
	a := newPlatformRig(t, 4, hub.Join())
	b := newPlatformRig(t, 4, hub.Join())

	// Both flip in the same tick, then a flips back before hearing from b
	a.sys.ToggleDirection()
	b.sys.ToggleDirection()
	a.sys.ToggleDirection()
	for k := 0; k < 5; k++ {
		a.sched.Step(tick)
		b.sched.Step(tick)
	}

	if a.sys.Direction() != 1 || b.sys.Direction() != 1 {
		t.Errorf("directions = %d/%d, want both +1", a.sys.Direction(), b.sys.Direction())
	}
	if ta, tb := a.sys.State().Toggles, b.sys.State().Toggles; ta != 2 || tb != 2 {
		t.Errorf("toggles = %d/%d, want 2/2", ta, tb)
	}
}

type failingBus struct {
	err error
}

func (b failingBus) Publish(string, []byte) error           { return b.err }
func (b failingBus) Subscribe(string, func(payload []byte)) {}
func (b failingBus) Close() error                           { return nil }

func TestPlatformCountsPublishFailures(t *testing.T) {
	r := newPlatformRig(t, 2, failingBus{err: network.ErrClosed})
	var logged bytes.Buffer
	r.sys.logger = log.New(&logged, "", 0)

	steps(r.sched, 3, tick)
	if got := r.metric("sync.publish_errors"); got != 3 {
		t.Errorf("sync.publish_errors = %d, want 3", got)
	}
	if got := r.metric("sync.published"); got != 0 {
		t.Errorf("sync.published = %d, want 0", got)
	}
	if !strings.Contains(logged.String(), "[sync] publish: network: bus closed") {
		t.Errorf("log = %q", logged.String())
	}
}

func TestPlatformSmoothsTowardRemoteState(t *testing.T) {
	r := newPlatformRig(t, 2, nil)
	remote := network.NewIdentity()

	start := r.position(0)
	body := remoteState(t, r, 0, 3, 0)
	targetY := start.Y + 3
	r.world.PushEvent(event.EventSyncReceived, &event.SyncPayload{
		Topic: "platform_state_change", Sender: remote.ID(), Seq: 1, Body: body,
	})

	// Half way through the 500ms smoothing window the correction is half spent
	steps(r.sched, 1, 250*time.Millisecond)
	if !r.world.Components.Tween.HasEntity(r.sys.Entities()[0]) {
		t.Fatal("no tween started for a remote height ahead of local")
	}
	if y := r.position(0).Y; !near(y, targetY+0.005-1.5, 1e-9) {
		t.Errorf("mid-tween y = %f, want %f", y, targetY+0.005-1.5)
	}
	if r.world.Components.Tween.HasEntity(r.sys.Entities()[1]) {
		t.Error("tween started for a platform within snap tolerance")
	}

	// Local orbit keeps running underneath the correction
	p := r.position(0)
	if !near(math.Hypot(p.X, p.Z), 5, 1e-9) {
		t.Errorf("mid-tween radius = %f, want 5", math.Hypot(p.X, p.Z))
	}
	if st := r.sys.State(); !near(st.Positions[0].Y, targetY+0.005, 1e-9) {
		t.Errorf("state y = %f, want the uncorrected %f", st.Positions[0].Y, targetY+0.005)
	}

	r.sched.Step(250 * time.Millisecond)
	if y := r.position(0).Y; !near(y, targetY+0.010, 1e-9) {
		t.Errorf("end y = %f, want %f", y, targetY+0.010)
	}
	if r.world.Components.Tween.HasEntity(r.sys.Entities()[0]) {
		t.Error("tween not removed on completion")
	}

	r.sched.Step(tick)
	if y := r.position(0).Y; !near(y, targetY+0.015, 1e-9) {
		t.Errorf("y after resume = %f, want %f", y, targetY+0.015)
	}
}

func TestPlatformIgnoresRemoteHeights(t *testing.T) {
	tests := []struct {
		name string
		lift float64
	}{
		{"within tolerance", 0.2},
		{"behind", -3},
		{"more than half a cycle ahead", 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newPlatformRig(t, 2, nil)
			remote := network.NewIdentity()
			before := r.sys.State().Positions[0].Y

			r.sys.HandleEvent(event.GameEvent{Type: event.EventSyncReceived, Payload: &event.SyncPayload{
				Topic: "platform_state_change", Sender: remote.ID(), Seq: 1, Body: remoteState(t, r, 0, tt.lift, 0),
			}})

			if r.world.Components.Tween.HasEntity(r.sys.Entities()[0]) {
				t.Error("tween started")
			}
			if y := r.sys.State().Positions[0].Y; y != before {
				t.Errorf("state y = %f, want %f", y, before)
			}
			if r.metric("sync.applied") != 1 {
				t.Errorf("sync.applied = %d", r.metric("sync.applied"))
			}
		})
	}
}

func TestPlatformRepeatedTargetDoesNotRestartTween(t *testing.T) {
	r := newPlatformRig(t, 2, nil)
	remote := network.NewIdentity()
	e := r.sys.Entities()[0]

	r.sys.HandleEvent(event.GameEvent{Type: event.EventSyncReceived, Payload: &event.SyncPayload{
		Topic: "platform_state_change", Sender: remote.ID(), Seq: 1, Body: remoteState(t, r, 0, 3, 0),
	}})
	steps(r.sched, 3, tick)

	// Same height again from the peer, now level with the adopted base
	r.sys.HandleEvent(event.GameEvent{Type: event.EventSyncReceived, Payload: &event.SyncPayload{
		Topic: "platform_state_change", Sender: remote.ID(), Seq: 2, Body: remoteState(t, r, 0, 0, 0),
	}})
	tw, ok := r.world.Components.Tween.GetComponent(e)
	if !ok {
		t.Fatal("tween dropped")
	}
	if tw.Elapsed != 3*tick {
		t.Errorf("elapsed = %v, want %v", tw.Elapsed, 3*tick)
	}

	steps(r.sched, 15, tick)
	if r.world.Components.Tween.HasEntity(e) {
		t.Error("tween still running past its duration")
	}
}

func TestPlatformPeersSettleWithoutPingPong(t *testing.T) {
	hub := network.NewLocalHub()
	a := newPlatformRig(t, 4, hub.Join())
	b := newPlatformRig(t, 4, hub.Join())
	for i := range b.sys.state.Positions {
		b.sys.state.Positions[i].Y += 3
	}

	for k := 0; k < 90; k++ {
		a.sched.Step(tick)
		b.sched.Step(tick)
		if n := b.world.Components.Tween.CountEntities(); n != 0 {
			t.Fatalf("leading viewer started %d tweens at tick %d", n, k)
		}
	}

	for i := 0; i < 4; i++ {
		if a.world.Components.Tween.HasEntity(a.sys.Entities()[i]) || b.world.Components.Tween.HasEntity(b.sys.Entities()[i]) {
			t.Errorf("platform %d still smoothing after 3s", i)
		}
		if d := math.Abs(a.position(i).Y - b.position(i).Y); d > 0.25 {
			t.Errorf("platform %d heights differ by %f", i, d)
		}
	}
	// The trailing viewer adopted on its second tick and kept rising from there
	wantY := 17/4.0 + 3 + 90*0.005
	if y := a.position(1).Y; !near(y, wantY, 1e-9) {
		t.Errorf("platform 1 y = %f, want about %f", y, wantY)
	}
}

func TestPlatformRejectsBadInbound(t *testing.T) {
	r := newPlatformRig(t, 3, nil)
	remote := network.NewIdentity()
	good, _ := network.EncodePlatformState(network.PlatformState{
		Positions: []vmath.Vec3{{}, {}, {}}, Direction: -1, Toggles: 1,
	})
	wrongCount, _ := network.EncodePlatformState(network.PlatformState{
		Positions: []vmath.Vec3{{}, {}}, Direction: -1,
	})

	tests := []struct {
		name    string
		payload *event.SyncPayload
		metric  string
	}{
		{"self echo", &event.SyncPayload{Topic: "platform_state_change", Sender: r.sys.Identity().ID(), Seq: 1, Body: good}, "sync.self"},
		{"wrong count", &event.SyncPayload{Topic: "platform_state_change", Sender: remote.ID(), Seq: 1, Body: wrongCount}, "sync.malformed"},
		{"garbage", &event.SyncPayload{Topic: "platform_state_change", Sender: remote.ID(), Seq: 2, Body: []byte{0xc1, 0x00}}, "sync.malformed"},
		{"accepted", &event.SyncPayload{Topic: "platform_state_change", Sender: remote.ID(), Seq: 10, Body: good}, "sync.applied"},
		{"stale", &event.SyncPayload{Topic: "platform_state_change", Sender: remote.ID(), Seq: 9, Body: good}, "sync.stale"},
	}
	for _, tt := range tests {
		before := r.metric(tt.metric)
		r.sys.HandleEvent(event.GameEvent{Type: event.EventSyncReceived, Payload: tt.payload})
		if r.metric(tt.metric) != before+1 {
			t.Errorf("%s: %s = %d, want %d", tt.name, tt.metric, r.metric(tt.metric), before+1)
		}
	}
	if r.sys.Direction() != -1 {
		t.Errorf("direction = %d after the accepted message", r.sys.Direction())
	}
}

func TestPlatformReceiveCountsUndecodableFrames(t *testing.T) {
	hub := network.NewLocalHub()
	r := newPlatformRig(t, 2, hub.Join())
	if err := hub.Join().Publish("platform_state_change", []byte("not msgpack")); err != nil {
		t.Fatal(err)
	}
	if r.metric("sync.received") != 1 || r.metric("sync.malformed") != 1 {
		t.Errorf("received/malformed = %d/%d", r.metric("sync.received"), r.metric("sync.malformed"))
	}
	if n := r.world.Resources.Event.Queue.Len(); n != 0 {
		t.Errorf("queued %d events for an undecodable frame", n)
	}
}

func TestPlatformRecolors(t *testing.T) {
	r := newPlatformRig(t, 3, nil)
	e := r.sys.Entities()[0]
	before, _ := r.world.Components.Material.GetComponent(e)

	r.sched.Step(3 * time.Second)
	after, _ := r.world.Components.Material.GetComponent(e)
	if after.Albedo == before.Albedo {
		t.Error("albedo unchanged after the recolor interval")
	}
}
