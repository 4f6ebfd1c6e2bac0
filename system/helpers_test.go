package system

import (
	"io"
	"log"
	"math"
	"time"

	"github.com/lixenwraith/zengarden/engine"
	"github.com/lixenwraith/zengarden/host"
	"github.com/lixenwraith/zengarden/vmath"
)

const tick = time.Second / 30

type cueRecorder struct {
	cues []host.Cue
}

func (r *cueRecorder) PlayCue(c host.Cue) {
	r.cues = append(r.cues, c)
}

func (r *cueRecorder) count(c host.Cue) int {
	n := 0
	for _, got := range r.cues {
		if got == c {
			n++
		}
	}
	return n
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func steps(s *engine.Scheduler, n int, dt time.Duration) {
	for i := 0; i < n; i++ {
		s.Step(dt)
	}
}

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func colorNear(a, b vmath.Color4) bool {
	return near(a.R, b.R, 1e-9) && near(a.G, b.G, 1e-9) && near(a.B, b.B, 1e-9) && near(a.A, b.A, 1e-9)
}

func vecNear(a, b vmath.Vec3, tol float64) bool {
	return vmath.V3Near(a, b, tol)
}
