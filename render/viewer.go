// Package render draws the garden top-down into a terminal
package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/zengarden/component"
	"github.com/lixenwraith/zengarden/core"
	"github.com/lixenwraith/zengarden/engine"
	"github.com/lixenwraith/zengarden/vmath"
)

const (
	beamDepth   = -1e9
	playerDepth = math.MaxFloat64
	groundShade = 0.35
)

// Frame is everything one draw needs
type Frame struct {
	World         *engine.World
	Player        vmath.Vec3
	PlayerPresent bool
	Focus         core.Entity
	HUD           []string
}

// Viewer renders frames onto a tcell screen
// Not safe for concurrent use; the host draws from one goroutine
type Viewer struct {
	screen tcell.Screen
	buf    *Buffer
	center vmath.Vec3
	radius float64

	// Camera of the last drawn frame
	Camera Camera
}

// NewViewer frames a disc of radius around center
func NewViewer(screen tcell.Screen, center vmath.Vec3, radius float64) *Viewer {
	w, h := screen.Size()
	return &Viewer{
		screen: screen,
		buf:    NewBuffer(w, h),
		center: center,
		radius: radius,
	}
}

// Resize picks up the current screen size
func (v *Viewer) Resize() {
	w, h := v.screen.Size()
	v.buf.Resize(w, h)
	v.screen.Sync()
}

// Buffer exposes the last composed frame
func (v *Viewer) Buffer() *Buffer {
	return v.buf
}

// Draw composes and flushes one frame
func (v *Viewer) Draw(f Frame) {
	w, h := v.buf.Size()
	v.buf.Clear()

	top := min(len(f.HUD), h)
	vh := h - top
	if vh > 0 && f.World != nil {
		v.Camera = FitRadius(v.center, v.radius, w, vh)
		v.drawWorld(f, w, vh, top)
	}

	for i := 0; i < top; i++ {
		fg := RgbHUD
		if i > 0 {
			fg = RgbHUDDim
		}
		v.buf.Text(0, i, FitLine(f.HUD[i], w), fg, RgbBackground)
	}

	v.buf.Flush(v.screen)
}

func (v *Viewer) drawWorld(f Frame, w, vh, top int) {
	world := f.World
	cs := &world.Components
	proj := func(p vmath.Vec3) (int, int) {
		x, y := v.Camera.Project(p, w, vh)
		return x, y + top
	}

	for _, e := range cs.Mesh.GetAllEntities() {
		tr, ok := cs.Transform.GetComponent(e)
		if !ok || tr.Hidden() || tr.Parent.Valid() {
			continue
		}
		mesh, _ := cs.Mesh.GetComponent(e)
		mat, _ := cs.Material.GetComponent(e)
		color := Surface(mat.Albedo, mat.Emissive, mat.EmissiveIntensity)

		if beam, ok := cs.Beam.GetComponent(e); ok {
			if end, ok := cs.Transform.GetComponent(beam.Platform); ok {
				source := tr.Position.Mul(2).Sub(end.Position)
				v.drawLine(proj, source, end.Position, color)
			}
			continue
		}
		if flat(tr) {
			v.paintDisc(tr.Position, tr.Scale.X, Scale(color, groundShade), w, vh, top)
			continue
		}

		x, y := proj(tr.Position)
		v.buf.Plot(x, y, glyph(world, e, mesh.Shape), color, tr.Position.Y)
	}

	if f.PlayerPresent {
		x, y := proj(f.Player)
		v.buf.Plot(x, y, 'P', RgbPlayer, playerDepth)
	}
	if f.Focus.Valid() {
		if tr, ok := cs.Transform.GetComponent(f.Focus); ok {
			v.buf.Highlight(proj(tr.Position))
		}
	}
}

// flat reports a wide, thin disc such as the ground
func flat(tr component.TransformComponent) bool {
	return tr.Scale.X >= 4 && tr.Scale.Y < 0.25*tr.Scale.X
}

func glyph(w *engine.World, e core.Entity, shape component.MeshShape) rune {
	cs := &w.Components
	switch {
	case cs.Platform.HasEntity(e):
		return 'o'
	case cs.Crystal.HasEntity(e):
		return '*'
	case cs.Teleporter.HasEntity(e):
		return '#'
	case cs.Animator.HasEntity(e):
		return '@'
	case cs.DanceCube.HasEntity(e):
		return '='
	case cs.ClubLight.HasEntity(e):
		return '+'
	}
	switch shape {
	case component.ShapeSphere:
		return 'O'
	case component.ShapeBox:
		return '|'
	case component.ShapeCylinder:
		return '0'
	default:
		return '?'
	}
}

func (v *Viewer) drawLine(proj func(vmath.Vec3) (int, int), from, to vmath.Vec3, color RGB) {
	x0, y0 := proj(from)
	x1, y1 := proj(to)
	steps := max(abs(x1-x0), abs(y1-y0))
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		x := int(math.Round(float64(x0) + float64(x1-x0)*t))
		y := int(math.Round(float64(y0) + float64(y1-y0)*t))
		v.buf.Plot(x, y, '.', color, beamDepth)
	}
}

func (v *Viewer) paintDisc(center vmath.Vec3, r float64, bg RGB, w, vh, top int) {
	for y := 0; y < vh; y++ {
		for x := 0; x < w; x++ {
			p := v.Camera.Unproject(x, y, w, vh)
			if vmath.HorizontalDist(p, center) <= r {
				v.buf.SetBg(x, y+top, bg)
			}
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
