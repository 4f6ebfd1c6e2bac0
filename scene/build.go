package scene

import (
	"math"

	"github.com/lixenwraith/zengarden/component"
	"github.com/lixenwraith/zengarden/config"
	"github.com/lixenwraith/zengarden/core"
	"github.com/lixenwraith/zengarden/vmath"
)

// Activation reach of clickables without a configured radius
const defaultReach = 10.0

func (sc *Scene) spawn(pos vmath.Vec3, scale vmath.Vec3, shape component.MeshShape, mat component.MaterialComponent) core.Entity {
	w := sc.World
	e := w.CreateEntity()
	tr := component.NewTransform(pos)
	tr.Scale = scale
	w.Components.Transform.SetComponent(e, tr)
	w.Components.Mesh.SetComponent(e, component.MeshComponent{Shape: shape})
	w.Components.Material.SetComponent(e, mat)
	return e
}

func (sc *Scene) clickable(e core.Entity, shape component.MeshShape, hover string, reach float64) {
	sc.World.Components.Collider.SetComponent(e, component.ColliderComponent{Shape: shape})
	sc.World.Components.PointerEvents.SetComponent(e, component.PointerEventsComponent{
		HoverText:   hover,
		MaxDistance: reach,
	})
}

// buildGarden places the ground disc, tree and the crystal
func (sc *Scene) buildGarden(cfg *config.Scene) {
	origin := cfg.Garden.Origin.V3()

	sc.Ground = sc.spawn(origin, vmath.V3(12, 0.1, 12), component.ShapeSphere,
		component.PBR(config.Color(cfg.Garden.GroundColor)))
	sc.spawn(origin.Add(vmath.V3(0, 3.75, 0)), vmath.V3(0.4, 7.5, 0.4), component.ShapeBox,
		component.PBR(config.Color(cfg.Garden.TrunkColor)))
	sc.Leaves = sc.spawn(origin.Add(vmath.V3(0, 8.5, 0)), vmath.V3(3, 3, 3), component.ShapeSphere,
		component.PBR(config.Color(cfg.Garden.LeavesColor)))

	if cfg.Crystal.Enabled {
		color := config.Color(cfg.Crystal.Color)
		sc.Crystal = sc.spawn(origin.Add(cfg.Crystal.Position.V3()), vmath.V3(0.5, 1, 0.5), component.ShapeBox,
			component.Glow(color, color, 2))
		sc.clickable(sc.Crystal, component.ShapeBox, "Toggle Rotation", defaultReach)
		sc.World.Components.Crystal.SetComponent(sc.Crystal, component.CrystalComponent{})
	}
}

// buildPlatforms places the platforms on their orbit at t=0 with staggered heights, each with its beam
func (sc *Scene) buildPlatforms(cfg *config.Scene) {
	pc := cfg.Platforms
	center := pc.Center.V3()
	beamColor := config.Color(cfg.Beams.Color)
	source := cfg.Beams.Source.V3()

	sc.Platforms = make([]core.Entity, pc.Count)
	sc.Beams = make([]core.Entity, pc.Count)
	for i := 0; i < pc.Count; i++ {
		angle := float64(i) * 2 * math.Pi / float64(pc.Count)
		pos := vmath.V3OnCircle(center, pc.Radius, angle)
		pos.Y = center.Y + pc.Ceiling/float64(pc.Count)*float64(i)

		p := sc.spawn(pos, vmath.V3(pc.Scale, pc.Scale, pc.Scale), component.ShapeSphere,
			component.PBR(vmath.ColorWhite))
		sc.World.Components.Platform.SetComponent(p, component.PlatformComponent{Index: i})
		sc.Platforms[i] = p

		b := sc.spawn(source, vmath.V3(cfg.Beams.Thickness, 1, cfg.Beams.Thickness), component.ShapeCylinder,
			component.Glow(beamColor, beamColor, cfg.Beams.Intensity))
		sc.World.Components.Beam.SetComponent(b, component.BeamComponent{Index: i, Platform: p})
		sc.Beams[i] = b
	}
}

// buildCenterpiece places the animated model with its three clips, idle playing
func (sc *Scene) buildCenterpiece(cfg *config.Scene) {
	ic := cfg.Interaction
	w := sc.World

	e := w.CreateEntity()
	w.Components.Transform.SetComponent(e, component.NewTransform(ic.Position.V3()))
	w.Components.Mesh.SetComponent(e, component.MeshComponent{Shape: component.ShapeModel, Src: ic.Model})
	w.Components.Animator.SetComponent(e, component.AnimatorComponent{
		Clips: []component.AnimationClip{
			{Name: ic.IdleClip, Loop: true, Playing: true},
			{Name: ic.NearClip, Loop: true},
			{Name: ic.ActionClip},
		},
		Active: ic.IdleClip,
	})
	sc.clickable(e, component.ShapeModel, "Activate", 0)
	sc.Centerpiece = e
}

// buildTeleporter places the pad and its indicator ring
func (sc *Scene) buildTeleporter(cfg *config.Scene) {
	pos := cfg.Teleporter.Position.V3()

	sc.Pad = sc.spawn(pos, vmath.V3(1, 0.1, 1), component.ShapeCylinder,
		component.Glow(vmath.ColorCyan, vmath.ColorCyan, 0.7))
	indicator := sc.spawn(pos.Add(vmath.V3(0, 0.5, 0)), vmath.V3(0.5, 0.5, 0.5), component.ShapeCylinder,
		component.Glow(vmath.ColorWhite, vmath.ColorWhite, 1.5))
	sc.World.Components.Transform.Mutate(indicator, func(tr *component.TransformComponent) {
		tr.Parent = sc.Pad
	})
	sc.World.Components.Teleporter.SetComponent(sc.Pad, component.TeleporterComponent{Indicator: indicator})
}

// buildDanceFloor lays a rows x cols grid of cubes of random height
func (sc *Scene) buildDanceFloor(cfg *config.Scene, rng *vmath.FastRand) {
	dc := cfg.DanceFloor
	if dc.Rows == 0 || dc.Cols == 0 {
		return
	}
	center := dc.Center.V3()
	color := config.Color(dc.Color)
	xSpacing := dc.Width / float64(dc.Cols)
	zSpacing := dc.Depth / float64(dc.Rows)
	startX := center.X - dc.Width/2
	startZ := center.Z - dc.Depth/2

	index := 0
	for row := 0; row < dc.Rows; row++ {
		for col := 0; col < dc.Cols; col++ {
			height := rng.Float64()*dc.MaxHeight + 0.1
			scale := vmath.V3(xSpacing, height, zSpacing)
			pos := vmath.V3(
				startX+float64(col)*xSpacing+xSpacing/2,
				height/2+center.Y-0.75,
				startZ+float64(row)*zSpacing+zSpacing/2,
			)
			e := sc.spawn(pos, scale, component.ShapeBox, component.Glow(color, color, 1))
			sc.World.Components.DanceCube.SetComponent(e, component.DanceCubeComponent{Index: index, BaseScale: scale})
			index++
		}
	}
}

// buildClubLights stacks the lights at the orbit center; the first tick spreads them
func (sc *Scene) buildClubLights(cfg *config.Scene) {
	lc := cfg.ClubLights
	scale := vmath.V3(0.2, 0.2, 0.2)
	for i := 0; i < lc.Count; i++ {
		e := sc.spawn(lc.Center.V3(), scale, component.ShapeSphere,
			component.Glow(vmath.ColorRed, vmath.ColorRed, 5))
		sc.World.Components.ClubLight.SetComponent(e, component.ClubLightComponent{Index: i, BaseScale: scale})
	}
}
