package main

import (
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/zengarden/audio"
	"github.com/lixenwraith/zengarden/core"
	"github.com/lixenwraith/zengarden/event"
	"github.com/lixenwraith/zengarden/host"
	"github.com/lixenwraith/zengarden/render"
	"github.com/lixenwraith/zengarden/scene"
	"github.com/lixenwraith/zengarden/settings"
	"github.com/lixenwraith/zengarden/vmath"
)

// moveStep is the distance one key press walks the player
const moveStep = 0.5

var hudMetrics = []string{
	"engine.ticks",
	"sync.published",
	"sync.applied",
	"sync.stale",
	"sync.malformed",
	"sync.publish_errors",
	"interaction.locks",
	"teleporter.activations",
	"entity.live_estimate",
}

// app binds terminal keys to the simulated host and the scene
type app struct {
	scene    *scene.Scene
	player   *host.SimPlayer
	input    *host.InputState
	settings *settings.Manager
	cues     *audio.CuePlayer
	role     string
	logger   *log.Logger

	frozen bool
}

// applyToggles pushes stored toggles into the scene and the cue player
func (a *app) applyToggles(t settings.Toggles) {
	a.scene.SetCosmetic(event.CosmeticDanceFloor, t.DanceFloor)
	a.scene.SetCosmetic(event.CosmeticClubLights, t.ClubLights)
	a.cues.SetMuted(t.Muted)
}

// handleKey applies one key press, returning false to quit
func (a *app) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		a.player.Move(vmath.V3(0, 0, -moveStep))
	case tcell.KeyDown:
		a.player.Move(vmath.V3(0, 0, moveStep))
	case tcell.KeyLeft:
		a.player.Move(vmath.V3(-moveStep, 0, 0))
	case tcell.KeyRight:
		a.player.Move(vmath.V3(moveStep, 0, 0))
	case tcell.KeyRune:
		return a.handleRune(ev.Rune())
	}
	return true
}

func (a *app) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case 'w':
		a.player.Move(vmath.V3(0, 0, -moveStep))
	case 's':
		a.player.Move(vmath.V3(0, 0, moveStep))
	case 'a':
		a.player.Move(vmath.V3(-moveStep, 0, 0))
	case 'd':
		a.player.Move(vmath.V3(moveStep, 0, 0))
	case 'e':
		if target, ok := a.focus(); ok {
			a.input.Trigger(host.ActionPrimary, target)
		}
	case 'r':
		a.scene.ToggleDirection()
	case 'f':
		a.toggle(func(t *settings.Toggles) { t.DanceFloor = !t.DanceFloor })
	case 'l':
		a.toggle(func(t *settings.Toggles) { t.ClubLights = !t.ClubLights })
	case 'm':
		a.toggle(func(t *settings.Toggles) { t.Muted = !t.Muted })
	case 'p':
		a.frozen = !a.frozen
		a.scene.SetSystemEnabled(a.scene.Platform.Name(), !a.frozen)
	}
	return true
}

func (a *app) toggle(fn func(*settings.Toggles)) {
	t, err := a.settings.Update(fn)
	if err != nil {
		a.logger.Printf("persist toggles: %v", err)
	}
	a.applyToggles(t)
}

// focus returns the clickable entity the player is aiming at
func (a *app) focus() (core.Entity, bool) {
	pos, ok := a.player.PlayerPosition()
	if !ok {
		return 0, false
	}
	return a.scene.Focus(pos)
}

// frame snapshots what the viewer draws
func (a *app) frame() render.Frame {
	pos, present := a.player.PlayerPosition()
	focus, _ := a.focus()
	return render.Frame{
		World:         a.scene.World,
		Player:        pos,
		PlayerPresent: present,
		Focus:         focus,
		HUD:           a.hud(focus, pos),
	}
}

func (a *app) hud(focus core.Entity, pos vmath.Vec3) []string {
	st := a.scene.Interaction.State()
	t := a.settings.Toggles()
	lines := []string{
		fmt.Sprintf("zengarden  role=%s  dir=%+d  centerpiece=%s  muted=%t   move:wasd/arrows  e:activate  r:reverse  p:freeze  f:floor  l:lights  m:mute  q:quit",
			a.role, a.scene.Platform.Direction(), st.Mode, t.Muted),
		render.MetricsLine(a.scene.World.Resources.Status.Snapshot(), hudMetrics...),
	}

	hint := fmt.Sprintf("player %.1f %.1f %.1f", pos.X, pos.Y, pos.Z)
	if pe, ok := a.scene.World.Components.PointerEvents.GetComponent(focus); ok && focus.Valid() {
		hint += "   [e] " + pe.HoverText
	}
	return append(lines, hint)
}
