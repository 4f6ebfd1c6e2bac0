// Package config loads the scene description from YAML
package config

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/zengarden/parameter"
	"github.com/lixenwraith/zengarden/vmath"
)

// ErrInvalid is wrapped by every Validate failure
var ErrInvalid = errors.New("invalid scene config")

// Vec is a YAML [x, y, z] triple
type Vec [3]float64

// V3 converts to a scene vector
func (v Vec) V3() vmath.Vec3 {
	return vmath.V3(v[0], v[1], v[2])
}

// Scene is the complete scene description
type Scene struct {
	TickRate    int               `yaml:"tick_rate"`
	Garden      GardenConfig      `yaml:"garden"`
	Platforms   PlatformConfig    `yaml:"platforms"`
	Beams       BeamConfig        `yaml:"beams"`
	Pulse       PulseConfig       `yaml:"pulse"`
	Interaction InteractionConfig `yaml:"interaction"`
	Crystal     CrystalConfig     `yaml:"crystal"`
	Teleporter  TeleporterConfig  `yaml:"teleporter"`
	DanceFloor  DanceFloorConfig  `yaml:"dance_floor"`
	ClubLights  ClubLightConfig   `yaml:"club_lights"`
	Sync        SyncConfig        `yaml:"sync"`
	Network     NetworkConfig     `yaml:"network"`
}

// GardenConfig positions the static centerpiece of platforms, tree and beams
type GardenConfig struct {
	Origin      Vec    `yaml:"origin"`
	GroundColor string `yaml:"ground_color"`
	TrunkColor  string `yaml:"trunk_color"`
	LeavesColor string `yaml:"leaves_color"`
}

type PlatformConfig struct {
	Count        int           `yaml:"count"`
	Radius       float64       `yaml:"radius"`
	Center       Vec           `yaml:"center"`
	AngularSpeed float64       `yaml:"angular_speed"`
	Step         float64       `yaml:"step"`
	Ceiling      float64       `yaml:"ceiling"`
	SpinRate     float64       `yaml:"spin_rate"`
	Scale        float64       `yaml:"scale"`
	RecolorEvery time.Duration `yaml:"recolor_every"`
	// Seed drives recolor randomness; 0 seeds from the clock
	Seed uint64 `yaml:"seed"`
}

type BeamConfig struct {
	Source      Vec     `yaml:"source"`
	CorrectionX float64 `yaml:"correction_x"`
	Thickness   float64 `yaml:"thickness"`
	Color       string  `yaml:"color"`
	Intensity   float64 `yaml:"intensity"`
}

type PulseConfig struct {
	Speed  float64 `yaml:"speed"`
	Target string  `yaml:"target"`
}

type InteractionConfig struct {
	Position     Vec           `yaml:"position"`
	Model        string        `yaml:"model"`
	Radius       float64       `yaml:"radius"`
	IdleClip     string        `yaml:"idle_clip"`
	NearClip     string        `yaml:"near_clip"`
	ActionClip   string        `yaml:"action_clip"`
	ActionLength time.Duration `yaml:"action_length"`
}

type CrystalConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Position Vec    `yaml:"position"`
	Color    string `yaml:"color"`
}

type TeleporterConfig struct {
	Position    Vec           `yaml:"position"`
	Target      Vec           `yaml:"target"`
	LookAt      Vec           `yaml:"look_at"`
	TriggerSize Vec           `yaml:"trigger_size"`
	ActionDelay time.Duration `yaml:"action_delay"`
	RevertDelay time.Duration `yaml:"revert_delay"`
	Cooldown    time.Duration `yaml:"cooldown"`
}

type DanceFloorConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Center    Vec     `yaml:"center"`
	Rows      int     `yaml:"rows"`
	Cols      int     `yaml:"cols"`
	Width     float64 `yaml:"width"`
	Depth     float64 `yaml:"depth"`
	MaxHeight float64 `yaml:"max_height"`
	Color     string  `yaml:"color"`
}

type ClubLightConfig struct {
	Enabled bool    `yaml:"enabled"`
	Count   int     `yaml:"count"`
	Center  Vec     `yaml:"center"`
	Radius  float64 `yaml:"radius"`
	Speed   float64 `yaml:"speed"`
}

type SyncConfig struct {
	Topic         string        `yaml:"topic"`
	Smoothing     time.Duration `yaml:"smoothing"`
	SnapTolerance float64       `yaml:"snap_tolerance"`
}

// NetworkConfig selects the Sync Channel transport
// Role is one of none, local, host, peer, ws
type NetworkConfig struct {
	Role     string `yaml:"role"`
	Address  string `yaml:"address"`
	RelayURL string `yaml:"relay_url"`
}

// Default returns the scene as originally laid out
func Default() *Scene {
	return &Scene{
		TickRate: int(time.Second / parameter.TickInterval),
		Garden: GardenConfig{
			GroundColor: "#999999",
			TrunkColor:  "#8B4513",
			LeavesColor: "#4CAF50",
		},
		Platforms: PlatformConfig{
			Count:        parameter.PlatformCount,
			Radius:       parameter.PlatformRadius,
			AngularSpeed: parameter.PlatformAngularSpeed,
			Step:         parameter.PlatformRiseStep,
			Ceiling:      parameter.PlatformCeiling,
			SpinRate:     parameter.PlatformSpinRate,
			Scale:        parameter.PlatformScale,
			RecolorEvery: parameter.PlatformRecolorEvery,
		},
		Beams: BeamConfig{
			Source:      Vec{0, parameter.BeamSourceY, 0},
			CorrectionX: parameter.BeamCorrectionX,
			Thickness:   parameter.BeamThickness,
			Color:       "#00FFFF",
			Intensity:   parameter.BeamIntensity,
		},
		Pulse: PulseConfig{
			Speed:  parameter.PulseSpeed,
			Target: "#00FFFF",
		},
		Interaction: InteractionConfig{
			Position:     Vec{10, 9.45, 8},
			Model:        "models/m1d_anim_3actions.glb",
			Radius:       parameter.InteractionRadius,
			IdleClip:     parameter.InteractionIdleClip,
			NearClip:     parameter.InteractionNearClip,
			ActionClip:   parameter.InteractionActionClip,
			ActionLength: parameter.InteractionActionLength,
		},
		Crystal: CrystalConfig{
			Enabled:  true,
			Position: Vec{0, 1, -4},
			Color:    "#00FFFF",
		},
		Teleporter: TeleporterConfig{
			Position:    Vec{2, 0.1, 13},
			Target:      Vec{13.5, 12, 13},
			TriggerSize: Vec{2, 2, 2},
			ActionDelay: parameter.TeleportActionDelay,
			RevertDelay: parameter.TeleportRevertDelay,
			Cooldown:    parameter.TeleportCooldown,
		},
		DanceFloor: DanceFloorConfig{
			Enabled:   true,
			Center:    Vec{10, 2, 8},
			Rows:      7,
			Cols:      5,
			Width:     5,
			Depth:     7,
			MaxHeight: 0.5,
			Color:     "#9932CC",
		},
		ClubLights: ClubLightConfig{
			Enabled: true,
			Count:   8,
			Center:  Vec{10, 5, 8},
			Radius:  3,
			Speed:   0.5,
		},
		Sync: SyncConfig{
			Topic:         parameter.PlatformTopic,
			Smoothing:     parameter.PlatformSmoothing,
			SnapTolerance: parameter.PlatformSnapTolerance,
		},
		Network: NetworkConfig{
			Role:     "none",
			Address:  "127.0.0.1:7777",
			RelayURL: "ws://127.0.0.1:8787/sync",
		},
	}
}

// Load reads and validates a scene file, absent keys keep their defaults
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read scene config %s", path)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "scene config %s", path)
	}
	return s, nil
}

// Parse decodes YAML over Default and validates the result
func Parse(data []byte) (*Scene, error) {
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, errors.Wrap(err, "parse scene config")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// TickInterval converts TickRate to the scheduler interval
func (s *Scene) TickInterval() time.Duration {
	if s.TickRate <= 0 {
		return parameter.TickInterval
	}
	return time.Second / time.Duration(s.TickRate)
}

// Validate checks ranges and color literals
func (s *Scene) Validate() error {
	switch {
	case s.TickRate <= 0 || s.TickRate > 240:
		return errors.Wrapf(ErrInvalid, "tick_rate %d out of range (1..240)", s.TickRate)
	case s.Platforms.Count <= 0:
		return errors.Wrapf(ErrInvalid, "platforms.count must be positive, got %d", s.Platforms.Count)
	case s.Platforms.Radius <= 0:
		return errors.Wrapf(ErrInvalid, "platforms.radius must be positive, got %.2f", s.Platforms.Radius)
	case s.Platforms.Ceiling <= 0:
		return errors.Wrapf(ErrInvalid, "platforms.ceiling must be positive, got %.2f", s.Platforms.Ceiling)
	case s.Platforms.Step < 0 || s.Platforms.Step >= s.Platforms.Ceiling:
		return errors.Wrapf(ErrInvalid, "platforms.step %.3f out of range", s.Platforms.Step)
	case s.Interaction.Radius <= 0:
		return errors.Wrapf(ErrInvalid, "interaction.radius must be positive, got %.2f", s.Interaction.Radius)
	case s.Interaction.ActionLength <= 0:
		return errors.Wrapf(ErrInvalid, "interaction.action_length must be positive, got %s", s.Interaction.ActionLength)
	case s.Interaction.IdleClip == "" || s.Interaction.NearClip == "" || s.Interaction.ActionClip == "":
		return errors.Wrap(ErrInvalid, "interaction clip names must be set")
	case s.Teleporter.ActionDelay < 0 || s.Teleporter.RevertDelay < 0:
		return errors.Wrap(ErrInvalid, "teleporter delays must not be negative")
	case s.Teleporter.Cooldown < s.Teleporter.ActionDelay+s.Teleporter.RevertDelay:
		return errors.Wrapf(ErrInvalid, "teleporter.cooldown %s shorter than its effect", s.Teleporter.Cooldown)
	case s.Sync.Topic == "":
		return errors.Wrap(ErrInvalid, "sync.topic must be set")
	case len(s.Sync.Topic) > 255:
		return errors.Wrap(ErrInvalid, "sync.topic longer than 255 bytes")
	case s.Sync.Smoothing < 0 || s.Sync.SnapTolerance < 0:
		return errors.Wrap(ErrInvalid, "sync smoothing and snap_tolerance must not be negative")
	case s.DanceFloor.Rows < 0 || s.DanceFloor.Cols < 0 || s.ClubLights.Count < 0:
		return errors.Wrap(ErrInvalid, "cosmetic counts must not be negative")
	}

	switch strings.ToLower(s.Network.Role) {
	case "", "none", "local", "host", "peer", "ws":
	default:
		return errors.Wrapf(ErrInvalid, "network.role %q unknown", s.Network.Role)
	}

	colors := map[string]string{
		"garden.ground_color": s.Garden.GroundColor,
		"garden.trunk_color":  s.Garden.TrunkColor,
		"garden.leaves_color": s.Garden.LeavesColor,
		"beams.color":         s.Beams.Color,
		"pulse.target":        s.Pulse.Target,
		"crystal.color":       s.Crystal.Color,
		"dance_floor.color":   s.DanceFloor.Color,
	}
	for key, hex := range colors {
		if _, err := vmath.ParseHexColor(hex); err != nil {
			return errors.Wrapf(ErrInvalid, "%s: %v", key, err)
		}
	}
	return nil
}

// Color parses a validated hex literal
func Color(hex string) vmath.Color4 {
	c, err := vmath.ParseHexColor(hex)
	if err != nil {
		return vmath.ColorWhite
	}
	return c
}
