package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	s := Default()
	if err := s.Validate(); err != nil {
		t.Fatalf("default scene invalid: %v", err)
	}
	if s.TickInterval() != time.Second/30 {
		t.Errorf("TickInterval = %s", s.TickInterval())
	}
	if s.Interaction.ActionLength != 37250*time.Millisecond {
		t.Errorf("ActionLength = %s", s.Interaction.ActionLength)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	data := []byte(`
tick_rate: 60
platforms:
  count: 8
  center: [1, 0, -1]
interaction:
  action_length: 2s
sync:
  smoothing: 250ms
network:
  role: host
`)
	s, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.TickRate != 60 || s.Platforms.Count != 8 {
		t.Errorf("tick_rate/count = %d/%d", s.TickRate, s.Platforms.Count)
	}
	if s.Platforms.Center.V3().X != 1 || s.Platforms.Center.V3().Z != -1 {
		t.Errorf("center = %v", s.Platforms.Center)
	}
	if s.Interaction.ActionLength != 2*time.Second || s.Sync.Smoothing != 250*time.Millisecond {
		t.Errorf("durations = %s/%s", s.Interaction.ActionLength, s.Sync.Smoothing)
	}
	// Untouched keys keep defaults
	if s.Platforms.Radius != 5 || s.Interaction.Radius != 6 {
		t.Errorf("defaults lost: radius %.1f, interaction radius %.1f", s.Platforms.Radius, s.Interaction.Radius)
	}
	if s.Network.Role != "host" {
		t.Errorf("role = %q", s.Network.Role)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero tick rate", "tick_rate: 0"},
		{"no platforms", "platforms: {count: 0}"},
		{"negative radius", "interaction: {radius: -1}"},
		{"missing clip", "interaction: {action_clip: \"\"}"},
		{"short cooldown", "teleporter: {cooldown: 100ms}"},
		{"empty topic", "sync: {topic: \"\"}"},
		{"bad color", "beams: {color: \"teal\"}"},
		{"unknown role", "network: {role: mesh}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.Cause(err) != ErrInvalid {
				t.Errorf("cause = %v, want ErrInvalid", errors.Cause(err))
			}
		})
	}
}

func TestParseMalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("platforms: [")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte("platforms: {count: 4}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Platforms.Count != 4 {
		t.Errorf("count = %d", s.Platforms.Count)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
