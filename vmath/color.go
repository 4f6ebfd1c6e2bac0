package vmath

import (
	"fmt"
	"strconv"
	"strings"
)

// Color4 is a linear RGBA color with components in [0,1]
type Color4 struct {
	R, G, B, A float64
}

func RGB(r, g, b float64) Color4 {
	return Color4{R: r, G: g, B: b, A: 1}
}

var (
	ColorWhite = Color4{R: 1, G: 1, B: 1, A: 1}
	ColorCyan  = Color4{G: 1, B: 1, A: 1}
	ColorRed   = Color4{R: 1, A: 1}
)

// ColorLerp interpolates every channel of a toward b
func ColorLerp(a, b Color4, t float64) Color4 {
	return Color4{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}

// ParseHexColor decodes "#RRGGBB" or "#RRGGBBAA"
func ParseHexColor(s string) (Color4, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return Color4{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color4{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	if len(h) == 6 {
		v = v<<8 | 0xFF
	}
	return Color4{
		R: float64(v>>24&0xFF) / 255,
		G: float64(v>>16&0xFF) / 255,
		B: float64(v>>8&0xFF) / 255,
		A: float64(v&0xFF) / 255,
	}, nil
}

// MustHexColor is ParseHexColor for compile-time literals, panics on malformed input
func MustHexColor(s string) Color4 {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex encodes c as "#RRGGBB", alpha dropped
func (c Color4) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// RGB8 returns the 8-bit channels of c, used by terminal renderers
func (c Color4) RGB8() (r, g, b uint8) {
	return channel(c.R), channel(c.G), channel(c.B)
}
