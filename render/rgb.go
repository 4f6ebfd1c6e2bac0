package render

import "github.com/lixenwraith/zengarden/vmath"

// RGB is an 8-bit per channel terminal color
type RGB struct {
	R, G, B uint8
}

var (
	RGBBlack      = RGB{0, 0, 0}
	RgbBackground = RGB{26, 27, 38} // Tokyo Night
	RgbHUD        = RGB{192, 202, 245}
	RgbHUDDim     = RGB{86, 95, 137}
	RgbPlayer     = RGB{255, 158, 100}
	RgbFocus      = RGB{224, 175, 104}
)

// clamp converts float to uint8 efficiently
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}

// Blend optimizes alpha blending
// If alpha is 1.0 or 0.0, we return early to save math
func Blend(c, src RGB, alpha float64) RGB {
	if alpha >= 1.0 {
		return src
	}
	if alpha <= 0.0 {
		return c
	}

	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(c.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(c.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(c.B)*inv),
	}
}

// Scale multiplies every channel by factor, clamped
func Scale(c RGB, factor float64) RGB {
	return RGB{
		R: clamp(float64(c.R) * factor),
		G: clamp(float64(c.G) * factor),
		B: clamp(float64(c.B) * factor),
	}
}

// FromColor4 quantizes a linear color, ignoring alpha
func FromColor4(c vmath.Color4) RGB {
	return RGB{
		R: clamp(c.R*255 + 0.5),
		G: clamp(c.G*255 + 0.5),
		B: clamp(c.B*255 + 0.5),
	}
}

// Surface is the displayed color of a material: albedo pulled toward emissive by intensity
// Intensity 2 or more shows pure emissive
func Surface(albedo, emissive vmath.Color4, intensity float64) RGB {
	if intensity <= 0 {
		return FromColor4(albedo)
	}
	return Blend(FromColor4(albedo), FromColor4(emissive), intensity/2)
}
