package component

import "github.com/lixenwraith/zengarden/vmath"

// MaterialKind selects the shading model of a material
type MaterialKind uint8

const (
	MaterialBasic MaterialKind = iota
	MaterialPBR
)

// MaterialComponent holds the visual surface of an entity
// Emissive fields are only honored for MaterialPBR
type MaterialComponent struct {
	Kind              MaterialKind
	Albedo            vmath.Color4
	Emissive          vmath.Color4
	EmissiveIntensity float64
}

// PBR returns a physically based material with the given albedo
func PBR(albedo vmath.Color4) MaterialComponent {
	return MaterialComponent{Kind: MaterialPBR, Albedo: albedo}
}

// Glow returns a PBR material emitting color at intensity
func Glow(albedo, emissive vmath.Color4, intensity float64) MaterialComponent {
	return MaterialComponent{Kind: MaterialPBR, Albedo: albedo, Emissive: emissive, EmissiveIntensity: intensity}
}
