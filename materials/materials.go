// Package materials holds the art-directable parameter bags consumed by
// the shading models. Materials carry no behavior; presets are plain
// constructors.
package materials

import "github.com/seascape-dev/seascape/colors"

// Water parameterizes the ocean shading model. Roughness is derived
// per-point from the wave field; BaseRoughness and MaxRoughness only
// bound it.
type Water struct {
	ShallowColor colors.Color4 // scatter tint near the surface
	DeepColor    colors.Color4 // tint at full absorption depth
	Absorption   colors.Color4 // Beer-Lambert extinction per channel, 1/m

	F0            float64 // normal-incidence Fresnel reflectance
	BaseRoughness float64
	MaxRoughness  float64
	SpecularPower float64

	FoamThreshold  float64 // crest steepness where foam starts
	FoamIntensity  float64
	Subsurface     float64 // strength of the scattering approximation
	GlintIntensity float64
}

// DeepOcean is the default open-water preset.
func DeepOcean() Water {
	return Water{
		ShallowColor:   colors.NewRGB(0.10, 0.38, 0.42),
		DeepColor:      colors.NewRGB(0.02, 0.08, 0.15),
		Absorption:     colors.NewRGB(0.45, 0.18, 0.10),
		F0:             0.02,
		BaseRoughness:  0.04,
		MaxRoughness:   0.35,
		SpecularPower:  220,
		FoamThreshold:  0.45,
		FoamIntensity:  0.8,
		Subsurface:     0.55,
		GlintIntensity: 1.4,
	}
}

// Tropical is brighter and more translucent, for shallow lagoon scenes.
func Tropical() Water {
	w := DeepOcean()
	w.ShallowColor = colors.NewRGB(0.18, 0.60, 0.58)
	w.DeepColor = colors.NewRGB(0.03, 0.22, 0.30)
	w.Absorption = colors.NewRGB(0.30, 0.10, 0.06)
	w.Subsurface = 0.75
	return w
}

// StormSea darkens the water and raises the roughness ceiling and foam.
func StormSea() Water {
	w := DeepOcean()
	w.ShallowColor = colors.NewRGB(0.08, 0.20, 0.24)
	w.DeepColor = colors.NewRGB(0.01, 0.04, 0.08)
	w.BaseRoughness = 0.12
	w.MaxRoughness = 0.6
	w.FoamThreshold = 0.3
	w.FoamIntensity = 1.2
	w.GlintIntensity = 0.7
	return w
}

// Terrain parameterizes sea-floor / island shading.
type Terrain struct {
	BaseColor colors.Color4 // color near BaseLevel
	DeepColor colors.Color4 // color DepthRange below BaseLevel

	BaseLevel  float64 // height of the undarkened base color, meters
	DepthRange float64 // vertical span of the base→deep tint

	Roughness       float64
	SpecularPower   float64
	CausticStrength float64
}

// Sand is the default warm shallow-floor preset.
func Sand() Terrain {
	return Terrain{
		BaseColor:       colors.NewRGB(0.76, 0.70, 0.50),
		DeepColor:       colors.NewRGB(0.22, 0.28, 0.26),
		BaseLevel:       0.0,
		DepthRange:      6.0,
		Roughness:       0.9,
		SpecularPower:   8,
		CausticStrength: 0.9,
	}
}

// Rock is a darker preset for ridged-coast scenes.
func Rock() Terrain {
	return Terrain{
		BaseColor:       colors.NewRGB(0.42, 0.40, 0.38),
		DeepColor:       colors.NewRGB(0.12, 0.14, 0.15),
		BaseLevel:       0.5,
		DepthRange:      7.0,
		Roughness:       0.7,
		SpecularPower:   24,
		CausticStrength: 0.6,
	}
}

// Object parameterizes the simple PBR model for placed props.
type Object struct {
	Albedo        colors.Color4
	F0            float64
	Roughness     float64
	SpecularPower float64
	RimStrength   float64
}

// MatteGray is the flat debugging material.
func MatteGray() Object {
	return Object{
		Albedo:        colors.NewRGB(0.5, 0.5, 0.5),
		F0:            0.04,
		Roughness:     0.8,
		SpecularPower: 16,
		RimStrength:   0.15,
	}
}

// Buoy is a glossy painted-metal preset.
func Buoy() Object {
	return Object{
		Albedo:        colors.NewRGB(0.72, 0.18, 0.12),
		F0:            0.05,
		Roughness:     0.35,
		SpecularPower: 90,
		RimStrength:   0.35,
	}
}
