// Package sky supplies lighting state and incident radiance to the
// shading models: sun direction and color, and a parametric sky that
// can be overridden by an environment-map texture.
package sky

import (
	"math"
	"time"

	"github.com/seascape-dev/seascape/colors"
	"github.com/seascape-dev/seascape/fmath"
	"github.com/seascape-dev/seascape/texture"
	"github.com/seascape-dev/seascape/vectors"
)

const degToRad = math.Pi / 180

func sinCos(a float64) (float64, float64) {
	return math.Sin(a), math.Cos(a)
}

// Lighting is the light state shared by every shading model of a frame.
type Lighting struct {
	SunDir       vectors.Vec3
	SunColor     colors.Color4
	SunIntensity float64
}

// Model is a parametric gradient sky with a sun disc. It is read-only
// during a frame.
type Model struct {
	ZenithColor  colors.Color4
	HorizonColor colors.Color4
	HazeColor    colors.Color4
	GroundColor  colors.Color4 // below-horizon fill

	SunElevationDeg float64
	SunAzimuthDeg   float64
	SunSharpness    float64 // disc tightness exponent
	BaseIntensity   float64

	// Env, when set, replaces the parametric gradient (the sun disc is
	// still added on top).
	Env *texture.Texture
}

// ClearDay is a bright midday preset.
func ClearDay() *Model {
	return &Model{
		ZenithColor:     colors.NewRGB(0.18, 0.40, 0.75),
		HorizonColor:    colors.NewRGB(0.65, 0.80, 0.92),
		HazeColor:       colors.NewRGB(0.85, 0.88, 0.90),
		GroundColor:     colors.NewRGB(0.08, 0.10, 0.12),
		SunElevationDeg: 52,
		SunAzimuthDeg:   160,
		SunSharpness:    1800,
		BaseIntensity:   1.0,
	}
}

// GoldenHour is a low warm sun with heavy horizon haze.
func GoldenHour() *Model {
	return &Model{
		ZenithColor:     colors.NewRGB(0.16, 0.22, 0.45),
		HorizonColor:    colors.NewRGB(0.95, 0.55, 0.30),
		HazeColor:       colors.NewRGB(0.98, 0.72, 0.45),
		GroundColor:     colors.NewRGB(0.06, 0.06, 0.08),
		SunElevationDeg: 8,
		SunAzimuthDeg:   250,
		SunSharpness:    1200,
		BaseIntensity:   0.85,
	}
}

// Overcast flattens the gradient and widens the sun into a bright patch.
func Overcast() *Model {
	return &Model{
		ZenithColor:     colors.NewRGB(0.55, 0.58, 0.62),
		HorizonColor:    colors.NewRGB(0.70, 0.72, 0.74),
		HazeColor:       colors.NewRGB(0.75, 0.76, 0.78),
		GroundColor:     colors.NewRGB(0.18, 0.19, 0.20),
		SunElevationDeg: 40,
		SunAzimuthDeg:   180,
		SunSharpness:    40,
		BaseIntensity:   0.6,
	}
}

// Preset returns the named preset, defaulting to ClearDay.
func Preset(name string) *Model {
	switch name {
	case "golden-hour":
		return GoldenHour()
	case "overcast":
		return Overcast()
	default:
		return ClearDay()
	}
}

// AlignToClock replaces the scripted sun angles with the astronomical
// sun position for the given instant and site.
func (m *Model) AlignToClock(at time.Time, latDeg, lonDeg float64) {
	dir := SunDirection(at, latDeg, lonDeg)
	m.SunElevationDeg = math.Asin(fmath.Clamp(dir.Y, -1, 1)) / degToRad
	m.SunAzimuthDeg = math.Atan2(dir.X, dir.Z) / degToRad
}

// Lighting returns the frame's light state. The sun reddens and fades
// as it approaches the horizon.
func (m *Model) Lighting() Lighting {
	el := m.SunElevationDeg * degToRad
	az := m.SunAzimuthDeg * degToRad

	sinEl, cosEl := sinCos(el)
	sinAz, cosAz := sinCos(az)
	dir := vectors.Vec3{X: cosEl * sinAz, Y: sinEl, Z: cosEl * cosAz}

	warmth := fmath.Smoothstep(0.35, 0.0, sinEl) // 1 at horizon, 0 high up
	color := colors.NewRGB(1.0, 0.97, 0.90).Mix(colors.NewRGB(1.0, 0.55, 0.25), warmth)

	intensity := m.BaseIntensity * fmath.Smoothstep(-0.1, 0.25, sinEl)

	return Lighting{SunDir: dir, SunColor: color, SunIntensity: intensity}
}

// Radiance returns incoming sky light from the given unit direction.
func (m *Model) Radiance(dir vectors.Vec3, l Lighting) colors.Color4 {
	var base colors.Color4
	if m.Env != nil {
		base = m.Env.SampleDirection(dir)
	} else {
		up := fmath.Saturate(dir.Y)
		base = m.HorizonColor.Mix(m.ZenithColor, math.Pow(up, 0.45))
		if dir.Y < 0 {
			base = base.Mix(m.GroundColor, fmath.Smoothstep(0.0, -0.25, dir.Y))
		}
		haze := fmath.Smoothstep(0.25, 0.0, math.Abs(dir.Y))
		base = base.Mix(m.HazeColor, 0.6*haze)
	}

	// Sun disc plus a wide glow term.
	cosAng := fmath.Saturate(dir.Dot(l.SunDir))
	disc := math.Pow(cosAng, m.SunSharpness)
	glow := 0.22 * math.Pow(cosAng, m.SunSharpness/48)
	base = base.Add(l.SunColor.ScaleRGB((disc*4 + glow) * l.SunIntensity))

	base.A = 1
	return base
}

// Ambient is the hemispherical fill used by the surface shaders: the
// sky gradient sampled straight up, dimmed.
func (m *Model) Ambient(l Lighting) colors.Color4 {
	return m.Radiance(vectors.Up(), l).ScaleRGB(0.35)
}
