package render

import (
	"math"

	"github.com/seascape-dev/seascape/fmath"
	"github.com/seascape-dev/seascape/march"
	"github.com/seascape-dev/seascape/vectors"
)

// Reference exposure point: f/2.8 at 1/60 s and ISO 100 maps to a
// multiplier of exactly 1.
const (
	refFStop   = 2.8
	refShutter = 1.0 / 60.0
	refISO     = 100.0

	minExposure = 0.1
	maxExposure = 10.0
)

// Camera models a physical camera: placement plus the photographic
// exposure triangle and cosmetic lens parameters. It is plain data,
// constructed per frame and read-only during rendering.
type Camera struct {
	Position vectors.Vec3
	Target   vectors.Vec3
	Up       vectors.Vec3

	FocalLength  float64 // mm
	FStop        float64
	Shutter      float64 // seconds
	ISO          float64
	SensorWidth  float64 // mm
	SensorHeight float64 // mm

	FocusDistance  float64
	EnableDOF      bool
	EVCompensation float64 // stops

	VignetteStrength    float64
	ChromaticAberration float64
	GrainStrength       float64
}

// SunnyDay is the stopped-down daylight default.
func SunnyDay() Camera {
	return Camera{
		Position:     vectors.Vec3{X: 0, Y: 4, Z: 8},
		Target:       vectors.Zero(),
		Up:           vectors.Up(),
		FocalLength:  35,
		FStop:        8,
		Shutter:      1.0 / 250.0,
		ISO:          100,
		SensorWidth:  36,
		SensorHeight: 24,
	}
}

// LowLight opens up and pushes the ISO for dusk scenes.
func LowLight() Camera {
	c := SunnyDay()
	c.FStop = 2
	c.Shutter = 1.0 / 30.0
	c.ISO = 1600
	c.EVCompensation = 0.5
	c.GrainStrength = 0.045
	return c
}

// Cinematic is a shallow-focus look with vignetting and a 180° shutter.
func Cinematic() Camera {
	c := SunnyDay()
	c.FStop = 2.8
	c.Shutter = 1.0 / 48.0
	c.ISO = 200
	c.EnableDOF = true
	c.FocusDistance = 9
	c.VignetteStrength = 0.35
	c.ChromaticAberration = 0.2
	c.GrainStrength = 0.02
	return c
}

// SkyView points a wide lens above the horizon.
func SkyView() Camera {
	c := SunnyDay()
	c.Position = vectors.Vec3{X: 0, Y: 2, Z: 8}
	c.Target = vectors.Vec3{X: 0, Y: 6, Z: -10}
	c.FocalLength = 18
	c.FStop = 11
	return c
}

// Preset resolves a camera preset by name, defaulting to SunnyDay.
func Preset(name string) Camera {
	switch name {
	case "low-light":
		return LowLight()
	case "cinematic":
		return Cinematic()
	case "sky":
		return SkyView()
	default:
		return SunnyDay()
	}
}

// Basis is the camera's orthonormal frame.
type Basis struct {
	Right   vectors.Vec3
	Up      vectors.Vec3
	Forward vectors.Vec3
}

// Basis builds the frame from position/target/up. When up degenerates
// against the view direction, the world X axis stands in, so the basis
// is always finite and orthonormal.
func (c Camera) Basis() Basis {
	fwd := c.Target.Sub(c.Position).Normalize()
	if fwd.Norm() == 0 {
		fwd = vectors.Vec3{X: 0, Y: 0, Z: -1}
	}

	up := c.Up
	if up.Norm() == 0 {
		up = vectors.Up()
	}

	right := fwd.Cross(up)
	if right.Norm() < 1e-6 {
		// up parallel to view direction; fall back to world X
		right = fwd.Cross(vectors.Vec3{X: 1, Y: 0, Z: 0})
		if right.Norm() < 1e-6 {
			right = vectors.Vec3{X: 0, Y: 0, Z: 1}
		}
	}
	right = right.Normalize()

	return Basis{
		Right:   right,
		Up:      right.Cross(fwd).Normalize(),
		Forward: fwd,
	}
}

// FOV returns the horizontal field of view in radians.
func (c Camera) FOV() float64 {
	return 2 * math.Atan(c.SensorWidth/(2*c.FocalLength))
}

// Ray maps a (possibly fractional) pixel coordinate to a world-space
// view ray. The vertical field of view follows the image aspect ratio.
func (c Camera) Ray(i, j float64, width, height int, b Basis) march.Ray {
	w := float64(width)
	h := float64(height)

	// NDC in [-1, +1] (centered), flip Y to make +up in screen space.
	xNDC := (i - (w-1)/2.0) / ((w - 1) / 2.0)
	yNDC := -((j - (h-1)/2.0) / ((h - 1) / 2.0))

	tanHalf := math.Tan(c.FOV() / 2)
	xPlane := xNDC * tanHalf
	yPlane := yNDC * tanHalf * h / w

	dir := b.Right.Scale(xPlane).
		Add(b.Up.Scale(yPlane)).
		Add(b.Forward)

	return march.Ray{Origin: c.Position, Dir: dir.Normalize()}
}

// Exposure returns the display multiplier from the exposure triangle,
// clamped to a sane range so presets cannot black out or blow out the
// frame entirely.
func (c Camera) Exposure() float64 {
	f := c.FStop
	if f <= 0 {
		f = refFStop
	}
	shutter := c.Shutter
	if shutter <= 0 {
		shutter = refShutter
	}
	iso := c.ISO
	if iso <= 0 {
		iso = refISO
	}

	m := (refFStop / f) * (refFStop / f) *
		(shutter / refShutter) *
		(iso / refISO) *
		math.Pow(2, c.EVCompensation)
	return fmath.Clamp(m, minExposure, maxExposure)
}

// CircleOfConfusion returns the normalized blur-disc size for a point
// at the given distance: zero in focus or with DOF disabled, growing
// with distance from the focus plane and with wider apertures.
func (c Camera) CircleOfConfusion(dist float64) float64 {
	if !c.EnableDOF || c.FocusDistance <= 0 {
		return 0
	}
	aperture := refFStop / math.Max(c.FStop, 0.5)
	sensor := c.SensorWidth / 36.0
	coc := sensor * aperture * math.Abs(dist-c.FocusDistance) / c.FocusDistance
	return fmath.Saturate(coc)
}
