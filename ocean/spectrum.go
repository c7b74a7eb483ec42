// Package ocean models a deep-water surface as a summed sinusoidal wave
// spectrum with analytic gradients.
package ocean

import (
	"math"

	"github.com/seascape-dev/seascape/fmath"
	"github.com/seascape-dev/seascape/sdf"
	"github.com/seascape-dev/seascape/vectors"
)

// Gravity is the deep-water gravitational constant used by the
// dispersion relation, m/s².
const Gravity = 9.81

// Component is one sinusoid of the spectrum: a unit travel direction,
// an amplitude in meters and a wavenumber in rad/m. Angular frequency
// is derived on demand from the dispersion relation rather than stored,
// so repeated evaluation cannot drift against the wavenumber.
type Component struct {
	Dir        vectors.Vec2
	Amplitude  float64
	Wavenumber float64
}

// AngularFrequency returns ω = sqrt(g·k).
func (c Component) AngularFrequency() float64 {
	return math.Sqrt(Gravity * c.Wavenumber)
}

// Spectrum is an immutable table of wave components. The package-level
// Default table is shared read-only by all pixel evaluations.
type Spectrum []Component

// Default is a ten-component swell-plus-chop spectrum: three long
// swells, four mid wind waves and three short ripples, with directions
// fanned around +X.
func Default() Spectrum {
	dirs := []float64{0.0, 0.35, -0.28, 0.62, -0.55, 0.15, -0.12, 0.85, -0.78, 0.45}
	amps := []float64{0.32, 0.24, 0.20, 0.11, 0.09, 0.07, 0.06, 0.03, 0.025, 0.02}
	ks := []float64{0.16, 0.21, 0.27, 0.52, 0.63, 0.88, 1.12, 2.4, 2.9, 3.6}

	s := make(Spectrum, len(dirs))
	for i := range dirs {
		s[i] = Component{
			Dir:        vectors.Vec2{X: math.Cos(dirs[i]), Y: math.Sin(dirs[i])},
			Amplitude:  amps[i],
			Wavenumber: ks[i],
		}
	}
	return s
}

// Scaled returns a copy of the spectrum with every amplitude multiplied
// by f. Used by scene presets to dial sea state.
func (s Spectrum) Scaled(f float64) Spectrum {
	out := make(Spectrum, len(s))
	for i, c := range s {
		c.Amplitude *= f
		out[i] = c
	}
	return out
}

// MaxHeight returns the sum of amplitudes, an upper bound on |Height|.
func (s Spectrum) MaxHeight() float64 {
	sum := 0.0
	for _, c := range s {
		sum += c.Amplitude
	}
	return sum
}

// Height returns the surface elevation at the horizontal position p.
func (s Spectrum) Height(p vectors.Vec2, t float64) float64 {
	h := 0.0
	for _, c := range s {
		phase := p.Dot(c.Dir)*c.Wavenumber + t*c.AngularFrequency()
		h += c.Amplitude * math.Sin(phase)
	}
	return h
}

// Gradient returns the analytic horizontal derivative (∂h/∂x, ∂h/∂z)
// of Height, avoiding finite differences entirely.
func (s Spectrum) Gradient(p vectors.Vec2, t float64) vectors.Vec2 {
	var g vectors.Vec2
	for _, c := range s {
		phase := p.Dot(c.Dir)*c.Wavenumber + t*c.AngularFrequency()
		d := c.Amplitude * c.Wavenumber * math.Cos(phase)
		g.X += d * c.Dir.X
		g.Y += d * c.Dir.Y
	}
	return g
}

// stencilRadius is the offset of the 4-tap gradient smoothing stencil.
const stencilRadius = 0.08

// Normal returns the smoothed, unit surface normal at p. The analytic
// gradient is averaged over a small rotated 4-tap stencil whose
// rotation angle is derived from the position itself, so the pattern is
// stable over time. Near crests a high-frequency micro-detail term is
// blended in, gated by wave height.
func (s Spectrum) Normal(p vectors.Vec2, t float64) vectors.Vec3 {
	// Position-derived rotation keeps the stencil from flickering as t
	// advances.
	angle := hash2(p.X, p.Y) * math.Pi / 2

	var g vectors.Vec2
	for i := 0; i < 4; i++ {
		off := vectors.Vec2{X: stencilRadius}.Rotate(angle + float64(i)*math.Pi/2)
		g = g.Add(s.Gradient(p.Add(off), t))
	}
	g = g.Scale(0.25)

	// Crest-only micro detail: a short choppy ripple that only shows on
	// the upper part of the wave envelope.
	maxH := s.MaxHeight()
	if maxH > 0 {
		crest := fmath.Smoothstep(0.35*maxH, 0.85*maxH, s.Height(p, t))
		if crest > 0 {
			const microK = 9.0
			micro := 0.06 * crest * math.Cos(p.X*microK+p.Y*microK*0.7+t*3.1)
			g.X += micro
			g.Y += micro * 0.6
		}
	}

	n := vectors.Vec3{X: -g.X, Y: 1, Z: -g.Y}
	if !n.IsFinite() {
		return vectors.Up()
	}
	return n.Normalize()
}

// Field adapts the spectrum to the sphere tracer's distance contract.
// The vertical offset from the surface is not a true distance bound for
// steep waves, so the tracer's wave preset uses a small safety factor.
func (s Spectrum) Field() sdf.Field {
	return func(p vectors.Vec3, t float64) float64 {
		return p.Y - s.Height(p.XZ(), t)
	}
}

// hash2 maps a 2D position to a stable pseudo-random value in [0,1).
func hash2(x, y float64) float64 {
	v := math.Sin(x*12.9898+y*78.233) * 43758.5453
	return v - math.Floor(v)
}
