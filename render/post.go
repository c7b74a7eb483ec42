package render

import (
	"math"

	"github.com/seascape-dev/seascape/colors"
	"github.com/seascape-dev/seascape/fmath"
)

// The post chain runs in a fixed order on the linear HDR color the core
// returns: fog → exposure → DOF attenuation → vignette → chromatic
// aberration → grain → tone map → gamma.

// applyFog blends toward the horizon color with distance.
func applyFog(c colors.Color4, dist, density float64, fogColor colors.Color4) colors.Color4 {
	if density <= 0 {
		return c
	}
	f := 1 - math.Exp(-dist*density)
	return c.Mix(fogColor, f)
}

// applyDOF approximates defocus as a brightness and saturation falloff
// proportional to the circle of confusion.
func applyDOF(c colors.Color4, coc float64) colors.Color4 {
	if coc <= 0 {
		return c
	}
	return c.ScaleRGB(1 - 0.3*coc).BoostSaturation(1 - 0.4*coc)
}

// applyVignette darkens toward the frame corners. xN/yN are centered
// normalized coordinates in [-1, 1].
func applyVignette(c colors.Color4, xN, yN, strength float64) colors.Color4 {
	if strength <= 0 {
		return c
	}
	r2 := xN*xN + yN*yN
	return c.ScaleRGB(1 - strength*fmath.Smoothstep(0.4, 1.6, r2))
}

// applyChromatic tilts the red/blue balance radially, a cheap stand-in
// for lateral chromatic aberration that needs no neighboring pixels.
func applyChromatic(c colors.Color4, xN, yN, strength float64) colors.Color4 {
	if strength <= 0 {
		return c
	}
	r := math.Sqrt(xN*xN+yN*yN) * strength * 0.08
	c.R *= 1 + r
	c.B *= 1 - r
	return c
}

// applyGrain adds hash-based film grain, deterministic in pixel and
// time so stills are reproducible.
func applyGrain(c colors.Color4, x, y int, t, strength float64) colors.Color4 {
	if strength <= 0 {
		return c
	}
	n := grainHash(float64(x)*12.9898 + float64(y)*78.233 + t*37.719)
	return c.ScaleRGB(1 + (n-0.5)*2*strength)
}

// tonemapReinhardJodie compresses HDR to [0,1] while keeping saturated
// highlights from washing out: per channel,
// mix(c/(1+L), c/(1+c), c/(1+c)) with L the luminance.
func tonemapReinhardJodie(c colors.Color4) colors.Color4 {
	l := c.Luminance()
	tl := func(v float64) float64 { return v / (1 + l) }
	tc := func(v float64) float64 { return v / (1 + v) }
	mixBy := func(v float64) float64 {
		t := tc(v)
		return fmath.Lerp(tl(v), t, t)
	}
	// A channel far above the luminance overshoots 1 after the mix;
	// clamp so the display range holds before gamma.
	out := colors.Color4{R: mixBy(c.R), G: mixBy(c.G), B: mixBy(c.B), A: c.A}
	return out.Clamp01()
}

// applyGamma encodes for display with the 2.2 power curve.
func applyGamma(c colors.Color4) colors.Color4 {
	return c.Clamp01().Pow(1 / 2.2)
}

func grainHash(x float64) float64 {
	v := math.Sin(x) * 43758.5453
	return v - math.Floor(v)
}
