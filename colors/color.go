package colors

import (
	"image/color"
	"math"
)

// Color4 is a linear RGBA color with float64 components in [0,1].
type Color4 struct {
	R, G, B, A float64
}

func New(r, g, b, a float64) Color4 {
	return Color4{R: r, G: g, B: b, A: a}
}

// NewRGB builds an opaque color.
func NewRGB(r, g, b float64) Color4 {
	return Color4{R: r, G: g, B: b, A: 1}
}

func (c Color4) RGBA() (r, g, b, a uint32) {
	rf := clamp01(c.R)
	gf := clamp01(c.G)
	bf := clamp01(c.B)
	af := clamp01(c.A)

	// Convert to pre-multiplied 16-bit values
	return uint32(rf * af * 65535),
		uint32(gf * af * 65535),
		uint32(bf * af * 65535),
		uint32(af * 65535)
}

func FromStandardColor(c color.Color) Color4 {
	// Fast path: already a Color4
	if c4, ok := c.(Color4); ok {
		return c4
	}

	r16, g16, b16, a16 := c.RGBA()
	if a16 == 0 {
		return Color4{R: 0, G: 0, B: 0, A: 0}
	}

	// De-premultiply and normalize to [0,1]
	invA := float64(0xFFFF) / float64(a16)
	return Color4{
		R: float64(r16) * invA / 65535.0,
		G: float64(g16) * invA / 65535.0,
		B: float64(b16) * invA / 65535.0,
		A: float64(a16) / 65535.0,
	}
}

func White() Color4 {
	return Color4{R: 1, G: 1, B: 1, A: 1}
}

func Black() Color4 {
	return Color4{R: 0, G: 0, B: 0, A: 1}
}

// Add returns c + o (component-wise).
func (c Color4) Add(o Color4) Color4 {
	return Color4{c.R + o.R, c.G + o.G, c.B + o.B, c.A + o.A}
}

// Mul returns c * o (component-wise).
func (c Color4) Mul(o Color4) Color4 {
	return Color4{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}

// Scale returns c * s (scalar). Alpha is scaled too.
func (c Color4) Scale(s float64) Color4 {
	return Color4{c.R * s, c.G * s, c.B * s, c.A * s}
}

// ScaleRGB returns c * s on the color channels, leaving alpha untouched.
func (c Color4) ScaleRGB(s float64) Color4 {
	return Color4{c.R * s, c.G * s, c.B * s, c.A}
}

// Mix returns lerp(c, o, t) = c*(1-t) + o*t.
func (c Color4) Mix(o Color4, t float64) Color4 {
	return Color4{
		R: c.R*(1-t) + o.R*t,
		G: c.G*(1-t) + o.G*t,
		B: c.B*(1-t) + o.B*t,
		A: c.A*(1-t) + o.A*t,
	}
}

// BoostSaturation pushes the channels away from their mean by factor.
func (c Color4) BoostSaturation(factor float64) Color4 {
	avg := (c.R + c.G + c.B) / 3
	return Color4{
		R: avg + (c.R-avg)*factor,
		G: avg + (c.G-avg)*factor,
		B: avg + (c.B-avg)*factor,
		A: c.A,
	}
}

// Luminance returns the Rec.709 luminance of the color.
func (c Color4) Luminance() float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

func (c Color4) Pow(gamma float64) Color4 {
	return Color4{
		R: math.Pow(math.Max(c.R, 0), gamma),
		G: math.Pow(math.Max(c.G, 0), gamma),
		B: math.Pow(math.Max(c.B, 0), gamma),
		A: c.A, // leave alpha untouched
	}
}

// Clamp01 clamps each component into [0,1].
func (c Color4) Clamp01() Color4 {
	return Color4{
		R: clamp01(c.R),
		G: clamp01(c.G),
		B: clamp01(c.B),
		A: clamp01(c.A),
	}
}

// IsFinite reports whether every channel is a finite number.
func (c Color4) IsFinite() bool {
	return finite(c.R) && finite(c.G) && finite(c.B) && finite(c.A)
}

func (c Color4) ToNRGBA() color.NRGBA {
	return color.NRGBA{
		to8bit(c.R),
		to8bit(c.G),
		to8bit(c.B),
		to8bit(c.A),
	}
}

// --- helpers ---

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func to8bit(x float64) uint8 {
	y := 255.0 * clamp01(x)
	if y < 0 {
		y = 0
	}
	if y > 255 {
		y = 255
	}
	return uint8(y)
}
