// Package noise provides the 2D gradient-noise building blocks for the
// procedural height fields: plain fractal Brownian motion, a ridged
// variant for mountainous shapes, and domain warping.
package noise

import (
	perlin "github.com/aquilax/go-perlin"

	"github.com/seascape-dev/seascape/fmath"
)

const (
	alpha = 2.0
	beta  = 2.0
	n     = 3

	// Octave contributions below this amplitude are skipped; they are
	// invisible in the output but still cost a perlin evaluation.
	minAmplitude = 1e-4
)

// Source is a seeded, immutable noise generator. It is safe to share
// across goroutines: the underlying permutation tables are built once
// and only read afterwards.
type Source struct {
	p *perlin.Perlin
}

// New returns a Source with a fixed seed, so a given scene renders
// identically across runs.
func New(seed int64) *Source {
	return &Source{p: perlin.NewPerlin(alpha, beta, n, seed)}
}

// Sample returns raw gradient noise at (x, y), roughly in [-1, 1].
func (s *Source) Sample(x, y float64) float64 {
	return s.p.Noise2D(x, y)
}

// FBM sums octaves of noise at increasing frequency and decreasing
// amplitude. ridge in [0,1] blends each octave toward the ridged
// transform 1-|n|, remapped to [-1,1], which sharpens peaks.
func (s *Source) FBM(x, y float64, octaves int, persistence, lacunarity, ridge float64) float64 {
	sum := 0.0
	amp := 1.0
	freq := 1.0
	for i := 0; i < octaves; i++ {
		if amp < minAmplitude {
			break
		}
		v := s.p.Noise2D(x*freq, y*freq)
		if ridge > 0 {
			r := 1 - abs(v)
			v = fmath.Lerp(v, 2*r-1, ridge)
		}
		sum += amp * v
		amp *= persistence
		freq *= lacunarity
	}
	return sum
}

// Warp perturbs (x, y) by a secondary noise field of the given
// strength, returning the warped sample position. The two channels use
// fixed offsets so they decorrelate.
func (s *Source) Warp(x, y, strength float64) (float64, float64) {
	if strength <= 0 {
		return x, y
	}
	wx := s.p.Noise2D(x+5.2, y+1.3)
	wy := s.p.Noise2D(x-3.7, y+8.1)
	return x + wx*strength, y + wy*strength
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
