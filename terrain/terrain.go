// Package terrain generates the sea-floor / island height field from
// layered gradient noise.
package terrain

import (
	"github.com/seascape-dev/seascape/fmath"
	"github.com/seascape-dev/seascape/noise"
	"github.com/seascape-dev/seascape/sdf"
	"github.com/seascape-dev/seascape/vectors"
)

// Params configures the height function. All shaping knobs are
// continuous in [0,1], so presets can be interpolated.
type Params struct {
	BaseHeight  float64 `yaml:"baseHeight"`  // mean terrain level, meters
	Amplitude   float64 `yaml:"amplitude"`   // vertical relief, meters
	Scale       float64 `yaml:"scale"`       // horizontal noise frequency, 1/m
	Octaves     int     `yaml:"octaves"`     // fbm octave count
	Persistence float64 `yaml:"persistence"` // per-octave amplitude falloff
	Lacunarity  float64 `yaml:"lacunarity"`  // per-octave frequency gain
	Ridge       float64 `yaml:"ridge"`       // 0..1, ridged-multifractal blend
	Warp        float64 `yaml:"warp"`        // 0..1, domain-warp strength
	Erosion     float64 `yaml:"erosion"`     // 0..1, blend toward low-frequency base
	Seed        int64   `yaml:"seed"`
}

// DefaultParams is a gently rolling sea floor a few meters below the
// waterline.
func DefaultParams() Params {
	return Params{
		BaseHeight:  -4.5,
		Amplitude:   3.0,
		Scale:       0.05,
		Octaves:     6,
		Persistence: 0.5,
		Lacunarity:  2.0,
		Ridge:       0.2,
		Warp:        0.3,
		Erosion:     0.35,
		Seed:        1,
	}
}

// RockyCoast is a harsher preset with ridged peaks breaking the surface.
func RockyCoast() Params {
	p := DefaultParams()
	p.BaseHeight = -3.0
	p.Amplitude = 5.5
	p.Ridge = 0.75
	p.Warp = 0.45
	p.Erosion = 0.2
	p.Seed = 7
	return p
}

// Terrain evaluates a height field for fixed Params. Construct once per
// frame and share; Height is pure and safe for concurrent use.
type Terrain struct {
	params Params
	src    *noise.Source
}

func New(params Params) *Terrain {
	if params.Octaves <= 0 {
		params.Octaves = 1
	}
	return &Terrain{params: params, src: noise.New(params.Seed)}
}

func (t *Terrain) Params() Params { return t.params }

// Height returns the terrain elevation at the horizontal position p.
func (t *Terrain) Height(p vectors.Vec2) float64 {
	pr := t.params
	x := p.X * pr.Scale
	y := p.Y * pr.Scale

	// Domain-warp pre-pass, then the primary fbm with the ridge knob.
	x, y = t.src.Warp(x, y, pr.Warp*1.5)
	h := t.src.FBM(x, y, pr.Octaves, pr.Persistence, pr.Lacunarity, pr.Ridge)

	// Erosion-style smoothing: pull toward a 2-octave version of the
	// same field, flattening high-frequency detail.
	if pr.Erosion > 0 {
		low := t.src.FBM(x, y, 2, pr.Persistence, pr.Lacunarity, 0)
		h = fmath.Lerp(h, low, pr.Erosion*0.7)
	}

	return pr.BaseHeight + pr.Amplitude*h
}

// Field adapts the height field to the sphere tracer's distance
// contract as p.Y - Height(p.XZ).
func (t *Terrain) Field() sdf.Field {
	return func(p vectors.Vec3, _ float64) float64 {
		return p.Y - t.Height(p.XZ())
	}
}
