// Package march walks rays through implicit surfaces by sphere tracing:
// advancing along the ray by the field's distance estimate and refining
// candidate intersections by bisection.
package march

import (
	"math"

	"github.com/seascape-dev/seascape/fmath"
	"github.com/seascape-dev/seascape/sdf"
	"github.com/seascape-dev/seascape/vectors"
)

// Ray is an origin plus a unit direction. Each pixel evaluation builds
// its own; rays are never shared or mutated.
type Ray struct {
	Origin vectors.Vec3
	Dir    vectors.Vec3
}

// At returns the point origin + dir*t.
func (r Ray) At(t float64) vectors.Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// Hit is the coarse result of tracing one ray against one field:
// position and distance only. Normals and gradients are resolved
// separately, and only for the candidate that wins classification.
type Hit struct {
	Hit      bool
	Valid    bool
	Distance float64
	Position vectors.Vec3
}

// Config tunes the tracer per surface kind. Height-field surfaces break
// the strict distance-bound contract on steep slopes, so they trade a
// smaller safety factor and step cap for a larger step budget.
type Config struct {
	MaxSteps     int
	MinStep      float64
	MaxStep      float64
	Epsilon      float64 // refinement threshold on |d|
	SafetyFactor float64
	MaxLookahead float64 // terminal miss once d exceeds this
	Backtrack    float64 // growth ratio that triggers forced min steps
	GraceSteps   int     // steps before the backtrack heuristic engages
}

const (
	bisectIters   = 5
	growThreshold = 3 // consecutive growth steps before forcing MinStep
)

// WaveConfig traces the ocean surface: a modest budget with a cautious
// safety factor, since wave "distance" is only a vertical offset.
func WaveConfig() Config {
	return Config{
		MaxSteps:     250,
		MinStep:      0.02,
		MaxStep:      4.0,
		Epsilon:      1e-3,
		SafetyFactor: 0.6,
		MaxLookahead: 250,
		Backtrack:    1.25,
		GraceSteps:   8,
	}
}

// TerrainConfig traces noise terrain, which needs the largest budget
// and the most cautious stepping of the three.
func TerrainConfig() Config {
	return Config{
		MaxSteps:     600,
		MinStep:      0.01,
		MaxStep:      2.5,
		Epsilon:      1e-3,
		SafetyFactor: 0.5,
		MaxLookahead: 300,
		Backtrack:    1.25,
		GraceSteps:   8,
	}
}

// PrimitiveConfig traces analytic SDFs, whose estimates are exact
// enough for near-full steps.
func PrimitiveConfig() Config {
	return Config{
		MaxSteps:     150,
		MinStep:      1e-4,
		MaxStep:      25.0,
		Epsilon:      1e-4,
		SafetyFactor: 0.95,
		MaxLookahead: 500,
		Backtrack:    1.5,
		GraceSteps:   4,
	}
}

// Trace walks ray through f at the given time, stopping at the first
// surface crossing, at maxDist, or when the step budget runs out. The
// returned Hit always has a meaningful Distance: on a miss it is the
// distance traveled, capped at maxDist. Valid is false only when the
// field produced a non-finite value.
func Trace(ray Ray, f sdf.Field, time, maxDist float64, cfg Config) Hit {
	t := 0.0
	prev := math.Inf(1)
	lastAdvance := cfg.MinStep
	growing := 0

	for step := 0; step < cfg.MaxSteps; step++ {
		p := ray.At(t)
		d := f(p, time)

		if !fmath.Finite(d) {
			return Hit{Valid: false, Distance: t, Position: p}
		}

		if math.Abs(d) < cfg.Epsilon || d < 0 {
			t = refine(ray, f, time, t-lastAdvance, t+math.Max(math.Abs(d), cfg.Epsilon))
			return Hit{Hit: true, Valid: true, Distance: t, Position: ray.At(t)}
		}

		if d > cfg.MaxLookahead || t > maxDist {
			return Hit{Valid: true, Distance: math.Min(t, maxDist), Position: ray.At(math.Min(t, maxDist))}
		}

		advance := fmath.Clamp(d*cfg.SafetyFactor, cfg.MinStep, cfg.MaxStep)

		// Divergence guard: on degenerate fields the estimate can grow
		// without ever crossing the surface. After a grace period, a
		// run of growing estimates forces minimum-size steps.
		if step >= cfg.GraceSteps && d > prev*cfg.Backtrack {
			growing++
			if growing >= growThreshold {
				advance = cfg.MinStep
			}
		} else {
			growing = 0
		}

		prev = d
		lastAdvance = advance
		t += advance
	}

	// Budget exhausted: report the distance actually traveled.
	capped := math.Min(t, maxDist)
	return Hit{Valid: true, Distance: capped, Position: ray.At(capped)}
}

// refine shrinks [tMin, tMax] around a sign change by bisection and
// returns the midpoint of the final bracket.
func refine(ray Ray, f sdf.Field, time, tMin, tMax float64) float64 {
	if tMin < 0 {
		tMin = 0
	}
	for i := 0; i < bisectIters; i++ {
		tm := 0.5 * (tMin + tMax)
		if f(ray.At(tm), time) > 0 {
			tMin = tm
		} else {
			tMax = tm
		}
	}
	return 0.5 * (tMin + tMax)
}
