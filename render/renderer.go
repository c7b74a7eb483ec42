// Package render generates camera rays, drives the per-pixel evaluation
// in parallel, and applies the post-processing chain.
package render

import (
	"image"
	"image/color"
	"runtime"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/seascape-dev/seascape/colors"
	"github.com/seascape-dev/seascape/scene"
	"github.com/seascape-dev/seascape/shade"
)

// Options configures one frame.
type Options struct {
	Width       int
	Height      int
	Supersample int     // n×n offsets per pixel; values < 1 mean 1
	Workers     int     // goroutines; values < 1 mean GOMAXPROCS
	Time        float64 // scene clock, seconds
	Camera      Camera
	FogDensity  float64 // per-meter distance fog; 0 disables
	Logger      *zap.Logger
}

// GenerateSupersamplingOffsets returns n×n offsets in [-0.5, +0.5] for
// supersampling, as pairs (dx, dy) with pixel-center spacing.
func GenerateSupersamplingOffsets(n int) [][2]float64 {
	if n <= 0 {
		return nil
	}
	step := 1.0 / float64(n)
	out := make([][2]float64, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			dx := (float64(i)+0.5)*step - 0.5
			dy := (float64(j)+0.5)*step - 0.5
			out = append(out, [2]float64{dx, dy})
		}
	}
	return out
}

// Frame renders the scene at opts.Time. Rows are distributed across
// workers; every pixel evaluation is independent and each goroutine
// writes a disjoint set of rows, so no synchronization is needed beyond
// the final join.
func Frame(s *scene.Scene, opts Options) *image.NRGBA {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}
	workers := opts.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	ctx := &shade.Context{
		Scene: s,
		Light: s.Sky.Lighting(),
		Time:  opts.Time,
	}

	basis := opts.Camera.Basis()
	exposure := opts.Camera.Exposure()
	offsets := GenerateSupersamplingOffsets(opts.Supersample)
	invN := 1.0 / float64(len(offsets))
	fogColor := s.Sky.Radiance(basis.Forward, ctx.Light)

	logger.Info("rendering frame",
		zap.Int("width", opts.Width),
		zap.Int("height", opts.Height),
		zap.Int("supersample", opts.Supersample),
		zap.Int("workers", workers),
		zap.Float64("time", opts.Time),
		zap.Float64("exposure", exposure),
	)
	start := time.Now()

	img := image.NewNRGBA(image.Rect(0, 0, opts.Width, opts.Height))

	var done atomic.Int64
	var g errgroup.Group
	g.SetLimit(workers)

	for y := 0; y < opts.Height; y++ {
		y := y
		g.Go(func() error {
			for x := 0; x < opts.Width; x++ {
				img.SetNRGBA(x, y, renderPixel(ctx, opts, basis, exposure, fogColor, offsets, invN, x, y))
			}
			rows := done.Add(1)
			if decile := opts.Height / 10; decile > 0 && rows%int64(decile) == 0 {
				logger.Debug("progress", zap.Int64("rowsDone", rows), zap.Int("rows", opts.Height))
			}
			return nil
		})
	}
	_ = g.Wait() // row workers cannot fail

	logger.Info("frame done", zap.Duration("elapsed", time.Since(start)))
	return img
}

// renderPixel evaluates the pure pixel function: average the shaded
// supersamples, then run the post chain.
func renderPixel(ctx *shade.Context, opts Options, basis Basis, exposure float64, fogColor colors.Color4, offsets [][2]float64, invN float64, x, y int) color.NRGBA {
	var accum colors.Color4
	meanDist := 0.0
	for _, off := range offsets {
		ray := opts.Camera.Ray(float64(x)+off[0], float64(y)+off[1], opts.Width, opts.Height, basis)
		hit := ctx.Scene.Trace(ray, ctx.Time)
		c := shade.Color(ctx, hit, ray.Dir)

		if hit.Hit {
			c = applyFog(c, hit.Distance, opts.FogDensity, fogColor)
		}
		accum = accum.Add(c)
		meanDist += hit.Distance
	}
	c := accum.Scale(invN)
	meanDist *= invN

	c = c.ScaleRGB(exposure)
	c = applyDOF(c, opts.Camera.CircleOfConfusion(meanDist))

	xN := (float64(x) - float64(opts.Width-1)/2) / (float64(opts.Width-1) / 2)
	yN := (float64(y) - float64(opts.Height-1)/2) / (float64(opts.Height-1) / 2)
	c = applyVignette(c, xN, yN, opts.Camera.VignetteStrength)
	c = applyChromatic(c, xN, yN, opts.Camera.ChromaticAberration)
	c = applyGrain(c, x, y, opts.Time, opts.Camera.GrainStrength)

	c = tonemapReinhardJodie(c)
	c = applyGamma(c)
	c.A = 1
	return c.ToNRGBA()
}
