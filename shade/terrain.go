package shade

import (
	"math"

	"github.com/seascape-dev/seascape/colors"
	"github.com/seascape-dev/seascape/fmath"
	"github.com/seascape-dev/seascape/scene"
	"github.com/seascape-dev/seascape/vectors"
)

const (
	causticSamples      = 6
	causticRadius       = 0.9
	goldenAngle         = 2.39996322972865332 // radians
	causticDepthFalloff = 0.35
)

// Terrain shades the sea floor and any land above the waterline:
// Lambert plus Blinn-Phong, a depth tint, golden-angle caustics for
// submerged points, and the shared wet treatment.
func Terrain(ctx *Context, hit scene.SurfaceHit, view vectors.Vec3) colors.Color4 {
	mat := ctx.Scene.Ground
	n := hit.Normal
	l := ctx.Light.SunDir

	// Base color darkens from the configured base level downward.
	depthT := fmath.Smoothstep(mat.BaseLevel, mat.BaseLevel-mat.DepthRange, hit.Position.Y)
	base := mat.BaseColor.Mix(mat.DeepColor, depthT)

	noL := fmath.Saturate(n.Dot(l))
	diffuse := base.Mul(ctx.Light.SunColor).ScaleRGB(noL * ctx.Light.SunIntensity)

	ambient := base.Mul(ctx.Scene.Sky.Ambient(ctx.Light))

	// Blinn-Phong specular, damped by material roughness.
	h := l.Sub(view).Normalize()
	spec := math.Pow(fmath.Saturate(n.Dot(h)), mat.SpecularPower) * (1 - 0.7*mat.Roughness)
	specular := ctx.Light.SunColor.ScaleRGB(spec * noL * ctx.Light.SunIntensity)

	ao := ambientOcclusion(ctx.Scene.Floor.Field(), hit.Position, n, ctx.Time)

	c := diffuse.Add(ambient).ScaleRGB(ao).Add(specular)

	if hit.Submerged && mat.CausticStrength > 0 {
		c = c.Add(caustics(ctx, hit).ScaleRGB(mat.CausticStrength))
	}

	c = applyWaterEffects(ctx, hit, c)
	c.A = 1
	return c
}

// caustics approximates refracted-light focusing by sampling the wave
// gradient field above the hit on a golden-angle spiral: flat patches
// of the surface concentrate sunlight, steep ones scatter it. The term
// fades with depth and with a low sun.
func caustics(ctx *Context, hit scene.SurfaceHit) colors.Color4 {
	sunUp := fmath.Saturate(ctx.Light.SunDir.Y)
	if sunUp <= 0 {
		return colors.Color4{}
	}

	xz := hit.Position.XZ()
	focus := 0.0
	for i := 0; i < causticSamples; i++ {
		r := causticRadius * math.Sqrt((float64(i)+0.5)/causticSamples)
		a := float64(i) * goldenAngle
		p := xz.Add(vectors.Vec2{X: r * math.Cos(a), Y: r * math.Sin(a)})
		g := ctx.Scene.Waves.Gradient(p, ctx.Time).Norm()
		focus += fmath.Smoothstep(0.35, 0.05, g)
	}
	focus /= causticSamples

	atten := math.Exp(-hit.WaterDepth*causticDepthFalloff) * sunUp
	return ctx.Light.SunColor.ScaleRGB(focus * atten * ctx.Light.SunIntensity)
}
