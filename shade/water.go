package shade

import (
	"math"

	"github.com/seascape-dev/seascape/colors"
	"github.com/seascape-dev/seascape/fmath"
	"github.com/seascape-dev/seascape/march"
	"github.com/seascape-dev/seascape/materials"
	"github.com/seascape-dev/seascape/scene"
	"github.com/seascape-dev/seascape/vectors"
)

const (
	iorWater        = 1.33
	reflectSamples  = 4 // fixed low count for temporal stability
	refractBias     = 0.02
	refractMaxDepth = 40.0
)

// Water shades the ocean surface: Fresnel-weighted refraction and
// reflection, a GGX sun lobe, subsurface scattering, foam and glints.
func Water(ctx *Context, hit scene.SurfaceHit, view vectors.Vec3) colors.Color4 {
	mat := ctx.Scene.Water
	n := hit.Normal
	noV := fmath.Saturate(-view.Dot(n))

	// Roughness is a property of the local wave field, bounded by the
	// material: steeper, higher water is rougher.
	slope := hit.Gradient.Norm()
	crest := fmath.Smoothstep(0, ctx.Scene.Waves.MaxHeight(), hit.Position.Y)
	roughness := fmath.Clamp(
		mat.BaseRoughness+0.45*slope+0.15*crest,
		mat.BaseRoughness, mat.MaxRoughness)

	f := fresnelSchlick(noV, mat.F0)

	refracted := refractionColor(ctx, hit, view, mat)
	reflected := reflectionColor(ctx, hit, view, roughness)

	c := refracted.Mix(reflected, f)

	// Sun microfacet lobe.
	spec := ggxSpecular(n, view, ctx.Light.SunDir, roughness, mat.F0)
	c = c.Add(ctx.Light.SunColor.ScaleRGB(spec * ctx.Light.SunIntensity))

	// Subsurface: light entering behind the wave and scattering toward
	// the viewer, strongest when looking into the sun through a crest.
	back := fmath.Saturate(view.Dot(ctx.Light.SunDir))
	phase := henyeyGreenstein(back, 0.55)
	sss := mat.Subsurface * phase * crest * ctx.Light.SunIntensity
	c = c.Add(mat.ShallowColor.ScaleRGB(sss * 0.6))

	// Foam from crest steepness and curvature.
	curvature := math.Abs(slope - ctx.Scene.Waves.Gradient(hit.Position.XZ().Add(vectors.Vec2{X: 0.15}), ctx.Time).Norm())
	foam := fmath.Smoothstep(mat.FoamThreshold, mat.FoamThreshold+0.35, slope+0.5*curvature+0.3*crest)
	if foam > 0 {
		c = c.Mix(colors.NewRGB(0.96, 0.97, 0.98), foam*mat.FoamIntensity*0.8)
	}

	// Tight sun glint along the mirror direction, widened by roughness.
	mirror := view.Reflect(n)
	glintPow := mat.SpecularPower * (1 - 0.8*roughness/math.Max(mat.MaxRoughness, 1e-6))
	glint := math.Pow(fmath.Saturate(mirror.Dot(ctx.Light.SunDir)), math.Max(glintPow, 8))
	c = c.Add(ctx.Light.SunColor.ScaleRGB(glint * mat.GlintIntensity * ctx.Light.SunIntensity))

	c.A = 1
	return c
}

// refractionColor marches the bent ray down to the sea floor and
// applies Beer-Lambert absorption over the traveled water path, with a
// depth- and angle-driven blend toward the deep color that hides the
// discretization of the floor march.
func refractionColor(ctx *Context, hit scene.SurfaceHit, view vectors.Vec3, mat materials.Water) colors.Color4 {
	dir, ok := refract(view, hit.Normal, 1/iorWater)
	if !ok {
		return mat.DeepColor
	}

	ray := march.Ray{Origin: hit.Position.Add(dir.Scale(refractBias)), Dir: dir}
	floor := ctx.Scene.TraceFloor(ray, ctx.Time)

	path := math.Min(floor.Distance, refractMaxDepth)
	transmit := colors.Color4{
		R: math.Exp(-mat.Absorption.R * path),
		G: math.Exp(-mat.Absorption.G * path),
		B: math.Exp(-mat.Absorption.B * path),
		A: 1,
	}

	var base colors.Color4
	if floor.Hit && floor.Valid {
		fh := ctx.Scene.ResolveFloor(floor, ctx.Time)
		base = Terrain(ctx, fh, dir)
	} else {
		base = mat.DeepColor
	}
	c := base.Mul(transmit)

	// Translucency blend: grazing views and long water paths settle on
	// the deep color smoothly instead of banding.
	grazing := 1 - fmath.Saturate(-view.Dot(hit.Normal))
	fade := fmath.Smoothstep(0, refractMaxDepth*0.6, path)
	c = c.Mix(mat.DeepColor, fmath.Saturate(0.35*grazing+0.65*fade))

	// Shallow scatter tint keeps thin water lively.
	c = c.Add(mat.ShallowColor.ScaleRGB(0.12 * (1 - fade)))
	return c
}

// reflectionColor samples the sky around the mirror direction with a
// small fixed jitter set; the jitter grows with roughness but its
// pattern depends only on position, so frames do not shimmer.
func reflectionColor(ctx *Context, hit scene.SurfaceHit, view vectors.Vec3, roughness float64) colors.Color4 {
	mirror := view.Reflect(hit.Normal)

	seed := hit.Position.X*3.1 + hit.Position.Z*7.7
	var sum colors.Color4
	for i := 0; i < reflectSamples; i++ {
		j1 := hash1(seed + float64(i)*11.13)
		j2 := hash1(seed + float64(i)*17.29 + 5)
		jitter := vectors.Vec3{X: j1 - 0.5, Y: (j2 - 0.5) * 0.5, Z: hash1(seed+float64(i)*23.7) - 0.5}
		dir := mirror.Add(jitter.Scale(roughness * 0.6)).Normalize()
		if dir.Y < 0.01 {
			dir.Y = 0.01 // keep reflection rays out of the water
			dir = dir.Normalize()
		}
		sum = sum.Add(ctx.Scene.Sky.Radiance(dir, ctx.Light))
	}
	return sum.Scale(1.0 / reflectSamples)
}

func henyeyGreenstein(cosTheta, g float64) float64 {
	denom := 1 + g*g - 2*g*cosTheta
	return (1 - g*g) / (4 * math.Pi * math.Pow(math.Max(denom, 1e-6), 1.5))
}
