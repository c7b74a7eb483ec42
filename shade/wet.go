package shade

import (
	"math"

	"github.com/seascape-dev/seascape/colors"
	"github.com/seascape-dev/seascape/fmath"
	"github.com/seascape-dev/seascape/scene"
)

// applyWaterEffects is the shared wet/underwater treatment for
// non-water surfaces. Submerged points get Beer-Lambert tinting,
// depth-graded fog and a forward-scatter term; points near the
// waterline get darkening, a sharpened highlight, droplet sparkle and a
// foam contact line.
func applyWaterEffects(ctx *Context, hit scene.SurfaceHit, c colors.Color4) colors.Color4 {
	if hit.Submerged {
		return applyUnderwater(ctx, hit, c)
	}
	if hit.IsWet {
		return applyWetness(ctx, hit, c)
	}
	return c
}

func applyUnderwater(ctx *Context, hit scene.SurfaceHit, c colors.Color4) colors.Color4 {
	mat := ctx.Scene.Water
	d := hit.WaterDepth

	// Beer-Lambert tint toward the water colors.
	transmit := colors.Color4{
		R: math.Exp(-mat.Absorption.R * d),
		G: math.Exp(-mat.Absorption.G * d),
		B: math.Exp(-mat.Absorption.B * d),
		A: 1,
	}
	c = c.Mul(transmit)

	tint := mat.ShallowColor.Mix(mat.DeepColor, fmath.Smoothstep(0, 8, d))
	c = c.Mix(tint, fmath.Smoothstep(0, 12, d))

	// Depth-graded volumetric fog.
	fog := 1 - math.Exp(-d*0.12)
	c = c.Mix(mat.DeepColor, fog*0.5)

	// Forward scatter when the sun is above the horizon.
	if sunUp := fmath.Saturate(ctx.Light.SunDir.Y); sunUp > 0 {
		scatter := 0.08 * sunUp * math.Exp(-d*0.25) * ctx.Light.SunIntensity
		c = c.Add(mat.ShallowColor.ScaleRGB(scatter))
	}

	c.A = 1
	return c
}

func applyWetness(ctx *Context, hit scene.SurfaceHit, c colors.Color4) colors.Color4 {
	above := hit.Position.Y - hit.WaterSurface.Y // ≥ 0 here

	wet := fmath.Smoothstep(0.4, 0.0, above)
	if wet <= 0 {
		return c
	}

	// Wet material darkens and its highlight sharpens.
	c = c.ScaleRGB(1 - 0.35*wet)
	spec := math.Pow(fmath.Saturate(hit.Normal.Dot(ctx.Light.SunDir)), 60) * wet
	c = c.Add(ctx.Light.SunColor.ScaleRGB(spec * 0.5 * ctx.Light.SunIntensity))

	// Droplet sparkle: stable position-hashed highlights.
	sparkle := hash1(hit.Position.X*19.7 + hit.Position.Z*31.3)
	if sparkle > 0.93 {
		c = c.Add(ctx.Light.SunColor.ScaleRGB(0.25 * wet * ctx.Light.SunIntensity))
	}

	// Foam contact line at the waterline, animated by a traveling wave
	// so the line breathes instead of sitting still.
	travel := 0.5 + 0.5*math.Sin(hit.Position.X*2.1+hit.Position.Z*1.3+ctx.Time*2.4)
	line := fmath.Smoothstep(0.22, 0.0, above) * (0.55 + 0.45*travel)
	c = c.Mix(colors.NewRGB(0.95, 0.96, 0.97), line*0.55)

	c.A = 1
	return c
}
