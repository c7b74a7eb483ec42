package shade

import (
	"math"

	"github.com/seascape-dev/seascape/colors"
	"github.com/seascape-dev/seascape/fmath"
	"github.com/seascape-dev/seascape/scene"
	"github.com/seascape-dev/seascape/vectors"
)

// Object shades placed props with a compact Lambert + Blinn-Phong +
// Fresnel-rim model and the shared wet treatment.
func Object(ctx *Context, hit scene.SurfaceHit, view vectors.Vec3) colors.Color4 {
	mat := ctx.Scene.Prop
	n := hit.Normal
	l := ctx.Light.SunDir

	noL := fmath.Saturate(n.Dot(l))
	diffuse := mat.Albedo.Mul(ctx.Light.SunColor).ScaleRGB(noL * ctx.Light.SunIntensity)
	ambient := mat.Albedo.Mul(ctx.Scene.Sky.Ambient(ctx.Light))

	h := l.Sub(view).Normalize()
	spec := math.Pow(fmath.Saturate(n.Dot(h)), mat.SpecularPower) * (1 - 0.6*mat.Roughness)
	specular := ctx.Light.SunColor.ScaleRGB(spec * noL * ctx.Light.SunIntensity)

	// Fresnel rim against the sky.
	rim := fresnelSchlick(-view.Dot(n), mat.F0) * mat.RimStrength
	rimColor := ctx.Scene.Sky.Ambient(ctx.Light).ScaleRGB(rim * 3)

	var ao float64 = 1
	if ctx.Scene.Object != nil {
		ao = ambientOcclusion(ctx.Scene.Object, hit.Position, n, ctx.Time)
	}

	c := diffuse.Add(ambient).ScaleRGB(ao).Add(specular).Add(rimColor)
	c = applyWaterEffects(ctx, hit, c)
	c.A = 1
	return c
}
