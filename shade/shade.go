// Package shade turns classified surface hits into linear HDR radiance.
// Each surface kind has its own shading model; dispatch is an explicit
// kind→shader map.
package shade

import (
	"math"

	"github.com/seascape-dev/seascape/colors"
	"github.com/seascape-dev/seascape/fmath"
	"github.com/seascape-dev/seascape/scene"
	"github.com/seascape-dev/seascape/sky"
	"github.com/seascape-dev/seascape/vectors"
)

// Context carries the per-frame read-only state every shader needs.
type Context struct {
	Scene *scene.Scene
	Light sky.Lighting
	Time  float64
}

// Shader computes radiance for a resolved hit. view is the unit ray
// direction from the eye into the scene.
type Shader func(ctx *Context, hit scene.SurfaceHit, view vectors.Vec3) colors.Color4

var handlers = map[scene.SurfaceKind]Shader{
	scene.KindWater:   Water,
	scene.KindTerrain: Terrain,
	scene.KindObject:  Object,
}

// Color shades the hit, falling back to sky radiance for misses and
// unknown kinds. A non-finite shader result also degrades to sky, so a
// single degenerate pixel can never propagate garbage.
func Color(ctx *Context, hit scene.SurfaceHit, view vectors.Vec3) colors.Color4 {
	if h, ok := handlers[hit.Kind]; ok && hit.Hit {
		c := h(ctx, hit, view)
		if c.IsFinite() {
			return c
		}
	}
	return ctx.Scene.Sky.Radiance(view, ctx.Light)
}

// fresnelSchlick is the scalar Schlick approximation; output lies in
// [f0, 1] for cosTheta in [0, 1].
func fresnelSchlick(cosTheta, f0 float64) float64 {
	c := fmath.Saturate(cosTheta)
	return f0 + (1-f0)*math.Pow(1-c, 5)
}

// ggxSpecular evaluates a GGX/Smith microfacet lobe with a cheap
// multi-scatter energy compensation term.
func ggxSpecular(n, v, l vectors.Vec3, roughness, f0 float64) float64 {
	h := l.Sub(v).Normalize() // v points into the surface
	noV := fmath.Saturate(-n.Dot(v))
	noL := fmath.Saturate(n.Dot(l))
	noH := fmath.Saturate(n.Dot(h))
	if noL <= 0 || noV <= 0 {
		return 0
	}

	a := math.Max(roughness*roughness, 1e-3)
	a2 := a * a

	// GGX normal distribution
	denom := noH*noH*(a2-1) + 1
	d := a2 / math.Max(math.Pi*denom*denom, 1e-9)

	// Smith height-correlated visibility
	gv := noL * math.Sqrt(noV*noV*(1-a2)+a2)
	gl := noV * math.Sqrt(noL*noL*(1-a2)+a2)
	vis := 0.5 / math.Max(gv+gl, 1e-9)

	f := fresnelSchlick(-v.Dot(h), f0)

	// Single-scatter GGX loses energy as roughness rises; compensate.
	energy := 1 + f0*(2*a)

	return d * vis * f * noL * energy
}

// refract bends v through a surface with normal n and relative index
// eta. Returns (v, false) on total internal reflection.
func refract(v, n vectors.Vec3, eta float64) (vectors.Vec3, bool) {
	cosI := -v.Dot(n)
	sin2T := eta * eta * (1 - cosI*cosI)
	if sin2T > 1 {
		return v, false
	}
	cosT := math.Sqrt(1 - sin2T)
	return v.Scale(eta).Add(n.Scale(eta*cosI - cosT)).Normalize(), true
}

// hash1 maps a scalar to a stable pseudo-random value in [0,1).
func hash1(x float64) float64 {
	v := math.Sin(x*127.1) * 43758.5453
	return v - math.Floor(v)
}

// ambientOcclusion walks a short ladder along the normal, comparing
// field distance against travel distance.
func ambientOcclusion(f func(vectors.Vec3, float64) float64, p, n vectors.Vec3, t float64) float64 {
	const delta = 0.25
	occ := 0.0
	k := 2.0
	for i := 1; i < 5; i++ {
		q := p.Add(n.Scale(float64(i) * delta))
		occ += (1.0 / k) * (float64(i)*delta - f(q, t))
		k *= 2
	}
	return fmath.Saturate(1 - occ)
}
