package shade

import (
	"math"
	"testing"

	"github.com/seascape-dev/seascape/march"
	"github.com/seascape-dev/seascape/scene"
	"github.com/seascape-dev/seascape/vectors"
)

func testContext(t *testing.T) *Context {
	t.Helper()
	s, err := scene.PresetConfig("sunny-day").Build()
	if err != nil {
		t.Fatal(err)
	}
	return &Context{
		Scene: s,
		Light: s.Sky.Lighting(),
		Time:  1.5,
	}
}

func TestFresnelSchlickBounds(t *testing.T) {
	const f0 = 0.02
	for cos := -0.2; cos <= 1.2; cos += 0.05 {
		f := fresnelSchlick(cos, f0)
		if f < f0-1e-12 || f > 1+1e-12 {
			t.Fatalf("fresnel(%v) = %v outside [%v, 1]", cos, f, f0)
		}
	}
	if f := fresnelSchlick(1, f0); math.Abs(f-f0) > 1e-12 {
		t.Errorf("head-on fresnel = %v, want %v", f, f0)
	}
	if f := fresnelSchlick(0, f0); math.Abs(f-1) > 1e-12 {
		t.Errorf("grazing fresnel = %v, want 1", f)
	}
}

func TestGGXSpecularNonNegative(t *testing.T) {
	n := vectors.Up()
	for _, rough := range []float64{0.02, 0.1, 0.4, 0.9} {
		for az := 0.0; az < 2*math.Pi; az += 0.7 {
			v := vectors.Vec3{X: math.Cos(az) * 0.6, Y: -0.5, Z: math.Sin(az) * 0.6}.Normalize()
			l := vectors.Vec3{X: 0.3, Y: 0.8, Z: -0.2}.Normalize()
			s := ggxSpecular(n, v, l, rough, 0.02)
			if s < 0 || !isFinite(s) {
				t.Fatalf("ggx(rough=%v, az=%v) = %v", rough, az, s)
			}
		}
	}
	// Light below the horizon contributes nothing.
	below := vectors.Vec3{Y: -1}
	if s := ggxSpecular(n, vectors.Vec3{Y: -1}, below, 0.2, 0.02); s != 0 {
		t.Errorf("back-lit ggx = %v, want 0", s)
	}
}

func TestRefract(t *testing.T) {
	n := vectors.Up()
	v := vectors.Vec3{X: 0.4, Y: -1, Z: 0.1}.Normalize()

	bent, ok := refract(v, n, 1/1.33)
	if !ok {
		t.Fatal("air-to-water refraction reported TIR")
	}
	if math.Abs(bent.Norm()-1) > 1e-9 {
		t.Errorf("refracted direction not unit: %v", bent.Norm())
	}
	if bent.Y >= 0 {
		t.Errorf("refracted ray should continue downward, got %+v", bent)
	}
	// Snell: sin(theta_t) = eta * sin(theta_i), and bending toward the
	// normal means a smaller transverse component.
	sinI := math.Hypot(v.X, v.Z)
	sinT := math.Hypot(bent.X, bent.Z)
	if math.Abs(sinT-sinI/1.33) > 1e-9 {
		t.Errorf("sin(theta_t) = %v, want %v", sinT, sinI/1.33)
	}

	// Steep exit from the dense medium: total internal reflection.
	grazing := vectors.Vec3{X: 1, Y: 0.05, Z: 0}.Normalize()
	if _, ok := refract(grazing, vectors.Vec3{Y: -1}, 1.33); ok {
		t.Error("expected total internal reflection")
	}
}

func TestColorFallsBackToSkyOnMiss(t *testing.T) {
	ctx := testContext(t)
	view := vectors.Vec3{X: 0.2, Y: 0.4, Z: -1}.Normalize()

	miss := scene.SurfaceHit{Kind: scene.KindNone, WaterNormal: vectors.Up()}
	got := Color(ctx, miss, view)
	want := ctx.Scene.Sky.Radiance(view, ctx.Light)
	if got != want {
		t.Errorf("miss color = %+v, want sky radiance %+v", got, want)
	}
}

func TestShadersProduceFiniteRadiance(t *testing.T) {
	ctx := testContext(t)

	dirs := []vectors.Vec3{
		{X: 0, Y: -1, Z: 0},
		{X: 0.3, Y: -0.4, Z: -1},
		{X: -0.8, Y: -0.1, Z: 0.4},
	}
	origins := []vectors.Vec3{
		{X: 0, Y: 6, Z: 10},
		{X: 5, Y: 3, Z: -6},
		{X: -12, Y: 8, Z: 4},
	}

	for _, o := range origins {
		for _, d := range dirs {
			ray := march.Ray{Origin: o, Dir: d.Normalize()}
			hit := ctx.Scene.Trace(ray, ctx.Time)
			c := Color(ctx, hit, ray.Dir)
			if !c.IsFinite() {
				t.Fatalf("non-finite radiance for ray %+v (kind %v)", ray, hit.Kind)
			}
			if c.R < 0 || c.G < 0 || c.B < 0 {
				t.Fatalf("negative radiance %+v for ray %+v (kind %v)", c, ray, hit.Kind)
			}
		}
	}
}

func TestSubmergedTerrainDarkerThanDry(t *testing.T) {
	ctx := testContext(t)

	floor := ctx.Scene.TraceFloor(march.Ray{Origin: vectors.Vec3{X: 3, Y: 2, Z: 2}, Dir: vectors.Vec3{Y: -1}}, ctx.Time)
	if !floor.Hit {
		t.Fatal("expected a floor hit")
	}
	wet := ctx.Scene.ResolveFloor(floor, ctx.Time)
	if !wet.Submerged {
		t.Fatal("floor hit should be below the waterline")
	}

	dry := wet
	dry.Submerged = false
	dry.IsWet = false
	dry.WaterDepth = 0

	view := vectors.Vec3{Y: -1}
	wetC := Terrain(ctx, wet, view)
	dryC := Terrain(ctx, dry, view)
	if wetC.Luminance() >= dryC.Luminance() {
		t.Errorf("underwater terrain %v should be dimmer than dry %v",
			wetC.Luminance(), dryC.Luminance())
	}
}

func TestAmbientOcclusionOpenVsBlocked(t *testing.T) {
	open := func(p vectors.Vec3, _ float64) float64 { return p.Y }
	blocked := func(p vectors.Vec3, _ float64) float64 { return 0.01 }

	p := vectors.Vec3{}
	n := vectors.Up()
	ao := ambientOcclusion(open, p, n, 0)
	abl := ambientOcclusion(blocked, p, n, 0)
	if math.Abs(ao-1) > 1e-9 {
		t.Errorf("unoccluded AO = %v, want 1", ao)
	}
	if abl >= ao {
		t.Errorf("blocked AO %v should be below open AO %v", abl, ao)
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
