package scene

import (
	"math"
	"testing"

	"github.com/seascape-dev/seascape/march"
	"github.com/seascape-dev/seascape/ocean"
	"github.com/seascape-dev/seascape/sdf"
	"github.com/seascape-dev/seascape/sky"
	"github.com/seascape-dev/seascape/terrain"
	"github.com/seascape-dev/seascape/vectors"
)

func testScene(object sdf.Field) *Scene {
	return New(ocean.Default(), terrain.New(terrain.DefaultParams()), object, sky.ClearDay())
}

func TestTraceDownwardHitsWater(t *testing.T) {
	s := testScene(nil)
	ray := march.Ray{Origin: vectors.Vec3{Y: 10}, Dir: vectors.Vec3{Y: -1}}

	hit := s.Trace(ray, 0)
	if !hit.Hit || hit.Kind != KindWater {
		t.Fatalf("expected water hit, got %+v", hit)
	}
	if math.Abs(hit.Position.Y-s.Waves.Height(hit.Position.XZ(), 0)) > 0.05 {
		t.Errorf("water hit y=%v not on wave surface", hit.Position.Y)
	}
	if hit.Normal.Y <= 0 {
		t.Errorf("water normal %+v points downward", hit.Normal)
	}
}

func TestTraceSkywardMisses(t *testing.T) {
	s := testScene(nil)
	ray := march.Ray{Origin: vectors.Vec3{Y: 10}, Dir: vectors.Vec3{Y: 1}}

	hit := s.Trace(ray, 0)
	if hit.Hit || hit.Kind != KindNone {
		t.Fatalf("expected miss, got %+v", hit)
	}
	if hit.WaterNormal != vectors.Up() {
		t.Errorf("miss should carry the default water normal, got %+v", hit.WaterNormal)
	}
}

func TestObjectAboveWaterWins(t *testing.T) {
	// A sphere floating well above the waves, directly in the ray path.
	object := sdf.Sphere(vectors.Vec3{Y: 6}, 1)
	s := testScene(object)

	ray := march.Ray{Origin: vectors.Vec3{Y: 12}, Dir: vectors.Vec3{Y: -1}}
	hit := s.Trace(ray, 0)
	if hit.Kind != KindObject {
		t.Fatalf("expected object hit, got %v", hit.Kind)
	}
	if math.Abs(hit.Distance-5) > 0.05 {
		t.Errorf("object distance = %v, want 5", hit.Distance)
	}
	if hit.Submerged || hit.WaterDepth != 0 {
		t.Errorf("dry object marked wet: %+v", hit)
	}
}

func TestWaterWinsOverSubmergedObject(t *testing.T) {
	// Sphere entirely below the waves: from above, the water surface is
	// the nearer candidate along the ray and must win.
	object := sdf.Sphere(vectors.Vec3{Y: -2}, 0.5)
	s := testScene(object)

	hit := s.Trace(march.Ray{Origin: vectors.Vec3{Y: 5}, Dir: vectors.Vec3{Y: -1}}, 0)
	if hit.Kind != KindWater {
		t.Fatalf("from above, water should win, got %v", hit.Kind)
	}
}

func TestNearWaterHitSkipsOtherCandidates(t *testing.T) {
	calls := 0
	counting := func(p vectors.Vec3, _ float64) float64 {
		calls++
		return p.Sub(vectors.Vec3{Y: -50}).Norm() - 1
	}
	s := testScene(counting)

	// Start just above the local waterline so the water march resolves
	// well inside the skip radius.
	waterY := s.Waves.Height(vectors.Vec2{}, 0)
	ray := march.Ray{Origin: vectors.Vec3{Y: waterY + 0.3}, Dir: vectors.Vec3{Y: -1}}

	hit := s.Trace(ray, 0)
	if hit.Kind != KindWater {
		t.Fatalf("expected water hit, got %v", hit.Kind)
	}
	if hit.Distance >= nearWaterSkip {
		t.Fatalf("water distance %v outside the skip radius", hit.Distance)
	}
	if calls != 0 {
		t.Errorf("object field evaluated %d times despite near water hit", calls)
	}
}

func TestUnderwaterReclassification(t *testing.T) {
	s := testScene(nil)

	// Coarse floor hit well below the waterline.
	ray := march.Ray{Origin: vectors.Vec3{X: 3, Y: -1.5, Z: 2}, Dir: vectors.Vec3{Y: -1}}
	floor := s.TraceFloor(ray, 0)
	if !floor.Hit {
		t.Fatalf("expected floor hit, got %+v", floor)
	}

	hit := s.ResolveFloor(floor, 0)
	if hit.Kind != KindTerrain {
		t.Fatalf("kind = %v, want terrain", hit.Kind)
	}
	if !hit.Submerged || !hit.IsWet {
		t.Errorf("submerged floor hit not annotated: %+v", hit)
	}

	waterY := s.Waves.Height(hit.Position.XZ(), 0)
	if math.Abs(hit.WaterDepth-(waterY-hit.Position.Y)) > 1e-9 {
		t.Errorf("depth = %v, want %v", hit.WaterDepth, waterY-hit.Position.Y)
	}
	if hit.WaterDepth < 0 {
		t.Errorf("water depth must be non-negative, got %v", hit.WaterDepth)
	}
	if hit.WaterSurface.Y != waterY {
		t.Errorf("water surface y = %v, want %v", hit.WaterSurface.Y, waterY)
	}
}

func TestSurfaceKindString(t *testing.T) {
	cases := map[SurfaceKind]string{
		KindNone:    "none",
		KindWater:   "water",
		KindTerrain: "terrain",
		KindObject:  "object",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("kind %d = %q, want %q", k, got, want)
		}
	}
}
