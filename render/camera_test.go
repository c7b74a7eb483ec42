package render

import (
	"math"
	"testing"

	"github.com/seascape-dev/seascape/march"
	"github.com/seascape-dev/seascape/sdf"
	"github.com/seascape-dev/seascape/vectors"
)

func neutralCamera() Camera {
	c := SunnyDay()
	c.FStop = refFStop
	c.Shutter = refShutter
	c.ISO = refISO
	return c
}

func TestExposureReferencePoint(t *testing.T) {
	c := neutralCamera()
	if got := c.Exposure(); math.Abs(got-1) > 1e-12 {
		t.Errorf("exposure at f/2.8, 1/60s, ISO100 = %v, want 1.0", got)
	}
}

func TestExposureMonotonicity(t *testing.T) {
	base := neutralCamera()

	wider := base
	wider.FStop = 2.0 // f/2.8 → f/2: one stop brighter
	if wider.Exposure() <= base.Exposure() {
		t.Error("opening the aperture must increase exposure")
	}

	slower := base
	slower.Shutter = base.Shutter * 2
	if math.Abs(slower.Exposure()-2*base.Exposure()) > 1e-9 {
		t.Errorf("doubling shutter: exposure %v, want %v", slower.Exposure(), 2*base.Exposure())
	}

	faster := base
	faster.ISO = base.ISO * 2
	if math.Abs(faster.Exposure()-2*base.Exposure()) > 1e-9 {
		t.Errorf("doubling ISO: exposure %v, want %v", faster.Exposure(), 2*base.Exposure())
	}

	pushed := base
	pushed.EVCompensation = 1
	if math.Abs(pushed.Exposure()-2*base.Exposure()) > 1e-9 {
		t.Errorf("+1 EV: exposure %v, want %v", pushed.Exposure(), 2*base.Exposure())
	}
}

func TestExposureClamped(t *testing.T) {
	dark := neutralCamera()
	dark.FStop = 64
	dark.Shutter = 1.0 / 8000.0
	if got := dark.Exposure(); got < minExposure {
		t.Errorf("exposure %v below clamp floor", got)
	}

	bright := neutralCamera()
	bright.FStop = 0.95
	bright.Shutter = 1
	bright.ISO = 12800
	if got := bright.Exposure(); got > maxExposure {
		t.Errorf("exposure %v above clamp ceiling", got)
	}
}

func TestBasisOrthonormal(t *testing.T) {
	b := SunnyDay().Basis()
	checkOrthonormal(t, b)
}

func TestBasisDegenerateUpFallback(t *testing.T) {
	c := SunnyDay()
	c.Position = vectors.Vec3{Y: 10}
	c.Target = vectors.Zero()
	c.Up = vectors.Up() // parallel to the view direction

	b := c.Basis()
	checkOrthonormal(t, b)
}

func checkOrthonormal(t *testing.T, b Basis) {
	t.Helper()
	for name, v := range map[string]vectors.Vec3{"right": b.Right, "up": b.Up, "forward": b.Forward} {
		if !v.IsFinite() {
			t.Fatalf("%s = %+v is not finite", name, v)
		}
		if math.Abs(v.Norm()-1) > 1e-9 {
			t.Fatalf("%s length = %v, want 1", name, v.Norm())
		}
	}
	if math.Abs(b.Right.Dot(b.Up)) > 1e-9 ||
		math.Abs(b.Right.Dot(b.Forward)) > 1e-9 ||
		math.Abs(b.Up.Dot(b.Forward)) > 1e-9 {
		t.Fatal("basis vectors are not mutually orthogonal")
	}
}

func TestFOVFromSensorAndFocal(t *testing.T) {
	c := SunnyDay()
	c.SensorWidth = 36
	c.FocalLength = 18
	want := 2 * math.Atan(1)
	if got := c.FOV(); math.Abs(got-want) > 1e-12 {
		t.Errorf("FOV = %v, want %v", got, want)
	}
}

func TestCenterRayLooksAtTarget(t *testing.T) {
	c := SunnyDay()
	b := c.Basis()
	const w, h = 101, 101

	ray := c.Ray(50, 50, w, h, b)
	want := c.Target.Sub(c.Position).Normalize()
	if vectors.Distance(ray.Dir, want) > 1e-9 {
		t.Errorf("center ray %+v, want %+v", ray.Dir, want)
	}
}

func TestCenterPixelSceneHit(t *testing.T) {
	// Camera at (0,4,8) looking at the origin with a unit sphere there:
	// the center ray hits at |camera| - 1 and the normal faces back.
	c := SunnyDay()
	b := c.Basis()
	ray := c.Ray(50, 50, 101, 101, b)

	field := sdf.Sphere(vectors.Zero(), 1)
	hit := march.Trace(ray, field, 0, 100, march.PrimitiveConfig())
	if !hit.Hit {
		t.Fatalf("center ray missed the sphere: %+v", hit)
	}

	want := c.Position.Norm() - 1
	if math.Abs(hit.Distance-want) > 1e-2 {
		t.Errorf("hit distance = %v, want %v", hit.Distance, want)
	}

	n := sdf.Normal(field, hit.Position, 0, 1e-5)
	if n.Dot(ray.Dir) >= 0 {
		t.Errorf("normal %+v does not face the camera", n)
	}
}

func TestCircleOfConfusion(t *testing.T) {
	off := SunnyDay()
	if off.CircleOfConfusion(5) != 0 {
		t.Error("CoC must be zero with DOF disabled")
	}

	cin := Cinematic()
	if cin.CircleOfConfusion(cin.FocusDistance) != 0 {
		t.Error("CoC must be zero at the focus plane")
	}
	near := cin.CircleOfConfusion(cin.FocusDistance * 0.5)
	far := cin.CircleOfConfusion(cin.FocusDistance * 3)
	if near <= 0 || far <= 0 {
		t.Error("CoC must grow away from the focus plane")
	}

	stopped := cin
	stopped.FStop = 16
	if stopped.CircleOfConfusion(cin.FocusDistance*3) >= far {
		t.Error("stopping down must shrink the CoC")
	}
}
