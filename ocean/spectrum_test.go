package ocean

import (
	"math"
	"testing"

	"github.com/seascape-dev/seascape/vectors"
)

func TestHeightBounded(t *testing.T) {
	s := Default()
	bound := s.MaxHeight()

	for _, tm := range []float64{0, 1.7, 42.3} {
		for x := -20.0; x <= 20; x += 2.5 {
			for z := -20.0; z <= 20; z += 2.5 {
				h := s.Height(vectors.Vec2{X: x, Y: z}, tm)
				if math.Abs(h) > bound {
					t.Fatalf("height %v at (%v,%v,t=%v) exceeds amplitude sum %v", h, x, z, tm, bound)
				}
			}
		}
	}
}

func TestGradientMatchesFiniteDifference(t *testing.T) {
	s := Default()
	const eps = 1e-5

	for _, p := range []vectors.Vec2{{X: 0, Y: 0}, {X: 3.1, Y: -2.7}, {X: -11.4, Y: 8.9}} {
		g := s.Gradient(p, 1.3)

		fdx := (s.Height(vectors.Vec2{X: p.X + eps, Y: p.Y}, 1.3) - s.Height(vectors.Vec2{X: p.X - eps, Y: p.Y}, 1.3)) / (2 * eps)
		fdz := (s.Height(vectors.Vec2{X: p.X, Y: p.Y + eps}, 1.3) - s.Height(vectors.Vec2{X: p.X, Y: p.Y - eps}, 1.3)) / (2 * eps)

		if math.Abs(g.X-fdx) > 1e-4 || math.Abs(g.Y-fdz) > 1e-4 {
			t.Errorf("at %+v analytic gradient (%v,%v) vs finite difference (%v,%v)", p, g.X, g.Y, fdx, fdz)
		}
	}
}

func TestDispersionRelation(t *testing.T) {
	c := Component{Wavenumber: 0.25}
	want := math.Sqrt(Gravity * 0.25)
	if got := c.AngularFrequency(); math.Abs(got-want) > 1e-12 {
		t.Errorf("angular frequency = %v, want %v", got, want)
	}
}

func TestNormalIsUnitAndUpward(t *testing.T) {
	s := Default()
	for x := -10.0; x <= 10; x += 3.3 {
		n := s.Normal(vectors.Vec2{X: x, Y: x * 0.7}, 2.2)
		if math.Abs(n.Norm()-1) > 1e-9 {
			t.Fatalf("normal %+v is not unit length", n)
		}
		if n.Y <= 0 {
			t.Fatalf("wave normal %+v points downward", n)
		}
	}
}

func TestNormalStableOverTime(t *testing.T) {
	// The stencil rotation is derived from position, so the same
	// position and time always yields the same normal.
	s := Default()
	p := vectors.Vec2{X: 4.2, Y: -1.1}
	a := s.Normal(p, 5)
	b := s.Normal(p, 5)
	if a != b {
		t.Errorf("normal not deterministic: %+v vs %+v", a, b)
	}
}

func TestScaled(t *testing.T) {
	s := Default()
	double := s.Scaled(2)
	if math.Abs(double.MaxHeight()-2*s.MaxHeight()) > 1e-12 {
		t.Errorf("scaled amplitude sum = %v, want %v", double.MaxHeight(), 2*s.MaxHeight())
	}
	if &s[0] == &double[0] {
		t.Error("Scaled must copy, not alias")
	}
}

func TestFieldSign(t *testing.T) {
	s := Default()
	f := s.Field()
	high := vectors.Vec3{Y: s.MaxHeight() + 1}
	low := vectors.Vec3{Y: -s.MaxHeight() - 1}

	if d := f(high, 0); d <= 0 {
		t.Errorf("point above all waves has distance %v, want positive", d)
	}
	if d := f(low, 0); d >= 0 {
		t.Errorf("point below all waves has distance %v, want negative", d)
	}
}
