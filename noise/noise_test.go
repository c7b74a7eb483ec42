package noise

import (
	"math"
	"testing"
)

func TestDeterministicForSeed(t *testing.T) {
	a := New(42)
	b := New(42)
	for x := -3.0; x <= 3; x += 0.7 {
		if a.Sample(x, -x) != b.Sample(x, -x) {
			t.Fatalf("same seed produced different noise at %v", x)
		}
	}

	c := New(43)
	same := true
	for x := -3.0; x <= 3; x += 0.7 {
		if a.Sample(x, -x) != c.Sample(x, -x) {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical noise")
	}
}

func TestFBMBounded(t *testing.T) {
	s := New(1)
	// Geometric amplitude sum bounds the octave stack.
	const octaves, persistence = 6, 0.5
	bound := 0.0
	amp := 1.0
	for i := 0; i < octaves; i++ {
		bound += amp
		amp *= persistence
	}

	for x := -10.0; x <= 10; x += 1.3 {
		v := s.FBM(x, x*0.6, octaves, persistence, 2.0, 0)
		if math.Abs(v) > bound {
			t.Fatalf("fbm %v at %v exceeds amplitude bound %v", v, x, bound)
		}
	}
}

func TestRidgeChangesField(t *testing.T) {
	s := New(5)
	diff := 0.0
	for x := 0.0; x < 5; x += 0.37 {
		diff += math.Abs(s.FBM(x, 1.1, 4, 0.5, 2, 0) - s.FBM(x, 1.1, 4, 0.5, 2, 1))
	}
	if diff == 0 {
		t.Error("ridge knob has no effect on the field")
	}
}

func TestWarpZeroStrengthIdentity(t *testing.T) {
	s := New(9)
	x, y := s.Warp(1.5, -2.5, 0)
	if x != 1.5 || y != -2.5 {
		t.Errorf("zero-strength warp moved the point to (%v,%v)", x, y)
	}
}

func TestTinyAmplitudeOctavesSkipped(t *testing.T) {
	s := New(3)
	// With persistence 0.01 the third octave is already below the skip
	// threshold; adding more octaves must not change the result.
	few := s.FBM(2.2, 3.3, 3, 0.01, 2, 0)
	many := s.FBM(2.2, 3.3, 30, 0.01, 2, 0)
	if few != many {
		t.Errorf("negligible octaves changed output: %v vs %v", few, many)
	}
}
