// Package sdf implements signed distance fields: analytic primitives,
// boolean combinators, and numeric surface normals.
//
// A Field reports a conservative signed distance to its surface:
// positive outside, negative inside, zero on the boundary. The
// magnitude is a lower bound on the true distance, which is the
// contract the sphere tracer in package march depends on.
package sdf

import (
	"math"

	"github.com/seascape-dev/seascape/fmath"
	"github.com/seascape-dev/seascape/vectors"
)

// Field is a signed distance estimator. Time-invariant surfaces ignore t.
type Field func(p vectors.Vec3, t float64) float64

// Sphere returns the exact distance field of a sphere.
func Sphere(center vectors.Vec3, radius float64) Field {
	return func(p vectors.Vec3, _ float64) float64 {
		return p.Sub(center).Norm() - radius
	}
}

// Box returns the exact distance field of an axis-aligned box with the
// given half extents.
func Box(center, half vectors.Vec3) Field {
	return func(p vectors.Vec3, _ float64) float64 {
		q := vectors.Vec3{
			X: math.Abs(p.X-center.X) - half.X,
			Y: math.Abs(p.Y-center.Y) - half.Y,
			Z: math.Abs(p.Z-center.Z) - half.Z,
		}
		outside := vectors.Vec3{
			X: math.Max(q.X, 0),
			Y: math.Max(q.Y, 0),
			Z: math.Max(q.Z, 0),
		}.Norm()
		inside := math.Min(math.Max(q.X, math.Max(q.Y, q.Z)), 0)
		return outside + inside
	}
}

// RoundBox returns a box with its edges rounded by radius. The half
// extents include the rounding.
func RoundBox(center, half vectors.Vec3, radius float64) Field {
	inner := Box(center, vectors.Vec3{
		X: math.Max(half.X-radius, 0),
		Y: math.Max(half.Y-radius, 0),
		Z: math.Max(half.Z-radius, 0),
	})
	return func(p vectors.Vec3, t float64) float64 {
		return inner(p, t) - radius
	}
}

// Cylinder returns the distance field of a capped cylinder aligned with
// the Y axis.
func Cylinder(center vectors.Vec3, radius, halfHeight float64) Field {
	return func(p vectors.Vec3, _ float64) float64 {
		q := p.Sub(center)
		dXZ := math.Hypot(q.X, q.Z) - radius
		dY := math.Abs(q.Y) - halfHeight
		outside := math.Hypot(math.Max(dXZ, 0), math.Max(dY, 0))
		inside := math.Min(math.Max(dXZ, dY), 0)
		return outside + inside
	}
}

// Plane returns the distance field of the horizontal plane y = height.
func Plane(height float64) Field {
	return func(p vectors.Vec3, _ float64) float64 {
		return p.Y - height
	}
}

// Translate shifts a field by offset.
func Translate(f Field, offset vectors.Vec3) Field {
	return func(p vectors.Vec3, t float64) float64 {
		return f(p.Sub(offset), t)
	}
}

// Repeat tiles a field on an infinite horizontal grid with the given
// cell size. The field must fit within its cell or neighboring copies
// will blend.
func Repeat(f Field, cellX, cellZ float64) Field {
	return func(p vectors.Vec3, t float64) float64 {
		q := vectors.Vec3{
			X: p.X - cellX*math.Round(p.X/cellX),
			Y: p.Y,
			Z: p.Z - cellZ*math.Round(p.Z/cellZ),
		}
		return f(q, t)
	}
}

// Union keeps the closer of two surfaces.
func Union(a, b Field) Field {
	return func(p vectors.Vec3, t float64) float64 {
		return math.Min(a(p, t), b(p, t))
	}
}

// SmoothUnion blends two surfaces with a C¹-continuous polynomial
// smooth minimum. k is the blend radius; as k approaches zero the
// result converges to Union.
func SmoothUnion(a, b Field, k float64) Field {
	return func(p vectors.Vec3, t float64) float64 {
		d1 := a(p, t)
		d2 := b(p, t)
		if k <= 0 {
			return math.Min(d1, d2)
		}
		h := fmath.Clamp(0.5+0.5*(d2-d1)/k, 0, 1)
		return fmath.Lerp(d2, d1, h) - k*h*(1-h)
	}
}

// Intersection keeps the overlap of two surfaces.
func Intersection(a, b Field) Field {
	return func(p vectors.Vec3, t float64) float64 {
		return math.Max(a(p, t), b(p, t))
	}
}

// Subtraction carves b out of a.
func Subtraction(a, b Field) Field {
	return func(p vectors.Vec3, t float64) float64 {
		return math.Max(a(p, t), -b(p, t))
	}
}

// Normal estimates the outward surface normal at p by central
// differences with step eps. Returns world up if the gradient
// degenerates, so callers never see a zero or non-finite normal.
func Normal(f Field, p vectors.Vec3, t, eps float64) vectors.Vec3 {
	g := vectors.Vec3{
		X: f(p.Add(vectors.Vec3{X: eps}), t) - f(p.Sub(vectors.Vec3{X: eps}), t),
		Y: f(p.Add(vectors.Vec3{Y: eps}), t) - f(p.Sub(vectors.Vec3{Y: eps}), t),
		Z: f(p.Add(vectors.Vec3{Z: eps}), t) - f(p.Sub(vectors.Vec3{Z: eps}), t),
	}
	if !g.IsFinite() || g.Norm() == 0 {
		return vectors.Up()
	}
	return g.Normalize()
}
