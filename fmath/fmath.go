// Package fmath provides the small scalar helpers shared by every stage
// of the renderer.
package fmath

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Clamp limits x to the inclusive range [lo, hi].
func Clamp[T constraints.Float](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Saturate clamps x into [0,1].
func Saturate[T constraints.Float](x T) T {
	return Clamp(x, 0, 1)
}

// Lerp returns a*(1-t) + b*t.
func Lerp[T constraints.Float](a, b, t T) T {
	return a*(1-t) + b*t
}

// Smoothstep performs a Hermite interpolation between 0 and 1 across
// [edge0, edge1]. Returns 0 if x < edge0, 1 if x > edge1.
func Smoothstep[T constraints.Float](edge0, edge1, x T) T {
	// Avoid division by zero
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Saturate((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// SafeDiv divides a by b with an epsilon floor on |b|, preserving b's sign.
func SafeDiv(a, b float64) float64 {
	const eps = 1e-9
	if math.Abs(b) < eps {
		if b < 0 {
			b = -eps
		} else {
			b = eps
		}
	}
	return a / b
}

// Finite reports whether x is neither NaN nor infinite.
func Finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
