package xpbd

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Real is the scalar type used throughout the core: double precision, per
// spec.
type Real = float64

// Real3 is a 3-vector in double precision.
type Real3 = mgl64.Vec3

// Mat3 is a 3x3 matrix in double precision, column-major like mgl64.Mat3.
type Mat3 = mgl64.Mat3

// Index is an unsigned vertex/tetra/edge index into an object's arrays.
type Index = uint32

// AABB is an axis-aligned bounding box in world space.
type AABB struct {
	Min Real3
	Max Real3
}

// NewAABB builds a degenerate AABB (a single point) at p. Callers grow it
// with Expand.
func NewAABB(p Real3) AABB {
	return AABB{Min: p, Max: p}
}

// Contains reports whether point lies within the closed box.
func (b AABB) Contains(point Real3) bool {
	return point.X() >= b.Min.X() && point.X() <= b.Max.X() &&
		point.Y() >= b.Min.Y() && point.Y() <= b.Max.Y() &&
		point.Z() >= b.Min.Z() && point.Z() <= b.Max.Z()
}

// Intersects reports closed-interval overlap on all three axes.
func (b AABB) Intersects(other AABB) bool {
	return b.Min.X() <= other.Max.X() && b.Max.X() >= other.Min.X() &&
		b.Min.Y() <= other.Max.Y() && b.Max.Y() >= other.Min.Y() &&
		b.Min.Z() <= other.Max.Z() && b.Max.Z() >= other.Min.Z()
}

// Expand grows the box, componentwise, to include point.
func (b AABB) Expand(point Real3) AABB {
	return AABB{
		Min: componentMin(b.Min, point),
		Max: componentMax(b.Max, point),
	}
}

// Union returns the smallest AABB containing both boxes.
func (b AABB) Union(other AABB) AABB {
	return AABB{
		Min: componentMin(b.Min, other.Min),
		Max: componentMax(b.Max, other.Max),
	}
}

// Center returns the midpoint of the box.
func (b AABB) Center() Real3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func componentMin(a, b Real3) Real3 {
	return Real3{math.Min(a.X(), b.X()), math.Min(a.Y(), b.Y()), math.Min(a.Z(), b.Z())}
}

func componentMax(a, b Real3) Real3 {
	return Real3{math.Max(a.X(), b.X()), math.Max(a.Y(), b.Y()), math.Max(a.Z(), b.Z())}
}

// distance avoids a square root when only a comparison is needed by
// preferring squared lengths at call sites; this helper is for the cases
// that genuinely need the scalar distance (e.g. rest lengths, XPBD
// gradients).
func distance(a, b Real3) Real {
	return a.Sub(b).Len()
}

// tetraVolume computes the absolute signed volume of the tetrahedron
// (v0, v1, v2, v3): det([v1-v0, v2-v0, v3-v0]) / 6, expressed as a Mat3
// determinant (the edge vectors as columns) rather than an explicit
// cross-dot, since Mat3 is one of the math primitives this module
// exposes (spec.md 4.A).
func tetraVolume(v0, v1, v2, v3 Real3) Real {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)
	e3 := v3.Sub(v0)
	m := Mat3{
		e1.X(), e1.Y(), e1.Z(),
		e2.X(), e2.Y(), e2.Z(),
		e3.X(), e3.Y(), e3.Z(),
	}
	return math.Abs(m.Det()) / 6.0
}
