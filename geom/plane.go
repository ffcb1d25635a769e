package geom

import "github.com/hopphysics/hop/scalar"

// Plane is a half-space boundary: points p satisfying Normal.Dot(p) ==
// Distance lie on the plane, Normal.Dot(p) > Distance lie in front of it.
type Plane[T scalar.Scalar[T]] struct {
	Normal   Vec3[T]
	Distance T
}

// SignedDistance returns how far p lies in front of (positive) or behind
// (negative) the plane, along its normal.
func (p Plane[T]) SignedDistance(v Vec3[T]) T {
	return p.Normal.Dot(v).Sub(p.Distance)
}

// Convex is an intersection of half-spaces: the solid region where every
// plane's SignedDistance is non-positive.
type Convex[T scalar.Scalar[T]] struct {
	Planes []Plane[T]
}
