package body

import (
	"github.com/hopphysics/hop/geom"
	"github.com/hopphysics/hop/scalar"
)

// ShapeType tags which member of Shape's union is populated.
type ShapeType int

const (
	ShapeAABox ShapeType = 1 << iota
	ShapeSphere
	ShapeCapsule
	ShapeConvex
	ShapeTraceable
)

// Shape is a tagged union over the primitives a Solid can be built from.
// Exactly one of the type-specific fields is meaningful, selected by Type.
type Shape[T scalar.Scalar[T]] struct {
	Type      ShapeType
	AABox     geom.AABox[T]
	Sphere    geom.Sphere[T]
	Capsule   geom.Capsule[T]
	Convex    geom.Convex[T]
	Traceable Traceable[T]

	solid *Solid[T]
}

func NewAABoxShape[T scalar.Scalar[T]](box geom.AABox[T]) *Shape[T] {
	return &Shape[T]{Type: ShapeAABox, AABox: box}
}

func NewSphereShape[T scalar.Scalar[T]](s geom.Sphere[T]) *Shape[T] {
	return &Shape[T]{Type: ShapeSphere, Sphere: s}
}

func NewCapsuleShape[T scalar.Scalar[T]](c geom.Capsule[T]) *Shape[T] {
	return &Shape[T]{Type: ShapeCapsule, Capsule: c}
}

func NewConvexShape[T scalar.Scalar[T]](c geom.Convex[T]) *Shape[T] {
	return &Shape[T]{Type: ShapeConvex, Convex: c}
}

func NewTraceableShape[T scalar.Scalar[T]](tc Traceable[T]) *Shape[T] {
	return &Shape[T]{Type: ShapeTraceable, Traceable: tc}
}

// Bound computes the shape's axis-aligned bound in local (solid) space.
func (s *Shape[T]) Bound() geom.AABox[T] {
	switch s.Type {
	case ShapeAABox:
		return s.AABox
	case ShapeSphere:
		return geom.BoundSphere(s.Sphere)
	case ShapeCapsule:
		return geom.BoundCapsule(s.Capsule)
	case ShapeConvex:
		return boundConvex(s.Convex)
	case ShapeTraceable:
		return s.Traceable.Bound()
	}
	var zero geom.AABox[T]
	return zero
}

// boundConvex enumerates every triple of planes, keeps the intersection
// points that satisfy every other half-space, and merges them into a box.
// This is the same brute-force vertex enumeration the original convex-solid
// bound derivation uses; it is only ever run once per shape mutation, not
// per step.
func boundConvex[T scalar.Scalar[T]](cs geom.Convex[T]) geom.AABox[T] {
	var z T
	eps := z.ConvexBoundEpsilon()
	planes := cs.Planes
	n := len(planes)
	var box geom.AABox[T]
	first := true

	for i := 0; i < n-2; i++ {
		for j := i + 1; j < n-1; j++ {
			for k := j + 1; k < n; k++ {
				r, ok := geom.IntersectionOfThreePlanes(planes[i], planes[j], planes[k], eps)
				if !ok {
					continue
				}
				legal := true
				for l := 0; l < n; l++ {
					if l == i || l == j || l == k {
						continue
					}
					if planes[l].SignedDistance(r).Less(eps) == false {
						legal = false
						break
					}
				}
				if !legal {
					continue
				}
				if first {
					box = geom.AABox[T]{Mins: r, Maxs: r}
					first = false
				} else {
					box.MergePoint(r)
				}
			}
		}
	}
	return box
}
