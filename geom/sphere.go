package geom

import "github.com/hopphysics/hop/scalar"

// Sphere is an origin/radius primitive.
type Sphere[T scalar.Scalar[T]] struct {
	Origin Vec3[T]
	Radius T
}

func (s Sphere[T]) Translate(v Vec3[T]) Sphere[T] {
	return Sphere[T]{s.Origin.Add(v), s.Radius}
}
