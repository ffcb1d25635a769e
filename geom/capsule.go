package geom

import "github.com/hopphysics/hop/scalar"

// Capsule is a swept sphere: a line segment (Origin, Origin+Direction)
// thickened by Radius.
type Capsule[T scalar.Scalar[T]] struct {
	Origin, Direction Vec3[T]
	Radius            T
}

func (c Capsule[T]) Translate(v Vec3[T]) Capsule[T] {
	return Capsule[T]{c.Origin.Add(v), c.Direction, c.Radius}
}
