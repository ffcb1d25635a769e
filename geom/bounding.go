package geom

import "github.com/hopphysics/hop/scalar"

// BoundSphere computes the local axis-aligned bound of a sphere.
func BoundSphere[T scalar.Scalar[T]](s Sphere[T]) AABox[T] {
	return NewAABoxRadius(s.Radius).Translate(s.Origin)
}

// BoundCapsule computes the local axis-aligned bound of a capsule by
// extending a radius cube along whichever half of the sweep direction is
// positive or negative per axis.
func BoundCapsule[T scalar.Scalar[T]](c Capsule[T]) AABox[T] {
	var box AABox[T]
	var zero T
	zero = zero.Zero()
	d := c.Direction
	radius := c.Radius

	if d.X.Less(zero) {
		box.Mins.X = d.X.Sub(radius)
		box.Maxs.X = radius
	} else {
		box.Mins.X = radius.Neg()
		box.Maxs.X = d.X.Add(radius)
	}
	if d.Y.Less(zero) {
		box.Mins.Y = d.Y.Sub(radius)
		box.Maxs.Y = radius
	} else {
		box.Mins.Y = radius.Neg()
		box.Maxs.Y = d.Y.Add(radius)
	}
	if d.Z.Less(zero) {
		box.Mins.Z = d.Z.Sub(radius)
		box.Maxs.Z = radius
	} else {
		box.Mins.Z = radius.Neg()
		box.Maxs.Z = d.Z.Add(radius)
	}

	return box.Translate(c.Origin)
}
