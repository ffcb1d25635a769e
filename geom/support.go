package geom

import "github.com/hopphysics/hop/scalar"

// SupportAABox returns the box's extreme point along dir, the vertex a
// separating-axis test or Minkowski-difference impact reconstruction would
// pick as farthest in that direction.
func SupportAABox[T scalar.Scalar[T]](box AABox[T], dir Vec3[T]) Vec3[T] {
	var zero T
	zero = zero.Zero()
	pick := func(d, mn, mx T) T {
		if d.Less(zero) {
			return mn
		}
		return mx
	}
	return Vec3[T]{
		pick(dir.X, box.Mins.X, box.Maxs.X),
		pick(dir.Y, box.Mins.Y, box.Maxs.Y),
		pick(dir.Z, box.Mins.Z, box.Maxs.Z),
	}
}

// SupportSphere returns the point on the sphere's surface farthest along dir.
func SupportSphere[T scalar.Scalar[T]](s Sphere[T], dir Vec3[T]) Vec3[T] {
	n := dir.Normalize()
	return s.Origin.Add(n.Scale(s.Radius))
}

// SupportCapsule returns the point on the capsule's surface farthest along
// dir: the far endpoint of its spine, offset outward by its radius.
func SupportCapsule[T scalar.Scalar[T]](c Capsule[T], dir Vec3[T]) Vec3[T] {
	var zero T
	zero = zero.Zero()
	end := c.Origin.Add(c.Direction)
	spine := c.Origin
	if zero.Less(dir.Dot(c.Direction)) {
		spine = end
	}
	n := dir.Normalize()
	return spine.Add(n.Scale(c.Radius))
}
