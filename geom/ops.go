package geom

import "github.com/hopphysics/hop/scalar"

func UnitX[T scalar.Scalar[T]]() Vec3[T] { var z T; return Vec3[T]{z.One(), z.Zero(), z.Zero()} }
func UnitY[T scalar.Scalar[T]]() Vec3[T] { var z T; return Vec3[T]{z.Zero(), z.One(), z.Zero()} }
func UnitZ[T scalar.Scalar[T]]() Vec3[T] { var z T; return Vec3[T]{z.Zero(), z.Zero(), z.One()} }

// IntersectionOfThreePlanes solves for the point common to three planes via
// Cramer's rule, returning ok=false if the planes are near-parallel (the
// determinant falls within epsilon of zero).
func IntersectionOfThreePlanes[T scalar.Scalar[T]](p1, p2, p3 Plane[T], epsilon T) (Vec3[T], bool) {
	p2xp3 := p2.Normal.Cross(p3.Normal)
	den := p1.Normal.Dot(p2xp3)
	if den.Less(epsilon) && epsilon.Neg().Less(den) {
		var zero Vec3[T]
		return zero, false
	}

	p3xp1 := p3.Normal.Cross(p1.Normal)
	p1xp2 := p1.Normal.Cross(p2.Normal)

	p1xp2 = p1xp2.Scale(p3.Distance)
	p2xp3 = p2xp3.Scale(p1.Distance)
	p3xp1 = p3xp1.Scale(p2.Distance)

	result := p1xp2.Add(p2xp3).Add(p3xp1)
	one := den.One()
	return result.Scale(one.Div(den)), true
}
