package geom

import "github.com/hopphysics/hop/scalar"

// ProjectPointOnSegment returns the closest point on seg to point, clamped
// to the segment's extent when limitToSegment is set.
func ProjectPointOnSegment[T scalar.Scalar[T]](seg Segment[T], point Vec3[T], limitToSegment bool) Vec3[T] {
	o, d := seg.Origin, seg.Direction
	var z T
	zero := z.Zero()

	if d.X.Equal(zero) && d.Y.Equal(zero) && d.Z.Equal(zero) {
		return o
	}

	u := d.Dot(point.Sub(o)).Div(d.LengthSquared())
	if limitToSegment {
		one := zero.One()
		if u.Less(zero) {
			u = zero
		} else if one.Less(u) {
			u = one
		}
	}
	return o.Add(d.Scale(u))
}

// ClosestPointsBetweenSegments finds the pair of points, one on each
// segment, minimizing the distance between them, using the standard
// clamped Lin-Canny formulation.
func ClosestPointsBetweenSegments[T scalar.Scalar[T]](seg1, seg2 Segment[T], epsilon T) (p1, p2 Vec3[T]) {
	var z T
	zero := z.Zero()
	one := z.One()

	a := seg1.Direction.Dot(seg1.Direction)
	b := seg1.Direction.Dot(seg2.Direction)
	c := seg2.Direction.Dot(seg2.Direction)

	if a.LessEqual(epsilon) {
		p1 = seg1.Origin
		p2 = ProjectPointOnSegment(seg2, p1, true)
		return p1, p2
	} else if c.Less(epsilon) {
		p2 = seg2.Origin
		p1 = ProjectPointOnSegment(seg1, p2, true)
		return p1, p2
	}

	w := seg1.Origin.Sub(seg2.Origin)
	d := seg1.Direction.Dot(w)
	e := seg2.Direction.Dot(w)
	denom := a.Mul(c).Sub(b.Mul(b))

	var u1N, u2N T
	u1D, u2D := denom, denom

	if denom.Less(zero.FromMilli(1)) {
		u1N = zero
		u1D = one
		u2N = e
		u2D = c
	} else {
		u1N = b.Mul(e).Sub(c.Mul(d))
		u2N = a.Mul(e).Sub(b.Mul(d))

		if u1N.Less(zero) {
			u1N = zero
			u2N = e
			u2D = c
		} else if u1D.Less(u1N) {
			u1N = u1D
			u2N = e.Add(b)
			u2D = c
		}
	}

	if u2N.Less(zero) {
		u2N = zero
		negD := d.Neg()
		if negD.Less(zero) {
			u1N = zero
		} else if a.Less(negD) {
			u1N = u1D
		} else {
			u1N = negD
			u1D = a
		}
	} else if u2D.Less(u2N) {
		u2N = u2D
		negDPlusB := d.Neg().Add(b)
		if negDPlusB.Less(zero) {
			u1N = zero
		} else if a.Less(negDPlusB) {
			u1N = u1D
		} else {
			u1N = negDPlusB
			u1D = a
		}
	}

	uu1 := u1N.Div(u1D)
	uu2 := u2N.Div(u2D)

	p1 = seg1.Origin.Add(seg1.Direction.Scale(uu1))
	p2 = seg2.Origin.Add(seg2.Direction.Scale(uu2))
	return p1, p2
}
