package geom

import "github.com/hopphysics/hop/scalar"

// TestInsidePlane reports whether point lies on or behind the plane.
func TestInsidePlane[T scalar.Scalar[T]](p Plane[T], point Vec3[T]) bool {
	return point.Dot(p.Normal).LessEqual(p.Distance)
}

func TestInsideSphere[T scalar.Scalar[T]](s Sphere[T], point Vec3[T]) bool {
	d := point.Sub(s.Origin)
	return d.LengthSquared().LessEqual(s.Radius.Mul(s.Radius))
}

func TestInsideAABox[T scalar.Scalar[T]](box AABox[T], point Vec3[T]) bool {
	return box.ContainsPoint(point)
}

// FindIntersectionPlane traces seg against p, returning the time-of-impact
// in [0,1] (1 meaning no hit within the segment), the impact point, and the
// plane's normal.
func FindIntersectionPlane[T scalar.Scalar[T]](seg Segment[T], p Plane[T]) (t T, point, normal Vec3[T]) {
	var zero T
	zero = zero.Zero()
	one := zero.One()

	d := p.Normal.Dot(seg.Direction)
	if !d.Equal(zero) {
		tt := p.Distance.Sub(p.Normal.Dot(seg.Origin)).Div(d)
		point = seg.Origin.Add(seg.Direction.Scale(tt))
		normal = p.Normal
		if tt.Less(zero) || one.Less(tt) {
			return one, point, normal
		}
		return tt, point, normal
	}
	return one, point, normal
}

// FindIntersectionSphere traces seg against sph.
func FindIntersectionSphere[T scalar.Scalar[T]](seg Segment[T], sph Sphere[T], eps scalar.Epsilon[T]) (t T, point, normal Vec3[T]) {
	var z T
	zero := z.Zero()
	one := z.One()

	so, sd, sp := seg.Origin, seg.Direction, sph.Origin
	diff := so.Sub(sp)
	a := sd.LengthSquared()
	if a.LessEqual(zero) {
		return one, point, normal
	}

	b := diff.Dot(sd)
	c := diff.LengthSquared().Sub(sph.Radius.Mul(sph.Radius))
	time1 := one

	discr := b.Mul(b).Sub(a.Mul(c))
	switch {
	case discr.Less(zero):
		return one, point, normal
	case zero.Less(discr):
		root := discr.Sqrt()
		invA := one.Div(a)
		time1 = b.Neg().Sub(root).Mul(invA)
		time2 := b.Neg().Add(root).Mul(invA)

		if one.Less(time1) || time2.Less(zero) {
			return one, point, normal
		} else if zero.LessEqual(time1) {
			point = so.Add(sd.Scale(time1))
		} else {
			time1 = time2
			point = so.Add(sd.Scale(time1))
		}
	default:
		time1 = b.Neg().Div(a)
		if zero.LessEqual(time1) && time1.LessEqual(one) {
			point = so.Add(sd.Scale(time1))
		} else {
			return one, point, normal
		}
	}

	if !time1.Equal(one) {
		normal = NormalizeCarefully(point.Sub(sp), eps)
	}
	return time1, point, normal
}

// FindIntersectionAABox traces seg against box using the slab method with
// candidate-plane classification, matching the exact branch structure of
// the original swept-box root finder (order of tie-breaking between axes
// matters for which face's normal is reported).
func FindIntersectionAABox[T scalar.Scalar[T]](seg Segment[T], box AABox[T]) (t T, point, normal Vec3[T]) {
	var z T
	zero := z.Zero()
	one := z.One()
	negOne := one.Neg()

	so, sd := seg.Origin, seg.Direction
	bmn, bmx := box.Mins, box.Maxs

	inside := true
	const (
		qLow = iota
		qHigh
		qMid
	)
	var qx, qy, qz int
	var candX, candY, candZ T
	cnormX, cnormY, cnormZ := negOne, negOne, negOne

	classify := func(o, mn, mx T) (q int, cand, cnorm T) {
		switch {
		case o.LessEqual(mn):
			inside = false
			return qLow, mn, negOne
		case mx.LessEqual(o):
			inside = false
			return qHigh, mx, one
		default:
			return qMid, zero, negOne
		}
	}

	qx, candX, cnormX = classify(so.X, bmn.X, bmx.X)
	qy, candY, cnormY = classify(so.Y, bmn.Y, bmx.Y)
	qz, candZ, cnormZ = classify(so.Z, bmn.Z, bmx.Z)

	if inside {
		return zero, point, normal
	}

	maxT := func(q int, cand, o, d T) T {
		if q != qMid && !d.Equal(zero) {
			return cand.Sub(o).Div(d)
		}
		return negOne
	}

	maxTx := maxT(qx, candX, so.X, sd.X)
	maxTy := maxT(qy, candY, so.Y, sd.Y)
	maxTz := maxT(qz, candZ, so.Z, sd.Z)

	var whichPlane int
	var time T
	switch {
	case maxTy.Less(maxTx) && maxTz.Less(maxTx):
		whichPlane = 0
		time = maxTx
		normal = Vec3[T]{cnormX, zero, zero}
	case maxTz.Less(maxTy):
		whichPlane = 1
		time = maxTy
		normal = Vec3[T]{zero, cnormY, zero}
	default:
		whichPlane = 2
		time = maxTz
		normal = Vec3[T]{zero, zero, cnormZ}
	}

	if time.Less(zero) || one.Less(time) {
		return one, point, normal
	}

	if whichPlane != 0 {
		point.X = so.X.Add(time.Mul(sd.X))
		if point.X.Less(bmn.X) || bmx.X.Less(point.X) {
			return one, point, normal
		}
	} else {
		point.X = candX
	}
	if whichPlane != 1 {
		point.Y = so.Y.Add(time.Mul(sd.Y))
		if point.Y.Less(bmn.Y) || bmx.Y.Less(point.Y) {
			return one, point, normal
		}
	} else {
		point.Y = candY
	}
	if whichPlane != 2 {
		point.Z = so.Z.Add(time.Mul(sd.Z))
		if point.Z.Less(bmn.Z) || bmx.Z.Less(point.Z) {
			return one, point, normal
		}
	} else {
		point.Z = candZ
	}

	return time, point, normal
}
