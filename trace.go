package hop

import (
	"github.com/hopphysics/hop/body"
	"github.com/hopphysics/hop/geom"
)

// TraceSegment sweeps a bare segment (no shape of its own) through the
// scene and returns the earliest thing it hits, scoped by collideWithBits;
// ignore, if non-nil, is excluded from consideration.
func (sim *Simulator[T]) TraceSegment(seg geom.Segment[T], collideWithBits int, ignore *body.Solid[T]) body.Collision[T] {
	total := geom.AABox[T]{Mins: seg.Origin, Maxs: seg.Origin}
	total.MergePoint(seg.EndPoint())
	n := sim.FindSolidsInAABox(total, sim.spacialCollection)
	return sim.traceSegmentWithSpacials(seg, collideWithBits, ignore, sim.spacialCollection[:n])
}

// TraceSolid sweeps s's own shapes along seg and returns the earliest thing
// they hit.
func (sim *Simulator[T]) TraceSolid(s *body.Solid[T], seg geom.Segment[T], collideWithBits int) body.Collision[T] {
	box := geom.AABox[T]{Mins: seg.Origin, Maxs: seg.Origin}
	box.MergePoint(seg.EndPoint())
	local := s.LocalBound()
	box.Mins = box.Mins.Add(local.Mins)
	box.Maxs = box.Maxs.Add(local.Maxs)
	n := sim.FindSolidsInAABox(box, sim.spacialCollection)
	return sim.traceSolidWithSpacials(s, seg, collideWithBits, sim.spacialCollection[:n])
}

func (sim *Simulator[T]) traceSegmentWithSpacials(seg geom.Segment[T], collideWithBits int, ignore *body.Solid[T], spacials []*body.Solid[T]) body.Collision[T] {
	var z T
	one := z.One()

	var result body.Collision[T]
	result.Time = one

	for _, s2 := range spacials {
		if s2 == ignore || collideWithBits&s2.CollisionScope == 0 {
			continue
		}
		col := sim.testSegment(seg, s2)
		result = sim.mergeTrace(result, col, one)
	}

	if sim.manager != nil {
		col := sim.manager.TraceSegment(seg, collideWithBits)
		result = sim.mergeTrace(result, col, one)
	}

	if result.Time.Equal(one) {
		result.Point = seg.EndPoint()
	}
	return result
}

func (sim *Simulator[T]) traceSolidWithSpacials(s *body.Solid[T], seg geom.Segment[T], collideWithBits int, spacials []*body.Solid[T]) body.Collision[T] {
	var z T
	one := z.One()

	var result body.Collision[T]
	result.Time = one
	if collideWithBits == 0 {
		return result
	}

	for _, s2 := range spacials {
		if s2 == s || collideWithBits&s2.CollisionScope == 0 {
			continue
		}
		col := sim.testSolid(s, seg, s2)
		result = sim.mergeTrace(result, col, one)
	}

	if sim.manager != nil {
		col := sim.manager.TraceSolid(s, seg, collideWithBits)
		result = sim.mergeTrace(result, col, one)
	}

	if result.Time.Equal(one) {
		result.Point = seg.EndPoint()
	}
	return result
}

// mergeTrace folds a candidate hit into the running earliest-time result,
// averaging normals of exactly-tied hits when averageNormals is set.
func (sim *Simulator[T]) mergeTrace(result, col body.Collision[T], one T) body.Collision[T] {
	scope := result.Scope
	if col.Time.Less(one) {
		if col.Time.Less(result.Time) {
			result = col
		} else if sim.averageNormals && result.Time.Equal(col.Time) {
			result.Normal = result.Normal.Add(col.Normal)
			if norm := geom.NormalizeCarefully(result.Normal, sim.epsilonState); !norm.Equal((geom.Vec3[T]{})) {
				result.Normal = norm
			} else {
				result = col
			}
		}
	}
	result.Scope = scope | col.Scope
	return result
}

// testSegment traces seg against every shape s carries, keeping the earliest
// hit and, for coincident times, the accumulated (then renormalized) normal.
func (sim *Simulator[T]) testSegment(seg geom.Segment[T], s *body.Solid[T]) body.Collision[T] {
	var z T
	zero := z.Zero()
	one := z.One()

	var result body.Collision[T]
	result.Reset()
	modifyScope := false

	for i := 0; i < s.NumShapes(); i++ {
		sh := s.Shape(i)
		var col body.Collision[T]
		col.Reset()
		col.Collider = s

		switch sh.Type {
		case body.ShapeAABox:
			col = sim.traceAABox(seg, sh.AABox.Translate(s.Position))
			col.Collider = s
		case body.ShapeSphere:
			col = sim.traceSphere(seg, sh.Sphere.Translate(s.Position))
			col.Collider = s
		case body.ShapeCapsule:
			col = sim.traceCapsule(seg, sh.Capsule.Translate(s.Position))
			col.Collider = s
		case body.ShapeConvex:
			panic("hop: TraceSegment not implemented for convex shapes")
		case body.ShapeTraceable:
			col = sh.Traceable.TraceSegment(s.Position, seg)
			modifyScope = true
		}

		if col.Time.Less(one) {
			col.Impact = col.Point
		}
		if col.Time.Equal(zero) {
			col.Scope |= s.InternalScope
		}

		scope := result.Scope
		if col.Time.Less(one) {
			if col.Time.Less(result.Time) {
				result = col
			} else if result.Time.Equal(col.Time) {
				result.Normal = result.Normal.Add(col.Normal)
				if norm := geom.NormalizeCarefully(result.Normal, sim.epsilonState); !norm.Equal((geom.Vec3[T]{})) {
					result.Normal = norm
				} else {
					result = col
				}
			}
			modifyScope = modifyScope || col.Time.Equal(zero)
		}
		if modifyScope {
			result.Scope = scope | col.Scope
		} else {
			result.Scope = scope
		}
	}

	return result
}

// testSolid traces s1's Minkowski-expanded shapes against s2's shapes: each
// shape pair reduces to a single primitive sweep by growing s2's shape by
// s1's extent along the sweep direction and moving the segment as if s1 were
// a point.
func (sim *Simulator[T]) testSolid(s1 *body.Solid[T], seg geom.Segment[T], s2 *body.Solid[T]) body.Collision[T] {
	var z T
	zero := z.Zero()
	one := z.One()

	var result body.Collision[T]
	result.Reset()

	for i := 0; i < s1.NumShapes(); i++ {
		sh1 := s1.Shape(i)
		for j := 0; j < s2.NumShapes(); j++ {
			sh2 := s2.Shape(j)
			modifyScope := false

			var col body.Collision[T]
			col.Reset()
			col.Collider = s2

			switch {
			case sh1.Type == body.ShapeAABox && sh2.Type == body.ShapeAABox:
				box := sh2.AABox.Translate(s2.Position)
				box.Maxs = box.Maxs.Sub(sh1.AABox.Mins)
				box.Mins = box.Mins.Sub(sh1.AABox.Maxs)
				col = sim.traceAABox(seg, box)

			case sh1.Type == body.ShapeAABox && sh2.Type == body.ShapeSphere:
				box := geom.NewAABoxRadius(sh2.Sphere.Radius).Translate(sh2.Sphere.Origin).Translate(s2.Position)
				box.Maxs = box.Maxs.Sub(sh1.AABox.Mins)
				box.Mins = box.Mins.Sub(sh1.AABox.Maxs)
				col = sim.traceAABox(seg, box)

			case sh1.Type == body.ShapeAABox && sh2.Type == body.ShapeCapsule:
				box := geom.BoundCapsule(sh2.Capsule).Translate(s2.Position)
				box.Maxs = box.Maxs.Sub(sh1.AABox.Mins)
				box.Mins = box.Mins.Sub(sh1.AABox.Maxs)
				col = sim.traceAABox(seg, box)

			case sh1.Type == body.ShapeSphere && sh2.Type == body.ShapeAABox:
				box1 := geom.NewAABoxRadius(sh1.Sphere.Radius).Translate(sh1.Sphere.Origin)
				box := sh2.AABox.Translate(s2.Position)
				box.Maxs = box.Maxs.Sub(box1.Mins)
				box.Mins = box.Mins.Sub(box1.Maxs)
				col = sim.traceAABox(seg, box)

			case sh1.Type == body.ShapeSphere && sh2.Type == body.ShapeSphere:
				origin := s2.Position.Sub(sh1.Sphere.Origin).Add(sh2.Sphere.Origin)
				sph := geom.Sphere[T]{Origin: origin, Radius: sh2.Sphere.Radius.Add(sh1.Sphere.Radius)}
				col = sim.traceSphere(seg, sph)

			case sh1.Type == body.ShapeSphere && sh2.Type == body.ShapeCapsule:
				origin := s2.Position.Sub(sh1.Sphere.Origin).Add(sh2.Capsule.Origin)
				cap := geom.Capsule[T]{Origin: origin, Direction: sh2.Capsule.Direction, Radius: sh2.Capsule.Radius.Add(sh1.Sphere.Radius)}
				col = sim.traceCapsule(seg, cap)

			case sh1.Type == body.ShapeSphere && sh2.Type == body.ShapeConvex:
				cs := geom.Convex[T]{Planes: make([]geom.Plane[T], len(sh2.Convex.Planes))}
				for k, p := range sh2.Convex.Planes {
					cs.Planes[k] = geom.Plane[T]{Normal: p.Normal, Distance: p.Distance.Add(sh1.Sphere.Radius)}
				}
				tmp := geom.Segment[T]{
					Origin:    seg.Origin.Sub(s2.Position).Add(sh1.Sphere.Origin),
					Direction: seg.Direction,
				}
				col = sim.traceConvexSolid(tmp, cs)
				if col.Time.Less(one) {
					col.Point = col.Point.Add(s2.Position)
				}

			case sh1.Type == body.ShapeCapsule && sh2.Type == body.ShapeAABox:
				box1 := geom.BoundCapsule(sh1.Capsule)
				box := sh2.AABox.Translate(s2.Position)
				box.Maxs = box.Maxs.Sub(box1.Mins)
				box.Mins = box.Mins.Sub(box1.Maxs)
				col = sim.traceAABox(seg, box)

			case sh1.Type == body.ShapeCapsule && sh2.Type == body.ShapeSphere:
				origin := s2.Position.Sub(sh1.Capsule.Origin).Add(sh2.Sphere.Origin)
				cap := geom.Capsule[T]{Origin: origin, Direction: sh1.Capsule.Direction.Neg(), Radius: sh1.Capsule.Radius.Add(sh2.Sphere.Radius)}
				col = sim.traceCapsule(seg, cap)

			case sh1.Type == body.ShapeCapsule && sh2.Type == body.ShapeCapsule:
				origin := s2.Position.Sub(sh1.Capsule.Origin).Add(sh2.Capsule.Origin)
				cap := geom.Capsule[T]{Origin: origin, Direction: sh2.Capsule.Direction, Radius: sh1.Capsule.Radius.Add(sh2.Capsule.Radius)}
				col = sim.traceCapsule(seg, cap)

			case sh1.Type == body.ShapeTraceable && sh2.Type != body.ShapeTraceable:
				inv := geom.Segment[T]{Origin: s2.Position, Direction: seg.Direction.Scale(z.One().Neg())}
				col = sh1.Traceable.TraceSolid(s2, seg.Origin, inv)
				col.Invert()
				delta := col.Point.Neg().Add(seg.Origin).Add(inv.Origin)
				col.Point = delta
				modifyScope = true

			case sh1.Type != body.ShapeTraceable && sh2.Type == body.ShapeTraceable:
				col = sh2.Traceable.TraceSolid(s1, s2.Position, seg)
				modifyScope = true
			}

			if sh1.Type != body.ShapeTraceable && sh2.Type != body.ShapeTraceable {
				col.Collider = s2
			}

			if col.Time.Less(one) && sh1.Type != body.ShapeTraceable && sh2.Type != body.ShapeTraceable {
				negN := col.Normal.Neg()
				var sup geom.Vec3[T]
				switch sh1.Type {
				case body.ShapeAABox:
					sup = geom.SupportAABox(sh1.AABox, negN)
				case body.ShapeSphere:
					sup = geom.SupportSphere(sh1.Sphere, negN)
				case body.ShapeCapsule:
					sup = geom.SupportCapsule(sh1.Capsule, negN)
				}
				col.Impact = col.Point.Add(sup)
			} else if col.Time.Less(one) {
				col.Impact = col.Point
			}

			if sh1.Type != body.ShapeTraceable && sh2.Type != body.ShapeTraceable && col.Time.Equal(zero) {
				col.Scope = s2.Scope
			}
			if col.Time.Equal(zero) {
				col.Scope |= s2.InternalScope
			}

			scope := result.Scope
			if col.Time.Less(one) {
				if col.Time.Less(result.Time) {
					result = col
				} else if result.Time.Equal(col.Time) {
					result.Normal = result.Normal.Add(col.Normal)
					if norm := geom.NormalizeCarefully(result.Normal, sim.epsilonState); !norm.Equal((geom.Vec3[T]{})) {
						result.Normal = norm
					} else {
						result = col
					}
				}
				modifyScope = modifyScope || col.Time.Equal(zero)
			}
			if modifyScope {
				result.Scope = scope | col.Scope
			} else {
				result.Scope = scope
			}
		}
	}

	return result
}

// traceAABox is the swept-segment-vs-box kernel: if the segment starts
// inside the box, the hit is immediate (time zero) with a normal chosen by
// whichever face the origin sits nearest and the segment is moving away
// from; otherwise it falls back to the closed-form slab intersection.
func (sim *Simulator[T]) traceAABox(seg geom.Segment[T], box geom.AABox[T]) body.Collision[T] {
	var c body.Collision[T]
	var z T
	zero := z.Zero()
	one := z.One()

	if !geom.TestInsideAABox(box, seg.Origin) {
		c.Time, c.Point, c.Normal = geom.FindIntersectionAABox(seg, box)
		return c
	}

	if zero.Less(seg.Direction.LengthSquared()) {
		dix := seg.Origin.X.Sub(box.Mins.X).Abs()
		diy := seg.Origin.Y.Sub(box.Mins.Y).Abs()
		diz := seg.Origin.Z.Sub(box.Mins.Z).Abs()
		dax := seg.Origin.X.Sub(box.Maxs.X).Abs()
		day := seg.Origin.Y.Sub(box.Maxs.Y).Abs()
		daz := seg.Origin.Z.Sub(box.Maxs.Z).Abs()

		negX, negY, negZ := geom.UnitX[T]().Neg(), geom.UnitY[T]().Neg(), geom.UnitZ[T]().Neg()
		posX, posY, posZ := geom.UnitX[T](), geom.UnitY[T](), geom.UnitZ[T]()

		switch {
		case dix.LessEqual(diy) && dix.LessEqual(diz) && dix.LessEqual(dax) && dix.LessEqual(day) && dix.LessEqual(daz):
			if !seg.Direction.Dot(negX).Less(zero) {
				c.Time = one
				return c
			}
			c.Normal = negX
		case diy.LessEqual(diz) && diy.LessEqual(dax) && diy.LessEqual(day) && diy.LessEqual(daz):
			if !seg.Direction.Dot(negY).Less(zero) {
				c.Time = one
				return c
			}
			c.Normal = negY
		case diz.LessEqual(dax) && diz.LessEqual(day) && diz.LessEqual(daz):
			if !seg.Direction.Dot(negZ).Less(zero) {
				c.Time = one
				return c
			}
			c.Normal = negZ
		case dax.LessEqual(day) && dax.LessEqual(daz):
			if !seg.Direction.Dot(posX).Less(zero) {
				c.Time = one
				return c
			}
			c.Normal = posX
		case day.LessEqual(daz):
			if !seg.Direction.Dot(posY).Less(zero) {
				c.Time = one
				return c
			}
			c.Normal = posY
		default:
			if !seg.Direction.Dot(posZ).Less(zero) {
				c.Time = one
				return c
			}
			c.Normal = posZ
		}
	}

	c.Time = zero
	c.Point = seg.Origin
	return c
}

// traceSphere is the swept-segment-vs-sphere kernel, with the same
// starts-inside special case as traceAABox.
func (sim *Simulator[T]) traceSphere(seg geom.Segment[T], sph geom.Sphere[T]) body.Collision[T] {
	var c body.Collision[T]
	var z T
	zero := z.Zero()
	one := z.One()

	if !geom.TestInsideSphere(sph, seg.Origin) {
		c.Time, c.Point, c.Normal = geom.FindIntersectionSphere(seg, sph, sim.epsilonState)
		return c
	}

	n := geom.NormalizeCarefully(seg.Origin.Sub(sph.Origin), sim.epsilonState)
	if n.Equal((geom.Vec3[T]{})) {
		n = geom.NormalizeCarefully(seg.Direction, sim.epsilonState).Neg()
	}
	if n.Dot(seg.Direction).LessEqual(sim.epsilon) {
		c.Time = zero
		c.Point = seg.Origin
		c.Normal = n
	} else {
		c.Time = one
	}
	return c
}

// traceCapsule reduces to traceSphere: the closest point on the capsule's
// spine to the segment becomes a stand-in sphere center for that sweep.
func (sim *Simulator[T]) traceCapsule(seg geom.Segment[T], cap geom.Capsule[T]) body.Collision[T] {
	spine := geom.Segment[T]{Origin: cap.Origin, Direction: cap.Direction}
	p1, _ := geom.ClosestPointsBetweenSegments(spine, seg, sim.epsilon)
	return sim.traceSphere(seg, geom.Sphere[T]{Origin: p1, Radius: cap.Radius})
}

// traceConvexSolid is the swept-segment-vs-convex-halfspace kernel: it walks
// every plane that the segment enters through, keeping the earliest legal
// entry (one where the entry point also satisfies every other plane).
func (sim *Simulator[T]) traceConvexSolid(seg geom.Segment[T], cs geom.Convex[T]) body.Collision[T] {
	var c body.Collision[T]
	var z T
	zero := z.Zero()
	one := z.One()
	c.Time = one

	inside := true
	closestDist := sim.maxPositionComponent.Neg()
	closestPlane := -1
	for i, p := range cs.Planes {
		d := p.Normal.Dot(seg.Origin).Sub(p.Distance)
		if zero.Less(d) {
			inside = false
			break
		}
		if closestDist.Less(d) {
			closestDist = d
			closestPlane = i
		}
	}
	if inside && closestPlane >= 0 {
		c.Time = zero
		c.Point = seg.Origin
		c.Normal = cs.Planes[closestPlane].Normal
		return c
	}

	for i, p := range cs.Planes {
		denom := p.Normal.Dot(seg.Direction)
		if !denom.Less(zero) {
			continue
		}
		t := p.Distance.Sub(p.Normal.Dot(seg.Origin)).Div(denom)
		if t.Less(zero) || one.Less(t) {
			continue
		}
		u := seg.Origin.Add(seg.Direction.Scale(t))

		legal := true
		for j, q := range cs.Planes {
			if i == j {
				continue
			}
			if zero.Less(q.Normal.Dot(u).Sub(q.Distance)) {
				legal = false
				break
			}
		}
		if legal && t.Less(c.Time) {
			c.Time = t
			c.Point = u
			c.Normal = p.Normal
		}
	}
	return c
}
