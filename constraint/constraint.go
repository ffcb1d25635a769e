// Package constraint implements the spring/damper links a Simulator can pin
// between two solids, or between a solid and a fixed point in world space.
package constraint

import (
	"github.com/hopphysics/hop/body"
	"github.com/hopphysics/hop/geom"
	"github.com/hopphysics/hop/scalar"
)

// Constraint is a two-endpoint spring/damper: it pulls Start toward End (or
// toward EndPoint, when End is nil) with a force proportional to how far the
// current separation exceeds DistanceThreshold, plus a damping term
// proportional to the endpoints' full relative velocity.
type Constraint[T scalar.Scalar[T]] struct {
	start, end *body.Solid[T]
	endPoint   geom.Vec3[T]

	SpringConstant    T
	DampingConstant   T
	DistanceThreshold T

	attached bool
}

// New builds a solid-to-solid constraint.
func New[T scalar.Scalar[T]](start, end *body.Solid[T]) *Constraint[T] {
	c := &Constraint[T]{}
	c.reset()
	c.SetStartSolid(start)
	c.SetEndSolid(end)
	return c
}

// NewToPoint builds a solid-to-fixed-point constraint.
func NewToPoint[T scalar.Scalar[T]](start *body.Solid[T], point geom.Vec3[T]) *Constraint[T] {
	c := &Constraint[T]{}
	c.reset()
	c.SetStartSolid(start)
	c.SetEndPoint(point)
	return c
}

func (c *Constraint[T]) reset() {
	var z T
	c.SpringConstant = z.One()
	c.DampingConstant = z.One()
	c.DistanceThreshold = z.One()
}

// Destroy detaches both endpoints, waking each so a body that was only kept
// asleep by this link's rest tension gets a chance to settle on its own.
func (c *Constraint[T]) Destroy() {
	if c.start != nil {
		c.start.Activate()
		c.start.RemoveConstraint(c)
		c.start = nil
	}
	if c.end != nil {
		c.end.Activate()
		c.end.RemoveConstraint(c)
		c.end = nil
	}
}

func (c *Constraint[T]) SetStartSolid(s *body.Solid[T]) {
	if c.end != nil {
		c.end.Activate()
	}
	if c.start != nil {
		c.start.Activate()
		c.start.RemoveConstraint(c)
		c.start = nil
	}
	if s != nil {
		s.AddConstraint(c)
		s.Activate()
		c.start = s
	}
}

func (c *Constraint[T]) StartSolid() *body.Solid[T] { return c.start }

func (c *Constraint[T]) SetEndSolid(s *body.Solid[T]) {
	if c.start != nil {
		c.start.Activate()
	}
	if c.end != nil {
		c.end.Activate()
		c.end.RemoveConstraint(c)
		c.end = nil
	}
	if s != nil {
		s.AddConstraint(c)
		s.Activate()
		c.end = s
	}
}

func (c *Constraint[T]) EndSolid() *body.Solid[T] { return c.end }

func (c *Constraint[T]) SetEndPoint(p geom.Vec3[T]) {
	if c.start != nil {
		c.start.Activate()
	}
	if c.end != nil {
		c.end.Activate()
		c.end.RemoveConstraint(c)
		c.end = nil
	}
	c.endPoint = p
}

func (c *Constraint[T]) EndPoint() geom.Vec3[T] { return c.endPoint }

func (c *Constraint[T]) Attached() bool     { return c.attached }
func (c *Constraint[T]) SetAttached(a bool) { c.attached = a }

// ActivatePartner wakes the endpoint of this constraint that is not of. It
// implements body.Constrainer so a Solid can propagate wake-ups across its
// constraint list without this package's type being visible to body.
func (c *Constraint[T]) ActivatePartner(of *body.Solid[T]) {
	if c.start != nil && c.start != of {
		c.start.Activate()
	} else if c.end != nil && c.end != of {
		c.end.Activate()
	}
}

// EndPosition resolves the effective end anchor: End's position when this
// constraint links two solids, or the fixed EndPoint when it anchors to
// world space.
func (c *Constraint[T]) EndPosition() geom.Vec3[T] {
	if c.end != nil {
		return c.end.Position
	}
	return c.endPoint
}

// EndVelocity is zero for a point anchor, since a fixed point never moves.
func (c *Constraint[T]) EndVelocity() geom.Vec3[T] {
	if c.end != nil {
		return c.end.Velocity
	}
	var zero geom.Vec3[T]
	return zero
}

func (c *Constraint[T]) Active() bool { return c.attached }

// ForceOnAt evaluates this constraint's spring+damping contribution against
// s's current (possibly mid-integration-step) position and velocity, which
// a Simulator supplies rather than s.Position/s.Velocity directly so the
// same constraint can be re-evaluated at each Runge-Kutta stage.
func (c *Constraint[T]) ForceOnAt(s *body.Solid[T], solidPos, solidVel geom.Vec3[T]) geom.Vec3[T] {
	var tx, tv geom.Vec3[T]
	switch {
	case s == c.start:
		if c.end != nil {
			tx = c.end.Position.Sub(solidPos)
			tv = c.end.Velocity.Sub(solidVel)
		} else {
			tx = c.endPoint.Sub(solidPos)
			var z T
			tv = solidVel.Scale(z.One().Neg())
		}
	case s == c.end:
		tx = c.start.Position.Sub(solidPos)
		tv = c.start.Velocity.Sub(solidVel)
	default:
		var zero geom.Vec3[T]
		return zero
	}

	dist := tx.Length()
	if c.DistanceThreshold.Less(dist) {
		scale := dist.Sub(c.DistanceThreshold).Div(dist)
		tx = tx.Scale(scale)
	} else {
		var zeroVec geom.Vec3[T]
		tx = zeroVec
	}

	tx = tx.Scale(c.SpringConstant)
	tv = tv.Scale(c.DampingConstant)
	return tx.Add(tv)
}

// ForceOn implements body.Constrainer using the solid's own current state.
func (c *Constraint[T]) ForceOn(s *body.Solid[T]) geom.Vec3[T] {
	return c.ForceOnAt(s, s.Position, s.Velocity)
}
